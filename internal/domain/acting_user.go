package domain

import "slices"

// ActingUser is the authenticated user on whose behalf an operation runs.
type ActingUser struct {
	ID            int64
	CompanyID     *int64
	Superuser     bool
	CompanyScoped bool
	Permissions   []string
}

// RestrictedToCompany reports whether records must be pinned to the user's company.
func (u ActingUser) RestrictedToCompany() bool {
	return u.CompanyScoped && !u.Superuser
}

func (u ActingUser) Can(permission string) bool {
	if u.Superuser {
		return true
	}
	return slices.Contains(u.Permissions, permission)
}

// HasAccessTo reports whether a record owned by companyID is visible to the user.
// Users without a company of their own see everything.
func (u ActingUser) HasAccessTo(companyID *int64) bool {
	if !u.RestrictedToCompany() || u.CompanyID == nil {
		return true
	}
	return companyID != nil && *companyID == *u.CompanyID
}

// ResolveCompanyID forces the user's company when they are restricted to one,
// otherwise returns the requested value unchanged.
func ResolveCompanyID(u ActingUser, requested *int64) *int64 {
	if u.RestrictedToCompany() {
		if u.CompanyID == nil {
			return nil
		}
		id := *u.CompanyID
		return &id
	}
	return requested
}
