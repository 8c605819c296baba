package auth

import (
	"fmt"

	"stockroom/internal/domain"
	apperrors "stockroom/internal/errors"
)

type Action string

const (
	ActionView     Action = "view"
	ActionCreate   Action = "create"
	ActionUpdate   Action = "update"
	ActionDelete   Action = "delete"
	ActionCheckout Action = "checkout"
)

// Gate decides whether a user may perform an action on components. A nil component
// means the check is against the component class (list, create).
type Gate struct{}

func NewGate() *Gate {
	return &Gate{}
}

func (g *Gate) Authorize(user domain.ActingUser, action Action, component *domain.Component) error {
	if !user.Can(Permission(action)) {
		return apperrors.NewForbiddenError(fmt.Sprintf("user %d may not %s components", user.ID, action))
	}
	if component != nil && !user.HasAccessTo(component.CompanyID) {
		return apperrors.NewForbiddenError(fmt.Sprintf("user %d may not %s component %d", user.ID, action, component.ID))
	}
	return nil
}

// Permission is the permission string that grants action.
func Permission(action Action) string {
	return "components." + string(action)
}
