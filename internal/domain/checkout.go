package domain

import "time"

// CheckoutAssignment is one row of the component/asset join table.
type CheckoutAssignment struct {
	ID          int64
	ComponentID int64
	AssetID     int64
	UserID      int64
	AssignedQty int
	CreatedAt   time.Time
}

type Asset struct {
	ID        int64
	Name      string
	AssetTag  string
	CompanyID *int64
}

// CheckoutRow pairs an assignment with the asset it points at.
type CheckoutRow struct {
	Assignment CheckoutAssignment
	Asset      Asset
}
