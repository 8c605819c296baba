package dto

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ComponentInput is the full field set for create and update. Update is a full
// replacement: fields left out or blank are cleared.
type ComponentInput struct {
	Name         string              `json:"name" validate:"required,max=255"`
	CategoryID   int64               `json:"category_id" validate:"required,gt=0"`
	LocationID   *int64              `json:"location_id" validate:"omitempty,gt=0"`
	CompanyID    *int64              `json:"company_id" validate:"omitempty,gt=0"`
	OrderNumber  *string             `json:"order_number" validate:"omitempty,max=255"`
	MinAmt       *int                `json:"min_amt" validate:"omitempty,min=0,max=2147483647"`
	Serial       *string             `json:"serial" validate:"omitempty,max=255"`
	PurchaseDate *string             `json:"purchase_date" validate:"omitempty,datetime=2006-01-02"`
	PurchaseCost decimal.NullDecimal `json:"purchase_cost"`
	Qty          *int                `json:"qty" validate:"required,min=0,max=2147483647"`
}

// Normalize trims text fields and turns blank optional strings into nil. It runs
// before tag validation so a blank field clears instead of failing its format.
func (in *ComponentInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.OrderNumber = blankToNil(in.OrderNumber)
	in.Serial = blankToNil(in.Serial)
	in.PurchaseDate = blankToNil(in.PurchaseDate)
}

func blankToNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

type CheckoutRequest struct {
	AssetID     int64   `json:"asset_id" validate:"required,gt=0"`
	AssignedQty *int    `json:"assigned_qty" validate:"required"`
	Note        *string `json:"note" validate:"omitempty,max=65535"`
}

// CheckoutItem is a checkout request bound to its component.
type CheckoutItem struct {
	ComponentID int64
	AssetID     int64
	AssignedQty int
	Note        *string
}

type ListComponentsQuery struct {
	Search string
	Limit  int
	Offset int
}
