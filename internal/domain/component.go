package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	apperrors "stockroom/internal/errors"
)

const (
	maxNameLength = 255
	maxIntColumn  = 2147483647

	// purchase_cost is stored as DECIMAL(20,2).
	costScale         = 2
	costIntegerDigits = 18
)

var maxCost = decimal.New(1, costIntegerDigits)

// Component is a bulk-quantity inventory item that can be checked out to assets.
type Component struct {
	ID           int64
	Name         string
	CategoryID   int64
	LocationID   *int64
	CompanyID    *int64
	OrderNumber  *string
	MinAmt       *int
	Serial       *string
	PurchaseDate *time.Time
	PurchaseCost decimal.NullDecimal
	Qty          int
	UserID       int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RemainingStock returns qty minus the assigned total, floored at zero.
func (c Component) RemainingStock(assigned int) int {
	remaining := c.Qty - assigned
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Validate checks the row-level constraints that hold for every persisted component.
func (c Component) Validate() error {
	var details []apperrors.ValidationDetail

	name := strings.TrimSpace(c.Name)
	if name == "" {
		details = append(details, apperrors.ValidationDetail{Field: "name", Message: "name is required"})
	} else if len(name) > maxNameLength {
		details = append(details, apperrors.ValidationDetail{Field: "name", Message: "name must be at most 255 characters"})
	}

	if c.CategoryID <= 0 {
		details = append(details, apperrors.ValidationDetail{Field: "category_id", Message: "category_id is required"})
	}

	if c.Qty < 0 {
		details = append(details, apperrors.ValidationDetail{Field: "qty", Message: "qty must not be negative"})
	} else if c.Qty > maxIntColumn {
		details = append(details, apperrors.ValidationDetail{Field: "qty", Message: "qty must be at most 2147483647"})
	}

	if c.MinAmt != nil {
		if *c.MinAmt < 0 {
			details = append(details, apperrors.ValidationDetail{Field: "min_amt", Message: "min_amt must not be negative"})
		} else if *c.MinAmt > maxIntColumn {
			details = append(details, apperrors.ValidationDetail{Field: "min_amt", Message: "min_amt must be at most 2147483647"})
		}
	}

	if c.PurchaseCost.Valid {
		cost := c.PurchaseCost.Decimal
		switch {
		case cost.IsNegative():
			details = append(details, apperrors.ValidationDetail{Field: "purchase_cost", Message: "purchase_cost must not be negative"})
		case !cost.Equal(cost.Truncate(costScale)):
			details = append(details, apperrors.ValidationDetail{Field: "purchase_cost", Message: "purchase_cost must have at most 2 decimal places"})
		case cost.GreaterThanOrEqual(maxCost):
			details = append(details, apperrors.ValidationDetail{Field: "purchase_cost", Message: "purchase_cost must have at most 18 integer digits"})
		}
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}
	return nil
}

// ComponentSummary is a list row: the component plus its current checkout totals.
type ComponentSummary struct {
	Component  Component
	CheckedOut int
}

func (s ComponentSummary) Remaining() int {
	return s.Component.RemainingStock(s.CheckedOut)
}

// ComponentFilter narrows component listings. A nil CompanyID lists every company.
type ComponentFilter struct {
	CompanyID *int64
	Search    string
	Limit     int
	Offset    int
}
