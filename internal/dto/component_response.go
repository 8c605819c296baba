package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type ComponentDTO struct {
	ID           int64               `json:"id"`
	Name         string              `json:"name"`
	CategoryID   int64               `json:"category_id"`
	LocationID   *int64              `json:"location_id"`
	CompanyID    *int64              `json:"company_id"`
	OrderNumber  *string             `json:"order_number"`
	MinAmt       *int                `json:"min_amt"`
	Serial       *string             `json:"serial"`
	PurchaseDate *string             `json:"purchase_date"`
	PurchaseCost decimal.NullDecimal `json:"purchase_cost"`
	Qty          int                 `json:"qty"`
	CheckedOut   int                 `json:"checked_out"`
	Remaining    int                 `json:"remaining"`
	UserID       int64               `json:"user_id"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

type ComponentResponse struct {
	TraceID   string       `json:"traceId"`
	Message   string       `json:"message,omitempty"`
	Component ComponentDTO `json:"component"`
}

type ComponentListResponse struct {
	TraceID string         `json:"traceId"`
	Total   int            `json:"total"`
	Rows    []ComponentDTO `json:"rows"`
}

type CheckoutDTO struct {
	ID          int64     `json:"id"`
	ComponentID int64     `json:"component_id"`
	AssetID     int64     `json:"asset_id"`
	UserID      int64     `json:"user_id"`
	AssignedQty int       `json:"assigned_qty"`
	CreatedAt   time.Time `json:"created_at"`
}

type CheckoutResponse struct {
	TraceID   string      `json:"traceId"`
	Message   string      `json:"message"`
	Checkout  CheckoutDTO `json:"checkout"`
	Remaining int         `json:"remaining"`
}

type AssetDTO struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	AssetTag  string `json:"asset_tag"`
	CompanyID *int64 `json:"company_id"`
}

type CheckoutRowDTO struct {
	Checkout CheckoutDTO `json:"checkout"`
	Asset    AssetDTO    `json:"asset"`
}

type CheckoutListResponse struct {
	TraceID string           `json:"traceId"`
	Total   int              `json:"total"`
	Rows    []CheckoutRowDTO `json:"rows"`
}

type AuditEntryDTO struct {
	ID         int64     `json:"id"`
	ActorID    int64     `json:"actor_id"`
	Action     string    `json:"action"`
	TargetType string    `json:"target_type,omitempty"`
	TargetID   int64     `json:"target_id,omitempty"`
	Note       *string   `json:"note"`
	CreatedAt  time.Time `json:"created_at"`
}

type HistoryResponse struct {
	TraceID string          `json:"traceId"`
	Total   int             `json:"total"`
	Rows    []AuditEntryDTO `json:"rows"`
}

type MessageResponse struct {
	TraceID string `json:"traceId"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	TraceID   string             `json:"traceId"`
	Status    int                `json:"status"`
	Code      string             `json:"code"`
	Message   string             `json:"message"`
	Details   []ValidationDetail `json:"details,omitempty"`
	Max       *int               `json:"max,omitempty"`
	Timestamp time.Time          `json:"timestamp"`
}

type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
