package service

import (
	"context"

	"stockroom/internal/auth"
	"stockroom/internal/domain"
	"stockroom/internal/infrastructure/mysql"
)

type ComponentRepository interface {
	Create(ctx context.Context, c *domain.Component) (int64, error)
	FindByID(ctx context.Context, id int64) (*domain.Component, error)
	FindByIDForUpdate(ctx context.Context, tx mysql.Querier, id int64) (*domain.Component, error)
	Update(ctx context.Context, tx mysql.Querier, c *domain.Component) error
	Delete(ctx context.Context, tx mysql.Querier, id int64) error
	List(ctx context.Context, filter domain.ComponentFilter) ([]domain.ComponentSummary, int, error)
}

type AssignmentRepository interface {
	Insert(ctx context.Context, tx mysql.Querier, a *domain.CheckoutAssignment) (int64, error)
	SumAssignedQty(ctx context.Context, componentID int64) (int, error)
	SumAssignedQtyForUpdate(ctx context.Context, tx mysql.Querier, componentID int64) (int, error)
	CountByComponent(ctx context.Context, tx mysql.Querier, componentID int64) (int, error)
	ListWithAssets(ctx context.Context, componentID int64) ([]domain.CheckoutRow, error)
}

type AssetRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.Asset, error)
}

type AuditLogRepository interface {
	Insert(ctx context.Context, tx mysql.Querier, e *domain.AuditEntry) (int64, error)
	ListForItem(ctx context.Context, itemType string, itemID int64) ([]domain.AuditEntry, error)
}

type Authorizer interface {
	Authorize(user domain.ActingUser, action auth.Action, component *domain.Component) error
}

type Metrics interface {
	IncOperation(operation, result string)
}
