package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
	"stockroom/internal/auth"
	"stockroom/internal/domain"
	"stockroom/internal/dto"
	apperrors "stockroom/internal/errors"
	"stockroom/internal/infrastructure/metrics"
	"stockroom/internal/infrastructure/mysql"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 500

	purchaseDateLayout = "2006-01-02"
)

type ComponentService struct {
	db             mysql.TxManager
	componentRepo  ComponentRepository
	assignmentRepo AssignmentRepository
	auditRepo      AuditLogRepository
	gate           Authorizer
	metrics        Metrics
	logger         *zap.Logger
	txTimeout      time.Duration
}

func NewComponentService(
	db mysql.TxManager,
	componentRepo ComponentRepository,
	assignmentRepo AssignmentRepository,
	auditRepo AuditLogRepository,
	gate Authorizer,
	metrics Metrics,
	logger *zap.Logger,
	txTimeout time.Duration,
) *ComponentService {
	return &ComponentService{
		db:             db,
		componentRepo:  componentRepo,
		assignmentRepo: assignmentRepo,
		auditRepo:      auditRepo,
		gate:           gate,
		metrics:        metrics,
		logger:         logger,
		txTimeout:      txTimeout,
	}
}

// List returns one page of components visible to user and the total match count.
func (s *ComponentService) List(ctx context.Context, user domain.ActingUser, query dto.ListComponentsQuery) ([]domain.ComponentSummary, int, error) {
	if err := s.gate.Authorize(user, auth.ActionView, nil); err != nil {
		return nil, 0, err
	}

	filter := domain.ComponentFilter{
		Search: query.Search,
		Limit:  query.Limit,
		Offset: query.Offset,
	}
	if filter.Limit <= 0 {
		filter.Limit = DefaultListLimit
	}
	if filter.Limit > MaxListLimit {
		filter.Limit = MaxListLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	if user.RestrictedToCompany() {
		filter.CompanyID = user.CompanyID
	}

	return s.componentRepo.List(ctx, filter)
}

func (s *ComponentService) Create(ctx context.Context, user domain.ActingUser, in dto.ComponentInput) (*domain.Component, error) {
	if err := s.gate.Authorize(user, auth.ActionCreate, nil); err != nil {
		s.record("create", err)
		return nil, err
	}

	c := &domain.Component{UserID: user.ID}
	if err := applyInput(c, user, in); err != nil {
		s.record("create", err)
		return nil, err
	}

	id, err := s.componentRepo.Create(ctx, c)
	if err != nil {
		s.logger.Error("failed to create component", zap.String("name", c.Name), zap.Error(err))
		s.record("create", err)
		return nil, err
	}

	created, err := s.componentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.logger.Info("component created", zap.Int64("componentId", id), zap.Int64("userId", user.ID))
	s.record("create", nil)
	return created, nil
}

// Get returns the component with its checked-out total.
func (s *ComponentService) Get(ctx context.Context, user domain.ActingUser, id int64) (*domain.ComponentSummary, error) {
	c, err := s.componentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.gate.Authorize(user, auth.ActionView, c); err != nil {
		return nil, err
	}

	assigned, err := s.assignmentRepo.SumAssignedQty(ctx, id)
	if err != nil {
		return nil, err
	}
	return &domain.ComponentSummary{Component: *c, CheckedOut: assigned}, nil
}

// Update replaces every mutable field of the component. The creator is never changed.
func (s *ComponentService) Update(ctx context.Context, user domain.ActingUser, id int64, in dto.ComponentInput) (*domain.ComponentSummary, error) {
	current, err := s.componentRepo.FindByID(ctx, id)
	if err != nil {
		s.record("update", err)
		return nil, err
	}
	if err := s.gate.Authorize(user, auth.ActionUpdate, current); err != nil {
		s.record("update", err)
		return nil, err
	}

	var assigned int
	err = s.inTx(ctx, func(txCtx context.Context, tx mysql.Tx) error {
		locked, err := s.componentRepo.FindByIDForUpdate(txCtx, tx, id)
		if err != nil {
			return err
		}

		next := &domain.Component{
			ID:        locked.ID,
			UserID:    locked.UserID,
			CreatedAt: locked.CreatedAt,
		}
		if err := applyInput(next, user, in); err != nil {
			return err
		}

		assigned, err = s.assignmentRepo.SumAssignedQtyForUpdate(txCtx, tx, id)
		if err != nil {
			return err
		}
		if next.Qty < assigned {
			return apperrors.NewValidationError("validation failed", apperrors.ValidationDetail{
				Field:   "qty",
				Message: fmt.Sprintf("qty must be at least %d, the quantity currently checked out", assigned),
			})
		}

		if err := s.componentRepo.Update(txCtx, tx, next); err != nil {
			return err
		}
		return tx.Commit()
	})
	if err != nil {
		s.logger.Warn("component update failed", zap.Int64("componentId", id), zap.Error(err))
		s.record("update", err)
		return nil, err
	}

	updated, err := s.componentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.logger.Info("component updated", zap.Int64("componentId", id), zap.Int64("userId", user.ID))
	s.record("update", nil)
	return &domain.ComponentSummary{Component: *updated, CheckedOut: assigned}, nil
}

// Delete removes a component. Components with checked-out units cannot be deleted.
func (s *ComponentService) Delete(ctx context.Context, user domain.ActingUser, id int64) error {
	current, err := s.componentRepo.FindByID(ctx, id)
	if err != nil {
		s.record("delete", err)
		return err
	}
	if err := s.gate.Authorize(user, auth.ActionDelete, current); err != nil {
		s.record("delete", err)
		return err
	}

	err = s.inTx(ctx, func(txCtx context.Context, tx mysql.Tx) error {
		if _, err := s.componentRepo.FindByIDForUpdate(txCtx, tx, id); err != nil {
			return err
		}
		count, err := s.assignmentRepo.CountByComponent(txCtx, tx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return apperrors.NewConflictError(fmt.Sprintf("component %d has %d checkouts and cannot be deleted", id, count))
		}
		if err := s.componentRepo.Delete(txCtx, tx, id); err != nil {
			return err
		}
		return tx.Commit()
	})
	if err != nil {
		s.logger.Warn("component delete failed", zap.Int64("componentId", id), zap.Error(err))
		s.record("delete", err)
		return err
	}

	s.logger.Info("component deleted", zap.Int64("componentId", id), zap.Int64("userId", user.ID))
	s.record("delete", nil)
	return nil
}

// ListCheckouts returns the component's assignments with their assets. Components
// outside the user's company yield an empty result.
func (s *ComponentService) ListCheckouts(ctx context.Context, user domain.ActingUser, id int64) ([]domain.CheckoutRow, error) {
	c, err := s.visibleComponent(ctx, user, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return []domain.CheckoutRow{}, nil
	}
	return s.assignmentRepo.ListWithAssets(ctx, id)
}

// History returns the audit entries recorded against the component, newest first.
// Components outside the user's company yield an empty result.
func (s *ComponentService) History(ctx context.Context, user domain.ActingUser, id int64) ([]domain.AuditEntry, error) {
	c, err := s.visibleComponent(ctx, user, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return []domain.AuditEntry{}, nil
	}
	return s.auditRepo.ListForItem(ctx, domain.AuditItemComponent, id)
}

// visibleComponent loads a component for a read-only data view. The company check
// runs before authorization so another company's component reads as empty (nil, nil)
// rather than forbidden.
func (s *ComponentService) visibleComponent(ctx context.Context, user domain.ActingUser, id int64) (*domain.Component, error) {
	c, err := s.componentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !user.HasAccessTo(c.CompanyID) {
		return nil, nil
	}
	if err := s.gate.Authorize(user, auth.ActionView, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *ComponentService) BulkCheckout(ctx context.Context, user domain.ActingUser) error {
	if err := s.gate.Authorize(user, auth.ActionCheckout, nil); err != nil {
		return err
	}
	return apperrors.NewUnimplementedError("bulk checkout")
}

func (s *ComponentService) BulkSave(ctx context.Context, user domain.ActingUser) error {
	if err := s.gate.Authorize(user, auth.ActionCheckout, nil); err != nil {
		return err
	}
	return apperrors.NewUnimplementedError("bulk save")
}

func (s *ComponentService) inTx(ctx context.Context, fn func(ctx context.Context, tx mysql.Tx) error) error {
	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(txCtx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return err
	}
	// Rollback after a successful commit is a no-op.
	defer tx.Rollback()

	if err := fn(txCtx, tx); err != nil {
		if mysql.IsDeadlock(err) {
			return apperrors.NewDeadlockError("component is locked by another request, please retry")
		}
		return err
	}
	return nil
}

func (s *ComponentService) record(operation string, err error) {
	if s.metrics == nil {
		return
	}
	s.metrics.IncOperation(operation, metrics.ResultFor(err))
}

// applyInput copies the input onto c. Absent optional fields clear the stored value.
func applyInput(c *domain.Component, user domain.ActingUser, in dto.ComponentInput) error {
	in.Normalize()

	c.Name = in.Name
	c.CategoryID = in.CategoryID
	c.LocationID = in.LocationID
	c.CompanyID = domain.ResolveCompanyID(user, in.CompanyID)
	c.OrderNumber = in.OrderNumber
	c.MinAmt = in.MinAmt
	c.Serial = in.Serial
	c.PurchaseCost = in.PurchaseCost

	c.PurchaseDate = nil
	if in.PurchaseDate != nil {
		t, err := time.Parse(purchaseDateLayout, *in.PurchaseDate)
		if err != nil {
			return apperrors.NewValidationError("validation failed", apperrors.ValidationDetail{
				Field:   "purchase_date",
				Message: "purchase_date must be a date in YYYY-MM-DD format",
			})
		}
		c.PurchaseDate = &t
	}

	if in.Qty == nil {
		return apperrors.NewValidationError("validation failed", apperrors.ValidationDetail{
			Field:   "qty",
			Message: "qty is required",
		})
	}
	c.Qty = *in.Qty

	return c.Validate()
}
