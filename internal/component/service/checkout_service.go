package service

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"
	"stockroom/internal/domain"
	"stockroom/internal/dto"
	apperrors "stockroom/internal/errors"
	"stockroom/internal/infrastructure/mysql"
)

// CheckoutService assigns component units to assets under a row lock on the component.
type CheckoutService struct {
	db             mysql.TxManager
	componentRepo  ComponentRepository
	assignmentRepo AssignmentRepository
	assetRepo      AssetRepository
	auditRepo      AuditLogRepository
	logger         *zap.Logger
	txTimeout      time.Duration
	now            func() time.Time
}

func NewCheckoutService(
	db mysql.TxManager,
	componentRepo ComponentRepository,
	assignmentRepo AssignmentRepository,
	assetRepo AssetRepository,
	auditRepo AuditLogRepository,
	logger *zap.Logger,
	txTimeout time.Duration,
) *CheckoutService {
	return &CheckoutService{
		db:             db,
		componentRepo:  componentRepo,
		assignmentRepo: assignmentRepo,
		assetRepo:      assetRepo,
		auditRepo:      auditRepo,
		logger:         logger,
		txTimeout:      txTimeout,
		now:            time.Now,
	}
}

// RemainingStock reads the unlocked remaining quantity of c.
func (s *CheckoutService) RemainingStock(ctx context.Context, c *domain.Component) (int, error) {
	assigned, err := s.assignmentRepo.SumAssignedQty(ctx, c.ID)
	if err != nil {
		return 0, err
	}
	return c.RemainingStock(assigned), nil
}

// Checkout records item against its component and returns the new assignment and the
// remaining quantity after it. snapshotRemaining is what the caller saw before locking;
// when it admitted the quantity but the locked read does not, the result is a conflict.
func (s *CheckoutService) Checkout(
	ctx context.Context,
	user domain.ActingUser,
	item dto.CheckoutItem,
	snapshotRemaining int,
) (*domain.CheckoutAssignment, int, error) {
	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(txCtx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return nil, 0, err
	}
	defer tx.Rollback()

	component, err := s.componentRepo.FindByIDForUpdate(txCtx, tx, item.ComponentID)
	if err != nil {
		return nil, 0, err
	}

	assigned, err := s.assignmentRepo.SumAssignedQtyForUpdate(txCtx, tx, item.ComponentID)
	if err != nil {
		return nil, 0, err
	}
	remaining := component.RemainingStock(assigned)

	if item.AssignedQty < 1 || item.AssignedQty > remaining {
		if item.AssignedQty >= 1 && item.AssignedQty <= snapshotRemaining {
			s.logger.Warn("stock changed before lock",
				zap.Int64("componentId", item.ComponentID),
				zap.Int("assignedQty", item.AssignedQty),
				zap.Int("snapshotRemaining", snapshotRemaining),
				zap.Int("remaining", remaining),
			)
			return nil, 0, apperrors.NewConflictError("stock changed, please retry")
		}
		return nil, 0, apperrors.NewQuantityBoundError("assigned_qty", remaining)
	}

	asset, err := s.assetRepo.FindByID(txCtx, item.AssetID)
	if err != nil {
		return nil, 0, err
	}

	now := s.now().UTC()
	assignment := &domain.CheckoutAssignment{
		ComponentID: component.ID,
		AssetID:     asset.ID,
		UserID:      user.ID,
		AssignedQty: item.AssignedQty,
		CreatedAt:   now,
	}
	id, err := s.assignmentRepo.Insert(txCtx, tx, assignment)
	if err != nil {
		return nil, 0, apperrors.NewInternalError("recording checkout", err)
	}
	assignment.ID = id

	entry := &domain.AuditEntry{
		ActorID:    user.ID,
		Action:     domain.AuditActionCheckout,
		ItemType:   domain.AuditItemComponent,
		ItemID:     component.ID,
		TargetType: domain.AuditTargetAsset,
		TargetID:   asset.ID,
		Note:       item.Note,
		CreatedAt:  now,
	}
	if _, err := s.auditRepo.Insert(txCtx, tx, entry); err != nil {
		return nil, 0, apperrors.NewInternalError("writing checkout audit entry", err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit checkout", zap.Int64("componentId", component.ID), zap.Error(err))
		return nil, 0, err
	}

	s.logger.Info("component checked out",
		zap.Int64("componentId", component.ID),
		zap.Int64("assetId", asset.ID),
		zap.Int("assignedQty", item.AssignedQty),
		zap.Int64("userId", user.ID),
	)
	return assignment, remaining - item.AssignedQty, nil
}
