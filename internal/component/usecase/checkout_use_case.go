package usecase

import (
	"context"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"
	"stockroom/internal/auth"
	"stockroom/internal/domain"
	"stockroom/internal/dto"
	apperrors "stockroom/internal/errors"
	"stockroom/internal/infrastructure/metrics"
	"stockroom/internal/infrastructure/mysql"
)

const operationCheckout = "checkout"

type ComponentRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.Component, error)
}

type CheckoutService interface {
	RemainingStock(ctx context.Context, c *domain.Component) (int, error)
	Checkout(ctx context.Context, user domain.ActingUser, item dto.CheckoutItem, snapshotRemaining int) (*domain.CheckoutAssignment, int, error)
}

type Authorizer interface {
	Authorize(user domain.ActingUser, action auth.Action, component *domain.Component) error
}

type Metrics interface {
	IncOperation(operation, result string)
	ObserveCheckout(d time.Duration)
	IncCheckoutRetry()
}

type CheckoutResult struct {
	Assignment domain.CheckoutAssignment
	Remaining  int
}

// CheckoutUseCase validates a checkout against an unlocked snapshot, then runs the
// locked checkout, retrying when MySQL reports a deadlock or lock wait timeout.
type CheckoutUseCase struct {
	componentRepo    ComponentRepository
	checkoutSvc      CheckoutService
	gate             Authorizer
	metrics          Metrics
	logger           *zap.Logger
	maxRetryAttempts int
	backoffBase      time.Duration
	sleep            func(ctx context.Context, d time.Duration) error
}

func NewCheckoutUseCase(
	componentRepo ComponentRepository,
	checkoutSvc CheckoutService,
	gate Authorizer,
	metrics Metrics,
	logger *zap.Logger,
	maxRetryAttempts int,
) *CheckoutUseCase {
	if maxRetryAttempts < 1 {
		maxRetryAttempts = 1
	}
	return &CheckoutUseCase{
		componentRepo:    componentRepo,
		checkoutSvc:      checkoutSvc,
		gate:             gate,
		metrics:          metrics,
		logger:           logger,
		maxRetryAttempts: maxRetryAttempts,
		backoffBase:      100 * time.Millisecond,
		sleep:            sleepContext,
	}
}

func (uc *CheckoutUseCase) Checkout(ctx context.Context, user domain.ActingUser, item dto.CheckoutItem) (*CheckoutResult, error) {
	started := time.Now()
	result, err := uc.checkout(ctx, user, item)
	uc.metrics.ObserveCheckout(time.Since(started))
	uc.metrics.IncOperation(operationCheckout, metrics.ResultFor(err))
	return result, err
}

func (uc *CheckoutUseCase) checkout(ctx context.Context, user domain.ActingUser, item dto.CheckoutItem) (*CheckoutResult, error) {
	uc.logger.Info("checkout started",
		zap.Int64("componentId", item.ComponentID),
		zap.Int64("assetId", item.AssetID),
		zap.Int("assignedQty", item.AssignedQty),
		zap.Int64("userId", user.ID),
	)

	component, err := uc.componentRepo.FindByID(ctx, item.ComponentID)
	if err != nil {
		return nil, err
	}

	if err := uc.gate.Authorize(user, auth.ActionCheckout, component); err != nil {
		return nil, err
	}

	remaining, err := uc.checkoutSvc.RemainingStock(ctx, component)
	if err != nil {
		return nil, err
	}
	if item.AssignedQty < 1 || item.AssignedQty > remaining {
		uc.logger.Info("checkout quantity out of range",
			zap.Int64("componentId", item.ComponentID),
			zap.Int("assignedQty", item.AssignedQty),
			zap.Int("remaining", remaining),
		)
		return nil, apperrors.NewQuantityBoundError("assigned_qty", remaining)
	}

	return uc.checkoutWithRetry(ctx, user, item, remaining)
}

func (uc *CheckoutUseCase) checkoutWithRetry(ctx context.Context, user domain.ActingUser, item dto.CheckoutItem, snapshot int) (*CheckoutResult, error) {
	for attempt := 1; attempt <= uc.maxRetryAttempts; attempt++ {
		assignment, remaining, err := uc.checkoutSvc.Checkout(ctx, user, item, snapshot)
		if err == nil {
			return &CheckoutResult{Assignment: *assignment, Remaining: remaining}, nil
		}
		if !mysql.IsDeadlock(err) {
			return nil, err
		}
		if attempt == uc.maxRetryAttempts {
			break
		}

		uc.metrics.IncCheckoutRetry()
		uc.logger.Warn("deadlock detected, retrying",
			zap.Int("attempt", attempt),
			zap.Int("maxAttempts", uc.maxRetryAttempts),
			zap.Int64("componentId", item.ComponentID),
		)
		if err := uc.sleep(ctx, uc.backoff(attempt)); err != nil {
			return nil, err
		}
	}

	uc.logger.Warn("checkout retries exhausted", zap.Int64("componentId", item.ComponentID))
	return nil, apperrors.NewConflictError("stock changed, please retry")
}

// backoff grows linearly with the attempt and varies by ±20%.
func (uc *CheckoutUseCase) backoff(attempt int) time.Duration {
	base := uc.backoffBase * time.Duration(attempt)
	factor := 0.8 + rand.Float64()*0.4
	return time.Duration(float64(base) * factor)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
