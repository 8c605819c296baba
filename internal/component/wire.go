package component

import (
	"database/sql"

	"go.uber.org/zap"

	"stockroom/internal/auth"
	"stockroom/internal/component/controller"
	"stockroom/internal/component/repository"
	"stockroom/internal/component/service"
	"stockroom/internal/component/usecase"
	"stockroom/internal/config"
	"stockroom/internal/infrastructure/metrics"
	"stockroom/internal/infrastructure/mysql"
)

func NewModule(db *sql.DB, cfg *config.Config, logger *zap.Logger, m *metrics.ComponentMetrics) *controller.ComponentController {
	txManager := mysql.NewTxManager(db)
	componentRepo := repository.NewMySQLComponentRepository(db)
	assignmentRepo := repository.NewMySQLAssignmentRepository(db)
	assetRepo := repository.NewMySQLAssetRepository(db)
	auditRepo := repository.NewMySQLAuditLogRepository(db)
	gate := auth.NewGate()

	componentSvc := service.NewComponentService(
		txManager,
		componentRepo,
		assignmentRepo,
		auditRepo,
		gate,
		m,
		logger,
		cfg.Checkout.TxTimeout,
	)

	checkoutSvc := service.NewCheckoutService(
		txManager,
		componentRepo,
		assignmentRepo,
		assetRepo,
		auditRepo,
		logger,
		cfg.Checkout.TxTimeout,
	)

	checkoutUC := usecase.NewCheckoutUseCase(
		componentRepo,
		checkoutSvc,
		gate,
		m,
		logger,
		cfg.Checkout.MaxRetryAttempts,
	)

	return controller.NewComponentController(componentSvc, checkoutUC, logger)
}
