package controller

// Message keys returned to clients. Clients translate them.
const (
	msgCreateSuccess   = "components.create.success"
	msgUpdateSuccess   = "components.update.success"
	msgDeleteSuccess   = "components.delete.success"
	msgCheckoutSuccess = "components.checkout.success"

	msgDoesNotExist        = "components.does_not_exist"
	msgNotFound            = "components.not_found"
	msgAssetDoesNotExist   = "components.checkout.asset_does_not_exist"
	msgCheckoutUnavailable = "components.checkout.unavailable"
	msgStockChanged        = "components.checkout.stock_changed"
	msgDeleteHasCheckouts  = "components.delete.has_checkouts"
	msgConflict            = "components.conflict"

	msgValidationFailed = "general.validation_failed"
	msgForbidden        = "general.insufficient_permissions"
	msgUnauthorized     = "general.unauthorized"
	msgNotImplemented   = "general.feature_not_implemented"
	msgServerError      = "general.server_error"
)
