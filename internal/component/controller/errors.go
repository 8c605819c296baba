package controller

import (
	"net/http"

	"go.uber.org/zap"

	apperrors "stockroom/internal/errors"
)

type operation string

const (
	opList          operation = "list"
	opCreate        operation = "create"
	opGet           operation = "get"
	opUpdate        operation = "update"
	opDelete        operation = "delete"
	opCheckout      operation = "checkout"
	opListCheckouts operation = "list_checkouts"
	opHistory       operation = "history"
	opBulk          operation = "bulk"
)

func (c *ComponentController) handleError(w http.ResponseWriter, req *request, op operation, err error) {
	logger := req.logger.With(zap.String("operation", string(op)))

	if ve, ok := apperrors.IsValidationError(err); ok {
		logger.Info("request rejected", zap.Any("fields", ve.Fields()))
		if ve.Max != nil {
			c.writeError(w, req.traceID, http.StatusUnprocessableEntity, "QUANTITY_OUT_OF_RANGE", msgCheckoutUnavailable, ve.Details, ve.Max)
			return
		}
		c.writeError(w, req.traceID, http.StatusBadRequest, "VALIDATION_ERROR", msgValidationFailed, ve.Details, nil)
		return
	}

	if _, ok := apperrors.IsForbiddenError(err); ok {
		logger.Warn("request forbidden", zap.Error(err))
		c.writeError(w, req.traceID, http.StatusForbidden, "FORBIDDEN", msgForbidden, nil, nil)
		return
	}

	if nf, ok := apperrors.IsNotFoundError(err); ok {
		logger.Info("record not found", zap.Error(err))
		c.writeError(w, req.traceID, http.StatusNotFound, "NOT_FOUND", notFoundMessage(op, nf), nil, nil)
		return
	}

	if _, ok := apperrors.IsConflictError(err); ok {
		logger.Warn("request conflicted", zap.Error(err))
		c.writeError(w, req.traceID, http.StatusConflict, "CONFLICT", conflictMessage(op), nil, nil)
		return
	}

	if _, ok := apperrors.IsDeadlockError(err); ok {
		logger.Warn("lock contention", zap.Error(err))
		c.writeError(w, req.traceID, http.StatusConflict, "DEADLOCK", conflictMessage(op), nil, nil)
		return
	}

	if _, ok := apperrors.IsUnimplementedError(err); ok {
		logger.Info("unimplemented operation requested", zap.Error(err))
		c.writeError(w, req.traceID, http.StatusNotImplemented, "NOT_IMPLEMENTED", msgNotImplemented, nil, nil)
		return
	}

	logger.Error("unexpected error", zap.Error(err))
	c.writeError(w, req.traceID, http.StatusInternalServerError, "INTERNAL_ERROR", msgServerError, nil, nil)
}

// notFoundMessage picks the key for a missing record. Delete, checkout and the
// data views report not_found; the edit paths report does_not_exist.
func notFoundMessage(op operation, nf *apperrors.NotFoundError) string {
	if nf.Resource == "asset" {
		return msgAssetDoesNotExist
	}
	switch op {
	case opDelete, opCheckout, opListCheckouts, opHistory:
		return msgNotFound
	}
	return msgDoesNotExist
}

func conflictMessage(op operation) string {
	switch op {
	case opCheckout:
		return msgStockChanged
	case opDelete:
		return msgDeleteHasCheckouts
	}
	return msgConflict
}
