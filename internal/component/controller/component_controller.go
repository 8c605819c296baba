package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"stockroom/internal/auth"
	"stockroom/internal/component/usecase"
	"stockroom/internal/domain"
	"stockroom/internal/dto"
	apperrors "stockroom/internal/errors"
)

type ComponentService interface {
	List(ctx context.Context, user domain.ActingUser, query dto.ListComponentsQuery) ([]domain.ComponentSummary, int, error)
	Create(ctx context.Context, user domain.ActingUser, in dto.ComponentInput) (*domain.Component, error)
	Get(ctx context.Context, user domain.ActingUser, id int64) (*domain.ComponentSummary, error)
	Update(ctx context.Context, user domain.ActingUser, id int64, in dto.ComponentInput) (*domain.ComponentSummary, error)
	Delete(ctx context.Context, user domain.ActingUser, id int64) error
	ListCheckouts(ctx context.Context, user domain.ActingUser, id int64) ([]domain.CheckoutRow, error)
	History(ctx context.Context, user domain.ActingUser, id int64) ([]domain.AuditEntry, error)
	BulkCheckout(ctx context.Context, user domain.ActingUser) error
	BulkSave(ctx context.Context, user domain.ActingUser) error
}

type CheckoutUseCase interface {
	Checkout(ctx context.Context, user domain.ActingUser, item dto.CheckoutItem) (*usecase.CheckoutResult, error)
}

type ComponentController struct {
	service  ComponentService
	checkout CheckoutUseCase
	logger   *zap.Logger
}

func NewComponentController(service ComponentService, checkout CheckoutUseCase, logger *zap.Logger) *ComponentController {
	return &ComponentController{
		service:  service,
		checkout: checkout,
		logger:   logger,
	}
}

// Routes mounts the component endpoints on r.
func (c *ComponentController) Routes(r chi.Router) {
	r.Get("/", c.List)
	r.Post("/", c.Create)
	r.Post("/bulk/checkout", c.BulkCheckout)
	r.Post("/bulk/save", c.BulkSave)
	r.Route("/{componentId}", func(r chi.Router) {
		r.Get("/", c.Get)
		r.Put("/", c.Update)
		r.Delete("/", c.Delete)
		r.Post("/checkout", c.Checkout)
		r.Get("/checkouts", c.ListCheckouts)
		r.Get("/history", c.History)
	})
}

// request holds what every handler needs before doing work.
type request struct {
	traceID string
	logger  *zap.Logger
	user    domain.ActingUser
}

func (c *ComponentController) begin(w http.ResponseWriter, r *http.Request) (*request, bool) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	user, ok := auth.ActingUserFromContext(r.Context())
	if !ok {
		logger.Warn("request without acting user")
		c.writeError(w, traceID, http.StatusUnauthorized, "UNAUTHORIZED", msgUnauthorized, nil, nil)
		return nil, false
	}
	return &request{traceID: traceID, logger: logger.With(zap.Int64("userId", user.ID)), user: user}, true
}

func (c *ComponentController) List(w http.ResponseWriter, r *http.Request) {
	req, ok := c.begin(w, r)
	if !ok {
		return
	}

	limit, err := intQueryParam(r, "limit")
	if err != nil {
		c.handleError(w, req, opList, err)
		return
	}
	offset, err := intQueryParam(r, "offset")
	if err != nil {
		c.handleError(w, req, opList, err)
		return
	}

	rows, total, err := c.service.List(r.Context(), req.user, dto.ListComponentsQuery{
		Search: strings.TrimSpace(r.URL.Query().Get("search")),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		c.handleError(w, req, opList, err)
		return
	}

	out := make([]dto.ComponentDTO, len(rows))
	for i, row := range rows {
		out[i] = toComponentDTO(row.Component, row.CheckedOut)
	}
	c.writeJSON(w, http.StatusOK, dto.ComponentListResponse{TraceID: req.traceID, Total: total, Rows: out})
}

func (c *ComponentController) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := c.begin(w, r)
	if !ok {
		return
	}

	var in dto.ComponentInput
	if err := decodeJSONBody(r, &in); err != nil {
		c.handleError(w, req, opCreate, err)
		return
	}

	created, err := c.service.Create(r.Context(), req.user, in)
	if err != nil {
		c.handleError(w, req, opCreate, err)
		return
	}

	c.writeJSON(w, http.StatusCreated, dto.ComponentResponse{
		TraceID:   req.traceID,
		Message:   msgCreateSuccess,
		Component: toComponentDTO(*created, 0),
	})
}

func (c *ComponentController) Get(w http.ResponseWriter, r *http.Request) {
	req, ok := c.begin(w, r)
	if !ok {
		return
	}
	id, err := componentIDParam(r)
	if err != nil {
		c.handleError(w, req, opGet, err)
		return
	}

	summary, err := c.service.Get(r.Context(), req.user, id)
	if err != nil {
		c.handleError(w, req, opGet, err)
		return
	}

	c.writeJSON(w, http.StatusOK, dto.ComponentResponse{
		TraceID:   req.traceID,
		Component: toComponentDTO(summary.Component, summary.CheckedOut),
	})
}

func (c *ComponentController) Update(w http.ResponseWriter, r *http.Request) {
	req, ok := c.begin(w, r)
	if !ok {
		return
	}
	id, err := componentIDParam(r)
	if err != nil {
		c.handleError(w, req, opUpdate, err)
		return
	}

	var in dto.ComponentInput
	if err := decodeJSONBody(r, &in); err != nil {
		c.handleError(w, req, opUpdate, err)
		return
	}

	updated, err := c.service.Update(r.Context(), req.user, id, in)
	if err != nil {
		c.handleError(w, req, opUpdate, err)
		return
	}

	c.writeJSON(w, http.StatusOK, dto.ComponentResponse{
		TraceID:   req.traceID,
		Message:   msgUpdateSuccess,
		Component: toComponentDTO(updated.Component, updated.CheckedOut),
	})
}

func (c *ComponentController) Delete(w http.ResponseWriter, r *http.Request) {
	req, ok := c.begin(w, r)
	if !ok {
		return
	}
	id, err := componentIDParam(r)
	if err != nil {
		c.handleError(w, req, opDelete, err)
		return
	}

	if err := c.service.Delete(r.Context(), req.user, id); err != nil {
		c.handleError(w, req, opDelete, err)
		return
	}

	c.writeJSON(w, http.StatusOK, dto.MessageResponse{TraceID: req.traceID, Message: msgDeleteSuccess})
}

func (c *ComponentController) Checkout(w http.ResponseWriter, r *http.Request) {
	req, ok := c.begin(w, r)
	if !ok {
		return
	}
	id, err := componentIDParam(r)
	if err != nil {
		c.handleError(w, req, opCheckout, err)
		return
	}

	var body dto.CheckoutRequest
	if err := decodeJSONBody(r, &body); err != nil {
		c.handleError(w, req, opCheckout, err)
		return
	}

	result, err := c.checkout.Checkout(r.Context(), req.user, dto.CheckoutItem{
		ComponentID: id,
		AssetID:     body.AssetID,
		AssignedQty: *body.AssignedQty,
		Note:        body.Note,
	})
	if err != nil {
		c.handleError(w, req, opCheckout, err)
		return
	}

	c.writeJSON(w, http.StatusCreated, dto.CheckoutResponse{
		TraceID:   req.traceID,
		Message:   msgCheckoutSuccess,
		Checkout:  toCheckoutDTO(result.Assignment),
		Remaining: result.Remaining,
	})
}

func (c *ComponentController) ListCheckouts(w http.ResponseWriter, r *http.Request) {
	req, ok := c.begin(w, r)
	if !ok {
		return
	}
	id, err := componentIDParam(r)
	if err != nil {
		c.handleError(w, req, opListCheckouts, err)
		return
	}

	rows, err := c.service.ListCheckouts(r.Context(), req.user, id)
	if err != nil {
		c.handleError(w, req, opListCheckouts, err)
		return
	}

	out := make([]dto.CheckoutRowDTO, len(rows))
	for i, row := range rows {
		out[i] = dto.CheckoutRowDTO{Checkout: toCheckoutDTO(row.Assignment), Asset: toAssetDTO(row.Asset)}
	}
	c.writeJSON(w, http.StatusOK, dto.CheckoutListResponse{TraceID: req.traceID, Total: len(out), Rows: out})
}

func (c *ComponentController) History(w http.ResponseWriter, r *http.Request) {
	req, ok := c.begin(w, r)
	if !ok {
		return
	}
	id, err := componentIDParam(r)
	if err != nil {
		c.handleError(w, req, opHistory, err)
		return
	}

	entries, err := c.service.History(r.Context(), req.user, id)
	if err != nil {
		c.handleError(w, req, opHistory, err)
		return
	}

	out := make([]dto.AuditEntryDTO, len(entries))
	for i, e := range entries {
		out[i] = toAuditEntryDTO(e)
	}
	c.writeJSON(w, http.StatusOK, dto.HistoryResponse{TraceID: req.traceID, Total: len(out), Rows: out})
}

func (c *ComponentController) BulkCheckout(w http.ResponseWriter, r *http.Request) {
	req, ok := c.begin(w, r)
	if !ok {
		return
	}
	c.handleError(w, req, opBulk, c.service.BulkCheckout(r.Context(), req.user))
}

func (c *ComponentController) BulkSave(w http.ResponseWriter, r *http.Request) {
	req, ok := c.begin(w, r)
	if !ok {
		return
	}
	c.handleError(w, req, opBulk, c.service.BulkSave(r.Context(), req.user))
}

func (c *ComponentController) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (c *ComponentController) writeError(w http.ResponseWriter, traceID string, status int, code, message string, details []apperrors.ValidationDetail, maxQty *int) {
	var out []dto.ValidationDetail
	for _, d := range details {
		out = append(out, dto.ValidationDetail{Field: d.Field, Message: d.Message})
	}
	c.writeJSON(w, status, dto.ErrorResponse{
		TraceID:   traceID,
		Status:    status,
		Code:      code,
		Message:   message,
		Details:   out,
		Max:       maxQty,
		Timestamp: time.Now().UTC(),
	})
}
