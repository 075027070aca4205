package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/Rabi-developer/ZMS-sub002/aging"
)

// fetchFailedMessage is shown when the sources could not be loaded. The
// previously computed rows are still returned.
const fetchFailedMessage = "Failed to load aging report data; showing the last loaded rows"

// preferencesFailedMessage is shown when the column layout could not be read
// or stored.
const preferencesFailedMessage = "Report preferences are unavailable; changes apply to this session only"

// failure maps a session error to a status and message. Fetch failures win
// over preference failures.
func failure(err error) (int, string) {
	if errors.Is(err, aging.ErrPreferences) && !errors.Is(err, aging.ErrFetch) {
		return http.StatusInternalServerError, preferencesFailedMessage
	}
	return http.StatusBadGateway, fetchFailedMessage
}

// ReportHandler serves the aging report screen for the caller's session.
type ReportHandler struct {
	Sessions *aging.Sessions
	Validate *validator.Validate
	Logger   *slog.Logger
	Now      func() time.Time
}

func (h *ReportHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// session returns the caller's session. A failed first fetch is logged and
// returned; the session is still usable.
func (h *ReportHandler) session(ctx context.Context) (*aging.Session, error) {
	sess, err := h.Sessions.Get(ctx, SessionID(ctx))
	if err != nil {
		h.Logger.Warn("aging session open failed", slog.String("session", sess.ID), slog.Any("error", err))
	}
	return sess, err
}

func (h *ReportHandler) respond(w http.ResponseWriter, sess *aging.Session, err error) {
	view := sess.View(h.now())
	if err != nil {
		status, msg := failure(err)
		writeJSON(w, status, ApiResponse{Success: false, Message: msg, Data: view})
		return
	}
	writeOK(w, http.StatusOK, view)
}

// update applies a transition and answers with the resulting view. The
// transition is applied even when the session's first fetch failed.
func (h *ReportHandler) update(w http.ResponseWriter, r *http.Request, transition func(aging.ViewState) aging.ViewState) {
	sess, openErr := h.session(r.Context())
	_, err := sess.Update(r.Context(), transition)
	if err != nil {
		h.Logger.Error("aging update failed", slog.String("session", sess.ID), slog.Any("error", err))
	} else {
		err = openErr
	}
	h.respond(w, sess, err)
}

func (h *ReportHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	sess, err := h.session(r.Context())
	h.respond(w, sess, err)
}

// GetColumns lists the column catalog with the caller's visible keys.
func (h *ReportHandler) GetColumns(w http.ResponseWriter, r *http.Request) {
	sess, _ := h.session(r.Context())
	state := sess.State()
	writeOK(w, http.StatusOK, map[string]any{
		"columns":             aging.Columns,
		"visibleColumns":      state.VisibleColumns(),
		"savedVisibleColumns": state.SavedColumns,
		"focusMode":           state.FocusMode(),
	})
}

type refreshRequest struct {
	WHTPercent      *float64 `json:"whtPercent" validate:"omitempty,gte=0,lte=100"`
	PaymentMatchKey *string  `json:"paymentMatchKey" validate:"omitempty,oneof=biltyNo orderNo"`
}

// Refresh sets the WHT percentage and payment match key, then refetches.
// An empty body just refetches.
func (h *ReportHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if r.ContentLength != 0 {
		if err := decodeAndValidate(r, h.Validate, &req); err != nil {
			writeError(w, http.StatusBadRequest, validationMessage(err))
			return
		}
	}

	// A failed first fetch is retried below.
	sess, _ := h.session(r.Context())
	_, err := sess.Reload(r.Context(), func(s aging.ViewState) aging.ViewState {
		if req.WHTPercent != nil {
			s = s.WithWHTPercent(*req.WHTPercent)
		}
		if req.PaymentMatchKey != nil {
			s = s.WithPaymentMatchKey(aging.PaymentMatchKey(*req.PaymentMatchKey))
		}
		return s
	})
	if err != nil {
		h.Logger.Error("aging refresh failed", slog.String("session", sess.ID), slog.Any("error", err))
	}
	h.respond(w, sess, err)
}

type filtersRequest struct {
	DateFrom  string       `json:"dateFrom" validate:"omitempty,datetime=2006-01-02"`
	DateTo    string       `json:"dateTo" validate:"omitempty,datetime=2006-01-02"`
	Status    aging.Status `json:"filter" validate:"omitempty,oneof=Both 'Over Due' 'Not Due'"`
	BiltyNo   string       `json:"biltyNo"`
	OrderNo   string       `json:"orderNo"`
	Consignee string       `json:"consignee"`
	Consignor string       `json:"consignor"`
}

// SetFilters replaces the row filters. Bilty and order number filters are
// mutually exclusive; bilty wins when both are sent.
func (h *ReportHandler) SetFilters(w http.ResponseWriter, r *http.Request) {
	var req filtersRequest
	if err := decodeAndValidate(r, h.Validate, &req); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err))
		return
	}
	h.update(w, r, func(s aging.ViewState) aging.ViewState {
		s = s.WithDateRange(req.DateFrom, req.DateTo).
			WithStatus(req.Status).
			WithConsigneeFilter(req.Consignee).
			WithConsignorFilter(req.Consignor)
		if req.BiltyNo != "" {
			return s.WithBiltyNoFilter(req.BiltyNo)
		}
		return s.WithBiltyNoFilter("").WithOrderNoFilter(req.OrderNo)
	})
}

func (h *ReportHandler) ClearFilters(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, aging.ViewState.ClearFilters)
}

// columnKey reads the {key} URL parameter and checks it against the catalog.
func columnKey(w http.ResponseWriter, r *http.Request) (string, bool) {
	key := chi.URLParam(r, "key")
	if _, ok := aging.ColumnByKey(key); !ok {
		writeError(w, http.StatusNotFound, "unknown column "+key)
		return "", false
	}
	return key, true
}

func (h *ReportHandler) ToggleColumn(w http.ResponseWriter, r *http.Request) {
	if key, ok := columnKey(w, r); ok {
		h.update(w, r, func(s aging.ViewState) aging.ViewState { return s.ToggleColumn(key) })
	}
}

func (h *ReportHandler) MoveColumnUp(w http.ResponseWriter, r *http.Request) {
	if key, ok := columnKey(w, r); ok {
		h.update(w, r, func(s aging.ViewState) aging.ViewState { return s.MoveColumnUp(key) })
	}
}

func (h *ReportHandler) MoveColumnDown(w http.ResponseWriter, r *http.Request) {
	if key, ok := columnKey(w, r); ok {
		h.update(w, r, func(s aging.ViewState) aging.ViewState { return s.MoveColumnDown(key) })
	}
}

type columnFilterRequest struct {
	Value  string   `json:"value"`
	Values []string `json:"values"`
}

// SetColumnFilter sets a per-column filter. Select-multiple columns accept
// either a comma joined value or a values list.
func (h *ReportHandler) SetColumnFilter(w http.ResponseWriter, r *http.Request) {
	key, ok := columnKey(w, r)
	if !ok {
		return
	}
	var req columnFilterRequest
	if err := decodeAndValidate(r, h.Validate, &req); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err))
		return
	}
	value := req.Value
	if len(req.Values) > 0 {
		value = aging.JoinSelection(req.Values)
	}
	h.update(w, r, func(s aging.ViewState) aging.ViewState { return s.SetColumnFilter(key, value) })
}

// GetColumnOptions lists the distinct values of a column across all loaded
// rows, for select-multiple filters.
func (h *ReportHandler) GetColumnOptions(w http.ResponseWriter, r *http.Request) {
	key, ok := columnKey(w, r)
	if !ok {
		return
	}
	sess, _ := h.session(r.Context())
	writeOK(w, http.StatusOK, sess.DistinctValues(key))
}
