package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/Rabi-developer/ZMS-sub002/models"
	"github.com/Rabi-developer/ZMS-sub002/repository"
)

// DefaultListPageSize applies when a listing request has no pageSize.
const DefaultListPageSize = 50

// ConsignmentHandler lists and records consignments in the configured store.
type ConsignmentHandler struct {
	Repo     repository.ConsignmentRepository
	Validate *validator.Validate
	Logger   *slog.Logger
}

func (h *ConsignmentHandler) GetAllConsignment(w http.ResponseWriter, r *http.Request) {
	page, size := pagination(r, DefaultListPageSize)
	list, err := h.Repo.GetAllConsignment(r.Context(), page, size)
	if err != nil {
		h.Logger.Error("list consignments", slog.Any("error", err))
		writeError(w, http.StatusBadGateway, "failed to load consignments")
		return
	}
	if list == nil {
		list = []models.ConsignmentRecord{}
	}
	writeOK(w, http.StatusOK, list)
}

func (h *ConsignmentHandler) CreateConsignment(w http.ResponseWriter, r *http.Request) {
	var c models.ConsignmentRecord
	if err := decodeAndValidate(r, h.Validate, &c); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err))
		return
	}
	if err := h.Repo.CreateConsignment(r.Context(), &c); err != nil {
		h.Logger.Error("create consignment", slog.Any("error", err), slog.String("bilty_no", c.BiltyNo))
		writeError(w, http.StatusInternalServerError, "failed to save consignment")
		return
	}
	writeOK(w, http.StatusCreated, c)
}

// PaymentHandler lists and records ABL payments.
type PaymentHandler struct {
	Repo     repository.PaymentRepository
	Validate *validator.Validate
	Logger   *slog.Logger
}

func (h *PaymentHandler) GetAllPaymentABL(w http.ResponseWriter, r *http.Request) {
	page, size := pagination(r, DefaultListPageSize)
	list, err := h.Repo.GetAllPaymentABL(r.Context(), page, size)
	if err != nil {
		h.Logger.Error("list payments", slog.Any("error", err))
		writeError(w, http.StatusBadGateway, "failed to load payments")
		return
	}
	if list == nil {
		list = []models.PaymentRecord{}
	}
	writeOK(w, http.StatusOK, list)
}

func (h *PaymentHandler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var p models.PaymentRecord
	if err := decodeAndValidate(r, h.Validate, &p); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err))
		return
	}
	if err := h.Repo.CreatePayment(r.Context(), &p); err != nil {
		h.Logger.Error("create payment", slog.Any("error", err), slog.String("order_no", p.OrderNo))
		writeError(w, http.StatusInternalServerError, "failed to save payment")
		return
	}
	writeOK(w, http.StatusCreated, p)
}
