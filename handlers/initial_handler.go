package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/Rabi-developer/ZMS-sub002/models"
	"github.com/Rabi-developer/ZMS-sub002/repository"
)

type InitialHandler struct {
	Repo     repository.InitialRepository
	Validate *validator.Validate
	Logger   *slog.Logger
}

func (h *InitialHandler) SaveInitial(w http.ResponseWriter, r *http.Request) {
	var initial models.InitialSetup
	if err := decodeAndValidate(r, h.Validate, &initial); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	if err := h.Repo.SaveInitial(r.Context(), &initial); err != nil {
		h.Logger.Error("save initial setup", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "failed to save company setup")
		return
	}

	writeOK(w, http.StatusCreated, initial)
}

func (h *InitialHandler) GetInitial(w http.ResponseWriter, r *http.Request) {
	initial, err := h.Repo.GetInitial(r.Context())
	if err != nil {
		h.Logger.Error("get initial setup", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "failed to load company setup")
		return
	}
	if initial == nil {
		writeError(w, http.StatusNotFound, "Initial details not found")
		return
	}

	writeOK(w, http.StatusOK, initial)
}
