package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/Rabi-developer/ZMS-sub002/export"
	"github.com/Rabi-developer/ZMS-sub002/repository"
)

// ArtifactStore keeps a copy of an export and returns where it can be fetched.
type ArtifactStore interface {
	Upload(ctx context.Context, key, contentType string, data []byte) (string, error)
}

// ExportObserver counts export attempts.
type ExportObserver interface {
	ObserveExport(format string, err error)
}

// ExportHandler renders the caller's current report view as a file.
type ExportHandler struct {
	Reports  *ReportHandler
	Exporter *export.Exporter
	Company  repository.InitialRepository
	Store    ArtifactStore
	Metrics  ExportObserver
	Logger   *slog.Logger
}

// Export serves GET /aging/export?format=pdf|xlsx|doc. With store=r2 the file
// is uploaded and its URL returned instead of the bytes.
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sess, openErr := h.Reports.session(r.Context())
	if openErr != nil {
		status, msg := failure(openErr)
		writeError(w, status, msg)
		return
	}

	company, err := h.Company.GetInitial(r.Context())
	if err != nil {
		// Exports still render without the company header.
		h.Logger.Warn("export without company setup", slog.Any("error", err))
		company = nil
	}

	now := h.Reports.now()
	report := export.NewReport(sess.View(now), company, now)
	data, err := h.Exporter.Render(r.Context(), format, report)
	if h.Metrics != nil {
		h.Metrics.ObserveExport(string(format), err)
	}
	if err != nil {
		h.Logger.Error("export failed", slog.String("format", string(format)), slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "failed to generate "+string(format)+" export")
		return
	}

	filename := format.Filename(now)
	if r.URL.Query().Get("store") == "r2" {
		h.upload(w, r, format, filename, data, now)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (h *ExportHandler) upload(w http.ResponseWriter, r *http.Request, format export.Format, filename string, data []byte, now time.Time) {
	if h.Store == nil {
		writeError(w, http.StatusServiceUnavailable, "export storage is not configured")
		return
	}
	key := SessionID(r.Context()) + "-" + strconv.FormatInt(now.Unix(), 10) + "-" + filename
	url, err := h.Store.Upload(r.Context(), key, format.ContentType(), data)
	if err != nil {
		h.Logger.Error("export upload failed", slog.String("key", key), slog.Any("error", err))
		writeError(w, http.StatusBadGateway, "failed to store export")
		return
	}
	writeOK(w, http.StatusOK, map[string]string{"file": filename, "url": url})
}
