package registry

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/vitalboard/platform/pkg/common/logger"
	"github.com/vitalboard/platform/pkg/common/models"
	"github.com/vitalboard/platform/pkg/normalizer"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/records", h.handleCreateRecord).Methods(http.MethodPost)
	r.HandleFunc("/records", h.handleListRecords).Methods(http.MethodGet)
	r.HandleFunc("/dashboard", h.handleDashboard).Methods(http.MethodGet)
	r.HandleFunc("/import", h.handleImport).Methods(http.MethodPost)
	r.HandleFunc("/export", h.handleExport).Methods(http.MethodGet)
}

func (h *Handler) handleCreateRecord(w http.ResponseWriter, r *http.Request) {
	var data map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	rec, err := h.service.AddEntry(r.Context(), data)
	if err != nil {
		if normalizer.IsValidationError(err) {
			writeJSON(w, http.StatusBadRequest, map[string]interface{}{"error": err.Error()})
			return
		}
		logger.Log.WithError(err).Error("failed to add record")
		http.Error(w, "failed to add record", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"record":  rec,
		"message": fmt.Sprintf("Saved — estimated risk: %d", rec.Risk),
	})
}

func (h *Handler) handleListRecords(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		logger.Log.WithError(err).Error("failed to list records")
		http.Error(w, "failed to list records", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": list})
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Dashboard(r.Context())
	if err != nil {
		logger.Log.WithError(err).Error("failed to aggregate dashboard")
		http.Error(w, "failed to aggregate dashboard", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *Handler) handleImport(w http.ResponseWriter, r *http.Request) {
	document, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "failed to read document", http.StatusBadRequest)
		return
	}

	count, err := h.service.Import(r.Context(), document)
	if err != nil {
		if IsParseError(err) {
			writeJSON(w, http.StatusBadRequest, map[string]interface{}{"error": "Import failed: " + err.Error()})
			return
		}
		logger.Log.WithError(err).Error("failed to import collection")
		http.Error(w, "failed to import collection", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, models.ImportResult{
		Imported: count,
		Message:  fmt.Sprintf("%d records imported.", count),
	})
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	document, err := h.service.Export(r.Context())
	if err != nil {
		logger.Log.WithError(err).Error("failed to export collection")
		http.Error(w, "failed to export collection", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportFilename(time.Now())))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(document)
}

// exportFilename matches the download naming convention: the RFC3339
// timestamp with ':' and '.' replaced so it is filesystem-safe.
func exportFilename(now time.Time) string {
	stamp := now.UTC().Format(time.RFC3339)
	stamp = strings.NewReplacer(":", "-", ".", "-").Replace(stamp)
	return fmt.Sprintf("patients_demo_%s.json", stamp)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
