package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/username/amlview/backend/src/database"
	"github.com/username/amlview/backend/src/logger"
	"github.com/username/amlview/backend/src/model"
	"github.com/username/amlview/backend/src/security/validation"
	"github.com/username/amlview/backend/src/services"
	"github.com/username/amlview/backend/src/utils"
)

type FlagHandler struct {
	engineService services.EngineService
}

func NewFlagHandler(service services.EngineService) *FlagHandler {
	return &FlagHandler{
		engineService: service,
	}
}

// HandleGetFlags returns the current flag set with ETag support so the
// review UI can poll cheaply.
func (h *FlagHandler) HandleGetFlags(w http.ResponseWriter, r *http.Request) {
	flagSet := h.engineService.Flags()

	response := map[string]any{
		"flags": flagSet,
		"total": len(flagSet),
	}

	currentETag, etagErr := utils.GenerateETag(response)
	w.Header().Set("Cache-Control", "no-cache, private")

	if etagErr == nil && currentETag != "" {
		quotedETag := fmt.Sprintf("\"%s\"", currentETag)
		w.Header().Set("ETag", quotedETag)
		clientETag := r.Header.Get("If-None-Match")
		for _, cETag := range strings.Split(clientETag, ",") {
			if strings.TrimSpace(cETag) == quotedETag {
				w.WriteHeader(http.StatusNotModified)
				return
			}
		}
	} else {
		logger.L.Warn("Proceeding without ETag check due to ETag generation error", "error", etagErr)
	}

	utils.WriteJSON(w, http.StatusOK, response)
}

// HandleSetFlagNote stores a reviewer note on one flag. Notes survive flag
// regeneration.
func (h *FlagHandler) HandleSetFlagNote(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	flagID, err := strconv.Atoi(idStr)
	if err != nil {
		sendJSONError(w, "Invalid flag ID format", http.StatusBadRequest)
		return
	}

	var requestBody struct {
		Notes string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&requestBody); err != nil {
		sendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	note := validation.SanitizeText(validation.StripUnprintable(requestBody.Notes))
	if err := validation.ValidateStringMaxLength(note, validation.MaxNoteLength, "notes"); err != nil {
		sendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.engineService.SetFlagNote(flagID, note); err != nil {
		if errors.Is(err, services.ErrFlagNotFound) {
			sendJSONError(w, "Flag not found", http.StatusNotFound)
			return
		}
		logger.L.Error("Failed to set flag note", "flagID", flagID, "error", err)
		sendJSONError(w, "Failed to set flag note", http.StatusInternalServerError)
		return
	}

	if err := model.RecordAudit(database.DB, auditActor(r.Context()), "flag_note", map[string]any{
		"flagId": flagID,
	}); err != nil {
		logger.L.Error("Failed to record flag note audit entry", "flagID", flagID, "error", err)
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{"message": "Note saved"})
}

// HandleExportFlags streams the flag set as an xlsx workbook.
func (h *FlagHandler) HandleExportFlags(w http.ResponseWriter, r *http.Request) {
	payload, err := h.engineService.ExportFlags()
	if err != nil {
		logger.L.Error("Failed to build flag export workbook", "error", err)
		sendJSONError(w, "Failed to export flags", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="flagged_transactions.xlsx"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(payload)))
	if _, err := w.Write(payload); err != nil {
		logger.L.Error("Failed to write flag export response", "error", err)
	}
}
