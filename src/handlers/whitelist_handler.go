package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/username/amlview/backend/src/database"
	"github.com/username/amlview/backend/src/logger"
	"github.com/username/amlview/backend/src/model"
	"github.com/username/amlview/backend/src/security/validation"
	"github.com/username/amlview/backend/src/utils"
)

type WhitelistHandler struct{}

func NewWhitelistHandler() *WhitelistHandler {
	return &WhitelistHandler{}
}

func (h *WhitelistHandler) HandleListWhitelist(w http.ResponseWriter, r *http.Request) {
	entries, err := model.ListWhitelist(database.DB)
	if err != nil {
		logger.L.Error("Failed to list whitelist entries", "error", err)
		sendJSONError(w, "Failed to list whitelist", http.StatusInternalServerError)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"entries": entries,
		"total":   len(entries),
	})
}

func (h *WhitelistHandler) HandleCreateWhitelistEntry(w http.ResponseWriter, r *http.Request) {
	var entry model.WhitelistEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		sendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	entry.AcNum = validation.SanitizeText(strings.TrimSpace(entry.AcNum))
	entry.Name = validation.SanitizeText(strings.TrimSpace(entry.Name))
	entry.Reason = validation.SanitizeText(strings.TrimSpace(entry.Reason))

	if err := validation.ValidateStringNotEmpty(entry.AcNum, "acNum"); err != nil {
		sendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := validation.ValidateStringNotEmpty(entry.Reason, "reason"); err != nil {
		sendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := validation.ValidateStringMaxLength(entry.Reason, validation.MaxNoteLength, "reason"); err != nil {
		sendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	entry.AddedBy = auditActor(r.Context())

	if err := entry.Create(database.DB); err != nil {
		logger.L.Error("Failed to create whitelist entry", "acNum", entry.AcNum, "error", err)
		sendJSONError(w, "Failed to create whitelist entry", http.StatusInternalServerError)
		return
	}

	if err := model.RecordAudit(database.DB, entry.AddedBy, "whitelist_add", map[string]any{
		"acNum": entry.AcNum,
		"id":    entry.ID,
	}); err != nil {
		logger.L.Error("Failed to record whitelist audit entry", "error", err)
	}

	utils.WriteJSON(w, http.StatusCreated, entry)
}

func (h *WhitelistHandler) HandleDeleteWhitelistEntry(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		sendJSONError(w, "Invalid whitelist entry ID format", http.StatusBadRequest)
		return
	}

	if err := model.DeleteWhitelistEntry(database.DB, id); err != nil {
		sendJSONError(w, "Whitelist entry not found", http.StatusNotFound)
		return
	}

	if err := model.RecordAudit(database.DB, auditActor(r.Context()), "whitelist_remove", map[string]any{
		"id": id,
	}); err != nil {
		logger.L.Error("Failed to record whitelist removal audit entry", "error", err)
	}

	w.WriteHeader(http.StatusNoContent)
}
