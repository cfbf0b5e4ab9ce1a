package handlers

import (
	"net/http"
	"strconv"

	"github.com/username/amlview/backend/src/database"
	"github.com/username/amlview/backend/src/logger"
	"github.com/username/amlview/backend/src/model"
	"github.com/username/amlview/backend/src/utils"
)

// HandleGetAuditLog returns the most recent audit rows, newest first.
func HandleGetAuditLog(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	entries, err := model.ListAudit(database.DB, limit)
	if err != nil {
		logger.L.Error("Failed to list audit log", "error", err)
		sendJSONError(w, "Failed to list audit log", http.StatusInternalServerError)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"entries": entries,
		"total":   len(entries),
	})
}
