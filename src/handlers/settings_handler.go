package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/username/amlview/backend/src/database"
	"github.com/username/amlview/backend/src/logger"
	"github.com/username/amlview/backend/src/model"
	"github.com/username/amlview/backend/src/models"
	"github.com/username/amlview/backend/src/services"
	"github.com/username/amlview/backend/src/utils"
)

type SettingsHandler struct {
	engineService services.EngineService
}

func NewSettingsHandler(service services.EngineService) *SettingsHandler {
	return &SettingsHandler{
		engineService: service,
	}
}

func (h *SettingsHandler) HandleGetThresholds(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, h.engineService.Thresholds())
}

// HandleSetThresholds merges the submitted thresholds over the current set
// and re-runs the rules. Omitted fields keep their current values.
func (h *SettingsHandler) HandleSetThresholds(w http.ResponseWriter, r *http.Request) {
	thresholds := h.engineService.Thresholds()
	if err := json.NewDecoder(r.Body).Decode(&thresholds); err != nil {
		sendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	h.engineService.SetThresholds(thresholds)

	if err := model.RecordAudit(database.DB, auditActor(r.Context()), "thresholds_update", thresholds); err != nil {
		logger.L.Error("Failed to record thresholds audit entry", "error", err)
	}

	utils.WriteJSON(w, http.StatusOK, h.engineService.Thresholds())
}

func (h *SettingsHandler) HandleGetScores(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, h.engineService.Scores())
}

// HandleSetScores merges the submitted per-rule scores over the current
// table. Unknown rule names are rejected so typos don't silently produce
// default-scored flags.
func (h *SettingsHandler) HandleSetScores(w http.ResponseWriter, r *http.Request) {
	var submitted models.FlagScores
	if err := json.NewDecoder(r.Body).Decode(&submitted); err != nil {
		sendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	known := models.DefaultFlagScores()
	for name := range submitted {
		if _, ok := known[name]; !ok {
			sendJSONError(w, "Unknown flag name: "+name, http.StatusBadRequest)
			return
		}
	}

	scores := h.engineService.Scores()
	for name, score := range submitted {
		scores[name] = score
	}
	h.engineService.SetScores(scores)

	if err := model.RecordAudit(database.DB, auditActor(r.Context()), "scores_update", scores); err != nil {
		logger.L.Error("Failed to record scores audit entry", "error", err)
	}

	utils.WriteJSON(w, http.StatusOK, h.engineService.Scores())
}
