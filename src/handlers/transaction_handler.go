package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/username/amlview/backend/src/database"
	"github.com/username/amlview/backend/src/logger"
	"github.com/username/amlview/backend/src/model"
	"github.com/username/amlview/backend/src/models"
	"github.com/username/amlview/backend/src/security/validation"
	"github.com/username/amlview/backend/src/services"
	"github.com/username/amlview/backend/src/utils"
)

type TransactionHandler struct {
	engineService services.EngineService
}

func NewTransactionHandler(service services.EngineService) *TransactionHandler {
	return &TransactionHandler{
		engineService: service,
	}
}

func (h *TransactionHandler) HandleGetTransactions(w http.ResponseWriter, r *http.Request) {
	txs := h.engineService.Transactions()
	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"transactions": txs,
		"total":        len(txs),
	})
}

// HandleUpdateTransaction patches reviewer-enrichment fields on one
// transaction. Changing them re-runs the rules.
func (h *TransactionHandler) HandleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		sendJSONError(w, "Invalid transaction ID format", http.StatusBadRequest)
		return
	}

	var patch models.TransactionPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		sendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if patch.Email != nil {
		sanitized := validation.SanitizeText(*patch.Email)
		if sanitized != "" {
			if err := validation.ValidateEmail(sanitized); err != nil {
				sendJSONError(w, err.Error(), http.StatusBadRequest)
				return
			}
		}
		patch.Email = &sanitized
	}
	if patch.EmploymentStatus != nil {
		sanitized := validation.SanitizeText(*patch.EmploymentStatus)
		patch.EmploymentStatus = &sanitized
	}
	if patch.FlagReason != nil {
		sanitized := validation.SanitizeText(*patch.FlagReason)
		patch.FlagReason = &sanitized
	}
	if patch.ContactChanges != nil {
		sanitized := validation.SanitizeText(*patch.ContactChanges)
		patch.ContactChanges = &sanitized
	}
	if patch.Country != nil {
		sanitized := validation.SanitizeText(*patch.Country)
		patch.Country = &sanitized
	}

	if err := h.engineService.UpdateTransaction(id, patch); err != nil {
		if errors.Is(err, services.ErrTransactionNotFound) {
			sendJSONError(w, "Transaction not found", http.StatusNotFound)
			return
		}
		if errors.Is(err, services.ErrInvalidPatch) {
			sendJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		logger.L.Error("Failed to update transaction", "transactionID", id, "error", err)
		sendJSONError(w, "Failed to update transaction", http.StatusInternalServerError)
		return
	}

	if err := model.RecordAudit(database.DB, auditActor(r.Context()), "transaction_update", map[string]any{
		"transactionId": id,
	}); err != nil {
		logger.L.Error("Failed to record transaction update audit entry", "transactionID", id, "error", err)
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{"message": "Transaction updated"})
}
