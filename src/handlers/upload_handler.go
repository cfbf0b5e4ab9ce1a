package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/username/amlview/backend/src/config"
	"github.com/username/amlview/backend/src/database"
	"github.com/username/amlview/backend/src/logger"
	"github.com/username/amlview/backend/src/model"
	"github.com/username/amlview/backend/src/parsers/registers"
	"github.com/username/amlview/backend/src/security/validation"
	"github.com/username/amlview/backend/src/services"
	"github.com/username/amlview/backend/src/sheet"
	"github.com/username/amlview/backend/src/utils"
)

type UploadHandler struct {
	engineService services.EngineService
}

func NewUploadHandler(service services.EngineService) *UploadHandler {
	return &UploadHandler{
		engineService: service,
	}
}

// HandleUpload ingests one register export. The multipart form carries the
// file under "file" and the register layout under "kind" (Deposit,
// Withdrawal or Buy/Sell).
func (h *UploadHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required or user ID not found in context", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(config.Cfg.MaxUploadSizeBytes); err != nil {
		logger.L.Warn("Failed to parse multipart form or request too large", "userID", userID, "error", err, "limit", config.Cfg.MaxUploadSizeBytes)
		utils.SendJSONError(w, fmt.Sprintf("Failed to process upload or file too large (max %d MB)", config.Cfg.MaxUploadSizeBytes/(1024*1024)), http.StatusBadRequest)
		return
	}

	kind, err := registers.ParseImportKind(r.FormValue("kind"))
	if err != nil {
		logger.L.Warn("Upload request with invalid 'kind' field", "userID", userID, "kind", r.FormValue("kind"))
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	logger.L.Info("Received register upload", "kind", kind, "userID", userID)

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		logger.L.Warn("Failed to retrieve file from request", "userID", userID, "error", err)
		utils.SendJSONError(w, "Failed to retrieve file from request. Ensure 'file' field is used.", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if fileHeader.Size > config.Cfg.MaxUploadSizeBytes {
		logger.L.Warn("Uploaded file header reports size too large", "userID", userID, "fileSize", fileHeader.Size, "limit", config.Cfg.MaxUploadSizeBytes)
		utils.SendJSONError(w, fmt.Sprintf("File too large, max %d MB", config.Cfg.MaxUploadSizeBytes/(1024*1024)), http.StatusBadRequest)
		return
	}

	clientContentType := fileHeader.Header.Get("Content-Type")
	if err := validation.ValidateClientContentType(clientContentType); err != nil {
		logger.L.Warn("Invalid client-declared file type", "userID", userID, "contentType", clientContentType, "error", err)
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	detectedContentType, err := validation.ValidateFileContentByMagicBytes(file)
	if err != nil {
		logger.L.Warn("Server-side file content validation failed", "userID", userID, "filename", fileHeader.Filename, "error", err)
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	logger.L.Info("File content validated by magic bytes", "userID", userID, "filename", fileHeader.Filename, "clientType", clientContentType, "detectedType", detectedContentType)

	data, err := io.ReadAll(io.LimitReader(file, config.Cfg.MaxUploadSizeBytes+1))
	if err != nil {
		logger.L.Error("Failed to read uploaded file", "userID", userID, "error", err)
		utils.SendJSONError(w, "Failed to read uploaded file", http.StatusInternalServerError)
		return
	}
	if int64(len(data)) > config.Cfg.MaxUploadSizeBytes {
		utils.SendJSONError(w, fmt.Sprintf("File too large, max %d MB", config.Cfg.MaxUploadSizeBytes/(1024*1024)), http.StatusBadRequest)
		return
	}

	grid, err := sheet.Decode(data)
	if err != nil {
		logger.L.Warn("Failed to decode uploaded spreadsheet", "userID", userID, "filename", fileHeader.Filename, "error", err)
		utils.SendJSONError(w, "Unable to parse file. Please upload a valid spreadsheet or CSV export.", http.StatusBadRequest)
		return
	}

	result, err := h.engineService.ImportGrid(grid, kind)
	if err != nil {
		if errors.Is(err, services.ErrNoValidData) {
			utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		logger.L.Error("Failed to import register grid", "userID", userID, "error", err)
		utils.SendJSONError(w, "Failed to process register file", http.StatusInternalServerError)
		return
	}

	if err := model.RecordAudit(database.DB, auditActor(r.Context()), "import", map[string]any{
		"kind":     string(kind),
		"filename": fileHeader.Filename,
		"imported": result.Imported,
	}); err != nil {
		logger.L.Error("Failed to record import audit entry", "userID", userID, "error", err)
	}

	utils.WriteJSON(w, http.StatusOK, result)
}
