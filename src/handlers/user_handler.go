package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/username/amlview/backend/src/config"
	"github.com/username/amlview/backend/src/database"
	"github.com/username/amlview/backend/src/logger"
	"github.com/username/amlview/backend/src/model"
	"github.com/username/amlview/backend/src/security"
	"github.com/username/amlview/backend/src/utils"
)

type contextKey string

const userIDContextKey contextKey = "userID"

// UserHandler carries the auth dependencies shared by the auth, OAuth and
// admin endpoints.
type UserHandler struct {
	authService *security.AuthService
}

func NewUserHandler(authService *security.AuthService) *UserHandler {
	return &UserHandler{
		authService: authService,
	}
}

func sendJSONError(w http.ResponseWriter, message string, statusCode int) {
	utils.SendJSONError(w, message, statusCode)
}

// isAdmin checks if an email belongs to a configured administrator.
func isAdmin(email string) bool {
	for _, adminEmail := range config.Cfg.AdminEmails {
		if strings.EqualFold(email, adminEmail) {
			return true
		}
	}
	return false
}

func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDContextKey).(int64)
	return userID, ok
}

// auditActor resolves the acting user's email for audit rows, falling back
// to the numeric ID when the lookup fails.
func auditActor(ctx context.Context) string {
	userID, ok := GetUserIDFromContext(ctx)
	if !ok {
		return "unknown"
	}
	user, err := model.GetUserByID(database.DB, userID)
	if err != nil {
		return "user:" + strconv.FormatInt(userID, 10)
	}
	return user.Email
}

// AdminMiddleware restricts a route group to configured administrators.
func (h *UserHandler) AdminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetUserIDFromContext(r.Context())
		if !ok {
			sendJSONError(w, "Authentication required", http.StatusUnauthorized)
			return
		}

		user, err := model.GetUserByID(database.DB, userID)
		if err != nil {
			sendJSONError(w, "User not found", http.StatusNotFound)
			return
		}

		if !isAdmin(user.Email) {
			logger.L.Warn("Admin access denied for user", "userID", user.ID)
			sendJSONError(w, "Forbidden: Administrator access required", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
