package handlers

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/amlview/backend/src/logger"
	"github.com/username/amlview/backend/src/models"
	"github.com/username/amlview/backend/src/parsers/registers"
	"github.com/username/amlview/backend/src/services"
)

func TestMain(m *testing.M) {
	logger.InitLogger("error")
	os.Exit(m.Run())
}

// stubEngine satisfies services.EngineService with canned data.
type stubEngine struct {
	flagSet []models.Flag
	export  []byte
}

func (s *stubEngine) ImportGrid([][]string, registers.ImportKind) (*services.ImportResult, error) {
	return nil, services.ErrNoValidData
}
func (s *stubEngine) Transactions() []models.Transaction { return nil }
func (s *stubEngine) UpdateTransaction(int, models.TransactionPatch) error {
	return services.ErrTransactionNotFound
}
func (s *stubEngine) Flags() []models.Flag { return s.flagSet }
func (s *stubEngine) SetFlagNote(flagID int, note string) error {
	for i := range s.flagSet {
		if s.flagSet[i].ID == flagID {
			s.flagSet[i].Notes = note
			return nil
		}
	}
	return services.ErrFlagNotFound
}
func (s *stubEngine) ExportFlags() ([]byte, error)    { return s.export, nil }
func (s *stubEngine) Thresholds() models.Thresholds   { return models.DefaultThresholds() }
func (s *stubEngine) SetThresholds(models.Thresholds) {}
func (s *stubEngine) Scores() models.FlagScores       { return models.DefaultFlagScores() }
func (s *stubEngine) SetScores(models.FlagScores)     {}

func newFlagRouter(engine services.EngineService) *chi.Mux {
	h := NewFlagHandler(engine)
	r := chi.NewRouter()
	r.Get("/flags", h.HandleGetFlags)
	r.Put("/flags/{id}/note", h.HandleSetFlagNote)
	r.Get("/flags/export", h.HandleExportFlags)
	return r
}

func TestHandleGetFlagsETag(t *testing.T) {
	engine := &stubEngine{flagSet: []models.Flag{{ID: 1, Flag: "high_value"}}}
	router := newFlagRouter(engine)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/flags", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	etag := rec.Header().Get("ETag")
	require.NotEmpty(t, etag)
	assert.Contains(t, rec.Body.String(), `"total":1`)

	// Replaying the ETag yields 304 with an empty body.
	req := httptest.NewRequest(http.MethodGet, "/flags", nil)
	req.Header.Set("If-None-Match", etag)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotModified, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestHandleSetFlagNoteRejectsBadInput(t *testing.T) {
	router := newFlagRouter(&stubEngine{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/flags/abc/note", strings.NewReader(`{"notes":"x"}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/flags/1/note", strings.NewReader(`not json`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	longNote := `{"notes":"` + strings.Repeat("x", 2000) + `"}`
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/flags/1/note", strings.NewReader(longNote)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Unknown flag is a 404, checked before any side effects.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/flags/42/note", strings.NewReader(`{"notes":"x"}`)))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleExportFlagsHeaders(t *testing.T) {
	payload := []byte{0x50, 0x4B, 0x03, 0x04, 0x01}
	router := newFlagRouter(&stubEngine{export: payload})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/flags/export", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "flagged_transactions.xlsx")
	assert.Equal(t, payload, rec.Body.Bytes())
}
