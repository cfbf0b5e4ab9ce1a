package services

import (
	"errors"

	"github.com/username/amlview/backend/src/models"
	"github.com/username/amlview/backend/src/parsers/registers"
)

// Common service errors.
var (
	ErrNoValidData         = errors.New("no valid data found in file")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrFlagNotFound        = errors.New("flag not found")
	ErrInvalidPatch        = errors.New("patch produces an invalid transaction")
)

// ImportResult summarizes one register import.
type ImportResult struct {
	Imported          int      `json:"imported"`
	TotalTransactions int      `json:"totalTransactions"`
	TotalFlags        int      `json:"totalFlags"`
	Warnings          []string `json:"warnings,omitempty"`
}

// EngineService is the single writer over the transaction collection, the
// threshold/score configuration and the derived flag collection. Callers
// serialize through it; every mutation that can change a rule outcome
// triggers a full, deterministic flag regeneration.
type EngineService interface {
	ImportGrid(grid [][]string, kind registers.ImportKind) (*ImportResult, error)
	Transactions() []models.Transaction
	UpdateTransaction(id int, patch models.TransactionPatch) error

	Flags() []models.Flag
	SetFlagNote(flagID int, note string) error
	ExportFlags() ([]byte, error)

	Thresholds() models.Thresholds
	SetThresholds(models.Thresholds)
	Scores() models.FlagScores
	SetScores(models.FlagScores)
}

// SettingsStore persists reviewer configuration across restarts. The engine
// works without one (nil store): thresholds and scores then start from
// defaults every run.
type SettingsStore interface {
	LoadThresholds() (*models.Thresholds, error)
	SaveThresholds(models.Thresholds) error
	LoadScores() (models.FlagScores, error)
	SaveScores(models.FlagScores) error
}
