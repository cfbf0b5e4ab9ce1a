package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/username/amlview/backend/src/flags"
	"github.com/username/amlview/backend/src/logger"
	"github.com/username/amlview/backend/src/models"
	"github.com/username/amlview/backend/src/parsers/registers"
	"github.com/username/amlview/backend/src/processors"
	"github.com/username/amlview/backend/src/rules"
)

const (
	ckFlagExport           = "export_flags_rev_%d"
	DefaultCacheExpiration = 15 * time.Minute
	CacheCleanupInterval   = 30 * time.Minute
)

type engineServiceImpl struct {
	mu sync.Mutex

	processor *processors.TransactionProcessor
	settings  SettingsStore
	reports   *cache.Cache

	txs        []models.Transaction
	flagSet    []models.Flag
	thresholds models.Thresholds
	scores     models.FlagScores
	nextTxID   int
	revision   uint64
}

// NewEngineService builds the engine with default configuration, overlaid
// with whatever the settings store has persisted. store may be nil.
func NewEngineService(processor *processors.TransactionProcessor, store SettingsStore, reports *cache.Cache) EngineService {
	s := &engineServiceImpl{
		processor:  processor,
		settings:   store,
		reports:    reports,
		thresholds: models.DefaultThresholds(),
		scores:     models.DefaultFlagScores(),
		nextTxID:   1,
	}
	if store != nil {
		if t, err := store.LoadThresholds(); err != nil {
			logger.L.Warn("Could not load persisted thresholds, using defaults", "error", err)
		} else if t != nil {
			s.thresholds = *t
		}
		if sc, err := store.LoadScores(); err != nil {
			logger.L.Warn("Could not load persisted flag scores, using defaults", "error", err)
		} else if sc != nil {
			s.scores = sc
		}
	}
	return s
}

func (s *engineServiceImpl) ImportGrid(grid [][]string, kind registers.ImportKind) (*ImportResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	extracted, warnings := registers.Extract(grid, kind)
	repaired := registers.Repair(extracted, kind)
	newTxs := s.processor.Process(repaired, kind, s.nextTxID)

	if len(newTxs) == 0 {
		logger.L.Warn("Import produced no valid transactions", "kind", string(kind), "gridRows", len(grid))
		return nil, ErrNoValidData
	}

	s.txs = append(s.txs, newTxs...)
	s.nextTxID += len(newTxs)
	s.recomputeLocked()

	logger.L.Info("Register import complete",
		"kind", string(kind),
		"imported", len(newTxs),
		"totalTransactions", len(s.txs),
		"totalFlags", len(s.flagSet),
		"duration", time.Since(start))

	return &ImportResult{
		Imported:          len(newTxs),
		TotalTransactions: len(s.txs),
		TotalFlags:        len(s.flagSet),
		Warnings:          warnings,
	}, nil
}

func (s *engineServiceImpl) Transactions() []models.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Transaction, len(s.txs))
	copy(out, s.txs)
	return out
}

func (s *engineServiceImpl) UpdateTransaction(id int, patch models.TransactionPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.txs {
		if s.txs[i].ID != id {
			continue
		}
		tx := s.txs[i]
		if patch.Email != nil {
			tx.Email = *patch.Email
		}
		if patch.EmploymentStatus != nil {
			tx.EmploymentStatus = *patch.EmploymentStatus
		}
		if patch.IsFlagged != nil {
			tx.IsFlagged = *patch.IsFlagged
		}
		if patch.FlagReason != nil {
			tx.FlagReason = *patch.FlagReason
		}
		if patch.Balance != nil {
			tx.Balance = *patch.Balance
		}
		if patch.ContactChanges != nil {
			tx.ContactChanges = *patch.ContactChanges
		}
		if patch.Country != nil {
			tx.Country = *patch.Country
		}
		// The patched transaction must still satisfy the schema the import
		// pipeline enforces; the collection never holds an invalid row.
		if err := tx.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidPatch, err)
		}
		s.txs[i] = tx
		s.recomputeLocked()
		return nil
	}
	return ErrTransactionNotFound
}

func (s *engineServiceImpl) Flags() []models.Flag {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Flag, len(s.flagSet))
	copy(out, s.flagSet)
	return out
}

func (s *engineServiceImpl) SetFlagNote(flagID int, note string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.flagSet {
		if s.flagSet[i].ID == flagID {
			s.flagSet[i].Notes = note
			// The export cache keys on revision; a note edit changes the
			// workbook contents even though no recompute runs.
			s.revision++
			return nil
		}
	}
	return ErrFlagNotFound
}

func (s *engineServiceImpl) Thresholds() models.Thresholds {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.thresholds
}

func (s *engineServiceImpl) SetThresholds(t models.Thresholds) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.thresholds = t
	s.recomputeLocked()
	if s.settings != nil {
		if err := s.settings.SaveThresholds(t); err != nil {
			logger.L.Error("Failed to persist thresholds", "error", err)
		}
	}
}

func (s *engineServiceImpl) Scores() models.FlagScores {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scores.Clone()
}

func (s *engineServiceImpl) SetScores(sc models.FlagScores) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scores = sc.Clone()
	s.recomputeLocked()
	if s.settings != nil {
		if err := s.settings.SaveScores(sc); err != nil {
			logger.L.Error("Failed to persist flag scores", "error", err)
		}
	}
}

func (s *engineServiceImpl) ExportFlags() ([]byte, error) {
	s.mu.Lock()
	flagsCopy := make([]models.Flag, len(s.flagSet))
	copy(flagsCopy, s.flagSet)
	rev := s.revision
	s.mu.Unlock()

	cacheKey := fmt.Sprintf(ckFlagExport, rev)
	if s.reports != nil {
		if cached, found := s.reports.Get(cacheKey); found {
			return cached.([]byte), nil
		}
	}

	data, err := buildFlagWorkbook(flagsCopy)
	if err != nil {
		return nil, err
	}
	if s.reports != nil {
		s.reports.Set(cacheKey, data, DefaultCacheExpiration)
	}
	return data, nil
}

// recomputeLocked regenerates the flag collection from scratch. Caller
// holds s.mu. Reviewer notes are rejoined by logical flag identity inside
// the assembler.
func (s *engineServiceImpl) recomputeLocked() {
	hits := rules.Evaluate(s.txs, s.thresholds)
	s.flagSet = flags.Assemble(hits, s.scores, s.flagSet)
	s.revision++
}
