// Package flags assembles scored Flag records from raw rule hits.
package flags

import (
	"fmt"

	"github.com/username/amlview/backend/src/models"
	"github.com/username/amlview/backend/src/rules"
)

// SuspCodeDescriptions is the static suspicion-code dictionary attached to
// every flag.
var SuspCodeDescriptions = map[string]string{
	"SC1": "No underlying legal or trade obligation",
	"SC2": "Suspicious use of same email for multiple accounts",
	"SC3": "Amount not commensurate with client capacity",
	"SC4": "Unusual cash transaction activity",
	"SC5": "Unusual activity after inactivity or contact changes",
	"PC1": "High cumulative cash deposits",
}

// logicalKey identifies the same flag across regenerations so that reviewer
// notes survive a recompute.
func logicalKey(f models.Flag) string {
	return fmt.Sprintf("%s|%s|%d|%s", f.Flag, f.AcNum, f.TransactionID, f.Date)
}

// Assemble converts rule hits into the final Flag collection. IDs are
// assigned sequentially per regeneration pass, scores come from the score
// table (1 when the detector is unscored), and empty raw fields fall back to
// the representative transaction. Notes from the previous generation are
// carried over when the same logical flag re-fires.
func Assemble(hits []rules.Hit, scores models.FlagScores, prev []models.Flag) []models.Flag {
	prevNotes := map[string]string{}
	for _, f := range prev {
		if f.Notes == "" {
			continue
		}
		key := logicalKey(f)
		if _, ok := prevNotes[key]; !ok {
			prevNotes[key] = f.Notes
		}
	}

	out := make([]models.Flag, 0, len(hits))
	for i, hit := range hits {
		raw, tx := hit.Raw, hit.Tx

		f := models.Flag{
			ID:            i + 1,
			TransactionID: tx.ID,
			Flag:          raw.Flag,
			SuspCode:      raw.SuspCode,
			Reason:        raw.Reason,
			Score:         scoreFor(scores, raw.Flag),
			SuspCodeDesc:  SuspCodeDescriptions[raw.SuspCode],
			AcNum:         fallback(raw.AcNum, tx.AcNum),
			Name:          fallback(raw.Name, tx.Name),
			Type:          fallback(raw.Type, tx.Type),
			Amount:        raw.Amount,
			Date:          fallback(raw.Date, tx.Date),
			BankCode:      fallback(raw.BankCode, tx.BankCode),
			Country:       tx.Country,
		}
		if f.Amount == 0 {
			f.Amount = tx.Amount
		}
		f.Notes = prevNotes[logicalKey(f)]
		out = append(out, f)
	}
	return out
}

func scoreFor(scores models.FlagScores, flag string) int {
	if s, ok := scores[flag]; ok {
		return s
	}
	return 1
}

func fallback(v, def string) string {
	if v != "" {
		return v
	}
	return def
}
