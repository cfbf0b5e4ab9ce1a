package rules

import (
	"github.com/username/amlview/backend/src/models"
)

// Hit pairs a raw flag with the transaction that represents it during
// assembly: the triggering transaction for per-row detectors, the account's
// first transaction for account-level detectors.
type Hit struct {
	Raw RawFlag
	Tx  models.Transaction
}

// Row detectors in fixed evaluation order.
var rowRules = []RowRule{
	HighValue,
	LargeCashDeposit,
	DepositHighRisk,
	FlaggedAccount,
}

// Account detectors in fixed evaluation order. SameEmailDifferentNames
// needs the full collection and is appended separately by Evaluate.
var accountRules = []AccountRule{
	QuickWithdraw,
	CustomerCashTotal,
	MultipleDeposits,
	TotalValueOverTime,
	InactivityDeposit,
	PositionEmployment,
	UndeployedCash,
	ContactChanges,
}

// Evaluate runs every detector over the transaction collection and returns
// the raw hits in deterministic order: per-row detectors first, in table
// order per transaction, then account detectors grouped by account in order
// of each account's first appearance. Identical inputs always produce an
// identical hit sequence.
func Evaluate(txs []models.Transaction, t models.Thresholds) []Hit {
	var hits []Hit

	for _, tx := range txs {
		for _, rule := range rowRules {
			for _, raw := range rule(tx, t) {
				hits = append(hits, Hit{Raw: raw, Tx: tx})
			}
		}
	}

	// Group by account, keeping first-appearance order.
	var acNums []string
	groups := map[string][]models.Transaction{}
	for _, tx := range txs {
		if tx.AcNum == "" {
			continue
		}
		if _, ok := groups[tx.AcNum]; !ok {
			acNums = append(acNums, tx.AcNum)
		}
		groups[tx.AcNum] = append(groups[tx.AcNum], tx)
	}

	for _, acNum := range acNums {
		acct := groups[acNum]
		ref := acct[0]
		for _, rule := range accountRules {
			for _, raw := range rule(acct, t) {
				hits = append(hits, Hit{Raw: raw, Tx: ref})
			}
		}
		for _, raw := range SameEmailDifferentNames(acct, txs) {
			hits = append(hits, Hit{Raw: raw, Tx: ref})
		}
	}

	return hits
}
