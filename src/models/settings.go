package models

// Thresholds is the named set of numeric rule parameters. Values are
// accepted as-is; a negative threshold simply changes which comparisons
// fire.
type Thresholds struct {
	HighValue             float64 `json:"high_value"`
	CashDeposit           float64 `json:"cash_deposit"`
	TimePeriodDays        int     `json:"time_period_days"`
	QuickWithdrawPct      float64 `json:"quick_withdraw_pct"`
	CustomerCashTotal     float64 `json:"customer_cash_total"`
	NumDeposits           int     `json:"num_deposits"`
	MultipleDepositsTotal float64 `json:"multiple_deposits_total"`
	InactivityDays        int     `json:"inactivity_days"`
	PositionThreshold     float64 `json:"position_threshold"`
	UndeployedCash        float64 `json:"undeployed_cash"`
	NumContactChanges     int     `json:"num_contact_changes"`
}

// DefaultThresholds returns the stock configuration reviewers start from.
func DefaultThresholds() Thresholds {
	return Thresholds{
		HighValue:             500000,
		CashDeposit:           100000,
		TimePeriodDays:        30,
		QuickWithdrawPct:      50,
		CustomerCashTotal:     1000000,
		NumDeposits:           3,
		MultipleDepositsTotal: 500000,
		InactivityDays:        90,
		PositionThreshold:     1000000,
		UndeployedCash:        500000,
		NumContactChanges:     2,
	}
}

// FlagScores maps a detector name to its severity score. Detectors missing
// from the table score 1.
type FlagScores map[string]int

// DefaultFlagScores returns every detector scored at 1.
func DefaultFlagScores() FlagScores {
	return FlagScores{
		"high_value":                 1,
		"cash_deposit":               1,
		"quick_withdraw":             1,
		"customer_cash_total":        1,
		"multiple_deposits":          1,
		"deposit_high_risk":          1,
		"flagged_account":            1,
		"total_value_over_time":      1,
		"inactivity_deposit":         1,
		"position_employment":        1,
		"undeployed_cash":            1,
		"contact_changes":            1,
		"same_email_different_names": 1,
	}
}

// Clone returns an independent copy of the score table.
func (s FlagScores) Clone() FlagScores {
	out := make(FlagScores, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}
