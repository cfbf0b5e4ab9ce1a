package rules

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/username/amlview/backend/src/models"
)

// sortByDate returns the account's transactions ordered oldest-first.
// The sort is stable so same-day transactions keep import order.
func sortByDate(acct []models.Transaction) []models.Transaction {
	out := make([]models.Transaction, len(acct))
	copy(out, acct)
	sort.SliceStable(out, func(i, j int) bool {
		return parseDay(out[i].Date).Before(parseDay(out[j].Date))
	})
	return out
}

// accountMaxDate is the anchor of every trailing window: the latest
// transaction date within the account's own set, never wall-clock time.
func accountMaxDate(acct []models.Transaction) time.Time {
	var max time.Time
	for _, tx := range acct {
		if d := parseDay(tx.Date); d.After(max) {
			max = d
		}
	}
	return max
}

// trailingWindow keeps the transactions within `days` of the account's max
// date, preserving order.
func trailingWindow(acct []models.Transaction, maxDate time.Time, days int) []models.Transaction {
	var out []models.Transaction
	for _, tx := range acct {
		if daysBetween(parseDay(tx.Date), maxDate) <= days {
			out = append(out, tx)
		}
	}
	return out
}

// QuickWithdraw pairs every deposit with every withdrawal that lands on or
// within time_period_days after it and exceeds quick_withdraw_pct of the
// deposit amount.
func QuickWithdraw(acct []models.Transaction, t models.Thresholds) []RawFlag {
	if len(acct) == 0 {
		return nil
	}
	sorted := sortByDate(acct)
	var deposits, withdrawals []models.Transaction
	for _, tx := range sorted {
		switch tx.Type {
		case models.TypeDeposit:
			deposits = append(deposits, tx)
		case models.TypeWithdrawal:
			withdrawals = append(withdrawals, tx)
		}
	}
	var flags []RawFlag
	for _, dep := range deposits {
		depDate := parseDay(dep.Date)
		for _, wd := range withdrawals {
			gap := daysBetween(depDate, parseDay(wd.Date))
			if gap >= 0 && gap <= t.TimePeriodDays && wd.Amount > dep.Amount*t.QuickWithdrawPct/100 {
				flags = append(flags, RawFlag{
					Flag:     "quick_withdraw",
					SuspCode: "SC1",
					Reason:   fmt.Sprintf("Quick withdraw %.2f after deposit %.2f", wd.Amount, dep.Amount),
					AcNum:    wd.AcNum,
					Name:     wd.Name,
					Type:     wd.Type,
					Amount:   wd.Amount,
					Date:     wd.Date,
					BankCode: wd.BankCode,
				})
			}
		}
	}
	return flags
}

// CustomerCashTotal flags cumulative cash deposits above the configured
// ceiling.
func CustomerCashTotal(acct []models.Transaction, t models.Thresholds) []RawFlag {
	if len(acct) == 0 {
		return nil
	}
	var cashDeps []models.Transaction
	total := 0.0
	for _, tx := range acct {
		if tx.Type == models.TypeDeposit && tx.IsCash {
			cashDeps = append(cashDeps, tx)
			total += tx.Amount
		}
	}
	if total <= t.CustomerCashTotal {
		return nil
	}
	return []RawFlag{{
		Flag:     "customer_cash_total",
		SuspCode: "PC1",
		Reason:   fmt.Sprintf("Total cash deposits: %.2f > %v", total, t.CustomerCashTotal),
		AcNum:    cashDeps[0].AcNum,
		Name:     cashDeps[0].Name,
		Type:     models.TypeDeposit,
		Amount:   total,
		Date:     acct[len(acct)-1].Date,
		BankCode: "Multiple",
	}}
}

// MultipleDeposits flags deposits from num_deposits or more distinct bank
// codes inside the trailing window whose sum exceeds the configured total.
func MultipleDeposits(acct []models.Transaction, t models.Thresholds) []RawFlag {
	if len(acct) == 0 {
		return nil
	}
	maxDate := accountMaxDate(acct)
	var recentDeps []models.Transaction
	banks := map[string]bool{}
	total := 0.0
	for _, tx := range trailingWindow(acct, maxDate, t.TimePeriodDays) {
		if tx.Type == models.TypeDeposit {
			recentDeps = append(recentDeps, tx)
			banks[tx.BankCode] = true
			total += tx.Amount
		}
	}
	if len(banks) < t.NumDeposits || total <= t.MultipleDepositsTotal {
		return nil
	}
	return []RawFlag{{
		Flag:     "multiple_deposits",
		SuspCode: "SC4",
		Reason:   fmt.Sprintf("Multiple deposits from %d sources, total %.2f", len(banks), total),
		AcNum:    recentDeps[0].AcNum,
		Name:     recentDeps[0].Name,
		Type:     models.TypeDeposit,
		Amount:   total,
		Date:     maxDate.Format(models.DateLayout),
		BankCode: "Multiple",
	}}
}

// TotalValueOverTime flags each transaction type whose summed amount inside
// the trailing window exceeds high_value; one flag per exceeding type.
func TotalValueOverTime(acct []models.Transaction, t models.Thresholds) []RawFlag {
	if len(acct) == 0 {
		return nil
	}
	maxDate := accountMaxDate(acct)
	recent := trailingWindow(acct, maxDate, t.TimePeriodDays)
	if len(recent) == 0 {
		return nil
	}

	var typeOrder []string
	totals := map[string]float64{}
	for _, tx := range recent {
		if _, seen := totals[tx.Type]; !seen {
			typeOrder = append(typeOrder, tx.Type)
		}
		totals[tx.Type] += tx.Amount
	}

	var flags []RawFlag
	for _, typ := range typeOrder {
		if totals[typ] > t.HighValue {
			flags = append(flags, RawFlag{
				Flag:     "total_value_over_time",
				SuspCode: "SC3",
				Reason:   fmt.Sprintf("Total %s value %.2f > %v in %d days", typ, totals[typ], t.HighValue, t.TimePeriodDays),
				AcNum:    recent[0].AcNum,
				Name:     recent[0].Name,
				Type:     typ,
				Amount:   totals[typ],
				Date:     maxDate.Format(models.DateLayout),
				BankCode: "Multiple",
			})
		}
	}
	return flags
}

// InactivityDeposit flags a high-value deposit arriving after a gap longer
// than inactivity_days since the account's previous transaction.
func InactivityDeposit(acct []models.Transaction, t models.Thresholds) []RawFlag {
	if len(acct) == 0 {
		return nil
	}
	sorted := sortByDate(acct)
	var flags []RawFlag
	for i, tx := range sorted {
		if i == 0 {
			continue
		}
		gap := daysBetween(parseDay(sorted[i-1].Date), parseDay(tx.Date))
		if gap > t.InactivityDays && tx.Type == models.TypeDeposit && tx.Amount >= t.HighValue {
			flags = append(flags, RawFlag{
				Flag:     "inactivity_deposit",
				SuspCode: "SC5",
				Reason:   fmt.Sprintf("Deposit %.2f >= %v after %d days inactivity", tx.Amount, t.HighValue, gap),
				AcNum:    tx.AcNum,
				Name:     tx.Name,
				Type:     tx.Type,
				Amount:   tx.Amount,
				Date:     tx.Date,
				BankCode: tx.BankCode,
			})
		}
	}
	return flags
}

// PositionEmployment flags accounts whose total position is out of line with
// a declared unemployed/student status.
func PositionEmployment(acct []models.Transaction, t models.Thresholds) []RawFlag {
	if len(acct) == 0 {
		return nil
	}
	employment := ""
	for _, tx := range acct {
		if tx.EmploymentStatus != "" {
			employment = tx.EmploymentStatus
			break
		}
	}
	if employment == "" {
		return nil
	}
	total := 0.0
	for _, tx := range acct {
		total += tx.Amount
	}
	if total <= t.PositionThreshold || (employment != "unemployed" && employment != "student") {
		return nil
	}
	return []RawFlag{{
		Flag:     "position_employment",
		SuspCode: "SC3",
		Reason:   fmt.Sprintf("Total position %.2f > %v with employment %s", total, t.PositionThreshold, employment),
		AcNum:    acct[0].AcNum,
		Name:     acct[0].Name,
		Type:     "Group",
		Amount:   total,
		Date:     acct[len(acct)-1].Date,
		BankCode: "Multiple",
	}}
}

// UndeployedCash flags accounts sitting on a large average balance with no
// withdrawal inside the trailing window.
func UndeployedCash(acct []models.Transaction, t models.Thresholds) []RawFlag {
	if len(acct) == 0 {
		return nil
	}
	maxDate := accountMaxDate(acct)
	recent := trailingWindow(acct, maxDate, t.TimePeriodDays)
	if len(recent) == 0 {
		return nil
	}
	balanceSum := 0.0
	for _, tx := range recent {
		if tx.Type == models.TypeWithdrawal {
			return nil
		}
		balanceSum += tx.Balance
	}
	avg := balanceSum / float64(len(recent))
	if avg < t.UndeployedCash {
		return nil
	}
	return []RawFlag{{
		Flag:     "undeployed_cash",
		SuspCode: "SC1",
		Reason:   fmt.Sprintf("Undeployed cash %.2f >= %v over %d days (no withdrawals)", avg, t.UndeployedCash, t.TimePeriodDays),
		AcNum:    recent[0].AcNum,
		Name:     recent[0].Name,
		Type:     "Group",
		Amount:   avg,
		Date:     maxDate.Format(models.DateLayout),
		BankCode: "Multiple",
	}}
}

// ContactChanges counts contact-change dates across the account that fall
// inside the trailing window.
func ContactChanges(acct []models.Transaction, t models.Thresholds) []RawFlag {
	if len(acct) == 0 {
		return nil
	}
	var changes []time.Time
	for _, tx := range acct {
		if tx.ContactChanges == "" {
			continue
		}
		for _, part := range strings.Split(tx.ContactChanges, ",") {
			if d, err := time.Parse(models.DateLayout, strings.TrimSpace(part)); err == nil {
				changes = append(changes, d)
			}
		}
	}
	if len(changes) == 0 {
		return nil
	}
	maxDate := accountMaxDate(acct)
	recent := 0
	for _, d := range changes {
		if daysBetween(d, maxDate) <= t.TimePeriodDays {
			recent++
		}
	}
	if recent < t.NumContactChanges {
		return nil
	}
	return []RawFlag{{
		Flag:     "contact_changes",
		SuspCode: "SC5",
		Reason:   fmt.Sprintf("%d critical contact changes in %d days >= %d", recent, t.TimePeriodDays, t.NumContactChanges),
		AcNum:    acct[0].AcNum,
		Name:     acct[0].Name,
		Type:     "Group",
		Date:     maxDate.Format(models.DateLayout),
		BankCode: "Multiple",
	}}
}

// SameEmailDifferentNames flags the account when one of its email addresses
// appears anywhere in the collection under a different customer name. The
// detector looks across all transactions but emits at most one flag per
// (email, account) pair, so an email shared by two accounts produces one
// flag for each.
func SameEmailDifferentNames(acct []models.Transaction, all []models.Transaction) []RawFlag {
	if len(acct) == 0 {
		return nil
	}

	namesByEmail := map[string]map[string]bool{}
	for _, tx := range all {
		if tx.Email == "" || tx.Name == "" {
			continue
		}
		if namesByEmail[tx.Email] == nil {
			namesByEmail[tx.Email] = map[string]bool{}
		}
		namesByEmail[tx.Email][tx.Name] = true
	}

	var flags []RawFlag
	seen := map[string]bool{}
	for _, tx := range acct {
		if tx.Email == "" || seen[tx.Email] || len(namesByEmail[tx.Email]) < 2 {
			continue
		}
		seen[tx.Email] = true

		// Names in first-appearance order over the full collection.
		var names []string
		listed := map[string]bool{}
		for _, other := range all {
			if other.Email == tx.Email && other.Name != "" && !listed[other.Name] {
				listed[other.Name] = true
				names = append(names, other.Name)
			}
		}

		// Date of the account's latest row carrying this email.
		date := tx.Date
		for _, own := range acct {
			if own.Email == tx.Email {
				date = own.Date
			}
		}

		flags = append(flags, RawFlag{
			Flag:     "same_email_different_names",
			SuspCode: "SC2",
			Reason:   fmt.Sprintf("Email %s used by multiple names: %s", tx.Email, strings.Join(names, ", ")),
			AcNum:    tx.AcNum,
			Name:     tx.Name,
			Type:     "Group",
			Date:     date,
			BankCode: "Multiple",
		})
	}
	return flags
}
