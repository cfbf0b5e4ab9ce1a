package models

// Flag is a generated suspicion record handed to compliance review. Flags
// are regenerated wholesale whenever transactions, thresholds or scores
// change; only Notes survives regeneration (matched by logical identity).
type Flag struct {
	ID            int     `json:"id"`
	TransactionID int     `json:"transactionId"`
	Flag          string  `json:"flag"`
	SuspCode      string  `json:"suspCode"`
	Reason        string  `json:"reason"`
	Score         int     `json:"score"`
	SuspCodeDesc  string  `json:"suspCodeDesc"`
	AcNum         string  `json:"acNum"`
	Name          string  `json:"name"`
	Type          string  `json:"type"`
	Amount        float64 `json:"amount"`
	Date          string  `json:"date"`
	BankCode      string  `json:"bankCode"`
	Country       string  `json:"country"`
	Notes         string  `json:"notes"`
}
