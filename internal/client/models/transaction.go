package models

// Transaction is one ledger movement as reported by the bank. It is only
// displayed, never stored.
type Transaction struct {
	ID     ID        `json:"id"`
	FromID ID        `json:"from_id"`
	ToID   ID        `json:"to_id"`
	Amount Amount    `json:"amount"`
	Date   Timestamp `json:"date"`
}

// SentBy reports whether userID is the paying side.
func (t Transaction) SentBy(userID string) bool {
	return t.FromID.String() == userID
}
