package view

import (
	"time"

	"github.com/dmitrijs2005/coinbank/internal/client/api"
	"github.com/dmitrijs2005/coinbank/internal/client/models"
)

// DateLayout is the day-first layout history dates are shown in.
const DateLayout = "02/01/2006, 15:04:05"

const (
	invalidDate   = "Invalid Date"
	invalidAmount = "NaN"
)

// TxRow is one rendered history entry.
type TxRow struct {
	ID   string
	Sent bool
	// Amount is signed: "-" for money sent, "+" for money received.
	Amount       string
	Counterparty string
	Date         string
}

func (r TxRow) Direction() string {
	if r.Sent {
		return "Sent"
	}
	return "Received"
}

// CounterpartyLabel is "To" for sent rows and "From" otherwise.
func (r TxRow) CounterpartyLabel() string {
	if r.Sent {
		return "To"
	}
	return "From"
}

func BuildRows(txs []models.Transaction, userID string) []TxRow {
	rows := make([]TxRow, 0, len(txs))
	for _, tx := range txs {
		sent := tx.SentBy(userID)

		row := TxRow{
			ID:   tx.ID.String(),
			Sent: sent,
			Date: FormatDate(tx.Date.Time),
		}
		if sent {
			row.Amount = "-" + formatAmount(tx.Amount)
			row.Counterparty = tx.ToID.String()
		} else {
			row.Amount = "+" + formatAmount(tx.Amount)
			row.Counterparty = tx.FromID.String()
		}
		rows = append(rows, row)
	}
	return rows
}

func formatAmount(a models.Amount) string {
	if !a.Valid {
		return invalidAmount
	}
	return api.FormatAmount(a.Decimal)
}

// FormatDate renders t in local time, or "Invalid Date" for the zero time.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return invalidDate
	}
	return t.Local().Format(DateLayout)
}
