package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// ID is an identifier the bank may send either as a JSON string or as a
// number. Both decode to the same textual form.
type ID string

func (id ID) String() string {
	return string(id)
}

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

// Layouts without a zone are read as local time.
var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Timestamp accepts RFC 3339-ish strings or epoch milliseconds. Values that
// cannot be interpreted decode to the zero time instead of failing the
// whole response.
type Timestamp struct {
	time.Time
}

func (ts *Timestamp) UnmarshalJSON(b []byte) error {
	ts.Time = time.Time{}

	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}

	if b[0] != '"' {
		ms, err := strconv.ParseFloat(string(b), 64)
		if err == nil {
			ts.Time = time.UnixMilli(int64(ms))
		}
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		ts.Time = t
		return nil
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			ts.Time = t
			return nil
		}
	}
	return nil
}

// Amount is a decimal the bank may send as a JSON string or number. A value
// that does not parse leaves Valid false instead of failing the response.
type Amount struct {
	decimal.Decimal
	Valid bool
}

func NewAmount(d decimal.Decimal) Amount {
	return Amount{Decimal: d, Valid: true}
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	*a = Amount{}

	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}

	raw := string(b)
	if b[0] == '"' {
		if err := json.Unmarshal(b, &raw); err != nil {
			return nil
		}
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil
	}
	*a = NewAmount(d)
	return nil
}
