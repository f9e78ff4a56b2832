package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/deppfellow/mipp-portal/internal/lib/workday"
	"github.com/jackc/pgx/v5/pgtype"
)

// Date is a calendar date without time of day. It travels as "YYYY-MM-DD"
// in JSON and maps onto PostgreSQL date columns.
type Date struct {
	time.Time
}

// NewDate wraps t, dropping the time of day.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func ParseDate(s string) (Date, error) {
	t, err := workday.ParseDate(s)
	if err != nil {
		return Date{}, fmt.Errorf("fecha inválida %q, se espera AAAA-MM-DD", s)
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return workday.FormatDate(d.Time)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("fecha inválida, se espera AAAA-MM-DD")
	}
	s = strings.TrimSpace(s)
	if s == "" {
		*d = Date{}
		return nil
	}
	// Accept full timestamps from older clients and keep only the date.
	if len(s) > 10 {
		s = s[:10]
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ScanDate implements pgtype.DateScanner.
func (d *Date) ScanDate(v pgtype.Date) error {
	if !v.Valid {
		*d = Date{}
		return nil
	}
	*d = NewDate(v.Time)
	return nil
}

// DateValue implements pgtype.DateValuer.
func (d Date) DateValue() (pgtype.Date, error) {
	if d.IsZero() {
		return pgtype.Date{}, nil
	}
	return pgtype.Date{Time: d.Time, Valid: true}, nil
}
