package model

import (
	"fmt"
	"time"
)

// dateLayout is the wire format for date columns (add_date, paid_date).
const dateLayout = "2006-01-02"

// Date is a calendar date without a time component.
//
// Postgres `date` columns are scanned into time.Time by the driver; Date
// wraps that value so JSON carries "2006-01-02" instead of a full RFC 3339
// timestamp.
type Date struct {
	time.Time
}

// NewDate truncates t to its calendar date.
func NewDate(t time.Time) Date {
	year, month, day := t.Date()
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current calendar date.
func Today() Date {
	return NewDate(time.Now())
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		*d = Date{}
		return nil
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid date %s", s)
	}
	t, err := time.Parse(dateLayout, s[1:len(s)-1])
	if err != nil {
		return err
	}
	*d = Date{t}
	return nil
}

func (d Date) String() string {
	return d.Format(dateLayout)
}
