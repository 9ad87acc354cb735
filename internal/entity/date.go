package entity

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar day, no time-of-day component. Follow-up scheduling
// works at day granularity, so comparisons are always done on the local
// calendar day regardless of how the value arrived (plain date or full
// timestamp).
type Date struct {
	t time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.Local)}
}

// DateOf collapses a timestamp to its calendar day in the timestamp's own
// location. A value that is "tomorrow" in UTC but "today" locally must be
// converted to local time by the caller first (see ParseDate).
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

func Today() Date {
	return DateOf(time.Now())
}

// ParseDate accepts either a plain YYYY-MM-DD date or a full ISO 8601
// timestamp. Timestamps are shifted to the local zone before the day is
// taken.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(dateLayout, s); err == nil {
		y, m, d := t.Date()
		return NewDate(y, m, d), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return DateOf(t.Local()), nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return DateOf(t.Local()), nil
	}
	return Date{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD or ISO 8601", s)
}

func (d Date) String() string {
	return d.t.Format(dateLayout)
}

func (d Date) IsZero() bool      { return d.t.IsZero() }
func (d Date) Equal(o Date) bool { return d.t.Equal(o.t) }
func (d Date) After(o Date) bool { return d.t.After(o.t) }

// AddDays returns the date n days later.
func (d Date) AddDays(n int) Date {
	return Date{d.t.AddDate(0, 0, n)}
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value stores the date as its YYYY-MM-DD text form; both Postgres DATE
// columns and SQLite TEXT columns accept it.
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.String(), nil
}

func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		*d = DateOf(v)
		return nil
	case string:
		parsed, err := ParseDate(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case []byte:
		return d.Scan(string(v))
	}
	return fmt.Errorf("cannot scan %T into Date", src)
}
