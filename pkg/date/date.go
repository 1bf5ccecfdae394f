// Package date provides a calendar date column that serialises as YYYY-MM-DD.
package date

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
)

const Layout = "2006-01-02"

// Date is a UTC calendar day. The zero value is the zero time.
type Date datatypes.Date

func New(year int, month time.Month, day int) Date {
	return Date(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// Of truncates t to its UTC calendar day.
func Of(t time.Time) Date {
	t = t.UTC()
	return New(t.Year(), t.Month(), t.Day())
}

func Parse(value string) (Date, error) {
	t, err := time.Parse(Layout, strings.TrimSpace(value))
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return Of(t), nil
}

func (d Date) Time() time.Time { return time.Time(d) }

func (d Date) IsZero() bool { return time.Time(d).IsZero() }

func (d Date) Before(o Date) bool { return time.Time(d).Before(time.Time(o)) }

func (d Date) After(o Date) bool { return time.Time(d).After(time.Time(o)) }

func (d Date) AddDays(n int) Date { return Of(time.Time(d).AddDate(0, 0, n)) }

// DaysUntil returns the whole days from d to o; negative when o is earlier.
func (d Date) DaysUntil(o Date) int {
	return int(time.Time(o).Sub(time.Time(d)).Hours() / 24)
}

func (d Date) String() string { return time.Time(d).Format(Layout) }

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d *Date) Scan(value any) error {
	if s, ok := value.(string); ok {
		if len(s) >= len(Layout) {
			s = s[:len(Layout)]
		}
		parsed, err := Parse(s)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	}
	if err := (*datatypes.Date)(d).Scan(value); err != nil {
		return err
	}
	*d = Of(time.Time(*d))
	return nil
}

func (d Date) Value() (driver.Value, error) {
	return datatypes.Date(d).Value()
}

func (Date) GormDataType() string { return "date" }
