package core

import "time"

// Milliunits is the integer amount representation used by the budget API:
// 1000 milliunits equal one major currency unit, so €10.00 is 10000.
type Milliunits int64

type (
	// Budget identifies one budget on the external service. The dashboard
	// always works on the first budget the service returns.
	Budget struct {
		ID   string
		Name string
	}

	// Category is a single spending category inside a group. YearlyTarget is
	// the category's yearly goal; categories without a goal carry 0.
	Category struct {
		ID           string
		Name         string
		YearlyTarget Milliunits
	}

	// CategoryGroup is a named, ordered collection of categories. Group names
	// are unique within a budget and are used as lookup keys.
	CategoryGroup struct {
		Name       string
		Categories []Category
	}

	// Transaction is one movement on an account. Amount is signed; spend
	// aggregation uses its absolute value. CategoryID is empty for
	// transactions that were never categorized.
	Transaction struct {
		ID         string
		CategoryID string
		Date       Date
		Payee      string
		Amount     Milliunits
	}

	Date struct {
		time.Time
	}
)

// NewDate creates a Date at midnight UTC.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses the API's YYYY-MM-DD date format.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	return d.Format("2006-01-02")
}

// abs returns the magnitude of an amount; the sign only encodes
// inflow versus outflow.
func (m Milliunits) abs() Milliunits {
	if m < 0 {
		return -m
	}
	return m
}

// clampTarget treats negative yearly targets as absent. The external service
// should never produce them, but a malformed goal must not poison totals.
func clampTarget(m Milliunits) Milliunits {
	if m < 0 {
		return 0
	}
	return m
}
