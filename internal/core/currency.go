package core

import (
	"fmt"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// CurrencyFormatter renders milliunit amounts as display strings using a
// fixed locale and currency. It is safe for concurrent use.
type CurrencyFormatter struct {
	printer *message.Printer
	symbol  string
}

// NewCurrencyFormatter builds a formatter for the given BCP 47 locale and
// ISO 4217 currency code, e.g. ("en-US", "EUR").
func NewCurrencyFormatter(locale, code string) (*CurrencyFormatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("parse locale %q: %w", locale, err)
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return nil, fmt.Errorf("parse currency code %q: %w", code, err)
	}

	p := message.NewPrinter(tag)
	return &CurrencyFormatter{
		printer: p,
		symbol:  p.Sprint(currency.Symbol(unit)),
	}, nil
}

// Format renders a milliunit amount with grouping and two fraction digits,
// e.g. 10000 -> "€10.00". The zero value renders as the formatted zero
// amount, which also covers fields the API left absent.
func (f *CurrencyFormatter) Format(m Milliunits) string {
	if m < 0 {
		return "-" + f.Format(-m)
	}
	return f.symbol + f.printer.Sprintf("%.2f", float64(m)/1000)
}
