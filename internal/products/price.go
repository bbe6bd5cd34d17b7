// internal/products/price.go
package products

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type CurrencyPosition string

const (
	CurrencyLeft       CurrencyPosition = "left"
	CurrencyRight      CurrencyPosition = "right"
	CurrencyLeftSpace  CurrencyPosition = "left_space"
	CurrencyRightSpace CurrencyPosition = "right_space"
)

// PriceFormatter renders catalog prices the way the shop front displays them.
type PriceFormatter struct {
	symbol   string
	position CurrencyPosition
	format   string
	printer  *message.Printer
}

func NewPriceFormatter(symbol string, position CurrencyPosition, decimals int, locale string) *PriceFormatter {
	if decimals < 0 {
		decimals = 0
	}
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}

	switch position {
	case CurrencyLeft, CurrencyRight, CurrencyLeftSpace, CurrencyRightSpace:
	default:
		position = CurrencyLeft
	}

	return &PriceFormatter{
		symbol:   symbol,
		position: position,
		format:   fmt.Sprintf("%%.%df", decimals),
		printer:  message.NewPrinter(tag),
	}
}

// DefaultPriceFormatter formats US dollars with two decimals.
func DefaultPriceFormatter() *PriceFormatter {
	return NewPriceFormatter("$", CurrencyLeft, 2, "en")
}

func (f *PriceFormatter) Format(amount float64) string {
	number := f.printer.Sprintf(f.format, amount)

	switch f.position {
	case CurrencyRight:
		return number + f.symbol
	case CurrencyLeftSpace:
		return f.symbol + " " + number
	case CurrencyRightSpace:
		return number + " " + f.symbol
	default:
		return f.symbol + number
	}
}

// Range formats a min/max pair, collapsing to a single price when equal.
func (f *PriceFormatter) Range(min, max float64) string {
	if min == max {
		return f.Format(min)
	}
	return f.Format(min) + " - " + f.Format(max)
}
