package model

import "github.com/shopspring/decimal"

// InvoiceLineItem is one billable row of an invoice.
// Invariants: Subtotal = Quantity × UnitPrice and
// Total = Subtotal − Discount + Surcharge; Total is always derived from the
// other fields, never stored independently.
type InvoiceLineItem struct {
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Discount    decimal.Decimal
	Surcharge   decimal.Decimal
	Subtotal    decimal.Decimal
	Total       decimal.Decimal
	// TaxIndicator is the free-text IVA bucket label ("22%", "Básica", …).
	TaxIndicator string
	Unit         string
}

// TaxSummary aggregates the line items that share one tax indicator.
// Rate is nil when no heuristic could resolve the indicator to a percentage.
type TaxSummary struct {
	Indicator string
	Rate      *decimal.Decimal
	Base      decimal.Decimal
	Total     decimal.Decimal
	TaxAmount decimal.Decimal
}
