package pdf

// sanitize.go
// Sanitation and locale-tolerant parsing of the loosely-typed values found in
// invoice rows and provider payloads. Every function here degrades instead of
// failing: unknown types become empty strings, unparseable numbers become 0.

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// sanitizeString normalizes an arbitrary decoded-JSON value into a trimmed
// string. Numbers and booleans stringify; objects, arrays and nil yield "".
func sanitizeString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

var nonNumericRe = regexp.MustCompile(`[^0-9.,+-]`)

// parseNumber parses a decimal that may use either "," or "." as decimal
// separator ("1.234,56" and "1234.56" are the same value). When the last
// comma appears after the last dot the comma is taken as the decimal point
// and every other separator is treated as thousands grouping; otherwise
// commas are grouping and the dot is the decimal point. Unparseable input
// yields zero, never an error.
func parseNumber(v any) decimal.Decimal {
	d, _ := parseNumberOK(v)
	return d
}

// parseNumberOK additionally reports whether the input actually held a number,
// so callers can distinguish "0" from "absent / garbage".
func parseNumberOK(v any) (decimal.Decimal, bool) {
	if d, ok := v.(decimal.Decimal); ok {
		return d, true
	}
	s := nonNumericRe.ReplaceAllString(sanitizeString(v), "")
	if s == "" {
		return decimal.Zero, false
	}
	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")
	if lastComma > lastDot {
		frac := s[lastComma+1:]
		whole := strings.ReplaceAll(s[:lastComma], ",", "")
		s = strings.ReplaceAll(whole, ".", "") + "." + frac
	} else {
		s = strings.ReplaceAll(s, ",", "")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

var isoDateRe = regexp.MustCompile(`(\d{4})-(\d{2})-(\d{2})`)

// resolveDateValue returns the first candidate that sanitizes to a non-empty
// string. ISO dates (YYYY-MM-DD, possibly with a time suffix) are reformatted
// to DD/MM/YYYY; everything else passes through unmodified — downstream
// rendering tolerates raw date strings.
func resolveDateValue(candidates ...any) string {
	for _, c := range candidates {
		s := sanitizeString(c)
		if s == "" {
			continue
		}
		if m := isoDateRe.FindStringSubmatch(s); m != nil {
			return m[3] + "/" + m[2] + "/" + m[1]
		}
		return s
	}
	return ""
}

var typecfeLabels = map[int]string{
	101: "e-Ticket",
	102: "Nota de crédito e-Factura",
	103: "Nota de débito e-Factura",
	111: "e-Factura",
	112: "Nota de crédito e-Ticket",
	113: "Nota de débito e-Ticket",
}

// describeTypecfe maps a DGI document-type code to its human label.
// Unknown numeric codes render as "CFE <n>"; missing or non-numeric input
// renders as the generic "CFE".
func describeTypecfe(v any) string {
	s := sanitizeString(v)
	if s == "" {
		return "CFE"
	}
	n, ok := parseNumberOK(s)
	if !ok || !n.IsInteger() || n.Sign() <= 0 {
		return "CFE"
	}
	code := int(n.IntPart())
	if label, found := typecfeLabels[code]; found {
		return label
	}
	return "CFE " + strconv.Itoa(code)
}

var leadingPercentRe = regexp.MustCompile(`^\s*(\d+(?:[.,]\d+)?)\s*%`)

// resolveTaxRate classifies a free-text tax-indicator label into an IVA
// percentage. A leading percentage token wins; otherwise keyword heuristics
// apply in a fixed order (básica → 22, mínima → 10, literal "22"/"10",
// exemption keywords → 0). Returns nil when nothing matches. Labels that
// satisfy more than one rule resolve to the first match — the source data
// gives no way to disambiguate them.
func resolveTaxRate(indicator string) *decimal.Decimal {
	s := strings.ToLower(strings.TrimSpace(indicator))
	if s == "" {
		return nil
	}
	if m := leadingPercentRe.FindStringSubmatch(s); m != nil {
		d := parseNumber(m[1])
		return &d
	}
	rate := func(n int64) *decimal.Decimal {
		d := decimal.NewFromInt(n)
		return &d
	}
	switch {
	case strings.Contains(s, "bás"), strings.Contains(s, "bas"):
		return rate(22)
	case strings.Contains(s, "mín"), strings.Contains(s, "min"):
		return rate(10)
	case strings.Contains(s, "22"):
		return rate(22)
	case strings.Contains(s, "10"):
		return rate(10)
	case strings.Contains(s, "exent"), strings.Contains(s, "exon"),
		strings.Contains(s, "sin iva"), strings.Contains(s, "no grav"):
		return rate(0)
	}
	return nil
}

// formatAmount renders a monetary quantity in Uruguayan style:
// dot as thousands grouping, comma as decimal separator ("1.500,00").
func formatAmount(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart, fracPart, _ := strings.Cut(s, ".")
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	b.WriteByte(',')
	b.WriteString(fracPart)
	return b.String()
}

// formatCurrency prefixes formatAmount with the currency symbol.
func formatCurrency(d decimal.Decimal, currency string) string {
	return currencySymbol(currency) + " " + formatAmount(d)
}

func currencySymbol(currency string) string {
	switch strings.ToUpper(strings.TrimSpace(currency)) {
	case "USD", "US$", "U$S", "DOLAR", "DÓLAR", "DOLARES", "DÓLARES":
		return "U$S"
	default:
		return "$"
	}
}

// formatQuantity renders a quantity with comma decimal separator and no
// trailing zeros ("2", "1,5").
func formatQuantity(d decimal.Decimal) string {
	return strings.ReplaceAll(d.Truncate(4).String(), ".", ",")
}
