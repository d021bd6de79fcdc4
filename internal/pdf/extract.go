package pdf

// extract.go
// Best-effort extraction of structured facts from the two heterogeneous
// payloads stored alongside an invoice: the request sent to the e-invoicing
// provider and the provider's authorization response. Nothing here throws;
// malformed segments are dropped and missing keys come back empty.

import (
	"encoding/json"
	"reflect"
	"sort"
	"strings"

	"github.com/navarromaxi/gym-manager-pro2-sub000/internal/model"
	"github.com/shopspring/decimal"
)

// ── Key-hint search ──────────────────────────────────────────────────────────

// findValueByKeyHints walks a decoded-JSON tree depth first and returns the
// first scalar whose lower-cased key path contains every token of a hint
// group. Groups are tried in priority order. Matching on the full dot-joined
// path (not just the leaf key) lets a group like ["cae","nro"] locate
// {"parsed":{"cae":{"nro":…}}} without a fixed schema.
func findValueByKeyHints(root any, groups ...[]string) any {
	for _, group := range groups {
		seen := make(map[uintptr]bool)
		if v, ok := searchByHints(root, "", group, seen); ok {
			return v
		}
	}
	return nil
}

func searchByHints(v any, path string, tokens []string, seen map[uintptr]bool) (any, bool) {
	switch t := v.(type) {
	case map[string]any:
		ptr := reflect.ValueOf(t).Pointer()
		if seen[ptr] {
			return nil, false
		}
		seen[ptr] = true
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		// Scalars at this level win over deeper matches.
		for _, k := range keys {
			child := t[k]
			if isScalar(child) && hintMatch(joinPath(path, k), tokens) {
				return child, true
			}
		}
		for _, k := range keys {
			if found, ok := searchByHints(t[k], joinPath(path, k), tokens, seen); ok {
				return found, true
			}
		}
	case []any:
		ptr := reflect.ValueOf(t).Pointer()
		if seen[ptr] {
			return nil, false
		}
		seen[ptr] = true
		for _, item := range t {
			if found, ok := searchByHints(item, path, tokens, seen); ok {
				return found, true
			}
		}
	}
	return nil, false
}

func isScalar(v any) bool {
	switch v.(type) {
	case map[string]any, []any, nil:
		return false
	default:
		return true
	}
}

func joinPath(path, key string) string {
	key = strings.ToLower(key)
	if path == "" {
		return key
	}
	return path + "." + key
}

func hintMatch(path string, tokens []string) bool {
	for _, tok := range tokens {
		if !strings.Contains(path, tok) {
			return false
		}
	}
	return true
}

// ── Payload normalization ────────────────────────────────────────────────────

// normalizePayload accepts a payload stored either as a decoded JSON value or
// as a JSON-encoded string and returns the decoded form. Undecodable strings
// yield nil.
func normalizePayload(raw any) any {
	if s, ok := raw.(string); ok {
		var decoded any
		if err := json.Unmarshal([]byte(s), &decoded); err != nil {
			return nil
		}
		return decoded
	}
	return raw
}

// payloadMap coerces a payload into a map, tolerating the JSON-string shape.
func payloadMap(raw any) map[string]any {
	if m, ok := normalizePayload(raw).(map[string]any); ok {
		return m
	}
	return nil
}

// payloadString reads the first non-empty value among the given keys,
// matching keys case-insensitively.
func payloadString(m map[string]any, keys ...string) string {
	for _, key := range keys {
		if v, ok := m[key]; ok {
			if s := sanitizeString(v); s != "" {
				return s
			}
		}
	}
	for _, key := range keys {
		for k, v := range m {
			if strings.EqualFold(k, key) {
				if s := sanitizeString(v); s != "" {
					return s
				}
			}
		}
	}
	return ""
}

// ── CAE extraction ───────────────────────────────────────────────────────────

// caeData holds the authorization facts fuzzily located in the provider
// response.
type caeData struct {
	Number          string
	Expiration      string
	ID              string
	VerificationURL string
}

func (c caeData) empty() bool {
	return c.Number == "" && c.Expiration == "" && c.ID == "" && c.VerificationURL == ""
}

// extractCaeData searches the (already normalized) response payload for the
// CAE number, expiration date, id and verification URL.
func extractCaeData(payload any) caeData {
	if payload == nil {
		return caeData{}
	}
	return caeData{
		Number: sanitizeString(findValueByKeyHints(payload,
			[]string{"cae", "nro"}, []string{"cae", "numero"}, []string{"nrocae"})),
		Expiration: resolveDateValue(findValueByKeyHints(payload,
			[]string{"cae", "venc"}, []string{"cae", "fecha"}, []string{"venc", "cae"})),
		ID: sanitizeString(findValueByKeyHints(payload,
			[]string{"cae", "id"}, []string{"idcae"}, []string{"id", "autoriz"})),
		VerificationURL: sanitizeString(findValueByKeyHints(payload,
			[]string{"qr"}, []string{"url", "verif"}, []string{"linkverif"})),
	}
}

// ── Line-item grammar ────────────────────────────────────────────────────────

const lineFieldSeparator = "</col/>"

// parseInvoiceLines decodes the provider's delimited "lineas" encoding: each
// item is 8 fields separated by "</col/>", and consecutive items are joined
// by a comma that can only appear once the current item already has 7
// separators (field values before that point may legitimately contain
// commas). The string is tokenized on the separator first; the first comma
// inside an 8th-or-later field closes the record and opens the next one.
// Malformed records (fewer than 3 fields) are silently dropped.
func parseInvoiceLines(raw any) []model.InvoiceLineItem {
	s := sanitizeString(raw)
	if s == "" || !strings.Contains(s, lineFieldSeparator) {
		return nil
	}

	var records [][]string
	var current []string
	flush := func() {
		if len(current) >= 3 {
			records = append(records, current)
		}
		current = nil
	}
	for _, tok := range strings.Split(s, lineFieldSeparator) {
		if len(current) >= 7 {
			if idx := strings.Index(tok, ","); idx >= 0 {
				current = append(current, tok[:idx])
				flush()
				current = append(current, tok[idx+1:])
				continue
			}
		}
		current = append(current, tok)
	}
	flush()

	items := make([]model.InvoiceLineItem, 0, len(records))
	for _, rec := range records {
		items = append(items, lineFromRecord(rec))
	}
	return items
}

// Field layout per record: [0] label, [1] quantity, [2] unit price,
// [3] discount, [4] surcharge, [5] description (falls back to the label),
// [6] tax indicator, [7] unit.
func lineFromRecord(fields []string) model.InvoiceLineItem {
	get := func(i int) string {
		if i < len(fields) {
			return strings.TrimSpace(fields[i])
		}
		return ""
	}
	nonNegative := func(d decimal.Decimal) decimal.Decimal {
		if d.IsNegative() {
			return decimal.Zero
		}
		return d
	}

	quantity := parseNumber(get(1))
	unitPrice := parseNumber(get(2))
	discount := nonNegative(parseNumber(get(3)))
	surcharge := nonNegative(parseNumber(get(4)))
	description := get(5)
	if description == "" {
		description = get(0)
	}
	subtotal := quantity.Mul(unitPrice)

	return model.InvoiceLineItem{
		Description:  description,
		Quantity:     quantity,
		UnitPrice:    unitPrice,
		Discount:     discount,
		Surcharge:    surcharge,
		Subtotal:     subtotal,
		Total:        subtotal.Sub(discount).Add(surcharge),
		TaxIndicator: get(6),
		Unit:         get(7),
	}
}

// ── Tax aggregation ──────────────────────────────────────────────────────────

// noIndicatorLabel groups line items whose tax indicator is blank.
const noIndicatorLabel = "Sin indicador"

// buildTaxSummaries folds the line items once, grouping by tax indicator in
// first-seen order. The tax amount per group is max(0, total − base); when
// that rounds to zero but the indicator resolves to a known non-zero rate,
// the amount is recomputed as base × rate / 100.
func buildTaxSummaries(items []model.InvoiceLineItem) []model.TaxSummary {
	var order []string
	byKey := make(map[string]*model.TaxSummary)
	for _, item := range items {
		key := strings.TrimSpace(item.TaxIndicator)
		if key == "" {
			key = noIndicatorLabel
		}
		s, ok := byKey[key]
		if !ok {
			s = &model.TaxSummary{Indicator: key}
			byKey[key] = s
			order = append(order, key)
		}
		s.Base = s.Base.Add(item.Subtotal)
		s.Total = s.Total.Add(item.Total)
	}

	summaries := make([]model.TaxSummary, 0, len(order))
	for _, key := range order {
		s := byKey[key]
		if key != noIndicatorLabel {
			s.Rate = resolveTaxRate(key)
		}
		tax := s.Total.Sub(s.Base)
		if tax.IsNegative() {
			tax = decimal.Zero
		}
		if tax.Round(2).IsZero() && s.Rate != nil && !s.Rate.IsZero() {
			tax = s.Base.Mul(*s.Rate).Div(decimal.NewFromInt(100)).Round(2)
		}
		s.TaxAmount = tax
		summaries = append(summaries, *s)
	}
	return summaries
}
