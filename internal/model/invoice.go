package model

// InvoiceForPdf is a flat read-only projection of an invoice row, carrying
// exactly the fields the PDF synthesis engine needs. The payload fields keep
// the loose typing of the stored JSON (numbers may arrive as strings, dates
// in more than one format) — the engine's sanitation layer normalizes them.
type InvoiceForPdf struct {
	ID                string `json:"id"`
	GymID             string `json:"gym_id"`
	MemberName        string `json:"member_name"`
	Total             any    `json:"total"`
	Currency          string `json:"currency"`
	InvoiceNumber     any    `json:"invoice_number"`
	InvoiceSeries     string `json:"invoice_series"`
	ExternalInvoiceID string `json:"external_invoice_id"`
	Environment       string `json:"environment"`
	Typecfe           any    `json:"typecfe"`
	IssuedAt          any    `json:"issued_at"`
	DueDate           any    `json:"due_date"`
	// RequestPayload is the JSON body sent to the e-invoicing provider
	// (nomneg, rutneg, lineas, moneda, …).
	RequestPayload map[string]any `json:"request_payload"`
	// ResponsePayload is the provider's authorization response. It may be a
	// JSON object, a JSON-encoded string, and may nest the useful data under
	// a "parsed" key — the extraction layer handles all three shapes.
	ResponsePayload any `json:"response_payload"`
}

// GymForPdf carries the issuing gym's billing identity, used as fallback when
// the request payload omits emitter fields.
type GymForPdf struct {
	Name              string `json:"name"`
	InvoiceRutneg     string `json:"invoice_rutneg"`
	InvoiceDirneg     string `json:"invoice_dirneg"`
	InvoiceCityneg    string `json:"invoice_cityneg"`
	InvoiceStateneg   string `json:"invoice_stateneg"`
	InvoiceAddinfoneg string `json:"invoice_addinfoneg"`
}
