package pdf

// document.go
// Orchestrates the invoice sections in their fixed order. Every section
// paginates locally through the layout helpers — there is no cross-section
// lookahead. Missing data degrades to placeholder text, never to an error.

import (
	"github.com/navarromaxi/gym-manager-pro2-sub000/internal/model"
	"github.com/shopspring/decimal"
)

const (
	labelConsumidorFinal = "Consumidor final"
	labelNoInformado     = "No informado"
	labelNoItems         = "No se encontraron ítems para esta factura."
	footerDisclaimer     = "Documento generado electrónicamente por Gym Manager Pro. " +
		"Conserve este comprobante como constancia de su operación."
)

// GenerateInvoicePDF turns one invoice (and optionally its issuing gym) into
// a complete PDF byte sequence. A nil invoice yields a nil buffer — the only
// input this engine refuses.
func GenerateInvoicePDF(invoice *model.InvoiceForPdf, gym *model.GymForPdf) ([]byte, error) {
	if invoice == nil {
		return nil, nil
	}
	if gym == nil {
		gym = &model.GymForPdf{}
	}
	req := invoice.RequestPayload
	resp := normalizePayload(invoice.ResponsePayload)
	items := parseInvoiceLines(req["lineas"])
	summaries := buildTaxSummaries(items)
	currency := firstNonEmpty(payloadString(req, "moneda"), sanitizeString(invoice.Currency))

	l := NewLayout()
	p := l.Pages()[0]

	p = addTitleSection(l, p, invoice, req)
	p = l.AddGap(p, 10)
	p = addEmitterSection(l, p, req, gym)
	p = l.AddGap(p, 10)
	p = addInvoiceMetaSection(l, p, invoice, req)
	p = l.AddGap(p, 10)
	p = addReceiverSection(l, p, invoice)
	p = l.AddGap(p, 12)

	if len(items) == 0 {
		p = l.AddTextBlock(p, labelNoItems, pageMargin, contentWidth, kvFontSize, false)
	} else {
		p = renderInvoiceLines(l, p, items)
	}
	p = l.AddGap(p, 12)

	p = addTotalsSection(l, p, invoice, items, summaries, currency)
	p = l.AddGap(p, 10)
	p = addAuthorizationSection(l, p, resp)

	if info := firstNonEmpty(payloadString(req, "additionalinfo"), gym.InvoiceAddinfoneg); info != "" {
		p = l.AddGap(p, 10)
		p = renderKeyValueTable(l, p, "Información adicional", []keyValueRow{{Label: "Detalle", Value: info}}, 120)
	}
	if terms := payloadString(req, "terms_conditions"); terms != "" {
		p = l.AddGap(p, 10)
		p = renderKeyValueTable(l, p, "Términos y condiciones", []keyValueRow{{Label: "Detalle", Value: terms}}, 120)
	}

	p = l.AddGap(p, 14)
	p = l.AddSeparator(p)
	_ = l.AddTextBlock(p, footerDisclaimer, pageMargin, contentWidth, 7, false)

	return serializeDocument(l.Pages()), nil
}

func addTitleSection(l *Layout, p *Page, invoice *model.InvoiceForPdf, req map[string]any) *Page {
	typecfe := invoice.Typecfe
	if sanitizeString(typecfe) == "" {
		typecfe = req["typecfe"]
	}
	p = l.AddTextBlock(p, describeTypecfe(typecfe), pageMargin, contentWidth, 16, true)

	serie := firstNonEmpty(sanitizeString(invoice.InvoiceSeries), payloadString(req, "serie"))
	numero := firstNonEmpty(payloadString(req, "numerocomprobante", "nrocomprobante"), sanitizeString(invoice.InvoiceNumber))
	if serie != "" || numero != "" {
		heading := "Comprobante"
		if serie != "" {
			heading += " Serie " + serie
		}
		if numero != "" {
			heading += " Nº " + numero
		}
		p = l.AddTextBlock(p, heading, pageMargin, contentWidth, 10, false)
	}

	env := sanitizeString(invoice.Environment)
	if env != "" && env != "production" {
		p = l.AddGap(p, 2)
		p = l.AddTextBlock(p, "DOCUMENTO SIN VALOR FISCAL — ambiente de pruebas", pageMargin, contentWidth, 9, true)
	}
	return p
}

func addEmitterSection(l *Layout, p *Page, req map[string]any, gym *model.GymForPdf) *Page {
	rows := []keyValueRow{
		{Label: "Razón social", Value: firstNonEmpty(payloadString(req, "nomneg"), gym.Name, labelNoInformado)},
		{Label: "RUT", Value: firstNonEmpty(payloadString(req, "rutneg"), gym.InvoiceRutneg, labelNoInformado)},
	}
	addOptional(&rows, "Dirección", firstNonEmpty(payloadString(req, "dirneg"), gym.InvoiceDirneg))
	addOptional(&rows, "Ciudad", firstNonEmpty(payloadString(req, "cityneg"), gym.InvoiceCityneg))
	addOptional(&rows, "Departamento", firstNonEmpty(payloadString(req, "stateneg"), gym.InvoiceStateneg))
	return renderKeyValueTable(l, p, "Datos del emisor", rows, 140)
}

func addInvoiceMetaSection(l *Layout, p *Page, invoice *model.InvoiceForPdf, req map[string]any) *Page {
	var rows []keyValueRow
	addOptional(&rows, "Fecha de emisión", resolveDateValue(invoice.IssuedAt, req["fchemis"]))
	addOptional(&rows, "Vencimiento", resolveDateValue(invoice.DueDate))
	addOptional(&rows, "Moneda", firstNonEmpty(payloadString(req, "moneda"), sanitizeString(invoice.Currency)))

	desde := resolveDateValue(req["periododesde"])
	hasta := resolveDateValue(req["periodohasta"])
	switch {
	case desde != "" && hasta != "":
		addOptional(&rows, "Período", desde+" al "+hasta)
	case desde != "":
		addOptional(&rows, "Período", "Desde "+desde)
	case hasta != "":
		addOptional(&rows, "Período", "Hasta "+hasta)
	}
	addOptional(&rows, "Indicador de facturación", payloadString(req, "indicadorfacturacion"))
	addOptional(&rows, "Factura de referencia", payloadString(req, "facturareferencia"))
	addOptional(&rows, "ID externo", sanitizeString(invoice.ExternalInvoiceID))
	if len(rows) == 0 {
		return p
	}
	return renderKeyValueTable(l, p, "Datos del comprobante", rows, 140)
}

func addReceiverSection(l *Layout, p *Page, invoice *model.InvoiceForPdf) *Page {
	name := firstNonEmpty(sanitizeString(invoice.MemberName), labelConsumidorFinal)
	return renderKeyValueTable(l, p, "Datos del receptor", []keyValueRow{{Label: "Nombre", Value: name}}, 140)
}

func addTotalsSection(l *Layout, p *Page, invoice *model.InvoiceForPdf, items []model.InvoiceLineItem, summaries []model.TaxSummary, currency string) *Page {
	var subtotal, discounts, surcharges, linesTotal decimal.Decimal
	for _, item := range items {
		subtotal = subtotal.Add(item.Subtotal)
		discounts = discounts.Add(item.Discount)
		surcharges = surcharges.Add(item.Surcharge)
		linesTotal = linesTotal.Add(item.Total)
	}

	var rows []keyValueRow
	if len(items) > 0 {
		rows = append(rows, keyValueRow{Label: "Subtotal", Value: formatCurrency(subtotal, currency)})
		if discounts.IsPositive() {
			rows = append(rows, keyValueRow{Label: "Descuentos", Value: "- " + formatCurrency(discounts, currency)})
		}
		if surcharges.IsPositive() {
			rows = append(rows, keyValueRow{Label: "Recargos", Value: formatCurrency(surcharges, currency)})
		}
		for _, s := range summaries {
			label := s.Indicator
			if s.Rate != nil {
				label = "IVA " + s.Rate.String() + "%"
			}
			rows = append(rows,
				keyValueRow{Label: "Subtotal " + label, Value: formatCurrency(s.Base, currency)},
				keyValueRow{Label: label, Value: formatCurrency(s.TaxAmount, currency)},
				keyValueRow{Label: "Total " + label, Value: formatCurrency(s.Total, currency)},
			)
		}
	}

	// The stored invoice total wins; the sum of line totals is the fallback
	// when it is absent or non-numeric.
	grand := linesTotal
	if stored, ok := parseNumberOK(invoice.Total); ok {
		grand = stored
	}
	rows = append(rows, keyValueRow{Label: "Total a pagar", Value: formatCurrency(grand, currency), Bold: true})

	return renderKeyValueTable(l, p, "Totales", rows, 320)
}

func addAuthorizationSection(l *Layout, p *Page, resp any) *Page {
	cae := extractCaeData(resp)
	rows := []keyValueRow{
		{Label: "Número de CAE", Value: firstNonEmpty(cae.Number, labelNoInformado)},
		{Label: "Vencimiento de CAE", Value: firstNonEmpty(cae.Expiration, labelNoInformado)},
	}
	addOptional(&rows, "ID de autorización", cae.ID)
	addOptional(&rows, "URL de verificación", cae.VerificationURL)
	return renderKeyValueTable(l, p, "Autorización", rows, 140)
}

func addOptional(rows *[]keyValueRow, label, value string) {
	if value != "" {
		*rows = append(*rows, keyValueRow{Label: label, Value: value})
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
