package pdf

import (
	"bytes"
	"strings"
	"testing"

	"github.com/navarromaxi/gym-manager-pro2-sub000/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateInvoicePDFNilInvoice(t *testing.T) {
	data, err := GenerateInvoicePDF(nil, nil)
	assert.NoError(t, err)
	assert.Nil(t, data)
}

func TestGenerateInvoicePDFTwoItems(t *testing.T) {
	inv := &model.InvoiceForPdf{
		ID:            "f-001",
		MemberName:    "Juan Pérez",
		Currency:      "UYU",
		InvoiceSeries: "A",
		InvoiceNumber: float64(742),
		Typecfe:       float64(101),
		IssuedAt:      "2026-03-01",
		RequestPayload: map[string]any{
			"nomneg": "Gimnasio Centro",
			"rutneg": "211234567890",
			"lineas": twoItemLines,
			"moneda": "UYU",
		},
	}
	data, err := GenerateInvoicePDF(inv, nil)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-1.4")))
	assert.Contains(t, string(data), "e-Ticket")
	assert.Contains(t, string(data), "Gimnasio Centro")
	assert.Contains(t, string(data), "Membres")
	// Grand total falls back to the sum of line totals: 1000 + 100.
	assert.Contains(t, string(data), "$ 1.100,00")
	// 22% bucket gets its IVA breakdown lines.
	assert.Contains(t, string(data), "IVA 22%")
	assert.Contains(t, string(data), "$ 220,00")
}

func TestGenerateInvoicePDFNoItemsUsesStoredTotal(t *testing.T) {
	inv := &model.InvoiceForPdf{
		ID:         "f-002",
		MemberName: "Ana López",
		Total:      float64(1500),
		Currency:   "UYU",
	}
	data, err := GenerateInvoicePDF(inv, nil)
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "No se encontraron ")
	assert.Contains(t, out, "Total a pagar")
	assert.Contains(t, out, "$ 1.500,00")
}

func TestGenerateInvoicePDFExtractsCaeFromJSONString(t *testing.T) {
	inv := &model.InvoiceForPdf{
		ID:              "f-003",
		ResponsePayload: `{"parsed": {"cae": {"nro": "123456789012"}}}`,
	}
	data, err := GenerateInvoicePDF(inv, nil)
	require.NoError(t, err)
	assert.Contains(t, string(data), "123456789012")
}

func TestGenerateInvoicePDFGymFallbacks(t *testing.T) {
	inv := &model.InvoiceForPdf{ID: "f-004"}
	gym := &model.GymForPdf{
		Name:           "Gimnasio Sur",
		InvoiceRutneg:  "219876543210",
		InvoiceDirneg:  "Av. Italia 1234",
		InvoiceCityneg: "Montevideo",
	}
	data, err := GenerateInvoicePDF(inv, gym)
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "Gimnasio Sur")
	assert.Contains(t, out, "Av. Italia 1234")
	// Receiver defaults when the member name is missing.
	assert.Contains(t, out, "Consumidor final")
	// CAE data is absent.
	assert.Contains(t, out, "No informado")
}

func TestGenerateInvoicePDFSectionOrder(t *testing.T) {
	inv := &model.InvoiceForPdf{
		ID:         "f-005",
		MemberName: "Sofía García",
		Total:      "2.500,00",
		RequestPayload: map[string]any{
			"nomneg":           "Gimnasio Centro",
			"lineas":           twoItemLines,
			"additionalinfo":   "Pago contado",
			"terms_conditions": "Sin devoluciones",
		},
	}
	data, err := GenerateInvoicePDF(inv, nil)
	require.NoError(t, err)

	out := string(data)
	sections := []string{
		"Datos del emisor",
		"Datos del receptor",
		"Totales",
		"Autorizaci",
		"adicional",
		"condiciones",
	}
	last := -1
	for _, s := range sections {
		idx := strings.Index(out, s)
		require.GreaterOrEqual(t, idx, 0, "missing section %q", s)
		assert.Greater(t, idx, last, "section %q out of order", s)
		last = idx
	}
	// Stored total (locale-formatted string) wins over the line sum.
	assert.Contains(t, out, "$ 2.500,00")
}

func TestRenderInvoiceLinesRepeatsHeaderAcrossPages(t *testing.T) {
	longDesc := strings.Repeat("entrenamiento funcional de alta intensidad ", 6)
	var items []model.InvoiceLineItem
	for i := 0; i < 30; i++ {
		items = append(items, model.InvoiceLineItem{
			Description: longDesc,
			Quantity:    decimal.NewFromInt(1),
			UnitPrice:   decimal.NewFromInt(100),
			Subtotal:    decimal.NewFromInt(100),
			Total:       decimal.NewFromInt(100),
		})
	}

	l := NewLayout()
	p := l.Pages()[0]
	p = renderInvoiceLines(l, p, items)
	require.Greater(t, len(l.Pages()), 1, "30 tall rows must overflow one page")

	// Every page of the table carries its own header row.
	for i, page := range l.Pages() {
		joined := strings.Join(page.ops, "\n")
		assert.Contains(t, joined, "Descripci", "page %d is missing the table header", i)
	}
	assert.Same(t, l.Pages()[len(l.Pages())-1], p)
}

func TestLineRowHeightScalesWithWrappedDescription(t *testing.T) {
	short := model.InvoiceLineItem{Description: "Cuota"}
	long := model.InvoiceLineItem{
		Description: strings.Repeat("acceso a todas las sedes ", 8),
	}
	shortLines := lineDescription(short)
	longLines := lineDescription(long)
	require.Greater(t, len(longLines), 3, "description should need 4+ wrapped lines")

	assert.Equal(t, lineMinRowHeight, maxRowHeight(shortLines))
	assert.Greater(t, maxRowHeight(longLines), lineMinRowHeight)
}

func maxRowHeight(descLines []string) float64 {
	h := lineMinRowHeight
	if b := cellBlockHeight(len(descLines), lineFontSize); b > h {
		h = b
	}
	return h
}
