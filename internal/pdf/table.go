package pdf

// table.go
// The two tabular renderers: a two-column key/value table used for the
// metadata blocks (emitter, invoice, receiver, totals, CAE) and the 7-column
// itemized line table with per-row dynamic height and a header repeated on
// every page break.

import (
	"strconv"

	"github.com/navarromaxi/gym-manager-pro2-sub000/internal/model"
)

const (
	cellPadding    = 4.0
	kvFontSize     = 9.0
	kvTitleHeight  = 18.0
	kvMinRowHeight = 20.0

	lineFontSize     = 8.0
	lineHeaderHeight = 20.0
	lineMinRowHeight = 24.0
)

// keyValueRow is one label/value pair of a metadata table. Rendering schema
// only — never persisted.
type keyValueRow struct {
	Label string
	Value string
	Bold  bool
}

// cellBlockHeight is the height a wrapped text block occupies inside a cell.
func cellBlockHeight(lineCount int, size float64) float64 {
	if lineCount < 1 {
		lineCount = 1
	}
	return float64(lineCount)*(size+lineLeading) - lineLeading + cellPadding*2
}

// writeCellLines writes pre-wrapped lines inside a cell starting from its
// top edge. Drawing only — the caller has already reserved the space.
func writeCellLines(p *Page, lines []string, x, top, size float64, bold bool) {
	y := top - cellPadding
	for _, line := range lines {
		y -= size
		if line != "" {
			p.WriteText(x, y, line, size, bold)
		}
		y -= lineLeading
	}
}

// renderKeyValueTable draws a titled two-column table across the content
// width. Each row's height is the tallest of a 20pt floor and the wrapped
// label/value blocks. Space for the whole table is requested once up front;
// a table taller than a page starts on a fresh page and simply overflows it
// rather than splitting across pages — a deliberate, known limitation.
func renderKeyValueTable(l *Layout, p *Page, title string, rows []keyValueRow, labelWidth float64) *Page {
	if len(rows) == 0 {
		return p
	}
	tableX := pageMargin
	valueX := tableX + labelWidth
	valueWidth := contentWidth - labelWidth

	labelLines := make([][]string, len(rows))
	valueLines := make([][]string, len(rows))
	heights := make([]float64, len(rows))
	total := 0.0
	if title != "" {
		total += kvTitleHeight
	}
	for i, row := range rows {
		labelLines[i] = wrapText(row.Label, labelWidth-cellPadding*2, kvFontSize)
		valueLines[i] = wrapText(row.Value, valueWidth-cellPadding*2, kvFontSize)
		h := kvMinRowHeight
		if lh := cellBlockHeight(len(labelLines[i]), kvFontSize); lh > h {
			h = lh
		}
		if vh := cellBlockHeight(len(valueLines[i]), kvFontSize); vh > h {
			h = vh
		}
		heights[i] = h
		total += h
	}

	p = l.EnsureSpace(p, total)
	y := p.CursorY
	if title != "" {
		p.Rect(tableX, y-kvTitleHeight, contentWidth, kvTitleHeight)
		p.WriteText(tableX+cellPadding, y-kvTitleHeight+5, title, kvFontSize+1, true)
		y -= kvTitleHeight
	}
	for i, row := range rows {
		h := heights[i]
		p.Rect(tableX, y-h, contentWidth, h)
		p.VLine(valueX, y-h, y)
		writeCellLines(p, labelLines[i], tableX+cellPadding, y, kvFontSize, row.Bold)
		writeCellLines(p, valueLines[i], valueX+cellPadding, y, kvFontSize, row.Bold)
		y -= h
	}
	p.CursorY = y
	return p
}

// ── Itemized line table ──────────────────────────────────────────────────────

// tableColumn is the rendering schema of one line-table column.
type tableColumn struct {
	title string
	width float64
	align byte // 'L' | 'R' | 'C'
}

// Column widths sum to the exact content width (499.28pt).
var lineColumns = []tableColumn{
	{"#", 24, 'C'},
	{"IVA", 50, 'C'},
	{"Descripción", 190, 'L'},
	{"Cant.", 50, 'R'},
	{"P. unitario", 65, 'R'},
	{"Subtotal", 60, 'R'},
	{"Total", 60.28, 'R'},
}

func columnX(index int) float64 {
	x := pageMargin
	for i := 0; i < index; i++ {
		x += lineColumns[i].width
	}
	return x
}

func cellTextX(col tableColumn, x float64, text string, size float64) float64 {
	switch col.align {
	case 'R':
		return x + col.width - cellPadding - estimateTextWidth(text, size)
	case 'C':
		return x + (col.width-estimateTextWidth(text, size))/2
	default:
		return x + cellPadding
	}
}

func drawLinesHeader(p *Page) {
	top := p.CursorY
	p.Rect(pageMargin, top-lineHeaderHeight, contentWidth, lineHeaderHeight)
	x := pageMargin
	for i, col := range lineColumns {
		if i > 0 {
			p.VLine(x, top-lineHeaderHeight, top)
		}
		p.WriteText(cellTextX(col, x, col.title, lineFontSize), top-lineHeaderHeight+7, col.title, lineFontSize, true)
		x += col.width
	}
	p.CursorY -= lineHeaderHeight
}

// lineDescription builds the wrapped description block of one row: the
// description itself plus unit/discount/surcharge annotations when present.
func lineDescription(item model.InvoiceLineItem) []string {
	text := item.Description
	if item.Unit != "" {
		text += "\nUnidad: " + item.Unit
	}
	if item.Discount.IsPositive() {
		text += "\nDescuento: " + formatAmount(item.Discount)
	}
	if item.Surcharge.IsPositive() {
		text += "\nRecargo: " + formatAmount(item.Surcharge)
	}
	return wrapText(text, lineColumns[2].width-cellPadding*2, lineFontSize)
}

func drawLineRow(p *Page, index int, item model.InvoiceLineItem, descLines []string, rowHeight float64) {
	top := p.CursorY
	p.Rect(pageMargin, top-rowHeight, contentWidth, rowHeight)

	cells := []string{
		strconv.Itoa(index),
		item.TaxIndicator,
		"", // description drawn as a block below
		formatQuantity(item.Quantity),
		formatAmount(item.UnitPrice),
		formatAmount(item.Subtotal),
		formatAmount(item.Total),
	}
	x := pageMargin
	for i, col := range lineColumns {
		if i > 0 {
			p.VLine(x, top-rowHeight, top)
		}
		if i == 2 {
			writeCellLines(p, descLines, x+cellPadding, top, lineFontSize, false)
		} else if cells[i] != "" {
			p.WriteText(cellTextX(col, x, cells[i], lineFontSize), top-cellPadding-lineFontSize, cells[i], lineFontSize, false)
		}
		x += col.width
	}
	p.CursorY -= rowHeight
}

// renderInvoiceLines draws the itemized table row by row. Rows that no longer
// fit trigger a fresh page with the header redrawn before the row.
func renderInvoiceLines(l *Layout, p *Page, items []model.InvoiceLineItem) *Page {
	p = l.EnsureSpace(p, lineHeaderHeight+lineMinRowHeight)
	drawLinesHeader(p)
	for i, item := range items {
		descLines := lineDescription(item)
		rowHeight := lineMinRowHeight
		if h := cellBlockHeight(len(descLines), lineFontSize); h > rowHeight {
			rowHeight = h
		}
		if next := l.EnsureSpace(p, rowHeight); next != p {
			p = next
			drawLinesHeader(p)
		}
		drawLineRow(p, i+1, item, descLines, rowHeight)
	}
	return p
}
