package pdf

// layout.go
// Page geometry, width estimation, word wrapping and the page/cursor model.
// No real font metrics are available (fonts are not embedded), so text is
// measured with a fixed-pitch approximation that every layout decision in
// this package shares.

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// A4 geometry in points, 48pt margins. Compile-time configuration — the
// rendered output depends on these exact values.
const (
	pageWidth  = 595.28
	pageHeight = 841.89
	pageMargin = 48.0
)

const contentWidth = pageWidth - 2*pageMargin

// Page accumulates already-serialized content-stream operators for one print
// surface, plus the current vertical write position (top-down: CursorY only
// decreases).
type Page struct {
	ops     []string
	CursorY float64
}

// Layout owns the ordered page arena for a single document build. Helpers
// take the page currently being written and return the page to keep writing
// to — callers must always continue on the returned handle, since EnsureSpace
// may have opened a fresh page.
type Layout struct {
	pages []*Page
}

// NewLayout creates the arena with its first page already open.
func NewLayout() *Layout {
	l := &Layout{}
	l.NewPage()
	return l
}

// NewPage appends a fresh page and returns it.
func (l *Layout) NewPage() *Page {
	p := &Page{CursorY: pageHeight - pageMargin}
	l.pages = append(l.pages, p)
	return p
}

// Pages returns the arena in write order.
func (l *Layout) Pages() []*Page { return l.pages }

// EnsureSpace is the sole pagination trigger: if requiredHeight does not fit
// above the bottom margin it opens and returns a new page, otherwise it
// returns p unchanged.
func (l *Layout) EnsureSpace(p *Page, requiredHeight float64) *Page {
	if p.CursorY-requiredHeight < pageMargin {
		return l.NewPage()
	}
	return p
}

// ── Measurement ──────────────────────────────────────────────────────────────

// estimateTextWidth approximates the rendered width of text at the given
// font size assuming a fixed pitch of half the font size per glyph.
func estimateTextWidth(text string, size float64) float64 {
	return float64(utf8.RuneCountInString(text)) * size * 0.5
}

// wrapText splits text on newlines, then greedily word-wraps each paragraph
// to the character budget implied by maxWidth. Words longer than one line are
// hard-split into fixed-width chunks. Blank paragraphs survive as one empty
// line so multi-line input keeps its vertical spacing.
func wrapText(text string, maxWidth, fontSize float64) []string {
	maxChars := int(maxWidth / (fontSize * 0.55))
	if maxChars < 1 {
		maxChars = 1
	}

	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		paragraph = strings.TrimRight(paragraph, "\r")
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		current := ""
		for _, word := range words {
			for utf8.RuneCountInString(word) > maxChars {
				if current != "" {
					lines = append(lines, current)
					current = ""
				}
				runes := []rune(word)
				lines = append(lines, string(runes[:maxChars]))
				word = string(runes[maxChars:])
			}
			switch {
			case current == "":
				current = word
			case utf8.RuneCountInString(current)+1+utf8.RuneCountInString(word) <= maxChars:
				current += " " + word
			default:
				lines = append(lines, current)
				current = word
			}
		}
		if current != "" {
			lines = append(lines, current)
		}
	}
	return lines
}

// ── Drawing primitives ───────────────────────────────────────────────────────
// These append raw operators and never paginate; callers go through
// EnsureSpace first.

func fnum(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

var textEscaper = strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)

// WriteText places one line of text with its baseline at (x, y).
func (p *Page) WriteText(x, y float64, text string, size float64, bold bool) {
	font := "F1"
	if bold {
		font = "F2"
	}
	p.ops = append(p.ops, fmt.Sprintf("BT /%s %s Tf 1 0 0 1 %s %s Tm (%s) Tj ET",
		font, fnum(size), fnum(x), fnum(y), textEscaper.Replace(text)))
}

// HLine draws a horizontal stroke from x1 to x2 at height y.
func (p *Page) HLine(x1, x2, y float64) {
	p.ops = append(p.ops, fmt.Sprintf("%s %s m %s %s l S", fnum(x1), fnum(y), fnum(x2), fnum(y)))
}

// VLine draws a vertical stroke at x between y1 and y2.
func (p *Page) VLine(x, y1, y2 float64) {
	p.ops = append(p.ops, fmt.Sprintf("%s %s m %s %s l S", fnum(x), fnum(y1), fnum(x), fnum(y2)))
}

// Rect strokes a rectangle whose lower-left corner is (x, y).
func (p *Page) Rect(x, y, w, h float64) {
	p.ops = append(p.ops, fmt.Sprintf("%s %s %s %s re S", fnum(x), fnum(y), fnum(w), fnum(h)))
}

// ── Composed helpers ─────────────────────────────────────────────────────────
// Invariant shared by every composite renderer: measure → ensure space →
// write → advance cursor. Breaking that order overlaps content.

const lineLeading = 2.0

// AddTextBlock wraps text into the given width, reserves the block's height
// as a unit, writes the lines and advances the cursor.
func (l *Layout) AddTextBlock(p *Page, text string, x, width, size float64, bold bool) *Page {
	lines := wrapText(text, width, size)
	if len(lines) == 0 {
		return p
	}
	lineHeight := size + lineLeading
	blockHeight := float64(len(lines)) * lineHeight
	p = l.EnsureSpace(p, blockHeight)
	y := p.CursorY
	for _, line := range lines {
		y -= size
		if line != "" {
			p.WriteText(x, y, line, size, bold)
		}
		y -= lineLeading
	}
	p.CursorY -= blockHeight
	return p
}

// AddGap advances the cursor by h points of empty space.
func (l *Layout) AddGap(p *Page, h float64) *Page {
	p = l.EnsureSpace(p, h)
	p.CursorY -= h
	return p
}

// AddSeparator draws a full-width horizontal rule with a little breathing
// room above and below.
func (l *Layout) AddSeparator(p *Page) *Page {
	const h = 10.0
	p = l.EnsureSpace(p, h)
	p.HLine(pageMargin, pageWidth-pageMargin, p.CursorY-h/2)
	p.CursorY -= h
	return p
}
