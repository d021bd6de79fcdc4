package pdf

// writer.go
// Minimal PDF 1.4 serializer: one Catalog, one Pages node, Helvetica and
// Helvetica-Bold font objects (not embedded), and per page a Page object plus
// its content stream. The single hard correctness requirement lives here:
// every xref entry must hold the exact byte offset of its object and every
// stream /Length the exact byte length of its body, or the file will not
// open.

import (
	"bytes"
	"fmt"
	"strings"
)

// Object ids: 1 Catalog, 2 Pages, 3 /F1 Helvetica, 4 /F2 Helvetica-Bold,
// then 5+2i / 6+2i for page i's Page and Contents objects.
const firstPageObjectID = 5

func pageObjectID(i int) int    { return firstPageObjectID + 2*i }
func contentObjectID(i int) int { return firstPageObjectID + 2*i + 1 }

// serializeDocument assembles the accumulated pages into a complete PDF file.
func serializeDocument(pages []*Page) []byte {
	var buf bytes.Buffer
	offsets := make(map[int]int)
	writeObject := func(id int, body string) {
		offsets[id] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", id, body)
	}

	buf.WriteString("%PDF-1.4\n")

	writeObject(1, "<< /Type /Catalog /Pages 2 0 R >>")

	kids := make([]string, len(pages))
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", pageObjectID(i))
	}
	writeObject(2, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>",
		strings.Join(kids, " "), len(pages)))

	writeObject(3, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>")
	writeObject(4, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica-Bold >>")

	for i, page := range pages {
		writeObject(pageObjectID(i), fmt.Sprintf(
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %s %s] "+
				"/Resources << /Font << /F1 3 0 R /F2 4 0 R >> >> /Contents %d 0 R >>",
			fnum(pageWidth), fnum(pageHeight), contentObjectID(i)))

		stream := strings.Join(page.ops, "\n")
		writeObject(contentObjectID(i), fmt.Sprintf(
			"<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream))
	}

	maxID := contentObjectID(len(pages) - 1)
	if len(pages) == 0 {
		maxID = 4
	}
	xrefOffset := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", maxID+1)
	buf.WriteString("0000000000 65535 f \n")
	for id := 1; id <= maxID; id++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[id])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		maxID+1, xrefOffset)

	return buf.Bytes()
}
