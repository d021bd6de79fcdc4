package pdf

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSampleDocument(t *testing.T, pages int) []byte {
	t.Helper()
	l := NewLayout()
	p := l.Pages()[0]
	for i := 0; i < pages; i++ {
		if i > 0 {
			p = l.NewPage()
		}
		p.WriteText(pageMargin, p.CursorY-10, fmt.Sprintf("página %d", i+1), 10, false)
		p.HLine(pageMargin, pageWidth-pageMargin, p.CursorY-20)
	}
	require.Len(t, l.Pages(), pages)
	return serializeDocument(l.Pages())
}

func TestSerializeDocumentHeaderAndTrailer(t *testing.T) {
	data := buildSampleDocument(t, 1)

	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-1.4\n")))
	assert.True(t, bytes.HasSuffix(data, []byte("%%EOF\n")))
	assert.Contains(t, string(data), "/Root 1 0 R")
	assert.Contains(t, string(data), "/Type /Catalog")
	assert.Contains(t, string(data), "/BaseFont /Helvetica-Bold")
	// 1 page → objects 1..6 → /Size 7
	assert.Contains(t, string(data), "/Size 7")
}

func TestSerializeDocumentXrefOffsetsLandOnObjects(t *testing.T) {
	for _, pages := range []int{1, 2, 5} {
		data := buildSampleDocument(t, pages)

		xrefRe := regexp.MustCompile(`xref\n0 (\d+)\n`)
		m := xrefRe.FindSubmatchIndex(data)
		require.NotNil(t, m, "%d pages: xref table missing", pages)
		count, err := strconv.Atoi(string(data[m[2]:m[3]]))
		require.NoError(t, err)
		assert.Equal(t, 4+2*pages+1, count)

		entries := data[m[1]:]
		for id := 1; id < count; id++ {
			entry := entries[20*id : 20*id+20]
			offset, err := strconv.Atoi(string(entry[:10]))
			require.NoError(t, err)
			token := []byte(fmt.Sprintf("%d 0 obj", id))
			assert.True(t, bytes.HasPrefix(data[offset:], token),
				"%d pages: xref offset for object %d points at %q", pages, id, data[offset:offset+12])
		}
	}
}

func TestSerializeDocumentStartxrefPointsAtXref(t *testing.T) {
	data := buildSampleDocument(t, 2)

	re := regexp.MustCompile(`startxref\n(\d+)\n`)
	m := re.FindSubmatch(data)
	require.NotNil(t, m)
	offset, err := strconv.Atoi(string(m[1]))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data[offset:], []byte("xref\n")))
}

func TestSerializeDocumentStreamLengthsAreExact(t *testing.T) {
	data := buildSampleDocument(t, 3)

	re := regexp.MustCompile(`(?s)<< /Length (\d+) >>\nstream\n(.*?)\nendstream`)
	matches := re.FindAllSubmatch(data, -1)
	require.Len(t, matches, 3)
	for _, m := range matches {
		declared, err := strconv.Atoi(string(m[1]))
		require.NoError(t, err)
		assert.Equal(t, len(m[2]), declared, "declared /Length must equal the stream body byte length")
	}
}

func TestSerializeDocumentOnePageObjectPerPage(t *testing.T) {
	data := buildSampleDocument(t, 2)
	assert.Equal(t, 2, bytes.Count(data, []byte("/Type /Page ")))
	assert.Contains(t, string(data), "/Kids [5 0 R 7 0 R]")
	assert.Contains(t, string(data), "/Count 2")
	assert.Contains(t, string(data), "/MediaBox [0 0 595.28 841.89]")
}
