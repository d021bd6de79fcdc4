package service

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/navarromaxi/gym-manager-pro2-sub000/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderInvoiceRequiresInvoice(t *testing.T) {
	svc := NewRenderService(t.TempDir())
	_, err := svc.RenderInvoice(context.Background(), nil, nil)
	assert.Error(t, err)
}

func TestRenderInvoiceProducesPDF(t *testing.T) {
	svc := NewRenderService(t.TempDir())
	inv := &model.InvoiceForPdf{ID: "abc-123", MemberName: "Juan Pérez", Total: float64(900)}

	data, err := svc.RenderInvoice(context.Background(), inv, nil)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-1.4")))
}

func TestRenderInvoiceToFileWritesUnderStoragePath(t *testing.T) {
	dir := t.TempDir()
	svc := NewRenderService(filepath.Join(dir, "facturas"))
	inv := &model.InvoiceForPdf{ID: "abc/../123", Total: float64(100)}

	path, size, err := svc.RenderInvoiceToFile(context.Background(), inv, nil)
	require.NoError(t, err)
	assert.Positive(t, size)

	// Path traversal characters in the id must not escape the storage dir.
	assert.Equal(t, filepath.Join(dir, "facturas"), filepath.Dir(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, data, size)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-1.4")))
}
