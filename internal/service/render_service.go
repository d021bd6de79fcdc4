package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/navarromaxi/gym-manager-pro2-sub000/internal/model"
	"github.com/navarromaxi/gym-manager-pro2-sub000/internal/pdf"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type RenderService interface {
	RenderInvoice(ctx context.Context, invoice *model.InvoiceForPdf, gym *model.GymForPdf) ([]byte, error)
	RenderInvoiceToFile(ctx context.Context, invoice *model.InvoiceForPdf, gym *model.GymForPdf) (string, int, error)
}

type renderService struct {
	storagePath string
}

func NewRenderService(storagePath string) RenderService {
	return &renderService{storagePath: storagePath}
}

// RenderInvoice produces the PDF byte buffer for one invoice. The engine
// itself never fails on malformed content — it degrades to placeholders — so
// the only error surfaced here is a missing invoice.
func (s *renderService) RenderInvoice(_ context.Context, invoice *model.InvoiceForPdf, gym *model.GymForPdf) ([]byte, error) {
	if invoice == nil {
		return nil, fmt.Errorf("render: factura requerida")
	}

	start := time.Now()
	data, err := pdf.GenerateInvoicePDF(invoice, gym)
	if err != nil {
		return nil, fmt.Errorf("render: generar PDF: %w", err)
	}

	log.Info().
		Str("invoice_id", invoice.ID).
		Str("gym_id", invoice.GymID).
		Int("bytes", len(data)).
		Dur("elapsed", time.Since(start)).
		Msg("render: factura generada")
	return data, nil
}

// RenderInvoiceToFile renders the invoice and persists the bytes under the
// configured storage path. Writing to disk is this caller's responsibility,
// not the engine's.
func (s *renderService) RenderInvoiceToFile(ctx context.Context, invoice *model.InvoiceForPdf, gym *model.GymForPdf) (string, int, error) {
	data, err := s.RenderInvoice(ctx, invoice, gym)
	if err != nil {
		return "", 0, err
	}
	if err := os.MkdirAll(s.storagePath, 0755); err != nil {
		return "", 0, fmt.Errorf("render: crear directorio de almacenamiento: %w", err)
	}

	filePath := filepath.Join(s.storagePath, invoiceFileName(invoice))
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return "", 0, fmt.Errorf("render: escribir PDF: %w", err)
	}

	log.Info().Str("invoice_id", invoice.ID).Str("path", filePath).Msg("render: PDF almacenado")
	return filePath, len(data), nil
}

// invoiceFileName derives a filesystem-safe name from the invoice id, falling
// back to a fresh uuid when the id is empty.
func invoiceFileName(invoice *model.InvoiceForPdf) string {
	id := strings.TrimSpace(invoice.ID)
	if id == "" {
		id = uuid.NewString()
	}
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, id)
	return fmt.Sprintf("factura_%s.pdf", safe)
}
