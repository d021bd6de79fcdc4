package dto

import "github.com/navarromaxi/gym-manager-pro2-sub000/internal/model"

// RenderInvoiceRequest is the body of POST /v1/facturas/pdf: the invoice
// projection to render plus the optional issuing gym used for emitter
// fallbacks.
type RenderInvoiceRequest struct {
	Invoice *model.InvoiceForPdf `json:"invoice" validate:"required"`
	Gym     *model.GymForPdf     `json:"gym"`
}

// RenderToFileResponse reports where a rendered invoice was stored.
type RenderToFileResponse struct {
	Path  string `json:"path"`
	Bytes int    `json:"bytes"`
}
