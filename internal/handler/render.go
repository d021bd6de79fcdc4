package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/navarromaxi/gym-manager-pro2-sub000/internal/apierror"
	"github.com/navarromaxi/gym-manager-pro2-sub000/internal/dto"
	"github.com/navarromaxi/gym-manager-pro2-sub000/internal/middleware"
	"github.com/navarromaxi/gym-manager-pro2-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type RenderHandler struct {
	svc service.RenderService
}

func NewRenderHandler(svc service.RenderService) *RenderHandler {
	return &RenderHandler{svc: svc}
}

// GenerarPDF renders the posted invoice and streams the document back
// (POST /v1/facturas/pdf).
func (h *RenderHandler) GenerarPDF(c *gin.Context) {
	var req dto.RenderInvoiceRequest
	if !bindAndValidate(c, &req) {
		return
	}

	data, err := h.svc.RenderInvoice(c.Request.Context(), req.Invoice, req.Gym)
	if err != nil {
		log.Error().
			Str("request_id", c.GetString(middleware.RequestIDKey)).
			Err(err).
			Msg("render_handler: fallo al generar PDF")
		c.JSON(http.StatusInternalServerError, apierror.New("No se pudo generar el PDF"))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, downloadName(req)))
	c.Data(http.StatusOK, "application/pdf", data)
}

// GenerarPDFArchivo renders the invoice and stores the file under the
// configured storage path, returning its location
// (POST /v1/facturas/pdf/archivo).
func (h *RenderHandler) GenerarPDFArchivo(c *gin.Context) {
	var req dto.RenderInvoiceRequest
	if !bindAndValidate(c, &req) {
		return
	}

	path, size, err := h.svc.RenderInvoiceToFile(c.Request.Context(), req.Invoice, req.Gym)
	if err != nil {
		log.Error().
			Str("request_id", c.GetString(middleware.RequestIDKey)).
			Err(err).
			Msg("render_handler: fallo al almacenar PDF")
		c.JSON(http.StatusInternalServerError, apierror.New("No se pudo generar el PDF"))
		return
	}

	c.JSON(http.StatusCreated, dto.RenderToFileResponse{Path: path, Bytes: size})
}

func downloadName(req dto.RenderInvoiceRequest) string {
	id := strings.TrimSpace(req.Invoice.ID)
	if id == "" {
		return "factura.pdf"
	}
	return "factura_" + id + ".pdf"
}
