package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/navarromaxi/gym-manager-pro2-sub000/internal/dto"
	"github.com/navarromaxi/gym-manager-pro2-sub000/internal/model"
	"github.com/navarromaxi/gym-manager-pro2-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	h := NewRenderHandler(service.NewRenderService(t.TempDir()))

	r := gin.New()
	r.POST("/v1/facturas/pdf", h.GenerarPDF)
	r.POST("/v1/facturas/pdf/archivo", h.GenerarPDFArchivo)
	return r
}

func postJSON(r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGenerarPDFStreamsDocument(t *testing.T) {
	r := newTestRouter(t)
	body := dto.RenderInvoiceRequest{
		Invoice: &model.InvoiceForPdf{
			ID:         "f-100",
			MemberName: "Laura Díaz",
			Total:      1500,
			RequestPayload: map[string]any{
				"nomneg": "Gimnasio Centro",
			},
		},
	}

	w := postJSON(r, "/v1/facturas/pdf", body)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "factura_f-100.pdf")
	assert.True(t, strings.HasPrefix(w.Body.String(), "%PDF-1.4"))
}

func TestGenerarPDFMissingInvoiceFailsValidation(t *testing.T) {
	r := newTestRouter(t)
	w := postJSON(r, "/v1/facturas/pdf", map[string]any{"gym": map[string]any{"name": "x"}})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "detail")
}

func TestGenerarPDFInvalidJSON(t *testing.T) {
	r := newTestRouter(t)
	req := httptest.NewRequest(http.MethodPost, "/v1/facturas/pdf", strings.NewReader("{no es json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerarPDFArchivoReturnsPath(t *testing.T) {
	r := newTestRouter(t)
	body := dto.RenderInvoiceRequest{
		Invoice: &model.InvoiceForPdf{ID: "f-200", Total: "2.500,00"},
	}

	w := postJSON(r, "/v1/facturas/pdf/archivo", body)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp dto.RenderToFileResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Path, "factura_f-200.pdf")
	assert.Positive(t, resp.Bytes)
}
