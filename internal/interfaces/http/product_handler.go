package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ox-dashboard/internal/application/dto"
	"github.com/jhoicas/ox-dashboard/internal/application/usecase"
	"github.com/jhoicas/ox-dashboard/internal/domain"
	"github.com/jhoicas/ox-dashboard/pkg/logger"
)

// ProductHandler catálogo paginado, exportación a PDF y su variante JSON.
type ProductHandler struct {
	uc      *usecase.ProductUseCase
	catalog *usecase.CatalogUseCase
	log     *logger.Logger
}

// NewProductHandler construye el handler de productos.
func NewProductHandler(uc *usecase.ProductUseCase, catalog *usecase.CatalogUseCase, log *logger.Logger) *ProductHandler {
	return &ProductHandler{uc: uc, catalog: catalog, log: log}
}

func pageRequest(c *fiber.Ctx) dto.PageRequest {
	var req dto.PageRequest
	// un page no numérico se trata como ausente
	_ = c.QueryParser(&req)
	req.Normalize()
	return req
}

// Page GET /products?page=n.
func (h *ProductHandler) Page(c *fiber.Ctx) error {
	req := pageRequest(c)
	page, err := h.uc.Page(c.Context(), GetSession(c), req)
	if err != nil {
		if errors.Is(err, domain.ErrNoCompany) {
			return render(c, "products", fiber.Map{"Title": "Products", "NoCompany": true})
		}
		h.log.Warn().Err(err).Int("page", req.Page).Msg("catálogo: fallo al listar productos")
		return render(c, "products", fiber.Map{"Title": "Products", "Error": userMessage(err)})
	}
	return render(c, "products", fiber.Map{
		"Title":    "Products",
		"Page":     page,
		"PrevPage": page.Page.Page - 1,
		"NextPage": page.Page.Page + 1,
	})
}

// ExportPDF GET /products/export.pdf?page=n.
func (h *ProductHandler) ExportPDF(c *fiber.Ctx) error {
	req := pageRequest(c)
	link := fmt.Sprintf("%s/products?page=%d", c.BaseURL(), req.Page)

	pdfBytes, filename, err := h.catalog.ExportPDF(c.Context(), GetSession(c), req, link)
	if err != nil {
		h.log.Warn().Err(err).Int("page", req.Page).Msg("catálogo: fallo al exportar PDF")
		c.Status(fiber.StatusBadGateway)
		return render(c, "error", fiber.Map{"Title": "Export failed", "Error": userMessage(err)})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(pdfBytes)
}

// List godoc
// @Summary      Página del catálogo
// @Description  Productos de la empresa vinculada, normalizados y formateados.
// @Tags         products
// @Produce      json
// @Param        page  query  int  false  "página (1-based)"
// @Success      200   {object}  dto.ProductPage
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	page, err := h.uc.Page(c.Context(), GetSession(c), pageRequest(c))
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(page)
}
