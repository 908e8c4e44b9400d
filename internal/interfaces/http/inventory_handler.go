package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ledger-recon/internal/application/inventory"
	"github.com/jhoicas/ledger-recon/internal/application/ports"
	"github.com/jhoicas/ledger-recon/pkg/logger"
)

// InventoryHandler consultas de stock derivado de movimientos (protegido).
type InventoryHandler struct {
	uc   *inventory.UseCase
	xlsx ports.SpreadsheetExporter
	log  *logger.Logger
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.UseCase, xlsx ports.SpreadsheetExporter, log *logger.Logger) *InventoryHandler {
	return &InventoryHandler{uc: uc, xlsx: xlsx, log: log}
}

// ProductSummary godoc
// @Summary      Movimientos agregados de un producto
// @Description  Compara contra products.current_stock solo cuando no se filtra por sucursal ni variante.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id            path   string  true   "ID del producto"
// @Param        branch_id     query  string  false  "Sucursal"
// @Param        variation_id  query  string  false  "Variante"
// @Success      200  {object}  dto.ProductStockSummary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/products/{id}/summary [get]
func (h *InventoryHandler) ProductSummary(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.ProductSummary(c.Context(), companyID, c.Params("id"), c.Query("branch_id"), c.Query("variation_id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Overview godoc
// @Summary      Resumen de inventario de la empresa
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        branch_id  query  string  false  "Sucursal; vacío = todas"
// @Success      200  {object}  dto.InventoryOverviewResponse
// @Router       /api/inventory/overview [get]
func (h *InventoryHandler) Overview(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.Overview(c.Context(), companyID, c.Query("branch_id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Reconciliation godoc
// @Summary      Productos cuyo stock de dashboard no cuadra con los movimientos
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        format  query  string  false  "xlsx para descargar el libro"
// @Success      200  {object}  dto.ReconciliationResponse
// @Router       /api/inventory/reconciliation [get]
func (h *InventoryHandler) Reconciliation(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.Reconciliation(c.Context(), companyID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	if c.Query("format") == "xlsx" {
		b, err := h.xlsx.ReconciliationWorkbook(out)
		if err != nil {
			return respondError(c, h.log, err)
		}
		return sendXLSX(c, "stock-reconciliation.xlsx", b)
	}
	return c.JSON(out)
}
