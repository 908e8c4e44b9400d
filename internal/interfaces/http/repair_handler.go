package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ledger-recon/internal/application/dto"
	"github.com/jhoicas/ledger-recon/internal/application/repair"
	"github.com/jhoicas/ledger-recon/internal/domain/ledger"
	"github.com/jhoicas/ledger-recon/pkg/logger"
)

// RepairHandler reparaciones explícitas sobre el libro y el stock (solo admin).
type RepairHandler struct {
	svc *repair.Service
	log *logger.Logger
}

// NewRepairHandler construye el handler.
func NewRepairHandler(svc *repair.Service, log *logger.Logger) *RepairHandler {
	return &RepairHandler{svc: svc, log: log}
}

// FixSign godoc
// @Summary      Mover el importe de una línea al lado esperado
// @Description  Idempotente: si la línea ya está en el lado indicado no se modifica.
// @Tags         repairs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "ID de la línea"
// @Param        body  body  dto.FixSignRequest  true  "expected: debit | credit"
// @Success      200  {object}  dto.RepairOutcomeDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/repairs/lines/{id}/sign [post]
func (h *RepairHandler) FixSign(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	var in dto.FixSignRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	want, ok := ledger.ParsePolarity(in.Expected)
	if !ok {
		return badRequest(c, "VALIDATION", "expected debe ser debit o credit")
	}
	lineID := c.Params("id")
	applied, err := h.svc.FixWrongSign(c.Context(), companyID, lineID, want)
	if err != nil {
		return respondError(c, h.log, err)
	}
	h.log.Info().Str("user_id", GetUserID(c)).Str("line_id", lineID).Bool("applied", applied).Msg("fix sign vía API")
	return c.JSON(dto.RepairOutcomeDTO{ID: lineID, Applied: applied})
}

// DeleteLines godoc
// @Summary      Borrar líneas mal clasificadas
// @Description  Cada línea se borra por separado; los fallos se reportan por fila.
// @Tags         repairs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DeleteLinesRequest  true  "line_ids"
// @Success      200  {object}  dto.RepairBatchResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/repairs/lines/delete [post]
func (h *RepairHandler) DeleteLines(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	var in dto.DeleteLinesRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if len(in.LineIDs) == 0 {
		return badRequest(c, "VALIDATION", "line_ids requerido")
	}
	out := h.svc.RemoveMisclassifiedLines(c.Context(), companyID, in.LineIDs)
	h.log.Info().Str("user_id", GetUserID(c)).Int("lines", len(out)).Int("failed", repair.Failed(out)).Msg("borrado de líneas vía API")
	return c.JSON(toBatchResponse(out))
}

// StockAdjustment godoc
// @Summary      Insertar un ajuste de stock para cuadrar el dashboard
// @Description  Idempotente dentro de la ventana configurada: un ajuste equivalente reciente no se duplica.
// @Tags         repairs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockAdjustmentRequest  true  "product_id, branch_id, delta, note"
// @Success      200  {object}  repair.AdjustmentResult
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/repairs/stock-adjustments [post]
func (h *RepairHandler) StockAdjustment(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	var in dto.StockAdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	res, err := h.svc.InsertBalancingAdjustment(c.Context(), repair.AdjustmentInput{
		CompanyID:     companyID,
		ProductID:     in.ProductID,
		BranchID:      in.BranchID,
		DeltaQuantity: in.Delta,
		Note:          in.Note,
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(res)
}

func toBatchResponse(out []repair.Outcome) dto.RepairBatchResponse {
	resp := dto.RepairBatchResponse{Results: make([]dto.RepairOutcomeDTO, 0, len(out))}
	for _, o := range out {
		r := dto.RepairOutcomeDTO{ID: o.ID, Applied: o.Applied}
		if o.Err != nil {
			r.Error = o.Err.Error()
			resp.Failed++
		} else if o.Applied {
			resp.Applied++
		}
		resp.Results = append(resp.Results, r)
	}
	return resp
}
