package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ledger-recon/internal/application/audit"
	"github.com/jhoicas/ledger-recon/internal/application/inventory"
	"github.com/jhoicas/ledger-recon/internal/application/ports"
	"github.com/jhoicas/ledger-recon/internal/application/repair"
	"github.com/jhoicas/ledger-recon/pkg/jwt"
	"github.com/jhoicas/ledger-recon/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuditUC     *audit.UseCase
	InventoryUC *inventory.UseCase
	Repairs     *repair.Service
	PDF         ports.StatementPDFGenerator
	XLSX        ports.SpreadsheetExporter
	JWTSecret   string
	JWTIssuer   string
	Log         *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	log = log.Named("http")

	// Rutas protegidas (requieren Bearer Token)
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer))
	readers := RequireRole(jwt.RoleAdmin, jwt.RoleAuditor, jwt.RoleOperator)

	// Libro auxiliar (lectura)
	ledgerGroup := api.Group("/ledger", readers)
	ledgerHandler := NewLedgerHandler(deps.AuditUC, deps.PDF, deps.XLSX, log)
	ledgerGroup.Get("/subjects/:id", ledgerHandler.InspectSubject)
	ledgerGroup.Get("/subjects/:id/statement", ledgerHandler.Statement)
	ledgerGroup.Get("/subjects/:id/statement.pdf", ledgerHandler.StatementPDF)
	ledgerGroup.Get("/subjects/:id/aging", ledgerHandler.Aging)
	ledgerGroup.Get("/receivable/audit", ledgerHandler.AuditReceivable)
	ledgerGroup.Get("/receivable/audit.xlsx", ledgerHandler.AuditReceivableXLSX)

	// Inventario (lectura)
	invGroup := api.Group("/inventory", readers)
	inventoryHandler := NewInventoryHandler(deps.InventoryUC, deps.XLSX, log)
	invGroup.Get("/products/:id/summary", inventoryHandler.ProductSummary)
	invGroup.Get("/overview", inventoryHandler.Overview)
	invGroup.Get("/reconciliation", inventoryHandler.Reconciliation)

	// Reparaciones (solo admin)
	repairs := api.Group("/repairs", RequireRole(jwt.RoleAdmin))
	repairHandler := NewRepairHandler(deps.Repairs, log)
	repairs.Post("/lines/delete", repairHandler.DeleteLines)
	repairs.Post("/lines/:id/sign", repairHandler.FixSign)
	repairs.Post("/stock-adjustments", repairHandler.StockAdjustment)
}
