// Package audit expone las inspecciones de solo lectura del libro auxiliar: saldo de un sujeto,
// auditoría de Cuentas por Cobrar, extracto y antigüedad de saldos.
package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ledger-recon/internal/application/dto"
	"github.com/jhoicas/ledger-recon/internal/application/ports"
	"github.com/jhoicas/ledger-recon/internal/domain"
	"github.com/jhoicas/ledger-recon/internal/domain/entity"
	"github.com/jhoicas/ledger-recon/internal/domain/ledger"
	"github.com/jhoicas/ledger-recon/internal/domain/repository"
	"github.com/jhoicas/ledger-recon/pkg/logger"
)

// Config parámetros de la inspección.
type Config struct {
	ReceivableCode string          // vacío = entity.AccountCodeReceivable
	Tolerance      decimal.Decimal // cero = domain.Tolerance
}

// Repositories puertos de lectura que usa el caso de uso.
type Repositories struct {
	Contacts repository.ContactRepository
	Accounts repository.AccountRepository
	Sales    repository.SaleRepository
	Payments repository.PaymentRepository
	Journal  repository.JournalRepository
}

// UseCase inspecciones del libro auxiliar. Nunca escribe en la base de datos.
type UseCase struct {
	repos Repositories
	cache ports.BalanceCache
	log   *logger.Logger
	cfg   Config
	now   func() time.Time
}

// NewUseCase construye el caso de uso. cache puede ser cache.NoopCache.
func NewUseCase(repos Repositories, cache ports.BalanceCache, log *logger.Logger, cfg Config) *UseCase {
	if cfg.ReceivableCode == "" {
		cfg.ReceivableCode = entity.AccountCodeReceivable
	}
	if cfg.Tolerance.IsZero() {
		cfg.Tolerance = domain.Tolerance
	}
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{repos: repos, cache: cache, log: log.Named("audit"), cfg: cfg, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// subjectData filas del sujeto ya clasificadas.
type subjectData struct {
	contact    *entity.Contact
	account    *entity.Account
	sales      []entity.Sale
	payments   []entity.Payment
	classified []ledger.ClassifiedLine
}

// findContact resuelve el sujeto por id o código dentro de la empresa.
func (uc *UseCase) findContact(ctx context.Context, companyID, subject string) (*entity.Contact, error) {
	if companyID == "" || subject == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.repos.Contacts.Find(ctx, companyID, subject)
}

// loadSubject carga las ventas y pagos del sujeto y clasifica las líneas de la cuenta por cobrar.
func (uc *UseCase) loadSubject(ctx context.Context, companyID string, contact *entity.Contact, account *entity.Account) (*subjectData, error) {
	sales, err := uc.repos.Sales.ListByCustomer(ctx, companyID, contact.ID)
	if err != nil {
		return nil, err
	}
	saleIDs := make([]string, 0, len(sales))
	for _, s := range sales {
		saleIDs = append(saleIDs, s.ID)
	}
	payments, err := uc.repos.Payments.ListForSubject(ctx, companyID, contact.ID, saleIDs)
	if err != nil {
		return nil, err
	}
	lines, err := uc.repos.Journal.ListLinesByAccount(ctx, companyID, account.ID)
	if err != nil {
		return nil, err
	}

	// Pagos referenciados por asientos de la cuenta que no están entre los del sujeto:
	// se resuelven para la indirección pago→venta.
	own := make(map[string]struct{}, len(payments))
	for _, p := range payments {
		own[p.ID] = struct{}{}
	}
	var unknown []string
	seen := make(map[string]struct{})
	for _, l := range lines {
		if l.Entry.ReferenceType != entity.ReferenceTypePayment || l.Entry.ReferenceID == "" {
			continue
		}
		id := l.Entry.ReferenceID
		if _, ok := own[id]; ok {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unknown = append(unknown, id)
	}
	known, err := uc.repos.Payments.ListByIDs(ctx, unknown)
	if err != nil {
		return nil, err
	}

	refs := ledger.NewSubjectRefs(sales, payments, known...)
	return &subjectData{
		contact:    contact,
		account:    account,
		sales:      sales,
		payments:   payments,
		classified: ledger.Classify(refs, lines),
	}, nil
}

// InspectSubject calcula saldo y anomalías del sujeto (id o código de contacto).
// El resultado se cachea por sujeto; refresh ignora el caché.
func (uc *UseCase) InspectSubject(ctx context.Context, companyID, subject string, refresh bool) (*dto.SubjectReport, error) {
	contact, err := uc.findContact(ctx, companyID, subject)
	if err != nil {
		return nil, err
	}
	account, err := uc.repos.Accounts.FindReceivable(ctx, companyID, uc.cfg.ReceivableCode)
	if err != nil {
		return nil, err
	}
	key := ports.SubjectKey(companyID, contact.ID)
	if !refresh {
		var cached dto.SubjectReport
		found, err := uc.cache.Get(ctx, key, &cached)
		if err != nil {
			uc.log.Warn().Err(err).Str("key", key).Msg("leer caché")
		} else if found {
			cached.Cached = true
			return &cached, nil
		}
	}

	gen, genOK := uc.generation(ctx, account.ID)
	data, err := uc.loadSubject(ctx, companyID, contact, account)
	if err != nil {
		return nil, fmt.Errorf("inspect subject %s: %w", subject, err)
	}

	expected := ledger.ExpectedBalance(data.sales, data.payments)
	result := ledger.Calculate(ledger.Lines(data.classified), ledger.Options{
		ReceivableAccountID: data.account.ID,
		ExpectedBalance:     &expected,
		Tolerance:           uc.cfg.Tolerance,
	})

	report := &dto.SubjectReport{
		Subject:         dto.ToSubjectDTO(data.contact),
		Account:         dto.ToAccountDTO(data.account),
		SalesCount:      len(data.sales),
		PaymentsCount:   len(data.payments),
		ExpectedBalance: expected,
		Result:          result,
		Lines:           dto.ToLedgerLineDTOs(data.classified),
		GeneratedAt:     uc.now(),
	}
	for _, s := range data.sales {
		report.SalesTotal = report.SalesTotal.Add(s.Total)
	}
	for _, p := range data.payments {
		report.PaymentsTotal = report.PaymentsTotal.Add(p.Amount)
	}

	if genOK {
		uc.store(ctx, account.ID, gen, key, report)
	}
	uc.log.Info().
		Str("company_id", companyID).
		Str("subject_id", data.contact.ID).
		Str("balance", result.Balance.StringFixed(2)).
		Int("anomalies", len(result.Anomalies)).
		Msg("sujeto inspeccionado")
	return report, nil
}

// AuditReceivable revisa todas las líneas de Cuentas por Cobrar: anomalías por línea y
// asientos que referencian ventas o pagos inexistentes.
func (uc *UseCase) AuditReceivable(ctx context.Context, companyID string, refresh bool) (*dto.AccountAudit, error) {
	if companyID == "" {
		return nil, domain.ErrInvalidInput
	}
	account, err := uc.repos.Accounts.FindReceivable(ctx, companyID, uc.cfg.ReceivableCode)
	if err != nil {
		return nil, err
	}
	key := ports.AccountAuditKey(companyID, account.ID)
	if !refresh {
		var cached dto.AccountAudit
		found, err := uc.cache.Get(ctx, key, &cached)
		if err != nil {
			uc.log.Warn().Err(err).Str("key", key).Msg("leer caché")
		} else if found {
			cached.Cached = true
			return &cached, nil
		}
	}

	gen, genOK := uc.generation(ctx, account.ID)
	lines, err := uc.repos.Journal.ListLinesByAccount(ctx, companyID, account.ID)
	if err != nil {
		return nil, fmt.Errorf("audit receivable: %w", err)
	}
	result := ledger.Calculate(lines, ledger.Options{ReceivableAccountID: account.ID, Tolerance: uc.cfg.Tolerance})

	exists, err := uc.referenceIndex(ctx, lines)
	if err != nil {
		return nil, fmt.Errorf("audit receivable: %w", err)
	}
	result.Anomalies = append(result.Anomalies, ledger.OrphanReferences(lines, exists)...)

	audit := &dto.AccountAudit{
		Account:     dto.ToAccountDTO(account),
		Result:      result,
		Counts:      ledger.CountByKind(result.Anomalies),
		GeneratedAt: uc.now(),
	}
	if genOK {
		uc.store(ctx, account.ID, gen, key, audit)
	}
	return audit, nil
}

// generation lee la generación de la cuenta antes de cargar sus líneas. Si falla, el
// reporte se calcula igual pero no se cachea.
func (uc *UseCase) generation(ctx context.Context, accountID string) (uint64, bool) {
	gen, err := uc.cache.Generation(ctx, accountID)
	if err != nil {
		uc.log.Warn().Err(err).Str("account_id", accountID).Msg("leer generación de caché")
		return 0, false
	}
	return gen, true
}

// store cachea v salvo que la cuenta se haya invalidado desde gen.
func (uc *UseCase) store(ctx context.Context, accountID string, gen uint64, key string, v any) {
	stored, err := uc.cache.Set(ctx, accountID, gen, key, v)
	if err != nil {
		uc.log.Warn().Err(err).Str("key", key).Msg("escribir caché")
		return
	}
	if !stored {
		uc.log.Debug().Str("key", key).Uint64("generation", gen).Msg("reporte no cacheado")
	}
}

// referenceIndex consulta en bloque qué ventas y pagos referenciados existen.
func (uc *UseCase) referenceIndex(ctx context.Context, lines []entity.LedgerLine) (func(refType, refID string) bool, error) {
	var saleIDs, paymentIDs []string
	for _, l := range lines {
		switch l.Entry.ReferenceType {
		case entity.ReferenceTypeSale:
			saleIDs = append(saleIDs, l.Entry.ReferenceID)
		case entity.ReferenceTypePayment:
			paymentIDs = append(paymentIDs, l.Entry.ReferenceID)
		}
	}
	sales, err := uc.repos.Sales.ExistingIDs(ctx, compact(saleIDs))
	if err != nil {
		return nil, err
	}
	payments, err := uc.repos.Payments.ExistingIDs(ctx, compact(paymentIDs))
	if err != nil {
		return nil, err
	}
	return func(refType, refID string) bool {
		var ok bool
		switch refType {
		case entity.ReferenceTypeSale:
			_, ok = sales[refID]
		case entity.ReferenceTypePayment:
			_, ok = payments[refID]
		default:
			ok = true
		}
		return ok
	}, nil
}

// Statement extracto del sujeto entre from y to (inclusive, por día).
func (uc *UseCase) Statement(ctx context.Context, companyID, subject string, from, to *time.Time) (*dto.StatementReport, error) {
	if from != nil && to != nil && to.Before(*from) {
		return nil, domain.ErrInvalidInput
	}
	contact, err := uc.findContact(ctx, companyID, subject)
	if err != nil {
		return nil, err
	}
	account, err := uc.repos.Accounts.FindReceivable(ctx, companyID, uc.cfg.ReceivableCode)
	if err != nil {
		return nil, err
	}
	data, err := uc.loadSubject(ctx, companyID, contact, account)
	if err != nil {
		return nil, fmt.Errorf("statement %s: %w", subject, err)
	}
	return &dto.StatementReport{
		Subject:   dto.ToSubjectDTO(data.contact),
		Account:   dto.ToAccountDTO(data.account),
		Statement: ledger.Statement(ledger.Lines(data.classified), from, to),
	}, nil
}

// Aging antigüedad del saldo pendiente del sujeto a la fecha asOf (cero = hoy).
func (uc *UseCase) Aging(ctx context.Context, companyID, subject string, asOf time.Time) (*dto.AgingResponse, error) {
	if asOf.IsZero() {
		asOf = uc.now()
	}
	contact, err := uc.findContact(ctx, companyID, subject)
	if err != nil {
		return nil, err
	}
	sales, err := uc.repos.Sales.ListByCustomer(ctx, companyID, contact.ID)
	if err != nil {
		return nil, err
	}
	return &dto.AgingResponse{
		Subject: dto.ToSubjectDTO(contact),
		AsOf:    asOf,
		Aging:   ledger.Aging(sales, asOf),
	}, nil
}

func compact(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
