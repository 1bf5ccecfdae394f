package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	auditdomain "github.com/smallbiznis/boardinghouse/internal/audit/domain"
	boardinghousedomain "github.com/smallbiznis/boardinghouse/internal/boardinghouse/domain"
	"github.com/smallbiznis/boardinghouse/internal/clock"
	"github.com/smallbiznis/boardinghouse/internal/config"
	contractdomain "github.com/smallbiznis/boardinghouse/internal/contract/domain"
	ierr "github.com/smallbiznis/boardinghouse/internal/errors"
	"github.com/smallbiznis/boardinghouse/internal/invoice/domain"
	"github.com/smallbiznis/boardinghouse/internal/invoice/engine"
	"github.com/smallbiznis/boardinghouse/internal/invoice/format"
	"github.com/smallbiznis/boardinghouse/internal/observability/logger"
	"github.com/smallbiznis/boardinghouse/internal/observability/metrics"
	"github.com/smallbiznis/boardinghouse/internal/observability/tracing"
	"github.com/smallbiznis/boardinghouse/internal/providers/pdf"
	"github.com/smallbiznis/boardinghouse/internal/ratelimit"
	roomdomain "github.com/smallbiznis/boardinghouse/internal/room/domain"
	roomservicedomain "github.com/smallbiznis/boardinghouse/internal/roomservice/domain"
	tenantdomain "github.com/smallbiznis/boardinghouse/internal/tenant/domain"
	"github.com/smallbiznis/boardinghouse/pkg/date"
	"github.com/smallbiznis/boardinghouse/pkg/db"
	"github.com/smallbiznis/boardinghouse/pkg/db/pagination"
	"github.com/smallbiznis/boardinghouse/pkg/repository"
	"github.com/smallbiznis/boardinghouse/pkg/validator"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB              *gorm.DB
	Log             *zap.Logger
	GenID           *snowflake.Node
	Clock           clock.Clock
	Repo            domain.Repository
	ContractRepo    contractdomain.Repository
	RoomRepo        roomdomain.Repository
	RoomServiceRepo roomservicedomain.Repository
	TenantRepo      tenantdomain.Repository
	AuditSvc        auditdomain.Service
	Billing         *config.BillingConfigHolder
	PDF             pdf.Provider
	Metrics         *metrics.Metrics  `optional:"true"`
	Locker          *ratelimit.Locker `optional:"true"`
}

type Service struct {
	db              *gorm.DB
	log             *zap.Logger
	genID           *snowflake.Node
	clock           clock.Clock
	repo            domain.Repository
	contractRepo    contractdomain.Repository
	roomRepo        roomdomain.Repository
	roomServiceRepo roomservicedomain.Repository
	tenantRepo      tenantdomain.Repository
	houserepo       repository.Repository[boardinghousedomain.BoardingHouse]
	auditSvc        auditdomain.Service
	billing         *config.BillingConfigHolder
	pdf             pdf.Provider
	metrics         *metrics.Metrics
	locker          *ratelimit.Locker
}

func New(p Params) domain.Service {
	return &Service{
		db:              p.DB,
		log:             p.Log.Named("invoice.service"),
		genID:           p.GenID,
		clock:           p.Clock,
		repo:            p.Repo,
		contractRepo:    p.ContractRepo,
		roomRepo:        p.RoomRepo,
		roomServiceRepo: p.RoomServiceRepo,
		tenantRepo:      p.TenantRepo,
		houserepo:       repository.ProvideStore[boardinghousedomain.BoardingHouse](p.DB),
		auditSvc:        p.AuditSvc,
		billing:         p.Billing,
		pdf:             p.PDF,
		metrics:         p.Metrics,
		locker:          p.Locker,
	}
}

func (s *Service) Generate(ctx context.Context, req domain.GenerateRequest) (domain.Invoice, error) {
	if err := validator.ValidateRequest(req); err != nil {
		return domain.Invoice{}, err
	}
	return s.generate(ctx, req.ContractID, engine.Period{Month: req.Month, Year: req.Year}, nil, engine.ModePlaceholder)
}

func (s *Service) GenerateWithReadings(ctx context.Context, req domain.GenerateWithReadingsRequest) (domain.Invoice, error) {
	if err := validator.ValidateRequest(req); err != nil {
		return domain.Invoice{}, err
	}
	return s.generate(ctx, req.ContractID, engine.Period{Month: req.Month, Year: req.Year}, req.Readings, engine.ModeReadings)
}

func (s *Service) Preview(ctx context.Context, req domain.GenerateWithReadingsRequest) (domain.Invoice, error) {
	if err := validator.ValidateRequest(req); err != nil {
		return domain.Invoice{}, err
	}
	contractID, err := parseID(req.ContractID, domain.ErrInvalidContractID)
	if err != nil {
		return domain.Invoice{}, err
	}
	invoice, _, err := s.build(ctx, s.db, contractID, engine.Period{Month: req.Month, Year: req.Year}, req.Readings, engine.ModeReadings)
	if err != nil {
		return domain.Invoice{}, err
	}
	return *invoice.Resolve(s.today()), nil
}

func (s *Service) generate(ctx context.Context, rawContractID string, period engine.Period, readings []domain.Reading, mode engine.Mode) (invoice domain.Invoice, err error) {
	ctx, span := tracing.Start(ctx, "invoice.generate",
		attribute.String("contract_id", rawContractID),
		attribute.Int("period_month", period.Month),
		attribute.Int("period_year", period.Year),
		attribute.String("mode", mode.String()),
	)
	defer func() {
		if err != nil {
			s.metrics.RecordRejected(ctx, "invoice.generate", ierr.Kind(err))
		}
		tracing.End(span, err)
	}()

	contractID, err := parseID(rawContractID, domain.ErrInvalidContractID)
	if err != nil {
		return domain.Invoice{}, err
	}

	release, err := s.acquire(ctx, fmt.Sprintf("contract:%s:%04d-%02d", contractID, period.Year, period.Month))
	if err != nil {
		return domain.Invoice{}, err
	}
	defer release()

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		built, contract, err := s.build(ctx, tx, contractID, period, readings, mode)
		if err != nil {
			return err
		}
		invoice = built
		invoice.ID = s.genID.Generate()
		for i := range invoice.Items {
			invoice.Items[i].ID = s.genID.Generate()
			invoice.Items[i].InvoiceID = invoice.ID
		}

		if err := s.repo.InsertWithItems(ctx, tx, &invoice); err != nil {
			if db.IsDuplicateKeyErr(err) {
				return domain.ErrDuplicatePeriod
			}
			return err
		}
		return s.auditSvc.Record(ctx, tx, auditdomain.Entry{
			Action:     auditdomain.ActionInvoiceGenerate,
			TargetType: "invoice",
			TargetID:   invoice.ID.String(),
			Metadata: map[string]any{
				"code":        invoice.Code,
				"contractId":  contract.ID.String(),
				"periodMonth": invoice.PeriodMonth,
				"periodYear":  invoice.PeriodYear,
				"totalAmount": invoice.TotalAmount.String(),
				"mode":        mode.String(),
			},
		})
	})
	if err != nil {
		logger.WithContext(ctx, s.log).Debug("invoice generation rejected",
			zap.String("contract_id", contractID.String()),
			zap.Int("period_month", period.Month),
			zap.Int("period_year", period.Year),
			zap.Error(err),
		)
		return domain.Invoice{}, err
	}

	s.metrics.RecordInvoiceGenerated(ctx, mode.String())
	logger.WithContext(ctx, s.log).Info("invoice generated",
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("code", invoice.Code),
		zap.String("contract_id", contractID.String()),
		zap.String("total_amount", invoice.TotalAmount.String()),
		zap.String("mode", mode.String()),
	)
	return *invoice.Resolve(s.today()), nil
}

// build runs every precondition and computes the invoice without writing.
func (s *Service) build(ctx context.Context, tx *gorm.DB, contractID snowflake.ID, period engine.Period, readings []domain.Reading, mode engine.Mode) (domain.Invoice, *contractdomain.Contract, error) {
	if err := period.Validate(); err != nil {
		return domain.Invoice{}, nil, err
	}
	today := s.today()

	contract, err := s.contractRepo.FindByID(ctx, tx, contractID)
	if err != nil {
		return domain.Invoice{}, nil, err
	}
	if contract == nil {
		return domain.Invoice{}, nil, domain.ErrContractNotFound
	}
	if contract.EffectiveStatus(today) != contractdomain.StatusActive {
		return domain.Invoice{}, nil, domain.ErrContractNotActive
	}
	others, err := s.contractRepo.FindActiveByRoom(ctx, tx, contract.RoomID)
	if err != nil {
		return domain.Invoice{}, nil, err
	}
	for _, other := range others {
		if other.ID != contract.ID && other.EffectiveStatus(today) == contractdomain.StatusActive {
			return domain.Invoice{}, nil, domain.ErrRoomHasOtherActive
		}
	}

	existing, err := s.repo.FindByPeriod(ctx, tx, contract.ID, period.Month, period.Year)
	if err != nil {
		return domain.Invoice{}, nil, err
	}
	if existing != nil {
		return domain.Invoice{}, nil, domain.ErrDuplicatePeriod
	}

	views, err := s.roomServiceRepo.ListViewsByRoom(ctx, tx, contract.RoomID)
	if err != nil {
		return domain.Invoice{}, nil, err
	}
	services := make([]engine.Service, 0, len(views))
	for _, view := range views {
		services = append(services, engine.Service{
			ServiceTypeID: view.ServiceTypeID,
			Name:          view.ServiceTypeName,
			Unit:          view.Unit,
			Pricing:       view.Pricing(),
		})
	}

	cfg := s.billing.Get()
	result, err := engine.Compute(engine.Input{
		MonthlyRent: contract.MonthlyRent,
		Period:      period,
		Services:    services,
		Readings:    readings,
		Mode:        mode,
		Policy:      engine.Policy{MinorUnits: cfg.MinorUnits, DueDayOffset: cfg.DueDayOffset},
	})
	if err != nil {
		return domain.Invoice{}, nil, err
	}

	code, err := format.FormatInvoiceCode(format.DefaultInvoiceCodeTemplate, contract.Code, period.Month, period.Year)
	if err != nil {
		return domain.Invoice{}, nil, err
	}

	now := s.clock.Now()
	for i := range result.Items {
		result.Items[i].CreatedAt = now
	}
	return domain.Invoice{
		Code:             code,
		ContractID:       contract.ID,
		PeriodMonth:      period.Month,
		PeriodYear:       period.Year,
		DueDate:          result.DueDate,
		Currency:         cfg.Currency,
		TotalAmount:      result.Total,
		SettlementStatus: domain.Settle(result.Total, decimal.Zero),
		CreatedAt:        now,
		UpdatedAt:        now,
		Items:            result.Items,
	}, contract, nil
}

func (s *Service) List(ctx context.Context, req domain.ListInvoiceRequest) (domain.ListInvoiceResponse, error) {
	if err := validator.ValidateRequest(req); err != nil {
		return domain.ListInvoiceResponse{}, err
	}

	filter := domain.ListFilter{
		Month: req.Month,
		Year:  req.Year,
		Limit: req.Pagination.Size(),
	}
	if strings.TrimSpace(req.ContractID) != "" {
		contractID, err := parseID(req.ContractID, domain.ErrInvalidContractID)
		if err != nil {
			return domain.ListInvoiceResponse{}, err
		}
		filter.ContractID = contractID
	}
	today := s.today()
	if err := applyStatusFilter(&filter, req.Status, today); err != nil {
		return domain.ListInvoiceResponse{}, err
	}

	cursor, err := pagination.DecodeCursor(req.PageToken)
	if err != nil {
		return domain.ListInvoiceResponse{}, domain.ErrInvalidPageToken
	}
	if cursor != nil {
		createdAt, err := time.Parse(time.RFC3339Nano, cursor.CreatedAt)
		if err != nil {
			return domain.ListInvoiceResponse{}, domain.ErrInvalidPageToken
		}
		id, err := snowflake.ParseString(cursor.ID)
		if err != nil {
			return domain.ListInvoiceResponse{}, domain.ErrInvalidPageToken
		}
		filter.Cursor = &domain.Cursor{ID: id, CreatedAt: createdAt}
	}

	rows, err := s.repo.List(ctx, s.db, filter)
	if err != nil {
		return domain.ListInvoiceResponse{}, err
	}
	page, pageInfo, err := pagination.BuildCursorPageInfo(rows, filter.Limit, func(inv *domain.Invoice) pagination.Cursor {
		return pagination.Cursor{
			ID:        inv.ID.String(),
			CreatedAt: inv.CreatedAt.UTC().Format(time.RFC3339Nano),
		}
	})
	if err != nil {
		return domain.ListInvoiceResponse{}, err
	}

	invoices := make([]domain.Invoice, 0, len(page))
	for _, inv := range page {
		invoices = append(invoices, *inv.Resolve(today))
	}
	return domain.ListInvoiceResponse{PageInfo: pageInfo, Invoices: invoices}, nil
}

// applyStatusFilter maps a reader status onto stored status and due date
// bounds. OVERDUE is an unsettled invoice due before today.
func applyStatusFilter(filter *domain.ListFilter, raw string, today date.Date) error {
	raw = strings.ToUpper(strings.TrimSpace(raw))
	if raw == "" {
		return nil
	}
	switch status := domain.InvoiceStatus(raw); status {
	case domain.InvoiceStatusOverdue:
		filter.Statuses = []domain.InvoiceStatus{domain.InvoiceStatusUnpaid, domain.InvoiceStatusPartiallyPaid}
		filter.DueBefore = &today
	case domain.InvoiceStatusUnpaid, domain.InvoiceStatusPartiallyPaid:
		filter.Statuses = []domain.InvoiceStatus{status}
		filter.DueFrom = &today
	case domain.InvoiceStatusPaid:
		filter.Statuses = []domain.InvoiceStatus{status}
	default:
		return domain.ErrInvalidStatus
	}
	return nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Invoice, error) {
	invoiceID, err := parseID(id, domain.ErrInvalidInvoiceID)
	if err != nil {
		return domain.Invoice{}, err
	}
	invoice, err := s.load(ctx, invoiceID)
	if err != nil {
		return domain.Invoice{}, err
	}
	return *invoice, nil
}

func (s *Service) load(ctx context.Context, id snowflake.ID) (*domain.Invoice, error) {
	invoice, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, domain.ErrInvoiceNotFound
	}
	items, err := s.repo.ListItems(ctx, s.db, invoice.ID)
	if err != nil {
		return nil, err
	}
	invoice.Items = items
	return invoice.Resolve(s.today()), nil
}

func (s *Service) ListByContract(ctx context.Context, contractID string) ([]domain.Invoice, error) {
	id, err := parseID(contractID, domain.ErrInvalidContractID)
	if err != nil {
		return nil, err
	}
	return s.ListByContracts(ctx, []snowflake.ID{id})
}

func (s *Service) ListByContracts(ctx context.Context, contractIDs []snowflake.ID) ([]domain.Invoice, error) {
	if len(contractIDs) == 0 {
		return []domain.Invoice{}, nil
	}
	rows, err := s.repo.List(ctx, s.db, domain.ListFilter{ContractIDs: contractIDs})
	if err != nil {
		return nil, err
	}
	today := s.today()
	invoices := make([]domain.Invoice, 0, len(rows))
	for _, inv := range rows {
		invoices = append(invoices, *inv.Resolve(today))
	}
	return invoices, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	invoiceID, err := parseID(id, domain.ErrInvalidInvoiceID)
	if err != nil {
		return err
	}

	release, err := s.acquire(ctx, "invoice:"+invoiceID.String())
	if err != nil {
		return err
	}
	defer release()

	var invoice *domain.Invoice
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		invoice, err = s.repo.FindByIDForUpdate(ctx, tx, invoiceID)
		if err != nil {
			return err
		}
		if invoice == nil {
			return domain.ErrInvoiceNotFound
		}
		count, err := s.repo.CountPayments(ctx, tx, invoice.ID)
		if err != nil {
			return err
		}
		if count > 0 || invoice.PaidAmount.IsPositive() {
			return domain.ErrHasPayments
		}
		if err := s.repo.Delete(ctx, tx, invoice.ID); err != nil {
			return err
		}
		return s.auditSvc.Record(ctx, tx, auditdomain.Entry{
			Action:     auditdomain.ActionInvoiceDelete,
			TargetType: "invoice",
			TargetID:   invoice.ID.String(),
			Metadata: map[string]any{
				"code":       invoice.Code,
				"contractId": invoice.ContractID.String(),
			},
		})
	})
	if err != nil {
		return err
	}

	logger.WithContext(ctx, s.log).Info("invoice deleted",
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("code", invoice.Code),
	)
	return nil
}

// acquire takes the redis lock for name. A held lock is a conflict; any other
// redis failure is logged and the database guarantees alone apply.
func (s *Service) acquire(ctx context.Context, name string) (func(), error) {
	release, err := s.locker.Acquire(ctx, name, s.billing.Get().LockTTL)
	switch {
	case err == nil:
		return release, nil
	case errors.Is(err, ratelimit.ErrLockHeld):
		return nil, domain.ErrInvoiceBusy
	default:
		logger.WithContext(ctx, s.log).Warn("invoice lock unavailable", zap.String("lock", name), zap.Error(err))
		return func() {}, nil
	}
}

func (s *Service) today() date.Date {
	return clock.Today(s.clock)
}

func parseID(value string, invalid error) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, invalid
	}
	return id, nil
}
