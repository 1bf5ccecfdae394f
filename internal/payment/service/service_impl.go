package service

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/oklog/ulid/v2"
	auditdomain "github.com/smallbiznis/boardinghouse/internal/audit/domain"
	"github.com/smallbiznis/boardinghouse/internal/auth"
	boardinghousedomain "github.com/smallbiznis/boardinghouse/internal/boardinghouse/domain"
	"github.com/smallbiznis/boardinghouse/internal/clock"
	"github.com/smallbiznis/boardinghouse/internal/config"
	contractdomain "github.com/smallbiznis/boardinghouse/internal/contract/domain"
	ierr "github.com/smallbiznis/boardinghouse/internal/errors"
	invoicedomain "github.com/smallbiznis/boardinghouse/internal/invoice/domain"
	"github.com/smallbiznis/boardinghouse/internal/observability/logger"
	"github.com/smallbiznis/boardinghouse/internal/observability/metrics"
	"github.com/smallbiznis/boardinghouse/internal/observability/tracing"
	"github.com/smallbiznis/boardinghouse/internal/payment/domain"
	"github.com/smallbiznis/boardinghouse/internal/providers/pdf"
	"github.com/smallbiznis/boardinghouse/internal/ratelimit"
	roomdomain "github.com/smallbiznis/boardinghouse/internal/room/domain"
	tenantdomain "github.com/smallbiznis/boardinghouse/internal/tenant/domain"
	"github.com/smallbiznis/boardinghouse/pkg/repository"
	"github.com/smallbiznis/boardinghouse/pkg/validator"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB           *gorm.DB
	Log          *zap.Logger
	GenID        *snowflake.Node
	Clock        clock.Clock
	Repo         domain.Repository
	InvoiceRepo  invoicedomain.Repository
	ContractRepo contractdomain.Repository
	RoomRepo     roomdomain.Repository
	TenantRepo   tenantdomain.Repository
	AuditSvc     auditdomain.Service
	Billing      *config.BillingConfigHolder
	PDF          pdf.Provider
	Metrics      *metrics.Metrics  `optional:"true"`
	Locker       *ratelimit.Locker `optional:"true"`
}

type Service struct {
	db           *gorm.DB
	log          *zap.Logger
	genID        *snowflake.Node
	clock        clock.Clock
	repo         domain.Repository
	invoiceRepo  invoicedomain.Repository
	contractRepo contractdomain.Repository
	roomRepo     roomdomain.Repository
	tenantRepo   tenantdomain.Repository
	houserepo    repository.Repository[boardinghousedomain.BoardingHouse]
	auditSvc     auditdomain.Service
	billing      *config.BillingConfigHolder
	pdf          pdf.Provider
	metrics      *metrics.Metrics
	locker       *ratelimit.Locker
}

func New(p Params) domain.Service {
	return &Service{
		db:           p.DB,
		log:          p.Log.Named("payment.service"),
		genID:        p.GenID,
		clock:        p.Clock,
		repo:         p.Repo,
		invoiceRepo:  p.InvoiceRepo,
		contractRepo: p.ContractRepo,
		roomRepo:     p.RoomRepo,
		tenantRepo:   p.TenantRepo,
		houserepo:    repository.ProvideStore[boardinghousedomain.BoardingHouse](p.DB),
		auditSvc:     p.AuditSvc,
		billing:      p.Billing,
		pdf:          p.PDF,
		metrics:      p.Metrics,
		locker:       p.Locker,
	}
}

func (s *Service) Apply(ctx context.Context, req domain.CreateRequest) (payment domain.Payment, err error) {
	ctx, span := tracing.Start(ctx, "payment.apply",
		attribute.String("invoice_id", req.InvoiceID),
		attribute.String("method", req.Method),
	)
	defer func() {
		if err != nil {
			s.metrics.RecordRejected(ctx, "payment.apply", ierr.Kind(err))
		}
		tracing.End(span, err)
	}()

	if err := validator.ValidateRequest(req); err != nil {
		return domain.Payment{}, err
	}
	method, ok := domain.ParseMethod(req.Method)
	if !ok {
		return domain.Payment{}, domain.ErrInvalidMethod
	}
	cfg := s.billing.Get()
	amount := req.PaidAmount
	if !amount.IsPositive() {
		return domain.Payment{}, domain.ErrInvalidAmount
	}
	if !amount.Equal(amount.Round(cfg.MinorUnits)) {
		return domain.Payment{}, ierr.NewErrorf("payment amount %s exceeds currency precision", amount).
			WithHintf("Payment amount must have at most %d decimal places", cfg.MinorUnits).
			WithReportableDetails(map[string]any{"paidAmount": amount.String()}).
			Mark(ierr.ErrInvalidInput)
	}
	invoiceID, err := parseID(req.InvoiceID, domain.ErrInvalidInvoiceID)
	if err != nil {
		return domain.Payment{}, err
	}

	release, err := s.acquire(ctx, "invoice:"+invoiceID.String())
	if err != nil {
		return domain.Payment{}, err
	}
	defer release()

	now := s.clock.Now()
	var settled invoicedomain.InvoiceStatus
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		invoice, err := s.invoiceRepo.FindByIDForUpdate(ctx, tx, invoiceID)
		if err != nil {
			return err
		}
		if invoice == nil {
			return domain.ErrInvoiceNotFound
		}
		if invoicedomain.Settle(invoice.TotalAmount, invoice.PaidAmount) == invoicedomain.InvoiceStatusPaid {
			return domain.ErrInvoicePaid
		}
		remaining := invoicedomain.Remaining(invoice.TotalAmount, invoice.PaidAmount)
		if amount.GreaterThan(remaining) {
			return ierr.NewErrorf("payment %s exceeds remaining %s", amount, remaining).
				WithHintf("Payment amount exceeds the remaining balance of %s", remaining).
				WithReportableDetails(map[string]any{
					"paidAmount":      amount.String(),
					"remainingAmount": remaining.String(),
				}).
				Mark(ierr.ErrInvalidInput)
		}

		expectedPaid := invoice.PaidAmount
		invoice.PaidAmount = invoice.PaidAmount.Add(amount)
		invoice.SettlementStatus = invoicedomain.Settle(invoice.TotalAmount, invoice.PaidAmount)
		invoice.UpdatedAt = now
		updated, err := s.invoiceRepo.UpdateSettlement(ctx, tx, invoice, expectedPaid)
		if err != nil {
			return err
		}
		if !updated {
			return domain.ErrConcurrentUpdate
		}
		settled = invoice.SettlementStatus

		paymentDate := now
		if req.PaymentDate != nil && !req.PaymentDate.IsZero() {
			paymentDate = req.PaymentDate.UTC()
		}
		payment = domain.Payment{
			ID:              s.genID.Generate(),
			InvoiceID:       invoice.ID,
			ReceiptNumber:   "RCPT-" + ulid.MustNew(ulid.Timestamp(now), ulid.DefaultEntropy()).String(),
			PaidAmount:      amount,
			PaymentDate:     paymentDate,
			Method:          method,
			TransactionCode: strings.TrimSpace(req.TransactionCode),
			Note:            strings.TrimSpace(req.Note),
			RecordedBy:      auth.ActorID(ctx),
			CreatedAt:       now,
			InvoiceCode:     invoice.Code,
		}
		if err := s.repo.Insert(ctx, tx, &payment); err != nil {
			return err
		}
		return s.auditSvc.Record(ctx, tx, auditdomain.Entry{
			Action:     auditdomain.ActionPaymentApply,
			TargetType: "payment",
			TargetID:   payment.ID.String(),
			Metadata: map[string]any{
				"invoiceId":     invoice.ID.String(),
				"receiptNumber": payment.ReceiptNumber,
				"paidAmount":    amount.String(),
				"method":        string(method),
				"invoiceStatus": string(settled),
			},
		})
	})
	if err != nil {
		logger.WithContext(ctx, s.log).Debug("payment rejected",
			zap.String("invoice_id", invoiceID.String()),
			zap.String("paid_amount", amount.String()),
			zap.Error(err),
		)
		return domain.Payment{}, err
	}

	s.metrics.RecordPaymentApplied(ctx, string(method), string(settled))
	logger.WithContext(ctx, s.log).Info("payment applied",
		zap.String("payment_id", payment.ID.String()),
		zap.String("invoice_id", invoiceID.String()),
		zap.String("receipt_number", payment.ReceiptNumber),
		zap.String("paid_amount", amount.String()),
		zap.String("invoice_status", string(settled)),
	)
	return payment, nil
}

func (s *Service) Get(ctx context.Context, id string) (domain.Payment, error) {
	paymentID, err := parseID(id, domain.ErrInvalidID)
	if err != nil {
		return domain.Payment{}, err
	}
	payment, err := s.repo.FindByID(ctx, s.db, paymentID)
	if err != nil {
		return domain.Payment{}, err
	}
	if payment == nil {
		return domain.Payment{}, domain.ErrNotFound
	}
	return *payment, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) ([]domain.Payment, error) {
	filter := domain.ListFilter{}
	if strings.TrimSpace(req.InvoiceID) != "" {
		invoiceID, err := parseID(req.InvoiceID, domain.ErrInvalidInvoiceID)
		if err != nil {
			return nil, err
		}
		filter.InvoiceID = invoiceID
	}
	return s.list(ctx, filter)
}

func (s *Service) ListByInvoice(ctx context.Context, invoiceID string) ([]domain.Payment, error) {
	id, err := parseID(invoiceID, domain.ErrInvalidInvoiceID)
	if err != nil {
		return nil, err
	}
	return s.list(ctx, domain.ListFilter{InvoiceID: id})
}

func (s *Service) ListByInvoices(ctx context.Context, invoiceIDs []snowflake.ID) ([]domain.Payment, error) {
	if len(invoiceIDs) == 0 {
		return []domain.Payment{}, nil
	}
	return s.list(ctx, domain.ListFilter{InvoiceIDs: invoiceIDs})
}

func (s *Service) list(ctx context.Context, filter domain.ListFilter) ([]domain.Payment, error) {
	payments, err := s.repo.List(ctx, s.db, filter)
	if err != nil {
		return nil, err
	}
	if payments == nil {
		payments = []domain.Payment{}
	}
	return payments, nil
}

// acquire takes the per-invoice redis lock. Only a lock held by another
// request rejects; redis failures fall back to the row lock.
func (s *Service) acquire(ctx context.Context, name string) (func(), error) {
	release, err := s.locker.Acquire(ctx, name, s.billing.Get().LockTTL)
	switch {
	case err == nil:
		return release, nil
	case errors.Is(err, ratelimit.ErrLockHeld):
		return nil, invoicedomain.ErrInvoiceBusy
	default:
		logger.WithContext(ctx, s.log).Warn("invoice lock unavailable", zap.String("lock", name), zap.Error(err))
		return func() {}, nil
	}
}

func parseID(value string, invalid error) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, invalid
	}
	return id, nil
}
