package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/samber/lo"
	auditdomain "github.com/smallbiznis/boardinghouse/internal/audit/domain"
	"github.com/smallbiznis/boardinghouse/internal/clock"
	"github.com/smallbiznis/boardinghouse/internal/contract/domain"
	"github.com/smallbiznis/boardinghouse/internal/observability/logger"
	roomdomain "github.com/smallbiznis/boardinghouse/internal/room/domain"
	tenantdomain "github.com/smallbiznis/boardinghouse/internal/tenant/domain"
	"github.com/smallbiznis/boardinghouse/pkg/date"
	"github.com/smallbiznis/boardinghouse/pkg/db"
	"github.com/smallbiznis/boardinghouse/pkg/validator"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	GenID      *snowflake.Node
	Clock      clock.Clock
	Repo       domain.Repository
	RoomRepo   roomdomain.Repository
	TenantRepo tenantdomain.Repository
	AuditSvc   auditdomain.Service
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	genID      *snowflake.Node
	clock      clock.Clock
	repo       domain.Repository
	roomRepo   roomdomain.Repository
	tenantRepo tenantdomain.Repository
	auditSvc   auditdomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("contract.service"),
		genID:      p.GenID,
		clock:      p.Clock,
		repo:       p.Repo,
		roomRepo:   p.RoomRepo,
		tenantRepo: p.TenantRepo,
		auditSvc:   p.AuditSvc,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (domain.Contract, error) {
	if err := validator.ValidateRequest(req); err != nil {
		return domain.Contract{}, err
	}
	code := strings.TrimSpace(req.Code)
	if code == "" {
		return domain.Contract{}, domain.ErrInvalidCode
	}
	if err := validateTerms(req.StartDate, req.EndDate, req.Deposit.IsNegative(), req.MonthlyRent.IsPositive()); err != nil {
		return domain.Contract{}, err
	}
	cycle := domain.BillingCycleMonthly
	if strings.TrimSpace(req.BillingCycle) != "" {
		parsed, ok := domain.ParseBillingCycle(req.BillingCycle)
		if !ok {
			return domain.Contract{}, domain.ErrInvalidBillingCycle
		}
		cycle = parsed
	}
	status := domain.StatusDraft
	if strings.TrimSpace(req.Status) != "" {
		parsed, ok := domain.ParseStatus(req.Status)
		if !ok || parsed.IsTerminal() {
			return domain.Contract{}, domain.ErrInvalidStatus
		}
		status = parsed
	}

	roomID, err := parseID(req.RoomID, domain.ErrRoomNotFound)
	if err != nil {
		return domain.Contract{}, err
	}
	tenantID, err := parseID(req.TenantID, domain.ErrTenantNotFound)
	if err != nil {
		return domain.Contract{}, err
	}
	coTenantIDs, err := parseIDs(req.CoTenantIDs, tenantID)
	if err != nil {
		return domain.Contract{}, err
	}

	room, err := s.roomRepo.FindByID(ctx, s.db, roomID)
	if err != nil {
		return domain.Contract{}, err
	}
	if room == nil {
		return domain.Contract{}, domain.ErrRoomNotFound
	}
	if err := s.ensureTenants(ctx, s.db, append([]snowflake.ID{tenantID}, coTenantIDs...)); err != nil {
		return domain.Contract{}, err
	}
	existing, err := s.repo.FindByCode(ctx, s.db, code)
	if err != nil {
		return domain.Contract{}, err
	}
	if existing != nil {
		return domain.Contract{}, domain.ErrDuplicateCode
	}

	now := s.clock.Now()
	contract := domain.Contract{
		ID:           s.genID.Generate(),
		Code:         code,
		RoomID:       room.ID,
		TenantID:     tenantID,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Deposit:      req.Deposit,
		MonthlyRent:  req.MonthlyRent,
		BillingCycle: cycle,
		StoredStatus: domain.StatusDraft,
		Notes:        strings.TrimSpace(req.Notes),
		CreatedAt:    now,
		UpdatedAt:    now,
		CoTenantIDs:  coTenantIDs,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Insert(ctx, tx, &contract); err != nil {
			if db.IsDuplicateKeyErr(err) {
				return domain.ErrDuplicateCode
			}
			return err
		}
		if err := s.repo.ReplaceCoTenants(ctx, tx, contract.ID, coTenantIDs); err != nil {
			return err
		}
		if err := s.audit(ctx, tx, auditdomain.ActionContractCreate, contract, map[string]any{
			"code":   contract.Code,
			"roomId": contract.RoomID.String(),
		}); err != nil {
			return err
		}
		if status == domain.StatusActive {
			return s.activate(ctx, tx, &contract)
		}
		return nil
	})
	if err != nil {
		return domain.Contract{}, err
	}

	logger.WithContext(ctx, s.log).Info("contract created",
		zap.String("contract_id", contract.ID.String()),
		zap.String("code", contract.Code),
		zap.String("status", string(contract.StoredStatus)),
	)
	return *contract.Resolve(s.today()), nil
}

func (s *Service) Update(ctx context.Context, id string, req domain.UpdateRequest) (domain.Contract, error) {
	if err := validator.ValidateRequest(req); err != nil {
		return domain.Contract{}, err
	}
	contractID, err := parseID(id, domain.ErrInvalidID)
	if err != nil {
		return domain.Contract{}, err
	}

	var contract domain.Contract
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := s.repo.FindByIDForUpdate(ctx, tx, contractID)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}
		if current.StoredStatus != domain.StatusDraft {
			return domain.ErrNotDraft
		}
		contract = *current

		if req.TenantID != nil {
			tenantID, err := parseID(*req.TenantID, domain.ErrTenantNotFound)
			if err != nil {
				return err
			}
			contract.TenantID = tenantID
		}
		coTenants := contract.CoTenantIDs
		if req.CoTenantIDs != nil {
			coTenants, err = parseIDs(*req.CoTenantIDs, contract.TenantID)
			if err != nil {
				return err
			}
		} else {
			coTenants = lo.Without(coTenants, contract.TenantID)
		}
		contract.CoTenantIDs = coTenants
		if err := s.ensureTenants(ctx, tx, contract.TenantIDs()); err != nil {
			return err
		}

		if req.StartDate != nil {
			contract.StartDate = *req.StartDate
		}
		if req.EndDate != nil {
			contract.EndDate = *req.EndDate
		}
		if req.Deposit != nil {
			contract.Deposit = *req.Deposit
		}
		if req.MonthlyRent != nil {
			contract.MonthlyRent = *req.MonthlyRent
		}
		if err := validateTerms(contract.StartDate, contract.EndDate, contract.Deposit.IsNegative(), contract.MonthlyRent.IsPositive()); err != nil {
			return err
		}
		if req.BillingCycle != nil {
			cycle, ok := domain.ParseBillingCycle(*req.BillingCycle)
			if !ok {
				return domain.ErrInvalidBillingCycle
			}
			contract.BillingCycle = cycle
		}
		if req.Notes != nil {
			contract.Notes = strings.TrimSpace(*req.Notes)
		}
		contract.UpdatedAt = s.clock.Now()

		if err := s.repo.Update(ctx, tx, &contract); err != nil {
			return err
		}
		return s.repo.ReplaceCoTenants(ctx, tx, contract.ID, contract.CoTenantIDs)
	})
	if err != nil {
		return domain.Contract{}, err
	}
	return *contract.Resolve(s.today()), nil
}

func (s *Service) Activate(ctx context.Context, id string) (domain.Contract, error) {
	contractID, err := parseID(id, domain.ErrInvalidID)
	if err != nil {
		return domain.Contract{}, err
	}

	var contract domain.Contract
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := s.repo.FindByIDForUpdate(ctx, tx, contractID)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}
		if current.StoredStatus != domain.StatusDraft {
			return domain.ErrNotDraft
		}
		contract = *current
		return s.activate(ctx, tx, &contract)
	})
	if err != nil {
		logger.WithContext(ctx, s.log).Debug("contract activation rejected", zap.String("contract_id", id), zap.Error(err))
		return domain.Contract{}, err
	}

	logger.WithContext(ctx, s.log).Info("contract activated",
		zap.String("contract_id", contract.ID.String()),
		zap.String("room_id", contract.RoomID.String()),
	)
	return *contract.Resolve(s.today()), nil
}

// activate moves a DRAFT contract to ACTIVE inside tx and occupies its room.
// Contracts stored ACTIVE on the room but already past their end date are
// expired on the way.
func (s *Service) activate(ctx context.Context, tx *gorm.DB, contract *domain.Contract) error {
	today := s.today()
	if contract.EndDate.Before(today) {
		return domain.ErrAlreadyEnded
	}
	room, err := s.roomRepo.FindByIDForUpdate(ctx, tx, contract.RoomID)
	if err != nil {
		return err
	}
	if room == nil {
		return domain.ErrRoomNotFound
	}
	if room.Status == roomdomain.StatusMaintenance {
		return domain.ErrRoomMaintenance
	}

	running, err := s.repo.FindActiveByRoom(ctx, tx, room.ID)
	if err != nil {
		return err
	}
	for _, other := range running {
		if other.ID == contract.ID {
			continue
		}
		if other.EffectiveStatus(today) == domain.StatusActive {
			return domain.ErrRoomBusy
		}
		if err := s.expire(ctx, tx, other, false); err != nil {
			return err
		}
	}

	now := s.clock.Now()
	contract.StoredStatus = domain.StatusActive
	contract.ActivatedAt = &now
	contract.UpdatedAt = now
	if err := s.repo.Update(ctx, tx, contract); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.ErrRoomBusy
		}
		return err
	}
	if err := s.roomRepo.UpdateStatus(ctx, tx, room.ID, roomdomain.StatusOccupied, now); err != nil {
		return err
	}
	return s.audit(ctx, tx, auditdomain.ActionContractActivate, *contract, map[string]any{
		"code":   contract.Code,
		"roomId": room.ID.String(),
	})
}

func (s *Service) Terminate(ctx context.Context, id string, req domain.TerminateRequest) (domain.Contract, error) {
	if err := validator.ValidateRequest(req); err != nil {
		return domain.Contract{}, err
	}
	contractID, err := parseID(id, domain.ErrInvalidID)
	if err != nil {
		return domain.Contract{}, err
	}

	today := s.today()
	var contract domain.Contract
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := s.repo.FindByIDForUpdate(ctx, tx, contractID)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}
		if current.EffectiveStatus(today) != domain.StatusActive {
			return domain.ErrNotActive
		}
		contract = *current

		terminatedAt := today
		if req.Date != nil && !req.Date.IsZero() {
			terminatedAt = *req.Date
		}
		if terminatedAt.Before(contract.StartDate) {
			return domain.ErrInvalidDates
		}
		now := s.clock.Now()
		contract.StoredStatus = domain.StatusTerminated
		contract.TerminatedAt = &terminatedAt
		contract.TerminationReason = strings.TrimSpace(req.Reason)
		contract.UpdatedAt = now
		if err := s.repo.Update(ctx, tx, &contract); err != nil {
			return err
		}
		if err := s.roomRepo.UpdateStatus(ctx, tx, contract.RoomID, roomdomain.StatusAvailable, now); err != nil {
			return err
		}
		return s.audit(ctx, tx, auditdomain.ActionContractTerminate, contract, map[string]any{
			"code":         contract.Code,
			"reason":       contract.TerminationReason,
			"terminatedAt": terminatedAt.String(),
		})
	})
	if err != nil {
		return domain.Contract{}, err
	}

	logger.WithContext(ctx, s.log).Info("contract terminated",
		zap.String("contract_id", contract.ID.String()),
		zap.String("room_id", contract.RoomID.String()),
	)
	return *contract.Resolve(today), nil
}

func (s *Service) Expire(ctx context.Context) (domain.ExpireResult, error) {
	today := s.today()
	result := domain.ExpireResult{Expired: []domain.Contract{}}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		due, err := s.repo.FindActiveEndedBefore(ctx, tx, today)
		if err != nil {
			return err
		}
		for _, contract := range due {
			if err := s.expire(ctx, tx, contract, true); err != nil {
				return err
			}
			contract.StoredStatus = domain.StatusExpired
			result.Expired = append(result.Expired, *contract.Resolve(today))
		}
		return s.repo.LoadCoTenants(ctx, tx, result.Expired)
	})
	if err != nil {
		return domain.ExpireResult{}, err
	}
	result.Count = len(result.Expired)

	if result.Count > 0 {
		logger.WithContext(ctx, s.log).Info("contracts expired", zap.Int("count", result.Count))
	}
	return result, nil
}

// expire persists EXPIRED for contract. The room is released unless
// releaseRoom is false, which is how activation reuses it.
func (s *Service) expire(ctx context.Context, tx *gorm.DB, contract domain.Contract, releaseRoom bool) error {
	now := s.clock.Now()
	contract.StoredStatus = domain.StatusExpired
	contract.UpdatedAt = now
	if err := s.repo.Update(ctx, tx, &contract); err != nil {
		return err
	}
	if releaseRoom {
		if err := s.roomRepo.UpdateStatus(ctx, tx, contract.RoomID, roomdomain.StatusAvailable, now); err != nil {
			return err
		}
	}
	return s.audit(ctx, tx, auditdomain.ActionContractExpire, contract, map[string]any{
		"code":    contract.Code,
		"endDate": contract.EndDate.String(),
	})
}

func (s *Service) Get(ctx context.Context, id string) (domain.Contract, error) {
	contractID, err := parseID(id, domain.ErrInvalidID)
	if err != nil {
		return domain.Contract{}, err
	}
	contract, err := s.repo.FindByID(ctx, s.db, contractID)
	if err != nil {
		return domain.Contract{}, err
	}
	if contract == nil {
		return domain.Contract{}, domain.ErrNotFound
	}
	return *contract.Resolve(s.today()), nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) ([]domain.Contract, error) {
	var filter domain.ListFilter
	var err error
	if strings.TrimSpace(req.RoomID) != "" {
		if filter.RoomID, err = parseID(req.RoomID, domain.ErrRoomNotFound); err != nil {
			return nil, err
		}
	}
	if strings.TrimSpace(req.TenantID) != "" {
		if filter.TenantID, err = parseID(req.TenantID, domain.ErrTenantNotFound); err != nil {
			return nil, err
		}
	}

	var want domain.Status
	if strings.TrimSpace(req.Status) != "" {
		parsed, ok := domain.ParseStatus(req.Status)
		if !ok {
			return nil, domain.ErrInvalidStatus
		}
		want = parsed
		switch want {
		case domain.StatusActive:
			filter.Statuses = []domain.Status{domain.StatusActive}
		case domain.StatusExpired:
			filter.Statuses = []domain.Status{domain.StatusActive, domain.StatusExpired}
		default:
			filter.Statuses = []domain.Status{want}
		}
	}

	contracts, err := s.repo.List(ctx, s.db, filter)
	if err != nil {
		return nil, err
	}
	return s.resolveAll(contracts, want), nil
}

func (s *Service) ListByTenant(ctx context.Context, tenantID snowflake.ID) ([]domain.Contract, error) {
	contracts, err := s.repo.List(ctx, s.db, domain.ListFilter{TenantID: tenantID})
	if err != nil {
		return nil, err
	}
	return s.resolveAll(contracts, ""), nil
}

func (s *Service) resolveAll(contracts []domain.Contract, want domain.Status) []domain.Contract {
	today := s.today()
	out := make([]domain.Contract, 0, len(contracts))
	for i := range contracts {
		contracts[i].Resolve(today)
		if want != "" && contracts[i].Status != want {
			continue
		}
		out = append(out, contracts[i])
	}
	return out
}

func (s *Service) ensureTenants(ctx context.Context, tx *gorm.DB, ids []snowflake.ID) error {
	found, err := s.tenantRepo.FindByIDs(ctx, tx, ids)
	if err != nil {
		return err
	}
	if len(found) != len(lo.Uniq(ids)) {
		return domain.ErrTenantNotFound
	}
	return nil
}

func (s *Service) audit(ctx context.Context, tx *gorm.DB, action string, contract domain.Contract, metadata map[string]any) error {
	return s.auditSvc.Record(ctx, tx, auditdomain.Entry{
		Action:     action,
		TargetType: "contract",
		TargetID:   contract.ID.String(),
		Metadata:   metadata,
	})
}

func (s *Service) today() date.Date {
	return clock.Today(s.clock)
}

func validateTerms(start, end date.Date, negativeDeposit, positiveRent bool) error {
	if start.IsZero() || end.IsZero() || end.Before(start) {
		return domain.ErrInvalidDates
	}
	if negativeDeposit {
		return domain.ErrInvalidDeposit
	}
	if !positiveRent {
		return domain.ErrInvalidRent
	}
	return nil
}

func parseID(raw string, invalid error) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil || id == 0 {
		return 0, invalid
	}
	return id, nil
}

// parseIDs parses co-tenant ids, dropping duplicates and the main tenant.
func parseIDs(raw []string, mainTenant snowflake.ID) ([]snowflake.ID, error) {
	ids := make([]snowflake.ID, 0, len(raw))
	for _, value := range raw {
		id, err := parseID(value, domain.ErrTenantNotFound)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return lo.Without(lo.Uniq(ids), mainTenant), nil
}
