package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/boardinghouse/internal/clock"
	"github.com/smallbiznis/boardinghouse/internal/tenant/domain"
	"github.com/smallbiznis/boardinghouse/pkg/db"
	"github.com/smallbiznis/boardinghouse/pkg/validator"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("tenant.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (domain.Tenant, error) {
	if err := validator.ValidateRequest(req); err != nil {
		return domain.Tenant{}, err
	}
	fullName := strings.TrimSpace(req.FullName)
	if fullName == "" {
		return domain.Tenant{}, domain.ErrInvalidName
	}
	phone := strings.TrimSpace(req.Phone)
	if phone == "" {
		return domain.Tenant{}, domain.ErrInvalidPhone
	}
	status := domain.StatusActive
	if strings.TrimSpace(req.Status) != "" {
		parsed, ok := domain.ParseStatus(req.Status)
		if !ok {
			return domain.Tenant{}, domain.ErrInvalidStatus
		}
		status = parsed
	}

	now := s.clock.Now()
	tenant := domain.Tenant{
		ID:               s.genID.Generate(),
		UserID:           optional(req.UserID),
		FullName:         fullName,
		Phone:            phone,
		Email:            strings.TrimSpace(req.Email),
		IdentityNumber:   optional(req.IdentityNumber),
		DateOfBirth:      req.DateOfBirth,
		PermanentAddress: strings.TrimSpace(req.PermanentAddress),
		Status:           status,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.ensureUnique(ctx, tenant); err != nil {
		return domain.Tenant{}, err
	}
	if err := s.repo.Insert(ctx, s.db, &tenant); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Tenant{}, domain.ErrDuplicateIdentity
		}
		return domain.Tenant{}, err
	}
	return tenant, nil
}

func (s *Service) Update(ctx context.Context, id string, req domain.UpdateRequest) (domain.Tenant, error) {
	if err := validator.ValidateRequest(req); err != nil {
		return domain.Tenant{}, err
	}
	tenant, err := s.load(ctx, id)
	if err != nil {
		return domain.Tenant{}, err
	}

	if req.FullName != nil {
		fullName := strings.TrimSpace(*req.FullName)
		if fullName == "" {
			return domain.Tenant{}, domain.ErrInvalidName
		}
		tenant.FullName = fullName
	}
	if req.Phone != nil {
		phone := strings.TrimSpace(*req.Phone)
		if phone == "" {
			return domain.Tenant{}, domain.ErrInvalidPhone
		}
		tenant.Phone = phone
	}
	if req.Email != nil {
		tenant.Email = strings.TrimSpace(*req.Email)
	}
	if req.IdentityNumber != nil {
		tenant.IdentityNumber = optional(*req.IdentityNumber)
	}
	if req.DateOfBirth != nil {
		tenant.DateOfBirth = req.DateOfBirth
		if req.DateOfBirth.IsZero() {
			tenant.DateOfBirth = nil
		}
	}
	if req.PermanentAddress != nil {
		tenant.PermanentAddress = strings.TrimSpace(*req.PermanentAddress)
	}
	if req.Status != nil {
		status, ok := domain.ParseStatus(*req.Status)
		if !ok {
			return domain.Tenant{}, domain.ErrInvalidStatus
		}
		tenant.Status = status
	}
	if req.UserID != nil {
		tenant.UserID = optional(*req.UserID)
	}
	if err := s.ensureUnique(ctx, tenant); err != nil {
		return domain.Tenant{}, err
	}
	tenant.UpdatedAt = s.clock.Now()

	if err := s.repo.Update(ctx, s.db, &tenant); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Tenant{}, domain.ErrDuplicateIdentity
		}
		return domain.Tenant{}, err
	}
	return tenant, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	tenant, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	contracts, err := s.repo.CountContracts(ctx, s.db, tenant.ID)
	if err != nil {
		return err
	}
	if contracts > 0 {
		return domain.ErrHasContracts
	}
	return s.repo.Delete(ctx, s.db, tenant.ID)
}

func (s *Service) Get(ctx context.Context, id string) (domain.Tenant, error) {
	return s.load(ctx, id)
}

func (s *Service) GetByUserID(ctx context.Context, userID string) (domain.Tenant, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return domain.Tenant{}, domain.ErrNotFound
	}
	tenant, err := s.repo.FindByUserID(ctx, s.db, userID)
	if err != nil {
		return domain.Tenant{}, err
	}
	if tenant == nil {
		return domain.Tenant{}, domain.ErrNotFound
	}
	return *tenant, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) ([]domain.Tenant, error) {
	filter := domain.ListFilter{Query: req.Query}
	if strings.TrimSpace(req.Status) != "" {
		status, ok := domain.ParseStatus(req.Status)
		if !ok {
			return nil, domain.ErrInvalidStatus
		}
		filter.Status = status
	}
	return s.repo.List(ctx, s.db, filter)
}

func (s *Service) load(ctx context.Context, id string) (domain.Tenant, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || parsed == 0 {
		return domain.Tenant{}, domain.ErrInvalidID
	}
	tenant, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return domain.Tenant{}, err
	}
	if tenant == nil {
		return domain.Tenant{}, domain.ErrNotFound
	}
	return *tenant, nil
}

func (s *Service) ensureUnique(ctx context.Context, tenant domain.Tenant) error {
	if tenant.IdentityNumber != nil {
		existing, err := s.repo.FindByIdentityNumber(ctx, s.db, *tenant.IdentityNumber)
		if err != nil {
			return err
		}
		if existing != nil && existing.ID != tenant.ID {
			return domain.ErrDuplicateIdentity
		}
	}
	if tenant.UserID != nil {
		existing, err := s.repo.FindByUserID(ctx, s.db, *tenant.UserID)
		if err != nil {
			return err
		}
		if existing != nil && existing.ID != tenant.ID {
			return domain.ErrDuplicateUser
		}
	}
	return nil
}

func optional(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}
