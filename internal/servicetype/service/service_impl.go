package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/boardinghouse/internal/cache"
	"github.com/smallbiznis/boardinghouse/internal/clock"
	"github.com/smallbiznis/boardinghouse/internal/servicetype/domain"
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
	Cache cache.CatalogCache
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  domain.Repository
	cache cache.CatalogCache
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("servicetype.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
		cache: p.Cache,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (domain.ServiceType, error) {
	if err := validator.ValidateRequest(req); err != nil {
		return domain.ServiceType{}, err
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.ServiceType{}, domain.ErrInvalidName
	}
	category, ok := domain.ParseCategory(req.Category)
	if !ok {
		return domain.ServiceType{}, domain.ErrInvalidCategory
	}
	if req.PricePerUnit.IsNegative() {
		return domain.ServiceType{}, domain.ErrNegativePrice
	}
	if err := s.ensureNameFree(ctx, name, 0); err != nil {
		return domain.ServiceType{}, err
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	now := s.clock.Now()
	st := domain.ServiceType{
		ID:           s.genID.Generate(),
		Name:         name,
		Category:     category,
		Unit:         strings.TrimSpace(req.Unit),
		PricePerUnit: req.PricePerUnit,
		Description:  strings.TrimSpace(req.Description),
		IsActive:     active,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Insert(ctx, s.db, &st); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.ServiceType{}, domain.ErrDuplicateName
		}
		return domain.ServiceType{}, err
	}
	s.cache.Invalidate()
	return st, nil
}

func (s *Service) Update(ctx context.Context, id string, req domain.UpdateRequest) (domain.ServiceType, error) {
	if err := validator.ValidateRequest(req); err != nil {
		return domain.ServiceType{}, err
	}
	st, err := s.load(ctx, id)
	if err != nil {
		return domain.ServiceType{}, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.ServiceType{}, domain.ErrInvalidName
		}
		if !strings.EqualFold(name, st.Name) {
			if err := s.ensureNameFree(ctx, name, st.ID); err != nil {
				return domain.ServiceType{}, err
			}
		}
		st.Name = name
	}
	if req.Category != nil {
		category, ok := domain.ParseCategory(*req.Category)
		if !ok {
			return domain.ServiceType{}, domain.ErrInvalidCategory
		}
		if category != st.Category {
			assigned, err := s.repo.CountAssignments(ctx, s.db, st.ID)
			if err != nil {
				return domain.ServiceType{}, err
			}
			if assigned > 0 {
				return domain.ServiceType{}, domain.ErrCategoryLocked
			}
		}
		st.Category = category
	}
	if req.Unit != nil {
		st.Unit = strings.TrimSpace(*req.Unit)
	}
	if req.PricePerUnit != nil {
		if req.PricePerUnit.IsNegative() {
			return domain.ServiceType{}, domain.ErrNegativePrice
		}
		st.PricePerUnit = *req.PricePerUnit
	}
	if req.Description != nil {
		st.Description = strings.TrimSpace(*req.Description)
	}
	if req.IsActive != nil {
		st.IsActive = *req.IsActive
	}
	st.UpdatedAt = s.clock.Now()

	if err := s.repo.Update(ctx, s.db, &st); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.ServiceType{}, domain.ErrDuplicateName
		}
		return domain.ServiceType{}, err
	}
	s.cache.Invalidate()
	return st, nil
}

// Delete removes an unassigned service type. Invoice items keep their own
// snapshot of description and price, so history is unaffected either way.
func (s *Service) Delete(ctx context.Context, id string) error {
	st, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	assigned, err := s.repo.CountAssignments(ctx, s.db, st.ID)
	if err != nil {
		return err
	}
	if assigned > 0 {
		return domain.ErrInUse
	}
	if err := s.repo.Delete(ctx, s.db, st.ID); err != nil {
		return err
	}
	s.cache.Invalidate()
	return nil
}

func (s *Service) Get(ctx context.Context, id string) (domain.ServiceType, error) {
	return s.load(ctx, id)
}

func (s *Service) List(ctx context.Context, filter domain.ListFilter) ([]domain.ServiceType, error) {
	cacheable := filter.ActiveOnly && filter.Category == ""
	if cacheable {
		if items, ok := s.cache.GetActive(); ok {
			return items, nil
		}
	}
	items, err := s.repo.List(ctx, s.db, filter)
	if err != nil {
		return nil, err
	}
	if cacheable {
		s.cache.SetActive(items)
	}
	return items, nil
}

func (s *Service) load(ctx context.Context, id string) (domain.ServiceType, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || parsed == 0 {
		return domain.ServiceType{}, domain.ErrInvalidID
	}
	st, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return domain.ServiceType{}, err
	}
	if st == nil {
		return domain.ServiceType{}, domain.ErrNotFound
	}
	return *st, nil
}

func (s *Service) ensureNameFree(ctx context.Context, name string, self snowflake.ID) error {
	existing, err := s.repo.FindByName(ctx, s.db, name)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != self {
		return domain.ErrDuplicateName
	}
	return nil
}
