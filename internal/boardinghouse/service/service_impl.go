package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"github.com/smallbiznis/boardinghouse/internal/boardinghouse/domain"
	"github.com/smallbiznis/boardinghouse/internal/clock"
	"github.com/smallbiznis/boardinghouse/pkg/db/option"
	"github.com/smallbiznis/boardinghouse/pkg/repository"
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
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock

	houserepo repository.Repository[domain.BoardingHouse]
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("boardinghouse.service"),
		genID: p.GenID,
		clock: p.Clock,

		houserepo: repository.ProvideStore[domain.BoardingHouse](p.DB),
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (domain.BoardingHouse, error) {
	if err := validator.ValidateRequest(req); err != nil {
		return domain.BoardingHouse{}, err
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.BoardingHouse{}, domain.ErrInvalidName
	}

	floors := req.NumberOfFloors
	if floors == 0 {
		floors = 1
	}
	now := s.clock.Now()
	house := domain.BoardingHouse{
		ID:             s.genID.Generate(),
		Name:           name,
		Slug:           slug.Make(name),
		Address:        strings.TrimSpace(req.Address),
		Description:    strings.TrimSpace(req.Description),
		NumberOfFloors: floors,
		Notes:          strings.TrimSpace(req.Notes),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.houserepo.Create(ctx, &house); err != nil {
		return domain.BoardingHouse{}, err
	}
	return house, nil
}

func (s *Service) Update(ctx context.Context, id string, req domain.UpdateRequest) (domain.BoardingHouse, error) {
	if err := validator.ValidateRequest(req); err != nil {
		return domain.BoardingHouse{}, err
	}
	house, err := s.load(ctx, id)
	if err != nil {
		return domain.BoardingHouse{}, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.BoardingHouse{}, domain.ErrInvalidName
		}
		house.Name = name
		house.Slug = slug.Make(name)
	}
	if req.Address != nil {
		house.Address = strings.TrimSpace(*req.Address)
	}
	if req.Description != nil {
		house.Description = strings.TrimSpace(*req.Description)
	}
	if req.NumberOfFloors != nil {
		house.NumberOfFloors = *req.NumberOfFloors
	}
	if req.Notes != nil {
		house.Notes = strings.TrimSpace(*req.Notes)
	}
	house.UpdatedAt = s.clock.Now()

	if err := s.houserepo.Save(ctx, &house); err != nil {
		return domain.BoardingHouse{}, err
	}
	return house, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	house, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	var rooms int64
	if err := s.db.WithContext(ctx).Table("rooms").Where("boarding_house_id = ?", house.ID).Count(&rooms).Error; err != nil {
		return err
	}
	if rooms > 0 {
		return domain.ErrHasRooms
	}
	return s.houserepo.Delete(ctx, house.ID)
}

func (s *Service) Get(ctx context.Context, id string) (domain.BoardingHouse, error) {
	return s.load(ctx, id)
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) ([]domain.BoardingHouse, error) {
	opts := []option.QueryOption{
		option.WithSortBy(option.QuerySortBy{Default: "name", OrderBy: "asc"}),
	}
	if name := strings.TrimSpace(req.Name); name != "" {
		opts = append(opts, option.WithWhere("LOWER(name) LIKE ?", "%"+strings.ToLower(name)+"%"))
	}
	items, err := s.houserepo.Find(ctx, nil, opts...)
	if err != nil {
		return nil, err
	}
	houses := make([]domain.BoardingHouse, 0, len(items))
	for _, item := range items {
		if item != nil {
			houses = append(houses, *item)
		}
	}
	return houses, nil
}

func (s *Service) load(ctx context.Context, id string) (domain.BoardingHouse, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || parsed == 0 {
		return domain.BoardingHouse{}, domain.ErrInvalidID
	}
	house, err := s.houserepo.FindByID(ctx, parsed)
	if err != nil {
		return domain.BoardingHouse{}, err
	}
	if house == nil {
		return domain.BoardingHouse{}, domain.ErrNotFound
	}
	return *house, nil
}
