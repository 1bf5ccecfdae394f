package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	boardinghousedomain "github.com/smallbiznis/boardinghouse/internal/boardinghouse/domain"
	"github.com/smallbiznis/boardinghouse/internal/clock"
	"github.com/smallbiznis/boardinghouse/internal/room/domain"
	"github.com/smallbiznis/boardinghouse/pkg/db"
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
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  domain.Repository

	houserepo repository.Repository[boardinghousedomain.BoardingHouse]
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("room.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,

		houserepo: repository.ProvideStore[boardinghousedomain.BoardingHouse](p.DB),
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (domain.Room, error) {
	if err := validator.ValidateRequest(req); err != nil {
		return domain.Room{}, err
	}
	houseID, err := snowflake.ParseString(strings.TrimSpace(req.BoardingHouseID))
	if err != nil || houseID == 0 {
		return domain.Room{}, domain.ErrInvalidBoardingHouse
	}
	house, err := s.houserepo.FindByID(ctx, houseID)
	if err != nil {
		return domain.Room{}, err
	}
	if house == nil {
		return domain.Room{}, domain.ErrInvalidBoardingHouse
	}

	code := strings.TrimSpace(req.Code)
	if code == "" {
		return domain.Room{}, domain.ErrInvalidCode
	}
	if req.BaseRent.IsNegative() || req.Area.IsNegative() {
		return domain.Room{}, domain.ErrNegativeAmount
	}
	status := domain.StatusAvailable
	if strings.TrimSpace(req.Status) != "" {
		parsed, ok := domain.ParseStatus(req.Status)
		if !ok || parsed == domain.StatusOccupied {
			return domain.Room{}, domain.ErrInvalidStatus
		}
		status = parsed
	}
	if err := s.ensureCodeFree(ctx, code, 0); err != nil {
		return domain.Room{}, err
	}

	floor := req.Floor
	if floor == 0 {
		floor = 1
	}
	occupants := req.MaxOccupants
	if occupants == 0 {
		occupants = 1
	}
	now := s.clock.Now()
	room := domain.Room{
		ID:              s.genID.Generate(),
		BoardingHouseID: house.ID,
		Code:            code,
		Floor:           floor,
		Area:            req.Area,
		MaxOccupants:    occupants,
		BaseRent:        req.BaseRent,
		Status:          status,
		Description:     strings.TrimSpace(req.Description),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.repo.Insert(ctx, s.db, &room); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Room{}, domain.ErrDuplicateCode
		}
		return domain.Room{}, err
	}
	return room, nil
}

func (s *Service) Update(ctx context.Context, id string, req domain.UpdateRequest) (domain.Room, error) {
	if err := validator.ValidateRequest(req); err != nil {
		return domain.Room{}, err
	}
	room, err := s.load(ctx, id)
	if err != nil {
		return domain.Room{}, err
	}

	if req.Code != nil {
		code := strings.TrimSpace(*req.Code)
		if code == "" {
			return domain.Room{}, domain.ErrInvalidCode
		}
		if !strings.EqualFold(code, room.Code) {
			if err := s.ensureCodeFree(ctx, code, room.ID); err != nil {
				return domain.Room{}, err
			}
		}
		room.Code = code
	}
	if req.Floor != nil {
		room.Floor = *req.Floor
	}
	if req.Area != nil {
		if req.Area.IsNegative() {
			return domain.Room{}, domain.ErrNegativeAmount
		}
		room.Area = *req.Area
	}
	if req.MaxOccupants != nil {
		room.MaxOccupants = *req.MaxOccupants
	}
	if req.BaseRent != nil {
		if req.BaseRent.IsNegative() {
			return domain.Room{}, domain.ErrNegativeAmount
		}
		room.BaseRent = *req.BaseRent
	}
	if req.Status != nil {
		status, ok := domain.ParseStatus(*req.Status)
		if !ok {
			return domain.Room{}, domain.ErrInvalidStatus
		}
		// OCCUPIED is owned by contract activation and termination.
		if status != room.Status && (status == domain.StatusOccupied || room.Status == domain.StatusOccupied) {
			return domain.Room{}, domain.ErrStatusManaged
		}
		room.Status = status
	}
	if req.Description != nil {
		room.Description = strings.TrimSpace(*req.Description)
	}
	room.UpdatedAt = s.clock.Now()

	if err := s.repo.Update(ctx, s.db, &room); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Room{}, domain.ErrDuplicateCode
		}
		return domain.Room{}, err
	}
	return room, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	room, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	contracts, err := s.repo.CountContracts(ctx, s.db, room.ID)
	if err != nil {
		return err
	}
	if contracts > 0 {
		return domain.ErrHasContracts
	}
	return s.repo.Delete(ctx, s.db, room.ID)
}

func (s *Service) Get(ctx context.Context, id string) (domain.Room, error) {
	return s.load(ctx, id)
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) ([]domain.Room, error) {
	var filter domain.ListFilter
	if raw := strings.TrimSpace(req.BoardingHouseID); raw != "" {
		houseID, err := snowflake.ParseString(raw)
		if err != nil {
			return nil, domain.ErrInvalidBoardingHouse
		}
		filter.BoardingHouseID = houseID
	}
	if strings.TrimSpace(req.Status) != "" {
		status, ok := domain.ParseStatus(req.Status)
		if !ok {
			return nil, domain.ErrInvalidStatus
		}
		filter.Status = status
	}
	return s.repo.List(ctx, s.db, filter)
}

func (s *Service) load(ctx context.Context, id string) (domain.Room, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || parsed == 0 {
		return domain.Room{}, domain.ErrInvalidID
	}
	room, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return domain.Room{}, err
	}
	if room == nil {
		return domain.Room{}, domain.ErrNotFound
	}
	return *room, nil
}

func (s *Service) ensureCodeFree(ctx context.Context, code string, self snowflake.ID) error {
	existing, err := s.repo.FindByCode(ctx, s.db, code)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != self {
		return domain.ErrDuplicateCode
	}
	return nil
}
