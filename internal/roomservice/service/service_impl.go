package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/boardinghouse/internal/clock"
	roomdomain "github.com/smallbiznis/boardinghouse/internal/room/domain"
	"github.com/smallbiznis/boardinghouse/internal/roomservice/domain"
	servicetypedomain "github.com/smallbiznis/boardinghouse/internal/servicetype/domain"
	"github.com/smallbiznis/boardinghouse/pkg/db"
	"github.com/smallbiznis/boardinghouse/pkg/validator"
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
	RoomRepo        roomdomain.Repository
	ServiceTypeRepo servicetypedomain.Repository
}

type Service struct {
	db              *gorm.DB
	log             *zap.Logger
	genID           *snowflake.Node
	clock           clock.Clock
	repo            domain.Repository
	roomRepo        roomdomain.Repository
	serviceTypeRepo servicetypedomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:              p.DB,
		log:             p.Log.Named("roomservice.service"),
		genID:           p.GenID,
		clock:           p.Clock,
		repo:            p.Repo,
		roomRepo:        p.RoomRepo,
		serviceTypeRepo: p.ServiceTypeRepo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (domain.View, error) {
	if err := validator.ValidateRequest(req); err != nil {
		return domain.View{}, err
	}
	roomID, err := snowflake.ParseString(strings.TrimSpace(req.RoomID))
	if err != nil || roomID == 0 {
		return domain.View{}, domain.ErrRoomNotFound
	}
	serviceTypeID, err := snowflake.ParseString(strings.TrimSpace(req.ServiceTypeID))
	if err != nil || serviceTypeID == 0 {
		return domain.View{}, domain.ErrServiceNotFound
	}

	room, err := s.roomRepo.FindByID(ctx, s.db, roomID)
	if err != nil {
		return domain.View{}, err
	}
	if room == nil {
		return domain.View{}, domain.ErrRoomNotFound
	}
	st, err := s.serviceTypeRepo.FindByID(ctx, s.db, serviceTypeID)
	if err != nil {
		return domain.View{}, err
	}
	if st == nil {
		return domain.View{}, domain.ErrServiceNotFound
	}
	if !st.IsActive {
		return domain.View{}, domain.ErrInactiveService
	}

	pricing, err := servicetypedomain.ResolvePricing(*st, req.PricePerUnit, req.FixedPrice)
	if err != nil {
		return domain.View{}, err
	}

	existing, err := s.repo.FindByRoomAndType(ctx, s.db, room.ID, st.ID)
	if err != nil {
		return domain.View{}, err
	}
	if existing != nil {
		return domain.View{}, domain.ErrDuplicateAssignment
	}

	ppu, fixed := servicetypedomain.Columns(pricing)
	now := s.clock.Now()
	rs := domain.RoomService{
		ID:            s.genID.Generate(),
		RoomID:        room.ID,
		ServiceTypeID: st.ID,
		PricePerUnit:  ppu,
		FixedPrice:    fixed,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.Insert(ctx, s.db, &rs); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.View{}, domain.ErrDuplicateAssignment
		}
		return domain.View{}, err
	}
	return toView(rs, *st), nil
}

func (s *Service) Update(ctx context.Context, id string, req domain.UpdateRequest) (domain.View, error) {
	rs, st, err := s.load(ctx, id)
	if err != nil {
		return domain.View{}, err
	}

	ppu, fixed := req.PricePerUnit, req.FixedPrice
	if st.Category.IsMetered() {
		if ppu == nil && fixed == nil {
			ppu = rs.PricePerUnit
		}
	} else if fixed == nil && ppu == nil {
		fixed = rs.FixedPrice
	}
	pricing, err := servicetypedomain.ResolvePricing(st, ppu, fixed)
	if err != nil {
		return domain.View{}, err
	}

	rs.PricePerUnit, rs.FixedPrice = servicetypedomain.Columns(pricing)
	rs.UpdatedAt = s.clock.Now()
	if err := s.repo.UpdatePrices(ctx, s.db, &rs); err != nil {
		return domain.View{}, err
	}
	return toView(rs, st), nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	rs, _, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, s.db, rs.ID)
}

func (s *Service) ListByRoom(ctx context.Context, roomID string) ([]domain.View, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(roomID))
	if err != nil || parsed == 0 {
		return nil, domain.ErrRoomNotFound
	}
	room, err := s.roomRepo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, domain.ErrRoomNotFound
	}
	views, err := s.repo.ListViewsByRoom(ctx, s.db, room.ID)
	if err != nil {
		return nil, err
	}
	if views == nil {
		views = []domain.View{}
	}
	return views, nil
}

func (s *Service) load(ctx context.Context, id string) (domain.RoomService, servicetypedomain.ServiceType, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || parsed == 0 {
		return domain.RoomService{}, servicetypedomain.ServiceType{}, domain.ErrInvalidID
	}
	rs, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return domain.RoomService{}, servicetypedomain.ServiceType{}, err
	}
	if rs == nil {
		return domain.RoomService{}, servicetypedomain.ServiceType{}, domain.ErrNotFound
	}
	st, err := s.serviceTypeRepo.FindByID(ctx, s.db, rs.ServiceTypeID)
	if err != nil {
		return domain.RoomService{}, servicetypedomain.ServiceType{}, err
	}
	if st == nil {
		return domain.RoomService{}, servicetypedomain.ServiceType{}, domain.ErrServiceNotFound
	}
	return *rs, *st, nil
}

func toView(rs domain.RoomService, st servicetypedomain.ServiceType) domain.View {
	return domain.View{
		ID:              rs.ID,
		RoomID:          rs.RoomID,
		ServiceTypeID:   st.ID,
		ServiceTypeName: st.Name,
		ServiceCategory: st.Category,
		Unit:            st.Unit,
		DefaultPrice:    st.PricePerUnit,
		IsActive:        st.IsActive,
		PricePerUnit:    rs.PricePerUnit,
		FixedPrice:      rs.FixedPrice,
	}
}
