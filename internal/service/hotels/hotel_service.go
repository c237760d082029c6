package hotels

import (
	"context"

	"github.com/Domenick1991/hotelbooking/internal/domain"
	"github.com/Domenick1991/hotelbooking/internal/logging"
	"github.com/Domenick1991/hotelbooking/internal/repository"
	"github.com/Domenick1991/hotelbooking/internal/validation"
	"github.com/sirupsen/logrus"
)

// DefaultDestinations is shown before any hotel has been listed.
var DefaultDestinations = []string{"New York", "Miami", "Las Vegas", "Los Angeles", "Chicago"}

const featuredFallback = 3

type HotelUseCase interface {
	List(ctx context.Context) ([]domain.Hotel, error)
	GetByID(ctx context.Context, id int64) (*domain.Hotel, error)
	Search(ctx context.Context, location, name string) ([]domain.Hotel, error)
	Featured(ctx context.Context) ([]domain.Hotel, error)
	Destinations(ctx context.Context) ([]string, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, h domain.Hotel) (*domain.Hotel, error)
	Update(ctx context.Context, id int64, h domain.Hotel) (*domain.Hotel, error)
	Delete(ctx context.Context, id int64) error
}

type Cache interface {
	GetHotels(ctx context.Context) ([]domain.Hotel, error)
	SetHotels(ctx context.Context, hotels []domain.Hotel) error
	InvalidateHotels(ctx context.Context) error
}

type HotelService struct {
	repo      repository.HotelRepository
	cache     Cache
	validator *validation.Validator
	logger    logrus.FieldLogger
}

type HotelServiceOption func(*HotelService)

func WithCache(c Cache) HotelServiceOption {
	return func(s *HotelService) {
		s.cache = c
	}
}

func WithLogger(logger logrus.FieldLogger) HotelServiceOption {
	return func(s *HotelService) {
		s.logger = logger
	}
}

func NewHotelService(repo repository.HotelRepository, opts ...HotelServiceOption) *HotelService {
	s := &HotelService{
		repo:      repo,
		validator: validation.New(),
		logger:    logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.WithField("component", "hotels")
	return s
}

func (s *HotelService) List(ctx context.Context) ([]domain.Hotel, error) {
	if s.cache != nil {
		cached, err := s.cache.GetHotels(ctx)
		if err == nil && cached != nil {
			return cached, nil
		}
		if err != nil {
			s.logger.WithError(err).Debug("hotel cache read failed")
		}
	}

	hotels, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetHotels(ctx, hotels); err != nil {
			s.logger.WithError(err).Debug("hotel cache write failed")
		}
	}
	return hotels, nil
}

func (s *HotelService) GetByID(ctx context.Context, id int64) (*domain.Hotel, error) {
	return s.repo.GetByID(ctx, id)
}

// Search matches location and name case-insensitively. With neither given it
// falls back to the featured list.
func (s *HotelService) Search(ctx context.Context, location, name string) ([]domain.Hotel, error) {
	if location == "" && name == "" {
		return s.Featured(ctx)
	}
	return s.repo.Search(ctx, location, name)
}

// Featured returns the flagged hotels, or the first few hotels when none are
// flagged.
func (s *HotelService) Featured(ctx context.Context) ([]domain.Hotel, error) {
	featured, err := s.repo.Featured(ctx)
	if err != nil {
		return nil, err
	}
	if len(featured) > 0 {
		return featured, nil
	}

	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(all) > featuredFallback {
		all = all[:featuredFallback]
	}
	return all, nil
}

func (s *HotelService) Destinations(ctx context.Context) ([]string, error) {
	destinations, err := s.repo.Destinations(ctx)
	if err != nil {
		return nil, err
	}
	if len(destinations) == 0 {
		return append([]string(nil), DefaultDestinations...), nil
	}
	return destinations, nil
}

func (s *HotelService) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func (s *HotelService) Create(ctx context.Context, h domain.Hotel) (*domain.Hotel, error) {
	if err := s.validator.Struct(h); err != nil {
		return nil, err
	}
	h.ID = 0
	if err := s.repo.Create(ctx, &h); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	s.logger.WithField("hotel_id", h.ID).Info("hotel created")
	return &h, nil
}

func (s *HotelService) Update(ctx context.Context, id int64, h domain.Hotel) (*domain.Hotel, error) {
	if err := s.validator.Struct(h); err != nil {
		return nil, err
	}
	h.ID = id
	if err := s.repo.Update(ctx, &h); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	s.logger.WithField("hotel_id", id).Info("hotel updated")
	return &h, nil
}

func (s *HotelService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	s.logger.WithField("hotel_id", id).Info("hotel deleted")
	return nil
}

func (s *HotelService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateHotels(ctx); err != nil {
		s.logger.WithError(err).Warn("failed to invalidate hotel cache")
	}
}

var _ HotelUseCase = (*HotelService)(nil)
