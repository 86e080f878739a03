package pond

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/farmledger/farmledger/internal/event_bus"
	"github.com/farmledger/farmledger/internal/utils"
	"github.com/farmledger/farmledger/pkg/user"
	log "github.com/sirupsen/logrus"
)

var ErrInvalidPond = errors.New("invalid pond")

type Service interface {
	Create(ctx context.Context, pond Pond) (Pond, error)
	Get(ctx context.Context, pondId int) (Pond, error)
	GetAll(ctx context.Context) ([]Pond, error)
	Update(ctx context.Context, pond Pond) (bool, error)
	Delete(ctx context.Context, pondId int) (bool, error)
	RecordReading(ctx context.Context, reading WaterReading) (WaterReading, error)
	GetReadings(ctx context.Context, pondId int, from time.Time, to time.Time) ([]WaterReading, error)
	LatestReading(ctx context.Context, pondId int) (WaterReading, error)
}

type ServiceImpl struct {
	repo  Repo
	bus   *event_bus.EventBus
	clock utils.Clock
}

func NewPondService(repo Repo, bus *event_bus.EventBus, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{repo: repo, bus: bus, clock: clock}
}

func (s *ServiceImpl) Create(ctx context.Context, pond Pond) (Pond, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Pond{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if strings.TrimSpace(pond.Name) == "" {
		return Pond{}, fmt.Errorf("%w: name is required", ErrInvalidPond)
	}
	if pond.AreaM2.IsNegative() || pond.StockingDensity.IsNegative() {
		return Pond{}, fmt.Errorf("%w: area and stocking density must not be negative", ErrInvalidPond)
	}

	id, err := s.repo.Store(ctx, userId, pond)
	if err != nil {
		return Pond{}, err
	}
	pond.ID = id
	return pond, nil
}

func (s *ServiceImpl) Get(ctx context.Context, pondId int) (Pond, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Pond{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.Get(ctx, userId, pondId)
}

func (s *ServiceImpl) GetAll(ctx context.Context) ([]Pond, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetAll(ctx, userId)
}

func (s *ServiceImpl) Update(ctx context.Context, pond Pond) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}

	updated, err := s.repo.Update(ctx, userId, pond)
	if err != nil {
		return false, err
	}
	if !updated {
		log.Warnf("pond not updated, probably because it does not exist (%d) or the user (%d) is not the owner", pond.ID, userId)
		return false, nil
	}
	return true, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, pondId int) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}

	deleted, err := s.repo.Delete(ctx, userId, pondId)
	if err != nil {
		return false, err
	}
	if !deleted {
		log.Warnf("pond not deleted, probably because it does not exist (%d) or the user (%d) is not the owner", pondId, userId)
		return false, nil
	}
	return true, nil
}

func (s *ServiceImpl) RecordReading(ctx context.Context, reading WaterReading) (WaterReading, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return WaterReading{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if reading.ReadingTime.IsZero() {
		reading.ReadingTime = s.clock.Now().UTC()
	}

	id, err := s.repo.StoreReading(ctx, userId, reading)
	if err != nil {
		return WaterReading{}, err
	}
	reading.ID = id

	if s.bus != nil {
		event := event_bus.NewEvent(ctx, event_bus.WaterReadingRecordedType, event_bus.WaterReadingRecorded{
			PondId:          reading.PondID,
			PH:              reading.PH,
			DissolvedOxygen: reading.DissolvedOxygen,
		})
		if err := s.bus.Publish(event); err != nil {
			log.Warnf("failed to publish water reading event: %v", err)
		}
	}

	return reading, nil
}

func (s *ServiceImpl) GetReadings(ctx context.Context, pondId int, from time.Time, to time.Time) ([]WaterReading, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetReadings(ctx, userId, pondId, from, to)
}

func (s *ServiceImpl) LatestReading(ctx context.Context, pondId int) (WaterReading, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return WaterReading{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.LatestReading(ctx, userId, pondId)
}
