package pond

import (
	"context"
	"time"
)

type StubPondRepo struct {
	nextId        int
	nextReadingId int
	ponds         map[int]Pond
	owners        map[int]int
	readings      map[int][]WaterReading
}

func NewStubPondRepo() *StubPondRepo {
	return &StubPondRepo{
		ponds:    map[int]Pond{},
		owners:   map[int]int{},
		readings: map[int][]WaterReading{},
	}
}

func (s *StubPondRepo) Store(ctx context.Context, userId int, pond Pond) (int, error) {
	s.nextId++
	pond.ID = s.nextId
	s.ponds[pond.ID] = pond
	s.owners[pond.ID] = userId
	return pond.ID, nil
}

func (s *StubPondRepo) Get(ctx context.Context, userId int, pondId int) (Pond, error) {
	pond, ok := s.ponds[pondId]
	if !ok || s.owners[pondId] != userId {
		return Pond{}, ErrPondNotFound
	}
	return pond, nil
}

func (s *StubPondRepo) GetAll(ctx context.Context, userId int) ([]Pond, error) {
	var ponds []Pond
	for id, pond := range s.ponds {
		if s.owners[id] == userId {
			ponds = append(ponds, pond)
		}
	}
	return ponds, nil
}

func (s *StubPondRepo) Update(ctx context.Context, userId int, pond Pond) (bool, error) {
	if _, ok := s.ponds[pond.ID]; !ok || s.owners[pond.ID] != userId {
		return false, nil
	}
	s.ponds[pond.ID] = pond
	return true, nil
}

func (s *StubPondRepo) Delete(ctx context.Context, userId int, pondId int) (bool, error) {
	if _, ok := s.ponds[pondId]; !ok || s.owners[pondId] != userId {
		return false, nil
	}
	delete(s.ponds, pondId)
	delete(s.owners, pondId)
	delete(s.readings, pondId)
	return true, nil
}

func (s *StubPondRepo) StoreReading(ctx context.Context, userId int, reading WaterReading) (int, error) {
	if _, err := s.Get(ctx, userId, reading.PondID); err != nil {
		return 0, err
	}
	s.nextReadingId++
	reading.ID = s.nextReadingId
	s.readings[reading.PondID] = append(s.readings[reading.PondID], reading)
	return reading.ID, nil
}

func (s *StubPondRepo) GetReadings(ctx context.Context, userId int, pondId int, from time.Time, to time.Time) ([]WaterReading, error) {
	if _, err := s.Get(ctx, userId, pondId); err != nil {
		return nil, err
	}
	var readings []WaterReading
	for _, reading := range s.readings[pondId] {
		if reading.ReadingTime.Before(from) || reading.ReadingTime.After(to) {
			continue
		}
		readings = append(readings, reading)
	}
	return readings, nil
}

func (s *StubPondRepo) LatestReading(ctx context.Context, userId int, pondId int) (WaterReading, error) {
	if _, err := s.Get(ctx, userId, pondId); err != nil {
		return WaterReading{}, err
	}
	all := s.readings[pondId]
	if len(all) == 0 {
		return WaterReading{}, ErrNoReadings
	}
	latest := all[0]
	for _, reading := range all[1:] {
		if reading.ReadingTime.After(latest.ReadingTime) {
			latest = reading
		}
	}
	return latest, nil
}

func (s *StubPondRepo) Cleanup() {
	s.nextId = 0
	s.nextReadingId = 0
	s.ponds = map[int]Pond{}
	s.owners = map[int]int{}
	s.readings = map[int][]WaterReading{}
}
