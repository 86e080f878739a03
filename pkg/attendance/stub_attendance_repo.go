package attendance

import (
	"context"

	"github.com/farmledger/farmledger/internal/utils"
)

type recordKey struct {
	employeeId int
	date       utils.Date
}

type StubAttendanceRepo struct {
	nextId int
	data   map[recordKey]Record
}

func NewStubAttendanceRepo() *StubAttendanceRepo {
	return &StubAttendanceRepo{nextId: 0, data: map[recordKey]Record{}}
}

func (s *StubAttendanceRepo) Upsert(ctx context.Context, userId int, record Record) (int, error) {
	key := recordKey{employeeId: record.EmployeeID, date: record.Date}
	if existing, ok := s.data[key]; ok {
		record.ID = existing.ID
	} else {
		s.nextId++
		record.ID = s.nextId
	}
	s.data[key] = record
	return record.ID, nil
}

func (s *StubAttendanceRepo) GetRange(ctx context.Context, userId int, employeeId int, from utils.Date, to utils.Date) ([]Record, error) {
	var records []Record
	for key, record := range s.data {
		if key.employeeId != employeeId {
			continue
		}
		if record.Date.Before(from) || record.Date.After(to) {
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

func (s *StubAttendanceRepo) GetAllInRange(ctx context.Context, userId int, from utils.Date, to utils.Date) ([]Record, error) {
	var records []Record
	for _, record := range s.data {
		if record.Date.Before(from) || record.Date.After(to) {
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

func (s *StubAttendanceRepo) Cleanup() {
	s.data = map[recordKey]Record{}
}
