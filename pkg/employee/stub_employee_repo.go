package employee

import "context"

type StubEmployeeRepo struct {
	nextId int
	data   map[int]Employee
}

func NewStubEmployeeRepo() *StubEmployeeRepo {
	return &StubEmployeeRepo{nextId: 0, data: map[int]Employee{}}
}

func (s *StubEmployeeRepo) Store(ctx context.Context, userId int, employee Employee) (int, error) {
	s.nextId++
	employee.ID = s.nextId
	s.data[employee.ID] = employee
	return employee.ID, nil
}

func (s *StubEmployeeRepo) Get(ctx context.Context, userId int, employeeId int) (Employee, error) {
	e, ok := s.data[employeeId]
	if !ok {
		return Employee{}, ErrEmployeeNotFound
	}
	return e, nil
}

func (s *StubEmployeeRepo) GetAll(ctx context.Context, userId int) ([]Employee, error) {
	employees := make([]Employee, 0, len(s.data))
	for _, e := range s.data {
		employees = append(employees, e)
	}
	return employees, nil
}

func (s *StubEmployeeRepo) Update(ctx context.Context, userId int, employee Employee) (bool, error) {
	if _, ok := s.data[employee.ID]; !ok {
		return false, nil
	}
	s.data[employee.ID] = employee
	return true, nil
}

func (s *StubEmployeeRepo) Delete(ctx context.Context, userId int, employeeId int) (bool, error) {
	if _, ok := s.data[employeeId]; !ok {
		return false, nil
	}
	delete(s.data, employeeId)
	return true, nil
}

func (s *StubEmployeeRepo) Cleanup() {
	s.data = map[int]Employee{}
}
