package project

import (
	"context"
)

type StubProjectRepo struct {
	nextId       int
	nextCatId    int
	projects     map[int]Project
	owners       map[int]int
	budgets      map[int][]BudgetCategory
	StoreError   error
	ReplaceError error
}

func NewStubProjectRepo() *StubProjectRepo {
	return &StubProjectRepo{
		projects: map[int]Project{},
		owners:   map[int]int{},
		budgets:  map[int][]BudgetCategory{},
	}
}

func (s *StubProjectRepo) Store(ctx context.Context, userId int, project Project) (int, error) {
	if s.StoreError != nil {
		return 0, s.StoreError
	}
	s.nextId++
	project.ID = s.nextId
	s.projects[project.ID] = project
	s.owners[project.ID] = userId
	return project.ID, nil
}

func (s *StubProjectRepo) Get(ctx context.Context, userId int, projectId int) (Project, error) {
	project, ok := s.projects[projectId]
	if !ok || s.owners[projectId] != userId {
		return Project{}, ErrProjectNotFound
	}
	return project, nil
}

func (s *StubProjectRepo) GetAll(ctx context.Context, userId int) ([]Project, error) {
	var projects []Project
	for id, project := range s.projects {
		if s.owners[id] == userId {
			projects = append(projects, project)
		}
	}
	return projects, nil
}

func (s *StubProjectRepo) Update(ctx context.Context, userId int, project Project) (bool, error) {
	if _, ok := s.projects[project.ID]; !ok || s.owners[project.ID] != userId {
		return false, nil
	}
	s.projects[project.ID] = project
	return true, nil
}

func (s *StubProjectRepo) Delete(ctx context.Context, userId int, projectId int) (bool, error) {
	if _, ok := s.projects[projectId]; !ok || s.owners[projectId] != userId {
		return false, nil
	}
	delete(s.projects, projectId)
	delete(s.owners, projectId)
	delete(s.budgets, projectId)
	return true, nil
}

func (s *StubProjectRepo) ReplaceBudget(ctx context.Context, userId int, projectId int, categories []BudgetCategory) error {
	if s.ReplaceError != nil {
		return s.ReplaceError
	}
	if _, err := s.Get(ctx, userId, projectId); err != nil {
		return err
	}
	stored := make([]BudgetCategory, 0, len(categories))
	for _, category := range categories {
		s.nextCatId++
		category.ID = s.nextCatId
		stored = append(stored, category)
	}
	s.budgets[projectId] = stored
	return nil
}

func (s *StubProjectRepo) GetBudget(ctx context.Context, userId int, projectId int) ([]BudgetCategory, error) {
	if _, err := s.Get(ctx, userId, projectId); err != nil {
		return nil, err
	}
	return s.budgets[projectId], nil
}

func (s *StubProjectRepo) Cleanup() {
	s.nextId = 0
	s.nextCatId = 0
	s.projects = map[int]Project{}
	s.owners = map[int]int{}
	s.budgets = map[int][]BudgetCategory{}
}
