package user

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Service interface {
	GetCurrentUser(ctx context.Context) (User, error)
	CreateUser(ctx context.Context, user User) (User, error)
	GetUser(ctx context.Context, id int) (User, error)
	GetUserByUid(ctx context.Context, uid string) (User, error)
	UpdateUser(ctx context.Context, user User) (User, error)
	GetAllUsers(ctx context.Context) ([]User, error)
	IsUsernameAvailable(ctx context.Context, username string) (bool, error)
}

// Provider is the minimal read-only view other packages depend on.
type Provider interface {
	GetCurrentUser(ctx context.Context) (User, error)
}

type ServiceImpl struct {
	repo Repo
}

func NewUserService(repo Repo) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (u *ServiceImpl) GetCurrentUser(ctx context.Context) (User, error) {
	userId, err := CurrentId(ctx)
	if err != nil {
		return User{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return u.GetUser(ctx, userId)
}

func (u *ServiceImpl) CreateUser(ctx context.Context, user User) (User, error) {
	if user.Uid == "" {
		user.Uid = uuid.NewString()
	}
	userId, err := u.repo.CreateUser(ctx, user)
	if err != nil {
		return User{}, err
	}
	user.Id = userId
	return user, nil
}

func (u *ServiceImpl) GetUser(ctx context.Context, id int) (User, error) {
	return u.repo.GetUser(ctx, id)
}

func (u *ServiceImpl) GetUserByUid(ctx context.Context, uid string) (User, error) {
	return u.repo.GetUserByUid(ctx, uid)
}

func (u *ServiceImpl) UpdateUser(ctx context.Context, user User) (User, error) {
	userId, err := CurrentId(ctx)
	if err != nil {
		return User{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return u.repo.UpdateUser(ctx, userId, user)
}

func (u *ServiceImpl) GetAllUsers(ctx context.Context) ([]User, error) {
	return u.repo.GetAllUsers(ctx)
}

func (u *ServiceImpl) IsUsernameAvailable(ctx context.Context, username string) (bool, error) {
	return u.repo.IsUsernameAvailable(ctx, username)
}
