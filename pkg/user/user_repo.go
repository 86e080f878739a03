package user

import (
	"context"
	"database/sql"
	"errors"

	"github.com/farmledger/farmledger/internal/database"
	log "github.com/sirupsen/logrus"
)

var ErrUserNotFound = errors.New("user does not exist")

type Repo interface {
	CreateUser(ctx context.Context, user User) (int, error)
	GetUser(ctx context.Context, id int) (User, error)
	GetUserByUid(ctx context.Context, uid string) (User, error)
	UpdateUser(ctx context.Context, userId int, user User) (User, error)
	GetAllUsers(ctx context.Context) ([]User, error)
	IsUsernameAvailable(ctx context.Context, username string) (bool, error)
}

type RepoImpl struct {
	db *database.DB
}

func NewUserRepo(db *database.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

func (u *RepoImpl) CreateUser(ctx context.Context, user User) (int, error) {
	currency := user.Settings.Currency
	if currency == "" {
		currency = "USD"
	}
	query := u.db.Rebind(`INSERT INTO users (uid, username, display_name, timezone, currency) VALUES (?, ?, ?, ?, ?) RETURNING id`)
	var id int
	err := u.db.QueryRowContext(ctx, query,
		user.Uid,
		user.Username,
		user.DisplayName,
		user.Settings.Timezone,
		currency,
	).Scan(&id)
	if err != nil {
		log.Errorf("failed to create user: %v", err)
		return 0, err
	}
	return id, nil
}

func (u *RepoImpl) GetUser(ctx context.Context, id int) (User, error) {
	query := u.db.Rebind(`SELECT id, uid, username, display_name, timezone, currency FROM users WHERE id = ?`)
	return u.scanUser(u.db.QueryRowContext(ctx, query, id))
}

func (u *RepoImpl) GetUserByUid(ctx context.Context, uid string) (User, error) {
	query := u.db.Rebind(`SELECT id, uid, username, display_name, timezone, currency FROM users WHERE uid = ?`)
	return u.scanUser(u.db.QueryRowContext(ctx, query, uid))
}

func (u *RepoImpl) scanUser(row *sql.Row) (User, error) {
	var user User
	err := row.Scan(
		&user.Id,
		&user.Uid,
		&user.Username,
		&user.DisplayName,
		&user.Settings.Timezone,
		&user.Settings.Currency,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrUserNotFound
	} else if err != nil {
		log.Errorf("failed to get user: %v", err)
		return User{}, err
	}
	return user, nil
}

func (u *RepoImpl) UpdateUser(ctx context.Context, userId int, user User) (User, error) {
	query := u.db.Rebind(`UPDATE users SET display_name = ?, timezone = ?, currency = ? WHERE id = ?`)
	_, err := u.db.ExecContext(ctx, query,
		user.DisplayName,
		user.Settings.Timezone,
		user.Settings.Currency,
		userId,
	)
	if err != nil {
		log.Errorf("failed to update user %d: %v", userId, err)
		return User{}, err
	}
	return u.GetUser(ctx, userId)
}

func (u *RepoImpl) GetAllUsers(ctx context.Context) ([]User, error) {
	query := `SELECT id, uid, username, display_name, timezone, currency FROM users ORDER BY username`
	rows, err := u.db.QueryContext(ctx, query)
	if err != nil {
		log.Errorf("failed to list users: %v", err)
		return nil, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var user User
		if err := rows.Scan(
			&user.Id,
			&user.Uid,
			&user.Username,
			&user.DisplayName,
			&user.Settings.Timezone,
			&user.Settings.Currency,
		); err != nil {
			log.Errorf("failed to scan user: %v", err)
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (u *RepoImpl) IsUsernameAvailable(ctx context.Context, username string) (bool, error) {
	query := u.db.Rebind(`SELECT COUNT(1) FROM users WHERE username = ?`)
	var count int
	if err := u.db.QueryRowContext(ctx, query, username).Scan(&count); err != nil {
		log.Errorf("failed to check username availability: %v", err)
		return false, err
	}
	return count == 0, nil
}
