package project

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/farmledger/farmledger/internal/database"
	"github.com/farmledger/farmledger/internal/test_utils"
	"github.com/farmledger/farmledger/internal/utils"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

var pgContainer *postgres.PostgresContainer
var openDb func() *database.DB

func TestMain(m *testing.M) {
	pgContainer, openDb = test_utils.TestWithPostgres()
	code := m.Run()
	if err := testcontainers.TerminateContainer(pgContainer); err != nil {
		log.Errorf("failed to terminate container: %s", err)
	}
	os.Exit(code)
}

// setupTestDB hands out a connection and restores the post-migration snapshot
// afterwards so that tests do not see each other's data.
func setupTestDB(t *testing.T) *database.DB {
	t.Helper()
	db := openDb()
	t.Cleanup(func() {
		db.Close()
		require.NoError(t, pgContainer.Restore(context.Background()))
	})
	return db
}

// seedUser inserts a user row so that project rows satisfy the foreign key.
func seedUser(t *testing.T, db *database.DB) int {
	t.Helper()
	var id int
	err := db.QueryRow(
		db.Rebind("INSERT INTO users (uid, username) VALUES (?, ?) RETURNING id"),
		t.Name(), t.Name(),
	).Scan(&id)
	require.NoError(t, err)
	return id
}

func TestProjectRepo_StoreAndGet(t *testing.T) {
	// given
	db := setupTestDB(t)
	ctx := context.Background()
	userId := seedUser(t, db)
	repo := NewProjectRepo(db)

	// when
	id, err := repo.Store(ctx, userId, Project{
		Name:      "Pond expansion",
		Notes:     "second growout pond",
		StartDate: utils.NewDate(2024, time.March, 1),
		Status:    StatusActive,
	})
	require.NoError(t, err)

	// then
	stored, err := repo.Get(ctx, userId, id)
	require.NoError(t, err)
	assert.Equal(t, "Pond expansion", stored.Name)
	assert.Equal(t, "second growout pond", stored.Notes)
	assert.Equal(t, utils.NewDate(2024, time.March, 1), stored.StartDate)
	assert.Equal(t, StatusActive, stored.Status)
}

func TestProjectRepo_Get_OtherUserIsInvisible(t *testing.T) {
	// given
	db := setupTestDB(t)
	ctx := context.Background()
	ownerId := seedUser(t, db)
	repo := NewProjectRepo(db)

	id, err := repo.Store(ctx, ownerId, Project{
		Name:      "Private project",
		StartDate: utils.NewDate(2024, time.March, 1),
		Status:    StatusActive,
	})
	require.NoError(t, err)

	// when
	_, err = repo.Get(ctx, ownerId+1, id)

	// then
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestProjectRepo_ReplaceBudget_SwapsWholeBudget(t *testing.T) {
	// given
	db := setupTestDB(t)
	ctx := context.Background()
	userId := seedUser(t, db)
	repo := NewProjectRepo(db)

	id, err := repo.Store(ctx, userId, Project{
		Name:      "Harvest cycle",
		StartDate: utils.NewDate(2024, time.March, 1),
		Status:    StatusActive,
	})
	require.NoError(t, err)

	err = repo.ReplaceBudget(ctx, userId, id, []BudgetCategory{
		{Name: "feed", Amount: decimal.NewFromInt(1000)},
		{Name: "labor", Amount: decimal.NewFromInt(500)},
	})
	require.NoError(t, err)

	// when
	err = repo.ReplaceBudget(ctx, userId, id, []BudgetCategory{
		{Name: "feed", Amount: decimal.NewFromInt(1200)},
	})
	require.NoError(t, err)

	// then
	categories, err := repo.GetBudget(ctx, userId, id)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "feed", categories[0].Name)
	assert.True(t, decimal.NewFromInt(1200).Equal(categories[0].Amount))
}

func TestProjectRepo_DeleteCascadesToBudget(t *testing.T) {
	// given
	db := setupTestDB(t)
	ctx := context.Background()
	userId := seedUser(t, db)
	repo := NewProjectRepo(db)

	id, err := repo.Store(ctx, userId, Project{
		Name:      "Short lived",
		StartDate: utils.NewDate(2024, time.March, 1),
		Status:    StatusActive,
	})
	require.NoError(t, err)
	err = repo.ReplaceBudget(ctx, userId, id, []BudgetCategory{
		{Name: "feed", Amount: decimal.NewFromInt(100)},
	})
	require.NoError(t, err)

	// when
	deleted, err := repo.Delete(ctx, userId, id)
	require.NoError(t, err)
	assert.True(t, deleted)

	// then
	var count int
	err = db.QueryRow(db.Rebind("SELECT COUNT(*) FROM budget_category WHERE project_id = ?"), id).Scan(&count)
	require.NoError(t, err)
	assert.Zero(t, count)
}
