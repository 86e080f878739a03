package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/farmledger/farmledger/internal/database"
	"github.com/farmledger/farmledger/internal/test_utils"
	"github.com/farmledger/farmledger/internal/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRepo(t *testing.T) (*RepoImpl, context.Context, int) {
	db := test_utils.SetupTestDB(t)
	userId := seedUserWithEmployee(t, db)
	return NewAttendanceRepo(db), context.Background(), userId
}

// seedUserWithEmployee satisfies the foreign keys on the attendance table and
// returns the user id. The employee it creates has id 1.
func seedUserWithEmployee(t *testing.T, db *database.DB) int {
	t.Helper()

	var userId int
	err := db.QueryRow(`INSERT INTO users (uid, username) VALUES ('u-1', 'test-user') RETURNING id`).Scan(&userId)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO employee (uid, name, start_date, user_id) VALUES ('e-1', 'Worker', '2024-01-01', ?)`, userId)
	require.NoError(t, err)

	return userId
}

func TestRepoImpl_Upsert_InsertsAndOverwrites(t *testing.T) {
	repo, ctx, userId := setupRepo(t)

	day := utils.NewDate(2024, time.March, 4)

	// given an existing record
	firstId, err := repo.Upsert(ctx, userId, Record{
		EmployeeID: 1,
		Date:       day,
		Status:     StatusFullDay,
	})
	require.NoError(t, err)

	// when the same day is recorded again with a different status
	secondId, err := repo.Upsert(ctx, userId, Record{
		EmployeeID:    1,
		Date:          day,
		Status:        StatusHalfDay,
		OvertimeHours: decimal.NewFromInt(3),
		OvertimeRate:  decimal.RequireFromString("10.5"),
	})
	require.NoError(t, err)

	// then the row is replaced, not duplicated
	assert.Equal(t, firstId, secondId)
	records, err := repo.GetRange(ctx, userId, 1, day, day)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, StatusHalfDay, records[0].Status)
	assert.True(t, decimal.NewFromInt(3).Equal(records[0].OvertimeHours))
	assert.True(t, decimal.RequireFromString("10.5").Equal(records[0].OvertimeRate))
}

func TestRepoImpl_GetRange_FiltersAndOrders(t *testing.T) {
	repo, ctx, userId := setupRepo(t)

	days := []utils.Date{
		utils.NewDate(2024, time.March, 20),
		utils.NewDate(2024, time.March, 2),
		utils.NewDate(2024, time.February, 29),
		utils.NewDate(2024, time.April, 1),
	}
	for _, day := range days {
		_, err := repo.Upsert(ctx, userId, Record{EmployeeID: 1, Date: day, Status: StatusAbsent})
		require.NoError(t, err)
	}

	records, err := repo.GetRange(ctx, userId, 1,
		utils.NewDate(2024, time.March, 1), utils.NewDate(2024, time.March, 31))

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "2024-03-02", records[0].Date.String())
	assert.Equal(t, "2024-03-20", records[1].Date.String())
}

func TestRepoImpl_GetRange_OtherUserIsInvisible(t *testing.T) {
	repo, ctx, userId := setupRepo(t)

	day := utils.NewDate(2024, time.March, 4)
	_, err := repo.Upsert(ctx, userId, Record{EmployeeID: 1, Date: day, Status: StatusFullDay})
	require.NoError(t, err)

	records, err := repo.GetRange(ctx, userId+1, 1, day, day)

	require.NoError(t, err)
	assert.Empty(t, records)
}
