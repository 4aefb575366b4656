package repository

import (
	"context"
	"testing"
	"time"

	"optiops/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{}, &model.Machine{}, &model.MachineLog{},
		&model.Product{}, &model.CustomerOrder{}, &model.ProductionOrder{},
	))
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		_ = sqlDB.Close()
	})
	return db
}

func TestUserRepo_CountsAndUniqueness(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	now := time.Now()
	seed := []model.User{
		{Username: "admin", Email: "a@x.com", PasswordHash: "h", Role: model.RoleAdmin, IsActive: true, CreatedAt: now.AddDate(0, -2, 0)},
		{Username: "admin2", Email: "a2@x.com", PasswordHash: "h", Role: model.RoleAdmin, IsActive: false, CreatedAt: now.AddDate(0, -2, 0)},
		{Username: "w1", Email: "w1@x.com", PasswordHash: "h", Role: model.RoleWorker, IsActive: true, CreatedAt: now.AddDate(0, 0, -5)},
	}
	for i := range seed {
		require.NoError(t, repo.Create(ctx, &seed[i]))
	}

	admins, err := repo.CountActiveAdmins(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), admins)

	recent, err := repo.CountCreatedBetween(ctx, now.AddDate(0, 0, -30), now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), recent)

	taken, err := repo.UsernameExists(ctx, "w1", 0)
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = repo.UsernameExists(ctx, "w1", seed[2].ID)
	require.NoError(t, err)
	assert.False(t, taken)

	// FindByUsername only surfaces active accounts
	_, err = repo.FindByUsername(ctx, "admin2")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserRepo_CreateKeepsInactiveFlag(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := model.User{Username: "parked", Email: "p@x.com", PasswordHash: "h", Role: model.RoleWorker, IsActive: false, CreatedAt: time.Now()}
	require.NoError(t, repo.Create(ctx, &u))

	got, err := repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
}

func TestUserRepo_SoftDelete(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := model.User{Username: "buyer", Email: "b@x.com", PasswordHash: "h", Role: model.RoleCustomer, IsActive: true, CreatedAt: time.Now()}
	require.NoError(t, repo.Create(ctx, &u))

	require.NoError(t, repo.SoftDelete(ctx, u.ID))
	got, err := repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
}

func TestMachineRepo_StatusCounts(t *testing.T) {
	db := openTestDB(t)
	repo := NewMachineRepository(db)
	ctx := context.Background()

	machines := []model.Machine{
		{Name: "CNC Mill A", Type: "CNC", Status: model.StatusOperational},
		{Name: "CNC Mill B", Type: "CNC", Status: model.StatusOffline},
		{Name: "Press C", Type: "Press", Status: model.StatusUnderMaintenance},
	}
	require.NoError(t, db.Create(&machines).Error)

	n, err := repo.CountByStatus(ctx, model.StatusOperational)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	listed, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.Equal(t, "CNC Mill A", listed[0].Name)
}

func TestMachineLogRepo_LastN(t *testing.T) {
	db := openTestDB(t)
	repo := NewMachineLogRepository(db)
	ctx := context.Background()

	actor := model.User{Username: "jdoe", Email: "j@x.com", PasswordHash: "h", Role: model.RoleWorker, IsActive: true, CreatedAt: time.Now()}
	require.NoError(t, db.Create(&actor).Error)

	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 12; i++ {
		require.NoError(t, repo.Create(ctx, &model.MachineLog{
			MachineID: 1,
			Timestamp: base.Add(time.Duration(i) * time.Hour),
			Action:    "Status updated to Operational",
			UserID:    actor.ID,
		}))
	}
	// Another machine's rows must not leak in
	require.NoError(t, repo.Create(ctx, &model.MachineLog{
		MachineID: 2, Timestamp: base.Add(100 * time.Hour), Action: "x", UserID: actor.ID,
	}))

	logs, err := repo.LastN(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, logs, 10)
	// Newest first, actor preloaded
	assert.True(t, logs[0].Timestamp.After(logs[9].Timestamp))
	require.NotNil(t, logs[0].User)
	assert.Equal(t, "jdoe", logs[0].User.Username)
}

func TestCustomerOrderRepo_SumsAndRecent(t *testing.T) {
	db := openTestDB(t)
	repo := NewCustomerOrderRepository(db)
	ctx := context.Background()

	// Empty table sums to zero, not an error
	sum, err := repo.SumTotalAmount(ctx)
	require.NoError(t, err)
	assert.True(t, sum.IsZero())

	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	orders := []model.CustomerOrder{
		{ProductID: 1, UserID: 1, Quantity: 1, TotalAmount: decimal.RequireFromString("100.00"), OrderDate: now},
		{ProductID: 1, UserID: 1, Quantity: 2, TotalAmount: decimal.RequireFromString("50.50"), OrderDate: now.AddDate(0, -1, 0)},
		{ProductID: 1, UserID: 2, Quantity: 1, TotalAmount: decimal.RequireFromString("10.00"), OrderDate: now.AddDate(0, -3, 0)},
	}
	for i := range orders {
		require.NoError(t, repo.Create(ctx, &orders[i]))
	}

	sum, err = repo.SumTotalAmount(ctx)
	require.NoError(t, err)
	assert.True(t, sum.Equal(decimal.RequireFromString("160.50")))

	windowed, err := repo.SumTotalAmountBetween(ctx, now.AddDate(0, -2, 0), now)
	require.NoError(t, err)
	assert.True(t, windowed.Equal(decimal.RequireFromString("50.50")))

	recent, err := repo.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, orders[0].ID, recent[0].ID)

	has, err := repo.ExistsForUser(ctx, 2)
	require.NoError(t, err)
	assert.True(t, has)
	has, err = repo.ExistsForUser(ctx, 99)
	require.NoError(t, err)
	assert.False(t, has)
}
