//go:build integration

package postgres_test

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shushovitJR/Yeti-Repair-backend/internal/database"
	"github.com/shushovitJR/Yeti-Repair-backend/internal/models"
	"github.com/shushovitJR/Yeti-Repair-backend/internal/repository"
	"github.com/shushovitJR/Yeti-Repair-backend/internal/repository/postgres"
	"github.com/shushovitJR/Yeti-Repair-backend/internal/service"
)

// openStore connects to TEST_DATABASE_URL and applies the migrations.
func openStore(t *testing.T) *postgres.Store {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, database.NewMigrator(pool, zerolog.Nop()).Up(ctx))
	return postgres.NewStore(pool)
}

func unique(prefix string) string { return prefix + "-" + uuid.NewString()[:8] }

func TestIntegration_DeviceUpsertIsRaceFree(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	catID, err := s.Categories().Create(ctx, unique("Laptop"), nil)
	require.NoError(t, err)
	name := unique("ThinkPad")

	const n = 8
	ids := make([]int, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id, err := s.Devices().Upsert(ctx, name, catID)
			assert.NoError(t, err)
			ids[i] = id
		}(i)
	}
	wg.Wait()

	for _, id := range ids {
		assert.Equal(t, ids[0], id)
	}
}

func TestIntegration_CreateRepairResolvesNames(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	category := unique("Printer")
	vendor := unique("Acme")
	_, err := s.Categories().Create(ctx, category, nil)
	require.NoError(t, err)
	_, err = s.Vendors().Create(ctx, vendor)
	require.NoError(t, err)

	repairs := service.NewRepairService(s)
	created, err := repairs.Create(ctx, models.NewRepair{
		DeviceCategory:   category,
		DeviceName:       "HP 400",
		IssueDescription: "paper jam",
		IssueDate:        "2025-03-01",
		VendorName:       vendor,
	})
	require.NoError(t, err)

	got, err := repairs.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, vendor, got.Vendor)
	assert.Equal(t, category, got.Category)
	assert.Equal(t, "Pending", got.Status)
	assert.Nil(t, got.ReturnDate)
}

func TestIntegration_TxRollsBackOnError(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	vendor := unique("Rollback")

	err := s.InTx(ctx, func(tx repository.Store) error {
		if _, err := tx.Vendors().Create(ctx, vendor); err != nil {
			return err
		}
		_, err := tx.Refs().Resolve(ctx, models.RefVendor, unique("missing"))
		return err
	})
	require.ErrorIs(t, err, repository.ErrNotFound)

	_, err = s.Refs().Resolve(ctx, models.RefVendor, vendor)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestIntegration_DuplicateVendor(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	vendor := unique("Dup")

	_, err := s.Vendors().Create(ctx, vendor)
	require.NoError(t, err)
	_, err = s.Vendors().Create(ctx, vendor)
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}
