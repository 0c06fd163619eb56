package sqlstore

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/foodtruck-api/internal/domain"
	"github.com/jhoicas/foodtruck-api/internal/domain/entity"
	"github.com/jhoicas/foodtruck-api/internal/domain/repository"
	"github.com/jhoicas/foodtruck-api/internal/domain/schema"
	"github.com/jhoicas/foodtruck-api/pkg/logger"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	ctx := context.Background()
	db, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, Migrate(ctx, db, logger.Nop()))
	return db
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestMigrate_Idempotente(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Migrate(context.Background(), db, logger.Nop()))

	var n int
	require.NoError(t, db.Get(&n, `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'archived_events'`))
	assert.Equal(t, 1, n)
}

func TestMigrate_RegistraColumnasExistentes(t *testing.T) {
	db := openTestDB(t)
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "trace", Output: &buf})

	require.NoError(t, Migrate(context.Background(), db, log))

	out := buf.String()
	assert.Contains(t, out, `"message":"columna ya existe"`)
	assert.Contains(t, out, `"table":"inventory"`)
	assert.Contains(t, out, `"columns_added":0`)
}

func TestMigrate_AgregaColumnasFaltantes(t *testing.T) {
	ctx := context.Background()
	db, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "old.db"))
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE inventory (id INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT, unit TEXT, current_stock DOUBLE PRECISION)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO inventory (name, unit, current_stock) VALUES ('Flour', 'kg', 50)`)
	require.NoError(t, err)

	require.NoError(t, Migrate(ctx, db, logger.Nop()))

	var category string
	require.NoError(t, db.Get(&category, `SELECT category FROM inventory WHERE name = 'Flour'`))
	assert.Equal(t, entity.DefaultInventoryCategory, category)
}

func TestInventoryRepo_CRUD(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := NewInventoryRepository(db.DB, db.Dialect())
	now := time.Now().UTC()

	item := &entity.InventoryItem{
		Name: "Flour", Unit: "kg", Category: "Dry Goods",
		CurrentStock: dec("50"), MinStock: dec("60"), MaxStock: dec("100"), UnitCost: dec("1.25"),
		CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, repo.Create(ctx, item))
	require.NotZero(t, item.ID)

	got, err := repo.GetByID(ctx, item.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Flour", got.Name)
	assert.True(t, got.CurrentStock.Equal(dec("50")))
	assert.True(t, got.UnitCost.Equal(dec("1.25")))
	assert.Nil(t, got.IngredientID)

	low, err := repo.ListBelowMinimum(ctx)
	require.NoError(t, err)
	require.Len(t, low, 1)

	require.NoError(t, repo.UpdateStock(ctx, item.ID, dec("45"), dec("1.25"), now))
	got, err = repo.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.True(t, got.CurrentStock.Equal(dec("45")))

	missing, err := repo.GetByID(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, missing)

	ok, err := repo.Delete(ctx, item.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = repo.Delete(ctx, item.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTxRunner_RollbackEnError(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	runner := NewTxRunner(db)
	boom := errors.New("boom")
	now := time.Now().UTC()

	err := runner.Run(ctx, func(r repository.Repos) error {
		item := &entity.InventoryItem{Name: "Rice", Unit: "kg", CreatedAt: now, UpdatedAt: now}
		require.NoError(t, r.Inventory.Create(ctx, item))
		return boom
	})
	require.ErrorIs(t, err, boom)

	items, err := db.Repos().Inventory.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestHistoryAndReports(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repos := db.Repos()
	now := time.Now().UTC()

	item := &entity.InventoryItem{Name: "Flour", Unit: "kg", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repos.Inventory.Create(ctx, item))

	for _, h := range []*entity.InventoryHistory{
		{InventoryID: item.ID, ItemName: "Flour", Unit: "kg", ChangeAmount: dec("50"), NewStock: dec("50"), ChangeType: entity.ChangeTypeRestock, CreatedAt: now.Add(-2 * time.Hour)},
		{InventoryID: item.ID, ItemName: "Flour", Unit: "kg", ChangeAmount: dec("-5"), PreviousStock: dec("50"), NewStock: dec("45"), ChangeType: entity.ChangeTypeUsed, CreatedAt: now.Add(-time.Hour)},
		{InventoryID: item.ID, ItemName: "Flour", Unit: "kg", ChangeAmount: dec("-2"), PreviousStock: dec("45"), NewStock: dec("43"), ChangeType: entity.ChangeTypeWaste, CreatedAt: now},
	} {
		require.NoError(t, repos.History.Create(ctx, h))
	}

	hist, err := repos.History.List(ctx, repository.HistoryFilter{InventoryID: item.ID})
	require.NoError(t, err)
	require.Len(t, hist, 3)
	assert.Equal(t, entity.ChangeTypeWaste, hist[0].ChangeType, "más reciente primero")

	start := now.Add(-90 * time.Minute)
	hist, err = repos.History.List(ctx, repository.HistoryFilter{Start: &start})
	require.NoError(t, err)
	assert.Len(t, hist, 2)

	reports := NewReportRepository(db.DB)
	end := now.Add(time.Minute)
	from := now.Add(-24 * time.Hour)
	usage, err := reports.InventoryUsage(ctx, from, end)
	require.NoError(t, err)
	require.Len(t, usage, 1)
	assert.True(t, usage[0].TotalUsed.Equal(dec("7")))
	assert.True(t, usage[0].TotalAdded.Equal(dec("50")))
	assert.Equal(t, 3, usage[0].Transactions)
}

func TestWasteRepo_HistoryLink(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := NewWasteRepository(db.DB)
	now := time.Now().UTC()

	w := &entity.WasteEntry{InventoryID: 1, ItemName: "Lettuce", Amount: dec("2"), Unit: "head", Reason: "spoiled", Cost: dec("3"), CreatedAt: now}
	require.NoError(t, repo.Create(ctx, w))
	require.NoError(t, repo.SetHistoryID(ctx, w.ID, 77))

	got, err := repo.GetByID(ctx, w.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(77), got.HistoryID)
	assert.True(t, got.Amount.Equal(dec("2")))
}

func TestUserRepo_UsernameUnico(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := NewUserRepository(db.DB)
	now := time.Now().UTC()

	u := &entity.User{Username: "admin", PasswordHash: "x", Role: entity.RoleAdmin, Status: entity.UserStatusActive, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repo.Create(ctx, u))

	dup := *u
	dup.ID = 0
	assert.ErrorIs(t, repo.Create(ctx, &dup), domain.ErrUsernameTaken)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := repo.GetByUsername(ctx, "admin")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, u.ID, got.ID)
}

func TestSettingsRepo_Upsert(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := NewSettingsRepository(db.DB)
	now := time.Now().UTC()

	require.NoError(t, repo.Upsert(ctx, &entity.Setting{Key: "theme", Value: "light", UpdatedAt: now}))
	require.NoError(t, repo.Upsert(ctx, &entity.Setting{Key: "theme", Value: "dark", UpdatedAt: now}))

	all, err := repo.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "dark", all[0].Value)

	info := NewBusinessInfoRepository(db.DB)
	got, err := info.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, info.Save(ctx, &entity.BusinessInfo{BusinessName: "Taco Truck", DefaultMargin: dec("35"), UpdatedAt: now}))
	require.NoError(t, info.Save(ctx, &entity.BusinessInfo{BusinessName: "Taco Truck 2", DefaultMargin: dec("40"), UpdatedAt: now}))
	got, err = info.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Taco Truck 2", got.BusinessName)
	assert.True(t, got.DefaultMargin.Equal(dec("40")))
}

func TestRecordRepo_CRUDYArchivo(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := NewRecordRepository(db.DB, db.Dialect())
	events := schema.MustLookup(schema.TableEvents)
	now := time.Now().UTC()

	id, err := repo.Insert(ctx, events, entity.Record{
		"name": "Farmers Market", "fee": 50.0, "status": "Booked", "contact_id": int64(3), "created_at": now,
	})
	require.NoError(t, err)

	rec, err := repo.Get(ctx, events, id)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "Farmers Market", rec["name"])
	assert.Equal(t, 50.0, rec["fee"])
	assert.Equal(t, int64(3), rec["contact_id"])
	assert.Nil(t, rec["location"])
	assert.IsType(t, time.Time{}, rec["created_at"])

	ok, err := repo.Update(ctx, events, id, entity.Record{"status": "Completed"})
	require.NoError(t, err)
	assert.True(t, ok)

	list, err := repo.List(ctx, events, repository.RecordFilter{Column: "contact_id", Value: int64(3)})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Completed", list[0]["status"])

	_, err = repo.List(ctx, events, repository.RecordFilter{Column: "nope", Value: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// reinsertar con id explícito
	ok, err = repo.Delete(ctx, events, id)
	require.NoError(t, err)
	require.True(t, ok)
	again, err := repo.Insert(ctx, events, entity.Record{"id": id, "name": "Farmers Market"})
	require.NoError(t, err)
	assert.Equal(t, id, again)

	_, err = repo.Insert(ctx, events, entity.Record{"id": id, "name": "dup"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestRecordRepo_Booleanos(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := NewRecordRepository(db.DB, db.Dialect())
	notes := schema.MustLookup("notes")

	id, err := repo.Insert(ctx, notes, entity.Record{"title": "Pedido", "pinned": true})
	require.NoError(t, err)
	rec, err := repo.Get(ctx, notes, id)
	require.NoError(t, err)
	assert.Equal(t, true, rec["pinned"])
}

func TestSnapshotYRestore(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repos := db.Repos()
	now := time.Now().UTC()

	require.NoError(t, repos.Inventory.Create(ctx, &entity.InventoryItem{Name: "Flour", Unit: "kg", CurrentStock: dec("50"), CreatedAt: now, UpdatedAt: now}))

	snap := filepath.Join(t.TempDir(), "backup.db")
	require.NoError(t, db.Snapshot(ctx, snap))
	require.NoError(t, ValidateBackupFile(snap))

	require.NoError(t, repos.Inventory.Create(ctx, &entity.InventoryItem{Name: "Rice", Unit: "kg", CreatedAt: now, UpdatedAt: now}))

	counts, err := db.RestoreFrom(ctx, snap, logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts[schema.TableInventory])

	items, err := repos.Inventory.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Flour", items[0].Name)
}

func TestValidateBackupFile_Invalido(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.db")
	require.NoError(t, os.WriteFile(path, []byte("no soy sqlite"), 0o600))
	assert.ErrorIs(t, ValidateBackupFile(path), domain.ErrInvalidBackup)
}

func TestPaginacion_OffsetSinLimite(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repos := db.Repos()
	suppliers := schema.MustLookup("suppliers")

	for _, name := range []string{"Acme", "Bodega Sur", "Carnes Lupe"} {
		_, err := repos.Records.Insert(ctx, suppliers, entity.Record{"name": name})
		require.NoError(t, err)
	}

	list, err := repos.Records.List(ctx, suppliers, repository.RecordFilter{Offset: 1})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Bodega Sur", list[0]["name"])

	list, err = repos.Records.List(ctx, suppliers, repository.RecordFilter{Limit: 1, Offset: 2})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Carnes Lupe", list[0]["name"])

	now := time.Now().UTC()
	item := &entity.InventoryItem{Name: "Flour", Unit: "kg", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repos.Inventory.Create(ctx, item))
	for i := 0; i < 3; i++ {
		require.NoError(t, repos.History.Create(ctx, &entity.InventoryHistory{
			InventoryID: item.ID, ItemName: "Flour", Unit: "kg", ChangeAmount: dec("1"),
			NewStock: decimal.NewFromInt(int64(i + 1)), ChangeType: entity.ChangeTypeRestock,
			CreatedAt: now.Add(time.Duration(i) * time.Minute),
		}))
	}
	hist, err := repos.History.List(ctx, repository.HistoryFilter{InventoryID: item.ID, Offset: 1})
	require.NoError(t, err)
	require.Len(t, hist, 2)
	assert.True(t, hist[0].NewStock.Equal(dec("2")), "se salta el más reciente")
}

func TestDialectPage(t *testing.T) {
	clause, args := SQLite.Page(0, 5)
	assert.Equal(t, "LIMIT -1 OFFSET ?", clause)
	assert.Equal(t, []interface{}{5}, args)

	clause, args = Postgres.Page(0, 5)
	assert.Equal(t, "OFFSET ?", clause)
	assert.Equal(t, []interface{}{5}, args)

	clause, args = Postgres.Page(10, 0)
	assert.Equal(t, "LIMIT ? OFFSET ?", clause)
	assert.Equal(t, []interface{}{10, 0}, args)

	clause, args = SQLite.Page(0, 0)
	assert.Empty(t, clause)
	assert.Nil(t, args)
}
