package usecase_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/foodtruck-api/internal/application/dto"
	"github.com/jhoicas/foodtruck-api/internal/application/usecase"
	"github.com/jhoicas/foodtruck-api/internal/domain"
	"github.com/jhoicas/foodtruck-api/internal/domain/entity"
	"github.com/jhoicas/foodtruck-api/internal/domain/schema"
	"github.com/jhoicas/foodtruck-api/internal/infrastructure/sqlstore"
)

func body(t *testing.T, s string) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(s), &m))
	return m
}

func TestRecordUseCase_CRUD(t *testing.T) {
	db := openDB(t)
	uc := usecase.NewRecordUseCase(db.Repos().Records)
	ctx := context.Background()
	suppliers := schema.MustLookup("suppliers")

	rec, err := uc.Create(ctx, suppliers, body(t, `{"name":"Harina SA","phone":"555","unknown":"x"}`))
	require.NoError(t, err)
	id, ok := rec.ID()
	require.True(t, ok)
	assert.Equal(t, "Food", rec["category"])
	assert.NotContains(t, rec, "unknown")
	assert.NotNil(t, rec["created_at"])

	// PUT reemplaza: phone omitido queda NULL, created_at se conserva
	upd, err := uc.Update(ctx, suppliers, id, body(t, `{"name":"Harina SAS","category":"Supplies"}`))
	require.NoError(t, err)
	assert.Equal(t, "Harina SAS", upd["name"])
	assert.Equal(t, "Supplies", upd["category"])
	assert.Nil(t, upd["phone"])
	assert.Equal(t, rec["created_at"], upd["created_at"])

	list, err := uc.List(ctx, suppliers, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, uc.Delete(ctx, suppliers, id))
	_, err = uc.Get(ctx, suppliers, id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, suppliers, id), domain.ErrNotFound)
	_, err = uc.Update(ctx, suppliers, id, body(t, `{"name":"x"}`))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecordUseCase_Validacion(t *testing.T) {
	db := openDB(t)
	uc := usecase.NewRecordUseCase(db.Repos().Records)
	ctx := context.Background()

	_, err := uc.Create(ctx, schema.MustLookup("suppliers"), body(t, `{"phone":"555"}`))
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "name", ve.Field)

	_, err = uc.Create(ctx, schema.MustLookup("reviews"), body(t, `{"rating":"cinco"}`))
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "rating", ve.Field)

	rec, err := uc.Create(ctx, schema.MustLookup("notes"), body(t, `{"title":"Gas","pinned":true}`))
	require.NoError(t, err)
	assert.Equal(t, true, rec["pinned"])
}

func TestArchiveRestore_IdaYVuelta(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	records := usecase.NewRecordUseCase(db.Repos().Records)
	archive := usecase.NewArchiveUseCase(sqlstore.NewTxRunner(db), db.Repos().Records)
	events := schema.MustLookup(schema.TableEvents)

	ev, err := records.Create(ctx, events, body(t, `{"name":"Feria","date":"2026-06-01","fee":150.5,"status":"Accepted","contact_id":7}`))
	require.NoError(t, err)
	id, _ := ev.ID()

	arch, err := archive.Archive(ctx, events, id)
	require.NoError(t, err)
	assert.Equal(t, id, arch[schema.ColOriginalID])
	assert.NotNil(t, arch[schema.ColArchivedDate])
	assert.Equal(t, "Feria", arch["name"])

	_, err = records.Get(ctx, events, id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	listed, err := archive.ListArchived(ctx, events)
	require.NoError(t, err)
	require.Len(t, listed, 1)

	archID, _ := arch.ID()
	restored, err := archive.Restore(ctx, events, archID)
	require.NoError(t, err)
	for _, c := range events.Columns {
		assert.Equal(t, ev[c.Name], restored[c.Name], c.Name)
	}
	rid, _ := restored.ID()
	assert.Equal(t, id, rid)

	_, err = archive.GetArchived(ctx, events, archID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRestore_IdOcupado(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	records := usecase.NewRecordUseCase(db.Repos().Records)
	archive := usecase.NewArchiveUseCase(sqlstore.NewTxRunner(db), db.Repos().Records)
	catering := schema.MustLookup(schema.TableCatering)

	c, err := records.Create(ctx, catering, body(t, `{"client":"Boda Pérez","guests":80}`))
	require.NoError(t, err)
	id, _ := c.ID()
	arch, err := archive.Archive(ctx, catering, id)
	require.NoError(t, err)
	archID, _ := arch.ID()

	// otra fila ocupa el id original
	_, err = db.Repos().Records.Insert(ctx, catering, entity.Record{"id": id, "client": "Otro"})
	require.NoError(t, err)

	_, err = archive.Restore(ctx, catering, archID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	// la fila archivada sigue ahí
	_, err = archive.GetArchived(ctx, catering, archID)
	assert.NoError(t, err)
}

func TestArchive_NoArchivable(t *testing.T) {
	db := openDB(t)
	archive := usecase.NewArchiveUseCase(sqlstore.NewTxRunner(db), db.Repos().Records)
	_, err := archive.Archive(context.Background(), schema.MustLookup("suppliers"), 1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = archive.Archive(context.Background(), schema.MustLookup(schema.TableEvents), 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestContactHistory(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	records := usecase.NewRecordUseCase(db.Repos().Records)
	archive := usecase.NewArchiveUseCase(sqlstore.NewTxRunner(db), db.Repos().Records)
	contacts := usecase.NewContactUseCase(db.Repos().Records)

	contact, err := records.Create(ctx, schema.MustLookup(schema.TableContacts), body(t, `{"name":"Ana"}`))
	require.NoError(t, err)
	cid, _ := contact.ID()

	events := schema.MustLookup(schema.TableEvents)
	_, err = records.Create(ctx, events, map[string]any{"name": "Feria", "contact_id": cid})
	require.NoError(t, err)
	old, err := records.Create(ctx, events, map[string]any{"name": "Mercado", "contact_id": cid})
	require.NoError(t, err)
	oldID, _ := old.ID()
	_, err = archive.Archive(ctx, events, oldID)
	require.NoError(t, err)
	_, err = records.Create(ctx, events, map[string]any{"name": "Ajeno"})
	require.NoError(t, err)
	_, err = records.Create(ctx, schema.MustLookup(schema.TableCatering), map[string]any{"client": "Ana", "contact_id": cid})
	require.NoError(t, err)

	h, err := contacts.History(ctx, cid)
	require.NoError(t, err)
	assert.Len(t, h.Events, 1)
	assert.Len(t, h.ArchivedEvents, 1)
	assert.Len(t, h.Catering, 1)
	assert.Empty(t, h.ArchivedCatering)

	_, err = contacts.History(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
