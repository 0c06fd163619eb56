package sqlstore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jhoicas/foodtruck-api/internal/domain"
	"github.com/jhoicas/foodtruck-api/internal/domain/schema"
	"github.com/jhoicas/foodtruck-api/pkg/logger"
)

// sqliteHeader primeros 16 bytes de todo archivo SQLite 3.
var sqliteHeader = []byte("SQLite format 3\x00")

// Snapshot escribe en dest una copia consistente de la base (VACUUM INTO).
// dest no debe existir.
func (db *DB) Snapshot(ctx context.Context, dest string) error {
	if !db.dialect.IsSQLite() {
		return domain.ErrUnsupportedBackend
	}
	if _, err := db.ExecContext(ctx, "VACUUM INTO "+db.dialect.literal(dest)); err != nil {
		return fmt.Errorf("vacuum into: %w", err)
	}
	return nil
}

// ValidateBackupFile comprueba la cabecera SQLite del archivo.
func ValidateBackupFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("abrir copia: %w", err)
	}
	defer f.Close()

	head := make([]byte, len(sqliteHeader))
	if _, err := io.ReadFull(f, head); err != nil || !bytes.Equal(head, sqliteHeader) {
		return domain.ErrInvalidBackup
	}
	return nil
}

// RestoreFrom reemplaza el contenido de todas las tablas conocidas con el del
// archivo src. Antes de copiar, src se migra al esquema actual para que copias
// antiguas aporten las columnas que tengan y el resto quede en su valor por defecto.
// Devuelve las filas copiadas por tabla.
func (db *DB) RestoreFrom(ctx context.Context, src string, log *logger.Logger) (map[string]int64, error) {
	if !db.dialect.IsSQLite() {
		return nil, domain.ErrUnsupportedBackend
	}
	if err := ValidateBackupFile(src); err != nil {
		return nil, err
	}

	bk, err := OpenSQLite(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidBackup, err)
	}
	present, err := existingTables(ctx, bk)
	if err == nil {
		err = Migrate(ctx, bk, log)
	}
	_ = bk.Close()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidBackup, err)
	}

	conn, err := db.Connx(ctx)
	if err != nil {
		return nil, fmt.Errorf("obtener conexión: %w", err)
	}
	defer conn.Close()

	// ATTACH no se permite dentro de una transacción.
	if _, err := conn.ExecContext(ctx, "ATTACH DATABASE "+db.dialect.literal(src)+" AS backup"); err != nil {
		return nil, fmt.Errorf("attach: %w", err)
	}
	defer func() {
		_, _ = conn.ExecContext(context.Background(), "DETACH DATABASE backup")
	}()

	tx, err := conn.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	counts := make(map[string]int64)
	for _, t := range schema.All() {
		if _, err := tx.ExecContext(ctx, "DELETE FROM main."+quote(t.Name)); err != nil {
			return nil, fmt.Errorf("vaciar %s: %w", t.Name, err)
		}
		if !present[t.Name] {
			continue
		}
		cols := strings.Join(quoteAll(append([]string{t.PrimaryKey()}, t.ColumnNames()...)), ", ")
		res, err := tx.ExecContext(ctx, fmt.Sprintf("INSERT INTO main.%s (%s) SELECT %s FROM backup.%s",
			quote(t.Name), cols, cols, quote(t.Name)))
		if err != nil {
			return nil, fmt.Errorf("copiar %s: %w", t.Name, err)
		}
		n, _ := res.RowsAffected()
		counts[t.Name] = n
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit restore: %w", err)
	}
	log.Info().Interface("rows", counts).Msg("copia de seguridad restaurada")
	return counts, nil
}

// existingTables tablas presentes en el archivo antes de migrarlo.
func existingTables(ctx context.Context, db *DB) (map[string]bool, error) {
	var names []string
	if err := db.SelectContext(ctx, &names, `SELECT name FROM sqlite_master WHERE type = 'table'`); err != nil {
		return nil, err
	}
	out := make(map[string]bool, len(names))
	for _, n := range names {
		out[n] = true
	}
	return out, nil
}
