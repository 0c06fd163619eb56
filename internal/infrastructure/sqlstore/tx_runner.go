package sqlstore

import (
	"context"
	"fmt"

	"github.com/jhoicas/foodtruck-api/internal/domain/repository"
)

// TxRunner ejecuta callbacks dentro de una transacción.
type TxRunner struct {
	db *DB
}

// NewTxRunner construye el runner.
func NewTxRunner(db *DB) *TxRunner {
	return &TxRunner{db: db}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(repos repository.Repos) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(newRepos(tx, r.db.dialect)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Repos devuelve los repositorios sobre la conexión (fuera de transacción).
func (db *DB) Repos() repository.Repos {
	return newRepos(db.DB, db.dialect)
}

func newRepos(q Querier, d Dialect) repository.Repos {
	return repository.Repos{
		Inventory:   NewInventoryRepository(q, d),
		History:     NewInventoryHistoryRepository(q, d),
		Waste:       NewWasteRepository(q),
		Ingredients: NewIngredientRepository(q),
		Menu:        NewMenuRepository(q),
		Recipes:     NewRecipeRepository(q),
		Records:     NewRecordRepository(q, d),
	}
}
