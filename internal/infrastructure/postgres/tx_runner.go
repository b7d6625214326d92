package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spekmx/cotizador-api/internal/application/quotation"
	"github.com/spekmx/cotizador-api/internal/application/usecase"
	"github.com/spekmx/cotizador-api/internal/domain/repository"
)

var (
	_ quotation.TxRunner      = (*TxRunner)(nil)
	_ usecase.ProfileTxRunner = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunQuotation inicia una transacción, ejecuta fn con un repositorio de
// cotizaciones atado a la tx y hace Commit o Rollback. La asignación de folio
// y la escritura de cabecera más líneas viven dentro de la misma tx.
func (r *TxRunner) RunQuotation(ctx context.Context, fn func(repo repository.QuotationRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewQuotationRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunCompanyProfiles ejecuta fn con un repositorio de perfiles atado a una
// transacción. Liberar el predeterminado anterior y escribir el nuevo deben
// confirmarse juntos: si la escritura falla, el usuario conserva su
// predeterminado.
func (r *TxRunner) RunCompanyProfiles(ctx context.Context, fn func(repo repository.CompanyProfileRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewCompanyProfileRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
