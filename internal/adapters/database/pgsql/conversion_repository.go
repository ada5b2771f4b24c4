package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/fxops/currency_management_app/internal/core/domain"
	portsrepo "github.com/fxops/currency_management_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxConversionRepository implements the conversion repository ports using pgxpool.
type PgxConversionRepository struct {
	BaseRepository
}

// NewConversionRepository creates a new PgxConversionRepository.
func NewConversionRepository(db *pgxpool.Pool) *PgxConversionRepository {
	return &PgxConversionRepository{BaseRepository{Pool: db}}
}

// Ensure PgxConversionRepository implements portsrepo.ConversionRepositoryWithTx
var _ portsrepo.ConversionRepositoryWithTx = (*PgxConversionRepository)(nil)

const insertConversionQuery = `
	INSERT INTO conversions (
		base_currency, target_currency, amount, converted_amount,
		exchange_rate, transaction_id, transaction_date
	) VALUES ($1, $2, $3, $4, $5, $6, $7)
`

// SaveConversion inserts a new conversion record. The conversion_id is
// store-assigned.
func (r *PgxConversionRepository) SaveConversion(ctx context.Context, conversion domain.Conversion) error {
	_, err := r.Pool.Exec(ctx, insertConversionQuery,
		conversion.BaseCurrency, conversion.TargetCurrency, conversion.Amount,
		conversion.ConvertedAmount, conversion.ExchangeRate,
		conversion.TransactionID, conversion.TransactionDate,
	)
	if err != nil {
		return fmt.Errorf("error inserting conversion: %w", err)
	}
	return nil
}

// SaveConversionTx inserts a new conversion record inside an open
// transaction. The bulk pipeline uses it so the whole batch commits or rolls
// back as one unit.
func (r *PgxConversionRepository) SaveConversionTx(ctx context.Context, tx pgx.Tx, conversion domain.Conversion) error {
	_, err := tx.Exec(ctx, insertConversionQuery,
		conversion.BaseCurrency, conversion.TargetCurrency, conversion.Amount,
		conversion.ConvertedAmount, conversion.ExchangeRate,
		conversion.TransactionID, conversion.TransactionDate,
	)
	if err != nil {
		return fmt.Errorf("error inserting conversion in tx: %w", err)
	}
	return nil
}

const selectConversionColumns = `
	conversion_id, base_currency, target_currency, amount, converted_amount,
	exchange_rate, transaction_id, transaction_date, COUNT(*) OVER() AS total
`

// FindByTransactionID retrieves a page of conversions for a transaction ID
// plus the total match count.
func (r *PgxConversionRepository) FindByTransactionID(ctx context.Context, transactionID string, limit, offset int) ([]domain.Conversion, int64, error) {
	query := `
		SELECT ` + selectConversionColumns + `
		FROM conversions
		WHERE transaction_id = $1
		ORDER BY transaction_date DESC, conversion_id
		LIMIT $2 OFFSET $3
	`
	rows, err := r.Pool.Query(ctx, query, transactionID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("error querying conversions by transaction id: %w", err)
	}
	defer rows.Close()
	return scanConversionPage(rows)
}

// FindByTransactionDate retrieves a page of conversions for a calendar date
// plus the total match count.
func (r *PgxConversionRepository) FindByTransactionDate(ctx context.Context, transactionDate time.Time, limit, offset int) ([]domain.Conversion, int64, error) {
	query := `
		SELECT ` + selectConversionColumns + `
		FROM conversions
		WHERE transaction_date = $1
		ORDER BY transaction_date DESC, conversion_id
		LIMIT $2 OFFSET $3
	`
	rows, err := r.Pool.Query(ctx, query, transactionDate, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("error querying conversions by transaction date: %w", err)
	}
	defer rows.Close()
	return scanConversionPage(rows)
}

// FindByTransactionIDAndDate retrieves a page of conversions matching both
// filters plus the total match count.
func (r *PgxConversionRepository) FindByTransactionIDAndDate(ctx context.Context, transactionID string, transactionDate time.Time, limit, offset int) ([]domain.Conversion, int64, error) {
	query := `
		SELECT ` + selectConversionColumns + `
		FROM conversions
		WHERE transaction_id = $1 AND transaction_date = $2
		ORDER BY transaction_date DESC, conversion_id
		LIMIT $3 OFFSET $4
	`
	rows, err := r.Pool.Query(ctx, query, transactionID, transactionDate, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("error querying conversions by transaction id and date: %w", err)
	}
	defer rows.Close()
	return scanConversionPage(rows)
}

func scanConversionPage(rows pgx.Rows) ([]domain.Conversion, int64, error) {
	var (
		conversions []domain.Conversion
		total       int64
	)
	for rows.Next() {
		var c domain.Conversion
		if err := rows.Scan(
			&c.ConversionID, &c.BaseCurrency, &c.TargetCurrency, &c.Amount,
			&c.ConvertedAmount, &c.ExchangeRate, &c.TransactionID,
			&c.TransactionDate, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("error scanning conversion row: %w", err)
		}
		conversions = append(conversions, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating conversion rows: %w", err)
	}
	return conversions, total, nil
}
