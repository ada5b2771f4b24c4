package repositories

import (
	"context"
	"time"

	"github.com/fxops/currency_management_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// ConversionWriter defines write operations for conversion records
type ConversionWriter interface {
	// SaveConversion persists a single conversion record as its own unit.
	SaveConversion(ctx context.Context, conversion domain.Conversion) error

	// SaveConversionTx persists a conversion record inside an open
	// transaction so a batch commits or rolls back as one unit.
	SaveConversionTx(ctx context.Context, tx pgx.Tx, conversion domain.Conversion) error
}

// ConversionReader defines the filtered, paginated history lookups. Each
// returns the requested page plus the total match count for the filter.
type ConversionReader interface {
	FindByTransactionID(ctx context.Context, transactionID string, limit, offset int) ([]domain.Conversion, int64, error)
	FindByTransactionDate(ctx context.Context, transactionDate time.Time, limit, offset int) ([]domain.Conversion, int64, error)
	FindByTransactionIDAndDate(ctx context.Context, transactionID string, transactionDate time.Time, limit, offset int) ([]domain.Conversion, int64, error)
}

// ConversionRepositoryFacade combines all conversion-related repository interfaces
type ConversionRepositoryFacade interface {
	ConversionReader
	ConversionWriter
}

// ConversionRepositoryWithTx extends ConversionRepositoryFacade with transaction capabilities
type ConversionRepositoryWithTx interface {
	ConversionRepositoryFacade
	TransactionManager
}
