package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fxops/currency_management_app/internal/apperrors"
	"github.com/fxops/currency_management_app/internal/core/ports/quotes"
	portsrepo "github.com/fxops/currency_management_app/internal/core/ports/repositories"
	portssvc "github.com/fxops/currency_management_app/internal/core/ports/services"
	"github.com/fxops/currency_management_app/internal/dto"
	"github.com/fxops/currency_management_app/internal/metrics"
	"github.com/fxops/currency_management_app/internal/utils/mapping"
	"github.com/shopspring/decimal"
)

// Pacer blocks between sequential upstream calls.
type Pacer interface {
	Wait(ctx context.Context) error
}

// bulkRow is one parsed batch line. Fields stay raw strings so presence
// checks happen per row, not at parse time.
type bulkRow struct {
	Base      string
	Target    string
	AmountRaw string
	Amount    decimal.Decimal
}

// BulkConversionService processes CSV batch files of conversion requests.
//
// The row error policy is asymmetric on purpose: presence, symbol and
// amount failures abort the whole batch and roll the transaction back, while
// an unusable upstream response only skips its row. Product has flagged the
// asymmetry for review; until then it is preserved exactly.
type BulkConversionService struct {
	provider quotes.Provider
	repo     portsrepo.ConversionRepositoryWithTx
	pacer    Pacer
	logger   *slog.Logger
	metrics  *metrics.Metrics
	now      func() time.Time
}

// BulkOption customizes a BulkConversionService.
type BulkOption func(*BulkConversionService)

// WithBulkClock replaces the service's time source for tests.
func WithBulkClock(now func() time.Time) BulkOption {
	return func(s *BulkConversionService) {
		s.now = now
	}
}

// NewBulkConversionService creates a new BulkConversionService.
func NewBulkConversionService(provider quotes.Provider, repo portsrepo.ConversionRepositoryWithTx, pacer Pacer, logger *slog.Logger, m *metrics.Metrics, opts ...BulkOption) *BulkConversionService {
	if logger == nil {
		logger = slog.Default()
	}
	s := &BulkConversionService{
		provider: provider,
		repo:     repo,
		pacer:    pacer,
		logger:   logger,
		metrics:  m,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.BulkConversionSvcFacade = (*BulkConversionService)(nil)

// ProcessBulkConversions validates and converts every row of the batch file
// sequentially, persisting inside one transaction that commits only when the
// loop completes without an abort-class failure.
func (s *BulkConversionService) ProcessBulkConversions(ctx context.Context, file []byte, fileName string) ([]dto.CurrencyConversionResponse, error) {
	if err := checkFileFormat(file, fileName); err != nil {
		return nil, err
	}

	rows, err := parseBulkRows(file)
	if err != nil {
		return nil, err
	}
	s.logger.Info("starting bulk conversion",
		slog.String("file", fileName), slog.Int("rows", len(rows)))

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to start bulk transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.repo.Rollback(ctx, tx)
		}
	}()

	var responses []dto.CurrencyConversionResponse
	for _, row := range rows {
		if row.Base == "" || row.Target == "" {
			s.countAbort()
			return nil, apperrors.NewInvalidRequest(row.Base, row.Target, row.AmountRaw)
		}
		if err := validateSymbol(row.Base, "base"); err != nil {
			s.countAbort()
			return nil, err
		}
		if err := validateSymbol(row.Target, "target"); err != nil {
			s.countAbort()
			return nil, err
		}
		if !row.Amount.IsPositive() {
			s.countAbort()
			return nil, apperrors.NewInvalidAmount(row.Base, row.Target, row.AmountRaw)
		}

		upstream, err := s.provider.ConvertCurrency(ctx, row.Base, row.Target, row.Amount)
		if err != nil {
			return nil, fmt.Errorf("upstream conversion call failed for %s/%s: %w", row.Base, row.Target, err)
		}

		if !usableResponse(upstream) {
			s.logger.Warn("skipping bulk row with unusable upstream response",
				slog.String("base", row.Base),
				slog.String("target", row.Target),
				slog.String("amount", row.AmountRaw))
			if s.metrics != nil {
				s.metrics.BulkRowsSkipped.Inc()
			}
			continue
		}

		record := mapping.ToConversion(row.Base, row.Target, row.Amount, upstream, s.now())
		if err := s.repo.SaveConversionTx(ctx, tx, record); err != nil {
			return nil, fmt.Errorf("failed to persist bulk conversion: %w", err)
		}
		responses = append(responses, dto.ToCurrencyConversionResponse(&record))

		// The provider tolerates only modest call rates; pause after each
		// successful row. This is also the cooperative abort point.
		if err := s.pacer.Wait(ctx); err != nil {
			return nil, fmt.Errorf("bulk conversion aborted between rows: %w", err)
		}
	}

	if len(responses) == 0 {
		return nil, apperrors.NewNoSuccessfulConversions()
	}

	if err := s.repo.Commit(ctx, tx); err != nil {
		return nil, err
	}
	committed = true

	if s.metrics != nil {
		s.metrics.ConversionsPersisted.Add(float64(len(responses)))
	}
	s.logger.Info("bulk conversion completed",
		slog.String("file", fileName), slog.Int("persisted", len(responses)))
	return responses, nil
}

func (s *BulkConversionService) countAbort() {
	if s.metrics != nil {
		s.metrics.BulkBatchesAborted.Inc()
	}
}

// usableResponse reports whether an upstream convert answer can produce an
// audit record. Anything else is tolerated as a per-row skip.
func usableResponse(resp *quotes.ConversionResponse) bool {
	return resp != nil && resp.Success && !resp.Result.IsZero() && !resp.Info.Quote.IsZero()
}

func checkFileFormat(file []byte, fileName string) error {
	if len(file) == 0 {
		return apperrors.NewFileUpload("Please upload a valid CSV file.")
	}
	if !strings.HasSuffix(strings.ToLower(fileName), ".csv") {
		return apperrors.NewFileUpload("Only CSV files are allowed. Please upload a file with .csv extension.")
	}
	return nil
}

// parseBulkRows decodes the batch file against the expected
// "base,target,amount" header. Any structural failure is a file format
// error; per-row value problems are left to the row loop so they classify
// under the batch policy.
func parseBulkRows(file []byte) ([]bulkRow, error) {
	reader := csv.NewReader(bytes.NewReader(file))
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, apperrors.NewFileUpload("Error processing the uploaded file. Please ensure it is a valid CSV file.")
	}
	if len(records) == 0 {
		return nil, apperrors.NewFileUpload("Please upload a valid CSV file.")
	}

	header := records[0]
	if len(header) != 3 ||
		!strings.EqualFold(strings.TrimSpace(header[0]), "base") ||
		!strings.EqualFold(strings.TrimSpace(header[1]), "target") ||
		!strings.EqualFold(strings.TrimSpace(header[2]), "amount") {
		return nil, apperrors.NewFileUpload("Error processing the uploaded file. Please ensure it is a valid CSV file.")
	}

	rows := make([]bulkRow, 0, len(records)-1)
	for _, record := range records[1:] {
		row := bulkRow{
			Base:      strings.TrimSpace(record[0]),
			Target:    strings.TrimSpace(record[1]),
			AmountRaw: strings.TrimSpace(record[2]),
		}
		if row.AmountRaw != "" {
			amount, err := decimal.NewFromString(row.AmountRaw)
			if err != nil {
				return nil, apperrors.NewFileUpload("Error processing the uploaded file. Please ensure it is a valid CSV file.")
			}
			row.Amount = amount
		}
		rows = append(rows, row)
	}
	return rows, nil
}
