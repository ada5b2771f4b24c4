package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/fxops/currency_management_app/internal/apperrors"
	"github.com/fxops/currency_management_app/internal/core/ports/quotes"
	"github.com/fxops/currency_management_app/internal/core/services"
	"github.com/fxops/currency_management_app/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// fakePacer records every wait so tests can assert the pacing without
// sleeping for real.
type fakePacer struct {
	waits int
	err   error
}

func (p *fakePacer) Wait(ctx context.Context) error {
	p.waits++
	if p.err != nil {
		return p.err
	}
	return ctx.Err()
}

func usableConvertResponse(result, quote string) *quotes.ConversionResponse {
	return &quotes.ConversionResponse{
		Success: true,
		Info:    quotes.ConversionInfo{Quote: decimal.RequireFromString(quote)},
		Result:  decimal.RequireFromString(result),
	}
}

// --- Test Suite ---
type BulkConversionServiceTestSuite struct {
	suite.Suite
	mockProvider *MockQuoteProvider
	mockRepo     *MockConversionRepository
	pacer        *fakePacer
	service      *services.BulkConversionService
}

func (suite *BulkConversionServiceTestSuite) SetupTest() {
	suite.mockProvider = new(MockQuoteProvider)
	suite.mockRepo = new(MockConversionRepository)
	suite.pacer = &fakePacer{}
	suite.service = services.NewBulkConversionService(
		suite.mockProvider,
		suite.mockRepo,
		suite.pacer,
		nil,
		metrics.NewMetrics(prometheus.NewRegistry()),
		services.WithBulkClock(func() time.Time {
			return time.Date(2025, 6, 24, 15, 30, 0, 0, time.UTC)
		}),
	)
}

// --- File format preconditions ---

func (suite *BulkConversionServiceTestSuite) TestEmptyFile() {
	responses, err := suite.service.ProcessBulkConversions(context.Background(), nil, "batch.csv")

	suite.Require().Error(err)
	suite.Nil(responses)
	appErr, ok := apperrors.AsAppError(err)
	suite.Require().True(ok)
	suite.Equal(apperrors.CodeFileUpload, appErr.Code)
	suite.Equal("Please upload a valid CSV file.", appErr.Message)
}

func (suite *BulkConversionServiceTestSuite) TestWrongExtension() {
	responses, err := suite.service.ProcessBulkConversions(context.Background(), []byte("base,target,amount\n"), "batch.txt")

	suite.Require().Error(err)
	suite.Nil(responses)
	appErr, ok := apperrors.AsAppError(err)
	suite.Require().True(ok)
	suite.Equal(apperrors.CodeFileUpload, appErr.Code)
	suite.Equal("Only CSV files are allowed. Please upload a file with .csv extension.", appErr.Message)
}

func (suite *BulkConversionServiceTestSuite) TestBadHeader() {
	file := []byte("from,to,value\nUSD,EUR,100\n")

	responses, err := suite.service.ProcessBulkConversions(context.Background(), file, "batch.csv")

	suite.Require().Error(err)
	suite.Nil(responses)
	appErr, ok := apperrors.AsAppError(err)
	suite.Require().True(ok)
	suite.Equal(apperrors.CodeFileUpload, appErr.Code)
	suite.mockRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *BulkConversionServiceTestSuite) TestUnparsableAmountCell() {
	file := []byte("base,target,amount\nUSD,EUR,abc\n")

	responses, err := suite.service.ProcessBulkConversions(context.Background(), file, "batch.csv")

	suite.Require().Error(err)
	suite.Nil(responses)
	appErr, ok := apperrors.AsAppError(err)
	suite.Require().True(ok)
	suite.Equal(apperrors.CodeFileUpload, appErr.Code)
}

// --- Batch processing ---

func (suite *BulkConversionServiceTestSuite) TestTwoRows_AllSucceed() {
	ctx := context.Background()
	file := []byte("base,target,amount\nUSD,EUR,100\nGBP,TRY,25.5\n")

	suite.mockRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockProvider.On("ConvertCurrency", ctx, "USD", "EUR", decimal.RequireFromString("100")).
		Return(usableConvertResponse("92", "0.92"), nil).Once()
	suite.mockProvider.On("ConvertCurrency", ctx, "GBP", "TRY", decimal.RequireFromString("25.5")).
		Return(usableConvertResponse("1043.18", "40.909"), nil).Once()
	suite.mockRepo.On("SaveConversionTx", ctx, mock.Anything, mock.AnythingOfType("domain.Conversion")).Return(nil).Twice()
	suite.mockRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()

	responses, err := suite.service.ProcessBulkConversions(ctx, file, "batch.csv")

	suite.Require().NoError(err)
	suite.Require().Len(responses, 2)
	suite.Equal("USD", responses[0].BaseCurrency)
	suite.Equal("GBP", responses[1].BaseCurrency)
	suite.True(responses[0].ConvertedAmount.Equal(decimal.RequireFromString("92")))
	suite.Equal("2025-06-24", responses[0].TransactionDate)
	suite.NotEqual(responses[0].TransactionID, responses[1].TransactionID)
	suite.Equal(2, suite.pacer.waits)
	suite.mockRepo.AssertNotCalled(suite.T(), "Rollback", mock.Anything, mock.Anything)
	suite.mockProvider.AssertExpectations(suite.T())
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BulkConversionServiceTestSuite) TestMissingTarget_AbortsBatch() {
	ctx := context.Background()
	file := []byte("base,target,amount\nUSD,,100\nGBP,TRY,25\n")

	suite.mockRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockRepo.On("Rollback", ctx, mock.Anything).Return(nil).Once()

	responses, err := suite.service.ProcessBulkConversions(ctx, file, "batch.csv")

	suite.Require().Error(err)
	suite.Nil(responses)
	appErr, ok := apperrors.AsAppError(err)
	suite.Require().True(ok)
	suite.Equal(apperrors.CodeInvalidRequest, appErr.Code)
	suite.Contains(appErr.Message, "Base: USD")
	suite.mockProvider.AssertNotCalled(suite.T(), "ConvertCurrency", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BulkConversionServiceTestSuite) TestInvalidSymbolMidBatch_AbortsAfterPersists() {
	ctx := context.Background()
	file := []byte("base,target,amount\nUSD,EUR,100\nUSD,XXX,50\n")

	suite.mockRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockProvider.On("ConvertCurrency", ctx, "USD", "EUR", decimal.RequireFromString("100")).
		Return(usableConvertResponse("92", "0.92"), nil).Once()
	suite.mockRepo.On("SaveConversionTx", ctx, mock.Anything, mock.AnythingOfType("domain.Conversion")).Return(nil).Once()
	suite.mockRepo.On("Rollback", ctx, mock.Anything).Return(nil).Once()

	responses, err := suite.service.ProcessBulkConversions(ctx, file, "batch.csv")

	suite.Require().Error(err)
	suite.Nil(responses)
	appErr, ok := apperrors.AsAppError(err)
	suite.Require().True(ok)
	suite.Equal(apperrors.CodeInvalidCurrencySymbol, appErr.Code)
	suite.mockRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BulkConversionServiceTestSuite) TestLowercaseSymbol_AbortsBatch() {
	ctx := context.Background()
	file := []byte("base,target,amount\nusd,EUR,100\n")

	suite.mockRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockRepo.On("Rollback", ctx, mock.Anything).Return(nil).Once()

	responses, err := suite.service.ProcessBulkConversions(ctx, file, "batch.csv")

	suite.Require().Error(err)
	suite.Nil(responses)
	appErr, ok := apperrors.AsAppError(err)
	suite.Require().True(ok)
	suite.Equal(apperrors.CodeInvalidCurrencySymbol, appErr.Code)
	suite.Contains(appErr.Message, "usd")
}

func (suite *BulkConversionServiceTestSuite) TestNonPositiveAmount_AbortsBatch() {
	ctx := context.Background()
	file := []byte("base,target,amount\nUSD,EUR,0\n")

	suite.mockRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockRepo.On("Rollback", ctx, mock.Anything).Return(nil).Once()

	responses, err := suite.service.ProcessBulkConversions(ctx, file, "batch.csv")

	suite.Require().Error(err)
	suite.Nil(responses)
	appErr, ok := apperrors.AsAppError(err)
	suite.Require().True(ok)
	suite.Equal(apperrors.CodeInvalidAmount, appErr.Code)
	suite.mockProvider.AssertNotCalled(suite.T(), "ConvertCurrency", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BulkConversionServiceTestSuite) TestUnusableUpstreamResponse_SkipsRowOnly() {
	ctx := context.Background()
	file := []byte("base,target,amount\nUSD,EUR,100\nGBP,TRY,25\n")

	suite.mockRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockProvider.On("ConvertCurrency", ctx, "USD", "EUR", decimal.RequireFromString("100")).
		Return(&quotes.ConversionResponse{Success: false}, nil).Once()
	suite.mockProvider.On("ConvertCurrency", ctx, "GBP", "TRY", decimal.RequireFromString("25")).
		Return(usableConvertResponse("1022.73", "40.909"), nil).Once()
	suite.mockRepo.On("SaveConversionTx", ctx, mock.Anything, mock.AnythingOfType("domain.Conversion")).Return(nil).Once()
	suite.mockRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()

	responses, err := suite.service.ProcessBulkConversions(ctx, file, "batch.csv")

	suite.Require().NoError(err)
	suite.Require().Len(responses, 1)
	suite.Equal("GBP", responses[0].BaseCurrency)
	suite.Equal(1, suite.pacer.waits)
	suite.mockProvider.AssertExpectations(suite.T())
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BulkConversionServiceTestSuite) TestZeroResult_SkipsRow() {
	ctx := context.Background()
	file := []byte("base,target,amount\nUSD,EUR,100\nGBP,TRY,25\n")

	suite.mockRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockProvider.On("ConvertCurrency", ctx, "USD", "EUR", decimal.RequireFromString("100")).
		Return(&quotes.ConversionResponse{Success: true}, nil).Once()
	suite.mockProvider.On("ConvertCurrency", ctx, "GBP", "TRY", decimal.RequireFromString("25")).
		Return(usableConvertResponse("1022.73", "40.909"), nil).Once()
	suite.mockRepo.On("SaveConversionTx", ctx, mock.Anything, mock.AnythingOfType("domain.Conversion")).Return(nil).Once()
	suite.mockRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()

	responses, err := suite.service.ProcessBulkConversions(ctx, file, "batch.csv")

	suite.Require().NoError(err)
	suite.Len(responses, 1)
}

func (suite *BulkConversionServiceTestSuite) TestAllRowsSkipped_NoSuccessfulConversions() {
	ctx := context.Background()
	file := []byte("base,target,amount\nUSD,EUR,100\n")

	suite.mockRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockProvider.On("ConvertCurrency", ctx, "USD", "EUR", decimal.RequireFromString("100")).
		Return(&quotes.ConversionResponse{Success: false}, nil).Once()
	suite.mockRepo.On("Rollback", ctx, mock.Anything).Return(nil).Once()

	responses, err := suite.service.ProcessBulkConversions(ctx, file, "batch.csv")

	suite.Require().Error(err)
	suite.Nil(responses)
	appErr, ok := apperrors.AsAppError(err)
	suite.Require().True(ok)
	suite.Equal(apperrors.CodeNoSuccessfulConversions, appErr.Code)
	suite.Equal("No successful conversions found", appErr.Message)
	suite.mockRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
}

func (suite *BulkConversionServiceTestSuite) TestProviderTransportError_AbortsBatch() {
	ctx := context.Background()
	file := []byte("base,target,amount\nUSD,EUR,100\nGBP,TRY,25\n")

	suite.mockRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockProvider.On("ConvertCurrency", ctx, "USD", "EUR", decimal.RequireFromString("100")).
		Return(nil, assert.AnError).Once()
	suite.mockRepo.On("Rollback", ctx, mock.Anything).Return(nil).Once()

	responses, err := suite.service.ProcessBulkConversions(ctx, file, "batch.csv")

	suite.Require().Error(err)
	suite.Nil(responses)
	suite.ErrorIs(err, assert.AnError)
	suite.mockRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
	suite.mockProvider.AssertExpectations(suite.T())
}

func (suite *BulkConversionServiceTestSuite) TestCancelledContext_AbortsBetweenRows() {
	ctx := context.Background()
	file := []byte("base,target,amount\nUSD,EUR,100\nGBP,TRY,25\n")
	suite.pacer.err = context.Canceled

	suite.mockRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockProvider.On("ConvertCurrency", ctx, "USD", "EUR", decimal.RequireFromString("100")).
		Return(usableConvertResponse("92", "0.92"), nil).Once()
	suite.mockRepo.On("SaveConversionTx", ctx, mock.Anything, mock.AnythingOfType("domain.Conversion")).Return(nil).Once()
	suite.mockRepo.On("Rollback", ctx, mock.Anything).Return(nil).Once()

	responses, err := suite.service.ProcessBulkConversions(ctx, file, "batch.csv")

	suite.Require().Error(err)
	suite.Nil(responses)
	suite.ErrorIs(err, context.Canceled)
	suite.Equal(1, suite.pacer.waits)
	suite.mockRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
}

// --- Run Suite ---
func TestBulkConversionService(t *testing.T) {
	suite.Run(t, new(BulkConversionServiceTestSuite))
}
