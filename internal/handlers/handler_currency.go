package handlers

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/fxops/currency_management_app/internal/apperrors"
	portssvc "github.com/fxops/currency_management_app/internal/core/ports/services"
	"github.com/fxops/currency_management_app/internal/dto"
	"github.com/fxops/currency_management_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// currencyHandler handles HTTP requests for rate lookup, conversion,
// history and bulk conversion.
type currencyHandler struct {
	conversionService portssvc.ConversionSvcFacade
	bulkService       portssvc.BulkConversionSvcFacade
}

// newCurrencyHandler creates a new currencyHandler.
func newCurrencyHandler(cs portssvc.ConversionSvcFacade, bs portssvc.BulkConversionSvcFacade) *currencyHandler {
	return &currencyHandler{
		conversionService: cs,
		bulkService:       bs,
	}
}

// registerCurrencyRoutes registers the currency management routes.
func registerCurrencyRoutes(rg *gin.RouterGroup, cs portssvc.ConversionSvcFacade, bs portssvc.BulkConversionSvcFacade) {
	h := newCurrencyHandler(cs, bs)

	currency := rg.Group("/currency")
	{
		currency.POST("/exchange-rate", h.getExchangeRate)
		currency.POST("/convert", h.convertCurrency)
		currency.POST("/history", h.getConversionHistory)
		currency.POST("/bulk-convert", h.processBulkConversions)
	}
}

// getExchangeRate godoc
// @Summary Get Exchange Rate
// @Description Retrieves the current exchange rate between two currencies
// @Tags currency
// @Accept json
// @Produce json
// @Param request body dto.ExchangeRateRequest true "Currency pair"
// @Success 200 {object} dto.ExchangeRateResponse
// @Failure 400 {object} dto.ErrorResponse "Null or invalid currency symbols"
// @Failure 500 {object} dto.ErrorResponse
// @Router /currency/exchange-rate [post]
func (h *currencyHandler) getExchangeRate(c *gin.Context) {
	var req dto.ExchangeRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	resp, err := h.conversionService.GetExchangeRate(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// convertCurrency godoc
// @Summary Convert Currency
// @Description Converts an amount from one currency to another using current exchange rates
// @Tags currency
// @Accept json
// @Produce json
// @Param request body dto.CurrencyConversionRequest true "Conversion details"
// @Success 200 {object} dto.CurrencyConversionResponse
// @Failure 400 {object} dto.ErrorResponse "Null/invalid symbols or amount"
// @Failure 500 {object} dto.ErrorResponse
// @Router /currency/convert [post]
func (h *currencyHandler) convertCurrency(c *gin.Context) {
	var req dto.CurrencyConversionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Info("Received conversion request",
		slog.String("base", req.Base),
		slog.String("target", req.Target),
		slog.String("amount", req.Amount.String()),
	)

	resp, err := h.conversionService.ConvertCurrency(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Conversion completed", slog.String("transaction_id", resp.TransactionID))
	c.JSON(http.StatusOK, resp)
}

// getConversionHistory godoc
// @Summary Get Conversion History
// @Description Retrieves the history of currency conversions with pagination support
// @Tags currency
// @Accept json
// @Produce json
// @Param request body dto.CurrencyHistoryRequest true "History filter and page window"
// @Success 200 {object} dto.CurrencyHistoryPaginationResponse
// @Failure 400 {object} dto.ErrorResponse "Missing parameters or bad date"
// @Failure 404 {object} dto.ErrorResponse "History not found"
// @Failure 500 {object} dto.ErrorResponse
// @Router /currency/history [post]
func (h *currencyHandler) getConversionHistory(c *gin.Context) {
	var req dto.CurrencyHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	resp, err := h.conversionService.GetConversionHistory(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// processBulkConversions godoc
// @Summary Bulk Currency Conversion
// @Description Processes multiple currency conversions from a CSV file with header base,target,amount
// @Tags currency
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV batch file"
// @Success 200 {array} dto.CurrencyConversionResponse
// @Failure 400 {object} dto.ErrorResponse "Bad file, symbol or amount, or no successful conversions"
// @Failure 500 {object} dto.ErrorResponse
// @Router /currency/bulk-convert [post]
func (h *currencyHandler) processBulkConversions(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondError(c, apperrors.NewFileUpload("Please upload a valid CSV file."))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, apperrors.NewFileUpload("Error processing the uploaded file. Please ensure it is a valid CSV file."))
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		respondError(c, apperrors.NewFileUpload("Error processing the uploaded file. Please ensure it is a valid CSV file."))
		return
	}

	resp, err := h.bulkService.ProcessBulkConversions(c.Request.Context(), content, fileHeader.Filename)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
