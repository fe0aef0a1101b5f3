package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/quotepulse/config"
	"github.com/guttosm/quotepulse/internal/analysis"
	"github.com/guttosm/quotepulse/internal/calendar"
	"github.com/guttosm/quotepulse/internal/domain/dto"
	"github.com/guttosm/quotepulse/internal/middleware"
	"github.com/guttosm/quotepulse/internal/quotes"
	"github.com/guttosm/quotepulse/internal/service"
)

const maxBatchTickers = 20

// Handler provides HTTP handlers for price summary endpoints.
//
// Responsibilities:
//   - Validate incoming HTTP query parameters
//   - Delegate retrieval and analysis to the service layer
//   - Translate reports into response DTOs
//   - Map analysis errors to HTTP status codes
type Handler struct {
	svc            service.AnalysisService
	defaultWindow  int
	lookbackDays   int
	defaultTickers []string
	now            func() time.Time
}

// NewHandler constructs a Handler. cfg supplies the default SMA window,
// the lookback used when "from" is omitted and the batch ticker list.
func NewHandler(svc service.AnalysisService, cfg config.Config) *Handler {
	return &Handler{
		svc:            svc,
		defaultWindow:  cfg.Analysis.SMAWindow,
		lookbackDays:   cfg.Analysis.LookbackDays,
		defaultTickers: cfg.Quotes.Tickers,
		now:            time.Now,
	}
}

type queryParams struct {
	from, to time.Time
	window   int
}

// parseParams reads from, to and window. Missing "to" means today; missing
// "from" means the oldest of the last lookbackDays trading days.
func (h *Handler) parseParams(c *gin.Context) (queryParams, error) {
	p := queryParams{window: h.defaultWindow}

	today := h.now().UTC()
	p.to = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	if s := c.Query("to"); s != "" {
		d, err := time.Parse(time.DateOnly, s)
		if err != nil {
			return p, errors.New("invalid to format, expected YYYY-MM-DD")
		}
		p.to = d
	}

	if s := c.Query("from"); s != "" {
		d, err := time.Parse(time.DateOnly, s)
		if err != nil {
			return p, errors.New("invalid from format, expected YYYY-MM-DD")
		}
		p.from = d
	} else {
		days := calendar.LastNTradingDays(h.lookbackDays, p.to)
		p.from = days[len(days)-1]
	}

	if s := c.Query("window"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return p, errors.New("window must be an integer")
		}
		p.window = n
	}
	return p, nil
}

// statusFor maps service and analysis errors to an HTTP status and message.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, analysis.ErrInvalidWindowSize), errors.Is(err, service.ErrInvalidRange):
		return http.StatusBadRequest, "invalid parameters"
	case errors.Is(err, analysis.ErrEmptySeries), errors.Is(err, quotes.ErrUnknownSymbol):
		return http.StatusNotFound, "no prices found"
	case errors.Is(err, analysis.ErrDivisionByZero):
		return http.StatusUnprocessableEntity, "change undefined for zero first price"
	default:
		return http.StatusInternalServerError, "failed to fetch prices"
	}
}

// GetSummary handles GET /api/v1/summary requests.
//
// GetSummary godoc
// @Summary      Price summary for one ticker
// @Description  Returns min/max/avg, first-to-last change and the trailing SMA of daily closing prices
// @Tags         summary
// @Accept       json
// @Produce      json
// @Param        ticker  query     string  true   "Ticker symbol" example(MSFT)
// @Param        from    query     string  false  "Period start in YYYY-MM-DD" example(2024-01-02)
// @Param        to      query     string  false  "Period end in YYYY-MM-DD" example(2024-03-28)
// @Param        window  query     int     false  "SMA window size" example(30)
// @Success      200     {object}  dto.SummaryResponse  "Success"
// @Failure      400     {object}  dto.ErrorResponse    "Bad Request"
// @Failure      404     {object}  dto.ErrorResponse    "Not Found"
// @Failure      422     {object}  dto.ErrorResponse    "Unprocessable"
// @Failure      500     {object}  dto.ErrorResponse    "Internal Error"
// @Router       /api/v1/summary [get]
func (h *Handler) GetSummary(c *gin.Context) {
	ticker := strings.ToUpper(strings.TrimSpace(c.Query("ticker")))
	if ticker == "" {
		middleware.AbortWithError(c, http.StatusBadRequest, "ticker is required", nil)
		return
	}

	p, err := h.parseParams(c)
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	rep, err := h.svc.Analyze(c.Request.Context(), ticker, p.from, p.to, p.window)
	if err != nil {
		status, msg := statusFor(err)
		middleware.AbortWithError(c, status, msg, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSummaryResponse(rep))
}

// GetSummaries handles GET /api/v1/summaries requests.
//
// GetSummaries godoc
// @Summary      Price summaries for several tickers
// @Description  Analyses each ticker independently; failures are reported per item
// @Tags         summary
// @Produce      json
// @Param        tickers  query     string  false  "Comma separated tickers, defaults to the configured list" example(MSFT,GOOG,AAPL)
// @Param        from     query     string  false  "Period start in YYYY-MM-DD"
// @Param        to       query     string  false  "Period end in YYYY-MM-DD"
// @Param        window   query     int     false  "SMA window size"
// @Success      200      {object}  dto.BatchResponse  "Success"
// @Failure      400      {object}  dto.ErrorResponse  "Bad Request"
// @Router       /api/v1/summaries [get]
func (h *Handler) GetSummaries(c *gin.Context) {
	tickers := config.ParseTickers(c.Query("tickers"))
	if len(tickers) == 0 {
		tickers = h.defaultTickers
	}
	if len(tickers) > maxBatchTickers {
		middleware.AbortWithError(c, http.StatusBadRequest, "too many tickers, max "+strconv.Itoa(maxBatchTickers), nil)
		return
	}

	p, err := h.parseParams(c)
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	results := h.svc.AnalyzeAll(c.Request.Context(), tickers, p.from, p.to, p.window)

	resp := dto.BatchResponse{Items: make([]dto.BatchItem, 0, len(results))}
	for _, r := range results {
		item := dto.BatchItem{Ticker: r.Ticker}
		if r.Err != nil {
			item.Error = r.Err.Error()
		} else {
			s := dto.NewSummaryResponse(r.Report)
			item.Summary = &s
		}
		resp.Items = append(resp.Items, item)
	}

	c.JSON(http.StatusOK, resp)
}
