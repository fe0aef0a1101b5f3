package main

//
//  @title           quotepulse API
//  @version         1.0
//  @description     Closing-price analysis service: summary statistics, moving averages and price change per ticker.
//  @termsOfService  https://github.com/guttosm/quotepulse
//  @contact.name    API Support
//  @contact.url     https://github.com/guttosm/quotepulse
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        summary
//  @tag.description Closing-price summaries per ticker
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/guttosm/quotepulse/config"
	_ "github.com/guttosm/quotepulse/docs" // swagger docs
	"github.com/guttosm/quotepulse/internal/app"
	"github.com/guttosm/quotepulse/internal/ingestion"
	"github.com/guttosm/quotepulse/internal/logger"
	"github.com/guttosm/quotepulse/internal/report"
)

// startServer initializes and starts the HTTP server in a separate goroutine.
//
// Parameters:
//   - router (http.Handler): The HTTP router (Gin Engine) configured with all routes.
//   - port (string): The port where the server will listen for incoming requests.
//
// Returns:
//   - *http.Server: The initialized HTTP server instance.
func startServer(router http.Handler, port string) *http.Server {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// gracefulShutdown gracefully terminates the HTTP server and cleans up resources
// when an OS interrupt signal (SIGINT, SIGTERM) is received.
//
// Parameters:
//   - ctx (context.Context): A context with timeout for graceful shutdown.
//   - server (*http.Server): The HTTP server instance to shut down.
//   - cleanup (func()): Cleanup callback to release resources (e.g., DB connections).
func gracefulShutdown(ctx context.Context, server *http.Server, cleanup func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	logger.L().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Fatal().Err(err).Msg("server forced to shutdown")
	}

	cleanup()
	logger.L().Info().Msg("server exited gracefully")
}

// reportOptions carries the report-mode flags.
type reportOptions struct {
	date    string
	format  string
	tickers []string
	window  int
}

// serviceBuilder is an indirection so tests can run the report without network access.
var serviceBuilder = app.BuildAnalysisService

// nowFunc is the report period end.
var nowFunc = time.Now

// runReport analyses every ticker from the --date period start up to now and
// writes one row per successful ticker to out. Failed tickers are logged and
// left out of the rows.
func runReport(ctx context.Context, cfg config.Config, opts reportOptions, out io.Writer) error {
	if opts.date == "" {
		return errors.New("--date is required (YYYY/MM/DD)")
	}
	from, err := report.ParsePeriodStart(opts.date)
	if err != nil {
		return err
	}
	format, err := report.ParseFormat(opts.format)
	if err != nil {
		return err
	}

	tickers := opts.tickers
	if len(tickers) == 0 {
		tickers = cfg.Quotes.Tickers
	}
	window := opts.window
	if window == 0 {
		window = cfg.Analysis.SMAWindow
	}

	svc, deps, err := serviceBuilder(cfg)
	if err != nil {
		return err
	}
	defer deps.Close()

	results := svc.AnalyzeAll(ctx, tickers, from, nowFunc().UTC(), window)

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	logger.L().Info().Int("tickers", len(results)).Int("failed", failed).Str("format", string(format)).Msg("report ready")

	if err := report.Render(out, format, from, window, results); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}

// main is the entry point of the quotepulse application.
//
// Modes (selected via --mode flag):
//   - report: Prints price, change, min, max and SMA per ticker since --date (default).
//   - ingest: Imports <TICKER>.csv Yahoo history exports from --dir into Postgres.
//   - api:    Starts the REST API.
//
// Flags:
//   - --mode:    Execution mode ("report", "ingest" or "api"). Default: "report".
//   - --date:    Period start for report mode, YYYY/MM/DD.
//   - --format:  Report format: csv, json or yaml. Default: "csv".
//   - --tickers: Comma separated tickers. Defaults to QUOTES_TICKERS (report) or every file (ingest).
//   - --window:  SMA window size. Defaults to SMA_WINDOW.
//   - --dir:     Directory containing <TICKER>.csv files. Default: "./data/input".
//   - --port:    Port for the API server. Defaults to value from config (SERVER_PORT).
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration from environment or .env file
	config.LoadConfig()

	mode := flag.String("mode", "report", "Mode: report, ingest or api")
	date := flag.String("date", "", "Report period start, YYYY/MM/DD")
	format := flag.String("format", string(report.FormatCSV), "Report format: csv, json or yaml")
	tickers := flag.String("tickers", "", "Comma separated tickers (default: QUOTES_TICKERS for report, every file for ingest)")
	window := flag.Int("window", 0, "SMA window size (default: SMA_WINDOW)")
	dir := flag.String("dir", "./data/input", "Directory with <TICKER>.csv files")
	parallel := flag.Int("parallel", 0, "How many files to import concurrently (0=auto up to CPU, max 8)")
	force := flag.Bool("force", false, "Re-import tickers even if already ingested (deletes existing quotes)")
	port := flag.String("port", config.AppConfig.Server.Port, "Port for API mode")
	flag.Parse()

	// Report rows own stdout; logs go to stderr.
	if *mode == "report" {
		logger.InitWithWriter(os.Stderr)
	} else {
		logger.Init()
	}

	switch *mode {
	case "report":
		opts := reportOptions{
			date:    *date,
			format:  *format,
			tickers: config.ParseTickers(*tickers),
			window:  *window,
		}
		if err := runReport(ctx, config.AppConfig, opts, os.Stdout); err != nil {
			logger.L().Fatal().Err(err).Msg("report failed")
		}

	case "ingest":
		logger.L().Info().Msg("running ingestion")

		// Direct DB connection for ingestion
		db, err := app.InitPostgres(config.AppConfig)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("db connect error")
		}
		defer func() { _ = db.Close() }()

		if err := ingestion.ProcessDirectory(ctx, *dir, db, config.ParseTickers(*tickers), *parallel, *force); err != nil {
			logger.L().Error().Err(err).Msg("ingestion failed")
			_ = db.Close()
			os.Exit(1)
		}
		logger.L().Info().Msg("ingestion completed successfully")

	case "api":
		logger.L().Info().Msg("starting API server")

		router, cleanup, err := app.InitializeApp()
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}

		server := startServer(router, *port)
		gracefulShutdown(context.Background(), server, cleanup)

	default:
		logger.L().Fatal().Str("mode", *mode).Msg("unknown mode")
	}
}
