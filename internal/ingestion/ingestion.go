package ingestion

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/guttosm/quotepulse/internal/logger"
	"github.com/guttosm/quotepulse/internal/storage"
)

const (
	fileSuffix       = ".csv"
	defaultBatchSize = 5000
	maxParallelFiles = 8
)

// batchSize is the number of rows flushed per InsertQuotesBatch call.
var batchSize = defaultBatchSize

// repoCtor is an indirection for creating the repository; tests can override this.
var repoCtor = func(db *sql.DB) storage.QuotesRepository {
	return storage.NewQuotesRepository(db)
}

// ProcessDirectory imports Yahoo Finance daily history exports into Postgres.
//
//   - dir:     directory containing one "<TICKER>.csv" file per symbol.
//   - db:      open *sql.DB (PostgreSQL).
//   - tickers: symbols to import; when empty every *.csv in dir is imported.
//
// Behavior:
//   - Requested tickers without a file fail the whole run before any insert.
//   - Uses a concurrency limit of min(8, NumCPU) unless parallel > 0.
//   - A ticker already present in the ingestion log is skipped unless force is set.
//     Otherwise its stored quotes are deleted before the file is imported.
//   - A file that fails mid-way has its flushed batches deleted again.
//   - If any file returns error, cancels the rest and returns that error.
func ProcessDirectory(ctx context.Context, dir string, db *sql.DB, tickers []string, parallel int, force bool) error {
	repo := repoCtor(db)

	files, err := resolveFiles(dir, tickers)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no %s files found in %s", fileSuffix, dir)
	}

	logger.L().Info().Int("files", len(files)).Str("dir", dir).Msg("ingestion start")

	maxParallel := maxParallelFiles
	if parallel > 0 {
		if parallel > maxParallelFiles {
			parallel = maxParallelFiles
		}
		maxParallel = parallel
	} else if c := runtime.NumCPU(); c < maxParallel {
		maxParallel = c
	}

	logger.L().Info().Int("max_parallel", maxParallel).Msg("ingestion configured")

	g, gctx := errgroup.WithContext(ctx)
	sem := make(chan struct{}, maxParallel)

	for i, file := range files {
		idx := i
		f := file
		sem <- struct{}{}

		g.Go(func() error {
			defer func() { <-sem }()
			start := time.Now()
			base := filepath.Base(f)
			ticker := tickerFromFile(base)
			log := logger.Ticker(ticker)
			log.Info().Int("idx", idx+1).Int("total", len(files)).Str("file", base).Msg("file start")

			exists, err := repo.HasIngestionForTicker(ticker)
			if err != nil {
				log.Error().Str("file", base).Err(err).Msg("check ingestion log failed")
				return fmt.Errorf("file %s: check ingestion log: %w", f, err)
			}
			if exists && !force {
				log.Info().Str("file", base).Bool("skipped", true).Msg("already ingested")
				return nil
			}
			// Rows without a log entry are leftovers of a failed import.
			if err := repo.DeleteQuotesByTicker(ticker); err != nil {
				log.Error().Str("file", base).Err(err).Msg("delete existing failed")
				return fmt.Errorf("file %s: delete existing: %w", f, err)
			}

			total, err := parseAndPersistFile(gctx, f, ticker, repo, batchSize)
			if err != nil {
				log.Error().Str("file", base).Dur("elapsed", time.Since(start)).Err(err).Msg("file failed")
				if derr := repo.DeleteQuotesByTicker(ticker); derr != nil {
					log.Error().Str("file", base).Err(derr).Msg("rollback of partial import failed")
				}
				return fmt.Errorf("file %s: %w", f, err)
			}
			if err := repo.UpsertIngestionLog(ticker, base, total); err != nil {
				log.Error().Str("file", base).Err(err).Msg("update ingestion log failed")
				return fmt.Errorf("file %s: upsert ingestion log: %w", f, err)
			}
			log.Info().Str("file", base).Int("rows", total).Dur("elapsed", time.Since(start)).Bool("force", force).Msg("file done")
			return nil
		})
	}

	return g.Wait()
}

// resolveFiles maps tickers to "<dir>/<TICKER>.csv", or lists every csv in dir
// when tickers is empty. Output is sorted for deterministic logging.
func resolveFiles(dir string, tickers []string) ([]string, error) {
	if len(tickers) == 0 {
		matches, err := filepath.Glob(filepath.Join(dir, "*"+fileSuffix))
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", dir, err)
		}
		sort.Strings(matches)
		return matches, nil
	}

	var files, missing []string
	for _, t := range tickers {
		name := strings.ToUpper(strings.TrimSpace(t)) + fileSuffix
		full := filepath.Join(dir, name)
		if _, err := os.Stat(full); err != nil {
			if os.IsNotExist(err) {
				missing = append(missing, name)
				continue
			}
			return nil, fmt.Errorf("stat failed for %s: %w", full, err)
		}
		files = append(files, full)
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required files: %s", strings.Join(missing, ", "))
	}
	sort.Strings(files)
	return files, nil
}

func tickerFromFile(base string) string {
	return strings.ToUpper(strings.TrimSuffix(base, filepath.Ext(base)))
}
