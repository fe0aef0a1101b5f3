package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/guttosm/quotepulse/config"
	"github.com/guttosm/quotepulse/internal/api"
	"github.com/guttosm/quotepulse/internal/logger"
	"github.com/guttosm/quotepulse/internal/quotes"
	"github.com/guttosm/quotepulse/internal/service"
)

// Deps holds the connections behind an AnalysisService. Either may be nil.
type Deps struct {
	DB    *sql.DB
	Redis *redis.Client
}

// Close releases every open connection.
func (d Deps) Close() {
	if d.DB != nil {
		_ = d.DB.Close()
	}
	if d.Redis != nil {
		_ = d.Redis.Close()
	}
}

// BuildAnalysisService wires the quote source selected in cfg into an
// AnalysisService. Postgres is only opened for the postgres source and Redis
// only when REDIS_ADDR is set. Callers must Close the returned Deps.
func BuildAnalysisService(cfg config.Config) (service.AnalysisService, Deps, error) {
	var deps Deps

	if cfg.Quotes.Source == config.SourcePostgres {
		db, err := postgresOpener(cfg)
		if err != nil {
			return nil, deps, fmt.Errorf("failed to initialize postgres: %w", err)
		}
		deps.DB = db
	}

	if cfg.Redis.Enabled() {
		rdb, err := redisOpener(cfg)
		if err != nil {
			deps.Close()
			return nil, Deps{}, fmt.Errorf("failed to initialize redis: %w", err)
		}
		deps.Redis = rdb
	}

	src, err := quotes.NewSource(cfg, deps.DB, deps.Redis)
	if err != nil {
		deps.Close()
		return nil, Deps{}, err
	}

	logger.L().Info().
		Str("source", src.Name()).
		Int("parallel", cfg.Quotes.Parallel).
		Msg("quote source ready")

	return service.NewAnalysisService(src, cfg.Quotes.Parallel), deps, nil
}

// InitializeApp sets up all application dependencies and returns
// a fully configured Gin router, a cleanup function for graceful shutdown,
// and any error encountered during initialization.
//
// Responsibilities:
//   - Builds the analysis service and its connections (BuildAnalysisService).
//   - Creates the HTTP handler layer and the Gin router.
//   - Registers health and readiness probes for every open connection.
//   - Provides a cleanup function to close resources.
func InitializeApp() (*gin.Engine, func(), error) {
	cfg := config.AppConfig

	svc, deps, err := BuildAnalysisService(cfg)
	if err != nil {
		return nil, nil, err
	}

	handler := api.NewHandler(svc, cfg)
	router := api.NewRouter(handler, cfg.Server)

	checks := map[string]api.Check{}
	if deps.DB != nil {
		checks["postgres"] = deps.DB.PingContext
	}
	if deps.Redis != nil {
		rdb := deps.Redis
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}
	api.NewHealthHandler(checks).Register(router)

	return router, deps.Close, nil
}
