package quotes

import (
	"database/sql"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/guttosm/quotepulse/config"
	"github.com/guttosm/quotepulse/internal/storage"
)

// NewSource builds the Source selected by cfg.Quotes.Source, wrapped in a
// Redis cache when rdb is non-nil. db is only required for the postgres source.
func NewSource(cfg config.Config, db *sql.DB, rdb *redis.Client) (Source, error) {
	var src Source
	switch cfg.Quotes.Source {
	case config.SourceYahoo:
		src = NewYahooSource(cfg.Quotes.YahooBaseURL, cfg.Quotes.YahooTimeout, cfg.Quotes.Proxy)
	case config.SourcePostgres:
		if db == nil {
			return nil, fmt.Errorf("quote source %q requires a database connection", cfg.Quotes.Source)
		}
		src = NewStoreSource(storage.NewQuotesRepository(db))
	default:
		return nil, fmt.Errorf("unknown quote source %q", cfg.Quotes.Source)
	}

	if rdb != nil {
		src = NewCachedSource(src, rdb, cfg.Redis.TTL)
	}
	return src, nil
}
