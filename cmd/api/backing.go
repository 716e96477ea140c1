package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/twoong-studio/portfolio-backend/config"
	apihttp "github.com/twoong-studio/portfolio-backend/internal/api/http"
	"github.com/twoong-studio/portfolio-backend/internal/bootstrap"
	"github.com/twoong-studio/portfolio-backend/internal/portfolio/sheets"
	"github.com/twoong-studio/portfolio-backend/internal/portfolio/texts"
)

func newFetcher(ctx context.Context, cfg config.SheetsConfig, log *zap.Logger) (sheets.Fetcher, error) {
	if cfg.Source == config.SheetSourceAPI {
		f, err := sheets.NewSheetsAPIFetcher(ctx, sheets.SheetsAPIConfig{
			SpreadsheetID: cfg.SpreadsheetID,
			Tabs:          cfg.Titles,
			APIKey:        cfg.APIKey,
		}, log.Named("sheets-api"))
		if err != nil {
			return nil, err
		}
		return f, nil
	}
	return sheets.NewHTTPFetcher(sheets.HTTPFetcherConfig{
		BaseURL:   cfg.BaseURL,
		Tabs:      cfg.GIDs,
		Timeout:   cfg.Timeout,
		RateLimit: rate.Limit(cfg.RateLimit),
		Burst:     2,
	}, log.Named("sheets")), nil
}

// backing holds the site texts store and whatever connections it needs.
type backing struct {
	store  texts.Store
	redis  *redis.Client
	db     *pgxpool.Pool
	checks []apihttp.Check
}

// newBacking opens redis whenever REDIS_ADDR is set, so events fan out
// between instances even when texts live in postgres.
func newBacking(ctx context.Context, cfg *config.Config, log *zap.Logger) (*backing, error) {
	b := &backing{store: texts.NewMemoryStore()}

	if cfg.Redis.Addr != "" {
		client, err := bootstrap.OpenRedis(ctx, bootstrap.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Warn("redis unreachable at startup", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		}
		b.redis = client
		b.checks = append(b.checks, apihttp.Check{
			Name: "redis",
			Ping: func(ctx context.Context) error { return client.Ping(ctx).Err() },
		})
	}

	switch cfg.Admin.TextsStore {
	case config.StoreRedis:
		b.store = texts.NewRedisStore(b.redis)
	case config.StorePostgres:
		db, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{DSN: cfg.Database.DSN()})
		if err != nil {
			b.Close()
			return nil, err
		}
		b.db = db
		pg := texts.NewPostgresStore(db)
		if err := pg.EnsureSchema(ctx); err != nil {
			b.Close()
			return nil, fmt.Errorf("ensure site_texts schema: %w", err)
		}
		b.store = pg
		b.checks = append(b.checks, apihttp.Check{Name: "postgres", Ping: db.Ping})
	}

	log.Info("site texts store ready", zap.String("store", cfg.Admin.TextsStore))
	return b, nil
}

func (b *backing) Close() {
	if b.redis != nil {
		_ = b.redis.Close()
	}
	if b.db != nil {
		b.db.Close()
	}
}
