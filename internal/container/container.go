package container

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	database "github.com/FACorreiaa/go-trip-itinerary/app/db"
	"github.com/FACorreiaa/go-trip-itinerary/config"
	"github.com/FACorreiaa/go-trip-itinerary/internal/api/itinerary"
	"github.com/FACorreiaa/go-trip-itinerary/internal/api/session"
	"github.com/FACorreiaa/go-trip-itinerary/internal/api/spots"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Logger *slog.Logger
	Pool   *pgxpool.Pool
	Redis  *redis.Client

	Defaults         *spots.StaticSource
	SpotSource       spots.Source
	Allocator        itinerary.Allocator
	Store            session.Store
	ItineraryService itinerary.Service

	SpotsHandler     *spots.Handler
	ItineraryHandler *itinerary.HandlerImpl
}

// NewContainer wires the spot source, allocator and session store selected by cfg.
// A Postgres pool is only opened when the catalog is the configured source.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	c := &Container{Config: cfg, Logger: logger}

	defaults, err := spots.NewStaticSource()
	if err != nil {
		return nil, fmt.Errorf("failed to load default spot table: %w", err)
	}
	c.Defaults = defaults

	if cfg.Spots.Source == spots.SourcePostgres {
		if err = c.openPostgres(ctx); err != nil {
			return nil, err
		}
	}

	c.SpotSource, err = c.buildSource(ctx)
	if err != nil {
		c.Close()
		return nil, err
	}

	c.Allocator = itinerary.NewAllocator(cfg.Allocator.Mode, randomSource(cfg.Allocator.Seed), cfg.Allocator.ShareUsed)
	c.Store = c.buildStore()

	c.ItineraryService = itinerary.NewServiceImpl(c.SpotSource, c.Allocator, c.Store, logger)
	c.SpotsHandler = spots.NewHandler(c.SpotSource, logger)
	c.ItineraryHandler = itinerary.NewHandlerImpl(c.ItineraryService, logger)

	logger.Info("Container initialized",
		slog.String("spot_source", c.SpotSource.Name()),
		slog.String("allocator", c.Allocator.Mode()),
		slog.String("session_store", cfg.Session.Store))
	return c, nil
}

func (c *Container) openPostgres(ctx context.Context) error {
	dbConfig, err := database.NewDatabaseConfig(c.Config, c.Logger)
	if err != nil {
		return fmt.Errorf("failed to generate database config: %w", err)
	}
	if err = database.RunMigrations(dbConfig.ConnectionURL, c.Logger); err != nil {
		return err
	}
	pool, err := database.Init(ctx, dbConfig.ConnectionURL, c.Logger)
	if err != nil {
		return err
	}
	if !database.WaitForDB(ctx, pool, c.Logger) {
		pool.Close()
		return errors.New("database not ready after waiting")
	}
	c.Pool = pool
	return nil
}

// buildSource stacks the decorators around the configured source: the fallback is
// outermost so default results are never cached.
func (c *Container) buildSource(ctx context.Context) (spots.Source, error) {
	cfg := c.Config.Spots

	var primary spots.Source
	switch cfg.Source {
	case "", spots.SourceStatic:
		return spots.NewInstrumentedSource(c.Defaults, c.Logger), nil
	case spots.SourceNaver:
		primary = spots.NewNaverSource(spots.NaverConfig{
			BaseURL:      cfg.Naver.BaseURL,
			ClientID:     cfg.Naver.ClientID,
			ClientSecret: cfg.Naver.ClientSecret,
			Display:      cfg.Naver.Display,
			Timeout:      cfg.Timeout,
		}, c.Defaults, c.Logger)
	case spots.SourceGemini:
		gen, err := spots.NewGenaiGenerator(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			return nil, err
		}
		primary = spots.NewGeminiSource(gen, cfg.Gemini.Count, c.Logger)
	case spots.SourcePostgres:
		primary = spots.NewPostgresSource(c.Pool, c.Logger)
	default:
		return nil, fmt.Errorf("unknown spot source %q", cfg.Source)
	}

	source := spots.Source(spots.NewInstrumentedSource(primary, c.Logger))
	if cfg.CacheTTL > 0 {
		source = spots.NewCachedSource(source, cfg.CacheTTL)
	}
	return spots.NewFallbackSource(source, c.Defaults, c.Logger), nil
}

func (c *Container) buildStore() session.Store {
	cfg := c.Config
	if cfg.Session.Store == session.StoreRedis {
		c.Redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		// the loading flag outlives one spot fetch so a crashed request cannot lock the session
		loadingTTL := max(cfg.Spots.Timeout*2, 30*time.Second)
		return session.NewRedisStore(c.Redis, cfg.Session.TTL, loadingTTL)
	}
	return session.NewMemoryStore(cfg.Session.TTL, cfg.Session.TTL)
}

func randomSource(seed uint64) rand.Source {
	if seed == 0 {
		return nil
	}
	return rand.NewPCG(seed, seed)
}

// Close releases all resources held by the container
func (c *Container) Close() {
	if c.Pool != nil {
		c.Pool.Close()
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Logger.Warn("Failed to close redis client", slog.Any("error", err))
		}
	}
}
