package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	_ "github.com/lib/pq"
	"github.com/mention-earth/feed-bot/internal/cache"
	"github.com/mention-earth/feed-bot/internal/cache/cacheimpl"
	"github.com/mention-earth/feed-bot/internal/command"
	"github.com/mention-earth/feed-bot/internal/command/commandimpl"
	"github.com/mention-earth/feed-bot/internal/datasource"
	"github.com/mention-earth/feed-bot/internal/datasource/httpsource"
	_ "github.com/mention-earth/feed-bot/internal/migrations"
	repositories "github.com/mention-earth/feed-bot/internal/repositories/fx"
	"github.com/mention-earth/feed-bot/internal/repositories/post"
	"github.com/mention-earth/feed-bot/internal/search"
	"github.com/mention-earth/feed-bot/internal/searchindex"
	"github.com/mention-earth/feed-bot/internal/sharing"
	"github.com/mention-earth/feed-bot/internal/sharing/sharingimpl"
	"github.com/mention-earth/feed-bot/internal/telegram"
	"github.com/mention-earth/feed-bot/internal/telegram/telegramimpl"
	"github.com/mention-earth/feed-bot/internal/trends"
	"github.com/mention-earth/feed-bot/internal/trends/trendsimpl"
	"github.com/mention-earth/feed-bot/pkg/config"
	"github.com/mention-earth/feed-bot/pkg/logger"
	"github.com/mention-earth/feed-bot/pkg/pgx"
	"github.com/pressly/goose/v3"
	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(
		config.New,
		logger.FxOption,
		pgx.New,
		searchindex.New,
	),
	fx.Provide(
		fx.Annotate(
			telegramimpl.New,
			fx.As(new(telegram.Client)),
		),
		fx.Annotate(
			httpsource.New,
			fx.As(new(datasource.Client)),
		),
		fx.Annotate(
			cacheimpl.New,
			fx.As(new(cache.Store)),
		),
		fx.Annotate(
			sharingimpl.New,
			fx.As(new(sharing.Gateway)),
		),
		fx.Annotate(
			commandimpl.New,
			fx.As(new(command.Client)),
		),
		trendsimpl.New,
		func(a *trendsimpl.AggregatorImpl) trends.Aggregator { return a },
		newSearchSource,
	),
	repositories.Module,
	fx.Invoke(migrate),
	fx.Invoke(run),
)

// newSearchSource picks the search backend: the Elasticsearch index when an
// address is configured, otherwise the post repository's ILIKE search.
func newSearchSource(cfg *config.Config, idx *searchindex.Index, repo post.Repository) search.Source {
	if cfg.Elastic.Addr != "" {
		return idx
	}
	return repo
}

// migrate brings the posts schema and seed data up to date.
func migrate(c *config.Config, log logger.Logger) error {
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	db, err := sql.Open("postgres",
		fmt.Sprintf("dbname=%s user=%s password=%s host=%s port=%d sslmode=%s",
			c.Postgres.Name, c.Postgres.User, c.Postgres.Pass, c.Postgres.Host, c.Postgres.Port, c.Postgres.SslMode,
		),
	)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("Migrations applied")
	return nil
}

func run(lc fx.Lifecycle, log logger.Logger, cfg *config.Config, tgClient telegram.Client,
	aggregator *trendsimpl.AggregatorImpl, index *searchindex.Index,
	postRepo post.Repository, cmdClient command.Client) {

	appCtx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go startHttpServer(log, cfg)

			if cfg.Elastic.Addr != "" {
				if err := reindexPosts(appCtx, index, postRepo); err != nil {
					log.Error("Search index bootstrap failed", "error", err)
					tgClient.SendMessageToUser("Search index bootstrap failed: " + err.Error())
				}
			}

			// The start-up refresh is the "view activation" trigger for trends.
			if err := aggregator.Refresh(appCtx); err != nil {
				log.Error("Initial trends refresh failed", "error", err)
				tgClient.SendMessageToUser("Initial trends refresh failed: " + err.Error())
			}

			if err := aggregator.Schedule(appCtx); err != nil {
				log.Error("Failed to schedule trends refresh", "error", err)
			}

			go func() {
				if err := cmdClient.HandleCommands(appCtx); err != nil && appCtx.Err() == nil {
					log.Error("Command loop stopped", "error", err)
				}
			}()

			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
}

func reindexPosts(ctx context.Context, index *searchindex.Index, repo post.Repository) error {
	if err := index.EnsureIndex(ctx); err != nil {
		return err
	}

	posts, err := repo.List(ctx, 1000)
	if err != nil {
		return err
	}

	return index.ReindexAll(ctx, posts)
}

func startHttpServer(log logger.Logger, cfg *config.Config) {
	http.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		healthCheckHandler(w, r, log)
	})

	log.Info(fmt.Sprintf("Starting server on :%d", cfg.App.Port))

	if err := http.ListenAndServe(fmt.Sprintf(":%d", cfg.App.Port), nil); err != nil {
		log.Error("Server failed to start", "error", err)
	}
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request, logger logger.Logger) {
	logger.Info("Health check request received", "Method", r.Method, "URL", r.URL.String())
	w.Header().Set("Content-Type", "text/plain")
	if _, err := w.Write([]byte("ok")); err != nil {
		logger.Error("Failed to write response", "Error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
