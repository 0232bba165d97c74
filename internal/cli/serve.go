package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/maxviazov/paginater/internal/config"
	"github.com/maxviazov/paginater/internal/entity"
	"github.com/maxviazov/paginater/internal/handler"
	"github.com/maxviazov/paginater/internal/logger"
	"github.com/maxviazov/paginater/internal/repository"
	"github.com/maxviazov/paginater/internal/repository/memory"
	"github.com/maxviazov/paginater/internal/repository/postgres"
	"github.com/maxviazov/paginater/internal/service"
)

const (
	shutdownTimeout = 10 * time.Second
	seedPerAuthor   = 20
)

func newServeCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, configPath)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "config.yaml", "path to the YAML config (empty = env and defaults only)")
	return cmd
}

// storage is what the HTTP layer needs from a backend, plus its cleanup.
type storage struct {
	pinger   repository.Pinger
	articles repository.ArticleRepository
	authors  repository.AuthorRepository
	tx       repository.TxManager
	close    func()
}

func openStorage(ctx context.Context, cfg *config.Config, log *zerolog.Logger) (storage, error) {
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		pg, err := repository.NewPostgres(ctx, cfg.Postgres, log)
		if err != nil {
			return storage{}, err
		}
		pool := pg.Pool()
		return storage{
			pinger:   postgres.NewPinger(pool),
			articles: postgres.NewArticleRepository(pool),
			authors:  postgres.NewAuthorRepository(pool),
			tx:       postgres.NewTxManager(pool),
			close:    pg.Close,
		}, nil
	default:
		store := memory.NewStore()
		if cfg.Storage.Seed {
			if err := store.Seed(ctx, seedPerAuthor); err != nil {
				return storage{}, fmt.Errorf("seed memory store: %w", err)
			}
			log.Info().Int("articles_per_author", seedPerAuthor).Msg("memory store seeded")
		}
		return storage{
			pinger:   store,
			articles: store.Articles(),
			authors:  store.Authors(),
			tx:       store,
			close:    func() {},
		}, nil
	}
}

// newEngine builds the gin engine with every route mounted.
func newEngine(cfg *config.Config, st storage, log zerolog.Logger) *gin.Engine {
	if cfg.App.Env == "prod" || cfg.App.Env == "staging" {
		gin.SetMode(gin.ReleaseMode)
	}
	types := entity.New(cfg.PagingConfig())
	r := gin.New()
	handler.Register(r, handler.Deps{
		Pinger:     st.pinger,
		Articles:   service.NewArticleService(st.articles, st.authors, st.tx, types.Article.Paging(), log),
		Authors:    service.NewAuthorService(st.authors, types.Author.Paging(), log),
		Entities:   types,
		BaseURL:    cfg.App.BaseURL,
		AdminToken: cfg.App.AdminToken,
		Logger:     log,
	})
	return r
}

func runServe(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("config loading failed: %w", err)
	}
	appLogger, err := logger.New(&cfg.Logger)
	if err != nil {
		return fmt.Errorf("logger initialization failed: %w", err)
	}

	st, err := openStorage(ctx, cfg, &appLogger)
	if err != nil {
		return err
	}
	defer st.close()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           newEngine(cfg, st, appLogger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		appLogger.Info().Str("addr", srv.Addr).Str("storage", cfg.Storage.Driver).Msg("service started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	appLogger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}
