package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"anagram-quiz-service/internal/app"
	"anagram-quiz-service/internal/command"
	"anagram-quiz-service/internal/config"
	"anagram-quiz-service/internal/dictionary"
	"anagram-quiz-service/internal/domain"
	"anagram-quiz-service/internal/infra/memory"
	pgloader "anagram-quiz-service/internal/infra/postgres"
	redisstore "anagram-quiz-service/internal/infra/redis"
	"anagram-quiz-service/internal/logger"
	transport "anagram-quiz-service/internal/transport/http"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the quiz server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	return logger.New(cfg.Log.Level, cfg.Log.Format)
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
	}

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg, log); err != nil {
			return err
		}
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
	}

	specs, paths, err := dictionarySpecs(cfg)
	if err != nil {
		return err
	}
	var loader dictionary.Loader = dictionary.NewFileLoader(paths)
	if pool != nil {
		loader = pgloader.NewDictionaryLoader(pool)
		if redisClient != nil {
			loader = redisstore.NewDictionaryCache(redisClient, loader, config.TTLDuration(cfg.Redis.TTL, time.Hour))
		}
	}

	// Dictionaries are startup-fatal: any load error stops the process here.
	catalog, err := dictionary.LoadCatalog(ctx, loader, specs, log)
	if err != nil {
		return err
	}

	var settings app.SettingsStore = memory.NewSettingsStore()
	if redisClient != nil {
		settings = redisstore.NewSettingsStore(redisClient)
	}

	sessions := memory.NewSessionStore(app.NewSessionFactory(catalog,
		app.WithMaxRounds(cfg.Quiz.MaxRounds),
		app.WithHintPlaceholder(cfg.Quiz.HintPlaceholder),
		app.WithLogger(log),
	))
	service := app.NewQuizService(sessions, settings, catalog,
		app.WithDefaultPrefix(cfg.Quiz.Prefix),
		app.WithServiceLogger(log),
	)
	if err := service.Restore(ctx, cfg.Channels.Enabled...); err != nil {
		return err
	}

	maxRounds := cfg.Quiz.MaxRounds
	if maxRounds <= 0 {
		maxRounds = app.DefaultMaxRounds
	}
	dispatcher := command.NewDispatcher(service, command.NewParser(catalog.Languages(), maxRounds), log)
	wsHandler := transport.NewWSHandler(dispatcher, log)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/ws", wsHandler.ServeWS)

	server := &http.Server{
		Addr:        ":" + finalPort,
		Handler:     mux,
		ReadTimeout: 15 * time.Second,
	}

	go func() {
		log.Info("starting quiz service", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed to start server", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Info("shutting down server")
	case <-ctx.Done():
		log.Info("context canceled, shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func dictionarySpecs(cfg config.Config) ([]dictionary.Spec, map[domain.Language]string, error) {
	specs := make([]dictionary.Spec, 0, len(cfg.Dictionaries))
	paths := make(map[domain.Language]string, len(cfg.Dictionaries))
	for _, d := range cfg.Dictionaries {
		normalize, err := dictionary.NormalizerByName(d.Normalize)
		if err != nil {
			return nil, nil, err
		}
		lang := domain.Language(d.Language)
		specs = append(specs, dictionary.Spec{Language: lang, Label: d.Label, Normalize: normalize})
		if d.Path != "" {
			paths[lang] = d.Path
		}
	}
	return specs, paths, nil
}
