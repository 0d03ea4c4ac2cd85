package cli

import (
	"fmt"

	"anagram-quiz-service/internal/config"
	"anagram-quiz-service/internal/dictionary"
	"anagram-quiz-service/internal/domain"
	pgloader "anagram-quiz-service/internal/infra/postgres"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewSeedCmd imports the configured TOML dictionaries into Postgres.
func NewSeedCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed [language...]",
		Short: "Import dictionary files into the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			log, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck

			if err := runMigrationsWithConfig(ctx, cfg, log); err != nil {
				return err
			}
			pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
			if err != nil {
				return err
			}
			defer pool.Close()
			store := pgloader.NewDictionaryLoader(pool)

			wanted := make(map[string]struct{}, len(args))
			for _, a := range args {
				wanted[a] = struct{}{}
			}
			for _, d := range cfg.Dictionaries {
				if _, ok := wanted[d.Language]; len(wanted) > 0 && !ok {
					continue
				}
				if d.Path == "" {
					return fmt.Errorf("dictionary %s has no path to import", d.Language)
				}
				raw, err := dictionary.LoadFile(d.Path)
				if err != nil {
					return err
				}
				n, err := store.ReplaceDictionary(ctx, domain.Language(d.Language), raw)
				if err != nil {
					return err
				}
				log.Info("dictionary imported", zap.String("language", d.Language), zap.Int64("rows", n))
			}
			return nil
		},
	}
}
