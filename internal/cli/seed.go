package cli

import (
	"context"
	"fmt"

	"chaining-quiz-service/internal/config"
	"chaining-quiz-service/internal/infra/file"
	"chaining-quiz-service/internal/infra/postgres"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewSeedCmd loads a pool file into Postgres.
func NewSeedCmd(configPath *string) *cobra.Command {
	var replace bool
	cmd := &cobra.Command{
		Use:   "seed <language> <pool-file>",
		Short: "Import a quiz pool file into Postgres",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd.Context(), *configPath, args[0], args[1], replace)
		},
	}
	cmd.Flags().BoolVar(&replace, "replace", false, "remove items of the language that are not in the file")
	return cmd
}

func runSeed(ctx context.Context, configPath, language, path string, replace bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cfg.Postgres.URL == "" {
		return fmt.Errorf("postgres url not configured")
	}
	log := config.NewLogger(cfg)

	items, err := file.ReadPool(path)
	if err != nil {
		return err
	}

	db := postgres.OpenBun(cfg.Postgres.URL)
	defer db.Close()

	n, err := postgres.NewSeeder(db).SeedPool(ctx, language, items, replace)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{"language": language, "items": n, "replace": replace}).Info("pool seeded")
	return nil
}
