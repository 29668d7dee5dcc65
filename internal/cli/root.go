package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mcoot/vocabgrid/internal/factory"
)

var (
	cfg *Config
	app *factory.App
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:   "vocabgrid",
		Short: "Vocabulary crossword level generator",
		Long: `vocabgrid builds crossword-style vocabulary levels from a word list.

It selects words using a learner's progress (review words first, then new
words that cross well), lays them out on a grid and pre-fills part of the
letters according to the learner's grade.

Settings can be given as flags, VOCABGRID_* environment variables or in a
vocabgrid.yaml file.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := loadConfig(v, cmd)
			if err != nil {
				return err
			}
			cfg = loaded
			if cfg.NoColor {
				color.NoColor = true
			}

			logger, err := cfg.Logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			app, err = factory.New(factory.Config{
				VocabularyPath: cfg.Words,
				ThemesPath:     cfg.Themes,
				DifficultyPath: cfg.Difficulty,
				Seed:           cfg.Seed,
				Logger:         logger,
			})
			if err != nil {
				return err
			}
			if cfg.ConfigFile != "" {
				logger.Debug("using config file", slog.String("file", cfg.ConfigFile))
			}
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Config file (default: ./vocabgrid.yaml)")
	flags.String("words", "", "Word list, one 'spelling' or 'id,spelling' per line (env: VOCABGRID_WORDS)")
	flags.String("themes", "", "Theme YAML file (env: VOCABGRID_THEMES)")
	flags.String("difficulty", "", "Difficulty YAML file (env: VOCABGRID_DIFFICULTY)")
	flags.String("state", "", "Learning state YAML file (env: VOCABGRID_STATE)")
	flags.Uint64("seed", 0, "Seed for reproducible output; 0 uses a random source (env: VOCABGRID_SEED)")
	flags.StringP("output", "o", cfg.Output, "Output format: text, json")
	flags.String("log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	flags.String("log-format", cfg.LogFormat, "Log format: text, json")
	flags.Bool("no-color", false, "Disable colored grid output")

	// Add subcommands
	rootCmd.AddCommand(newGenerateCmd())
	rootCmd.AddCommand(newSelectCmd())
	rootCmd.AddCommand(newPlanCmd())
	rootCmd.AddCommand(newPregenCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
