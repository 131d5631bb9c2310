package cli

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app carries state shared by subcommands once flags are parsed
type app struct {
	v      *viper.Viper
	cfg    *Config
	logger *logrus.Logger
}

// NewRootCommand - builds the command tree with a fresh configuration
func NewRootCommand() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:           "pos-snapshots",
		Short:         "Capture mobile screenshots of the POS web app for visual review",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
	}

	if err := registerFlags(root, a.v); err != nil {
		panic(err)
	}

	root.AddCommand(runCmd(a), listCmd(), installCmd(a))
	return root
}

// load - reads .env, resolves the config and sets up the logger
func (a *app) load(cmd *cobra.Command) error {
	// .env file is optional
	envErr := godotenv.Load()

	cfg, err := LoadConfig(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = newLogger(cfg.LogLevel)

	if envErr != nil && !os.IsNotExist(envErr) {
		a.logger.Warnf("Failed to read .env file: %v", envErr)
	} else if envErr != nil {
		a.logger.Debug(".env file not found, using environment variables")
	}
	return nil
}

// newLogger - text logger on stderr so stdout keeps only progress lines
func newLogger(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)
	return logger
}

// Execute - runs the CLI with ctx
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}
