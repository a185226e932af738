// Command showcase runs a studio site with the default views and manages
// its content and admin accounts.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/eringen/showcase"
	"github.com/eringen/showcase/views"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	envFile string
	devMode bool
	log     *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:           "showcase",
	Short:         "A studio marketing site with an admin content backend",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", envFile, err)
		}
		var err error
		if devMode {
			log, err = zap.NewDevelopment()
		} else {
			log, err = zap.NewProduction()
		}
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the showcase version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "showcase %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	rootCmd.PersistentFlags().BoolVar(&devMode, "dev", false, "human-readable debug logging")
	rootCmd.AddCommand(serveCmd, seedCmd, userCmd, versionCmd)
}

// newApp builds an initialized App from the environment.
func newApp(cmd *cobra.Command) (*showcase.App, error) {
	cfg, err := showcase.ConfigFromEnv()
	if err != nil {
		return nil, err
	}
	app := showcase.New(cfg, views.Default(),
		showcase.WithLogger(log),
		showcase.WithStaticDir(showcase.EnvOr("STATIC_DIR", "public")),
	)
	if err := app.Init(cmd.Context()); err != nil {
		app.Close()
		return nil, err
	}
	return app, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
