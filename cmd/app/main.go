package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"tracker/internal"
	"tracker/internal/config"
	"tracker/internal/logging"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var port string

func main() {
	_ = godotenv.Load()

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the exercise tracker API",
		RunE:  serve,
	}
	serveCmd.Flags().StringVarP(&port, "port", "p", "", "HTTP port (overrides PORT)")

	rootCmd := &cobra.Command{
		Use:           "tracker",
		Short:         "Exercise tracker REST API",
		RunE:          serve,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.Flags().AddFlagSet(serveCmd.Flags())

	rootCmd.AddCommand(serveCmd, &cobra.Command{
		Use:   "watch",
		Short: "Log change events published by the API",
		RunE:  watch,
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprint(os.Stderr, "Bootstrap error: "+err.Error()+"\n")
		os.Exit(1)
	}
}

func load() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logging.Apply(cfg.Log.Level, cfg.Log.File)
	return cfg, nil
}

func serve(cmd *cobra.Command, _ []string) error {
	cfg, err := load()
	if err != nil {
		return err
	}
	if port != "" {
		cfg.HTTP.Port = port
	}
	return internal.Bootstrap(cmd.Context(), cfg)
}

func watch(cmd *cobra.Command, _ []string) error {
	cfg, err := load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return internal.Watch(ctx, cfg)
}
