package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/danmuck/mcctl/internal/logging"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	logging.ConfigureRuntime()

	var configPath string
	rootCmd := &cobra.Command{
		Use:           "mcctl",
		Short:         "Headless chat client for protocol 754 servers",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a TOML config file")

	rootCmd.AddCommand(
		statusCmd(&configPath),
		joinCmd(&configPath),
		versionCmd(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err == nil {
		return
	}
	if errors.Is(err, errQuitRequested) {
		os.Exit(0)
	}
	pterm.Error.Println(err.Error())
	os.Exit(1)
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("mcctl %s (%s)\n", version, commit)
		},
	}
}
