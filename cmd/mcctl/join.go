package main

import (
	"context"
	"errors"
	"os"

	"github.com/danmuck/mcctl/internal/client"
	"github.com/danmuck/mcctl/internal/observability"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var errQuitRequested = errors.New("quit requested")

func joinCmd(configPath *string) *cobra.Command {
	var (
		host        string
		port        uint16
		name        string
		plain       bool
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:   "join",
		Short: "Log in and relay chat between the server and stdin",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadAppConfig(*configPath)
			if err != nil {
				return err
			}
			applyEndpointFlags(cmd, &cfg, host, port)
			if cmd.Flags().Changed("name") {
				cfg.Client.Name = name
			}
			if cmd.Flags().Changed("plain") {
				cfg.Client.PlainChat = plain
			}
			if cmd.Flags().Changed("metrics") {
				cfg.MetricsAddr = metricsAddr
			}
			cfg.Client.Out = cmd.OutOrStdout()

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			if cfg.MetricsAddr != "" {
				go func() {
					if err := observability.ServeMetrics(ctx, cfg.MetricsAddr); err != nil {
						log.Warn().Err(err).Str("addr", cfg.MetricsAddr).Msg("metrics listener stopped")
					}
				}()
			}

			c, err := client.New(cfg.Client)
			if err != nil {
				return err
			}
			sess, err := c.Join(ctx)
			if err != nil {
				return err
			}
			defer sess.Close()

			err = sess.Run(ctx, os.Stdin)
			switch {
			case errors.Is(err, client.ErrQuit):
				return errQuitRequested
			case ctx.Err() != nil:
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "server host")
	cmd.Flags().Uint16VarP(&port, "port", "p", 0, "server port")
	cmd.Flags().StringVarP(&name, "name", "n", "", "identity name")
	cmd.Flags().BoolVar(&plain, "plain", false, "print chat without ANSI colors")
	cmd.Flags().StringVar(&metricsAddr, "metrics", "", "serve prometheus metrics on this address")
	return cmd
}

func applyEndpointFlags(cmd *cobra.Command, cfg *appConfig, host string, port uint16) {
	if cmd.Flags().Changed("host") {
		cfg.Client.Host = host
	}
	if cmd.Flags().Changed("port") {
		cfg.Client.Port = port
	}
}
