package main

import (
	"errors"
	"fmt"

	"github.com/danmuck/mcctl/internal/status"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func statusCmd(configPath *string) *cobra.Command {
	var (
		host        string
		port        uint16
		faviconPath string
		noFavicon   bool
	)

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Query server status and save its favicon",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadAppConfig(*configPath)
			if err != nil {
				return err
			}
			applyEndpointFlags(cmd, &cfg, host, port)
			if cmd.Flags().Changed("favicon") {
				cfg.FaviconPath = faviconPath
			}
			if err := cfg.Client.Validate(); err != nil {
				return err
			}

			resp, err := status.Query(cmd.Context(), status.Config{
				Host:            cfg.Client.Host,
				Port:            cfg.Client.Port,
				ProtocolVersion: cfg.Client.ProtocolVersion,
				Session:         cfg.Client.Session,
				Dialer:          cfg.Client.Dialer,
			})
			if err != nil {
				return fmt.Errorf("status %s: %w", cfg.Client.Addr(), err)
			}

			printStatus(resp)

			if noFavicon {
				return nil
			}
			switch err := resp.SaveFavicon(cfg.FaviconPath); {
			case errors.Is(err, status.ErrNoFavicon):
				pterm.Info.Println("server has no favicon")
			case err != nil:
				return err
			default:
				pterm.Success.Printfln("favicon saved to %s", cfg.FaviconPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "server host")
	cmd.Flags().Uint16VarP(&port, "port", "p", 0, "server port")
	cmd.Flags().StringVar(&faviconPath, "favicon", status.DefaultFaviconPath, "where to write the server icon")
	cmd.Flags().BoolVar(&noFavicon, "no-favicon", false, "skip saving the server icon")
	return cmd
}

func printStatus(resp status.Response) {
	pterm.DefaultSection.Println(resp.MOTD())
	rows := pterm.TableData{
		{"Version", fmt.Sprintf("%s (%d)", resp.Version.Name, resp.Version.Protocol)},
		{"Players", fmt.Sprintf("%d/%d", resp.Players.Online, resp.Players.Max)},
	}
	for _, p := range resp.Players.Sample {
		rows = append(rows, []string{"", p.Name})
	}
	_ = pterm.DefaultTable.WithData(rows).Render()
}
