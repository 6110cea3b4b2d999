/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ptero-tools/textdb/pkg/api"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a textdb file over HTTP",
	Long: `Serve a decoded textdb file as a read-only dictionary service with
health and Prometheus metrics endpoints. Set an API key in the config file
(server.api_key) to require X-API-Key on the /api/v1 routes.

Examples:
  textdb serve -f strings.tdb --port 8080
  textdb serve --config ./textdb.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, cfg, err := openStore(cmd)
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("port") {
			cfg.Server.Port, _ = cmd.Flags().GetInt("port")
		}
		if cmd.Flags().Changed("bind") {
			cfg.Server.Bind, _ = cmd.Flags().GetString("bind")
		}

		return api.StartServer(s, api.ServerConfig{
			Port:   cfg.Server.Port,
			Bind:   cfg.Server.Bind,
			APIKey: cfg.Server.APIKey,
		})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
	serveCmd.Flags().String("bind", "127.0.0.1", "Address to bind to")
}
