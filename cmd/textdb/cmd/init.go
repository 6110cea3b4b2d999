package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ptero-tools/textdb/pkg/config"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a configuration file with a generated API key",
	Long: `Create the textdb configuration file with defaults and a freshly
generated API key for the dictionary service.

Example:
  textdb init -f ./data/strings.tdb`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		if path == "" {
			path = config.GetDefaultConfigPath()
		}
		if config.ConfigExists(path) {
			return fmt.Errorf("config already exists: %s", path)
		}

		file, _ := cmd.Flags().GetString("file")
		cfg, err := config.BootstrapConfig(path, file)
		if err != nil {
			return err
		}

		cmd.Printf("Created %s\n", path)
		cmd.Printf("Database file: %s\n", cfg.File)
		cmd.Printf("API key: %s\n", cfg.Server.APIKey)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
