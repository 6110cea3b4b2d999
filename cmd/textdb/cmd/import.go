package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ptero-tools/textdb/pkg/export"
)

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import <yaml-file>",
	Short: "Build a textdb file from a YAML export",
	Long: `Build a textdb file from a YAML tree previously produced by
export (or written by hand). The result is written to the configured file.

Example:
  textdb import -f strings.tdb strings.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		c, err := codecFor(cfg)
		if err != nil {
			return err
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		db, err := export.Unmarshal(data)
		if err != nil {
			return err
		}

		encoded, err := c.EncodeBytes(db)
		if err != nil {
			return err
		}
		if err := os.WriteFile(cfg.File, encoded, 0600); err != nil {
			return err
		}

		cmd.Printf("Wrote %d entries to %s\n", len(db.Entries), cfg.File)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
