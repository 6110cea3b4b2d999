package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ptero-tools/textdb/pkg/codec"
	"github.com/ptero-tools/textdb/pkg/export"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a textdb file as readable YAML",
	Long: `Export a textdb file as a readable YAML tree on stdout or into a
file. Entry order, duplicate keys and the opaque header bytes are preserved,
so the export can be imported back into an identical binary file.

Examples:
  textdb export -f strings.tdb
  textdb export -f strings.tdb -o strings.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, _, err := openStore(cmd)
		if err != nil {
			return err
		}

		header, err := s.Header()
		if err != nil {
			return err
		}
		entries, err := s.Entries()
		if err != nil {
			return err
		}

		out, err := export.Marshal(&codec.TextDatabase{Header: header, Entries: entries})
		if err != nil {
			return err
		}

		output, _ := cmd.Flags().GetString("output")
		if output == "" {
			cmd.Print(string(out))
			return nil
		}
		return os.WriteFile(output, out, 0600)
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringP("output", "o", "", "write YAML to this file instead of stdout")
}
