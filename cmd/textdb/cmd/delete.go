package cmd

import (
	"github.com/spf13/cobra"
)

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete <key>",
	Short: "Remove every entry with a key and rewrite the file",
	Long: `Remove every entry with the given key and rewrite the database
file.

Example:
  textdb delete -f strings.tdb color`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, _, err := openStore(cmd)
		if err != nil {
			return err
		}

		if err := s.Delete(args[0]); err != nil {
			return err
		}
		return s.Save()
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
