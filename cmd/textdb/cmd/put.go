package cmd

import (
	"github.com/spf13/cobra"
)

// putCmd represents the put command
var putCmd = &cobra.Command{
	Use:   "put <key> [values...]",
	Short: "Set the values of a key and rewrite the file",
	Long: `Set the values of a key and rewrite the database file. By default
the first entry with the key is replaced (or a new entry appended when the
key is absent); --append always adds a new entry, which may create a
duplicate key.

Examples:
  textdb put -f strings.tdb color red blue
  textdb put -f strings.tdb --append color green`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, _, err := openStore(cmd)
		if err != nil {
			return err
		}

		key, values := args[0], args[1:]

		appendEntry, _ := cmd.Flags().GetBool("append")
		if appendEntry {
			err = s.Append(key, values...)
		} else {
			err = s.Replace(key, values...)
		}
		if err != nil {
			return err
		}

		return s.Save()
	},
}

func init() {
	rootCmd.AddCommand(putCmd)
	putCmd.Flags().Bool("append", false, "append a new entry even when the key exists")
}
