package cmd

import (
	"github.com/spf13/cobra"
)

// getCmd represents the get command
var getCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print the values of a key",
	Long: `Print the values of a key, one per line. When the file holds
several entries with the same key, every match is printed in file order;
--first limits output to the first entry.

Example:
  textdb get -f strings.tdb color`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, _, err := openStore(cmd)
		if err != nil {
			return err
		}

		first, _ := cmd.Flags().GetBool("first")
		if first {
			values, err := s.Get(args[0])
			if err != nil {
				return err
			}
			for _, v := range values {
				cmd.Println(v)
			}
			return nil
		}

		matches, err := s.GetAll(args[0])
		if err != nil {
			return err
		}
		for _, values := range matches {
			for _, v := range values {
				cmd.Println(v)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(getCmd)
	getCmd.Flags().Bool("first", false, "print only the first matching entry")
}
