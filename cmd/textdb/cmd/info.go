package cmd

import (
	"github.com/spf13/cobra"
)

// infoCmd represents the info command
var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show header and entry statistics of a textdb file",
	Long: `Show the header fields and entry statistics of a textdb file.

Example:
  textdb info -f strings.tdb`,
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

		values := 0
		for _, e := range entries {
			values += len(e.Values)
		}

		cmd.Printf("File:      %s\n", s.Path())
		cmd.Printf("Signature: %q\n", header.Signature[:])
		cmd.Printf("Flag:      %d\n", header.Flag)
		cmd.Printf("Reserved:  %x\n", header.Reserved[:])
		cmd.Printf("Entries:   %d\n", len(entries))
		cmd.Printf("Values:    %d\n", values)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
