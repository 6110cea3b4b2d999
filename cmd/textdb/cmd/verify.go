package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ptero-tools/textdb/pkg/codec"
)

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify [files...]",
	Short: "Check textdb files for integrity",
	Long: `Check one or more textdb files for integrity: header signature,
record stream structure, text encoding and the end-of-stream terminator.
The exit status is non-zero when any file fails.

Examples:
  textdb verify strings.tdb
  textdb verify --nul-lengths --encoding windows-1250 data/*.tdb`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		c, err := codecFor(cfg)
		if err != nil {
			return err
		}

		failed := 0
		for _, path := range args {
			if err := verifyFile(cmd, c, path); err != nil {
				cmd.Printf("%s: FAILED: %v\n", path, err)
				failed++
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d files failed verification", failed, len(args))
		}
		return nil
	},
}

func verifyFile(cmd *cobra.Command, c *codec.DatabaseCodec, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	db, err := c.Decode(bufio.NewReader(file))
	if err != nil {
		var de *codec.DecodeError
		if errors.As(err, &de) {
			return fmt.Errorf("%w (offset %d)", de.Err, de.Offset)
		}
		return err
	}

	if db.Header.Flag != codec.DefaultFlag {
		cmd.Printf("%s: warning: unexpected flag value %d\n", path, db.Header.Flag)
	}

	values := 0
	for _, e := range db.Entries {
		values += len(e.Values)
	}
	cmd.Printf("%s: OK (%d entries, %d values)\n", path, len(db.Entries), values)
	return nil
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
