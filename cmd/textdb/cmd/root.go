/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ptero-tools/textdb/pkg/codec"
	"github.com/ptero-tools/textdb/pkg/config"
	"github.com/ptero-tools/textdb/pkg/store"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "textdb",
	Short: "textdb - binary text database toolkit",
	Long: `textdb inspects, converts and serves files in the textdb binary
dictionary format: a flat sequence of key records, each owning an ordered
list of string values.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("file", "f", "", "textdb file to operate on")
	rootCmd.PersistentFlags().String("config", "", "config file (default ~/.config/textdb/config.yaml)")
	rootCmd.PersistentFlags().Bool("nul-lengths", false, "length fields count a trailing NUL byte")
	rootCmd.PersistentFlags().String("encoding", "", "text encoding of the file, e.g. windows-1250 (default UTF-8)")
}

// resolveConfig merges the config file (when present) with command flags;
// a flag set on the command line always wins.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	explicit := path != ""
	if path == "" {
		path = config.GetDefaultConfigPath()
	}

	cfg := config.DefaultConfig()
	if config.ConfigExists(path) {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else if explicit {
		return nil, fmt.Errorf("config file does not exist: %s", path)
	}

	if cmd.Flags().Changed("file") {
		cfg.File, _ = cmd.Flags().GetString("file")
	}
	if cmd.Flags().Changed("nul-lengths") {
		cfg.Codec.NulLengths, _ = cmd.Flags().GetBool("nul-lengths")
	}
	if cmd.Flags().Changed("encoding") {
		cfg.Codec.Encoding, _ = cmd.Flags().GetString("encoding")
	}

	return cfg, nil
}

// openStore opens the configured textdb file for a command.
func openStore(cmd *cobra.Command) (*store.TextStore, *config.Config, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, nil, err
	}

	opts, err := cfg.Options()
	if err != nil {
		return nil, nil, err
	}

	s := store.NewTextStore(store.TextStoreConfig{
		FilePath: cfg.File,
		Codec:    opts,
	})
	if err := s.Open(); err != nil {
		return nil, nil, err
	}
	return s, cfg, nil
}

// codecFor returns the database codec for the resolved configuration.
func codecFor(cfg *config.Config) (*codec.DatabaseCodec, error) {
	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}
	return codec.NewDatabaseCodec(opts), nil
}
