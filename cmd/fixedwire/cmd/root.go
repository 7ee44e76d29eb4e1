package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ssargent/fixedwire/pkg/codec"
	"github.com/ssargent/fixedwire/pkg/schema"
)

type contextKey string

const recordKey contextKey = "record"

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "fixedwire",
	Short: "fixedwire - fixed-width binary records from declarative schemas",
	Long: `fixedwire derives exact-width binary encodings from declarative
record schemas. Point it at a YAML schema file and it can describe the
wire layout, encode YAML values to bytes, and decode bytes back to values.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("schema")
		record, err := schema.LoadFile(path)
		if err != nil {
			return fmt.Errorf("failed to load schema: %w", err)
		}
		cmd.SetContext(context.WithValue(cmd.Context(), recordKey, record))
		return nil
	},
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
	rootCmd.PersistentFlags().StringP("schema", "s", "", "Path to the YAML schema file")
	_ = rootCmd.MarkPersistentFlagRequired("schema")
}

// recordFromContext returns the schema record loaded by the root command.
func recordFromContext(cmd *cobra.Command) (*codec.Record, error) {
	record, ok := cmd.Context().Value(recordKey).(*codec.Record)
	if !ok {
		return nil, fmt.Errorf("no schema loaded")
	}
	return record, nil
}
