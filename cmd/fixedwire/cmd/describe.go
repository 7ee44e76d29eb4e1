package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ssargent/fixedwire/pkg/codec"
)

// describeCmd represents the describe command
var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Show the wire layout of a schema",
	Long: `Show the wire layout of a schema: each field's offset, size, and
type, plus the total record size.

Example:
  fixedwire describe -s packet.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		record, err := recordFromContext(cmd)
		if err != nil {
			return err
		}

		cmd.Printf("record %s\n", record.Name())
		cmd.Printf("%-14s %-16s %8s %6s\n", "FIELD", "TYPE", "OFFSET", "SIZE")

		offset := 0
		for _, f := range record.Fields() {
			if f.Type == nil {
				cmd.Printf("%-14s %-16s %8s %6s\n", f.Name, "(unbound)", "-", "-")
				continue
			}
			size, ok := codec.FixedSizeOf(f.Type)
			if !ok {
				cmd.Printf("%-14s %-16s %8d %6s\n", f.Name, fmt.Sprint(f.Type), offset, "?")
				continue
			}
			cmd.Printf("%-14s %-16s %8d %6d\n", f.Name, fmt.Sprint(f.Type), offset, size)
			offset += size
		}

		if record.Fixed() {
			cmd.Printf("total %d bytes\n", record.Size())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
}
