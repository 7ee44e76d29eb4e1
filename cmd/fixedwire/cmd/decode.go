package cmd

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// decodeCmd represents the decode command
var decodeCmd = &cobra.Command{
	Use:   "decode <hex>",
	Short: "Decode hex bytes into YAML values",
	Long: `Decode hex bytes into YAML values according to the schema. Bytes
beyond the record's width are reported, not consumed.

Example:
  fixedwire decode -s packet.yaml 0700000068690000000001`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		record, err := recordFromContext(cmd)
		if err != nil {
			return err
		}

		buf, err := hex.DecodeString(strings.TrimSpace(args[0]))
		if err != nil {
			return fmt.Errorf("invalid hex input: %w", err)
		}

		values, rest, err := record.Decode(buf)
		if err != nil {
			return fmt.Errorf("decode failed: %w", err)
		}

		out, err := yaml.Marshal(values)
		if err != nil {
			return fmt.Errorf("failed to render values: %w", err)
		}
		cmd.Print(string(out))

		if len(rest) > 0 {
			cmd.Printf("# %d trailing byte(s) not consumed\n", len(rest))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(decodeCmd)
}
