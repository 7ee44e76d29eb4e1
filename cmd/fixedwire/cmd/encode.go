package cmd

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var encodeRaw bool

// encodeCmd represents the encode command
var encodeCmd = &cobra.Command{
	Use:   "encode [values.yaml]",
	Short: "Encode YAML values into fixed-width bytes",
	Long: `Encode YAML values into fixed-width bytes according to the schema.
Values are read from the given YAML file, or from stdin when omitted.

Example:
  fixedwire encode -s packet.yaml values.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		record, err := recordFromContext(cmd)
		if err != nil {
			return err
		}

		var data []byte
		if len(args) == 1 {
			data, err = os.ReadFile(args[0])
		} else {
			data, err = io.ReadAll(cmd.InOrStdin())
		}
		if err != nil {
			return fmt.Errorf("failed to read values: %w", err)
		}

		var values map[string]any
		if err := yaml.Unmarshal(data, &values); err != nil {
			return fmt.Errorf("failed to parse values: %w", err)
		}

		buf, err := record.Encode(values)
		if err != nil {
			return fmt.Errorf("encode failed: %w", err)
		}

		if encodeRaw {
			_, err = cmd.OutOrStdout().Write(buf)
			return err
		}
		cmd.Println(hex.EncodeToString(buf))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(encodeCmd)
	encodeCmd.Flags().BoolVar(&encodeRaw, "raw", false, "Write raw bytes instead of hex")
}
