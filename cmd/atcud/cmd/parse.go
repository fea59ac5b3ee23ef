package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rezonia/atcud-qr/internal/model"
	"github.com/rezonia/atcud-qr/internal/parser/qr"
)

var parseCmd = &cobra.Command{
	Use:   "parse [payload]",
	Short: "Show the fields of a QR code payload",
	Long: `Validate a payload and print its fields in wire order, or the list
of invalid fields when it does not validate.

Examples:
  atcud parse 'A:123456789*B:999999999*...'
  atcud parse -f table < payload.txt`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	payloads, err := readPayloads(args, cmd.InOrStdin())
	if err != nil {
		return err
	}
	if len(payloads) > 1 {
		return fmt.Errorf("parse takes a single payload, got %d", len(payloads))
	}

	out := cmd.OutOrStdout()
	fields, err := newPipeline().Parse(payloads[0])
	if err != nil {
		var parseErr *model.ParseError
		if !errors.As(err, &parseErr) {
			return err
		}
		if outputFormat == "json" {
			encoder := json.NewEncoder(out)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(map[string]any{"invalid_fields": parseErr.InvalidFields}); err != nil {
				return err
			}
		} else {
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "KEY\tERROR")
			for _, f := range parseErr.InvalidFields {
				fmt.Fprintf(tw, "%s\t%s\n", f.Argument, f.Message)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
		}
		return fmt.Errorf("payload has %d invalid fields", len(parseErr.InvalidFields))
	}

	values, err := fields.Values()
	if err != nil {
		return err
	}

	if outputFormat == "json" {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(values)
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tVALUE")
	for _, key := range qr.Keys {
		if v, ok := values[key]; ok {
			fmt.Fprintf(tw, "%s\t%s\n", key, v)
		}
	}
	return tw.Flush()
}
