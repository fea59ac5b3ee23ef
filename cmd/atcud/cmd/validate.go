package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rezonia/atcud-qr/internal/model"
)

var validateCmd = &cobra.Command{
	Use:   "validate [payloads...]",
	Short: "Validate QR code payloads",
	Long: `Check one or more payloads against the QR code format.

Every field is checked: required keys, lengths, document type and
status codes, the date, region codes and amounts. With --verbose the
violations of an invalid payload are listed.

Examples:
  atcud validate 'A:123456789*B:999999999*...'
  atcud validate -v < payloads.txt`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	payloads, err := readPayloads(args, cmd.InOrStdin())
	if err != nil {
		return err
	}

	pipeline := newPipeline()
	results := make([]*ValidationResult, 0, len(payloads))
	allValid := true

	for _, payload := range payloads {
		result := &ValidationResult{Payload: payload, Valid: pipeline.IsValid(payload)}
		if !result.Valid {
			allValid = false
			if verbose || outputFormat == "json" {
				_, err := pipeline.Parse(payload)
				var parseErr *model.ParseError
				if errors.As(err, &parseErr) {
					result.InvalidFields = parseErr.InvalidFields
				}
			}
		}
		results = append(results, result)
	}

	out := cmd.OutOrStdout()
	if outputFormat == "json" {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(results); err != nil {
			return err
		}
	} else {
		for _, r := range results {
			if r.Valid {
				fmt.Fprintf(out, "✓ %s: VALID\n", r.Payload)
				continue
			}
			fmt.Fprintf(out, "✗ %s: INVALID\n", r.Payload)
			for _, f := range r.InvalidFields {
				fmt.Fprintf(out, "  - %s\n", f)
			}
		}
	}

	if !allValid {
		return fmt.Errorf("validation failed for some payloads")
	}
	return nil
}

// ValidationResult holds the result of validating a single payload
type ValidationResult struct {
	Payload       string               `json:"payload"`
	Valid         bool                 `json:"valid"`
	InvalidFields []model.InvalidField `json:"invalid_fields,omitempty"`
}
