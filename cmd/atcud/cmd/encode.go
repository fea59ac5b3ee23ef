package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rezonia/atcud-qr/internal/model"
)

var encodeCmd = &cobra.Command{
	Use:   "encode [file]",
	Short: "Encode a document back into a QR code payload",
	Long: `Read a document as JSON, in the shape printed by decode, and print
the QR code payload for it. The document is read from the file argument
or, without one, from stdin.

Examples:
  atcud decode 'A:...' | atcud encode
  atcud encode document.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEncode,
}

func init() {
	rootCmd.AddCommand(encodeCmd)
}

func runEncode(cmd *cobra.Command, args []string) error {
	var r io.Reader = cmd.InOrStdin()
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open document: %w", err)
		}
		defer f.Close()
		r = f
	}

	var doc model.Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return fmt.Errorf("failed to read document: %w", err)
	}

	payload, err := newPipeline().Encode(&doc)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), payload)
	return nil
}
