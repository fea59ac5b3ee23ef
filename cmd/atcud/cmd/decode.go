package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	amount "github.com/rezonia/atcud-qr/internal/decimal"
	"github.com/rezonia/atcud-qr/internal/model"
)

var outputFile string

var decodeCmd = &cobra.Command{
	Use:   "decode [payloads...]",
	Short: "Decode QR code payloads into documents",
	Long: `Decode one or more payloads into structured documents.

Document types, statuses and regions are reported by name, amounts as
decimals and the date as an ISO timestamp. Several payloads are decoded
concurrently (env: ATCUD_BATCH_CONCURRENCY); output keeps their order.

Examples:
  atcud decode 'A:123456789*B:999999999*...'
  atcud decode -f table < payloads.txt
  atcud decode -f csv -o documents.csv < payloads.txt`,
	RunE: runDecode,
}

func init() {
	rootCmd.AddCommand(decodeCmd)

	decodeCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
}

func runDecode(cmd *cobra.Command, args []string) error {
	payloads, err := readPayloads(args, cmd.InOrStdin())
	if err != nil {
		return err
	}

	printVerbose("Decoding %d payloads\n", len(payloads))

	pipeline := newPipeline()
	batch := pipeline.DecodeBatch(cmd.Context(), payloads)

	results := make([]*DecodeResult, len(batch))
	failed := 0
	for i, r := range batch {
		result := &DecodeResult{Payload: payloads[i], Document: r.Document}
		if r.Err != nil {
			result.Error = r.Err.Error()
			failed++
			printVerbose("  %d: %s\n", i, result.Error)
		} else {
			result.Warnings = r.Document.Warnings()
		}
		results[i] = result
	}

	if err := outputResults(cmd.OutOrStdout(), results); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d payloads could not be decoded", failed, len(payloads))
	}
	return nil
}

func outputResults(stdout io.Writer, results []*DecodeResult) error {
	writer := stdout
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		writer = f
	}

	switch outputFormat {
	case "json":
		return outputJSON(writer, results)
	case "table":
		return outputTable(writer, results)
	case "csv":
		return outputCSV(writer, results)
	default:
		return fmt.Errorf("unsupported output format: %s", outputFormat)
	}
}

func outputJSON(w io.Writer, results []*DecodeResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if len(results) == 1 && results[0].Document != nil {
		return encoder.Encode(results[0].Document)
	}
	return encoder.Encode(results)
}

func outputTable(w io.Writer, results []*DecodeResult) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ATCUD\tNUMBER\tTYPE\tSTATUS\tDATE\tISSUER\tVAT\tTOTAL")
	fmt.Fprintln(tw, "-----\t------\t----\t------\t----\t------\t---\t-----")

	for i, r := range results {
		if r.Document == nil {
			fmt.Fprintf(tw, "#%d\tERROR: %s\t\t\t\t\t\t\n", i, r.Error)
			continue
		}
		doc := r.Document
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			doc.ATCUD,
			doc.Number,
			doc.Type,
			doc.Status,
			doc.Date.Format("2006-01-02"),
			doc.Issuer.VATNumber,
			vatAmount(doc).StringFixed(2),
			doc.Total.StringFixed(2),
		)
	}

	return tw.Flush()
}

func outputCSV(w io.Writer, results []*DecodeResult) error {
	fmt.Fprintln(w, "atcud,number,type,status,date,issuer_vat,buyer_vat,buyer_country,vat_amount,tax_total,total,error")

	for _, r := range results {
		if r.Document == nil {
			fmt.Fprintf(w, ",,,,,,,,,,,%s\n", escapeCSV(r.Error))
			continue
		}
		doc := r.Document
		fmt.Fprintf(w, "%s,%s,%s,%s,%s,%s,%s,%s,%s,%s,%s,\n",
			escapeCSV(doc.ATCUD),
			escapeCSV(doc.Number),
			doc.Type.Code(),
			doc.Status.Code(),
			doc.Date.Format("2006-01-02"),
			escapeCSV(doc.Issuer.VATNumber),
			escapeCSV(doc.Buyer.VATNumber),
			escapeCSV(doc.Buyer.Country),
			vatAmount(doc).StringFixed(2),
			doc.Tax.Total.StringFixed(2),
			doc.Total.StringFixed(2),
		)
	}

	return nil
}

// vatAmount sums the VAT charged across every block of doc
func vatAmount(doc *model.Document) decimal.Decimal {
	amounts := make([]decimal.Decimal, len(doc.Tax.VAT))
	for i, b := range doc.Tax.VAT {
		amounts[i] = b.VATAmount()
	}
	return amount.Sum(amounts)
}

// DecodeResult holds the result of decoding a single payload
type DecodeResult struct {
	Payload  string          `json:"payload"`
	Document *model.Document `json:"document,omitempty"`
	Warnings []string        `json:"warnings,omitempty"`
	Error    string          `json:"error,omitempty"`
}
