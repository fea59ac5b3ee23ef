package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Validate or decode a payload interactively",
	Long: `Ask for an action and a payload on the terminal.

  0 - Validate QR Code
  1 - Decode QR Code`,
	Args: cobra.NoArgs,
	RunE: runPrompt,
}

func init() {
	rootCmd.AddCommand(promptCmd)
}

func runPrompt(cmd *cobra.Command, args []string) error {
	in := bufio.NewReader(cmd.InOrStdin())
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "You will be asked to choose an action to perform.")
	action, err := ask(in, out, "0 - Validate QR Code\n1 - Decode QR Code\nChoose your option: ")
	if err != nil {
		return err
	}

	switch strings.TrimSpace(action) {
	case "0":
		payload, err := ask(in, out, "QR Code Value: ")
		if err != nil {
			return err
		}
		if newPipeline().IsValid(payload) {
			fmt.Fprintln(out, "The QR Code is valid!")
		} else {
			fmt.Fprintln(out, "The QR Code is not valid!")
		}
		return nil

	case "1":
		payload, err := ask(in, out, "QR Code Value: ")
		if err != nil {
			return err
		}
		doc, err := newPipeline().Decode(payload)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, "Decoded Data: ")
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(doc)

	default:
		return fmt.Errorf("invalid option %q", strings.TrimSpace(action))
	}
}

// ask prints question and returns the answer line without its line break
func ask(in *bufio.Reader, out io.Writer, question string) (string, error) {
	fmt.Fprint(out, question)
	line, err := in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("failed to read answer: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
