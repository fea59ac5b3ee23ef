package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// maxPayloadLine bounds a single stdin line. Real payloads stay well under
// a kilobyte; the QR code itself cannot hold more than a few.
const maxPayloadLine = 64 * 1024

// readPayloads returns args when present, otherwise the non-blank lines of r
func readPayloads(args []string, r io.Reader) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}

	var payloads []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxPayloadLine)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		payloads = append(payloads, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read stdin: %w", err)
	}
	if len(payloads) == 0 {
		return nil, fmt.Errorf("no payload given")
	}
	return payloads, nil
}

func escapeCSV(s string) string {
	if strings.ContainsAny(s, ",\"\n") {
		return "\"" + strings.ReplaceAll(s, "\"", "\"\"") + "\""
	}
	return s
}
