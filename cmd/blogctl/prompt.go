package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// promptLine prints label and reads one line from the command's input.
func promptLine(cmd *cobra.Command, label string) (string, error) {
	fmt.Fprint(cmd.ErrOrStderr(), label)
	return readLine(cmd.InOrStdin())
}

// promptPassword reads a password without echo when stdin is a terminal,
// and a plain line otherwise (for piped input).
func promptPassword(cmd *cobra.Command, label string) (string, error) {
	fmt.Fprint(cmd.ErrOrStderr(), label)
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("reading password: %w", err)
		}
		return string(b), nil
	}
	return readLine(cmd.InOrStdin())
}

var (
	inputSrc io.Reader
	inputBuf *bufio.Reader
)

// readLine reads one line from r. One buffer is kept per source so that
// consecutive prompts on piped input do not lose buffered lines.
func readLine(r io.Reader) (string, error) {
	if r != inputSrc {
		inputSrc = r
		inputBuf = bufio.NewReader(r)
	}
	line, err := inputBuf.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
