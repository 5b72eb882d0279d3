package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// notifier prints the toast messages to the console output.
type notifier struct {
	out io.Writer
}

func (n *notifier) Success(msg string) { fmt.Fprintln(n.out, msg) }
func (n *notifier) Error(msg string)   { fmt.Fprintln(n.out, "Error: "+msg) }

// prompter asks the interactive yes/no question on stdin. A --yes flag
// bypasses it.
type prompter struct {
	in   io.Reader
	out  io.Writer
	auto bool
}

func (p *prompter) Confirm(prompt string) bool {
	if p.auto {
		return true
	}
	fmt.Fprintf(p.out, "%s [y/N]: ", prompt)
	reader := bufio.NewReader(p.in)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func renderTable(out io.Writer, headers []string, rows [][]string) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(headers, "\t"))
	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	w.Flush()
}

func renderFieldErrors(out io.Writer, errs map[string]string) {
	fmt.Fprintln(out, "Validation failed:")
	for field, msg := range errs {
		fmt.Fprintf(out, "  %s: %s\n", field, msg)
	}
}
