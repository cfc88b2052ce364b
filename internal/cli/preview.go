package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
)

var (
	colorPreviewLabel = color.New(color.FgBlue, color.Bold).SprintFunc()
	colorPreviewRaw   = color.New(color.FgHiBlack).SprintFunc()
)

// printPreview renders the decoded command without executing anything.
func printPreview(cmd *cobra.Command, opts *options, exe string, raw, decoded []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s\n", colorPreviewLabel("Command:"), exe)
	for i, arg := range decoded {
		fmt.Fprintf(out, "%s '%s'\n", colorPreviewLabel(fmt.Sprintf("Arg %d:", i+1)), arg)
	}
	if opts.verbose && len(raw) > 0 {
		fmt.Fprintln(out)
		printDecodeTable(out, raw, decoded)
	}
	return nil
}

// printDecodeTable shows each raw argument next to its decoded form,
// aligned on display width so multi-byte input stays readable.
func printDecodeTable(w io.Writer, raw, decoded []string) {
	width := 0
	for _, r := range raw {
		if n := runewidth.StringWidth(r); n > width {
			width = n
		}
	}
	for i, r := range raw {
		pad := strings.Repeat(" ", width-runewidth.StringWidth(r))
		fmt.Fprintf(w, "  %s%s  %s\n", colorPreviewRaw(r), pad, decoded[i])
	}
}
