package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/pdexec/pdexec/internal/config"
	"github.com/pdexec/pdexec/internal/percent"
	"github.com/pdexec/pdexec/internal/spool"
	"github.com/pdexec/pdexec/internal/version"
)

type options struct {
	filter  bool
	dryRun  bool
	preview bool
	verbose bool
}

// exitError carries a process exit status through the cobra error path.
// When err is nil the status came from the subprocess, which has already
// said whatever it had to say; no further diagnostic is printed.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	return fmt.Sprintf("exit status %d", e.code)
}

func (e *exitError) Unwrap() error { return e.err }

var colorErrPrefix = color.New(color.FgRed, color.Bold).SprintFunc()

// Execute runs the root command and returns the wrapper's exit code.
// Diagnostics are written to stderr here so main stays a thin exit call.
func Execute() int {
	err := newRootCommand().Execute()
	if err == nil {
		return 0
	}
	var exit *exitError
	if errors.As(err, &exit) {
		if exit.err != nil {
			fmt.Fprintf(os.Stderr, "%s %v\n", colorErrPrefix("pdexec:"), exit.err)
		}
		return exit.code
	}
	// Anything else is a usage problem: unknown flags, missing executable,
	// unreadable config.
	fmt.Fprintf(os.Stderr, "%s %v\n", colorErrPrefix("pdexec:"), err)
	fmt.Fprintln(os.Stderr, "Run 'pdexec --help' for usage.")
	return 2
}

func newRootCommand() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "pdexec [flags] [--] EXECUTABLE [ARGS...]",
		Short: "Run a command with percent-decoded arguments",
		Long: `pdexec percent-decodes its arguments before invoking the target
executable, sidestepping shell-quoting hazards: callers encode spaces as
%20, newlines as %0A, and so on, and the target receives the raw bytes.

Decoding is lenient. A % that is not followed by two hex digits passes
through literally, and + is never turned into a space. Exactly one
decoding pass is applied per argument.

With --filter, standard input is decoded line by line as well. If no
executable is named, the decoded lines are written to standard output;
otherwise the fully decoded stream becomes the target's standard input.
Input is read to completion before the target starts, so --filter is not
suitable for unbounded streams.

When the target runs, pdexec's exit status is the target's exit status.`,
		Example: `  pdexec echo hello%20world
  pdexec --dry-run echo arg1%20space arg2
  printf 'line1%%20one\n' | pdexec --filter
  printf 'a%%20b\n' | pdexec --filter cat
  pdexec -- --strangely-named-program`,
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, opts, args)
		},
	}
	// The target program's own flags must pass through undisturbed: option
	// parsing stops at the first positional argument.
	cmd.Flags().SetInterspersed(false)
	cmd.Flags().BoolVarP(&opts.dryRun, "dry-run", "n", false, "print the decoded command instead of executing it")
	cmd.Flags().BoolVar(&opts.preview, "preview", false, "alias for --dry-run")
	_ = cmd.Flags().MarkHidden("preview")
	cmd.Flags().BoolVar(&opts.filter, "filter", false, "also percent-decode standard input line by line")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "with --dry-run, show raw and decoded arguments side by side")
	return cmd
}

// runRoot is the dispatch pipeline: decode, then preview or execute.
func runRoot(cmd *cobra.Command, opts *options, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	applyColorMode(cfg.Color)

	if opts.filter && len(args) == 0 {
		warnTerminalInput(cmd)
		return decodeLines(cmd.InOrStdin(), cmd.OutOrStdout(), cfg.Filter.MaxLineBytes)
	}
	if len(args) == 0 {
		return errors.New("missing executable name (or --filter to decode stdin)")
	}
	if args[0] == "" {
		return errors.New("empty executable name")
	}

	exe := args[0]
	decoded := make([]string, len(args)-1)
	for i, raw := range args[1:] {
		decoded[i] = percent.DecodeString(raw)
	}

	if opts.dryRun || opts.preview {
		return printPreview(cmd, opts, exe, args[1:], decoded)
	}

	var stdin io.Reader
	if opts.filter {
		sp := spool.New(cfg.Filter.Spool, cfg.Filter.SpoolMemoryLimit)
		defer sp.Cleanup()
		warnTerminalInput(cmd)
		if err := decodeLines(cmd.InOrStdin(), sp, cfg.Filter.MaxLineBytes); err != nil {
			return err
		}
		r, err := sp.Reader()
		if err != nil {
			return err
		}
		stdin = r
	}

	return runCommand(cmd, exe, decoded, stdin)
}

func applyColorMode(mode string) {
	switch mode {
	case config.ColorAlways:
		color.NoColor = false
	case config.ColorNever:
		color.NoColor = true
	}
}

// warnTerminalInput nudges interactive users who pointed --filter at a
// terminal and are now staring at a silent prompt.
func warnTerminalInput(cmd *cobra.Command) {
	f, ok := cmd.InOrStdin().(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return
	}
	fmt.Fprintln(cmd.ErrOrStderr(), "pdexec: reading standard input from the terminal; Ctrl-D ends input")
}
