package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/hostbridge/transcoder"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", errorText(err))
		os.Exit(1)
	}
}

func run(args []string) error {
	var opts options
	var interactive, verbose bool

	flagSet := pflag.NewFlagSet("hostconv", pflag.ContinueOnError)
	flagSet.StringVarP(&opts.from, "from", "f", formatPy, "input format (py, json, yaml, cbor)")
	flagSet.StringVarP(&opts.to, "to", "t", formatJSON, "output format (py, json, yaml, cbor)")
	flagSet.BoolVar(&opts.tuplesAsLists, "tuples-as-lists", false, "build lists instead of tuples")
	flagSet.BoolVar(&opts.compact, "compact", false, "write JSON without indentation")
	flagSet.BoolVar(&opts.classify, "classify", false, "print the object kind tree before the output")
	flagSet.BoolVarP(&interactive, "interactive", "i", false, "interactive mode with TUI")
	flagSet.BoolVarP(&verbose, "verbose", "v", false, "log conversion details to stderr")
	flagSet.Usage = func() { printHelp(flagSet) }

	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}

	logger := zap.NewNop()
	if verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("create logger: %w", err)
		}
		logger = l
	}
	defer func() { _ = logger.Sync() }()
	transcoder.SetLogger(logger.Named("transcoder"))

	if err := opts.validate(); err != nil {
		return err
	}

	if interactive {
		return runInteractive(opts)
	}

	rest := flagSet.Args()
	if len(rest) > 1 {
		return fmt.Errorf("unexpected argument: %s", rest[1])
	}

	var input []byte
	var err error
	switch {
	case len(rest) == 1 && rest[0] != "-":
		input, err = os.ReadFile(rest[0])
	case term.IsTerminal(int(os.Stdin.Fd())):
		printHelp(flagSet)
		return fmt.Errorf("no input: pass a file or pipe a document on stdin")
	default:
		input, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	opts.terminal = term.IsTerminal(int(os.Stdout.Fd()))
	logger.Debug("converting",
		zap.String("from", opts.from),
		zap.String("to", opts.to),
		zap.Int("bytes", len(input)),
	)

	out, err := convert(opts, input)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(out)
	return err
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `hostconv converts documents through the host object model.

The input is parsed into host objects, then rendered in the output format.
Host literals use the py format: None, True, ints, floats, 'str', b'bytes',
[lists], (tuples), {dicts}, {sets} and frozenset(...).

Usage:
  hostconv [flags] [file]

Examples:
  echo "{'a': (1, 2)}" | hostconv -t yaml
  hostconv -f json -t py --tuples-as-lists config.jsonc
  hostconv -i

Flags:
%s`, flagSet.FlagUsages())
}
