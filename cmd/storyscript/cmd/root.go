// Package cmd implements the storyscript command tree.
package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/metaphox/storyscript/internal/config"
	"github.com/metaphox/storyscript/internal/logging"
	"github.com/metaphox/storyscript/lexer"
	"github.com/metaphox/storyscript/parser"
)

// errReported is returned when the failure has already been printed, as
// parse diagnostics or a failed summary line. Execute exits 1 without
// printing it again.
var errReported = errors.New("errors reported")

// app carries flag values and what setup derives from them.
type app struct {
	cfgFile  string
	logLevel string
	noColor  bool

	cfg    *config.Config
	logger *slog.Logger
}

// NewRootCmd builds a fresh command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "storyscript <file>",
		Short: "StoryScript lexer and parser",
		Long: `storyscript scans and parses StoryScript files, the language used
to describe rooms, items and events of interactive-fiction worlds.

Run with a single file to print its tokens and parse it. The subcommands
dump tokens or syntax trees and check many files at once.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				fmt.Fprint(cmd.ErrOrStderr(), cmd.UsageString())
				return errReported
			}
			return a.runDefault(cmd, args[0])
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default: $STORYSCRIPT_CONFIG or ./storyscript.toml)")
	pf.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.BoolVar(&a.noColor, "no-color", false, "disable colored output")

	root.AddCommand(
		a.newTokensCmd(),
		a.newParseCmd(),
		a.newCheckCmd(),
		newVersionCmd(),
	)
	return root
}

// Execute runs the command tree on os.Args.
func Execute() error {
	err := NewRootCmd().Execute()
	if err != nil && !errors.Is(err, errReported) {
		printError(err)
	}
	return err
}

// setup loads the configuration, applies flag overrides and builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	var err error
	if a.cfgFile != "" {
		a.cfg, err = config.Load(a.cfgFile)
	} else {
		a.cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("log-level") {
		a.cfg.Log.Level = a.logLevel
	}
	if a.noColor {
		a.cfg.Output.Color = false
	}

	a.logger, err = logging.New(cmd.ErrOrStderr(), logging.Options{
		Level:  a.cfg.Log.Level,
		Format: a.cfg.Log.Format,
		NoTime: !a.cfg.Log.Time,
	})
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	a.logger.Debug("configuration loaded",
		slog.String("command", cmd.Name()),
		slog.String("log_level", a.cfg.Log.Level),
		slog.Bool("color", a.cfg.Output.Color))
	return nil
}

// runDefault dumps the tokens of path, then parses it with a fresh lexer.
func (a *app) runDefault(cmd *cobra.Command, path string) error {
	src, err := readSource(path)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "===== Tokens =====")
	for _, tok := range lexer.New(src, path).Tokenize() {
		fmt.Fprintln(out, tok)
	}

	fmt.Fprintln(out, "\n===== Parsing =====")
	p := parser.New(lexer.New(src, path),
		parser.WithDiagnostics(cmd.ErrOrStderr()),
		parser.WithLogger(a.logger.With(slog.String("file", path))))
	p.Parse()

	if p.HadError() {
		fmt.Fprintln(out, "Parsing failed with errors.")
		return errReported
	}
	fmt.Fprintln(out, "Parsing completed successfully!")
	return nil
}

func readSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("could not open file: %w", err)
	}
	return string(data), nil
}

func printError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}
