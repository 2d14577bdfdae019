package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/metaphox/storyscript/ast"
	"github.com/metaphox/storyscript/lexer"
	"github.com/metaphox/storyscript/parser"
)

func (a *app) newParseCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a file and print its syntax tree",
		Long: `Parse a file and print its syntax tree as an indented outline (text),
JSON or YAML. The tree is printed even when errors were reported.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if format == "" {
				format = a.cfg.Output.Format
			}
			src, err := readSource(path)
			if err != nil {
				return err
			}

			p := parser.New(lexer.New(src, path),
				parser.WithDiagnostics(cmd.ErrOrStderr()),
				parser.WithLogger(a.logger.With(slog.String("file", path))))
			prog := p.Parse()

			out := cmd.OutOrStdout()
			switch format {
			case "text":
				ast.Fprint(out, prog)
			case "json":
				err = ast.FprintJSON(out, prog)
			case "yaml":
				err = ast.FprintYAML(out, prog)
			default:
				return fmt.Errorf("unknown format %q (want text, json or yaml)", format)
			}
			if err != nil {
				return fmt.Errorf("write %s tree: %w", format, err)
			}

			a.logger.Info("parsed",
				slog.String("file", path),
				slog.Int("rooms", len(prog.Rooms)),
				slog.Int("functions", len(prog.Functions)),
				slog.Int("statements", len(prog.Statements)),
				slog.Int("errors", len(p.Errors())))
			if p.HadError() {
				return errReported
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: text, json or yaml (default from config)")
	return cmd
}
