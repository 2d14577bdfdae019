package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/metaphox/storyscript/ast"
	"github.com/metaphox/storyscript/lexer"
)

func (a *app) newTokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <file>",
		Short: "Print the token stream of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			src, err := readSource(path)
			if err != nil {
				return err
			}

			l := lexer.New(src, path, lexer.WithDiagnostics(cmd.ErrOrStderr()))
			tokens := l.Tokenize()

			unknown := 0
			for _, tok := range tokens {
				fmt.Fprintln(cmd.OutOrStdout(), tok)
				if tok.Type == ast.UNKNOWN {
					l.ErrorAt(tok.Location(path), tok.Lexeme)
					unknown++
				}
			}

			a.logger.Info("tokenized",
				slog.String("file", path),
				slog.Int("tokens", len(tokens)),
				slog.Int("unknown", unknown))
			if unknown > 0 {
				return errReported
			}
			return nil
		},
	}
}
