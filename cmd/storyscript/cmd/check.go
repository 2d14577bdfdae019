package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/spf13/cobra"

	"github.com/metaphox/storyscript/ast"
	"github.com/metaphox/storyscript/lexer"
	"github.com/metaphox/storyscript/parser"
)

// checkResult is the outcome of parsing one file.
type checkResult struct {
	path string
	prog *ast.Program
	errs parser.ErrorList
	err  error // read failure
}

func (r checkResult) failed() bool { return r.err != nil || len(r.errs) > 0 }

func (a *app) newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>...",
		Short: "Parse files and print a summary per file",
		Long: `Parse every file and print one summary line per file followed by its
diagnostics. Files are parsed concurrently; the summary keeps argument order.
Exits with status 1 when any file failed.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results := a.checkAll(args)
			st := newStyles(cmd.OutOrStdout(), a.cfg.Output.Color)
			if failed := printSummary(cmd.OutOrStdout(), st, results); failed > 0 {
				return errReported
			}
			return nil
		},
	}
}

// checkAll parses paths with a bounded pool of workers. Each worker owns its
// lexer and parser; results land at the index of their path.
func (a *app) checkAll(paths []string) []checkResult {
	results := make([]checkResult, len(paths))
	jobs := make(chan int)

	workers := min(a.cfg.Check.Workers, len(paths))
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = a.checkFile(paths[i])
			}
		}()
	}

	for i := range paths {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}

func (a *app) checkFile(path string) checkResult {
	src, err := readSource(path)
	if err != nil {
		a.logger.Warn("check skipped file", slog.String("file", path), slog.Any("error", err))
		return checkResult{path: path, err: err}
	}

	p := parser.New(lexer.New(src, path),
		parser.WithDiagnostics(io.Discard),
		parser.WithLogger(a.logger.With(slog.String("file", path))))
	prog := p.Parse()

	a.logger.Debug("checked", slog.String("file", path), slog.Int("errors", len(p.Errors())))
	return checkResult{path: path, prog: prog, errs: p.Errors()}
}

// printSummary writes one line per result and a closing total. It returns
// the number of failed files.
func printSummary(w io.Writer, st styles, results []checkResult) int {
	failed := 0
	for _, r := range results {
		switch {
		case r.err != nil:
			fmt.Fprintf(w, "%s %s  %s\n", st.fail.Render("✗"), st.file.Render(r.path), st.muted.Render(r.err.Error()))
		case len(r.errs) > 0:
			fmt.Fprintf(w, "%s %s  %s\n", st.fail.Render("✗"), st.file.Render(r.path),
				st.fail.Render(plural(len(r.errs), "error")))
			for _, d := range r.errs {
				fmt.Fprintf(w, "    %s\n", st.muted.Render(d.Error()))
			}
		default:
			fmt.Fprintf(w, "%s %s  %s\n", st.ok.Render("✓"), st.file.Render(r.path),
				st.muted.Render(fmt.Sprintf("%s, %s, %s",
					plural(len(r.prog.Rooms), "room"),
					plural(len(r.prog.Functions), "function"),
					plural(len(r.prog.Statements), "statement"))))
		}
		if r.failed() {
			failed++
		}
	}

	total := fmt.Sprintf("%s checked, %d failed", plural(len(results), "file"), failed)
	if failed > 0 {
		fmt.Fprintln(w, st.fail.Render(total))
	} else {
		fmt.Fprintln(w, st.title.Render(total))
	}
	return failed
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
