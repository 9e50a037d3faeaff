package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"github.com/dshills/gotodoc/internal/app"
	"github.com/dshills/gotodoc/internal/dispatcher/execctx"
	"github.com/dshills/gotodoc/internal/dispatcher/handler"
	"github.com/dshills/gotodoc/internal/engine/buffer"
)

var (
	lookupScope     string
	lookupPreceding string
	lookupFile      string
	lookupStdin     bool
	lookupOffsets   []int
	lookupLine      int
	lookupCol       int
	lookupDryRun    bool
	lookupJSON      bool
)

var lookupCmd = &cobra.Command{
	Use:   "lookup [word]",
	Short: "Open documentation for a word",
	Long: `Look up documentation for a word in a syntax scope, or for the words
at one or more positions in a file.

The scope is an editor scope label; its last dot-separated segment picks
the documentation source. In "source.js" scopes the text before the word
is checked for jQuery and Dojo calls.

Examples:
  gotodoc lookup --scope source.php strlen
  gotodoc lookup --scope source.js --preceding '$.' ajax
  gotodoc lookup --file app.py --offset 120 --offset 310
  gotodoc lookup --file index.html --line 12 --col 8
  cat unsaved.js | gotodoc lookup --file unsaved.js --stdin --offset 40 --dry-run`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLookup,
}

func init() {
	f := lookupCmd.Flags()
	f.StringVarP(&lookupScope, "scope", "s", "", "scope label of the word")
	f.StringVar(&lookupPreceding, "preceding", "", "text immediately before the word")
	f.StringVarP(&lookupFile, "file", "f", "", "file to find words in")
	f.BoolVar(&lookupStdin, "stdin", false, "read the file contents from stdin")
	f.IntSliceVarP(&lookupOffsets, "offset", "o", nil, "byte offset in --file (repeatable)")
	f.IntVar(&lookupLine, "line", 0, "1-based line in --file")
	f.IntVar(&lookupCol, "col", 1, "1-based byte column in --file")
	f.BoolVarP(&lookupDryRun, "dry-run", "n", false, "print the action instead of performing it")
	f.BoolVar(&lookupJSON, "json", false, "print actions as JSON")
	rootCmd.AddCommand(lookupCmd)
}

// request is one word to look up.
type request struct {
	token     string
	label     string
	preceding execctx.StringSource
	word      *buffer.Word
}

func runLookup(cmd *cobra.Command, args []string) error {
	a, _, err := newApp(cmd, nil)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	reqs, err := lookupRequests(ctx, a, args)
	if err != nil {
		return err
	}
	if len(reqs) == 0 {
		return app.ErrEmptyToken
	}

	out := cmd.OutOrStdout()
	if lookupDryRun {
		for _, r := range reqs {
			printAction(out, r.lookup(a))
		}
		return nil
	}

	loop := a.Loop()
	errc := make(chan error, 1)
	go func() {
		defer loop.Stop()
		for _, r := range reqs {
			action, err := r.invoke(ctx, a)
			if err != nil {
				errc <- err
				return
			}
			if lookupJSON {
				printAction(out, action)
			}
		}
		a.Wait()
		errc <- nil
	}()

	if err := loop.Run(ctx); err != nil {
		return err
	}
	return <-errc
}

func (r request) lookup(a *app.Application) handler.DocAction {
	if r.word != nil {
		return a.Lookup(r.token, r.label, *r.word)
	}
	return a.Lookup(r.token, r.label, r.preceding)
}

func (r request) invoke(ctx context.Context, a *app.Application) (handler.DocAction, error) {
	if r.word != nil {
		return a.Invoke(ctx, r.token, r.label, *r.word)
	}
	return a.Invoke(ctx, r.token, r.label, r.preceding)
}

func lookupRequests(ctx context.Context, a *app.Application, args []string) ([]request, error) {
	if lookupFile == "" {
		if len(args) == 0 {
			return nil, app.ErrEmptyToken
		}
		if lookupScope == "" {
			return nil, fmt.Errorf("--scope is required when looking up a word")
		}
		return []request{{token: args[0], label: lookupScope, preceding: execctx.StringSource(lookupPreceding)}}, nil
	}
	if len(args) > 0 {
		return nil, fmt.Errorf("give either a word or --file, not both")
	}

	var (
		src []byte
		err error
	)
	if lookupStdin {
		src, err = io.ReadAll(os.Stdin)
	} else {
		src, err = os.ReadFile(lookupFile)
	}
	if err != nil {
		return nil, err
	}

	offsets := append([]int(nil), lookupOffsets...)
	if lookupLine > 0 {
		buf := buffer.NewBufferFromString(string(src))
		p := buffer.Point{Line: uint32(lookupLine - 1), Column: uint32(max(lookupCol-1, 0))}
		offsets = append(offsets, int(buf.PointToOffset(p)))
	}
	if len(offsets) == 0 {
		return nil, fmt.Errorf("--file needs --offset or --line")
	}

	targets, err := a.Targets(ctx, lookupFile, src, offsets...)
	if err != nil {
		return nil, err
	}
	reqs := make([]request, 0, len(targets))
	for i := range targets {
		t := targets[i]
		reqs = append(reqs, request{token: t.Word.Text, label: t.Label, word: &t.Word})
	}
	return reqs, nil
}

func printAction(w io.Writer, action handler.DocAction) {
	if !lookupJSON {
		fmt.Fprintln(w, action)
		return
	}
	fmt.Fprint(w, string(pretty.Pretty([]byte(actionJSON(action)))))
}

func actionJSON(action handler.DocAction) string {
	js := `{}`
	js, _ = sjson.Set(js, "action", action.Kind.String())
	js, _ = sjson.Set(js, "key", action.Key)
	switch action.Kind {
	case handler.KindOpenURL:
		js, _ = sjson.Set(js, "url", action.URL)
	case handler.KindRunCommand:
		js, _ = sjson.Set(js, "command", action.Command)
	default:
		js, _ = sjson.Set(js, "message", action.Message)
	}
	return js
}
