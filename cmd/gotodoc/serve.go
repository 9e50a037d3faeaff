package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/gotodoc/internal/app"
	"github.com/dshills/gotodoc/internal/renderer/panel"
)

var serveWatch bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Answer lookup requests on stdin as JSON lines",
	Long: `Read one JSON request per line from stdin and write one JSON response
per line to stdout. Command output is returned in the response.

Requests:
  {"id":1,"word":"ajax","scope":"source.js","preceding":"$."}
  {"id":2,"file":"/src/app.py","offset":120}
  {"id":3,"file":"/src/app.py","offset":120,"text":"<unsaved buffer>"}
  {"id":4,"word":"strlen","scope":"source.php","dryRun":true}
  {"id":5,"cmd":"scopes"}
  {"id":6,"cmd":"stats"}`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&serveWatch, "watch", true, "reload the config file when it changes")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	// stdout carries responses, so nothing else may draw on it.
	a, _, err := newApp(cmd, func(o *app.Options) {
		o.NewPanel = func() (panel.Panel, error) {
			return panel.NewWriter(panel.DefaultName, os.Stderr), nil
		}
	})
	if err != nil {
		return err
	}
	defer a.Close()

	if serveWatch {
		w, err := a.WatchConfig(loadOptions(cmd))
		if err != nil {
			a.Logger().Warn("config reload disabled: %v", err)
		} else {
			defer w.Stop()
		}
	}

	ctx := cmd.Context()
	go func() {
		_ = a.Loop().Run(ctx)
	}()

	return app.NewServer(a, cmd.OutOrStdout()).Serve(ctx, cmd.InOrStdin())
}
