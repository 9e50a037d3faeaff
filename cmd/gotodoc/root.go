package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/gotodoc/internal/app"
	"github.com/dshills/gotodoc/internal/config"
)

var (
	configPath string
	logLevel   string
	panelMode  string
	browserCmd string
	pydocCmd   string
	workDir    string
)

var rootCmd = &cobra.Command{
	Use:   "gotodoc",
	Short: "Open documentation for the word under the cursor",
	Long: `gotodoc maps a word and its syntax scope to a documentation source:
a web page opened in the browser, or a local help command whose output is
shown in a pager.

Editors call "gotodoc lookup" once per request, or keep "gotodoc serve"
running and talk to it over stdin/stdout.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate("gotodoc {{.Version}}\n")

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configPath, "config", "c", "", "config file (default $XDG_CONFIG_HOME/gotodoc/config.toml)")
	pf.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error or off")
	pf.StringVar(&panelMode, "panel", "", "output panel: auto, terminal or plain")
	pf.StringVar(&browserCmd, "browser", "", "browser command; {url} is replaced by the page")
	pf.StringVar(&pydocCmd, "pydoc", "", "command run for Python words")
	pf.StringVar(&workDir, "workdir", "", "working directory for documentation commands")
}

// overrides collects the flags that were set into the command-line layer.
func overrides(cmd *cobra.Command) map[string]any {
	flags := map[string]struct {
		path  string
		value any
	}{
		"log-level": {"logging.level", logLevel},
		"panel":     {"panel.mode", panelMode},
		"browser":   {"browser.command", strings.Fields(browserCmd)},
		"pydoc":     {"lookup.pydoc", strings.Fields(pydocCmd)},
		"workdir":   {"lookup.workDir", workDir},
	}

	out := make(map[string]any)
	for name, f := range flags {
		if cmd.Flags().Changed(name) {
			out[f.path] = f.value
		}
	}
	return out
}

func loadOptions(cmd *cobra.Command) config.Options {
	return config.Options{
		Path:      configPath,
		Overrides: overrides(cmd),
	}
}

// newLogger builds the stderr logger for the configured level.
func newLogger(level string) *app.Logger {
	lvl, ok := app.ParseLogLevel(level)
	logger := app.NewLogger(app.LoggerConfig{Level: lvl, Output: os.Stderr, Prefix: "gotodoc"})
	if !ok {
		logger.Warn("unknown log level %q, using info", level)
	}
	return logger
}

// newApp loads the configuration and creates the application. mutate may
// adjust the options before the application is built.
func newApp(cmd *cobra.Command, mutate func(*app.Options)) (*app.Application, *config.Result, error) {
	res, err := config.Load(loadOptions(cmd))
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	logger := newLogger(res.Config.Logging.Level)
	if res.Path != "" {
		logger.Debug("config %s", res.Path)
	}
	if res.Warnings != nil {
		logger.WithComponent("config").Warn("%v", res.Warnings)
	}

	opts := app.Options{
		Config: res.Config,
		Logger: logger,
		Status: app.NewWriterStatus(os.Stderr),
	}
	if mutate != nil {
		mutate(&opts)
	}

	a, err := app.New(opts)
	if err != nil {
		return nil, nil, err
	}
	return a, res, nil
}
