package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"

	"github.com/dshills/gotodoc/internal/app"
)

var scopesJSON bool

var scopesCmd = &cobra.Command{
	Use:   "scopes",
	Short: "List the keys that have a documentation source",
	Args:  cobra.NoArgs,
	RunE:  runScopes,
}

func init() {
	scopesCmd.Flags().BoolVar(&scopesJSON, "json", false, "print as JSON")
	rootCmd.AddCommand(scopesCmd)
}

func runScopes(cmd *cobra.Command, _ []string) error {
	a, _, err := newApp(cmd, nil)
	if err != nil {
		return err
	}
	defer a.Close()

	infos := a.Scopes()
	out := cmd.OutOrStdout()
	if scopesJSON {
		fmt.Fprint(out, string(pretty.Pretty([]byte(app.ScopesJSON(infos)))))
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tSOURCE\tACTION")
	for _, info := range infos {
		source := info.Source
		if info.Origin != "" {
			source += " (" + info.Origin + ")"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", info.Key, source, info.Description)
	}
	return tw.Flush()
}
