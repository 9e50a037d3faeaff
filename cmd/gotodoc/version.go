package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/dshills/gotodoc/internal/syntax"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "gotodoc %s\n", version)
		fmt.Fprintf(out, "  commit:  %s\n", commit)
		fmt.Fprintf(out, "  built:   %s\n", date)
		fmt.Fprintf(out, "  go:      %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
		fmt.Fprintf(out, "  parsing: %t\n", syntax.Parsed)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
