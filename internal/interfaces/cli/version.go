package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// These are set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

type versionInfo struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	Go      string `json:"go"`
}

// version never needs credentials, so it takes no Dependencies.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			info := versionInfo{Version: Version, Commit: Commit, Date: Date, Go: runtime.Version()}
			if flagFormat == "json" {
				return printJSON(&Dependencies{Out: cmd.OutOrStdout()}, info)
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "fathom-mcp %s (commit: %s, built: %s, %s)\n",
				info.Version, info.Commit, info.Date, info.Go)
			return err
		},
	}
}
