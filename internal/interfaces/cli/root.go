// Package cli implements the fathom-mcp command line.
package cli

import (
	"encoding/json"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	exportapp "github.com/felixgeelhaar/fathom-mcp/internal/application/export"
	"github.com/felixgeelhaar/fathom-mcp/internal/infrastructure/config"
	mcpiface "github.com/felixgeelhaar/fathom-mcp/internal/interfaces/mcp"
)

// Dependencies holds everything the commands need. It is built once by
// the composition root.
type Dependencies struct {
	Config          config.Config
	MCPServer       *mcpiface.Server
	ExportRecording *exportapp.ExportRecording
	Gatherer        prometheus.Gatherer
	Logger          *zap.Logger
	Out             io.Writer
}

var flagFormat string

// NewRootCmd assembles the command tree.
func NewRootCmd(deps *Dependencies) *cobra.Command {
	root := &cobra.Command{
		Use:           "fathom-mcp",
		Short:         "MCP server for Fathom meeting recordings",
		Long:          "fathom-mcp exposes Fathom meetings, summaries and transcripts as MCP tools.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flagFormat, "format", "table", "Output format: table or json")

	root.AddCommand(
		newServeCmd(deps),
		newMeetingsCmd(deps),
		newSummaryCmd(deps),
		newTranscriptCmd(deps),
		newCallCmd(deps),
		newExportCmd(deps),
		newVersionCmd(),
	)

	return root
}

// requireConfig fails the command before it touches the network when the
// configuration is unusable.
func requireConfig(deps *Dependencies) func(*cobra.Command, []string) error {
	return func(*cobra.Command, []string) error {
		return deps.Config.Validate()
	}
}

func printJSON(deps *Dependencies, v interface{}) error {
	enc := json.NewEncoder(deps.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
