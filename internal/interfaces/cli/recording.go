package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	domain "github.com/felixgeelhaar/fathom-mcp/internal/domain/meeting"
	mcpiface "github.com/felixgeelhaar/fathom-mcp/internal/interfaces/mcp"
)

func newSummaryCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:     "summary <recording-id>",
		Short:   "Print the AI summary of a recording",
		Args:    cobra.ExactArgs(1),
		PreRunE: requireConfig(deps),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseRecordingID(args[0])
			if err != nil {
				return err
			}

			out, err := deps.MCPServer.HandleGetSummary(cmd.Context(), mcpiface.GetSummaryToolInput{RecordingID: &id})
			if err != nil {
				return fmt.Errorf("failed to get summary: %w", err)
			}

			if flagFormat == "json" {
				return printJSON(deps, out)
			}
			if out.TemplateName != "" {
				_, _ = fmt.Fprintf(deps.Out, "# %s\n\n", out.TemplateName)
			}
			_, err = fmt.Fprintln(deps.Out, out.MarkdownFormatted)
			return err
		},
	}
}

func newTranscriptCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:     "transcript <recording-id>",
		Short:   "Print the transcript of a recording",
		Args:    cobra.ExactArgs(1),
		PreRunE: requireConfig(deps),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseRecordingID(args[0])
			if err != nil {
				return err
			}

			out, err := deps.MCPServer.HandleGetTranscript(cmd.Context(), mcpiface.GetTranscriptToolInput{RecordingID: &id})
			if err != nil {
				return fmt.Errorf("failed to get transcript: %w", err)
			}

			if flagFormat == "json" {
				return printJSON(deps, out)
			}
			for _, seg := range out.Transcript {
				_, _ = fmt.Fprintf(deps.Out, "[%s] %s: %s\n", seg.Timestamp, seg.Speaker.DisplayName, seg.Text)
			}
			return nil
		},
	}
}

func parseRecordingID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, domain.NewValidationError("recording_id", "must be a positive integer")
	}
	return id, nil
}
