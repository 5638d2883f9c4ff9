package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	exportapp "github.com/felixgeelhaar/fathom-mcp/internal/application/export"
	domain "github.com/felixgeelhaar/fathom-mcp/internal/domain/meeting"
)

func newExportCmd(deps *Dependencies) *cobra.Command {
	var as string

	cmd := &cobra.Command{
		Use:     "export <recording-id>",
		Short:   "Export a recording's summary and transcript as one document",
		Args:    cobra.ExactArgs(1),
		PreRunE: requireConfig(deps),
		RunE: func(cmd *cobra.Command, args []string) error {
			if deps.ExportRecording == nil {
				return fmt.Errorf("export functionality not configured")
			}
			id, err := parseRecordingID(args[0])
			if err != nil {
				return err
			}

			// --format json overrides --as.
			format := exportapp.Format(as)
			if flagFormat == "json" {
				format = exportapp.FormatJSON
			}

			out, err := deps.ExportRecording.Execute(cmd.Context(), exportapp.ExportRecordingInput{
				RecordingID: domain.RecordingID(id),
				Format:      format,
			})
			if err != nil {
				return fmt.Errorf("export failed: %w", err)
			}

			_, err = fmt.Fprintln(deps.Out, out.Content)
			return err
		},
	}

	cmd.Flags().StringVar(&as, "as", string(exportapp.FormatMarkdown), "Document format: md, txt or json")
	return cmd
}
