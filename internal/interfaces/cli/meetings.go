package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	mcpiface "github.com/felixgeelhaar/fathom-mcp/internal/interfaces/mcp"
)

func newMeetingsCmd(deps *Dependencies) *cobra.Command {
	var (
		limit          int
		search         string
		cursor         string
		createdAfter   string
		createdBefore  string
		domainsType    string
		input          mcpiface.ListMeetingsToolInput
		recordedBy     []string
		teams          []string
		inviteeDomains []string
	)

	cmd := &cobra.Command{
		Use:     "meetings",
		Short:   "List meetings",
		Args:    cobra.NoArgs,
		PreRunE: requireConfig(deps),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if flags.Changed("limit") {
				input.Limit = &limit
			}
			input.Search = changedString(cmd, "search", search)
			input.Cursor = changedString(cmd, "cursor", cursor)
			input.CreatedAfter = changedString(cmd, "created-after", createdAfter)
			input.CreatedBefore = changedString(cmd, "created-before", createdBefore)
			input.CalendarInviteesDomainsType = changedString(cmd, "domains-type", domainsType)
			input.RecordedBy = recordedBy
			input.Teams = teams
			input.InviteeDomains = inviteeDomains

			out, err := deps.MCPServer.HandleListMeetings(cmd.Context(), input)
			if err != nil {
				return fmt.Errorf("failed to list meetings: %w", err)
			}

			switch flagFormat {
			case "json":
				return printJSON(deps, out)
			default:
				return printMeetingsTable(deps, out)
			}
		},
	}

	f := cmd.Flags()
	f.IntVar(&limit, "limit", 0, "Max results (1-50)")
	f.StringVar(&search, "search", "", "Match titles and attendee names or emails")
	f.StringVar(&cursor, "cursor", "", "Pagination cursor from a previous call")
	f.StringVar(&createdAfter, "created-after", "", "RFC 3339 lower bound on creation time")
	f.StringVar(&createdBefore, "created-before", "", "RFC 3339 upper bound on creation time")
	f.BoolVar(&input.IncludeSummary, "include-summary", false, "Include the AI summary")
	f.BoolVar(&input.IncludeTranscript, "include-transcript", false, "Include the transcript")
	f.BoolVar(&input.IncludeActionItems, "include-action-items", false, "Include action items")
	f.StringArrayVar(&recordedBy, "recorded-by", nil, "Recorder email (repeatable)")
	f.StringArrayVar(&teams, "team", nil, "Team name (repeatable)")
	f.StringVar(&domainsType, "domains-type", "", "Invitee type: all, only_internal or one_or_more_external")
	f.StringArrayVar(&inviteeDomains, "invitee-domain", nil, "Invitee email domain (repeatable)")

	return cmd
}

// changedString returns nil unless the flag was given, so an explicit empty
// value still reaches validation.
func changedString(cmd *cobra.Command, name, value string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &value
}

func printMeetingsTable(deps *Dependencies, out *mcpiface.ListMeetingsResult) error {
	w := tabwriter.NewWriter(deps.Out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "RECORDING ID\tTITLE\tCREATED\tRECORDED BY")
	for _, m := range out.Meetings {
		recorder := ""
		if m.RecordedBy != nil {
			recorder = m.RecordedBy.Email
		}
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", m.RecordingID, m.Title, m.CreatedAt, recorder)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if out.NextCursor != nil {
		_, _ = fmt.Fprintf(deps.Out, "\nnext cursor: %s\n", *out.NextCursor)
	}
	return nil
}
