// Package mcp implements the MCP server interface layer.
// It translates between MCP tool calls and the meeting use cases,
// following the Ports & Adapters pattern.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	mcpfw "github.com/felixgeelhaar/mcp-go"

	meetingapp "github.com/felixgeelhaar/fathom-mcp/internal/application/meeting"
	domain "github.com/felixgeelhaar/fathom-mcp/internal/domain/meeting"
)

// Tool names exposed to the assistant.
const (
	ToolListMeetings  = "list_meetings"
	ToolGetSummary    = "get_summary"
	ToolGetTranscript = "get_transcript"
)

// ServerOptions groups all use cases passed to NewServer.
type ServerOptions struct {
	ListMeetings  *meetingapp.ListMeetings
	GetSummary    *meetingapp.GetSummary
	GetTranscript *meetingapp.GetTranscript
}

// Server wraps the mcp-go server and exposes Fathom recordings as MCP tools.
type Server struct {
	inner *mcpfw.Server

	listMeetings  *meetingapp.ListMeetings
	getSummary    *meetingapp.GetSummary
	getTranscript *meetingapp.GetTranscript

	name    string
	version string
}

// NewServer creates a new MCP server wired to application use cases.
func NewServer(name, version string, opts ServerOptions) *Server {
	s := &Server{
		name:          name,
		version:       version,
		listMeetings:  opts.ListMeetings,
		getSummary:    opts.GetSummary,
		getTranscript: opts.GetTranscript,
	}

	srv := mcpfw.NewServer(mcpfw.ServerInfo{
		Name:    name,
		Version: version,
	})

	s.registerTools(srv)

	s.inner = srv
	return s
}

func (s *Server) Name() string    { return s.name }
func (s *Server) Version() string { return s.version }

// Inner returns the underlying mcp-go server for transport integration.
func (s *Server) Inner() *mcpfw.Server { return s.inner }

// ServeStdio starts the MCP server on stdio transport.
func (s *Server) ServeStdio(ctx context.Context) error {
	return mcpfw.ServeStdio(ctx, s.inner)
}

// ServeHTTP runs the side listener used for health checks and metrics.
// extraRoutes allows mounting additional HTTP handlers.
func (s *Server) ServeHTTP(ctx context.Context, addr string, extraRoutes func(mux *http.ServeMux)) error {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"status":  "ok",
			"server":  s.name,
			"version": s.version,
		})
	})

	if extraRoutes != nil {
		extraRoutes(mux)
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// --- Tool registration ---

func (s *Server) registerTools(srv *mcpfw.Server) {
	srv.Tool(ToolListMeetings).
		Description("List Fathom meetings with optional filtering by date, recorder, team or invitee domain. " +
			"Use the recording_id from the results with get_summary or get_transcript.").
		Handler(s.HandleListMeetings)

	srv.Tool(ToolGetSummary).
		Description("Get the AI-generated markdown summary for a meeting recording (recording_id from list_meetings).").
		Handler(s.HandleGetSummary)

	srv.Tool(ToolGetTranscript).
		Description("Get the full transcript for a meeting recording with speaker attribution and timestamps.").
		Handler(s.HandleGetTranscript)
}

// --- Tool Input Types ---

type ListMeetingsToolInput struct {
	Limit                       *int     `json:"limit,omitempty" jsonschema:"description=Maximum number of meetings to return (1-50)"`
	Search                      *string  `json:"search,omitempty" jsonschema:"description=Smart search over titles and attendee names and emails (e.g. Acme finds acme.com)"`
	Cursor                      *string  `json:"cursor,omitempty" jsonschema:"description=Pagination cursor from a previous response"`
	CreatedAfter                *string  `json:"created_after,omitempty" jsonschema:"description=Only meetings created after this ISO timestamp (e.g. 2025-01-01T00:00:00Z)"`
	CreatedBefore               *string  `json:"created_before,omitempty" jsonschema:"description=Only meetings created before this ISO timestamp (e.g. 2025-12-31T23:59:59Z)"`
	IncludeSummary              bool     `json:"include_summary,omitempty" jsonschema:"description=Include the AI-generated summary"`
	IncludeTranscript           bool     `json:"include_transcript,omitempty" jsonschema:"description=Include the full transcript"`
	IncludeActionItems          bool     `json:"include_action_items,omitempty" jsonschema:"description=Include action items"`
	RecordedBy                  []string `json:"recorded_by,omitempty" jsonschema:"description=Email addresses of users who recorded the meetings"`
	Teams                       []string `json:"teams,omitempty" jsonschema:"description=Team names"`
	CalendarInviteesDomainsType *string  `json:"calendar_invitees_domains_type,omitempty" jsonschema:"description=Invitee type: all or only_internal or one_or_more_external"`
	InviteeDomains              []string `json:"invitee_domains,omitempty" jsonschema:"description=Invitee email domains (e.g. acme.com)"`
}

type GetSummaryToolInput struct {
	RecordingID *int64 `json:"recording_id" jsonschema:"required,description=The recording ID of the meeting (from list_meetings)"`
}

type GetTranscriptToolInput struct {
	RecordingID *int64 `json:"recording_id" jsonschema:"required,description=The recording ID of the meeting (from list_meetings)"`
}

// --- Tool Output Types ---

type ListMeetingsResult struct {
	Meetings   []MeetingResult `json:"meetings"`
	Count      int             `json:"count"`
	NextCursor *string         `json:"next_cursor"`
}

type MeetingResult struct {
	Title              string          `json:"title"`
	MeetingTitle       string          `json:"meeting_title"`
	RecordingID        int64           `json:"recording_id"`
	URL                string          `json:"url"`
	ShareURL           string          `json:"share_url"`
	CreatedAt          string          `json:"created_at"`
	ScheduledStartTime string          `json:"scheduled_start_time"`
	ScheduledEndTime   string          `json:"scheduled_end_time"`
	RecordingStartTime string          `json:"recording_start_time"`
	RecordingEndTime   string          `json:"recording_end_time"`
	TranscriptLanguage string          `json:"transcript_language"`
	RecordedBy         *PersonResult   `json:"recorded_by,omitempty"`
	CalendarInvitees   []InviteeResult `json:"calendar_invitees,omitempty"`

	// Present only when requested and provided by upstream.
	Summary     json.RawMessage `json:"summary,omitempty"`
	Transcript  json.RawMessage `json:"transcript,omitempty"`
	ActionItems json.RawMessage `json:"action_items,omitempty"`
}

type PersonResult struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type InviteeResult struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	IsExternal bool   `json:"is_external"`
}

type SummaryResult struct {
	RecordingID       int64  `json:"recording_id"`
	TemplateName      string `json:"template_name"`
	MarkdownFormatted string `json:"markdown_formatted"`
}

type TranscriptResult struct {
	RecordingID  int64           `json:"recording_id"`
	Transcript   []SegmentResult `json:"transcript"`
	SegmentCount int             `json:"segment_count"`
}

type SegmentResult struct {
	Text      string        `json:"text"`
	Timestamp string        `json:"timestamp"`
	Speaker   SpeakerResult `json:"speaker"`
}

type SpeakerResult struct {
	DisplayName string `json:"display_name"`
	Email       string `json:"email,omitempty"`
}

// --- Tool Handlers ---

func (s *Server) HandleListMeetings(ctx context.Context, input ListMeetingsToolInput) (*ListMeetingsResult, error) {
	out, err := s.listMeetings.Execute(ctx, meetingapp.ListMeetingsInput{
		Limit:              input.Limit,
		Search:             input.Search,
		Cursor:             input.Cursor,
		CreatedAfter:       input.CreatedAfter,
		CreatedBefore:      input.CreatedBefore,
		IncludeSummary:     input.IncludeSummary,
		IncludeTranscript:  input.IncludeTranscript,
		IncludeActionItems: input.IncludeActionItems,
		RecordedBy:         input.RecordedBy,
		Teams:              input.Teams,
		DomainsType:        input.CalendarInviteesDomainsType,
		InviteeDomains:     input.InviteeDomains,
	})
	if err != nil {
		return nil, err
	}

	results := make([]MeetingResult, len(out.Meetings))
	for i, m := range out.Meetings {
		results[i] = toMeetingResult(m)
	}
	return &ListMeetingsResult{
		Meetings:   results,
		Count:      len(results),
		NextCursor: out.NextCursor,
	}, nil
}

func (s *Server) HandleGetSummary(ctx context.Context, input GetSummaryToolInput) (*SummaryResult, error) {
	out, err := s.getSummary.Execute(ctx, meetingapp.GetSummaryInput{RecordingID: input.RecordingID})
	if err != nil {
		return nil, err
	}
	return &SummaryResult{
		RecordingID:       int64(out.Summary.RecordingID),
		TemplateName:      out.Summary.TemplateName,
		MarkdownFormatted: out.Summary.Markdown,
	}, nil
}

func (s *Server) HandleGetTranscript(ctx context.Context, input GetTranscriptToolInput) (*TranscriptResult, error) {
	out, err := s.getTranscript.Execute(ctx, meetingapp.GetTranscriptInput{RecordingID: input.RecordingID})
	if err != nil {
		return nil, err
	}

	result := toTranscriptResult(out.Transcript)
	return &result, nil
}

// --- Result to JSON helper ---

func (s *Server) HandleToolJSON(ctx context.Context, tool string, rawInput json.RawMessage) (json.RawMessage, error) {
	switch tool {
	case ToolListMeetings:
		var input ListMeetingsToolInput
		if err := json.Unmarshal(rawInput, &input); err != nil {
			return nil, fmt.Errorf("invalid input: %w", err)
		}
		result, err := s.HandleListMeetings(ctx, input)
		if err != nil {
			return nil, err
		}
		return json.Marshal(result)

	case ToolGetSummary:
		var input GetSummaryToolInput
		if err := json.Unmarshal(rawInput, &input); err != nil {
			return nil, fmt.Errorf("invalid input: %w", err)
		}
		result, err := s.HandleGetSummary(ctx, input)
		if err != nil {
			return nil, err
		}
		return json.Marshal(result)

	case ToolGetTranscript:
		var input GetTranscriptToolInput
		if err := json.Unmarshal(rawInput, &input); err != nil {
			return nil, fmt.Errorf("invalid input: %w", err)
		}
		result, err := s.HandleGetTranscript(ctx, input)
		if err != nil {
			return nil, err
		}
		return json.Marshal(result)

	default:
		return nil, fmt.Errorf("unknown tool: %s", tool)
	}
}

// --- Mappers (interface layer → output DTOs) ---

func toMeetingResult(m domain.Meeting) MeetingResult {
	r := MeetingResult{
		Title:              m.Title,
		MeetingTitle:       m.MeetingTitle,
		RecordingID:        int64(m.RecordingID),
		URL:                m.URL,
		ShareURL:           m.ShareURL,
		CreatedAt:          m.CreatedAt,
		ScheduledStartTime: m.ScheduledStartTime,
		ScheduledEndTime:   m.ScheduledEndTime,
		RecordingStartTime: m.RecordingStartTime,
		RecordingEndTime:   m.RecordingEndTime,
		TranscriptLanguage: m.TranscriptLanguage,
		Summary:            m.DefaultSummary,
		Transcript:         m.Transcript,
		ActionItems:        m.ActionItems,
	}
	if m.RecordedBy != nil {
		r.RecordedBy = &PersonResult{Name: m.RecordedBy.Name, Email: m.RecordedBy.Email}
	}
	if len(m.CalendarInvitees) > 0 {
		r.CalendarInvitees = make([]InviteeResult, len(m.CalendarInvitees))
		for i, inv := range m.CalendarInvitees {
			r.CalendarInvitees[i] = InviteeResult{Name: inv.Name, Email: inv.Email, IsExternal: inv.IsExternal}
		}
	}
	return r
}

func toTranscriptResult(t *domain.Transcript) TranscriptResult {
	segments := make([]SegmentResult, len(t.Utterances))
	for i, u := range t.Utterances {
		segments[i] = SegmentResult{
			Text:      u.Text,
			Timestamp: u.Timestamp,
			Speaker: SpeakerResult{
				DisplayName: u.Speaker.DisplayName,
				Email:       u.Speaker.Email,
			},
		}
	}
	return TranscriptResult{
		RecordingID:  int64(t.RecordingID),
		Transcript:   segments,
		SegmentCount: len(segments),
	}
}
