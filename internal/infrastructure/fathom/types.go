package fathom

import "encoding/json"

// MeetingListResponse is the body of GET /meetings.
type MeetingListResponse struct {
	Items      []MeetingDTO `json:"items"`
	Limit      *int         `json:"limit,omitempty"`
	NextCursor *string      `json:"next_cursor"`
}

type MeetingDTO struct {
	Title              string       `json:"title"`
	MeetingTitle       string       `json:"meeting_title"`
	RecordingID        int64        `json:"recording_id"`
	URL                string       `json:"url"`
	ShareURL           string       `json:"share_url"`
	CreatedAt          string       `json:"created_at"`
	ScheduledStartTime string       `json:"scheduled_start_time"`
	ScheduledEndTime   string       `json:"scheduled_end_time"`
	RecordingStartTime string       `json:"recording_start_time"`
	RecordingEndTime   string       `json:"recording_end_time"`
	TranscriptLanguage string       `json:"transcript_language"`
	RecordedBy         *PersonDTO   `json:"recorded_by"`
	CalendarInvitees   []InviteeDTO `json:"calendar_invitees"`

	DefaultSummary json.RawMessage `json:"default_summary"`
	Transcript     json.RawMessage `json:"transcript"`
	ActionItems    json.RawMessage `json:"action_items"`
}

type PersonDTO struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Team  string `json:"team,omitempty"`
}

type InviteeDTO struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	IsExternal bool   `json:"is_external"`
}

// SummaryResponse is the body of GET /recordings/{id}/summary.
type SummaryResponse struct {
	Summary *SummaryDTO `json:"summary"`
}

type SummaryDTO struct {
	TemplateName      string `json:"template_name"`
	MarkdownFormatted string `json:"markdown_formatted"`
}

// TranscriptResponse is the body of GET /recordings/{id}/transcript.
type TranscriptResponse struct {
	Transcript []SegmentDTO `json:"transcript"`
}

type SegmentDTO struct {
	Speaker   *SpeakerDTO `json:"speaker"`
	Text      string      `json:"text"`
	Timestamp string      `json:"timestamp"`
}

type SpeakerDTO struct {
	DisplayName                 string `json:"display_name"`
	MatchedCalendarInviteeEmail string `json:"matched_calendar_invitee_email"`
}
