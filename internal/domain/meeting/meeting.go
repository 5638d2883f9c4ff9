// Package meeting holds the transient request and response types used to
// query Fathom recordings, plus the Repository port the application layer
// depends on. Nothing here knows about HTTP or MCP.
package meeting

import (
	"context"
	"encoding/json"
)

// MaxLimit is the largest page size a caller may request.
const MaxLimit = 50

// RecordingID identifies a single upstream recording.
type RecordingID int64

// Validate fails unless the id is positive.
func (id RecordingID) Validate() error {
	if id <= 0 {
		return NewValidationError("recording_id", "must be a positive integer")
	}
	return nil
}

// DomainsType filters meetings by the kind of calendar invitees.
type DomainsType string

const (
	DomainsAll               DomainsType = "all"
	DomainsOnlyInternal      DomainsType = "only_internal"
	DomainsOneOrMoreExternal DomainsType = "one_or_more_external"
)

// ParseDomainsType returns the DomainsType for s or a *ValidationError.
func ParseDomainsType(s string) (DomainsType, error) {
	switch d := DomainsType(s); d {
	case DomainsAll, DomainsOnlyInternal, DomainsOneOrMoreExternal:
		return d, nil
	}
	return "", NewValidationError("calendar_invitees_domains_type",
		"must be one of all, only_internal, one_or_more_external")
}

// MeetingQuery enumerates every filter the meetings listing understands.
// A nil pointer or nil slice means the option is absent and is not sent.
type MeetingQuery struct {
	Cursor             *string
	CreatedAfter       *string
	CreatedBefore      *string
	IncludeSummary     bool
	IncludeTranscript  bool
	IncludeActionItems bool
	RecordedBy         []string
	Teams              []string
	DomainsType        *DomainsType
	InviteeDomains     []string
}

// Person is a named participant.
type Person struct {
	Name  string
	Email string
}

// Invitee is a calendar invitee of a meeting.
type Invitee struct {
	Name       string
	Email      string
	IsExternal bool
}

// Meeting is one record of the meetings listing. The raw sub-objects are
// kept exactly as upstream sent them and are nil when upstream omitted them.
type Meeting struct {
	Title              string
	MeetingTitle       string
	RecordingID        RecordingID
	URL                string
	ShareURL           string
	CreatedAt          string
	ScheduledStartTime string
	ScheduledEndTime   string
	RecordingStartTime string
	RecordingEndTime   string
	TranscriptLanguage string
	RecordedBy         *Person
	CalendarInvitees   []Invitee

	DefaultSummary json.RawMessage
	Transcript     json.RawMessage
	ActionItems    json.RawMessage
}

// MeetingPage is an ordered slice of meetings plus the opaque cursor for
// the next page. NextCursor is nil when there are no more pages.
type MeetingPage struct {
	Meetings   []Meeting
	NextCursor *string
}

// Summary is the AI summary of a recording.
type Summary struct {
	RecordingID  RecordingID
	TemplateName string
	Markdown     string
}

// Speaker identifies who said an utterance.
type Speaker struct {
	DisplayName string
	Email       string
}

// Utterance is one transcript segment.
type Utterance struct {
	Speaker   Speaker
	Text      string
	Timestamp string
}

// Transcript is the chronological list of utterances for a recording.
type Transcript struct {
	RecordingID RecordingID
	Utterances  []Utterance
}

// Repository is the port to the meeting data source.
type Repository interface {
	List(ctx context.Context, query MeetingQuery) (*MeetingPage, error)
	GetSummary(ctx context.Context, id RecordingID) (*Summary, error)
	GetTranscript(ctx context.Context, id RecordingID) (*Transcript, error)
}
