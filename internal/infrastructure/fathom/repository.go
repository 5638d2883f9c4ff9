package fathom

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	domain "github.com/felixgeelhaar/fathom-mcp/internal/domain/meeting"
)

const defaultSpeaker = "Unknown"

// Repository adapts the Fathom client to domain.Repository.
// It is the anti-corruption layer: upstream DTOs never leave this package.
type Repository struct {
	client *Client
}

func NewRepository(client *Client) *Repository {
	return &Repository{client: client}
}

func (r *Repository) List(ctx context.Context, query domain.MeetingQuery) (*domain.MeetingPage, error) {
	resp, err := r.client.ListMeetings(ctx, query)
	if err != nil {
		return nil, err
	}

	meetings := make([]domain.Meeting, len(resp.Items))
	for i, dto := range resp.Items {
		meetings[i] = toDomainMeeting(dto)
	}
	return &domain.MeetingPage{Meetings: meetings, NextCursor: resp.NextCursor}, nil
}

func (r *Repository) GetSummary(ctx context.Context, id domain.RecordingID) (*domain.Summary, error) {
	resp, err := r.client.GetSummary(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "summary", id)
	}
	if resp.Summary == nil {
		return nil, &domain.NotFoundError{Resource: "summary", RecordingID: id}
	}
	return &domain.Summary{
		RecordingID:  id,
		TemplateName: resp.Summary.TemplateName,
		Markdown:     resp.Summary.MarkdownFormatted,
	}, nil
}

func (r *Repository) GetTranscript(ctx context.Context, id domain.RecordingID) (*domain.Transcript, error) {
	resp, err := r.client.GetTranscript(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "transcript", id)
	}
	if resp.Transcript == nil {
		return nil, &domain.NotFoundError{Resource: "transcript", RecordingID: id}
	}

	utterances := make([]domain.Utterance, len(resp.Transcript))
	for i, seg := range resp.Transcript {
		utterances[i] = toDomainUtterance(seg)
	}
	return &domain.Transcript{RecordingID: id, Utterances: utterances}, nil
}

// notFoundOr turns an upstream 404 into a NotFoundError and passes
// every other error through untouched.
func notFoundOr(err error, resource string, id domain.RecordingID) error {
	if upErr, ok := domain.AsUpstream(err); ok && upErr.StatusCode == http.StatusNotFound {
		return &domain.NotFoundError{Resource: resource, RecordingID: id}
	}
	return err
}

func toDomainMeeting(dto MeetingDTO) domain.Meeting {
	m := domain.Meeting{
		Title:              dto.Title,
		MeetingTitle:       dto.MeetingTitle,
		RecordingID:        domain.RecordingID(dto.RecordingID),
		URL:                dto.URL,
		ShareURL:           dto.ShareURL,
		CreatedAt:          dto.CreatedAt,
		ScheduledStartTime: dto.ScheduledStartTime,
		ScheduledEndTime:   dto.ScheduledEndTime,
		RecordingStartTime: dto.RecordingStartTime,
		RecordingEndTime:   dto.RecordingEndTime,
		TranscriptLanguage: dto.TranscriptLanguage,
		DefaultSummary:     presentOrNil(dto.DefaultSummary),
		Transcript:         presentOrNil(dto.Transcript),
		ActionItems:        presentOrNil(dto.ActionItems),
	}
	if dto.RecordedBy != nil {
		m.RecordedBy = &domain.Person{Name: dto.RecordedBy.Name, Email: dto.RecordedBy.Email}
	}
	if len(dto.CalendarInvitees) > 0 {
		m.CalendarInvitees = make([]domain.Invitee, len(dto.CalendarInvitees))
		for i, inv := range dto.CalendarInvitees {
			m.CalendarInvitees[i] = domain.Invitee{Name: inv.Name, Email: inv.Email, IsExternal: inv.IsExternal}
		}
	}
	return m
}

func toDomainUtterance(seg SegmentDTO) domain.Utterance {
	u := domain.Utterance{
		Text:      seg.Text,
		Timestamp: seg.Timestamp,
		Speaker:   domain.Speaker{DisplayName: defaultSpeaker},
	}
	if seg.Speaker != nil {
		if seg.Speaker.DisplayName != "" {
			u.Speaker.DisplayName = seg.Speaker.DisplayName
		}
		u.Speaker.Email = seg.Speaker.MatchedCalendarInviteeEmail
	}
	return u
}

// presentOrNil treats a missing or JSON null sub-object as absent.
func presentOrNil(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil
	}
	return raw
}

var _ domain.Repository = (*Repository)(nil)
