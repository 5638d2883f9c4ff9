package meeting_test

import (
	"context"
	"encoding/json"

	domain "github.com/felixgeelhaar/fathom-mcp/internal/domain/meeting"
)

type mockRepo struct {
	page       *domain.MeetingPage
	summary    *domain.Summary
	transcript *domain.Transcript
	err        error

	calls     int
	lastQuery domain.MeetingQuery
	lastID    domain.RecordingID
}

func (m *mockRepo) List(_ context.Context, q domain.MeetingQuery) (*domain.MeetingPage, error) {
	m.calls++
	m.lastQuery = q
	if m.err != nil {
		return nil, m.err
	}
	if m.page == nil {
		return &domain.MeetingPage{}, nil
	}
	return m.page, nil
}

func (m *mockRepo) GetSummary(_ context.Context, id domain.RecordingID) (*domain.Summary, error) {
	m.calls++
	m.lastID = id
	if m.err != nil {
		return nil, m.err
	}
	return m.summary, nil
}

func (m *mockRepo) GetTranscript(_ context.Context, id domain.RecordingID) (*domain.Transcript, error) {
	m.calls++
	m.lastID = id
	if m.err != nil {
		return nil, m.err
	}
	return m.transcript, nil
}

func ptr[T any](v T) *T { return &v }

func meetingWith(id int64, title string) domain.Meeting {
	return domain.Meeting{
		RecordingID:    domain.RecordingID(id),
		Title:          title,
		DefaultSummary: json.RawMessage(`{"template_name":"General","markdown_formatted":"# ` + title + `"}`),
		Transcript:     json.RawMessage(`[{"text":"hello","timestamp":"00:00:01"}]`),
		ActionItems:    json.RawMessage(`[{"description":"follow up","completed":false}]`),
	}
}
