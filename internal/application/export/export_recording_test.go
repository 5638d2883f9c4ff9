package export_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	exportapp "github.com/felixgeelhaar/fathom-mcp/internal/application/export"
	domain "github.com/felixgeelhaar/fathom-mcp/internal/domain/meeting"
)

type stubRepo struct {
	summary       *domain.Summary
	transcript    *domain.Transcript
	summaryErr    error
	transcriptErr error
	calls         int
}

func (s *stubRepo) List(context.Context, domain.MeetingQuery) (*domain.MeetingPage, error) {
	s.calls++
	return &domain.MeetingPage{}, nil
}

func (s *stubRepo) GetSummary(_ context.Context, id domain.RecordingID) (*domain.Summary, error) {
	s.calls++
	if s.summaryErr != nil {
		return nil, s.summaryErr
	}
	return s.summary, nil
}

func (s *stubRepo) GetTranscript(_ context.Context, id domain.RecordingID) (*domain.Transcript, error) {
	s.calls++
	if s.transcriptErr != nil {
		return nil, s.transcriptErr
	}
	return s.transcript, nil
}

func fullRepo() *stubRepo {
	return &stubRepo{
		summary: &domain.Summary{RecordingID: 4, TemplateName: "General", Markdown: "## Notes\n- ship it"},
		transcript: &domain.Transcript{RecordingID: 4, Utterances: []domain.Utterance{
			{Speaker: domain.Speaker{DisplayName: "Ann", Email: "ann@acme.com"}, Text: "Hello", Timestamp: "00:00:01"},
			{Speaker: domain.Speaker{DisplayName: "Unknown"}, Text: "Hi", Timestamp: "00:00:04"},
		}},
	}
}

func TestExportRecording_Markdown(t *testing.T) {
	uc := exportapp.NewExportRecording(fullRepo())

	out, err := uc.Execute(context.Background(), exportapp.ExportRecordingInput{RecordingID: 4})
	require.NoError(t, err)
	assert.Equal(t, exportapp.FormatMarkdown, out.Format)
	assert.True(t, strings.HasPrefix(out.Content, "# Recording 4\n"))
	assert.Contains(t, out.Content, "**Template:** General")
	assert.Contains(t, out.Content, "## Notes\n- ship it")
	assert.Contains(t, out.Content, "- **Ann** _00:00:01_: Hello")
	assert.Less(t, strings.Index(out.Content, "Hello"), strings.Index(out.Content, "Hi\n"))
}

func TestExportRecording_Text(t *testing.T) {
	uc := exportapp.NewExportRecording(fullRepo())

	out, err := uc.Execute(context.Background(), exportapp.ExportRecordingInput{RecordingID: 4, Format: exportapp.FormatText})
	require.NoError(t, err)
	assert.Contains(t, out.Content, "Summary:\n## Notes")
	assert.Contains(t, out.Content, "[00:00:04] Unknown: Hi")
}

func TestExportRecording_JSON(t *testing.T) {
	uc := exportapp.NewExportRecording(fullRepo())

	out, err := uc.Execute(context.Background(), exportapp.ExportRecordingInput{RecordingID: 4, Format: exportapp.FormatJSON})
	require.NoError(t, err)

	var doc struct {
		RecordingID int64   `json:"recording_id"`
		Summary     *string `json:"summary"`
		Transcript  []struct {
			Speaker string `json:"speaker"`
			Email   string `json:"email"`
		} `json:"transcript"`
	}
	require.NoError(t, json.Unmarshal([]byte(out.Content), &doc))
	assert.Equal(t, int64(4), doc.RecordingID)
	require.NotNil(t, doc.Summary)
	require.Len(t, doc.Transcript, 2)
	assert.Equal(t, "ann@acme.com", doc.Transcript[0].Email)
}

func TestExportRecording_MissingSummaryIsSkipped(t *testing.T) {
	repo := fullRepo()
	repo.summaryErr = &domain.NotFoundError{Resource: "summary", RecordingID: 4}
	uc := exportapp.NewExportRecording(repo)

	out, err := uc.Execute(context.Background(), exportapp.ExportRecordingInput{RecordingID: 4})
	require.NoError(t, err)
	assert.NotContains(t, out.Content, "## Summary")
	assert.Contains(t, out.Content, "## Transcript")
}

func TestExportRecording_BothMissing(t *testing.T) {
	repo := &stubRepo{
		summaryErr:    &domain.NotFoundError{Resource: "summary", RecordingID: 4},
		transcriptErr: &domain.NotFoundError{Resource: "transcript", RecordingID: 4},
	}
	uc := exportapp.NewExportRecording(repo)

	_, err := uc.Execute(context.Background(), exportapp.ExportRecordingInput{RecordingID: 4})
	assert.True(t, domain.IsNotFound(err))
}

func TestExportRecording_UpstreamErrorPropagates(t *testing.T) {
	upErr := &domain.UpstreamError{Kind: domain.KindStatus, StatusCode: 500, Message: "boom"}
	repo := fullRepo()
	repo.transcriptErr = upErr
	uc := exportapp.NewExportRecording(repo)

	_, err := uc.Execute(context.Background(), exportapp.ExportRecordingInput{RecordingID: 4})
	require.Error(t, err)
	assert.True(t, errors.Is(err, upErr))
}

func TestExportRecording_InvalidInputSkipsRepo(t *testing.T) {
	repo := fullRepo()
	uc := exportapp.NewExportRecording(repo)

	_, err := uc.Execute(context.Background(), exportapp.ExportRecordingInput{RecordingID: 0})
	assert.True(t, domain.IsValidation(err))

	_, err = uc.Execute(context.Background(), exportapp.ExportRecordingInput{RecordingID: 4, Format: "pdf"})
	assert.ErrorIs(t, err, exportapp.ErrUnsupportedFormat)

	assert.Zero(t, repo.calls)
}
