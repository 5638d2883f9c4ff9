// Package export renders a recording's summary and transcript as a single
// document.
package export

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	domain "github.com/felixgeelhaar/fathom-mcp/internal/domain/meeting"
)

var ErrUnsupportedFormat = errors.New("unsupported export format")

type Format string

const (
	FormatJSON     Format = "json"
	FormatMarkdown Format = "md"
	FormatText     Format = "txt"
)

type ExportRecordingInput struct {
	RecordingID domain.RecordingID
	Format      Format
}

type ExportRecordingOutput struct {
	Content string
	Format  Format
}

type ExportRecording struct {
	repo domain.Repository
}

func NewExportRecording(repo domain.Repository) *ExportRecording {
	return &ExportRecording{repo: repo}
}

// Execute fetches the summary and the transcript. Either may be missing;
// the export fails with a NotFoundError only when both are.
func (uc *ExportRecording) Execute(ctx context.Context, input ExportRecordingInput) (*ExportRecordingOutput, error) {
	if err := input.RecordingID.Validate(); err != nil {
		return nil, err
	}

	f := input.Format
	if f == "" {
		f = FormatMarkdown
	}
	switch f {
	case FormatJSON, FormatMarkdown, FormatText:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, input.Format)
	}

	summary, err := uc.repo.GetSummary(ctx, input.RecordingID)
	if err != nil && !domain.IsNotFound(err) {
		return nil, fmt.Errorf("export summary: %w", err)
	}
	transcript, terr := uc.repo.GetTranscript(ctx, input.RecordingID)
	if terr != nil && !domain.IsNotFound(terr) {
		return nil, fmt.Errorf("export transcript: %w", terr)
	}
	if summary == nil && transcript == nil {
		return nil, &domain.NotFoundError{Resource: "summary or transcript", RecordingID: input.RecordingID}
	}

	var content string
	switch f {
	case FormatMarkdown:
		content = formatMarkdown(input.RecordingID, summary, transcript)
	case FormatText:
		content = formatText(input.RecordingID, summary, transcript)
	case FormatJSON:
		content, err = formatJSON(input.RecordingID, summary, transcript)
		if err != nil {
			return nil, err
		}
	}

	return &ExportRecordingOutput{Content: content, Format: f}, nil
}

func formatMarkdown(id domain.RecordingID, s *domain.Summary, t *domain.Transcript) string {
	var b strings.Builder
	_, _ = fmt.Fprintf(&b, "# Recording %d\n\n", id)

	if s != nil {
		b.WriteString("## Summary\n\n")
		if s.TemplateName != "" {
			_, _ = fmt.Fprintf(&b, "**Template:** %s\n\n", s.TemplateName)
		}
		b.WriteString(s.Markdown)
		b.WriteString("\n\n")
	}

	if t != nil && len(t.Utterances) > 0 {
		b.WriteString("## Transcript\n\n")
		for _, u := range t.Utterances {
			_, _ = fmt.Fprintf(&b, "- **%s** _%s_: %s\n", u.Speaker.DisplayName, u.Timestamp, u.Text)
		}
		b.WriteString("\n")
	}

	return b.String()
}

func formatText(id domain.RecordingID, s *domain.Summary, t *domain.Transcript) string {
	var b strings.Builder
	_, _ = fmt.Fprintf(&b, "Recording %d\n", id)

	if s != nil {
		_, _ = fmt.Fprintf(&b, "\nSummary:\n%s\n", s.Markdown)
	}
	if t != nil && len(t.Utterances) > 0 {
		b.WriteString("\nTranscript:\n")
		for _, u := range t.Utterances {
			_, _ = fmt.Fprintf(&b, "[%s] %s: %s\n", u.Timestamp, u.Speaker.DisplayName, u.Text)
		}
	}

	return b.String()
}

type jsonUtterance struct {
	Speaker   string `json:"speaker"`
	Email     string `json:"email,omitempty"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
}

type jsonExport struct {
	RecordingID  int64           `json:"recording_id"`
	TemplateName string          `json:"template_name,omitempty"`
	Summary      *string         `json:"summary"`
	Transcript   []jsonUtterance `json:"transcript"`
}

func formatJSON(id domain.RecordingID, s *domain.Summary, t *domain.Transcript) (string, error) {
	doc := jsonExport{RecordingID: int64(id), Transcript: []jsonUtterance{}}
	if s != nil {
		doc.TemplateName = s.TemplateName
		doc.Summary = &s.Markdown
	}
	if t != nil {
		for _, u := range t.Utterances {
			doc.Transcript = append(doc.Transcript, jsonUtterance{
				Speaker:   u.Speaker.DisplayName,
				Email:     u.Speaker.Email,
				Text:      u.Text,
				Timestamp: u.Timestamp,
			})
		}
	}
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode export: %w", err)
	}
	return string(raw), nil
}
