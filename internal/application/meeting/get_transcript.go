package meeting

import (
	"context"
	"fmt"

	domain "github.com/felixgeelhaar/fathom-mcp/internal/domain/meeting"
)

type GetTranscriptInput struct {
	RecordingID *int64
}

type GetTranscriptOutput struct {
	Transcript *domain.Transcript
}

type GetTranscript struct {
	repo domain.Repository
}

func NewGetTranscript(repo domain.Repository) *GetTranscript {
	return &GetTranscript{repo: repo}
}

func (uc *GetTranscript) Execute(ctx context.Context, input GetTranscriptInput) (*GetTranscriptOutput, error) {
	id, err := recordingID(input.RecordingID)
	if err != nil {
		return nil, err
	}

	tr, err := uc.repo.GetTranscript(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get transcript: %w", err)
	}
	return &GetTranscriptOutput{Transcript: tr}, nil
}
