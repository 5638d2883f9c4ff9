package meeting

import (
	"context"
	"fmt"

	domain "github.com/felixgeelhaar/fathom-mcp/internal/domain/meeting"
)

type GetSummaryInput struct {
	RecordingID *int64
}

type GetSummaryOutput struct {
	Summary *domain.Summary
}

type GetSummary struct {
	repo domain.Repository
}

func NewGetSummary(repo domain.Repository) *GetSummary {
	return &GetSummary{repo: repo}
}

func (uc *GetSummary) Execute(ctx context.Context, input GetSummaryInput) (*GetSummaryOutput, error) {
	id, err := recordingID(input.RecordingID)
	if err != nil {
		return nil, err
	}

	s, err := uc.repo.GetSummary(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get summary: %w", err)
	}
	return &GetSummaryOutput{Summary: s}, nil
}

func recordingID(raw *int64) (domain.RecordingID, error) {
	if raw == nil {
		return 0, domain.NewValidationError("recording_id", "is required")
	}
	id := domain.RecordingID(*raw)
	if err := id.Validate(); err != nil {
		return 0, err
	}
	return id, nil
}
