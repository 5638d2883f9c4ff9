// Package meeting contains the use cases behind the meeting tools.
// Each use case validates its input, calls the repository at most once,
// and shapes the result. None of them keeps state between calls.
package meeting

import (
	"context"
	"fmt"

	domain "github.com/felixgeelhaar/fathom-mcp/internal/domain/meeting"
)

type ListMeetingsInput struct {
	Limit              *int     `json:"limit" validate:"omitnil,min=1,max=50"`
	Search             *string  `json:"search"`
	Cursor             *string  `json:"cursor"`
	CreatedAfter       *string  `json:"created_after" validate:"omitnil,datetime=2006-01-02T15:04:05Z07:00"`
	CreatedBefore      *string  `json:"created_before" validate:"omitnil,datetime=2006-01-02T15:04:05Z07:00"`
	IncludeSummary     bool     `json:"include_summary"`
	IncludeTranscript  bool     `json:"include_transcript"`
	IncludeActionItems bool     `json:"include_action_items"`
	RecordedBy         []string `json:"recorded_by" validate:"omitempty,dive,email"`
	Teams              []string `json:"teams"`
	DomainsType        *string  `json:"calendar_invitees_domains_type" validate:"omitnil,oneof=all only_internal one_or_more_external"`
	InviteeDomains     []string `json:"invitee_domains" validate:"omitempty,dive,fqdn"`
}

type ListMeetingsOutput struct {
	Meetings   []domain.Meeting
	NextCursor *string
}

type ListMeetings struct {
	repo domain.Repository
}

func NewListMeetings(repo domain.Repository) *ListMeetings {
	return &ListMeetings{repo: repo}
}

func (uc *ListMeetings) Execute(ctx context.Context, input ListMeetingsInput) (*ListMeetingsOutput, error) {
	query, err := input.toQuery()
	if err != nil {
		return nil, err
	}

	page, err := uc.repo.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list meetings: %w", err)
	}

	meetings := page.Meetings
	if input.Search != nil && *input.Search != "" {
		term := normalizeSearch(*input.Search)
		filtered := make([]domain.Meeting, 0, len(meetings))
		for _, m := range meetings {
			if matchesSearch(m, term) {
				filtered = append(filtered, m)
			}
		}
		meetings = filtered
	}

	if input.Limit != nil && len(meetings) > *input.Limit {
		meetings = meetings[:*input.Limit]
	}

	shaped := make([]domain.Meeting, len(meetings))
	for i, m := range meetings {
		if !input.IncludeSummary {
			m.DefaultSummary = nil
		}
		if !input.IncludeTranscript {
			m.Transcript = nil
		}
		if !input.IncludeActionItems {
			m.ActionItems = nil
		}
		shaped[i] = m
	}

	return &ListMeetingsOutput{Meetings: shaped, NextCursor: page.NextCursor}, nil
}

// toQuery validates the input and builds the upstream query.
// Limit and Search are applied locally and are not part of the query.
func (in ListMeetingsInput) toQuery() (domain.MeetingQuery, error) {
	if err := validateStruct(in); err != nil {
		return domain.MeetingQuery{}, err
	}

	q := domain.MeetingQuery{
		Cursor:             in.Cursor,
		CreatedAfter:       in.CreatedAfter,
		CreatedBefore:      in.CreatedBefore,
		IncludeSummary:     in.IncludeSummary,
		IncludeTranscript:  in.IncludeTranscript,
		IncludeActionItems: in.IncludeActionItems,
		RecordedBy:         in.RecordedBy,
		Teams:              in.Teams,
		InviteeDomains:     in.InviteeDomains,
	}
	if in.DomainsType != nil {
		d, err := domain.ParseDomainsType(*in.DomainsType)
		if err != nil {
			return domain.MeetingQuery{}, err
		}
		q.DomainsType = &d
	}
	return q, nil
}
