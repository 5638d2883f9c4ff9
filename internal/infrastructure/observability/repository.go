package observability

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domain "github.com/felixgeelhaar/fathom-mcp/internal/domain/meeting"
)

// InstrumentedRepository decorates a domain.Repository with one log line
// and one metric sample per call.
type InstrumentedRepository struct {
	inner   domain.Repository
	logger  *zap.Logger
	metrics *Metrics
	now     func() time.Time
}

// NewInstrumentedRepository wraps inner. A nil logger disables logging and
// nil metrics disables metric recording.
func NewInstrumentedRepository(inner domain.Repository, logger *zap.Logger, metrics *Metrics) *InstrumentedRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InstrumentedRepository{inner: inner, logger: logger, metrics: metrics, now: time.Now}
}

func (r *InstrumentedRepository) List(ctx context.Context, query domain.MeetingQuery) (*domain.MeetingPage, error) {
	start := r.now()
	page, err := r.inner.List(ctx, query)

	fields := []zap.Field{
		zap.Bool("cursor", query.Cursor != nil),
		zap.Bool("include_summary", query.IncludeSummary),
		zap.Bool("include_transcript", query.IncludeTranscript),
		zap.Bool("include_action_items", query.IncludeActionItems),
	}
	if page != nil {
		fields = append(fields, zap.Int("meetings", len(page.Meetings)), zap.Bool("has_next", page.NextCursor != nil))
	}
	r.record("list_meetings", start, err, fields...)
	return page, err
}

func (r *InstrumentedRepository) GetSummary(ctx context.Context, id domain.RecordingID) (*domain.Summary, error) {
	start := r.now()
	s, err := r.inner.GetSummary(ctx, id)
	r.record("get_summary", start, err, zap.Int64("recording_id", int64(id)))
	return s, err
}

func (r *InstrumentedRepository) GetTranscript(ctx context.Context, id domain.RecordingID) (*domain.Transcript, error) {
	start := r.now()
	tr, err := r.inner.GetTranscript(ctx, id)

	fields := []zap.Field{zap.Int64("recording_id", int64(id))}
	if tr != nil {
		fields = append(fields, zap.Int("utterances", len(tr.Utterances)))
	}
	r.record("get_transcript", start, err, fields...)
	return tr, err
}

func (r *InstrumentedRepository) record(operation string, start time.Time, err error, fields ...zap.Field) {
	elapsed := r.now().Sub(start)
	outcome := Classify(err)
	r.metrics.observe(operation, outcome, elapsed.Seconds())

	fields = append(fields,
		zap.String("invocation_id", uuid.NewString()),
		zap.String("operation", operation),
		zap.String("outcome", outcome),
		zap.Duration("duration", elapsed),
	)
	if up, ok := domain.AsUpstream(err); ok && up.StatusCode != 0 {
		fields = append(fields, zap.Int("status", up.StatusCode))
	}

	switch outcome {
	case OutcomeOK, OutcomeNotFound, OutcomeValidation, OutcomeCanceled:
		r.logger.Debug("fathom call", append(fields, zap.NamedError("reason", err))...)
	default:
		r.logger.Warn("fathom call failed", append(fields, zap.Error(err))...)
	}
}

// Classify maps an error to its outcome label.
func Classify(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case domain.IsValidation(err):
		return OutcomeValidation
	case domain.IsNotFound(err):
		return OutcomeNotFound
	case errors.Is(err, context.Canceled):
		return OutcomeCanceled
	case domain.IsUpstream(err):
		return OutcomeUpstream
	default:
		return OutcomeError
	}
}

var _ domain.Repository = (*InstrumentedRepository)(nil)
