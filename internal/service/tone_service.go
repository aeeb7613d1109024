package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/campusflow/disruption-service/internal/domain"
	"github.com/campusflow/disruption-service/internal/tone"
)

// ToneService wraps the annotator collaborator with a bounded timeout and the
// swallow-errors contract: a failed analysis yields nil, never an error.
type ToneService struct {
	annotator tone.Annotator
	timeout   time.Duration
	logger    *zap.Logger
}

// NewToneService builds the service.
func NewToneService(annotator tone.Annotator, timeout time.Duration, logger *zap.Logger) *ToneService {
	return &ToneService{annotator: annotator, timeout: timeout, logger: logger}
}

// Annotate analyzes text best-effort. Returns nil when no annotation is
// available for any reason.
func (s *ToneService) Annotate(ctx context.Context, text string) *domain.ToneAnnotation {
	if s == nil || s.annotator == nil || text == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	annotation, err := s.annotator.Analyze(ctx, text)
	if err != nil {
		s.logger.Warn("tone analysis unavailable", zap.Error(err))
		return nil
	}
	return annotation
}
