package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"pitchperfect/internal/modules/gateway/domain"
	gatewayout "pitchperfect/internal/modules/gateway/port/out"
	apperrors "pitchperfect/internal/platform/errors"
)

type GatewayService struct {
	completer gatewayout.Completer
	table     domain.Table
	timeout   time.Duration
	logger    *slog.Logger
}

func NewGatewayService(completer gatewayout.Completer, table domain.Table, timeout time.Duration, logger *slog.Logger) *GatewayService {
	if logger == nil {
		logger = slog.Default()
	}
	return &GatewayService{completer: completer, table: table, timeout: timeout, logger: logger}
}

// Send performs one completion for purpose. The returned text is empty
// when the provider produced no content.
func (s *GatewayService) Send(ctx context.Context, system string, turns []domain.Turn, purpose domain.Purpose) (string, domain.Settings, error) {
	settings, err := s.table.Lookup(purpose)
	if err != nil {
		return "", domain.Settings{}, err
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	started := time.Now()
	text, err := s.completer.Complete(ctx, domain.Request{
		Purpose:  purpose,
		Settings: settings,
		System:   system,
		Turns:    turns,
	})
	elapsed := time.Since(started)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("timed out after %s: %w", s.timeout, err)
		}
		s.logger.Error("model call failed", "purpose", purpose, "model", settings.Model, "elapsed", elapsed, "error", err)
		return "", settings, fmt.Errorf("%w: %s: %v", apperrors.ErrGateway, purpose, err)
	}
	s.logger.Debug("model call", "purpose", purpose, "model", settings.Model, "turns", len(turns), "elapsed", elapsed, "chars", len(text))
	return text, settings, nil
}
