package provisioning

import (
	"context"

	"github.com/rs/zerolog"
)

// step one forward action of a saga and the action that undoes it.
// A nil compensate means the step needs no undo.
type step struct {
	name       string
	run        func(ctx context.Context) error
	compensate func(ctx context.Context) error
}

// runSaga executes steps in order. When one fails, the compensations of the
// steps that already succeeded run in reverse order; their errors are logged
// and dropped, and the failing step's error is returned.
func runSaga(ctx context.Context, log zerolog.Logger, steps []step) error {
	done := make([]step, 0, len(steps))
	for _, s := range steps {
		if err := s.run(ctx); err != nil {
			log.Warn().Err(err).Str("step", s.name).Msg("provisioning step failed, compensating")
			compensate(ctx, log, done)
			return err
		}
		done = append(done, s)
	}
	return nil
}

func compensate(ctx context.Context, log zerolog.Logger, done []step) {
	// the request may already be cancelled; undo work regardless
	ctx = context.WithoutCancel(ctx)
	for i := len(done) - 1; i >= 0; i-- {
		s := done[i]
		if s.compensate == nil {
			continue
		}
		if err := s.compensate(ctx); err != nil {
			log.Error().Err(err).Str("step", s.name).Msg("compensation failed")
		}
	}
}
