package job

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/deppfellow/mipp-portal/internal/lib/email"
	"github.com/hibiken/asynq"
)

// ResolutionMailer delivers resolution notices.
type ResolutionMailer interface {
	SendResolutionEmail(to string, data email.ResolutionData) error
}

// SessionPurger deletes sessions that expired or were revoked before a cutoff.
type SessionPurger interface {
	PurgeSessions(ctx context.Context, before time.Time) (int64, error)
}

// InitHandlers injects the dependencies the task handlers need. It must run
// before Start.
func (j *JobService) InitHandlers(mailer ResolutionMailer, purger SessionPurger, institution string, purgeAfter time.Duration) {
	j.mailer = mailer
	j.purger = purger
	j.institution = institution
	j.purgeAfter = purgeAfter
}

func (j *JobService) handleResolutionEmailTask(ctx context.Context, t *asynq.Task) error {
	var p ResolutionEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal resolution email payload: %v: %w", err, asynq.SkipRetry)
	}

	log := j.logger.With().
		Str("type", "resolution").
		Str("tipo", p.Tipo).
		Int64("folio", p.Folio).
		Logger()

	log.Info().Msg("processing resolution email task")

	err := j.mailer.SendResolutionEmail(p.To, email.ResolutionData{
		Institution: j.institution,
		Nombre:      p.Nombre,
		Tipo:        p.Tipo,
		Folio:       p.Folio,
		Decision:    p.Decision,
		Comentario:  p.Comentario,
		Aprobado:    p.Aprobado,
	})
	if errors.Is(err, email.ErrDisabled) {
		log.Warn().Msg("email delivery disabled, dropping resolution notice")
		return nil
	}
	if err != nil {
		log.Error().Err(err).Msg("failed to send resolution email")
		return err
	}

	log.Info().Msg("resolution email sent")
	return nil
}

func (j *JobService) handlePurgeSessionsTask(ctx context.Context, _ *asynq.Task) error {
	cutoff := time.Now().Add(-j.purgeAfter)

	n, err := j.purger.PurgeSessions(ctx, cutoff)
	if err != nil {
		j.logger.Error().Err(err).Msg("failed to purge sessions")
		return err
	}

	j.logger.Info().
		Int64("deleted", n).
		Time("cutoff", cutoff).
		Msg("purged stale sessions")

	return nil
}
