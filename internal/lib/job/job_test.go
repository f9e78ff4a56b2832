package job

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/deppfellow/mipp-portal/internal/lib/email"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMailer struct {
	to   string
	data email.ResolutionData
	err  error
}

func (m *fakeMailer) SendResolutionEmail(to string, data email.ResolutionData) error {
	m.to = to
	m.data = data
	return m.err
}

type fakePurger struct {
	before time.Time
}

func (p *fakePurger) PurgeSessions(_ context.Context, before time.Time) (int64, error) {
	p.before = before
	return 3, nil
}

func newTestService(mailer ResolutionMailer, purger SessionPurger) *JobService {
	logger := zerolog.Nop()
	j := &JobService{logger: &logger}
	j.InitHandlers(mailer, purger, "CTP Mercedes Norte", 24*time.Hour)
	return j
}

func TestNewResolutionEmailTask(t *testing.T) {
	task, err := NewResolutionEmailTask(ResolutionEmailPayload{
		To:       "ana@example.com",
		Tipo:     "Omisión de Marca",
		Folio:    7,
		Decision: "Aceptar",
		Aprobado: true,
	})
	require.NoError(t, err)

	assert.Equal(t, TaskResolutionEmail, task.Type())

	var p ResolutionEmailPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &p))
	assert.Equal(t, int64(7), p.Folio)
	assert.True(t, p.Aprobado)
}

func TestHandleResolutionEmailTask(t *testing.T) {
	mailer := &fakeMailer{}
	j := newTestService(mailer, nil)

	task, err := NewResolutionEmailTask(ResolutionEmailPayload{To: "ana@example.com", Nombre: "Ana", Tipo: "Solicitud de Permiso", Folio: 3, Decision: "Aceptar lo solicitado", Aprobado: true})
	require.NoError(t, err)

	require.NoError(t, j.handleResolutionEmailTask(context.Background(), task))
	assert.Equal(t, "ana@example.com", mailer.to)
	assert.Equal(t, "CTP Mercedes Norte", mailer.data.Institution)
	assert.Equal(t, int64(3), mailer.data.Folio)
}

func TestHandleResolutionEmailTaskDisabledIsNotRetried(t *testing.T) {
	j := newTestService(&fakeMailer{err: email.ErrDisabled}, nil)
	task, err := NewResolutionEmailTask(ResolutionEmailPayload{To: "x@example.com"})
	require.NoError(t, err)

	assert.NoError(t, j.handleResolutionEmailTask(context.Background(), task))
}

func TestHandleResolutionEmailTaskFailure(t *testing.T) {
	boom := errors.New("smtp down")
	j := newTestService(&fakeMailer{err: boom}, nil)
	task, err := NewResolutionEmailTask(ResolutionEmailPayload{To: "x@example.com"})
	require.NoError(t, err)

	assert.ErrorIs(t, j.handleResolutionEmailTask(context.Background(), task), boom)
}

func TestHandleResolutionEmailTaskBadPayload(t *testing.T) {
	j := newTestService(&fakeMailer{}, nil)
	err := j.handleResolutionEmailTask(context.Background(), asynq.NewTask(TaskResolutionEmail, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestHandlePurgeSessionsTask(t *testing.T) {
	purger := &fakePurger{}
	j := newTestService(nil, purger)

	before := time.Now()
	require.NoError(t, j.handlePurgeSessionsTask(context.Background(), NewPurgeSessionsTask()))

	assert.WithinDuration(t, before.Add(-24*time.Hour), purger.before, time.Minute)
}
