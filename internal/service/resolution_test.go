package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/deppfellow/mipp-portal/internal/errs"
	"github.com/deppfellow/mipp-portal/internal/lib/job"
	"github.com/deppfellow/mipp-portal/internal/lib/utils"
	"github.com/deppfellow/mipp-portal/internal/model"
	"github.com/deppfellow/mipp-portal/internal/model/omision"
	"github.com/deppfellow/mipp-portal/internal/model/user"
	"github.com/deppfellow/mipp-portal/internal/repository"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLookup struct {
	users map[string]*user.User
}

func (f *fakeLookup) GetByCedula(_ context.Context, cedula string) (*user.User, error) {
	if u, ok := f.users[cedula]; ok {
		return u, nil
	}
	return nil, pgx.ErrNoRows
}

type fakeEnqueuer struct {
	tasks []*asynq.Task
	err   error
}

func (f *fakeEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	f.tasks = append(f.tasks, task)
	if f.err != nil {
		return nil, f.err
	}
	return &asynq.TaskInfo{ID: "t1"}, nil
}

const requesterCedula = "112340567"

func newTestResolver(enqueuer *fakeEnqueuer, correo *string) *Resolver {
	return NewResolver(&fakeLookup{users: map[string]*user.User{
		requesterCedula: {Cedula: requesterCedula, Nombre: "Luis", PrimerApellido: "Rojas", SegundoApellido: "Vega", Correo: correo},
	}}, enqueuer)
}

func TestResolveRejectsInput(t *testing.T) {
	tests := []struct {
		name  string
		req   model.RespondRequest
		field string
	}{
		{"unknown decision", model.RespondRequest{ID: 1, Decision: "Tal vez"}, "decision"},
		{"denial without comment", model.RespondRequest{ID: 1, Decision: "Denegar", Comentario: " no "}, "comentario"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			applied := false
			apply := func(context.Context, int64, repository.ResolveParams) (string, error) {
				applied = true
				return requesterCedula, nil
			}

			_, err := newTestResolver(&fakeEnqueuer{}, nil).
				resolve(context.Background(), sessionFor("333333333", user.RoleStaffManager), model.KindOmision, omision.Decisiones, &tt.req, apply)

			requireFieldError(t, err, tt.field)
			assert.False(t, applied)
		})
	}
}

func TestResolveRepositoryOutcomes(t *testing.T) {
	boom := errors.New("connection reset")

	tests := []struct {
		name   string
		err    error
		status int
		code   string
		same   bool
	}{
		{"already resolved", fmt.Errorf("resolve omision: %w", repository.ErrAlreadyResolved), http.StatusBadRequest, errs.CodeAlreadyResolved, false},
		{"missing row", fmt.Errorf("resolve omision: %w", pgx.ErrNoRows), http.StatusNotFound, "", false},
		{"database failure", boom, 0, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enqueuer := &fakeEnqueuer{}
			apply := func(context.Context, int64, repository.ResolveParams) (string, error) {
				return "", tt.err
			}

			ok, err := newTestResolver(enqueuer, utils.Ptr("luis@example.com")).
				resolve(context.Background(), sessionFor("333333333", user.RoleStaffManager), model.KindOmision, omision.Decisiones,
					&model.RespondRequest{ID: 9, Decision: "Aceptar"}, apply)

			require.Error(t, err)
			assert.Nil(t, ok)
			assert.Empty(t, enqueuer.tasks)

			if tt.same {
				assert.ErrorIs(t, err, boom)
				return
			}

			var httpErr *errs.HTTPError
			require.True(t, errors.As(err, &httpErr))
			assert.Equal(t, tt.status, httpErr.Status)
			if tt.code != "" {
				assert.Equal(t, tt.code, httpErr.Code)
			}
		})
	}
}

func TestResolveWritesParamsAndNotifies(t *testing.T) {
	enqueuer := &fakeEnqueuer{}
	manager := sessionFor("333333333", user.RoleStaffManager)

	var got repository.ResolveParams
	var gotID int64
	apply := func(_ context.Context, id int64, p repository.ResolveParams) (string, error) {
		gotID, got = id, p
		return requesterCedula, nil
	}

	ok, err := newTestResolver(enqueuer, utils.Ptr("luis@example.com")).
		resolve(context.Background(), manager, model.KindOmision, omision.Decisiones,
			&model.RespondRequest{ID: 9, Decision: "Denegar", Comentario: "Sin respaldo"}, apply)
	require.NoError(t, err)
	assert.True(t, ok.OK)

	assert.Equal(t, int64(9), gotID)
	assert.Equal(t, "Denegar", got.Estado)
	assert.Equal(t, "333333333", got.Por)
	assert.Equal(t, manager.User.FullName(), got.Nombre)
	require.NotNil(t, got.Comentario)
	assert.Equal(t, "Sin respaldo", *got.Comentario)

	require.Len(t, enqueuer.tasks, 1)
	assert.Equal(t, job.TaskResolutionEmail, enqueuer.tasks[0].Type())

	var payload job.ResolutionEmailPayload
	require.NoError(t, json.Unmarshal(enqueuer.tasks[0].Payload(), &payload))
	assert.Equal(t, "luis@example.com", payload.To)
	assert.Equal(t, int64(9), payload.Folio)
	assert.False(t, payload.Aprobado)
}

func TestResolveSucceedsWhenEnqueueFails(t *testing.T) {
	enqueuer := &fakeEnqueuer{err: errors.New("redis down")}
	apply := func(context.Context, int64, repository.ResolveParams) (string, error) {
		return requesterCedula, nil
	}

	ok, err := newTestResolver(enqueuer, utils.Ptr("luis@example.com")).
		resolve(context.Background(), sessionFor("333333333", user.RoleStaffManager), model.KindOmision, omision.Decisiones,
			&model.RespondRequest{ID: 4, Decision: "Aceptar"}, apply)

	require.NoError(t, err)
	assert.True(t, ok.OK)
	assert.Len(t, enqueuer.tasks, 1)
}

func TestResolveSkipsNoticeWithoutCorreo(t *testing.T) {
	enqueuer := &fakeEnqueuer{}
	apply := func(context.Context, int64, repository.ResolveParams) (string, error) {
		return requesterCedula, nil
	}

	_, err := newTestResolver(enqueuer, nil).
		resolve(context.Background(), sessionFor("333333333", user.RoleStaffManager), model.KindOmision, omision.Decisiones,
			&model.RespondRequest{ID: 4, Decision: "Aceptar"}, apply)

	require.NoError(t, err)
	assert.Empty(t, enqueuer.tasks)
}
