package service

import (
	"github.com/deppfellow/mipp-portal/internal/lib/job"
	"github.com/deppfellow/mipp-portal/internal/repository"
	"github.com/deppfellow/mipp-portal/internal/server"
)

type Services struct {
	Sessions        *SessionService
	Solicitudes     *SolicitudService
	Justificaciones *JustificacionService
	Omisiones       *OmisionService
	Reportes        *ReporteService
	Staff           *StaffService
	Historial       *HistorialService
	Job             *job.JobService
}

func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	cfg := s.Config

	var enqueuer job.Enqueuer
	if s.Job != nil {
		enqueuer = s.Job.Client
	}

	clock := NewClock(repos.Clock, cfg.Portal.TimeZone)
	resolver := NewResolver(repos.Users, enqueuer)
	reports := NewReports(cfg.Portal.Institution, cfg.Portal.TimeZone)
	sessions := NewSessionService(repos.Users, s.Redis, cfg.Session.CacheTTL, s.Logger)

	return &Services{
		Sessions:        sessions,
		Solicitudes:     NewSolicitudService(repos.Solicitudes, clock, resolver, reports),
		Justificaciones: NewJustificacionService(repos.Justificaciones, repos.Solicitudes, clock, resolver, reports),
		Omisiones:       NewOmisionService(repos.Omisiones, clock, resolver, reports),
		Reportes:        NewReporteService(repos.Reportes, resolver, reports),
		Staff:           NewStaffService(repos.Users, sessions, cfg.Session.DefaultPassword),
		Historial:       NewHistorialService(repos.Historial),
		Job:             s.Job,
	}, nil
}
