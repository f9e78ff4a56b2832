// Package repository holds the SQL for every table. Repositories return
// pgx errors unchanged; services translate them with sqlerr.
package repository

import (
	"github.com/deppfellow/mipp-portal/internal/server"
)

type Repositories struct {
	Users           *UserRepository
	Solicitudes     *SolicitudRepository
	Justificaciones *JustificacionRepository
	Omisiones       *OmisionRepository
	Reportes        *ReporteRepository
	Clock           *ClockRepository
	Historial       *HistorialRepository
}

func NewRepositories(s *server.Server) *Repositories {
	pool := s.DB.Pool

	return &Repositories{
		Users:           NewUserRepository(pool),
		Solicitudes:     NewSolicitudRepository(pool),
		Justificaciones: NewJustificacionRepository(pool),
		Omisiones:       NewOmisionRepository(pool),
		Reportes:        NewReporteRepository(pool),
		Clock:           NewClockRepository(pool),
		Historial:       NewHistorialRepository(pool),
	}
}
