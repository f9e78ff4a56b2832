package handler

import (
	"github.com/deppfellow/mipp-portal/internal/model/justificacion"
	"github.com/deppfellow/mipp-portal/internal/model/omision"
	"github.com/deppfellow/mipp-portal/internal/model/reporte"
	"github.com/deppfellow/mipp-portal/internal/model/solicitud"
	"github.com/deppfellow/mipp-portal/internal/server"
	"github.com/deppfellow/mipp-portal/internal/service"
)

type (
	SolicitudHandler     = RequestHandler[*solicitud.CreateSolicitudRequest, *solicitud.Solicitud, *solicitud.Detail]
	JustificacionHandler = RequestHandler[*justificacion.CreateJustificacionRequest, *justificacion.Justificacion, *justificacion.Detail]
	OmisionHandler       = RequestHandler[*omision.CreateOmisionRequest, *omision.Omision, *omision.Detail]
	ReporteHandler       = RequestHandler[*reporte.CreateReporteRequest, *reporte.Reporte, *reporte.Detail]
)

// Handlers groups every HTTP handler so the router receives one value.
type Handlers struct {
	Health          *HealthHandler
	Me              *MeHandler
	Historial       *HistorialHandler
	Solicitudes     *SolicitudHandler
	Justificaciones *JustificacionHandler
	Omisiones       *OmisionHandler
	Reportes        *ReporteHandler
	Staff           *StaffHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:          NewHealthHandler(s),
		Me:              NewMeHandler(s),
		Historial:       NewHistorialHandler(s, services.Historial),
		Solicitudes:     NewRequestHandler[*solicitud.CreateSolicitudRequest, *solicitud.Solicitud, *solicitud.Detail](s, services.Solicitudes),
		Justificaciones: NewRequestHandler[*justificacion.CreateJustificacionRequest, *justificacion.Justificacion, *justificacion.Detail](s, services.Justificaciones),
		Omisiones:       NewRequestHandler[*omision.CreateOmisionRequest, *omision.Omision, *omision.Detail](s, services.Omisiones),
		Reportes:        NewRequestHandler[*reporte.CreateReporteRequest, *reporte.Reporte, *reporte.Detail](s, services.Reportes),
		Staff:           NewStaffHandler(s, services.Staff),
	}
}
