// Package model holds the types shared by every request kind. Kind-specific
// rows and DTOs live in the sub-packages.
package model

import (
	"strconv"
	"time"

	"github.com/deppfellow/mipp-portal/internal/validation"
)

// Kind identifies one of the four request workflows.
type Kind string

const (
	KindSolicitud     Kind = "solicitud"
	KindJustificacion Kind = "justificacion"
	KindOmision       Kind = "omision"
	KindReporteInfra  Kind = "reporte_infra"
)

// Label is the human title of the kind, as printed on reports and e-mails.
func (k Kind) Label() string {
	switch k {
	case KindSolicitud:
		return "Solicitud de Permiso"
	case KindJustificacion:
		return "Justificación"
	case KindOmision:
		return "Omisión de Marca"
	case KindReporteInfra:
		return "Reporte de Infraestructura"
	default:
		return string(k)
	}
}

// Table is the database table holding rows of the kind.
func (k Kind) Table() string {
	switch k {
	case KindSolicitud:
		return "solicitudes_permiso"
	case KindJustificacion:
		return "justificaciones"
	case KindOmision:
		return "omision_marca"
	case KindReporteInfra:
		return "reporte_infraestructura"
	default:
		return ""
	}
}

// PDFName is the download file name of a row's report.
func (k Kind) PDFName(id int64) string {
	switch k {
	case KindReporteInfra:
		return "reporte_infra_" + strconv.FormatInt(id, 10) + ".pdf"
	default:
		return string(k) + "_" + strconv.FormatInt(id, 10) + ".pdf"
	}
}

// Resolution holds the manager's answer to a request. It is embedded in
// every request row.
type Resolution struct {
	Estado              *string    `json:"estado"`
	RespuestaComentario *string    `json:"respuesta_comentario"`
	RespuestaEn         *time.Time `json:"respuesta_en"`
	RespuestaPor        *string    `json:"respuesta_por"`
	RespuestaNombre     *string    `json:"respuesta_nombre"`
}

// Attachment references an uploaded file by path or public URL.
type Attachment struct {
	ID         int64     `json:"id"`
	Path       *string   `json:"path"`
	PublicURL  *string   `json:"public_url"`
	Mime       *string   `json:"mime"`
	UploadedBy *string   `json:"uploaded_by_cedula"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// AttachmentInput is the optional attachment reference on create requests.
type AttachmentInput struct {
	AdjuntoURL  *string `json:"adjunto_url" validate:"omitempty,max=2048"`
	AdjuntoPath *string `json:"adjunto_path" validate:"omitempty,max=1024"`
	AdjuntoMime *string `json:"adjunto_mime" validate:"omitempty,max=255"`
}

// HasAttachment reports whether any reference was supplied.
func (a AttachmentInput) HasAttachment() bool {
	return (a.AdjuntoURL != nil && *a.AdjuntoURL != "") || (a.AdjuntoPath != nil && *a.AdjuntoPath != "")
}

// Created is the body returned by every create endpoint.
type Created struct {
	OK bool  `json:"ok"`
	ID int64 `json:"id"`
}

// OK is the body returned by mutations with nothing else to report.
type OK struct {
	OK bool `json:"ok"`
}

// PaginatedResponse wraps one page of results.
type PaginatedResponse[T any] struct {
	Items    []T `json:"items"`
	Total    int `json:"total"`
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// IDRequest binds the numeric :id path parameter.
type IDRequest struct {
	ID int64 `param:"id" validate:"required,gt=0"`
}

func (r *IDRequest) Validate() error {
	return validation.Struct(r)
}

// EmptyRequest is used by endpoints without input.
type EmptyRequest struct{}

func (r *EmptyRequest) Validate() error {
	return nil
}

// ListResponse wraps an unpaginated list.
type ListResponse[T any] struct {
	Items []T `json:"items"`
}

// File is a rendered download.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}
