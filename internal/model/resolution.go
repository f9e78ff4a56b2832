package model

import (
	"strings"

	"github.com/deppfellow/mipp-portal/internal/lib/utils"
	"github.com/deppfellow/mipp-portal/internal/validation"
)

const (
	MaxComentario         = 300
	MinDenialComentario   = 5
	decisionNoSolucionado = "No solucionado"
)

// RespondRequest is the body of every /:id/responder endpoint.
type RespondRequest struct {
	ID         int64  `param:"id" json:"-" validate:"required,gt=0"`
	Decision   string `json:"decision" validate:"required,max=80"`
	Comentario string `json:"comentario" validate:"max=300"`
}

func (r *RespondRequest) Validate() error {
	r.Decision = strings.TrimSpace(r.Decision)
	r.Comentario = strings.TrimSpace(r.Comentario)
	return validation.Struct(r)
}

// IsDenial reports whether a decision rejects the request and therefore
// needs an explanation.
func IsDenial(decision string) bool {
	return strings.Contains(utils.FoldAccents(decision), "denegar") || decision == decisionNoSolucionado
}

// CheckDecision validates a decision against the kind's allowed set.
func CheckDecision(allowed []string, decision, comentario string) error {
	found := false
	for _, a := range allowed {
		if a == decision {
			found = true
			break
		}
	}
	if !found {
		return validation.CustomValidationErrors{{
			Field:   "decision",
			Message: "Decisión inválida, debe ser una de: " + strings.Join(allowed, ", "),
		}}
	}

	if len([]rune(comentario)) > MaxComentario {
		return validation.CustomValidationErrors{{Field: "comentario", Message: "El comentario no puede exceder 300 caracteres"}}
	}

	if IsDenial(decision) && len([]rune(strings.TrimSpace(comentario))) < MinDenialComentario {
		return validation.CustomValidationErrors{{
			Field:   "comentario",
			Message: "Debe indicar un comentario de al menos 5 caracteres al denegar",
		}}
	}

	return nil
}
