package service

import (
	"github.com/deppfellow/mipp-portal/internal/lib/utils"
	"github.com/deppfellow/mipp-portal/internal/model"
	"github.com/deppfellow/mipp-portal/internal/model/user"
)

func trimmed(s *string) *string {
	return utils.NilIfBlank(s)
}

func firstRef(a model.AttachmentInput) *string {
	if url := utils.NilIfBlank(a.AdjuntoURL); url != nil {
		return url
	}
	return utils.NilIfBlank(a.AdjuntoPath)
}

func userPosicion(su *user.SessionUser) string {
	return utils.Deref(su.User.Posicion)
}
