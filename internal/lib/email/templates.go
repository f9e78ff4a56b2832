package email

import "embed"

type Template string

const (
	TemplateResolution Template = "resolution"
)

//go:embed templates/*.html
var templateFS embed.FS
