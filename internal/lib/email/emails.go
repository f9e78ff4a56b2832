package email

import "fmt"

// ResolutionData fills the resolution template.
type ResolutionData struct {
	Institution string
	Nombre      string
	Tipo        string
	Folio       int64
	Decision    string
	Comentario  string
	Aprobado    bool
}

// SendResolutionEmail tells a requester that a manager answered their request.
func (c *Client) SendResolutionEmail(to string, data ResolutionData) error {
	subject := fmt.Sprintf("%s #%d: %s", data.Tipo, data.Folio, data.Decision)

	return c.SendEmail(to, subject, TemplateResolution, data)
}
