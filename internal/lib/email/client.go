// Package email renders and delivers notification e-mails through Resend.
package email

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/deppfellow/mipp-portal/internal/config"
	"github.com/pkg/errors"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
)

// ErrDisabled is returned when no Resend API key is configured.
var ErrDisabled = errors.New("email delivery disabled: no resend api key")

type Client struct {
	client *resend.Client
	from   string
	logger *zerolog.Logger
}

func NewClient(cfg *config.Config, logger *zerolog.Logger) *Client {
	c := &Client{
		from:   cfg.Integration.EmailFrom,
		logger: logger,
	}
	if cfg.Integration.ResendAPIKey != "" {
		c.client = resend.NewClient(cfg.Integration.ResendAPIKey)
	}
	return c
}

// Enabled reports whether e-mails are actually sent.
func (c *Client) Enabled() bool {
	return c.client != nil
}

// Render executes a template into HTML.
func Render(templateName Template, data any) (string, error) {
	tmplPath := fmt.Sprintf("templates/%s.html", templateName)

	tmpl, err := template.ParseFS(templateFS, tmplPath)
	if err != nil {
		return "", errors.Wrapf(err, "failed to parse email template %s", templateName)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return "", errors.Wrapf(err, "failed to execute email template %s", templateName)
	}

	return body.String(), nil
}

func (c *Client) SendEmail(to, subject string, templateName Template, data any) error {
	if !c.Enabled() {
		return ErrDisabled
	}

	html, err := Render(templateName, data)
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    c.from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	}

	sent, err := c.client.Emails.Send(params)
	if err != nil {
		return errors.Wrap(err, "failed to send email")
	}

	c.logger.Debug().
		Str("email_id", sent.Id).
		Str("template", string(templateName)).
		Msg("email accepted by resend")

	return nil
}
