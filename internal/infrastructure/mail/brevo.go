// Package mail implementa el envío de emails transaccionales vía Brevo.
package mail

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
)

const defaultBaseURL = "https://api.brevo.com/v3"

// BrevoClient cliente HTTP del API transaccional de Brevo.
type BrevoClient struct {
	http *resty.Client
}

// NewBrevoClient construye el cliente. baseURL vacío usa el endpoint oficial.
func NewBrevoClient(apiKey, baseURL string) *BrevoClient {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader("api-key", apiKey).
		SetHeader("Content-Type", "application/json")
	return &BrevoClient{http: c}
}

type sendTemplateRequest struct {
	To         []recipient       `json:"to"`
	TemplateID int               `json:"templateId"`
	Params     map[string]string `json:"params,omitempty"`
}

type recipient struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// SendTemplate dispara un email basado en template con sus parámetros.
func (c *BrevoClient) SendTemplate(ctx context.Context, to, name string, templateID int, params map[string]string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(sendTemplateRequest{
			To:         []recipient{{Email: to, Name: name}},
			TemplateID: templateID,
			Params:     params,
		}).
		Post("/smtp/email")
	if err != nil {
		return fmt.Errorf("brevo: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("brevo: status %d: %s", resp.StatusCode(), resp.String())
	}
	return nil
}
