package medapi

import (
	"context"
	"net/http"

	"med-reminder/internal/domain/assistant"
	"med-reminder/internal/domain/reminders"
)

var (
	_ assistant.Gateway = (*Client)(nil)
	_ reminders.Asker   = (*Client)(nil)
)

func (c *Client) SendMessage(ctx context.Context, message string) (string, error) {
	var out replyData
	if err := c.call(ctx, http.MethodPost, "/api/chat/message", nil, messageBody{Message: message}, &out); err != nil {
		return "", err
	}
	return out.Reply, nil
}

func (c *Client) BMIAnalysis(ctx context.Context) (string, error) {
	var out analysisData
	if err := c.call(ctx, http.MethodGet, "/api/chat/bmi-analysis", nil, nil, &out); err != nil {
		return "", err
	}
	return out.Analysis, nil
}

func (c *Client) InteractionAnalysis(ctx context.Context) (string, error) {
	var out analysisData
	if err := c.call(ctx, http.MethodGet, "/api/chat/interaction-analysis", nil, nil, &out); err != nil {
		return "", err
	}
	return out.Analysis, nil
}
