package notify

import (
	"context"
	"errors"
	"net/http"
)

// Discord posts to an execute-webhook URL.
type Discord struct {
	Webhook string
	Client  *http.Client
}

func NewDiscord(webhook string) *Discord {
	if webhook == "" {
		return nil
	}
	return &Discord{Webhook: webhook, Client: webhookClient()}
}

type discordPayload struct {
	Content string `json:"content"`
}

func (d *Discord) Send(ctx context.Context, title, text string) error {
	if d == nil || d.Webhook == "" {
		return errors.New("discord disabled")
	}
	return postJSON(ctx, d.Client, d.Webhook, discordPayload{Content: "**" + title + "**\n" + text})
}
