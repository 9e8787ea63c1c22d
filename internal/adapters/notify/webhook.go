package notify

import (
	"context"
	"net/http"
)

// Webhook posts {"title": ..., "body": ...} to an arbitrary endpoint.
type Webhook struct {
	httpSink
	URL string
}

func NewWebhook(url string, client *http.Client) Webhook {
	return Webhook{httpSink: httpSink{HTTPClient: client}, URL: url}
}

type webhookRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

func (w Webhook) Send(ctx context.Context, title, body string) error {
	return w.postJSON(ctx, w.URL, webhookRequest{Title: title, Body: body}, nil)
}
