package notify

import (
	"context"
	"fmt"
	"net/http"
)

const pushPlusEndpoint = "https://www.pushplus.plus/send"

type PushPlus struct {
	httpSink
	Token string
	// Topic targets a group; empty sends to the token owner only.
	Topic    string
	Endpoint string
}

func NewPushPlus(token, topic string, client *http.Client) PushPlus {
	return PushPlus{httpSink: httpSink{HTTPClient: client}, Token: token, Topic: topic, Endpoint: pushPlusEndpoint}
}

type pushPlusRequest struct {
	Token   string `json:"token"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Topic   string `json:"topic,omitempty"`
	// Template "txt" keeps the report's line breaks and emoji intact.
	Template string `json:"template"`
}

type pushPlusResponse struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

func (p PushPlus) Send(ctx context.Context, title, body string) error {
	endpoint := p.Endpoint
	if endpoint == "" {
		endpoint = pushPlusEndpoint
	}

	var resp pushPlusResponse
	err := p.postJSON(ctx, endpoint, pushPlusRequest{
		Token:    p.Token,
		Title:    title,
		Content:  body,
		Topic:    p.Topic,
		Template: "txt",
	}, &resp)
	if err != nil {
		return err
	}
	if resp.Code != 200 {
		return fmt.Errorf("code %d: %s", resp.Code, resp.Msg)
	}
	return nil
}
