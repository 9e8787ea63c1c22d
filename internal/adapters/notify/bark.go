package notify

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

const (
	barkDefaultServer = "https://api.day.app/"
	barkGroup         = "电信套餐用量监控"
)

// Bark pushes to the Bark iOS app. Key is either a device key or a full
// push URL.
type Bark struct {
	httpSink
	Key   string
	Sound string
}

func NewBark(key, sound string, client *http.Client) Bark {
	return Bark{httpSink: httpSink{HTTPClient: client}, Key: key, Sound: sound}
}

type barkRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Sound string `json:"sound,omitempty"`
	Group string `json:"group"`
}

type barkResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (b Bark) Send(ctx context.Context, title, body string) error {
	var resp barkResponse
	err := b.postJSON(ctx, b.endpoint(), barkRequest{Title: title, Body: body, Sound: b.Sound, Group: barkGroup}, &resp)
	if err != nil {
		return err
	}
	if resp.Code != 200 {
		return fmt.Errorf("code %d: %s", resp.Code, resp.Message)
	}
	return nil
}

func (b Bark) endpoint() string {
	if strings.HasPrefix(b.Key, "http://") || strings.HasPrefix(b.Key, "https://") {
		return strings.TrimRight(b.Key, "/")
	}
	return barkDefaultServer + b.Key
}
