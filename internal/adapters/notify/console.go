package notify

import (
	"context"
	"io"
	"os"

	"github.com/fatih/color"
)

// Console prints batches to a terminal or cron log.
type Console struct {
	Out io.Writer
}

func (c Console) Send(_ context.Context, title, body string) error {
	out := c.Out
	if out == nil {
		out = os.Stdout
	}

	cyan := color.New(color.FgCyan, color.Bold)
	if _, err := cyan.Fprintln(out, title); err != nil {
		return err
	}
	_, err := io.WriteString(out, body+"\n")
	return err
}
