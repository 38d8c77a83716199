package repl

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"ledger-assistant/internal/chat"
)

type display struct {
	out   io.Writer
	bot   *color.Color
	user  *color.Color
	stamp *color.Color
	info  *color.Color
}

func newDisplay(out io.Writer) *display {
	return &display{
		out:   out,
		bot:   color.New(color.FgCyan),
		user:  color.New(color.FgGreen, color.Bold),
		stamp: color.New(color.FgHiBlack),
		info:  color.New(color.FgYellow),
	}
}

func (d *display) prompt() {
	d.user.Fprint(d.out, "\n> ")
}

func (d *display) banner() {
	color.New(color.BgBlue, color.FgWhite).Fprint(d.out, " Ledger Assistant ")
	fmt.Fprintln(d.out)
	fmt.Fprintln(d.out, "Type a message to chat. /upload <file> sends a bill, /help lists commands.")
	fmt.Fprintln(d.out, strings.Repeat("-", 70))
}

// message prints one bubble. Continuation lines are indented under the
// sender tag.
func (d *display) message(m chat.Message) {
	c, tag := d.bot, "bot"
	if m.Sender == chat.SenderUser {
		c, tag = d.user, "you"
	}
	if !m.Time.IsZero() {
		d.stamp.Fprintf(d.out, "[%s] ", m.Time.Format("15:04"))
	}
	c.Fprintf(d.out, "%s: ", tag)
	lines := strings.Split(m.Text, "\n")
	fmt.Fprintln(d.out, lines[0])
	for _, l := range lines[1:] {
		fmt.Fprintln(d.out, "     "+l)
	}
	if m.Attachment != nil {
		d.info.Fprintf(d.out, "     📄 %s (%d bytes)\n", m.Attachment.Filename, len(m.Attachment.Data))
	}
}

func (d *display) history(msgs []chat.Message) {
	fmt.Fprintln(d.out)
	fmt.Fprintln(d.out, strings.Repeat("=", 70))
	fmt.Fprintf(d.out, "  CONVERSATION LOG (%d messages)\n", len(msgs))
	fmt.Fprintln(d.out, strings.Repeat("=", 70))
	for _, m := range msgs {
		d.message(m)
	}
	fmt.Fprintln(d.out, strings.Repeat("=", 70))
}

func (d *display) notice(text string) {
	d.info.Fprintln(d.out, text)
}

func (d *display) help() {
	fmt.Fprintln(d.out)
	fmt.Fprintln(d.out, "Commands:")
	fmt.Fprintln(d.out, "  /upload <path>   send a bill (pdf, jpeg, png, webp) for expense entry")
	fmt.Fprintln(d.out, "  /log             show the conversation so far")
	fmt.Fprintln(d.out, "  /help            show this list")
	fmt.Fprintln(d.out, "  /quit            leave")
	fmt.Fprintln(d.out)
	fmt.Fprintln(d.out, "Anything else is sent to the assistant, e.g. \"summary\", \"inventory\",")
	fmt.Fprintln(d.out, "\"sold 2 rice 100\", \"invoice\" or \"settings\".")
}
