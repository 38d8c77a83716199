// Package repl is the terminal front end of the assistant. Plain lines go to
// the chat session as typed text; a leading slash selects a local command.
package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"ledger-assistant/internal/chat"
)

// Options configures Run.
type Options struct {
	// DownloadDir receives generated invoice PDFs. Empty means the working
	// directory.
	DownloadDir string
	Logger      zerolog.Logger
}

var errExit = errors.New("exit")

// Run drives session from reader until EOF or /quit.
func Run(ctx context.Context, session *chat.Session, reader *bufio.Reader, out io.Writer, opts Options) error {
	d := newDisplay(out)
	d.banner()
	for _, m := range session.History() {
		d.message(m)
	}

	submit := func(in chat.Input) error {
		replies, err := session.Submit(ctx, in)
		if errors.Is(err, chat.ErrBusy) {
			d.notice("Still working on the previous message, please wait.")
			return nil
		}
		if err != nil {
			return err
		}
		for _, m := range replies {
			d.message(m)
			if m.Attachment == nil {
				continue
			}
			path, err := saveAttachment(opts.DownloadDir, m.Attachment)
			if err != nil {
				opts.Logger.Error().Err(err).Str("filename", m.Attachment.Filename).Msg("saving attachment failed")
				d.notice("Could not save " + m.Attachment.Filename + ": " + err.Error())
				continue
			}
			d.notice("Saved " + path)
		}
		return nil
	}

	dispatchSlash := func(input string) error {
		tokens := strings.Fields(strings.TrimPrefix(input, "/"))
		if len(tokens) == 0 {
			return nil
		}
		cmd := strings.ToLower(tokens[0])
		args := tokens[1:]

		switch cmd {
		case "upload", "u":
			if len(args) < 1 {
				d.notice("Usage: /upload <path-to-bill>")
				return nil
			}
			doc, err := readUpload(strings.Join(args, " "))
			if err != nil {
				d.notice(err.Error())
				return nil
			}
			return submit(chat.Input{Upload: doc})

		case "log", "history":
			d.history(session.History())

		case "help", "h":
			d.help()

		case "exit", "quit", "e", "q":
			return errExit

		default:
			d.notice(fmt.Sprintf("Unknown command: /%s  (type /help for all commands)", cmd))
		}
		return nil
	}

	for {
		d.prompt()
		input, readErr := reader.ReadString('\n')
		input = strings.TrimSpace(input)

		switch {
		case input == "":
		case strings.HasPrefix(input, "/"):
			if err := dispatchSlash(input); err != nil {
				if errors.Is(err, errExit) {
					d.notice("Goodbye!")
					return nil
				}
				return err
			}
		default:
			if err := submit(chat.Input{Text: input}); err != nil {
				return err
			}
		}

		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				return nil
			}
			return readErr
		}
	}
}
