package gmail

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/mail"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/conduit-labs/conduit-cli/internal/logger"
)

// Export formats.
const (
	ExportMbox = "mbox"
	ExportEML  = "eml"
)

// fromLineRe matches body lines that must be quoted in mbox output
// (mboxrd quoting: any ">"-prefixed run before "From ").
var fromLineRe = regexp.MustCompile(`^>*From `)

// WriteMboxRecord appends one message to an mbox stream: the "From "
// separator line with envelope sender and asctime date, the quoted
// message body, and a terminating blank line.
func WriteMboxRecord(w io.Writer, envelopeFrom string, date time.Time, raw []byte) error {
	if envelopeFrom == "" {
		envelopeFrom = "MAILER-DAEMON"
	}
	if date.IsZero() {
		date = time.Now()
	}

	if _, err := fmt.Fprintf(w, "From %s %s\n", envelopeFrom, date.UTC().Format(time.ANSIC)); err != nil {
		return err
	}

	body := strings.ReplaceAll(string(raw), "\r\n", "\n")
	for _, line := range strings.Split(body, "\n") {
		if fromLineRe.MatchString(line) {
			line = ">" + line
		}
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return err
		}
	}

	_, err := io.WriteString(w, "\n")
	return err
}

// envelope extracts the sender address and date from a raw RFC 2822
// message for the mbox separator line. Unparseable messages fall back
// to defaults rather than failing the export.
func envelope(raw []byte) (string, time.Time) {
	msg, err := mail.ReadMessage(bytes.NewReader(raw))
	if err != nil {
		return "", time.Time{}
	}

	from := ""
	if addr, err := mail.ParseAddress(msg.Header.Get("From")); err == nil {
		from = addr.Address
	}

	date, err := msg.Header.Date()
	if err != nil {
		date = time.Time{}
	}
	return from, date
}

// ExportMessagesMbox fetches every message matching the query in raw
// format and writes a single mbox stream. Returns the number of
// messages written.
func (c *Client) ExportMessagesMbox(ctx context.Context, w io.Writer, query string, max int) (int, error) {
	ids, err := c.SearchMessageIDs(ctx, query, nil, max)
	if err != nil {
		return 0, err
	}

	written := 0
	for _, id := range ids {
		select {
		case <-ctx.Done():
			return written, ctx.Err()
		default:
		}

		raw, err := c.GetRawMessage(ctx, id)
		if err != nil {
			return written, fmt.Errorf("fetch message %s: %w", id, err)
		}

		from, date := envelope(raw)
		if err := WriteMboxRecord(w, from, date, raw); err != nil {
			return written, fmt.Errorf("write message %s: %w", id, err)
		}
		written++
	}

	logger.Info("gmail: exported %d messages to mbox", written)
	return written, nil
}

// ExportMessagesEML fetches every message matching the query and writes
// one <id>.eml file per message into dir. Returns the number of files
// written.
func (c *Client) ExportMessagesEML(ctx context.Context, dir, query string, max int) (int, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return 0, err
	}

	ids, err := c.SearchMessageIDs(ctx, query, nil, max)
	if err != nil {
		return 0, err
	}

	written := 0
	for _, id := range ids {
		select {
		case <-ctx.Done():
			return written, ctx.Err()
		default:
		}

		raw, err := c.GetRawMessage(ctx, id)
		if err != nil {
			return written, fmt.Errorf("fetch message %s: %w", id, err)
		}

		path := filepath.Join(dir, id+".eml")
		if err := os.WriteFile(path, raw, 0644); err != nil {
			return written, fmt.Errorf("write %s: %w", path, err)
		}
		written++
	}

	logger.Info("gmail: exported %d messages to %s", written, dir)
	return written, nil
}
