package gmail

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"html"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yuin/goldmark"
)

const crlf = "\r\n"

// ErrNoRecipients indicates a compose without any To address.
var ErrNoRecipients = errors.New("gmail: message has no recipients")

// Attachment is a file attached to an outgoing message.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Compose describes an outgoing message. Build assembles it into an
// RFC 2822 payload suitable for Users.Messages.Send.
type Compose struct {
	From    string
	To      []string
	Cc      []string
	Bcc     []string
	Subject string

	// Text is the plain body. When Markdown is set it is also rendered
	// to an HTML alternative.
	Text     string
	HTML     string
	Markdown bool

	// Signature is appended to both the plain and HTML representations.
	Signature string

	Attachments []Attachment

	// InReplyTo and References thread the message under an existing
	// conversation (RFC 2822 §3.6.4).
	InReplyTo  string
	References string

	// Date defaults to now. MessageID defaults to a generated ID.
	Date      time.Time
	MessageID string

	// BoundaryFunc overrides multipart boundary generation, for tests.
	BoundaryFunc func() string
}

// Build assembles the RFC 2822 message.
func (m *Compose) Build() ([]byte, error) {
	if len(m.To) == 0 {
		return nil, ErrNoRecipients
	}

	textBody, htmlBody, err := m.bodies()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	m.writeHeaders(&buf)

	switch {
	case len(m.Attachments) > 0:
		err = m.writeMixed(&buf, textBody, htmlBody)
	case htmlBody != "":
		m.writeAlternative(&buf, textBody, htmlBody, m.boundary())
	default:
		writeHeader(&buf, "Content-Type", `text/plain; charset="UTF-8"`)
		writeHeader(&buf, "Content-Transfer-Encoding", "8bit")
		buf.WriteString(crlf)
		buf.WriteString(toCRLF(textBody))
	}
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// bodies resolves the plain and HTML representations, rendering
// markdown and appending the signature as needed.
func (m *Compose) bodies() (string, string, error) {
	textBody := m.Text
	htmlBody := m.HTML

	if m.Markdown && htmlBody == "" {
		var out bytes.Buffer
		if err := goldmark.Convert([]byte(m.Text), &out); err != nil {
			return "", "", fmt.Errorf("render markdown: %w", err)
		}
		htmlBody = out.String()
	}

	if m.Signature != "" {
		textBody += "\n\n-- \n" + m.Signature
		if htmlBody != "" {
			htmlBody += "<br><br>-- <br>" + html.EscapeString(m.Signature)
		}
	}

	return textBody, htmlBody, nil
}

func (m *Compose) writeHeaders(buf *bytes.Buffer) {
	date := m.Date
	if date.IsZero() {
		date = time.Now()
	}
	messageID := m.MessageID
	if messageID == "" {
		messageID = fmt.Sprintf("<%s@conduit>", uuid.NewString())
	}

	writeHeader(buf, "From", m.From)
	writeHeader(buf, "To", strings.Join(m.To, ", "))
	if len(m.Cc) > 0 {
		writeHeader(buf, "Cc", strings.Join(m.Cc, ", "))
	}
	if len(m.Bcc) > 0 {
		writeHeader(buf, "Bcc", strings.Join(m.Bcc, ", "))
	}
	writeHeader(buf, "Subject", mime.QEncoding.Encode("utf-8", m.Subject))
	writeHeader(buf, "Date", date.Format(time.RFC1123Z))
	writeHeader(buf, "Message-ID", messageID)
	if m.InReplyTo != "" {
		writeHeader(buf, "In-Reply-To", m.InReplyTo)
		references := m.References
		if references == "" {
			references = m.InReplyTo
		}
		writeHeader(buf, "References", references)
	}
	writeHeader(buf, "MIME-Version", "1.0")
}

// writeAlternative writes a multipart/alternative body: plain text
// first, HTML last, so capable clients prefer the HTML part.
func (m *Compose) writeAlternative(buf *bytes.Buffer, textBody, htmlBody, boundary string) {
	writeHeader(buf, "Content-Type", fmt.Sprintf(`multipart/alternative; boundary="%s"`, boundary))
	buf.WriteString(crlf)

	buf.WriteString("--" + boundary + crlf)
	writeHeader(buf, "Content-Type", `text/plain; charset="UTF-8"`)
	writeHeader(buf, "Content-Transfer-Encoding", "8bit")
	buf.WriteString(crlf)
	buf.WriteString(toCRLF(textBody))
	buf.WriteString(crlf)

	buf.WriteString("--" + boundary + crlf)
	writeHeader(buf, "Content-Type", `text/html; charset="UTF-8"`)
	writeHeader(buf, "Content-Transfer-Encoding", "8bit")
	buf.WriteString(crlf)
	buf.WriteString(toCRLF(htmlBody))
	buf.WriteString(crlf)

	buf.WriteString("--" + boundary + "--" + crlf)
}

// writeMixed writes a multipart/mixed body wrapping the text (or
// text+HTML alternative) part plus base64-encoded attachments.
func (m *Compose) writeMixed(buf *bytes.Buffer, textBody, htmlBody string) error {
	mixed := m.boundary()
	writeHeader(buf, "Content-Type", fmt.Sprintf(`multipart/mixed; boundary="%s"`, mixed))
	buf.WriteString(crlf)

	buf.WriteString("--" + mixed + crlf)
	if htmlBody != "" {
		m.writeAlternative(buf, textBody, htmlBody, m.boundary())
	} else {
		writeHeader(buf, "Content-Type", `text/plain; charset="UTF-8"`)
		writeHeader(buf, "Content-Transfer-Encoding", "8bit")
		buf.WriteString(crlf)
		buf.WriteString(toCRLF(textBody))
		buf.WriteString(crlf)
	}

	for _, att := range m.Attachments {
		if att.Filename == "" {
			return errors.New("gmail: attachment without filename")
		}
		contentType := att.ContentType
		if contentType == "" {
			contentType = mime.TypeByExtension(filepath.Ext(att.Filename))
		}
		if contentType == "" {
			contentType = "application/octet-stream"
		}

		buf.WriteString("--" + mixed + crlf)
		writeHeader(buf, "Content-Type", fmt.Sprintf(`%s; name="%s"`, contentType, att.Filename))
		writeHeader(buf, "Content-Transfer-Encoding", "base64")
		writeHeader(buf, "Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, att.Filename))
		buf.WriteString(crlf)
		buf.WriteString(wrapBase64(att.Data))
		buf.WriteString(crlf)
	}

	buf.WriteString("--" + mixed + "--" + crlf)
	return nil
}

func (m *Compose) boundary() string {
	if m.BoundaryFunc != nil {
		return m.BoundaryFunc()
	}
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

func writeHeader(buf *bytes.Buffer, name, value string) {
	buf.WriteString(name)
	buf.WriteString(": ")
	buf.WriteString(value)
	buf.WriteString(crlf)
}

// toCRLF normalises bare LF line endings to CRLF.
func toCRLF(s string) string {
	s = strings.ReplaceAll(s, crlf, "\n")
	return strings.ReplaceAll(s, "\n", crlf)
}

// wrapBase64 encodes data and wraps it at the RFC 2045 76-column limit.
func wrapBase64(data []byte) string {
	encoded := base64.StdEncoding.EncodeToString(data)

	var sb strings.Builder
	for len(encoded) > 76 {
		sb.WriteString(encoded[:76])
		sb.WriteString(crlf)
		encoded = encoded[76:]
	}
	sb.WriteString(encoded)
	sb.WriteString(crlf)
	return sb.String()
}
