package gmail

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedBoundary() string { return "testboundary" }

func TestComposeBuild_PlainText(t *testing.T) {
	c := Compose{
		From:      "sender@example.com",
		To:        []string{"a@example.com", "b@example.com"},
		Subject:   "Hello",
		Text:      "line one\nline two",
		Date:      time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		MessageID: "<fixed@conduit>",
	}

	raw, err := c.Build()
	require.NoError(t, err)
	msg := string(raw)

	assert.Contains(t, msg, "From: sender@example.com\r\n")
	assert.Contains(t, msg, "To: a@example.com, b@example.com\r\n")
	assert.Contains(t, msg, "Subject: Hello\r\n")
	assert.Contains(t, msg, "Message-ID: <fixed@conduit>\r\n")
	assert.Contains(t, msg, "MIME-Version: 1.0\r\n")
	assert.Contains(t, msg, `Content-Type: text/plain; charset="UTF-8"`)
	assert.Contains(t, msg, "line one\r\nline two")
	assert.NotContains(t, msg, "multipart")
}

func TestComposeBuild_NoRecipients(t *testing.T) {
	c := Compose{Subject: "orphan", Text: "body"}

	_, err := c.Build()
	assert.ErrorIs(t, err, ErrNoRecipients)
}

func TestComposeBuild_MarkdownAlternative(t *testing.T) {
	c := Compose{
		From:         "sender@example.com",
		To:           []string{"a@example.com"},
		Subject:      "md",
		Text:         "# Title\n\nsome *emphasis*",
		Markdown:     true,
		BoundaryFunc: fixedBoundary,
	}

	raw, err := c.Build()
	require.NoError(t, err)
	msg := string(raw)

	assert.Contains(t, msg, `multipart/alternative; boundary="testboundary"`)
	assert.Contains(t, msg, `Content-Type: text/plain; charset="UTF-8"`)
	assert.Contains(t, msg, `Content-Type: text/html; charset="UTF-8"`)
	assert.Contains(t, msg, "<h1>Title</h1>")
	assert.Contains(t, msg, "<em>emphasis</em>")

	// Plain part must precede the HTML part so clients prefer HTML.
	textIdx := strings.Index(msg, "text/plain")
	htmlIdx := strings.Index(msg, "text/html")
	assert.Less(t, textIdx, htmlIdx)
	assert.True(t, strings.HasSuffix(msg, "--testboundary--\r\n"))
}

func TestComposeBuild_SignatureAppended(t *testing.T) {
	c := Compose{
		From:      "sender@example.com",
		To:        []string{"a@example.com"},
		Text:      "body",
		Signature: "Jo <jo@example.com>",
	}

	raw, err := c.Build()
	require.NoError(t, err)

	assert.Contains(t, string(raw), "-- \r\nJo <jo@example.com>")
}

func TestComposeBuild_SignatureEscapedInHTML(t *testing.T) {
	c := Compose{
		From:         "sender@example.com",
		To:           []string{"a@example.com"},
		Text:         "body",
		Markdown:     true,
		Signature:    "Jo <jo@example.com>",
		BoundaryFunc: fixedBoundary,
	}

	raw, err := c.Build()
	require.NoError(t, err)

	assert.Contains(t, string(raw), "-- <br>Jo &lt;jo@example.com&gt;")
}

func TestComposeBuild_Attachments(t *testing.T) {
	c := Compose{
		From:    "sender@example.com",
		To:      []string{"a@example.com"},
		Subject: "with attachment",
		Text:    "see attached",
		Attachments: []Attachment{
			{Filename: "notes.txt", Data: []byte("attached content")},
		},
		BoundaryFunc: fixedBoundary,
	}

	raw, err := c.Build()
	require.NoError(t, err)
	msg := string(raw)

	assert.Contains(t, msg, `multipart/mixed; boundary="testboundary"`)
	assert.Contains(t, msg, `Content-Disposition: attachment; filename="notes.txt"`)
	assert.Contains(t, msg, "Content-Transfer-Encoding: base64")
	// text/plain falls out of mime.TypeByExtension for .txt
	assert.Contains(t, msg, "text/plain")
}

func TestComposeBuild_AttachmentWithoutFilename(t *testing.T) {
	c := Compose{
		To:          []string{"a@example.com"},
		Text:        "body",
		Attachments: []Attachment{{Data: []byte("x")}},
	}

	_, err := c.Build()
	assert.Error(t, err)
}

func TestComposeBuild_Threading(t *testing.T) {
	c := Compose{
		From:      "sender@example.com",
		To:        []string{"a@example.com"},
		Text:      "reply",
		InReplyTo: "<parent@host>",
	}

	raw, err := c.Build()
	require.NoError(t, err)
	msg := string(raw)

	assert.Contains(t, msg, "In-Reply-To: <parent@host>\r\n")
	// References defaults to In-Reply-To when unset.
	assert.Contains(t, msg, "References: <parent@host>\r\n")
}

func TestComposeBuild_SubjectEncoding(t *testing.T) {
	c := Compose{
		From:    "sender@example.com",
		To:      []string{"a@example.com"},
		Subject: "héllo wörld",
		Text:    "body",
	}

	raw, err := c.Build()
	require.NoError(t, err)

	assert.Contains(t, string(raw), "Subject: =?utf-8?q?")
}

func TestToCRLF(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "bare LF normalised", in: "a\nb", want: "a\r\nb"},
		{name: "existing CRLF preserved", in: "a\r\nb", want: "a\r\nb"},
		{name: "mixed endings", in: "a\r\nb\nc", want: "a\r\nb\r\nc"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, toCRLF(tt.in))
		})
	}
}

func TestWrapBase64(t *testing.T) {
	out := wrapBase64(make([]byte, 100))

	for _, line := range strings.Split(strings.TrimRight(out, "\r\n"), "\r\n") {
		assert.LessOrEqual(t, len(line), 76)
	}
	assert.True(t, strings.HasSuffix(out, "\r\n"))
}
