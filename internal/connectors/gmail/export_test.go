package gmail

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteMboxRecord_Separator(t *testing.T) {
	var buf bytes.Buffer
	date := time.Date(2026, 8, 1, 9, 30, 0, 0, time.UTC)

	err := WriteMboxRecord(&buf, "alice@example.com", date, []byte("Subject: hi\r\n\r\nbody"))
	require.NoError(t, err)

	lines := strings.Split(buf.String(), "\n")
	assert.Equal(t, "From alice@example.com Sat Aug  1 09:30:00 2026", lines[0])
	assert.Equal(t, "Subject: hi", lines[1])
}

func TestWriteMboxRecord_Defaults(t *testing.T) {
	var buf bytes.Buffer

	err := WriteMboxRecord(&buf, "", time.Time{}, []byte("body"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(buf.String(), "From MAILER-DAEMON "))
}

func TestWriteMboxRecord_Quoting(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "From line gets quoted",
			body: "From here on out",
			want: ">From here on out",
		},
		{
			name: "already quoted line gains another level",
			body: ">From earlier quoting",
			want: ">>From earlier quoting",
		},
		{
			name: "mid-word From untouched",
			body: "xFrom is not a separator",
			want: "xFrom is not a separator",
		},
		{
			name: "From without trailing space untouched",
			body: "From: header style",
			want: "From: header style",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := WriteMboxRecord(&buf, "a@b", time.Now(), []byte(tt.body))
			require.NoError(t, err)

			lines := strings.Split(buf.String(), "\n")
			assert.Equal(t, tt.want, lines[1])
		})
	}
}

func TestWriteMboxRecord_BlankLineTerminated(t *testing.T) {
	var buf bytes.Buffer

	err := WriteMboxRecord(&buf, "a@b", time.Now(), []byte("body"))
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(buf.String(), "body\n\n"))
}

func TestWriteMboxRecord_CRLFNormalised(t *testing.T) {
	var buf bytes.Buffer

	err := WriteMboxRecord(&buf, "a@b", time.Now(), []byte("one\r\ntwo\r\n"))
	require.NoError(t, err)

	assert.NotContains(t, buf.String(), "\r")
	assert.Contains(t, buf.String(), "one\ntwo\n")
}

func TestEnvelope(t *testing.T) {
	raw := []byte("From: Alice <alice@example.com>\r\n" +
		"Date: Sat, 01 Aug 2026 09:30:00 +0000\r\n" +
		"Subject: hi\r\n\r\nbody")

	from, date := envelope(raw)

	assert.Equal(t, "alice@example.com", from)
	assert.Equal(t, 2026, date.Year())
	assert.Equal(t, time.August, date.Month())
}

func TestEnvelope_Unparseable(t *testing.T) {
	from, date := envelope([]byte("not a message"))

	assert.Empty(t, from)
	assert.True(t, date.IsZero())
}
