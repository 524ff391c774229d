package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conduit-labs/conduit-cli/internal/config"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestProfileAddAndList(t *testing.T) {
	useTestStore(t)

	out, err := runCommand(t, "profile", "add", "work")
	require.NoError(t, err)
	assert.Contains(t, out, `Profile "work" created.`)

	out, err = runCommand(t, "profile", "list")
	require.NoError(t, err)
	// The first profile becomes the default and is starred.
	assert.Contains(t, out, "* work")
	assert.Contains(t, out, "no credentials")
}

func TestProfileList_Empty(t *testing.T) {
	useTestStore(t)

	out, err := runCommand(t, "profile", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No profiles configured")
}

func TestProfileRemove(t *testing.T) {
	useTestStore(t)

	_, err := runCommand(t, "profile", "add", "work")
	require.NoError(t, err)

	out, err := runCommand(t, "profile", "remove", "work")
	require.NoError(t, err)
	assert.Contains(t, out, `Profile "work" removed.`)

	_, err = runCommand(t, "profile", "remove", "work")
	assert.ErrorIs(t, err, config.ErrProfileNotFound)
}

func TestProfileSetDefault(t *testing.T) {
	useTestStore(t)

	_, err := runCommand(t, "profile", "add", "work")
	require.NoError(t, err)
	_, err = runCommand(t, "profile", "add", "personal")
	require.NoError(t, err)

	out, err := runCommand(t, "profile", "set-default", "personal")
	require.NoError(t, err)
	assert.Contains(t, out, `Default profile set to "personal".`)
	assert.Equal(t, "personal", store.DefaultProfile())
}

func TestProfileList_ShowsConfiguredConnectors(t *testing.T) {
	useTestStore(t)

	store.SetProfile("work", &config.Profile{
		TikTok:  config.TikTokCredentials{AccessToken: "tt"},
		Webflow: config.WebflowCredentials{Token: "wf"},
	})

	out, err := runCommand(t, "profile", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "tiktok, webflow")
}
