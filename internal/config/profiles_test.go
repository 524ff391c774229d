package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestNewStore_CreatesConfigDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "conduit")

	s, err := NewStore(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, filepath.Join(dir, "profiles.toml"), s.FilePath())
}

func TestStore_FirstProfileBecomesDefault(t *testing.T) {
	s := newTestStore(t)

	s.SetProfile("work", &Profile{})
	s.SetProfile("personal", &Profile{})

	assert.Equal(t, "work", s.DefaultProfile())
}

func TestStore_ProfileResolution(t *testing.T) {
	t.Run("explicit name", func(t *testing.T) {
		s := newTestStore(t)
		s.SetProfile("work", &Profile{TikTok: TikTokCredentials{AccessToken: "tok"}})

		p, err := s.Profile("work")
		require.NoError(t, err)
		assert.Equal(t, "tok", p.TikTok.AccessToken)
	})

	t.Run("empty name resolves to default", func(t *testing.T) {
		s := newTestStore(t)
		s.SetProfile("work", &Profile{})
		s.SetProfile("personal", &Profile{})
		require.NoError(t, s.SetDefaultProfile("personal"))

		p, err := s.Profile("")
		require.NoError(t, err)
		assert.NotNil(t, p)
		assert.Equal(t, "personal", s.DefaultProfile())
	})

	t.Run("sole profile wins without a default", func(t *testing.T) {
		s := newTestStore(t)
		s.SetProfile("only", &Profile{Webflow: WebflowCredentials{Token: "wf"}})
		// Clear the implicit default to exercise the sole-profile path.
		s.data.DefaultProfile = ""

		p, err := s.Profile("")
		require.NoError(t, err)
		assert.Equal(t, "wf", p.Webflow.Token)
	})

	t.Run("missing profile", func(t *testing.T) {
		s := newTestStore(t)

		_, err := s.Profile("ghost")
		assert.ErrorIs(t, err, ErrProfileNotFound)
	})
}

func TestStore_SaveAndLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()

	s, err := NewStore(dir)
	require.NoError(t, err)
	s.SetProfile("work", &Profile{
		Google: GoogleCredentials{
			ClientID:     "client-id",
			RefreshToken: "refresh",
		},
		TikTok: TikTokCredentials{AccessToken: "tt", AdvertiserID: "adv"},
	})
	require.NoError(t, s.Save())

	// File must not be world readable.
	info, err := os.Stat(s.FilePath())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	reloaded, err := NewStore(dir)
	require.NoError(t, err)

	p, err := reloaded.Profile("work")
	require.NoError(t, err)
	assert.Equal(t, "refresh", p.Google.RefreshToken)
	assert.Equal(t, "adv", p.TikTok.AdvertiserID)
	assert.Equal(t, "work", reloaded.DefaultProfile())
}

func TestStore_DeleteProfile(t *testing.T) {
	s := newTestStore(t)
	s.SetProfile("work", &Profile{})

	require.NoError(t, s.DeleteProfile("work"))

	_, err := s.Profile("work")
	assert.ErrorIs(t, err, ErrProfileNotFound)
	// Deleting the default clears it.
	assert.Empty(t, s.DefaultProfile())

	assert.ErrorIs(t, s.DeleteProfile("work"), ErrProfileNotFound)
}

func TestStore_ListProfilesSorted(t *testing.T) {
	s := newTestStore(t)
	s.SetProfile("zeta", &Profile{})
	s.SetProfile("alpha", &Profile{})
	s.SetProfile("mid", &Profile{})

	assert.Equal(t, []string{"alpha", "mid", "zeta"}, s.ListProfiles())
}

func TestStore_SetDefaultProfileValidates(t *testing.T) {
	s := newTestStore(t)

	assert.ErrorIs(t, s.SetDefaultProfile("ghost"), ErrProfileNotFound)
}

func TestStaticTokenProvider(t *testing.T) {
	t.Run("with token", func(t *testing.T) {
		p := NewStaticTokenProvider("tok")
		assert.True(t, p.IsAuthenticated())

		tok, err := p.GetToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "tok", tok)
	})

	t.Run("empty token", func(t *testing.T) {
		p := NewStaticTokenProvider("")
		assert.False(t, p.IsAuthenticated())

		_, err := p.GetToken(context.Background())
		assert.ErrorIs(t, err, ErrNoToken)
	})
}

func TestGoogleTokenSource(t *testing.T) {
	t.Run("no credentials", func(t *testing.T) {
		_, err := GoogleTokenSource(context.Background(), GoogleCredentials{})
		assert.ErrorIs(t, err, ErrNoToken)
	})

	t.Run("access token only is static", func(t *testing.T) {
		ts, err := GoogleTokenSource(context.Background(), GoogleCredentials{AccessToken: "at"})
		require.NoError(t, err)

		tok, err := ts.Token()
		require.NoError(t, err)
		assert.Equal(t, "at", tok.AccessToken)
	})
}
