// Package config implements the file-based profile store for the conduit
// CLI. A profile is a named set of per-vendor credentials, so one
// installation can drive several accounts (work Gmail, client Webflow
// site, agency TikTok advertiser) side by side.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/pelletier/go-toml/v2"
)

// EnvConfigDir overrides the default config directory when set.
const EnvConfigDir = "CONDUIT_CONFIG_DIR"

// ErrProfileNotFound indicates the named profile does not exist.
var ErrProfileNotFound = errors.New("config: profile not found")

// GoogleCredentials holds OAuth app credentials plus tokens for the
// Google connectors (Gmail, Drive, YouTube share one credential set).
type GoogleCredentials struct {
	ClientID     string `toml:"client_id,omitempty"`
	ClientSecret string `toml:"client_secret,omitempty"`
	RefreshToken string `toml:"refresh_token,omitempty"`
	AccessToken  string `toml:"access_token,omitempty"`
}

// TikTokCredentials holds a long-lived TikTok Marketing API access token
// and the advertiser the profile operates on.
type TikTokCredentials struct {
	AccessToken  string `toml:"access_token,omitempty"`
	AdvertiserID string `toml:"advertiser_id,omitempty"`
}

// WebflowCredentials holds a Webflow Data API bearer token and an
// optional default site.
type WebflowCredentials struct {
	Token  string `toml:"token,omitempty"`
	SiteID string `toml:"site_id,omitempty"`
}

// Profile is one named credential set.
type Profile struct {
	Google  GoogleCredentials  `toml:"google,omitempty"`
	TikTok  TikTokCredentials  `toml:"tiktok,omitempty"`
	Webflow WebflowCredentials `toml:"webflow,omitempty"`
}

// storeData is the on-disk TOML layout.
type storeData struct {
	DefaultProfile string              `toml:"default_profile,omitempty"`
	Profiles       map[string]*Profile `toml:"profiles"`
}

// Store is a TOML-backed profile store. Credentials live in a single
// file with 0600 permissions under the conduit config directory.
type Store struct {
	mu       sync.RWMutex
	filePath string
	data     storeData
}

// NewStore creates a profile store rooted at configDir. If configDir is
// empty, the CONDUIT_CONFIG_DIR environment variable is consulted and
// then ~/.conduit is used.
func NewStore(configDir string) (*Store, error) {
	if configDir == "" {
		configDir = os.Getenv(EnvConfigDir)
	}
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".conduit")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	s := &Store{
		filePath: filepath.Join(configDir, "profiles.toml"),
		data:     storeData{Profiles: make(map[string]*Profile)},
	}

	if err := s.Load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	return s, nil
}

// Load reads the profile file from disk, replacing in-memory state.
// A missing file leaves the store empty and returns the os error so
// callers can distinguish it with os.IsNotExist.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.filePath)
	if err != nil {
		return err
	}

	var data storeData
	if err := toml.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("parse %s: %w", s.filePath, err)
	}
	if data.Profiles == nil {
		data.Profiles = make(map[string]*Profile)
	}
	s.data = data
	return nil
}

// Save writes the profile file to disk via a temp file rename so a
// crash mid-write cannot truncate stored credentials.
func (s *Store) Save() error {
	s.mu.RLock()
	raw, err := toml.Marshal(s.data)
	s.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("encode profiles: %w", err)
	}

	tmp := s.filePath + ".tmp"
	if err := os.WriteFile(tmp, raw, 0600); err != nil {
		return err
	}
	return os.Rename(tmp, s.filePath)
}

// Profile returns the profile with the given name. An empty name
// resolves to the default profile; if no default is set and exactly one
// profile exists, that profile is returned.
func (s *Store) Profile(name string) (*Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if name == "" {
		name = s.data.DefaultProfile
	}
	if name == "" && len(s.data.Profiles) == 1 {
		for only := range s.data.Profiles {
			name = only
		}
	}

	p, ok := s.data.Profiles[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrProfileNotFound, name)
	}
	return p, nil
}

// SetProfile stores (or replaces) a profile under the given name.
// The first profile added becomes the default.
func (s *Store) SetProfile(name string, p *Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data.Profiles[name] = p
	if s.data.DefaultProfile == "" {
		s.data.DefaultProfile = name
	}
}

// DeleteProfile removes the named profile. Deleting the default profile
// clears the default.
func (s *Store) DeleteProfile(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data.Profiles[name]; !ok {
		return fmt.Errorf("%w: %q", ErrProfileNotFound, name)
	}
	delete(s.data.Profiles, name)
	if s.data.DefaultProfile == name {
		s.data.DefaultProfile = ""
	}
	return nil
}

// ListProfiles returns profile names in sorted order.
func (s *Store) ListProfiles() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.data.Profiles))
	for name := range s.data.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultProfile returns the current default profile name, which may be
// empty.
func (s *Store) DefaultProfile() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.DefaultProfile
}

// SetDefaultProfile marks the named profile as default.
func (s *Store) SetDefaultProfile(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data.Profiles[name]; !ok {
		return fmt.Errorf("%w: %q", ErrProfileNotFound, name)
	}
	s.data.DefaultProfile = name
	return nil
}

// FilePath returns the path of the backing TOML file.
func (s *Store) FilePath() string {
	return s.filePath
}
