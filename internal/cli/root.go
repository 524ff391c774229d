// Package cli wires the connector clients into the conduit command
// tree.
package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/oauth2"

	"github.com/conduit-labs/conduit-cli/internal/config"
	"github.com/conduit-labs/conduit-cli/internal/connectors/drive"
	"github.com/conduit-labs/conduit-cli/internal/connectors/gmail"
	"github.com/conduit-labs/conduit-cli/internal/connectors/google"
	"github.com/conduit-labs/conduit-cli/internal/connectors/tiktok"
	"github.com/conduit-labs/conduit-cli/internal/connectors/webflow"
	"github.com/conduit-labs/conduit-cli/internal/connectors/youtube"
	"github.com/conduit-labs/conduit-cli/internal/logger"
)

var (
	flagProfile string
	flagVerbose bool
	flagJSON    bool
)

// store is the profile store opened by the root command. Tests replace
// it via SetStore.
var store *config.Store

var rootCmd = &cobra.Command{
	Use:   "conduit",
	Short: "Typed CLI for Gmail, Google Drive, TikTok Ads, Webflow and YouTube",
	Long: `Conduit talks to vendor REST APIs through typed, rate-limited
connector clients. Credentials are kept in named profiles under
~/.conduit/profiles.toml.`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(flagVerbose)
		if store != nil {
			return nil
		}
		s, err := config.NewStore("")
		if err != nil {
			return fmt.Errorf("open profile store: %w", err)
		}
		store = s
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagProfile, "profile", "p", "", "profile name (default: the default profile)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetStore overrides the profile store. Used in tests.
func SetStore(s *config.Store) {
	store = s
}

func currentProfile() (*config.Profile, error) {
	return store.Profile(flagProfile)
}

func googleTokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	p, err := currentProfile()
	if err != nil {
		return nil, err
	}
	ts, err := config.GoogleTokenSource(ctx, p.Google)
	if err != nil {
		return nil, fmt.Errorf("google credentials: %w", err)
	}
	return ts, nil
}

func newGmailClient(ctx context.Context) (*gmail.Client, error) {
	ts, err := googleTokenSource(ctx)
	if err != nil {
		return nil, err
	}
	svc, err := google.NewGmailService(ctx, ts)
	if err != nil {
		return nil, fmt.Errorf("create gmail service: %w", err)
	}
	return gmail.NewClient(svc), nil
}

func newDriveClient(ctx context.Context) (*drive.Client, error) {
	ts, err := googleTokenSource(ctx)
	if err != nil {
		return nil, err
	}
	svc, err := google.NewDriveService(ctx, ts)
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}
	return drive.NewClient(svc), nil
}

func newYouTubeClient(ctx context.Context) (*youtube.Client, error) {
	ts, err := googleTokenSource(ctx)
	if err != nil {
		return nil, err
	}
	svc, err := google.NewYouTubeService(ctx, ts)
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}
	httpClient := oauth2.NewClient(ctx, ts)
	return youtube.NewClient(svc, httpClient), nil
}

func newTikTokClient() (*tiktok.Client, string, error) {
	p, err := currentProfile()
	if err != nil {
		return nil, "", err
	}
	if p.TikTok.AccessToken == "" {
		return nil, "", fmt.Errorf("tiktok credentials: %w", config.ErrNoToken)
	}
	return tiktok.NewClient(p.TikTok.AccessToken), p.TikTok.AdvertiserID, nil
}

func newWebflowClient() (*webflow.Client, string, error) {
	p, err := currentProfile()
	if err != nil {
		return nil, "", err
	}
	if p.Webflow.Token == "" {
		return nil, "", fmt.Errorf("webflow credentials: %w", config.ErrNoToken)
	}
	return webflow.NewClient(p.Webflow.Token), p.Webflow.SiteID, nil
}

// outputJSON prints v as indented JSON.
func outputJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
