package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/conduit-labs/conduit-cli/internal/config"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage credential profiles",
	Long:  `Add, list, inspect or remove named credential profiles.`,
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List profiles",
	RunE:  runProfileList,
}

var profileAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Create an empty profile",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfileAdd,
}

var profileRemoveCmd = &cobra.Command{
	Use:   "remove [name]",
	Short: "Delete a profile",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfileRemove,
}

var profileDefaultCmd = &cobra.Command{
	Use:   "set-default [name]",
	Short: "Set the default profile",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfileDefault,
}

var profileTokenCmd = &cobra.Command{
	Use:   "set-token [name] [connector]",
	Short: "Store a token for a connector (google, tiktok, webflow)",
	Long: `Prompts for the token without echoing it to the terminal and stores
it in the named profile. For google the value is treated as a refresh
token; pass an access token with --access instead for short-lived use.`,
	Args: cobra.ExactArgs(2),
	RunE: runProfileToken,
}

var (
	profileTokenAccess   bool
	profileClientID      string
	profileClientSecret  string
	profileAdvertiserID  string
	profileWebflowSiteID string
)

func init() {
	profileTokenCmd.Flags().BoolVar(&profileTokenAccess, "access", false, "store a google access token instead of a refresh token")
	profileTokenCmd.Flags().StringVar(&profileClientID, "client-id", "", "google OAuth client ID")
	profileTokenCmd.Flags().StringVar(&profileClientSecret, "client-secret", "", "google OAuth client secret")
	profileTokenCmd.Flags().StringVar(&profileAdvertiserID, "advertiser-id", "", "tiktok advertiser ID")
	profileTokenCmd.Flags().StringVar(&profileWebflowSiteID, "site-id", "", "webflow default site ID")

	profileCmd.AddCommand(profileListCmd)
	profileCmd.AddCommand(profileAddCmd)
	profileCmd.AddCommand(profileRemoveCmd)
	profileCmd.AddCommand(profileDefaultCmd)
	profileCmd.AddCommand(profileTokenCmd)
	rootCmd.AddCommand(profileCmd)
}

func runProfileList(cmd *cobra.Command, _ []string) error {
	names := store.ListProfiles()
	if len(names) == 0 {
		cmd.Println("No profiles configured. Run 'conduit profile add <name>' first.")
		return nil
	}

	def := store.DefaultProfile()
	for _, name := range names {
		marker := " "
		if name == def {
			marker = "*"
		}
		p, err := store.Profile(name)
		if err != nil {
			return err
		}
		cmd.Printf("%s %s (%s)\n", marker, name, strings.Join(configuredConnectors(p), ", "))
	}
	return nil
}

func configuredConnectors(p *config.Profile) []string {
	var names []string
	if p.Google.RefreshToken != "" || p.Google.AccessToken != "" {
		names = append(names, "google")
	}
	if p.TikTok.AccessToken != "" {
		names = append(names, "tiktok")
	}
	if p.Webflow.Token != "" {
		names = append(names, "webflow")
	}
	if len(names) == 0 {
		names = append(names, "no credentials")
	}
	return names
}

func runProfileAdd(cmd *cobra.Command, args []string) error {
	name := args[0]
	store.SetProfile(name, &config.Profile{})
	if err := store.Save(); err != nil {
		return fmt.Errorf("save profiles: %w", err)
	}
	cmd.Printf("Profile %q created.\n", name)
	return nil
}

func runProfileRemove(cmd *cobra.Command, args []string) error {
	name := args[0]
	if err := store.DeleteProfile(name); err != nil {
		return err
	}
	if err := store.Save(); err != nil {
		return fmt.Errorf("save profiles: %w", err)
	}
	cmd.Printf("Profile %q removed.\n", name)
	return nil
}

func runProfileDefault(cmd *cobra.Command, args []string) error {
	name := args[0]
	if err := store.SetDefaultProfile(name); err != nil {
		return err
	}
	if err := store.Save(); err != nil {
		return fmt.Errorf("save profiles: %w", err)
	}
	cmd.Printf("Default profile set to %q.\n", name)
	return nil
}

func runProfileToken(cmd *cobra.Command, args []string) error {
	name, connector := args[0], args[1]

	p, err := store.Profile(name)
	if err != nil {
		return err
	}

	token, err := promptSecret(cmd, fmt.Sprintf("%s token for %q: ", connector, name))
	if err != nil {
		return err
	}
	if token == "" {
		return fmt.Errorf("empty token")
	}

	switch connector {
	case "google":
		if profileTokenAccess {
			p.Google.AccessToken = token
		} else {
			p.Google.RefreshToken = token
		}
		if profileClientID != "" {
			p.Google.ClientID = profileClientID
		}
		if profileClientSecret != "" {
			p.Google.ClientSecret = profileClientSecret
		}
	case "tiktok":
		p.TikTok.AccessToken = token
		if profileAdvertiserID != "" {
			p.TikTok.AdvertiserID = profileAdvertiserID
		}
	case "webflow":
		p.Webflow.Token = token
		if profileWebflowSiteID != "" {
			p.Webflow.SiteID = profileWebflowSiteID
		}
	default:
		return fmt.Errorf("unknown connector %q (want google, tiktok or webflow)", connector)
	}

	store.SetProfile(name, p)
	if err := store.Save(); err != nil {
		return fmt.Errorf("save profiles: %w", err)
	}
	cmd.Printf("Stored %s token in profile %q.\n", connector, name)
	return nil
}

// promptSecret reads a line without echo when stdin is a terminal, and
// falls back to a plain read otherwise (pipes in tests and scripts).
func promptSecret(cmd *cobra.Command, prompt string) (string, error) {
	fmt.Fprint(cmd.OutOrStdout(), prompt)

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		raw, err := term.ReadPassword(fd)
		fmt.Fprintln(cmd.OutOrStdout())
		if err != nil {
			return "", fmt.Errorf("read token: %w", err)
		}
		return strings.TrimSpace(string(raw)), nil
	}

	var line string
	if _, err := fmt.Fscanln(cmd.InOrStdin(), &line); err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	return strings.TrimSpace(line), nil
}
