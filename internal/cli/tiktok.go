package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/conduit-labs/conduit-cli/internal/connectors/tiktok"
)

var tiktokCmd = &cobra.Command{
	Use:   "tiktok",
	Short: "Work with the TikTok Marketing API",
}

var tiktokCampaignsCmd = &cobra.Command{
	Use:   "campaigns",
	Short: "List campaigns",
	RunE:  runTikTokCampaigns,
}

var tiktokCampaignStatusCmd = &cobra.Command{
	Use:   "campaign-status [enable|disable|delete] [campaign-id...]",
	Short: "Change the operation status of campaigns",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runTikTokCampaignStatus,
}

var tiktokAdGroupsCmd = &cobra.Command{
	Use:   "adgroups",
	Short: "List ad groups",
	RunE:  runTikTokAdGroups,
}

var tiktokAdsCmd = &cobra.Command{
	Use:   "ads",
	Short: "List ads",
	RunE:  runTikTokAds,
}

var tiktokReportCmd = &cobra.Command{
	Use:   "report",
	Short: "Run a synchronous integrated report",
	RunE:  runTikTokReport,
}

var tiktokPixelsCmd = &cobra.Command{
	Use:   "pixels",
	Short: "List tracking pixels",
	RunE:  runTikTokPixels,
}

var (
	tiktokAdvertiser  string
	tiktokCampaignIDs []string
	tiktokAdGroupIDs  []string

	tiktokReportLevel   string
	tiktokReportDims    []string
	tiktokReportMetrics []string
	tiktokReportStart   string
	tiktokReportEnd     string
)

func init() {
	tiktokCmd.PersistentFlags().StringVarP(&tiktokAdvertiser, "advertiser-id", "a", "", "advertiser ID (default: profile's advertiser)")

	tiktokAdGroupsCmd.Flags().StringSliceVar(&tiktokCampaignIDs, "campaign-id", nil, "restrict to campaign IDs")
	tiktokAdsCmd.Flags().StringSliceVar(&tiktokAdGroupIDs, "adgroup-id", nil, "restrict to ad group IDs")

	tiktokReportCmd.Flags().StringVar(&tiktokReportLevel, "level", tiktok.DataLevelCampaign, "data level (AUCTION_ADVERTISER, AUCTION_CAMPAIGN, AUCTION_ADGROUP, AUCTION_AD)")
	tiktokReportCmd.Flags().StringSliceVar(&tiktokReportDims, "dimension", []string{"campaign_id"}, "grouping dimension (repeatable)")
	tiktokReportCmd.Flags().StringSliceVar(&tiktokReportMetrics, "metric", []string{"spend", "impressions", "clicks"}, "metric (repeatable)")
	tiktokReportCmd.Flags().StringVar(&tiktokReportStart, "start", "", "start date (YYYY-MM-DD)")
	tiktokReportCmd.Flags().StringVar(&tiktokReportEnd, "end", "", "end date (YYYY-MM-DD)")

	tiktokCmd.AddCommand(tiktokCampaignsCmd)
	tiktokCmd.AddCommand(tiktokCampaignStatusCmd)
	tiktokCmd.AddCommand(tiktokAdGroupsCmd)
	tiktokCmd.AddCommand(tiktokAdsCmd)
	tiktokCmd.AddCommand(tiktokReportCmd)
	tiktokCmd.AddCommand(tiktokPixelsCmd)
	rootCmd.AddCommand(tiktokCmd)
}

// resolveAdvertiser prefers the --advertiser-id flag over the profile.
func resolveAdvertiser(fromProfile string) (string, error) {
	if tiktokAdvertiser != "" {
		return tiktokAdvertiser, nil
	}
	if fromProfile != "" {
		return fromProfile, nil
	}
	return "", fmt.Errorf("no advertiser ID: pass --advertiser-id or store one in the profile")
}

func runTikTokCampaigns(cmd *cobra.Command, _ []string) error {
	client, profileAdv, err := newTikTokClient()
	if err != nil {
		return err
	}
	adv, err := resolveAdvertiser(profileAdv)
	if err != nil {
		return err
	}

	campaigns, err := client.ListAllCampaigns(cmd.Context(), adv)
	if err != nil {
		return err
	}
	if flagJSON {
		return outputJSON(cmd, campaigns)
	}
	for _, c := range campaigns {
		cmd.Printf("%-20s %-12s %-10.2f %s\n", c.CampaignID, c.OperationStatus, c.Budget, c.CampaignName)
	}
	cmd.Printf("%d campaigns\n", len(campaigns))
	return nil
}

func runTikTokCampaignStatus(cmd *cobra.Command, args []string) error {
	client, profileAdv, err := newTikTokClient()
	if err != nil {
		return err
	}
	adv, err := resolveAdvertiser(profileAdv)
	if err != nil {
		return err
	}

	var status string
	switch args[0] {
	case "enable":
		status = tiktok.OperationEnable
	case "disable":
		status = tiktok.OperationDisable
	case "delete":
		status = tiktok.OperationDelete
	default:
		return fmt.Errorf("unknown status action %q (want enable, disable or delete)", args[0])
	}

	ids := args[1:]
	if err := client.UpdateCampaignStatus(cmd.Context(), adv, ids, status); err != nil {
		return err
	}
	cmd.Printf("%s applied to %d campaigns\n", args[0], len(ids))
	return nil
}

func runTikTokAdGroups(cmd *cobra.Command, _ []string) error {
	client, profileAdv, err := newTikTokClient()
	if err != nil {
		return err
	}
	adv, err := resolveAdvertiser(profileAdv)
	if err != nil {
		return err
	}

	groups, err := client.ListAllAdGroups(cmd.Context(), adv, tiktokCampaignIDs)
	if err != nil {
		return err
	}
	if flagJSON {
		return outputJSON(cmd, groups)
	}
	for _, g := range groups {
		cmd.Printf("%-20s %-20s %-12s %s\n", g.AdgroupID, g.CampaignID, g.OperationStatus, g.AdgroupName)
	}
	cmd.Printf("%d ad groups\n", len(groups))
	return nil
}

func runTikTokAds(cmd *cobra.Command, _ []string) error {
	client, profileAdv, err := newTikTokClient()
	if err != nil {
		return err
	}
	adv, err := resolveAdvertiser(profileAdv)
	if err != nil {
		return err
	}

	ads, err := client.ListAllAds(cmd.Context(), adv, tiktokAdGroupIDs)
	if err != nil {
		return err
	}
	if flagJSON {
		return outputJSON(cmd, ads)
	}
	for _, a := range ads {
		cmd.Printf("%-20s %-20s %-12s %s\n", a.AdID, a.AdgroupID, a.OperationStatus, a.AdName)
	}
	cmd.Printf("%d ads\n", len(ads))
	return nil
}

func runTikTokReport(cmd *cobra.Command, _ []string) error {
	client, profileAdv, err := newTikTokClient()
	if err != nil {
		return err
	}
	adv, err := resolveAdvertiser(profileAdv)
	if err != nil {
		return err
	}
	if tiktokReportStart == "" || tiktokReportEnd == "" {
		return fmt.Errorf("report needs --start and --end dates")
	}

	rows, err := client.GetFullReport(cmd.Context(), tiktok.ReportQuery{
		AdvertiserID: adv,
		ReportType:   tiktok.ReportTypeBasic,
		DataLevel:    tiktokReportLevel,
		Dimensions:   tiktokReportDims,
		Metrics:      tiktokReportMetrics,
		StartDate:    tiktokReportStart,
		EndDate:      tiktokReportEnd,
	})
	if err != nil {
		return err
	}
	if flagJSON {
		return outputJSON(cmd, rows)
	}

	for _, row := range rows {
		var parts []string
		for _, d := range tiktokReportDims {
			parts = append(parts, fmt.Sprintf("%s=%s", d, row.Dimensions[d]))
		}
		for _, m := range tiktokReportMetrics {
			parts = append(parts, fmt.Sprintf("%s=%s", m, row.Metrics[m]))
		}
		cmd.Println(strings.Join(parts, "  "))
	}
	cmd.Printf("%d rows\n", len(rows))
	return nil
}

func runTikTokPixels(cmd *cobra.Command, _ []string) error {
	client, profileAdv, err := newTikTokClient()
	if err != nil {
		return err
	}
	adv, err := resolveAdvertiser(profileAdv)
	if err != nil {
		return err
	}

	pixels, _, err := client.ListPixels(cmd.Context(), adv, 0, 0)
	if err != nil {
		return err
	}
	if flagJSON {
		return outputJSON(cmd, pixels)
	}
	for _, p := range pixels {
		cmd.Printf("%-20s %-20s %s\n", p.PixelID, p.PixelCode, p.PixelName)
	}
	cmd.Printf("%d pixels\n", len(pixels))
	return nil
}
