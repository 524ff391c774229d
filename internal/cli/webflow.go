package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var webflowCmd = &cobra.Command{
	Use:   "webflow",
	Short: "Work with Webflow sites and CMS collections",
}

var webflowSitesCmd = &cobra.Command{
	Use:   "sites",
	Short: "List sites",
	RunE:  runWebflowSites,
}

var webflowPublishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Publish a site",
	RunE:  runWebflowPublish,
}

var webflowCollectionsCmd = &cobra.Command{
	Use:   "collections",
	Short: "List collections on a site",
	RunE:  runWebflowCollections,
}

var webflowItemsCmd = &cobra.Command{
	Use:   "items [collection-id]",
	Short: "List items in a collection",
	Args:  cobra.ExactArgs(1),
	RunE:  runWebflowItems,
}

var webflowItemGetCmd = &cobra.Command{
	Use:   "item [collection-id] [item-id]",
	Short: "Show one item",
	Args:  cobra.ExactArgs(2),
	RunE:  runWebflowItemGet,
}

var webflowItemCreateCmd = &cobra.Command{
	Use:   "item-create [collection-id]",
	Short: "Create an item from JSON field data",
	Args:  cobra.ExactArgs(1),
	RunE:  runWebflowItemCreate,
}

var webflowItemDeleteCmd = &cobra.Command{
	Use:   "item-delete [collection-id] [item-id]",
	Short: "Delete an item",
	Args:  cobra.ExactArgs(2),
	RunE:  runWebflowItemDelete,
}

var webflowItemsPublishCmd = &cobra.Command{
	Use:   "items-publish [collection-id] [item-id...]",
	Short: "Publish staged items to the live site",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runWebflowItemsPublish,
}

var (
	webflowSite      string
	webflowFieldData string
	webflowDraft     bool
)

func init() {
	webflowCmd.PersistentFlags().StringVar(&webflowSite, "site-id", "", "site ID (default: profile's site)")

	webflowItemCreateCmd.Flags().StringVar(&webflowFieldData, "data", "", "field data as a JSON object")
	webflowItemCreateCmd.Flags().BoolVar(&webflowDraft, "draft", false, "create the item as a draft")

	webflowCmd.AddCommand(webflowSitesCmd)
	webflowCmd.AddCommand(webflowPublishCmd)
	webflowCmd.AddCommand(webflowCollectionsCmd)
	webflowCmd.AddCommand(webflowItemsCmd)
	webflowCmd.AddCommand(webflowItemGetCmd)
	webflowCmd.AddCommand(webflowItemCreateCmd)
	webflowCmd.AddCommand(webflowItemDeleteCmd)
	webflowCmd.AddCommand(webflowItemsPublishCmd)
	rootCmd.AddCommand(webflowCmd)
}

func resolveSite(fromProfile string) (string, error) {
	if webflowSite != "" {
		return webflowSite, nil
	}
	if fromProfile != "" {
		return fromProfile, nil
	}
	return "", fmt.Errorf("no site ID: pass --site-id or store one in the profile")
}

func runWebflowSites(cmd *cobra.Command, _ []string) error {
	client, _, err := newWebflowClient()
	if err != nil {
		return err
	}

	sites, err := client.ListSites(cmd.Context())
	if err != nil {
		return err
	}
	if flagJSON {
		return outputJSON(cmd, sites)
	}
	for _, s := range sites {
		cmd.Printf("%-26s %-24s last published %s\n", s.ID, s.DisplayName, s.LastPublished)
	}
	cmd.Printf("%d sites\n", len(sites))
	return nil
}

func runWebflowPublish(cmd *cobra.Command, _ []string) error {
	client, profileSite, err := newWebflowClient()
	if err != nil {
		return err
	}
	siteID, err := resolveSite(profileSite)
	if err != nil {
		return err
	}

	site, err := client.GetSite(cmd.Context(), siteID)
	if err != nil {
		return err
	}
	var domainIDs []string
	for _, d := range site.CustomDomains {
		domainIDs = append(domainIDs, d.ID)
	}

	result, err := client.PublishSite(cmd.Context(), siteID, domainIDs)
	if err != nil {
		return err
	}
	if flagJSON {
		return outputJSON(cmd, result)
	}
	cmd.Printf("Publish queued for site %s\n", siteID)
	return nil
}

func runWebflowCollections(cmd *cobra.Command, _ []string) error {
	client, profileSite, err := newWebflowClient()
	if err != nil {
		return err
	}
	siteID, err := resolveSite(profileSite)
	if err != nil {
		return err
	}

	collections, err := client.ListCollections(cmd.Context(), siteID)
	if err != nil {
		return err
	}
	if flagJSON {
		return outputJSON(cmd, collections)
	}
	for _, c := range collections {
		cmd.Printf("%-26s %-24s /%s\n", c.ID, c.DisplayName, c.Slug)
	}
	cmd.Printf("%d collections\n", len(collections))
	return nil
}

func runWebflowItems(cmd *cobra.Command, args []string) error {
	client, _, err := newWebflowClient()
	if err != nil {
		return err
	}

	items, err := client.ListAllItems(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if flagJSON {
		return outputJSON(cmd, items)
	}
	for _, item := range items {
		name, _ := item.FieldData["name"].(string)
		state := "live"
		if item.IsDraft {
			state = "draft"
		}
		cmd.Printf("%-26s %-6s %s\n", item.ID, state, name)
	}
	cmd.Printf("%d items\n", len(items))
	return nil
}

func runWebflowItemGet(cmd *cobra.Command, args []string) error {
	client, _, err := newWebflowClient()
	if err != nil {
		return err
	}

	item, err := client.GetItem(cmd.Context(), args[0], args[1])
	if err != nil {
		return err
	}
	return outputJSON(cmd, item)
}

func runWebflowItemCreate(cmd *cobra.Command, args []string) error {
	client, _, err := newWebflowClient()
	if err != nil {
		return err
	}
	if webflowFieldData == "" {
		return fmt.Errorf("item-create needs --data with a JSON object")
	}

	var fieldData map[string]any
	if err := json.Unmarshal([]byte(webflowFieldData), &fieldData); err != nil {
		return fmt.Errorf("parse --data: %w", err)
	}

	item, err := client.CreateItem(cmd.Context(), args[0], fieldData, webflowDraft)
	if err != nil {
		return err
	}
	cmd.Printf("Created item %s\n", item.ID)
	return nil
}

func runWebflowItemDelete(cmd *cobra.Command, args []string) error {
	client, _, err := newWebflowClient()
	if err != nil {
		return err
	}

	if err := client.DeleteItem(cmd.Context(), args[0], args[1]); err != nil {
		return err
	}
	cmd.Printf("Deleted item %s\n", args[1])
	return nil
}

func runWebflowItemsPublish(cmd *cobra.Command, args []string) error {
	client, _, err := newWebflowClient()
	if err != nil {
		return err
	}

	result, err := client.PublishItems(cmd.Context(), args[0], args[1:])
	if err != nil {
		return err
	}
	if flagJSON {
		return outputJSON(cmd, result)
	}
	cmd.Printf("Published %d items\n", len(result.PublishedItemIDs))
	if len(result.Errors) > 0 {
		for _, e := range result.Errors {
			cmd.Printf("  error: %s\n", e)
		}
	}
	return nil
}
