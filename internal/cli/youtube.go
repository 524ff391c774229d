package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/conduit-labs/conduit-cli/internal/connectors/youtube"
)

var youtubeCmd = &cobra.Command{
	Use:   "youtube",
	Short: "Work with YouTube videos, playlists and captions",
}

var youtubeVideosCmd = &cobra.Command{
	Use:   "videos [video-id...]",
	Short: "Show videos by ID",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runYouTubeVideos,
}

var youtubeSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search videos",
	Args:  cobra.ExactArgs(1),
	RunE:  runYouTubeSearch,
}

var youtubeUploadCmd = &cobra.Command{
	Use:   "upload [file]",
	Short: "Upload a video via the resumable protocol",
	Args:  cobra.ExactArgs(1),
	RunE:  runYouTubeUpload,
}

var youtubeUpdateCmd = &cobra.Command{
	Use:   "update [video-id]",
	Short: "Update a video's metadata",
	Args:  cobra.ExactArgs(1),
	RunE:  runYouTubeUpdate,
}

var youtubeRateCmd = &cobra.Command{
	Use:       "rate [video-id] [like|dislike|none]",
	Short:     "Rate a video",
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{"like", "dislike", "none"},
	RunE:      runYouTubeRate,
}

var youtubePlaylistsCmd = &cobra.Command{
	Use:   "playlists",
	Short: "List your playlists",
	RunE:  runYouTubePlaylists,
}

var youtubePlaylistAddCmd = &cobra.Command{
	Use:   "playlist-add [playlist-id] [video-id]",
	Short: "Add a video to a playlist",
	Args:  cobra.ExactArgs(2),
	RunE:  runYouTubePlaylistAdd,
}

var youtubeChannelCmd = &cobra.Command{
	Use:   "channel",
	Short: "Show the authenticated channel",
	RunE:  runYouTubeChannel,
}

var youtubeCaptionsCmd = &cobra.Command{
	Use:   "captions [video-id]",
	Short: "List caption tracks of a video",
	Args:  cobra.ExactArgs(1),
	RunE:  runYouTubeCaptions,
}

var (
	youtubeTitle       string
	youtubeDescription string
	youtubeTags        []string
	youtubeCategory    string
	youtubePrivacy     string
	youtubeNotify      bool
	youtubeChannelID   string
	youtubeMax         int
)

func init() {
	youtubeSearchCmd.Flags().StringVar(&youtubeChannelID, "channel", "", "restrict to a channel ID")
	youtubeSearchCmd.Flags().IntVarP(&youtubeMax, "max", "n", 25, "maximum results")

	youtubeUploadCmd.Flags().StringVarP(&youtubeTitle, "title", "t", "", "video title")
	youtubeUploadCmd.Flags().StringVarP(&youtubeDescription, "description", "d", "", "video description")
	youtubeUploadCmd.Flags().StringSliceVar(&youtubeTags, "tag", nil, "video tag (repeatable)")
	youtubeUploadCmd.Flags().StringVar(&youtubeCategory, "category", "", "category ID")
	youtubeUploadCmd.Flags().StringVar(&youtubePrivacy, "privacy", "private", "privacy status (public, unlisted, private)")
	youtubeUploadCmd.Flags().BoolVar(&youtubeNotify, "notify-subscribers", false, "notify subscribers of the upload")

	youtubeUpdateCmd.Flags().StringVarP(&youtubeTitle, "title", "t", "", "new title")
	youtubeUpdateCmd.Flags().StringVarP(&youtubeDescription, "description", "d", "", "new description")
	youtubeUpdateCmd.Flags().StringSliceVar(&youtubeTags, "tag", nil, "replacement tags (repeatable)")
	youtubeUpdateCmd.Flags().StringVar(&youtubeCategory, "category", "", "new category ID")
	youtubeUpdateCmd.Flags().StringVar(&youtubePrivacy, "privacy", "", "new privacy status")

	youtubeCmd.AddCommand(youtubeVideosCmd)
	youtubeCmd.AddCommand(youtubeSearchCmd)
	youtubeCmd.AddCommand(youtubeUploadCmd)
	youtubeCmd.AddCommand(youtubeUpdateCmd)
	youtubeCmd.AddCommand(youtubeRateCmd)
	youtubeCmd.AddCommand(youtubePlaylistsCmd)
	youtubeCmd.AddCommand(youtubePlaylistAddCmd)
	youtubeCmd.AddCommand(youtubeChannelCmd)
	youtubeCmd.AddCommand(youtubeCaptionsCmd)
	rootCmd.AddCommand(youtubeCmd)
}

func runYouTubeVideos(cmd *cobra.Command, args []string) error {
	client, err := newYouTubeClient(cmd.Context())
	if err != nil {
		return err
	}

	videos, err := client.ListVideos(cmd.Context(), args)
	if err != nil {
		return err
	}
	if flagJSON {
		return outputJSON(cmd, videos)
	}
	for _, v := range videos {
		title, views := "", uint64(0)
		if v.Snippet != nil {
			title = v.Snippet.Title
		}
		if v.Statistics != nil {
			views = v.Statistics.ViewCount
		}
		cmd.Printf("%-14s %10d views  %s\n", v.Id, views, title)
	}
	return nil
}

func runYouTubeSearch(cmd *cobra.Command, args []string) error {
	client, err := newYouTubeClient(cmd.Context())
	if err != nil {
		return err
	}

	results, err := client.SearchVideos(cmd.Context(), args[0], youtubeChannelID, youtubeMax)
	if err != nil {
		return err
	}
	if flagJSON {
		return outputJSON(cmd, results)
	}
	for _, r := range results {
		id, title := "", ""
		if r.Id != nil {
			id = r.Id.VideoId
		}
		if r.Snippet != nil {
			title = r.Snippet.Title
		}
		cmd.Printf("%-14s %s\n", id, title)
	}
	cmd.Printf("%d results\n", len(results))
	return nil
}

func runYouTubeUpload(cmd *cobra.Command, args []string) error {
	client, err := newYouTubeClient(cmd.Context())
	if err != nil {
		return err
	}
	if youtubeTitle == "" {
		return fmt.Errorf("upload needs --title")
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read video file: %w", err)
	}

	video, err := client.UploadVideo(cmd.Context(), youtube.UploadSpec{
		Title:             youtubeTitle,
		Description:       youtubeDescription,
		Tags:              youtubeTags,
		CategoryID:        youtubeCategory,
		PrivacyStatus:     youtubePrivacy,
		NotifySubscribers: youtubeNotify,
	}, data)
	if err != nil {
		return err
	}
	cmd.Printf("Uploaded video %s\n", video.Id)
	return nil
}

func runYouTubeUpdate(cmd *cobra.Command, args []string) error {
	client, err := newYouTubeClient(cmd.Context())
	if err != nil {
		return err
	}

	video, err := client.UpdateVideo(cmd.Context(), args[0], youtube.VideoUpdate{
		Title:         youtubeTitle,
		Description:   youtubeDescription,
		Tags:          youtubeTags,
		CategoryID:    youtubeCategory,
		PrivacyStatus: youtubePrivacy,
	})
	if err != nil {
		return err
	}
	cmd.Printf("Updated video %s\n", video.Id)
	return nil
}

func runYouTubeRate(cmd *cobra.Command, args []string) error {
	client, err := newYouTubeClient(cmd.Context())
	if err != nil {
		return err
	}

	if err := client.RateVideo(cmd.Context(), args[0], args[1]); err != nil {
		return err
	}
	cmd.Printf("Rated video %s: %s\n", args[0], args[1])
	return nil
}

func runYouTubePlaylists(cmd *cobra.Command, _ []string) error {
	client, err := newYouTubeClient(cmd.Context())
	if err != nil {
		return err
	}

	playlists, err := client.ListPlaylists(cmd.Context(), "")
	if err != nil {
		return err
	}
	if flagJSON {
		return outputJSON(cmd, playlists)
	}
	for _, p := range playlists {
		title := ""
		if p.Snippet != nil {
			title = p.Snippet.Title
		}
		count := int64(0)
		if p.ContentDetails != nil {
			count = p.ContentDetails.ItemCount
		}
		cmd.Printf("%-36s %4d items  %s\n", p.Id, count, title)
	}
	return nil
}

func runYouTubePlaylistAdd(cmd *cobra.Command, args []string) error {
	client, err := newYouTubeClient(cmd.Context())
	if err != nil {
		return err
	}

	item, err := client.AddPlaylistItem(cmd.Context(), args[0], args[1])
	if err != nil {
		return err
	}
	cmd.Printf("Added %s to playlist (item %s)\n", args[1], item.Id)
	return nil
}

func runYouTubeChannel(cmd *cobra.Command, _ []string) error {
	client, err := newYouTubeClient(cmd.Context())
	if err != nil {
		return err
	}

	channel, err := client.GetMyChannel(cmd.Context())
	if err != nil {
		return err
	}
	if flagJSON {
		return outputJSON(cmd, channel)
	}

	title := ""
	if channel.Snippet != nil {
		title = channel.Snippet.Title
	}
	cmd.Printf("Channel: %s (%s)\n", title, channel.Id)
	if channel.Statistics != nil {
		cmd.Printf("Subscribers: %d\n", channel.Statistics.SubscriberCount)
		cmd.Printf("Videos:      %d\n", channel.Statistics.VideoCount)
		cmd.Printf("Views:       %d\n", channel.Statistics.ViewCount)
	}
	return nil
}

func runYouTubeCaptions(cmd *cobra.Command, args []string) error {
	client, err := newYouTubeClient(cmd.Context())
	if err != nil {
		return err
	}

	captions, err := client.ListCaptions(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if flagJSON {
		return outputJSON(cmd, captions)
	}
	for _, c := range captions {
		lang, name := "", ""
		if c.Snippet != nil {
			lang, name = c.Snippet.Language, c.Snippet.Name
		}
		cmd.Printf("%-36s %-6s %s\n", c.Id, lang, name)
	}
	cmd.Printf("%d caption tracks\n", len(captions))
	return nil
}
