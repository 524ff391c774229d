package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/conduit-labs/conduit-cli/internal/connectors/gmail"
)

var gmailCmd = &cobra.Command{
	Use:   "gmail",
	Short: "Work with Gmail messages, labels and drafts",
}

var gmailListCmd = &cobra.Command{
	Use:   "list",
	Short: "List messages",
	RunE:  runGmailList,
}

var gmailGetCmd = &cobra.Command{
	Use:   "get [message-id]",
	Short: "Show a message",
	Args:  cobra.ExactArgs(1),
	RunE:  runGmailGet,
}

var gmailSendCmd = &cobra.Command{
	Use:   "send",
	Short: "Compose and send a message",
	RunE:  runGmailSend,
}

var gmailLabelsCmd = &cobra.Command{
	Use:   "labels",
	Short: "List labels",
	RunE:  runGmailLabels,
}

var gmailBulkCmd = &cobra.Command{
	Use:   "bulk [trash|delete|modify]",
	Short: "Apply an action to every message matching a query",
	Long: `Resolves the query to message IDs and applies the action in
chunks. delete and modify use the batch endpoints (up to 1000 IDs per
call); trash falls back to per-message calls.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"trash", "delete", "modify"},
	RunE:      runGmailBulk,
}

var gmailExportCmd = &cobra.Command{
	Use:       "export [mbox|eml]",
	Short:     "Export matching messages to an mbox file or .eml files",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"mbox", "eml"},
	RunE:      runGmailExport,
}

var (
	gmailQuery     string
	gmailLabels    []string
	gmailMax       int
	gmailFormat    string
	gmailAddLabels []string
	gmailRmLabels  []string

	gmailTo         []string
	gmailCc         []string
	gmailBcc        []string
	gmailSubject    string
	gmailBody       string
	gmailBodyFile   string
	gmailMarkdown   bool
	gmailSignature  string
	gmailAttach     []string
	gmailReplyTo    string
	gmailSendThread string

	gmailExportOut string
)

func init() {
	gmailListCmd.Flags().StringVarP(&gmailQuery, "query", "q", "", "gmail search query")
	gmailListCmd.Flags().StringSliceVarP(&gmailLabels, "label", "l", nil, "restrict to label IDs")
	gmailListCmd.Flags().IntVarP(&gmailMax, "max", "n", 50, "maximum messages to list")

	gmailGetCmd.Flags().StringVar(&gmailFormat, "format", gmail.FormatMetadata, "message format (full, raw, metadata, minimal)")

	gmailSendCmd.Flags().StringSliceVar(&gmailTo, "to", nil, "recipient address (repeatable)")
	gmailSendCmd.Flags().StringSliceVar(&gmailCc, "cc", nil, "cc address (repeatable)")
	gmailSendCmd.Flags().StringSliceVar(&gmailBcc, "bcc", nil, "bcc address (repeatable)")
	gmailSendCmd.Flags().StringVarP(&gmailSubject, "subject", "s", "", "message subject")
	gmailSendCmd.Flags().StringVar(&gmailBody, "body", "", "message body text")
	gmailSendCmd.Flags().StringVar(&gmailBodyFile, "body-file", "", "read the body from a file")
	gmailSendCmd.Flags().BoolVar(&gmailMarkdown, "markdown", false, "treat the body as markdown and send an HTML alternative")
	gmailSendCmd.Flags().StringVar(&gmailSignature, "signature", "", "signature appended after '-- '")
	gmailSendCmd.Flags().StringSliceVar(&gmailAttach, "attach", nil, "file to attach (repeatable)")
	gmailSendCmd.Flags().StringVar(&gmailReplyTo, "in-reply-to", "", "Message-ID being replied to")
	gmailSendCmd.Flags().StringVar(&gmailSendThread, "thread", "", "thread ID to send within")

	gmailBulkCmd.Flags().StringVarP(&gmailQuery, "query", "q", "", "gmail search query")
	gmailBulkCmd.Flags().StringSliceVarP(&gmailLabels, "label", "l", nil, "restrict to label IDs")
	gmailBulkCmd.Flags().IntVarP(&gmailMax, "max", "n", 0, "cap the number of affected messages (0 = no cap)")
	gmailBulkCmd.Flags().StringSliceVar(&gmailAddLabels, "add-label", nil, "label ID to add (modify)")
	gmailBulkCmd.Flags().StringSliceVar(&gmailRmLabels, "remove-label", nil, "label ID to remove (modify)")

	gmailExportCmd.Flags().StringVarP(&gmailQuery, "query", "q", "", "gmail search query")
	gmailExportCmd.Flags().IntVarP(&gmailMax, "max", "n", 0, "cap the number of exported messages (0 = no cap)")
	gmailExportCmd.Flags().StringVarP(&gmailExportOut, "out", "o", "", "output file (mbox) or directory (eml)")

	gmailCmd.AddCommand(gmailListCmd)
	gmailCmd.AddCommand(gmailGetCmd)
	gmailCmd.AddCommand(gmailSendCmd)
	gmailCmd.AddCommand(gmailLabelsCmd)
	gmailCmd.AddCommand(gmailBulkCmd)
	gmailCmd.AddCommand(gmailExportCmd)
	rootCmd.AddCommand(gmailCmd)
}

func runGmailList(cmd *cobra.Command, _ []string) error {
	client, err := newGmailClient(cmd.Context())
	if err != nil {
		return err
	}

	ids, err := client.SearchMessageIDs(cmd.Context(), gmailQuery, gmailLabels, gmailMax)
	if err != nil {
		return fmt.Errorf("list messages: %w", err)
	}

	if flagJSON {
		return outputJSON(cmd, ids)
	}
	for _, id := range ids {
		cmd.Println(id)
	}
	cmd.Printf("%d messages\n", len(ids))
	return nil
}

func runGmailGet(cmd *cobra.Command, args []string) error {
	client, err := newGmailClient(cmd.Context())
	if err != nil {
		return err
	}

	if gmailFormat == gmail.FormatRaw {
		raw, err := client.GetRawMessage(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		cmd.Print(string(raw))
		return nil
	}

	msg, err := client.GetMessage(cmd.Context(), args[0], gmailFormat)
	if err != nil {
		return err
	}
	if flagJSON {
		return outputJSON(cmd, msg)
	}

	cmd.Printf("ID:      %s\n", msg.Id)
	cmd.Printf("Thread:  %s\n", msg.ThreadId)
	cmd.Printf("Labels:  %s\n", strings.Join(msg.LabelIds, ", "))
	if msg.Payload != nil {
		for _, h := range msg.Payload.Headers {
			switch h.Name {
			case "From", "To", "Subject", "Date":
				cmd.Printf("%-8s %s\n", h.Name+":", h.Value)
			}
		}
	}
	cmd.Printf("Snippet: %s\n", msg.Snippet)
	return nil
}

func runGmailSend(cmd *cobra.Command, _ []string) error {
	client, err := newGmailClient(cmd.Context())
	if err != nil {
		return err
	}

	body := gmailBody
	if gmailBodyFile != "" {
		raw, err := os.ReadFile(gmailBodyFile)
		if err != nil {
			return fmt.Errorf("read body file: %w", err)
		}
		body = string(raw)
	}

	compose := gmail.Compose{
		To:        gmailTo,
		Cc:        gmailCc,
		Bcc:       gmailBcc,
		Subject:   gmailSubject,
		Text:      body,
		Markdown:  gmailMarkdown,
		Signature: gmailSignature,
		InReplyTo: gmailReplyTo,
	}
	for _, path := range gmailAttach {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read attachment: %w", err)
		}
		compose.Attachments = append(compose.Attachments, gmail.Attachment{
			Filename: filepath.Base(path),
			Data:     data,
		})
	}

	raw, err := compose.Build()
	if err != nil {
		return fmt.Errorf("build message: %w", err)
	}

	sent, err := client.SendMessage(cmd.Context(), raw, gmailSendThread)
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	cmd.Printf("Sent message %s\n", sent.Id)
	return nil
}

func runGmailLabels(cmd *cobra.Command, _ []string) error {
	client, err := newGmailClient(cmd.Context())
	if err != nil {
		return err
	}

	labels, err := client.ListLabels(cmd.Context())
	if err != nil {
		return err
	}
	if flagJSON {
		return outputJSON(cmd, labels)
	}
	for _, l := range labels {
		cmd.Printf("%-24s %s\n", l.Id, l.Name)
	}
	return nil
}

func runGmailBulk(cmd *cobra.Command, args []string) error {
	client, err := newGmailClient(cmd.Context())
	if err != nil {
		return err
	}

	opts := gmail.BulkOptions{
		Query:          gmailQuery,
		LabelIDs:       gmailLabels,
		Max:            gmailMax,
		AddLabelIDs:    gmailAddLabels,
		RemoveLabelIDs: gmailRmLabels,
		UseBatch:       true,
	}

	var result *gmail.BulkResult
	switch args[0] {
	case "trash":
		result, err = client.BulkTrash(cmd.Context(), opts)
	case "delete":
		result, err = client.BulkDelete(cmd.Context(), opts)
	case "modify":
		if len(gmailAddLabels) == 0 && len(gmailRmLabels) == 0 {
			return fmt.Errorf("modify needs --add-label or --remove-label")
		}
		result, err = client.BulkModify(cmd.Context(), opts)
	default:
		return fmt.Errorf("unknown bulk action %q", args[0])
	}
	if err != nil {
		return err
	}

	if flagJSON {
		return outputJSON(cmd, result)
	}
	cmd.Printf("%d/%d messages %sed\n", result.Succeeded, result.Total, args[0])
	for _, f := range result.Failures {
		cmd.Printf("  failed %s: %v\n", f.ID, f.Err)
	}
	return nil
}

func runGmailExport(cmd *cobra.Command, args []string) error {
	client, err := newGmailClient(cmd.Context())
	if err != nil {
		return err
	}

	switch args[0] {
	case "mbox":
		out := gmailExportOut
		if out == "" {
			out = "export.mbox"
		}
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("create %s: %w", out, err)
		}
		defer f.Close()

		n, err := client.ExportMessagesMbox(cmd.Context(), f, gmailQuery, gmailMax)
		if err != nil {
			return err
		}
		cmd.Printf("Exported %d messages to %s\n", n, out)

	case "eml":
		dir := gmailExportOut
		if dir == "" {
			dir = "."
		}
		n, err := client.ExportMessagesEML(cmd.Context(), dir, gmailQuery, gmailMax)
		if err != nil {
			return err
		}
		cmd.Printf("Exported %d messages to %s\n", n, dir)

	default:
		return fmt.Errorf("unknown export format %q", args[0])
	}
	return nil
}
