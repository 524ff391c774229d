package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/conduit-labs/conduit-cli/internal/connectors/drive"
)

var driveCmd = &cobra.Command{
	Use:   "drive",
	Short: "Work with Google Drive files and folders",
}

var driveLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List files",
	RunE:  runDriveLs,
}

var driveGetCmd = &cobra.Command{
	Use:   "get [file-id]",
	Short: "Show file metadata",
	Args:  cobra.ExactArgs(1),
	RunE:  runDriveGet,
}

var driveDownloadCmd = &cobra.Command{
	Use:   "download [file-id]",
	Short: "Download a file (Workspace files are exported)",
	Args:  cobra.ExactArgs(1),
	RunE:  runDriveDownload,
}

var driveUploadCmd = &cobra.Command{
	Use:   "upload [file]",
	Short: "Upload a file",
	Args:  cobra.ExactArgs(1),
	RunE:  runDriveUpload,
}

var driveMkdirCmd = &cobra.Command{
	Use:   "mkdir [name]",
	Short: "Create a folder",
	Args:  cobra.ExactArgs(1),
	RunE:  runDriveMkdir,
}

var driveShareCmd = &cobra.Command{
	Use:   "share [file-id] [email]",
	Short: "Share a file with a user",
	Args:  cobra.ExactArgs(2),
	RunE:  runDriveShare,
}

var drivePermissionsCmd = &cobra.Command{
	Use:   "permissions [file-id]",
	Short: "List permissions on a file",
	Args:  cobra.ExactArgs(1),
	RunE:  runDrivePermissions,
}

var driveTrashCmd = &cobra.Command{
	Use:   "trash [file-id]",
	Short: "Move a file to the trash",
	Args:  cobra.ExactArgs(1),
	RunE:  runDriveTrash,
}

var driveRmCmd = &cobra.Command{
	Use:   "rm [file-id]",
	Short: "Permanently delete a file",
	Args:  cobra.ExactArgs(1),
	RunE:  runDriveRm,
}

var driveDrivesCmd = &cobra.Command{
	Use:   "drives",
	Short: "List shared drives",
	RunE:  runDriveDrives,
}

var driveAboutCmd = &cobra.Command{
	Use:   "about",
	Short: "Show account and storage quota",
	RunE:  runDriveAbout,
}

var (
	driveQuery      string
	driveDriveID    string
	driveOut        string
	driveParent     string
	driveExportMime string
	driveRole       string
)

func init() {
	driveLsCmd.Flags().StringVarP(&driveQuery, "query", "q", "", "drive search query")
	driveLsCmd.Flags().StringVar(&driveDriveID, "drive-id", "", "restrict to a shared drive")

	driveDownloadCmd.Flags().StringVarP(&driveOut, "out", "o", "", "output file (default: the file's name)")
	driveDownloadCmd.Flags().StringVar(&driveExportMime, "export-mime", "", "export format for Workspace files")

	driveUploadCmd.Flags().StringVar(&driveParent, "parent", "", "parent folder ID or path")
	driveMkdirCmd.Flags().StringVar(&driveParent, "parent", "", "parent folder ID")

	driveShareCmd.Flags().StringVar(&driveRole, "role", drive.RoleReader, "role to grant (reader, commenter, writer)")

	driveCmd.AddCommand(driveLsCmd)
	driveCmd.AddCommand(driveGetCmd)
	driveCmd.AddCommand(driveDownloadCmd)
	driveCmd.AddCommand(driveUploadCmd)
	driveCmd.AddCommand(driveMkdirCmd)
	driveCmd.AddCommand(driveShareCmd)
	driveCmd.AddCommand(drivePermissionsCmd)
	driveCmd.AddCommand(driveTrashCmd)
	driveCmd.AddCommand(driveRmCmd)
	driveCmd.AddCommand(driveDrivesCmd)
	driveCmd.AddCommand(driveAboutCmd)
	rootCmd.AddCommand(driveCmd)
}

func runDriveLs(cmd *cobra.Command, _ []string) error {
	client, err := newDriveClient(cmd.Context())
	if err != nil {
		return err
	}

	files, err := client.ListAllFiles(cmd.Context(), drive.ListOptions{
		Query:   driveQuery,
		DriveID: driveDriveID,
	})
	if err != nil {
		return err
	}
	if flagJSON {
		return outputJSON(cmd, files)
	}
	for _, f := range files {
		kind := " "
		if f.MimeType == drive.MimeTypeFolder {
			kind = "d"
		}
		cmd.Printf("%s %-36s %10d  %s\n", kind, f.Id, f.Size, f.Name)
	}
	cmd.Printf("%d files\n", len(files))
	return nil
}

func runDriveGet(cmd *cobra.Command, args []string) error {
	client, err := newDriveClient(cmd.Context())
	if err != nil {
		return err
	}

	file, err := client.GetFile(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if flagJSON {
		return outputJSON(cmd, file)
	}

	cmd.Printf("ID:       %s\n", file.Id)
	cmd.Printf("Name:     %s\n", file.Name)
	cmd.Printf("Type:     %s\n", file.MimeType)
	cmd.Printf("Size:     %d\n", file.Size)
	cmd.Printf("Modified: %s\n", file.ModifiedTime)
	cmd.Printf("Link:     %s\n", file.WebViewLink)
	return nil
}

func runDriveDownload(cmd *cobra.Command, args []string) error {
	client, err := newDriveClient(cmd.Context())
	if err != nil {
		return err
	}

	file, err := client.GetFile(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	out := driveOut
	if out == "" {
		out = file.Name
	}
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create %s: %w", out, err)
	}
	defer f.Close()

	var n int64
	if drive.DefaultExportMime(file.MimeType) != "" || driveExportMime != "" {
		n, err = client.ExportFile(cmd.Context(), file.Id, file.MimeType, driveExportMime, f)
	} else {
		n, err = client.DownloadFile(cmd.Context(), file.Id, f)
	}
	if err != nil {
		return err
	}
	cmd.Printf("Wrote %d bytes to %s\n", n, out)
	return nil
}

func runDriveUpload(cmd *cobra.Command, args []string) error {
	client, err := newDriveClient(cmd.Context())
	if err != nil {
		return err
	}

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open %s: %w", args[0], err)
	}
	defer f.Close()

	file, err := client.UploadFile(cmd.Context(), filepath.Base(args[0]), driveParent, "", f)
	if err != nil {
		return err
	}
	cmd.Printf("Uploaded %s as %s\n", file.Name, file.Id)
	return nil
}

func runDriveMkdir(cmd *cobra.Command, args []string) error {
	client, err := newDriveClient(cmd.Context())
	if err != nil {
		return err
	}

	folder, err := client.CreateFolder(cmd.Context(), args[0], driveParent)
	if err != nil {
		return err
	}
	cmd.Printf("Created folder %s (%s)\n", folder.Name, folder.Id)
	return nil
}

func runDriveShare(cmd *cobra.Command, args []string) error {
	client, err := newDriveClient(cmd.Context())
	if err != nil {
		return err
	}

	perm, err := client.ShareFile(cmd.Context(), args[0], drive.GranteeUser, driveRole, args[1])
	if err != nil {
		return err
	}
	cmd.Printf("Granted %s to %s (permission %s)\n", driveRole, args[1], perm.Id)
	return nil
}

func runDrivePermissions(cmd *cobra.Command, args []string) error {
	client, err := newDriveClient(cmd.Context())
	if err != nil {
		return err
	}

	perms, err := client.ListPermissions(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if flagJSON {
		return outputJSON(cmd, perms)
	}
	for _, p := range perms {
		who := p.EmailAddress
		if who == "" {
			who = p.Domain
		}
		if who == "" {
			who = p.Type
		}
		cmd.Printf("%-24s %-10s %s\n", p.Id, p.Role, who)
	}
	return nil
}

func runDriveTrash(cmd *cobra.Command, args []string) error {
	client, err := newDriveClient(cmd.Context())
	if err != nil {
		return err
	}

	if err := client.TrashFile(cmd.Context(), args[0]); err != nil {
		return err
	}
	cmd.Printf("Trashed %s\n", args[0])
	return nil
}

func runDriveRm(cmd *cobra.Command, args []string) error {
	client, err := newDriveClient(cmd.Context())
	if err != nil {
		return err
	}

	if err := client.DeleteFile(cmd.Context(), args[0]); err != nil {
		return err
	}
	cmd.Printf("Deleted %s\n", args[0])
	return nil
}

func runDriveDrives(cmd *cobra.Command, _ []string) error {
	client, err := newDriveClient(cmd.Context())
	if err != nil {
		return err
	}

	drives, err := client.ListSharedDrives(cmd.Context())
	if err != nil {
		return err
	}
	if flagJSON {
		return outputJSON(cmd, drives)
	}
	for _, d := range drives {
		cmd.Printf("%-20s %s\n", d.Id, d.Name)
	}
	cmd.Printf("%d shared drives\n", len(drives))
	return nil
}

func runDriveAbout(cmd *cobra.Command, _ []string) error {
	client, err := newDriveClient(cmd.Context())
	if err != nil {
		return err
	}

	about, err := client.About(cmd.Context())
	if err != nil {
		return err
	}
	if flagJSON {
		return outputJSON(cmd, about)
	}

	if about.User != nil {
		cmd.Printf("User:  %s <%s>\n", about.User.DisplayName, about.User.EmailAddress)
	}
	if about.StorageQuota != nil {
		cmd.Printf("Usage: %d / %d bytes\n", about.StorageQuota.Usage, about.StorageQuota.Limit)
	}
	return nil
}
