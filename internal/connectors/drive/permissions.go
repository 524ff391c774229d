package drive

import (
	"context"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"

	"github.com/conduit-labs/conduit-cli/internal/connectors/google"
)

// Permission roles accepted by the Drive API.
const (
	RoleReader    = "reader"
	RoleCommenter = "commenter"
	RoleWriter    = "writer"
	RoleOwner     = "owner"
)

// Grantee types accepted by the Drive API.
const (
	GranteeUser   = "user"
	GranteeGroup  = "group"
	GranteeDomain = "domain"
	GranteeAnyone = "anyone"
)

// ListPermissions returns all permissions on a file.
func (c *Client) ListPermissions(ctx context.Context, fileID string) ([]*drive.Permission, error) {
	var all []*drive.Permission
	pageToken := ""

	for {
		select {
		case <-ctx.Done():
			return all, ctx.Err()
		default:
		}

		if err := c.wait(ctx); err != nil {
			return nil, err
		}

		call := c.svc.Permissions.List(fileID).
			Fields(googleapi.Field("nextPageToken, permissions(id, type, role, emailAddress, domain)")).
			SupportsAllDrives(true).
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		resp, err := call.Do()
		if err != nil {
			return nil, google.WrapError(err)
		}
		all = append(all, resp.Permissions...)

		if resp.NextPageToken == "" {
			return all, nil
		}
		pageToken = resp.NextPageToken
	}
}

// ShareFile grants a role on a file. Email is required for user and
// group grantees and ignored for anyone.
func (c *Client) ShareFile(ctx context.Context, fileID, granteeType, role, email string) (*drive.Permission, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	perm := &drive.Permission{
		Type: granteeType,
		Role: role,
	}
	switch granteeType {
	case GranteeUser, GranteeGroup:
		perm.EmailAddress = email
	case GranteeDomain:
		perm.Domain = email
	}

	created, err := c.svc.Permissions.Create(fileID, perm).
		SupportsAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return nil, google.WrapError(err)
	}
	return created, nil
}

// TransferOwnership makes another user the owner of a file.
func (c *Client) TransferOwnership(ctx context.Context, fileID, email string) (*drive.Permission, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	perm := &drive.Permission{
		Type:         GranteeUser,
		Role:         RoleOwner,
		EmailAddress: email,
	}
	created, err := c.svc.Permissions.Create(fileID, perm).
		TransferOwnership(true).
		Context(ctx).
		Do()
	if err != nil {
		return nil, google.WrapError(err)
	}
	return created, nil
}

// RevokePermission removes a permission from a file.
func (c *Client) RevokePermission(ctx context.Context, fileID, permissionID string) error {
	if err := c.wait(ctx); err != nil {
		return err
	}

	err := c.svc.Permissions.Delete(fileID, permissionID).
		SupportsAllDrives(true).
		Context(ctx).
		Do()
	return google.WrapError(err)
}
