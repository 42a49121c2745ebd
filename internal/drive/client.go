package drive

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/ytget/hitplayer/internal/model"
)

// Drive query constants
const (
	FolderMimeType     = "application/vnd.google-apps.folder"
	FolderQuery        = "mimeType='" + FolderMimeType + "'"
	VideoQueryTemplate = "'%s' in parents and mimeType contains 'video/'"
	DriveSpace         = "drive"
	FolderListFields   = "nextPageToken, files(id, name)"
	VideoListFields    = "nextPageToken, files(id, name, mimeType)"
	CreatedFields      = "id, name"
)

// Drive error reasons
const (
	ReasonInsufficientPermissions = "insufficientPermissions"
)

// Drive errors
var (
	ErrEmptyFolderName         = errors.New("folder name is empty")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
	ErrNoToken                 = errors.New("no authorization token")
)

// API is the folder/video surface the browser needs
type API interface {
	ListFolders(ctx context.Context) ([]model.DriveFolder, error)
	CreateFolder(ctx context.Context, name string) (model.DriveFolder, error)
	DeleteFolder(ctx context.Context, id string) error
	ListVideos(ctx context.Context, folderID string) ([]model.DriveVideo, error)
}

// Client talks to the Drive v3 API
type Client struct {
	svc    *drive.Service
	logger *slog.Logger
}

// NewClient creates a client over an authorized HTTP client.
// Extra options (such as option.WithEndpoint) are passed to the API service.
func NewClient(ctx context.Context, httpClient *http.Client, logger *slog.Logger, opts ...option.ClientOption) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}
	opts = append([]option.ClientOption{option.WithHTTPClient(httpClient)}, opts...)
	svc, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}
	return &Client{svc: svc, logger: logger}, nil
}

// ListFolders lists every folder visible to the user, following page tokens
// until the listing is exhausted.
func (c *Client) ListFolders(ctx context.Context) ([]model.DriveFolder, error) {
	var folders []model.DriveFolder
	err := c.listAll(ctx, FolderQuery, FolderListFields, func(f *drive.File) {
		folders = append(folders, model.DriveFolder{ID: f.Id, Name: f.Name})
	})
	if err != nil {
		return nil, c.wrap("list folders", err)
	}
	c.logger.Debug("drive folders listed", "count", len(folders))
	return folders, nil
}

// ListVideos lists every video-typed file directly inside a folder
func (c *Client) ListVideos(ctx context.Context, folderID string) ([]model.DriveVideo, error) {
	var videos []model.DriveVideo
	err := c.listAll(ctx, fmt.Sprintf(VideoQueryTemplate, escapeQuery(folderID)), VideoListFields, func(f *drive.File) {
		videos = append(videos, model.DriveVideo{ID: f.Id, Name: f.Name, MimeType: f.MimeType})
	})
	if err != nil {
		return nil, c.wrap("list videos", err)
	}
	c.logger.Debug("drive videos listed", "folder_id", folderID, "count", len(videos))
	return videos, nil
}

// CreateFolder creates a folder in the user's root
func (c *Client) CreateFolder(ctx context.Context, name string) (model.DriveFolder, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.DriveFolder{}, ErrEmptyFolderName
	}

	created, err := c.svc.Files.Create(&drive.File{Name: name, MimeType: FolderMimeType}).
		Fields(CreatedFields).
		Context(ctx).
		Do()
	if err != nil {
		return model.DriveFolder{}, c.wrap("create folder", err)
	}

	c.logger.Info("drive folder created", "id", created.Id, "name", name)
	return model.DriveFolder{ID: created.Id, Name: name}, nil
}

// DeleteFolder permanently deletes a folder by ID
func (c *Client) DeleteFolder(ctx context.Context, id string) error {
	if err := c.svc.Files.Delete(id).Context(ctx).Do(); err != nil {
		return c.wrap("delete folder", err)
	}
	c.logger.Info("drive folder deleted", "id", id)
	return nil
}

func (c *Client) listAll(ctx context.Context, query string, fields googleapi.Field, each func(*drive.File)) error {
	pageToken := ""
	for {
		call := c.svc.Files.List().
			Q(query).
			Spaces(DriveSpace).
			Fields(fields).
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		page, err := call.Do()
		if err != nil {
			return err
		}
		for _, f := range page.Files {
			each(f)
		}

		if page.NextPageToken == "" {
			return nil
		}
		pageToken = page.NextPageToken
	}
}

func (c *Client) wrap(op string, err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		for _, item := range apiErr.Errors {
			if item.Reason == ReasonInsufficientPermissions {
				c.logger.Warn("drive permission denied", "op", op, "error", err)
				return fmt.Errorf("%s: %w", op, ErrInsufficientPermissions)
			}
		}
	}
	c.logger.Error("drive call failed", "op", op, "error", err)
	return fmt.Errorf("%s: %w", op, err)
}

// escapeQuery escapes a value embedded in a single-quoted Drive query string
func escapeQuery(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	return strings.ReplaceAll(v, `'`, `\'`)
}
