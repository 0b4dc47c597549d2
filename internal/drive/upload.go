// Package drive uploads generated application PDFs to a Google Drive folder.
package drive

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"golang.org/x/oauth2/google"
	driveapi "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

type Uploader struct {
	service  *driveapi.Service
	folderID string
	logger   *zap.Logger
}

// NewUploader opens the Drive API using a service account key file, or
// application default credentials when credentialsFile is empty. All uploads
// land in the given folder.
func NewUploader(ctx context.Context, logger *zap.Logger, folderID, credentialsFile string) (*Uploader, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile), option.WithScopes(driveapi.DriveFileScope))
	} else {
		ts, err := google.DefaultTokenSource(ctx, driveapi.DriveFileScope)
		if err != nil {
			return nil, fmt.Errorf("drive: default credentials: %w", err)
		}
		opts = append(opts, option.WithTokenSource(ts))
	}

	service, err := driveapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("drive: create service: %w", err)
	}

	return &Uploader{service: service, folderID: folderID, logger: logger}, nil
}

// Upload pushes the local file into the folder and returns its view link.
func (u *Uploader) Upload(ctx context.Context, localPath string) (string, error) {
	file, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("drive: open %s: %w", localPath, err)
	}
	defer file.Close()

	meta := &driveapi.File{
		Name:    filepath.Base(localPath),
		Parents: []string{u.folderID},
	}

	created, err := u.service.Files.
		Create(meta).
		Media(file).
		Fields("id", "webViewLink").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("drive: upload %s: %w", localPath, err)
	}

	u.logger.Info("uploaded file to drive",
		zap.String("name", meta.Name),
		zap.String("file_id", created.Id),
	)

	return created.WebViewLink, nil
}
