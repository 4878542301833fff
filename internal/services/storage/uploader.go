package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/albertogalvisvml/labelpdfapp/pkg/utils"
)

var errMirrorDisabled = errors.New("supabase mirror not configured")

// UploadPDF mirrors a generated PDF into the bucket and returns its public URL.
func (s *StorageService) UploadPDF(ctx context.Context, localPath, filename string) (string, error) {
	data, err := os.ReadFile(localPath)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", localPath, err)
	}
	return s.Upload(ctx, bytes.NewBuffer(data), filename)
}

// Upload uploads file to Supabase Storage
func (s *StorageService) Upload(ctx context.Context, buffer *bytes.Buffer, filename string) (string, error) {
	if s.sbClient == nil {
		return "", errMirrorDisabled
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	key := utils.GenerateStorageKey(filename)

	_, err := s.sbClient.UploadFile(s.bucket, key, bytes.NewReader(buffer.Bytes()))
	if err != nil {
		return "", fmt.Errorf("failed to upload to supabase: %w", err)
	}

	publicURL := s.sbClient.GetPublicUrl(s.bucket, key)
	return publicURL.SignedURL, nil
}
