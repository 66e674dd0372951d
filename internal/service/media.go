package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"storefront-api/internal/apperror"
	"storefront-api/internal/client"
	"storefront-api/internal/dto"
	"strings"
)

const (
	// maxUploadBytes caps one file at 5 MB.
	maxUploadBytes = 5 << 20
	// maxBatchFiles caps the multi-file endpoint; larger batches are
	// rejected outright rather than truncated.
	maxBatchFiles = 5
)

type MediaService interface {
	UploadImage(ctx context.Context, file *multipart.FileHeader) (*dto.UploadedImage, error)
	UploadImages(ctx context.Context, files []*multipart.FileHeader) ([]dto.UploadedImage, error)
	DeleteImage(ctx context.Context, publicID string) error
	GetImage(ctx context.Context, publicID string) (*dto.UploadedImage, error)
}

type mediaServiceImpl struct {
	cloudinaryClient client.CloudinaryClient
}

func NewMediaService(cloudinaryClient client.CloudinaryClient) MediaService {
	return &mediaServiceImpl{
		cloudinaryClient: cloudinaryClient,
	}
}

func validateImageFile(file *multipart.FileHeader) error {
	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return apperror.Validation("only image files are allowed, got %q", contentType)
	}
	if file.Size > maxUploadBytes {
		return apperror.Validation("file %s exceeds the %d byte limit", file.Filename, maxUploadBytes)
	}
	return nil
}

func (s *mediaServiceImpl) UploadImage(ctx context.Context, file *multipart.FileHeader) (*dto.UploadedImage, error) {
	if file == nil {
		return nil, apperror.Validation("no file uploaded")
	}
	if err := validateImageFile(file); err != nil {
		return nil, err
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("open uploaded file: %w", err)
	}
	defer src.Close()

	asset, err := s.cloudinaryClient.Upload(ctx, src, file.Filename)
	if err != nil {
		return nil, fmt.Errorf("upload to media host: %w", err)
	}

	return assetToDTO(asset), nil
}

func (s *mediaServiceImpl) UploadImages(ctx context.Context, files []*multipart.FileHeader) ([]dto.UploadedImage, error) {
	if len(files) == 0 {
		return nil, apperror.Validation("no files uploaded")
	}
	if len(files) > maxBatchFiles {
		return nil, apperror.Validation("at most %d files per batch, got %d", maxBatchFiles, len(files))
	}

	// validate the whole batch before touching the vendor
	for _, file := range files {
		if err := validateImageFile(file); err != nil {
			return nil, err
		}
	}

	uploaded := make([]dto.UploadedImage, 0, len(files))
	for _, file := range files {
		src, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("open uploaded file %s: %w", file.Filename, err)
		}

		asset, err := s.cloudinaryClient.Upload(ctx, src, file.Filename)
		src.Close()
		if err != nil {
			return nil, fmt.Errorf("upload %s to media host: %w", file.Filename, err)
		}

		uploaded = append(uploaded, *assetToDTO(asset))
	}

	return uploaded, nil
}

// DeleteImage is idempotent from the caller's perspective: the first delete
// succeeds, any later delete of the same id reports not found rather than an
// error distinct from "already gone".
func (s *mediaServiceImpl) DeleteImage(ctx context.Context, publicID string) error {
	if publicID == "" {
		return apperror.Validation("public id is required")
	}

	result, err := s.cloudinaryClient.Destroy(ctx, publicID)
	if err != nil {
		return fmt.Errorf("destroy asset: %w", err)
	}
	if result != "ok" {
		return apperror.NotFound("image %s not found or already deleted", publicID)
	}

	return nil
}

func (s *mediaServiceImpl) GetImage(ctx context.Context, publicID string) (*dto.UploadedImage, error) {
	if publicID == "" {
		return nil, apperror.Validation("public id is required")
	}

	asset, err := s.cloudinaryClient.Resource(ctx, publicID)
	if err != nil {
		return nil, fmt.Errorf("fetch asset: %w", err)
	}

	return assetToDTO(asset), nil
}

func assetToDTO(asset *client.Asset) *dto.UploadedImage {
	return &dto.UploadedImage{
		URL:      asset.SecureURL,
		PublicID: asset.PublicID,
		Format:   asset.Format,
		Bytes:    asset.Bytes,
		Width:    asset.Width,
		Height:   asset.Height,
	}
}
