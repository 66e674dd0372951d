package service

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/textproto"
	"storefront-api/internal/apperror"
	"storefront-api/internal/client"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubCloudinaryClient counts uploads and plays back destroy results in order.
type stubCloudinaryClient struct {
	uploads        int
	uploadErr      error
	destroyResults []string
	destroyCalls   int
	resource       *client.Asset
	resourceErr    error
}

func (s *stubCloudinaryClient) Upload(ctx context.Context, file io.Reader, filename string) (*client.Asset, error) {
	s.uploads++
	if s.uploadErr != nil {
		return nil, s.uploadErr
	}
	return &client.Asset{
		PublicID:  "storefront/products/" + filename,
		SecureURL: "https://res.example.com/" + filename,
		Format:    "jpg",
		Bytes:     1024,
		Width:     800,
		Height:    600,
	}, nil
}

func (s *stubCloudinaryClient) Destroy(ctx context.Context, publicID string) (string, error) {
	result := "not found"
	if s.destroyCalls < len(s.destroyResults) {
		result = s.destroyResults[s.destroyCalls]
	}
	s.destroyCalls++
	return result, nil
}

func (s *stubCloudinaryClient) Resource(ctx context.Context, publicID string) (*client.Asset, error) {
	if s.resourceErr != nil {
		return nil, s.resourceErr
	}
	return s.resource, nil
}

// makeFileHeader builds a real multipart file header whose Open() works.
func makeFileHeader(t *testing.T, filename, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="image"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	form, err := multipart.NewReader(&buf, writer.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	return form.File["image"][0]
}

func TestUploadImage_Success(t *testing.T) {
	cloudinary := &stubCloudinaryClient{}
	svc := NewMediaService(cloudinary)

	image, err := svc.UploadImage(context.Background(), makeFileHeader(t, "dragon.jpg", "image/jpeg", []byte("fake-jpeg")))

	require.NoError(t, err)
	assert.Equal(t, "storefront/products/dragon.jpg", image.PublicID)
	assert.Equal(t, "jpg", image.Format)
	assert.Equal(t, 800, image.Width)
	assert.Equal(t, 1, cloudinary.uploads)
}

func TestUploadImage_RejectsNonImageMIME(t *testing.T) {
	cloudinary := &stubCloudinaryClient{}
	svc := NewMediaService(cloudinary)

	file := makeFileHeader(t, "notes.txt", "text/plain", []byte("hello"))
	_, err := svc.UploadImage(context.Background(), file)

	var validationErr *apperror.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Zero(t, cloudinary.uploads, "rejected files must never reach the vendor")
}

func TestUploadImage_RejectsOversizedFile(t *testing.T) {
	cloudinary := &stubCloudinaryClient{}
	svc := NewMediaService(cloudinary)

	file := &multipart.FileHeader{
		Filename: "huge.png",
		Size:     6 << 20,
		Header:   textproto.MIMEHeader{"Content-Type": []string{"image/png"}},
	}
	_, err := svc.UploadImage(context.Background(), file)

	var validationErr *apperror.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Zero(t, cloudinary.uploads)
}

func TestUploadImage_NilFileRejected(t *testing.T) {
	svc := NewMediaService(&stubCloudinaryClient{})

	_, err := svc.UploadImage(context.Background(), nil)

	var validationErr *apperror.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestUploadImages_EmptyBatchRejected(t *testing.T) {
	cloudinary := &stubCloudinaryClient{}
	svc := NewMediaService(cloudinary)

	_, err := svc.UploadImages(context.Background(), nil)

	var validationErr *apperror.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Zero(t, cloudinary.uploads)
}

func TestUploadImages_BatchOfSixRejected(t *testing.T) {
	cloudinary := &stubCloudinaryClient{}
	svc := NewMediaService(cloudinary)

	files := make([]*multipart.FileHeader, 6)
	for i := range files {
		files[i] = makeFileHeader(t, "a.jpg", "image/jpeg", []byte("x"))
	}
	_, err := svc.UploadImages(context.Background(), files)

	var validationErr *apperror.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Zero(t, cloudinary.uploads, "oversized batches are rejected, not truncated")
}

func TestUploadImages_OneBadFileFailsWholeBatch(t *testing.T) {
	cloudinary := &stubCloudinaryClient{}
	svc := NewMediaService(cloudinary)

	files := []*multipart.FileHeader{
		makeFileHeader(t, "a.jpg", "image/jpeg", []byte("x")),
		makeFileHeader(t, "b.txt", "text/plain", []byte("x")),
	}
	_, err := svc.UploadImages(context.Background(), files)

	var validationErr *apperror.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Zero(t, cloudinary.uploads, "batch is validated before any upload starts")
}

func TestUploadImages_Success(t *testing.T) {
	cloudinary := &stubCloudinaryClient{}
	svc := NewMediaService(cloudinary)

	files := []*multipart.FileHeader{
		makeFileHeader(t, "a.jpg", "image/jpeg", []byte("x")),
		makeFileHeader(t, "b.png", "image/png", []byte("y")),
	}
	images, err := svc.UploadImages(context.Background(), files)

	require.NoError(t, err)
	require.Len(t, images, 2)
	assert.Equal(t, 2, cloudinary.uploads)
}

func TestDeleteImage_Idempotent(t *testing.T) {
	cloudinary := &stubCloudinaryClient{destroyResults: []string{"ok", "not found"}}
	svc := NewMediaService(cloudinary)

	// first delete succeeds
	require.NoError(t, svc.DeleteImage(context.Background(), "storefront/products/a"))

	// second delete of the same id reports not found, never a crash
	err := svc.DeleteImage(context.Background(), "storefront/products/a")
	var notFoundErr *apperror.NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
}

func TestGetImage(t *testing.T) {
	cloudinary := &stubCloudinaryClient{
		resource: &client.Asset{PublicID: "storefront/products/a", Format: "png", Width: 640, Height: 480},
	}
	svc := NewMediaService(cloudinary)

	image, err := svc.GetImage(context.Background(), "storefront/products/a")
	require.NoError(t, err)
	assert.Equal(t, "png", image.Format)
}

func TestGetImage_NotFoundPropagates(t *testing.T) {
	cloudinary := &stubCloudinaryClient{
		resourceErr: apperror.NotFound("image missing"),
	}
	svc := NewMediaService(cloudinary)

	_, err := svc.GetImage(context.Background(), "missing")
	var notFoundErr *apperror.NotFoundError
	assert.ErrorAs(t, err, &notFoundErr)
}
