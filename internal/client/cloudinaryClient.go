package client

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"sort"
	"storefront-api/internal/apperror"
	"storefront-api/internal/config"
	"strconv"
	"time"
)

type CloudinaryClient interface {
	Upload(ctx context.Context, file io.Reader, filename string) (*Asset, error)
	Destroy(ctx context.Context, publicID string) (string, error)
	Resource(ctx context.Context, publicID string) (*Asset, error)
}

type cloudinaryClientImpl struct {
	httpClient *http.Client
	baseApiURL string
	cloudName  string
	apiKey     string
	apiSecret  string
	folder     string
	now        func() time.Time
}

// Asset is the host's record of one uploaded image.
type Asset struct {
	PublicID  string `json:"public_id"`
	SecureURL string `json:"secure_url"`
	Format    string `json:"format"`
	Bytes     int64  `json:"bytes"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
}

type destroyResult struct {
	Result string `json:"result"`
}

// uploadTransformation keeps oversized originals in check on the vendor side.
const uploadTransformation = "c_limit,h_1200,w_1200,q_auto"

func NewCloudinaryClient(cloudinaryCfg *config.Cloudinary) CloudinaryClient {
	return &cloudinaryClientImpl{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseApiURL: cloudinaryCfg.BaseApiURL,
		cloudName:  cloudinaryCfg.CloudName,
		apiKey:     cloudinaryCfg.APIKey,
		apiSecret:  cloudinaryCfg.APISecret,
		folder:     cloudinaryCfg.Folder,
		now:        time.Now,
	}
}

// sign produces the host's request signature: SHA-1 over the sorted
// key=value pairs joined with '&', with the API secret appended.
func (c *cloudinaryClientImpl) sign(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte('&')
		}
		buf.WriteString(k)
		buf.WriteByte('=')
		buf.WriteString(params[k])
	}
	buf.WriteString(c.apiSecret)

	sum := sha1.Sum(buf.Bytes())
	return hex.EncodeToString(sum[:])
}

func (c *cloudinaryClientImpl) Upload(ctx context.Context, file io.Reader, filename string) (*Asset, error) {
	timestamp := strconv.FormatInt(c.now().Unix(), 10)
	params := map[string]string{
		"folder":         c.folder,
		"timestamp":      timestamp,
		"transformation": uploadTransformation,
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for k, v := range params {
		if err := writer.WriteField(k, v); err != nil {
			return nil, fmt.Errorf("write form field: %w", err)
		}
	}
	if err := writer.WriteField("api_key", c.apiKey); err != nil {
		return nil, fmt.Errorf("write form field: %w", err)
	}
	if err := writer.WriteField("signature", c.sign(params)); err != nil {
		return nil, fmt.Errorf("write form field: %w", err)
	}

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("copy file into form: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/v1_1/%s/image/upload", c.baseApiURL, c.cloudName),
		&body)
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperror.Vendor("cloudinary", "upload request failed", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperror.Vendor("cloudinary", "read upload response", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperror.Vendor("cloudinary", vendorMessage(respBody, resp.StatusCode), nil)
	}

	var asset Asset
	if err := json.Unmarshal(respBody, &asset); err != nil {
		return nil, apperror.Vendor("cloudinary", "decode upload response", err)
	}

	return &asset, nil
}

func (c *cloudinaryClientImpl) Destroy(ctx context.Context, publicID string) (string, error) {
	timestamp := strconv.FormatInt(c.now().Unix(), 10)
	params := map[string]string{
		"public_id": publicID,
		"timestamp": timestamp,
	}

	form := url.Values{}
	for k, v := range params {
		form.Set(k, v)
	}
	form.Set("api_key", c.apiKey)
	form.Set("signature", c.sign(params))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/v1_1/%s/image/destroy", c.baseApiURL, c.cloudName),
		bytes.NewBufferString(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", apperror.Vendor("cloudinary", "destroy request failed", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperror.Vendor("cloudinary", "read destroy response", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", apperror.Vendor("cloudinary", vendorMessage(respBody, resp.StatusCode), nil)
	}

	var result destroyResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", apperror.Vendor("cloudinary", "decode destroy response", err)
	}

	return result.Result, nil
}

func (c *cloudinaryClientImpl) Resource(ctx context.Context, publicID string) (*Asset, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/v1_1/%s/resources/image/upload/%s",
			c.baseApiURL, c.cloudName, url.PathEscape(publicID)),
		nil)
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}
	req.SetBasicAuth(c.apiKey, c.apiSecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperror.Vendor("cloudinary", "resource request failed", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperror.Vendor("cloudinary", "read resource response", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, apperror.NotFound("image %s not found", publicID)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperror.Vendor("cloudinary", vendorMessage(respBody, resp.StatusCode), nil)
	}

	var asset Asset
	if err := json.Unmarshal(respBody, &asset); err != nil {
		return nil, apperror.Vendor("cloudinary", "decode resource response", err)
	}

	return &asset, nil
}

func vendorMessage(body []byte, statusCode int) string {
	var errBody struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &errBody); err == nil && errBody.Error.Message != "" {
		return errBody.Error.Message
	}
	return fmt.Sprintf("error %d", statusCode)
}
