package segment

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	lb "github.com/setanarut/stickerlayers"
	"github.com/setanarut/stickerlayers/utils"
)

// maxMaskBytes bounds the response body read from the inference service.
const maxMaskBytes = 64 << 20

// HTTPProvider sends images to an inference service that answers with a
// mask image of the same size.
//
// Request: POST URL, multipart form with the PNG-encoded image in "file" and
// the model identifier in "model". Response: 200 with any decodable image.
type HTTPProvider struct {
	URL    string
	Client *http.Client
}

func NewHTTPProvider(url string, client *http.Client) *HTTPProvider {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPProvider{URL: strings.TrimRight(url, "/"), Client: client}
}

func (p *HTTPProvider) Mask(ctx context.Context, img image.Image, model string) (*image.Gray, error) {
	if p.URL == "" {
		return nil, errors.New("segment: inference url is not configured")
	}
	encoded, err := utils.EncodePNG(img)
	if err != nil {
		return nil, err
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "image.png")
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(encoded); err != nil {
		return nil, fmt.Errorf("write image data: %w", err)
	}
	if err := writer.WriteField("model", model); err != nil {
		return nil, fmt.Errorf("write model field: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.URL, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := p.client().Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("inference failed with status: %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxMaskBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	decoded, err := utils.DecodeImage(data)
	if err != nil {
		return nil, fmt.Errorf("mask response: %w", err)
	}

	lb.Logger().Debug("mask received from inference service",
		"model", model,
		"bytes", len(data),
	)
	return lb.MaskFromImage(decoded), nil
}

// CheckHealth reports whether the inference service answers on /health.
func (p *HTTPProvider) CheckHealth(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.URL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := p.client().Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("inference service unhealthy: %d", resp.StatusCode)
	}
	return nil
}

func (p *HTTPProvider) client() *http.Client {
	if p.Client == nil {
		return http.DefaultClient
	}
	return p.Client
}
