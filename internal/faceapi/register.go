package faceapi

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sort"

	"faceconsole/internal/capture"
)

// buildMultipart writes all form fields plus the image under the fixed "file"
// field name. Fields are written in sorted order so requests are reproducible.
// The backend schema requires every field key to be present even when empty.
func buildMultipart(fields map[string]string, file *capture.File) (*bytes.Buffer, string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := writer.WriteField(name, fields[name]); err != nil {
			return nil, "", fmt.Errorf("could not write field %s: %w", name, err)
		}
	}

	if file != nil {
		part, err := writer.CreateFormFile("file", file.Name)
		if err != nil {
			return nil, "", fmt.Errorf("could not create form file: %w", err)
		}
		if _, err := io.Copy(part, bytes.NewReader(file.Data)); err != nil {
			return nil, "", fmt.Errorf("could not copy file data: %w", err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("could not close writer: %w", err)
	}

	return &body, writer.FormDataContentType(), nil
}

// RegisterUpload registers a person with a binary image via multipart form.
func (c *Client) RegisterUpload(ctx context.Context, fields map[string]string, file *capture.File) (*RegisterResult, error) {
	if file == nil || len(file.Data) == 0 {
		return nil, errors.New("no image file to upload")
	}

	body, contentType, err := buildMultipart(fields, file)
	if err != nil {
		return nil, err
	}

	return doRequest[RegisterResult](ctx, c, http.MethodPost, "register/upload", body, contentType)
}

// RegisterInline registers a person with the image embedded as base64 in a
// JSON body. The base64 payload must carry no data-URI prefix.
func (c *Client) RegisterInline(ctx context.Context, fields map[string]string, imageBase64 string) (*RegisterResult, error) {
	if imageBase64 == "" {
		return nil, errors.New("no inline image to register")
	}

	payload := make(map[string]string, len(fields)+1)
	for name, value := range fields {
		payload[name] = value
	}
	payload["image_base64"] = imageBase64

	return doPostJSON[RegisterResult](ctx, c, "register", payload)
}

// VerifyFace asks the backend to re-run face processing for an image. This is
// a best-effort call used when the derived face identifier never shows up.
func (c *Client) VerifyFace(ctx context.Context, file *capture.File) (*StatusResult, error) {
	body, contentType, err := buildMultipart(nil, file)
	if err != nil {
		return nil, err
	}
	return doRequest[StatusResult](ctx, c, http.MethodPost, "verify-face", body, contentType)
}
