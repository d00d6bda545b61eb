package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// UploadResult reports what the service extracted from an uploaded PDF.
type UploadResult struct {
	ID              string
	Filename        string
	Status          string
	ParsedTaskCount int
	TasksCreated    []string
	ErrorMessage    string
}

// UploadPDF sends a PDF for task extraction. Extracted tasks without an
// explicit date are scheduled on date.
func (c *Client) UploadPDF(
	ctx context.Context,
	userID, date, filename string,
	content io.Reader,
) (UploadResult, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("user_id", userID); err != nil {
		return UploadResult{}, fmt.Errorf("writing user_id field: %w", err)
	}
	if err := w.WriteField("scheduled_date", date); err != nil {
		return UploadResult{}, fmt.Errorf("writing scheduled_date field: %w", err)
	}
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return UploadResult{}, fmt.Errorf("creating file part: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return UploadResult{}, fmt.Errorf("copying %s: %w", filename, err)
	}
	if err := w.Close(); err != nil {
		return UploadResult{}, fmt.Errorf("closing multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.baseURL+"/api/v1/uploads/pdf", &buf,
	)
	if err != nil {
		return UploadResult{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	var resp uploadDTO
	if err := c.send(req, &resp); err != nil {
		return UploadResult{}, err
	}

	name := resp.OriginalFilename
	if name == "" {
		name = filename
	}
	return UploadResult{
		ID:              resp.ID,
		Filename:        name,
		Status:          resp.Status,
		ParsedTaskCount: resp.ParsedTaskCount,
		TasksCreated:    resp.TasksCreated,
		ErrorMessage:    derefString(resp.ErrorMessage),
	}, nil
}
