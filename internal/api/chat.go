package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/emres/macrolog/internal/model"
)

// chatWindow caps how much history travels with each request; the backend
// prepends its own system prompt.
const chatWindow = 10

// SendMessage posts the trailing chat history and returns the assistant
// reply text in full. The word-by-word reveal happens client-side.
func (c *Client) SendMessage(ctx context.Context, messages []model.Message, purpose string) (string, error) {
	if len(messages) > chatWindow {
		messages = messages[len(messages)-chatWindow:]
	}
	wire := make([]map[string]string, 0, len(messages))
	for _, m := range messages {
		wire = append(wire, map[string]string{"role": m.Role, "content": m.Content})
	}

	payload := map[string]any{"messages": wire}
	if strings.TrimSpace(purpose) != "" {
		payload["purpose"] = purpose
	}

	var out struct {
		Message string `json:"message"`
	}
	if err := c.do(ctx, http.MethodPost, "/chatbot/send_message/", payload, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// SendPhoto uploads a food photo for recognition and returns the
// assistant's analysis text.
func (c *Client) SendPhoto(ctx context.Context, photoPath, purpose, note string) (string, error) {
	if err := c.wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}

	f, err := os.Open(photoPath)
	if err != nil {
		return "", fmt.Errorf("open photo: %w", err)
	}
	defer f.Close()

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	part, err := mw.CreateFormFile("image", filepath.Base(photoPath))
	if err != nil {
		return "", fmt.Errorf("create photo form field: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return "", fmt.Errorf("copy photo into request: %w", err)
	}
	if strings.TrimSpace(purpose) != "" {
		if err := mw.WriteField("purpose", purpose); err != nil {
			return "", fmt.Errorf("write purpose field: %w", err)
		}
	}
	if strings.TrimSpace(note) != "" {
		if err := mw.WriteField("note", note); err != nil {
			return "", fmt.Errorf("write note field: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("finish multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL()+"/api/mealphoto/send_photo/", body)
	if err != nil {
		return "", fmt.Errorf("create photo request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return "", fmt.Errorf("execute photo upload: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read photo response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("photo upload failed with status %d", resp.StatusCode)
	}

	var out struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("decode photo response: %w", err)
	}
	return out.Message, nil
}
