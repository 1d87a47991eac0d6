// Package client is a typed wrapper around the café-directory REST API.
// A single Client carries the admin session cookie across calls, so an
// admin flow is Login followed by the mutating operations on the same
// instance.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"os"
	"path/filepath"

	"cafedir/model"
)

// MaxImageSize mirrors the server's per-file cap. Oversize files are
// rejected before any bytes hit the network.
const MaxImageSize = 5 << 20

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Jar: jar},
	}, nil
}

// APIError is any non-2xx response, carrying the server's message.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// IsUnauthorized reports whether err is a 401 response. Comment submission
// is the one action whose failure message distinguishes bad credentials.
func IsUnauthorized(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.Status == http.StatusUnauthorized
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Comment json.RawMessage `json:"comment"`
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		if resp.StatusCode >= 400 {
			return &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		}
		return fmt.Errorf("decoding response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return &APIError{Status: resp.StatusCode, Message: env.Message}
	}

	if out == nil {
		return nil
	}
	payload := env.Data
	if payload == nil {
		payload = env.Comment
	}
	if payload == nil {
		return nil
	}
	return json.Unmarshal(payload, out)
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) sendJSON(ctx context.Context, method, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

// Login authenticates the admin session. The marker cookie is kept in the
// client's jar for subsequent mutating calls.
func (c *Client) Login(ctx context.Context, username, password string) error {
	in := map[string]string{"username": username, "password": password}
	return c.sendJSON(ctx, http.MethodPost, "/api/admin/login", in, nil)
}

// CheckAuth reports whether the current session still carries a valid
// admin marker.
func (c *Client) CheckAuth(ctx context.Context) (bool, error) {
	err := c.getJSON(ctx, "/api/admin/check-auth", nil)
	if IsUnauthorized(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (c *Client) GetCafes(ctx context.Context) ([]model.Cafe, error) {
	var cafes []model.Cafe
	if err := c.getJSON(ctx, "/api/cafes", &cafes); err != nil {
		return nil, err
	}
	return cafes, nil
}

func (c *Client) GetCafe(ctx context.Context, id int64) (model.Cafe, error) {
	var cafe model.Cafe
	if err := c.getJSON(ctx, fmt.Sprintf("/api/cafes/%d", id), &cafe); err != nil {
		return model.Cafe{}, err
	}
	return cafe, nil
}

// NewCafe is the admin create-form payload. ImagePaths are local files
// attached to the multipart request.
type NewCafe struct {
	Name        string
	Address     string
	Description string
	Facilities  map[string]any
	ImagePaths  []string
}

// CreateCafe submits the admin create form. Each image is size-checked
// locally against MaxImageSize before the request is built.
func (c *Client) CreateCafe(ctx context.Context, in NewCafe) (model.Cafe, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	_ = w.WriteField("name", in.Name)
	_ = w.WriteField("address", in.Address)
	_ = w.WriteField("description", in.Description)
	facilities, err := json.Marshal(in.Facilities)
	if err != nil {
		return model.Cafe{}, err
	}
	_ = w.WriteField("facilities", string(facilities))

	for _, path := range in.ImagePaths {
		if err := attachImage(w, path); err != nil {
			return model.Cafe{}, err
		}
	}
	if err := w.Close(); err != nil {
		return model.Cafe{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/cafes", &buf)
	if err != nil {
		return model.Cafe{}, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	var cafe model.Cafe
	if err := c.do(req, &cafe); err != nil {
		return model.Cafe{}, err
	}
	return cafe, nil
}

func attachImage(w *multipart.Writer, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.Size() > MaxImageSize {
		return fmt.Errorf("%s exceeds the 5MB image limit", filepath.Base(path))
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	part, err := w.CreateFormFile("images", filepath.Base(path))
	if err != nil {
		return err
	}
	_, err = io.Copy(part, f)
	return err
}

// UpdateCafe sends a partial record; only the provided top-level keys are
// replaced server-side.
func (c *Client) UpdateCafe(ctx context.Context, id int64, patch map[string]any) (model.Cafe, error) {
	var cafe model.Cafe
	if err := c.sendJSON(ctx, http.MethodPut, fmt.Sprintf("/api/cafes/%d", id), patch, &cafe); err != nil {
		return model.Cafe{}, err
	}
	return cafe, nil
}

func (c *Client) DeleteCafe(ctx context.Context, id int64) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, fmt.Sprintf("%s/api/cafes/%d", c.baseURL, id), nil)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

func (c *Client) AddComment(ctx context.Context, cafeID int64, userID, password, text string) (model.Comment, error) {
	in := map[string]string{
		"userId":      userID,
		"password":    password,
		"commentText": text,
	}
	var comment model.Comment
	err := c.sendJSON(ctx, http.MethodPost, fmt.Sprintf("/api/cafes/%d/comments", cafeID), in, &comment)
	if err != nil {
		return model.Comment{}, err
	}
	return comment, nil
}
