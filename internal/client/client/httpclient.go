package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/caet/internal/client/models"
	"github.com/dmitrijs2005/caet/internal/common"
	"github.com/dmitrijs2005/caet/internal/netx"
)

type HTTPClient struct {
	baseURL   string
	csrfToken string
	http      *http.Client

	mu      sync.Mutex
	session string
}

// response covers every envelope shape the server sends.
type response struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	User    *models.Profile   `json:"user"`
	Files   []models.FileInfo `json:"files"`
	Status  string            `json:"status"`
}

func NewHTTPClient(baseURL, csrfToken string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL:   strings.TrimRight(baseURL, "/"),
		csrfToken: csrfToken,
		http:      &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) LoggedIn() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session != ""
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, "/health/live", nil, "")
	return err
}

func (c *HTTPClient) Register(ctx context.Context, name, email, password, dob, phone string) error {
	_, err := c.postJSON(ctx, "/register", map[string]string{
		"name":                      name,
		"email":                     email,
		"password":                  password,
		"dob":                       dob,
		"phone":                     phone,
		common.AntiForgeryFieldName: c.csrfToken,
	})
	return err
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) error {
	_, err := c.postJSON(ctx, "/login", map[string]string{
		"email":                     email,
		"password":                  password,
		common.AntiForgeryFieldName: c.csrfToken,
	})
	return err
}

func (c *HTTPClient) GoogleLogin(ctx context.Context, token string) error {
	_, err := c.postJSON(ctx, "/google-login", map[string]string{
		"token":                     token,
		common.AntiForgeryFieldName: c.csrfToken,
	})
	return err
}

// Logout drops the local session even when the server cannot be reached.
func (c *HTTPClient) Logout(ctx context.Context) error {
	_, err := c.postJSON(ctx, "/logout", map[string]string{})
	c.mu.Lock()
	c.session = ""
	c.mu.Unlock()
	return err
}

func (c *HTTPClient) Profile(ctx context.Context) (*models.Profile, error) {
	resp, err := c.do(ctx, http.MethodGet, "/profile", nil, "")
	if err != nil {
		return nil, err
	}
	if resp.User == nil {
		return nil, fmt.Errorf("profile missing from response")
	}
	return resp.User, nil
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, name, phone, dob string) error {
	_, err := c.postJSON(ctx, "/profile", map[string]string{
		"name":                      name,
		"phone":                     phone,
		"dob":                       dob,
		common.AntiForgeryFieldName: c.csrfToken,
	})
	return err
}

func (c *HTTPClient) Files(ctx context.Context) ([]models.FileInfo, error) {
	resp, err := c.do(ctx, http.MethodGet, "/files", nil, "")
	if err != nil {
		return nil, err
	}
	return resp.Files, nil
}

func (c *HTTPClient) Upload(ctx context.Context, files []Upload) error {
	parts := make([]netx.FilePart, 0, len(files))
	for _, f := range files {
		parts = append(parts, netx.FilePart{Name: f.Name, Body: f.Body})
	}

	body, contentType, err := netx.MultipartBody(
		map[string]string{common.AntiForgeryFieldName: c.csrfToken}, "files", parts)
	if err != nil {
		return err
	}

	_, err = c.do(ctx, http.MethodPost, "/upload", body, contentType)
	return err
}

func (c *HTTPClient) ForgotPassword(ctx context.Context, email string) (string, error) {
	resp, err := c.postJSON(ctx, "/forgot-password", map[string]string{
		"email":                     email,
		common.AntiForgeryFieldName: c.csrfToken,
	})
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (c *HTTPClient) postJSON(ctx context.Context, path string, payload any) (*response, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodPost, path, bytes.NewReader(b), "application/json")
}

// do sends one request with the session cookie attached, remembers any
// session cookie in the answer, and decodes the JSON envelope.
func (c *HTTPClient) do(ctx context.Context, method, path string, body io.Reader, contentType string) (*response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	c.mu.Lock()
	if c.session != "" {
		req.AddCookie(&http.Cookie{Name: common.SessionCookieName, Value: c.session})
	}
	c.mu.Unlock()

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer res.Body.Close()

	for _, ck := range res.Cookies() {
		if ck.Name != common.SessionCookieName {
			continue
		}
		c.mu.Lock()
		if ck.MaxAge < 0 || ck.Value == "" {
			c.session = ""
		} else {
			c.session = ck.Value
		}
		c.mu.Unlock()
	}

	var out response
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, &APIError{Status: res.StatusCode, Message: http.StatusText(res.StatusCode)}
	}

	if res.StatusCode >= 400 || (!out.Success && out.Status == "") {
		msg := out.Message
		if msg == "" {
			msg = http.StatusText(res.StatusCode)
		}
		return nil, &APIError{Status: res.StatusCode, Message: msg}
	}
	return &out, nil
}
