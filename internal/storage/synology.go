package storage

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

const (
	apiAuth    = "SYNO.API.Auth"
	apiList    = "SYNO.FileStation.List"
	apiSharing = "SYNO.FileStation.Sharing"

	expiryLayout = "2006-01-02 15:04:05"
)

// session errors returned by DSM when the sid is missing, expired or revoked.
var sessionErrorCodes = map[int]bool{105: true, 106: true, 107: true, 119: true}

// SynologyConfig holds FileStation connection settings.
type SynologyConfig struct {
	BaseURL            string // overrides Host/Port/Secure, e.g. "http://127.0.0.1:5000/webapi"
	Host               string
	Port               string
	Secure             bool
	InsecureSkipVerify bool
	User               string
	Password           string
	Timeout            time.Duration
}

// SynologyStore implements FileStore over the DSM FileStation Web API.
type SynologyStore struct {
	baseURL  string
	user     string
	password string
	client   *http.Client

	mu  sync.Mutex
	sid string
}

type synoResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code int `json:"code"`
	} `json:"error"`
}

// NewSynologyStore builds a FileStation client. It logs in lazily on first use.
func NewSynologyStore(cfg SynologyConfig) *SynologyStore {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		scheme := "http"
		if cfg.Secure {
			scheme = "https"
		}
		baseURL = fmt.Sprintf("%s://%s:%s/webapi", scheme, cfg.Host, cfg.Port)
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.InsecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // self-signed NAS certificates
	}
	return &SynologyStore{
		baseURL:  strings.TrimRight(baseURL, "/"),
		user:     cfg.User,
		password: cfg.Password,
		client: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
		},
	}
}

// ListChildren lists the direct children of a folder.
func (s *SynologyStore) ListChildren(ctx context.Context, folderPath string) ([]Entry, error) {
	params := url.Values{}
	params.Set("api", apiList)
	params.Set("version", "2")
	params.Set("method", "list")
	params.Set("folder_path", folderPath)

	var data struct {
		Files []Entry `json:"files"`
	}
	if err := s.call(ctx, "list", folderPath, params, &data); err != nil {
		return nil, err
	}
	if data.Files == nil {
		return []Entry{}, nil
	}
	return data.Files, nil
}

// CreateSharingLink creates a password-protected link expiring at expiresAt.
func (s *SynologyStore) CreateSharingLink(ctx context.Context, path, password string, expiresAt time.Time) (string, error) {
	params := url.Values{}
	params.Set("api", apiSharing)
	params.Set("version", "3")
	params.Set("method", "create")
	params.Set("path", path)
	params.Set("password", password)
	params.Set("date_expired", `"`+expiresAt.Format(expiryLayout)+`"`)

	var data struct {
		Links []struct {
			ID  string `json:"id"`
			URL string `json:"url"`
		} `json:"links"`
	}
	if err := s.call(ctx, "create_sharing_link", path, params, &data); err != nil {
		return "", err
	}
	if len(data.Links) == 0 || data.Links[0].URL == "" {
		return "", &RemoteStoreError{Op: "create_sharing_link", Path: path, Err: errors.New("no link returned")}
	}
	return data.Links[0].URL, nil
}

// DeleteSharingLink revokes a sharing link by id.
func (s *SynologyStore) DeleteSharingLink(ctx context.Context, linkID string) error {
	params := url.Values{}
	params.Set("api", apiSharing)
	params.Set("version", "3")
	params.Set("method", "delete")
	params.Set("id", linkID)
	return s.call(ctx, "delete_sharing_link", linkID, params, nil)
}

// Logout ends the cached session, if any.
func (s *SynologyStore) Logout(ctx context.Context) error {
	s.mu.Lock()
	sid := s.sid
	s.sid = ""
	s.mu.Unlock()
	if sid == "" {
		return nil
	}
	params := url.Values{}
	params.Set("api", apiAuth)
	params.Set("version", "6")
	params.Set("method", "logout")
	params.Set("session", "FileStation")
	params.Set("_sid", sid)
	_, err := s.get(ctx, "logout", "", params)
	return err
}

// Close logs out.
func (s *SynologyStore) Close(ctx context.Context) error {
	return s.Logout(ctx)
}

func (s *SynologyStore) call(ctx context.Context, op, path string, params url.Values, out interface{}) error {
	sid, err := s.session(ctx)
	if err != nil {
		return err
	}
	params.Set("_sid", sid)

	resp, err := s.get(ctx, op, path, params)
	if err != nil {
		return err
	}
	if !resp.Success {
		code := 0
		if resp.Error != nil {
			code = resp.Error.Code
		}
		if sessionErrorCodes[code] {
			s.dropSession(sid)
		}
		return &RemoteStoreError{Op: op, Path: path, Code: code}
	}
	if out == nil || len(resp.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Data, out); err != nil {
		return &RemoteStoreError{Op: op, Path: path, Err: fmt.Errorf("decode data: %w", err)}
	}
	return nil
}

func (s *SynologyStore) get(ctx context.Context, op, path string, params url.Values) (*synoResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/entry.cgi?"+params.Encode(), nil)
	if err != nil {
		return nil, &RemoteStoreError{Op: op, Path: path, Err: err}
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &RemoteStoreError{Op: op, Path: path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &RemoteStoreError{Op: op, Path: path, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}
	var out synoResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, &RemoteStoreError{Op: op, Path: path, Err: fmt.Errorf("decode response: %w", err)}
	}
	return &out, nil
}

// session returns the cached sid, logging in when there is none.
func (s *SynologyStore) session(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sid != "" {
		return s.sid, nil
	}

	params := url.Values{}
	params.Set("api", apiAuth)
	params.Set("version", "6")
	params.Set("method", "login")
	params.Set("account", s.user)
	params.Set("passwd", s.password)
	params.Set("session", "FileStation")
	params.Set("format", "sid")

	resp, err := s.get(ctx, "login", "", params)
	if err != nil {
		return "", err
	}
	if !resp.Success {
		code := 0
		if resp.Error != nil {
			code = resp.Error.Code
		}
		return "", &RemoteStoreError{Op: "login", Code: code}
	}
	var data struct {
		SID string `json:"sid"`
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil || data.SID == "" {
		return "", &RemoteStoreError{Op: "login", Err: errors.New("no session id returned")}
	}
	s.sid = data.SID
	return s.sid, nil
}

func (s *SynologyStore) dropSession(sid string) {
	s.mu.Lock()
	if s.sid == sid {
		s.sid = ""
	}
	s.mu.Unlock()
}
