package drive

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
)

// Token file permissions
const (
	TokenFilePermissions = 0600
	TokenDirPermissions  = 0700
)

// AuthState is the state parameter of the consent URL
const AuthState = "state-token"

// CodePrompt shows the consent URL to the user and returns the pasted authorization code
type CodePrompt func(ctx context.Context, authURL string) (string, error)

// TokenFile stores one OAuth token as JSON
type TokenFile struct {
	path string
}

// NewTokenFile returns a token store at path
func NewTokenFile(path string) *TokenFile {
	return &TokenFile{path: path}
}

// Path returns the file location
func (f *TokenFile) Path() string {
	return f.path
}

// Load reads the token. A missing file is ErrNoToken.
func (f *TokenFile) Load() (*oauth2.Token, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoToken
	}
	if err != nil {
		return nil, fmt.Errorf("read token: %w", err)
	}

	tok := &oauth2.Token{}
	if err := json.Unmarshal(data, tok); err != nil {
		return nil, fmt.Errorf("parse token %s: %w", f.path, err)
	}
	if tok.AccessToken == "" && tok.RefreshToken == "" {
		return nil, ErrNoToken
	}
	return tok, nil
}

// Save writes the token, replacing the previous one
func (f *TokenFile) Save(tok *oauth2.Token) error {
	data, err := json.Marshal(tok)
	if err != nil {
		return fmt.Errorf("encode token: %w", err)
	}
	if dir := filepath.Dir(f.path); dir != "" {
		if err := os.MkdirAll(dir, TokenDirPermissions); err != nil {
			return fmt.Errorf("create token dir: %w", err)
		}
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, TokenFilePermissions); err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	return os.Rename(tmp, f.path)
}

// persistingSource writes every token it hands out that differs from the last saved one
type persistingSource struct {
	mu     sync.Mutex
	base   oauth2.TokenSource
	store  *TokenFile
	last   string
	logger *slog.Logger
}

func (s *persistingSource) Token() (*oauth2.Token, error) {
	tok, err := s.base.Token()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if tok.AccessToken != s.last {
		if err := s.store.Save(tok); err != nil {
			s.logger.Warn("failed to persist refreshed token", "path", s.store.Path(), "error", err)
		} else {
			s.logger.Debug("token refreshed", "path", s.store.Path(), "expiry", tok.Expiry)
		}
		s.last = tok.AccessToken
	}
	return tok, nil
}

// LoadConfig builds the OAuth config from a client secrets file
func LoadConfig(credentialsFile string) (*oauth2.Config, error) {
	data, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	config, err := google.ConfigFromJSON(data, drive.DriveScope)
	if err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}
	return config, nil
}

// NewHTTPClient returns an authorized client. The token comes from store,
// or from the consent flow through prompt when none is stored yet. Refreshed
// tokens are written back to store.
func NewHTTPClient(ctx context.Context, config *oauth2.Config, store *TokenFile, prompt CodePrompt, logger *slog.Logger) (*http.Client, error) {
	if logger == nil {
		logger = slog.Default()
	}

	tok, err := store.Load()
	if errors.Is(err, ErrNoToken) {
		if prompt == nil {
			return nil, err
		}
		tok, err = exchange(ctx, config, prompt)
		if err != nil {
			return nil, err
		}
		if err := store.Save(tok); err != nil {
			return nil, err
		}
		logger.Info("drive authorization stored", "path", store.Path())
	} else if err != nil {
		return nil, err
	}

	source := &persistingSource{
		base:   config.TokenSource(ctx, tok),
		store:  store,
		last:   tok.AccessToken,
		logger: logger,
	}
	return oauth2.NewClient(ctx, oauth2.ReuseTokenSource(tok, source)), nil
}

func exchange(ctx context.Context, config *oauth2.Config, prompt CodePrompt) (*oauth2.Token, error) {
	authURL := config.AuthCodeURL(AuthState, oauth2.AccessTypeOffline)
	code, err := prompt(ctx, authURL)
	if err != nil {
		return nil, fmt.Errorf("authorization prompt: %w", err)
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ErrNoToken
	}

	tok, err := config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}
	return tok, nil
}

// NewConnector returns a Connector that builds a Client from the credentials
// and token files named by paths at connect time.
func NewConnector(paths func() (credentialsFile, tokenFile string), prompt CodePrompt, logger *slog.Logger) Connector {
	return func(ctx context.Context) (API, error) {
		credentialsFile, tokenFile := paths()
		config, err := LoadConfig(credentialsFile)
		if err != nil {
			return nil, err
		}
		httpClient, err := NewHTTPClient(ctx, config, NewTokenFile(tokenFile), prompt, logger)
		if err != nil {
			return nil, err
		}
		return NewClient(ctx, httpClient, logger)
	}
}
