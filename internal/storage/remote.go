package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ignatzorin/proposal-backend/internal/models"
)

// errRemoteNotFound внутренний маркер ответа 404.
var errRemoteNotFound = errors.New("storage: remote: не найдено")

// RemoteStore обращается к внешнему сервису хранения по HTTP/JSON.
type RemoteStore struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewRemoteStore создаёт клиент удалённого хранилища.
func NewRemoteStore(baseURL, token string, timeout time.Duration) (*RemoteStore, error) {
	baseURL = strings.TrimSuffix(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("storage: REMOTE_BASE_URL не задан")
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("storage: некорректный REMOTE_BASE_URL: %w", err)
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &RemoteStore{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

func (s *RemoteStore) Mode() Mode { return ModeRemote }

type promptPayload struct {
	Value string `json:"value"`
}

func (s *RemoteStore) ListProposals(ctx context.Context) ([]models.SavedProposal, error) {
	var list []models.SavedProposal
	if err := s.do(ctx, http.MethodGet, "/proposals", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *RemoteStore) SaveProposal(ctx context.Context, proposal models.SavedProposal) error {
	return s.do(ctx, http.MethodPost, "/proposals", proposal, nil)
}

func (s *RemoteStore) DeleteProposal(ctx context.Context, id string) error {
	return s.do(ctx, http.MethodDelete, "/proposals/"+url.PathEscape(id), nil, nil)
}

func (s *RemoteStore) ListAccountExecutives(ctx context.Context) ([]models.AccountExecutive, error) {
	var list []models.AccountExecutive
	if err := s.do(ctx, http.MethodGet, "/account-executives", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *RemoteStore) SaveAccountExecutives(ctx context.Context, aes []models.AccountExecutive) error {
	if aes == nil {
		aes = []models.AccountExecutive{}
	}
	return s.do(ctx, http.MethodPut, "/account-executives", aes, nil)
}

func (s *RemoteStore) GetPrompt(ctx context.Context) (string, bool, error) {
	var payload promptPayload
	err := s.do(ctx, http.MethodGet, "/settings/prompt", nil, &payload)
	if errors.Is(err, errRemoteNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return payload.Value, true, nil
}

func (s *RemoteStore) SavePrompt(ctx context.Context, value string) error {
	return s.do(ctx, http.MethodPut, "/settings/prompt", promptPayload{Value: value}, nil)
}

// do выполняет запрос. Любой ответ вне 2xx считается ошибкой.
func (s *RemoteStore) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("storage: remote: не удалось сериализовать запрос: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("storage: remote %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s %s", errRemoteNotFound, method, path)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("storage: remote %s %s: код ответа %d: %s", method, path, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("storage: remote %s %s: некорректный ответ: %w", method, path, err)
	}
	return nil
}
