package client

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
	"sync"
	"time"

	"golang.org/x/exp/slog"

	"doctracker/internal/app/client/config"
	"doctracker/internal/domain/document"
)

const userAgent = "DocTracker-Client/1.0"

// httpClient - клиент удаленного сервиса документов
type httpClient struct {
	client  *http.Client
	log     *slog.Logger
	baseURL string

	mu    sync.RWMutex
	token string
}

var _ document.Remote = (*httpClient)(nil)

func NewHTTPClient(cfg *config.Config, log *slog.Logger) *httpClient {
	client := &http.Client{
		Timeout: cfg.RequestTimeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			IdleConnTimeout:     90 * time.Second,
			MaxIdleConnsPerHost: 10,
		},
	}

	return &httpClient{
		client:  client,
		log:     log.With("component", "http_client"),
		baseURL: cfg.BaseURL(),
	}
}

// SetToken устанавливает токен аутентификации
func (h *httpClient) SetToken(token string) {
	h.mu.Lock()
	h.token = token
	h.mu.Unlock()
}

func (h *httpClient) bearer() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// ListDocuments загружает полный список документов
func (h *httpClient) ListDocuments(ctx context.Context) ([]document.Record, error) {
	var records []document.Record
	if err := h.call(ctx, "list documents", http.MethodGet, "/data", nil, &records); err != nil {
		return nil, err
	}
	for i := range records {
		records[i].Normalize()
	}
	if records == nil {
		records = []document.Record{}
	}
	return records, nil
}

// GetDocument загружает один документ
func (h *httpClient) GetDocument(ctx context.Context, id string) (*document.Record, error) {
	var rec document.Record
	if err := h.call(ctx, "get document", http.MethodGet, "/data/"+url.PathEscape(id), nil, &rec); err != nil {
		return nil, err
	}
	rec.Normalize()
	return &rec, nil
}

// CreateDocument создает документ и возвращает присвоенный сервером идентификатор
func (h *httpClient) CreateDocument(ctx context.Context, f document.Fields) (string, error) {
	var resp struct {
		DocumentID json.RawMessage `json:"document_id"`
	}
	if err := h.call(ctx, "create document", http.MethodPost, "/data", f, &resp); err != nil {
		return "", err
	}
	return rawID(resp.DocumentID), nil
}

// UpdateDocument отправляет измененные поля документа
func (h *httpClient) UpdateDocument(ctx context.Context, id string, f document.Fields) error {
	return h.call(ctx, "update document", http.MethodPut, "/data/"+url.PathEscape(id), f, nil)
}

// DeleteDocument удаляет документ
func (h *httpClient) DeleteDocument(ctx context.Context, id string) error {
	return h.call(ctx, "delete document", http.MethodDelete, "/data/"+url.PathEscape(id), nil, nil)
}

// ListStatuses загружает допустимые статусы
func (h *httpClient) ListStatuses(ctx context.Context) ([]string, error) {
	var statuses []string
	if err := h.call(ctx, "list statuses", http.MethodGet, "/data/statuses", nil, &statuses); err != nil {
		return nil, err
	}
	return statuses, nil
}

// ListDocumentTypes загружает допустимые типы документов
func (h *httpClient) ListDocumentTypes(ctx context.Context) ([]string, error) {
	var types []string
	if err := h.call(ctx, "list document types", http.MethodGet, "/data/document-types", nil, &types); err != nil {
		return nil, err
	}
	return types, nil
}

func (h *httpClient) call(ctx context.Context, op, method, path string, body, result any) error {
	resp, err := h.doRequest(ctx, method, path, body)
	if err != nil {
		return document.NewError(op, document.ErrNetwork, err)
	}
	return h.parseResponse(op, resp, result)
}

func (h *httpClient) doRequest(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("ошибка маршалинга тела запроса: %w", err)
		}
		reqBody = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := h.bearer(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	h.log.Debug("Отправка запроса",
		"method", method,
		"url", req.URL.String(),
	)

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения запроса: %w", err)
	}

	return resp, nil
}

func (h *httpClient) parseResponse(op string, resp *http.Response, result any) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return document.NewError(op, document.ErrNetwork, fmt.Errorf("ошибка чтения ответа: %w", err))
	}

	h.log.Debug("Получен ответ",
		"status", resp.StatusCode,
		"bytes", len(body),
	)

	if resp.StatusCode >= 400 {
		return statusError(op, resp.StatusCode, body)
	}

	if result != nil && len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, result); err != nil {
			return document.NewError(op, document.ErrRemote, fmt.Errorf("ошибка парсинга ответа: %w", err))
		}
	}

	return nil
}

// statusError переводит HTTP-статус в ошибку доменного вида
func statusError(op string, status int, body []byte) error {
	cause := errors.New(serverMessage(status, body))

	var kind error
	switch {
	case status >= 500:
		kind = document.ErrNetwork
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		kind = document.ErrValidation
	case status == http.StatusNotFound:
		kind = document.ErrNotFound
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		kind = document.ErrUnauthenticated
	default:
		kind = document.ErrRemote
	}
	return document.NewError(op, kind, cause)
}

func serverMessage(status int, body []byte) string {
	var errResp struct {
		Error   string `json:"error"`
		Message string `json:"message"`
		Detail  string `json:"detail"`
	}
	if err := json.Unmarshal(body, &errResp); err == nil {
		for _, msg := range []string{errResp.Error, errResp.Message, errResp.Detail} {
			if msg != "" {
				return fmt.Sprintf("ошибка сервера: %s", msg)
			}
		}
	}
	return fmt.Sprintf("ошибка сервера: статус %d", status)
}

// rawID принимает идентификатор строкой или числом
func rawID(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.Trim(strings.TrimSpace(string(raw)), `"`)
}
