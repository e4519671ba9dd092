package scoring

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultBaseURL — облачный backend по умолчанию.
	DefaultBaseURL = "https://cloud.langfuse.com"

	ingestionPath         = "/api/public/ingestion"
	eventTypeScoreCreate  = "score-create"
	defaultRequestTimeout = 10 * time.Second
	sdkName               = "feedback-go"
)

// HTTPClient — транспорт через Langfuse public ingestion API.
//
// Отправляет batch из одного события score-create:
//
//	POST {baseURL}/api/public/ingestion
//	Authorization: Basic base64(publicKey + ":")
//
// Используется только публичный ключ: клиент работает на стороне пользователя
// и не должен знать секрет проекта.
type HTTPClient struct {
	baseURL    string
	publicKey  string
	httpClient *http.Client
	closed     atomic.Bool
}

// HTTPConfig — конфигурация HTTPClient.
type HTTPConfig struct {
	// PublicKey — публичный ключ проекта (обязательно).
	PublicKey string

	// BaseURL — адрес backend (default: DefaultBaseURL).
	BaseURL string

	// Timeout — таймаут одного запроса (default: 10s).
	Timeout time.Duration

	// HTTPClient (опционально; для тестов).
	HTTPClient *http.Client
}

// NewHTTPClient создаёт HTTPClient. Ошибка означает, что клиент построить нельзя.
func NewHTTPClient(cfg HTTPConfig) (*HTTPClient, error) {
	if strings.TrimSpace(cfg.PublicKey) == "" {
		return nil, ErrMissingPublicKey
	}

	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBaseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, baseURL)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultRequestTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		publicKey:  cfg.PublicKey,
		httpClient: httpClient,
	}, nil
}

// ingestionEvent — элемент batch.
type ingestionEvent struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Body      Record    `json:"body"`
}

type ingestionRequest struct {
	Batch []ingestionEvent `json:"batch"`
}

// ingestionResponse — ответ 207 Multi-Status.
type ingestionResponse struct {
	Successes []struct {
		ID     string `json:"id"`
		Status int    `json:"status"`
	} `json:"successes"`
	Errors []struct {
		ID      string `json:"id"`
		Status  int    `json:"status"`
		Message string `json:"message"`
	} `json:"errors"`
}

// Score отправляет запись в ingestion API.
func (c *HTTPClient) Score(ctx context.Context, rec Record) error {
	if c.closed.Load() {
		return ErrClientClosed
	}

	body, err := json.Marshal(ingestionRequest{
		Batch: []ingestionEvent{{
			ID:        uuid.New().String(),
			Type:      eventTypeScoreCreate,
			Timestamp: time.Now().UTC(),
			Body:      rec,
		}},
	})
	if err != nil {
		return fmt.Errorf("marshal score: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+ingestionPath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: create request: %v", ErrDeliveryFailure, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Langfuse-Sdk-Name", sdkName)
	req.Header.Set("X-Langfuse-Public-Key", c.publicKey)
	req.SetBasicAuth(c.publicKey, "")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDeliveryFailure, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return fmt.Errorf("%w: read response: %v", ErrDeliveryFailure, err)
	}

	if resp.StatusCode >= 400 {
		return fmt.Errorf("%w: HTTP %d: %s", ErrDeliveryFailure, resp.StatusCode, truncate(string(respBody), 200))
	}

	// 207 — часть событий могла быть отклонена
	if resp.StatusCode == http.StatusMultiStatus {
		var ir ingestionResponse
		if err := json.Unmarshal(respBody, &ir); err != nil {
			return fmt.Errorf("%w: decode response: %v", ErrDeliveryFailure, err)
		}
		if len(ir.Errors) > 0 {
			e := ir.Errors[0]
			return fmt.Errorf("%w: event %s rejected with %d: %s", ErrDeliveryFailure, e.ID, e.Status, e.Message)
		}
	}

	return nil
}

// Close помечает клиент закрытым.
func (c *HTTPClient) Close() error {
	c.closed.Store(true)
	c.httpClient.CloseIdleConnections()
	return nil
}

// BaseURL возвращает адрес backend.
func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

// truncate обрезает строку до указанной длины.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
