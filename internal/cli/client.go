package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// --- Response types (дублируются из api/dto.go, CLI не импортирует internal/api) ---

// SelectionResponse — временное состояние контрола.
type SelectionResponse struct {
	Polarity       string `json:"polarity"`
	RefinementOpen bool   `json:"refinement_open"`
	DraftComment   string `json:"draft_comment"`
	DraftScore     string `json:"draft_score"`
}

// ControlResponse — контрол из API.
type ControlResponse struct {
	ID                string            `json:"id"`
	TraceID           string            `json:"trace_id"`
	State             string            `json:"state"`
	Selection         SelectionResponse `json:"selection"`
	ValidationMessage string            `json:"validation_message,omitempty"`
	Placeholder       string            `json:"placeholder,omitempty"`
	CreatedAt         string            `json:"created_at"`
}

// ScoreEventResponse — отправленный score.
type ScoreEventResponse struct {
	TraceID string  `json:"trace_id"`
	Name    string  `json:"name"`
	Value   float64 `json:"value"`
	Comment *string `json:"comment,omitempty"`
}

// SubmitResponse — результат submit.
type SubmitResponse struct {
	Submitted bool                `json:"submitted"`
	Event     *ScoreEventResponse `json:"event,omitempty"`
	Control   ControlResponse     `json:"control"`
}

// StatusResponse — состояние сервиса.
type StatusResponse struct {
	Telemetry string `json:"telemetry"`
	Controls  int    `json:"controls"`
}

// --- Request types ---

// UpdateDraftRequest — изменение черновых полей.
type UpdateDraftRequest struct {
	Score   *string `json:"score,omitempty"`
	Comment *string `json:"comment,omitempty"`
}

// --- API response wrappers ---

type dataResponse struct {
	Data json.RawMessage `json:"data"`
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// APIError — ошибка, возвращённая API.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("API error: HTTP %d", e.Status)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// --- Client ---

// Client — HTTP-клиент для feedback-api.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient создаёт клиент для API.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Status возвращает состояние сервиса.
func (c *Client) Status() (*StatusResponse, error) {
	var status StatusResponse
	err := c.get("/api/v1/status", &status)
	return &status, err
}

// --- Controls ---

// MountControl создаёт контрол для trace.
func (c *Client) MountControl(traceID string) (*ControlResponse, error) {
	body := map[string]string{"trace_id": traceID}
	var ctrl ControlResponse
	err := c.post("/api/v1/controls", body, &ctrl)
	return &ctrl, err
}

// GetControl возвращает контрол по ID.
func (c *Client) GetControl(id string) (*ControlResponse, error) {
	var ctrl ControlResponse
	err := c.get("/api/v1/controls/"+id, &ctrl)
	return &ctrl, err
}

// UnmountControl удаляет контрол.
func (c *Client) UnmountControl(id string) error {
	return c.delete("/api/v1/controls/" + id)
}

// SelectPolarity нажимает кнопку полярности.
func (c *Client) SelectPolarity(id, polarity string) (*ControlResponse, error) {
	body := map[string]string{"polarity": polarity}
	var ctrl ControlResponse
	err := c.post("/api/v1/controls/"+id+"/polarity", body, &ctrl)
	return &ctrl, err
}

// UpdateDraft меняет черновые поля.
func (c *Client) UpdateDraft(id string, req UpdateDraftRequest) (*ControlResponse, error) {
	var ctrl ControlResponse
	err := c.put("/api/v1/controls/"+id+"/draft", req, &ctrl)
	return &ctrl, err
}

// Submit подтверждает уточнение.
func (c *Client) Submit(id string) (*SubmitResponse, error) {
	var resp SubmitResponse
	err := c.post("/api/v1/controls/"+id+"/submit", nil, &resp)
	return &resp, err
}

// Cancel отменяет выбор.
func (c *Client) Cancel(id string) (*ControlResponse, error) {
	var ctrl ControlResponse
	err := c.post("/api/v1/controls/"+id+"/cancel", nil, &ctrl)
	return &ctrl, err
}

// PressKey отправляет сочетание клавиш.
func (c *Client) PressKey(id, key string) (*SubmitResponse, error) {
	body := map[string]string{"key": key}
	var resp SubmitResponse
	err := c.post("/api/v1/controls/"+id+"/keys", body, &resp)
	return &resp, err
}

// --- HTTP helpers ---

func (c *Client) get(path string, result any) error {
	return c.doData(http.MethodGet, path, nil, result)
}

func (c *Client) post(path string, body any, result any) error {
	return c.doData(http.MethodPost, path, body, result)
}

func (c *Client) put(path string, body any, result any) error {
	return c.doData(http.MethodPut, path, body, result)
}

func (c *Client) delete(path string) error {
	resp, err := c.do(http.MethodDelete, path, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return c.checkError(resp)
}

func (c *Client) doData(method, path string, body any, result any) error {
	resp, err := c.do(method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := c.checkError(resp); err != nil {
		return err
	}

	// 204 No Content
	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	var dr dataResponse
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if result != nil {
		return json.Unmarshal(dr.Data, result)
	}
	return nil
}

func (c *Client) do(method, path string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.httpClient.Do(req)
}

func (c *Client) checkError(resp *http.Response) error {
	if resp.StatusCode < 400 {
		return nil
	}

	apiErr := &APIError{Status: resp.StatusCode}

	var er errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&er); err == nil {
		apiErr.Code = er.Error.Code
		apiErr.Message = er.Error.Message
	}

	return apiErr
}
