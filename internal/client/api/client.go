package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/iudanet/todokeeper/pkg/api"
)

// ErrNoSession возвращается для защищенных вызовов без сохраненной сессии
var ErrNoSession = errors.New("not authenticated")

// Error ошибка, полученная от сервера
type Error struct {
	Message    string
	StatusCode int
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Message)
}

// IsStatus проверяет, что err это ошибка сервера с данным статусом
func IsStatus(err error, status int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}

// Session хранит токены между вызовами
type Session interface {
	// Tokens возвращает текущие access и refresh токены или ErrNoSession
	Tokens(ctx context.Context) (access, refresh string, err error)

	// Update сохраняет пару, выданную после refresh
	Update(ctx context.Context, tokens *api.TokenResponse) error
}

// Client представляет HTTP клиент для взаимодействия с сервером
type Client struct {
	httpClient *http.Client
	session    Session
	baseURL    string
}

// NewClient создает новый API клиент
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			// Ограничиваем количество редиректов. Authorization переносит сам
			// net/http и только в пределах исходного хоста.
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				return nil
			},
		},
	}
}

// SetSession подключает хранилище токенов для защищенных вызовов
func (c *Client) SetSession(s Session) {
	c.session = s
}

// Register регистрирует нового пользователя
func (c *Client) Register(ctx context.Context, req api.RegisterRequest) (*api.UserResponse, error) {
	var resp api.UserResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/users/register", "", req, &resp); err != nil {
		return nil, fmt.Errorf("register request failed: %w", err)
	}
	return &resp, nil
}

// Login выполняет аутентификацию пользователя
func (c *Client) Login(ctx context.Context, req api.LoginRequest) (*api.TokenResponse, error) {
	var resp api.TokenResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/users/login", "", req, &resp); err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	return &resp, nil
}

// Refresh обменивает refresh token на новую пару
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*api.TokenResponse, error) {
	var resp api.TokenResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/users/refresh", refreshToken, nil, &resp); err != nil {
		return nil, fmt.Errorf("refresh request failed: %w", err)
	}
	return &resp, nil
}

// Me возвращает профиль текущего пользователя
func (c *Client) Me(ctx context.Context) (*api.UserResponse, error) {
	var resp api.UserResponse
	if err := c.doAuthed(ctx, http.MethodGet, "/api/v1/users/me", nil, &resp); err != nil {
		return nil, fmt.Errorf("profile request failed: %w", err)
	}
	return &resp, nil
}

// TaskQuery фильтры списка задач
type TaskQuery struct {
	Completed *bool
	Category  string
}

func (q TaskQuery) encode() string {
	v := url.Values{}
	if q.Completed != nil {
		v.Set("completed", strconv.FormatBool(*q.Completed))
	}
	if q.Category != "" {
		v.Set("category", q.Category)
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}

// ListTasks возвращает задачи текущего пользователя
func (c *Client) ListTasks(ctx context.Context, q TaskQuery) ([]api.TaskResponse, error) {
	var resp api.TaskListResponse
	if err := c.doAuthed(ctx, http.MethodGet, tasksPath+q.encode(), nil, &resp); err != nil {
		return nil, fmt.Errorf("list tasks request failed: %w", err)
	}
	return resp.Tasks, nil
}

// CreateTask создает задачу
func (c *Client) CreateTask(ctx context.Context, req api.CreateTaskRequest) (*api.TaskResponse, error) {
	var resp api.TaskResponse
	if err := c.doAuthed(ctx, http.MethodPost, tasksPath, req, &resp); err != nil {
		return nil, fmt.Errorf("create task request failed: %w", err)
	}
	return &resp, nil
}

// GetTask возвращает задачу по id
func (c *Client) GetTask(ctx context.Context, id string) (*api.TaskResponse, error) {
	var resp api.TaskResponse
	if err := c.doAuthed(ctx, http.MethodGet, taskPath(id), nil, &resp); err != nil {
		return nil, fmt.Errorf("get task request failed: %w", err)
	}
	return &resp, nil
}

// UpdateTask частично обновляет задачу
func (c *Client) UpdateTask(ctx context.Context, id string, req api.UpdateTaskRequest) (*api.TaskResponse, error) {
	var resp api.TaskResponse
	if err := c.doAuthed(ctx, http.MethodPut, taskPath(id), req, &resp); err != nil {
		return nil, fmt.Errorf("update task request failed: %w", err)
	}
	return &resp, nil
}

// CompleteTask устанавливает статус выполнения
func (c *Client) CompleteTask(ctx context.Context, id string, completed bool) (*api.TaskResponse, error) {
	var resp api.TaskResponse
	req := api.CompleteTaskRequest{Completed: &completed}
	if err := c.doAuthed(ctx, http.MethodPatch, taskPath(id)+"/complete", req, &resp); err != nil {
		return nil, fmt.Errorf("complete task request failed: %w", err)
	}
	return &resp, nil
}

// DeleteTask удаляет задачу
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	if err := c.doAuthed(ctx, http.MethodDelete, taskPath(id), nil, nil); err != nil {
		return fmt.Errorf("delete task request failed: %w", err)
	}
	return nil
}

const tasksPath = "/api/v1/users/me/tasks"

func taskPath(id string) string {
	return tasksPath + "/" + url.PathEscape(id)
}

// doAuthed выполняет запрос с access token. При 401 один раз обновляет
// токены через refresh token и повторяет запрос.
func (c *Client) doAuthed(ctx context.Context, method, path string, body, result any) error {
	if c.session == nil {
		return ErrNoSession
	}

	access, refresh, err := c.session.Tokens(ctx)
	if err != nil {
		return err
	}

	err = c.doRequest(ctx, method, path, access, body, result)
	if !IsStatus(err, http.StatusUnauthorized) || refresh == "" {
		return err
	}

	pair, refreshErr := c.Refresh(ctx, refresh)
	if refreshErr != nil {
		// исходная 401 информативнее ошибки refresh
		return err
	}
	if err := c.session.Update(ctx, pair); err != nil {
		return fmt.Errorf("failed to save refreshed tokens: %w", err)
	}

	return c.doRequest(ctx, method, path, pair.AccessToken, body, result)
}

// doRequest выполняет HTTP запрос
func (c *Client) doRequest(ctx context.Context, method, path, token string, body, result any) error {
	endpoint := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	// Читаем тело ответа
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	// Проверяем статус код
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &Error{StatusCode: resp.StatusCode}
		var errResp api.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil {
			apiErr.Message = errResp.Message
		}
		return apiErr
	}

	// Декодируем успешный ответ
	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
