// Package client is a thin HTTP client for the task API, used by the
// terminal UI.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	taskmodel "github.com/taskhive/taskhive/internal/models/task"
)

type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) SetToken(token string) {
	c.token = token
}

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type LoginResult struct {
	Token     string    `json:"token"`
	TokenType string    `json:"token_type"`
	ExpiresAt time.Time `json:"expires_at"`
	User      User      `json:"user"`
}

type Stats struct {
	Total          int64   `json:"total"`
	Completed      int64   `json:"completed"`
	Active         int64   `json:"active"`
	Overdue        int64   `json:"overdue"`
	Urgent         int64   `json:"urgent"`
	HighPriority   int64   `json:"high_priority"`
	CompletionRate float64 `json:"completion_rate"`
}

type apiError struct {
	Kind    string `json:"error"`
	Message string `json:"message"`
}

func (e *apiError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Kind
}

func (c *Client) do(method, path string, body interface{}, out interface{}) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}

	req, err := http.NewRequest(method, c.baseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr apiError
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err != nil {
			return fmt.Errorf("request failed with status %d", resp.StatusCode)
		}
		return &apiErr
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func (c *Client) Signup(name, email, password string) (*User, error) {
	var user User
	err := c.do(http.MethodPost, "/api/auth/signup", map[string]string{
		"name": name, "email": email, "password": password,
	}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) Login(email, password string) (*LoginResult, error) {
	var res LoginResult
	err := c.do(http.MethodPost, "/api/auth/login", map[string]string{
		"email": email, "password": password,
	}, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) CreateTask(title, description, priority, category string) (*taskmodel.Task, error) {
	payload := map[string]string{"title": title}
	if description != "" {
		payload["description"] = description
	}
	if priority != "" {
		payload["priority"] = priority
	}
	if category != "" {
		payload["category"] = category
	}

	var task taskmodel.Task
	if err := c.do(http.MethodPost, "/api/tasks", payload, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) ListTasks(limit, skip int) ([]taskmodel.Task, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("skip", strconv.Itoa(skip))

	var tasks []taskmodel.Task
	if err := c.do(http.MethodGet, "/api/tasks?"+q.Encode(), nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (c *Client) CompleteTask(id string) (*taskmodel.Task, error) {
	var task taskmodel.Task
	if err := c.do(http.MethodPatch, "/api/tasks/"+id+"/complete", nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) DeleteTask(id string) error {
	return c.do(http.MethodDelete, "/api/tasks/"+id, nil, nil)
}

func (c *Client) Stats() (*Stats, error) {
	var stats Stats
	if err := c.do(http.MethodGet, "/api/dashboard/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
