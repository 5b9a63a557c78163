package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/AMechouate/Warenbuchung-App-sub002/pkg/models"
)

// Client talks to the booking API. It keeps the bearer token obtained
// at login and sends it on every subsequent call.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// APIError carries the server's status code and error message.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

func (c *Client) Token() string {
	return c.token
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var serverErr struct {
			Error string `json:"error"`
		}
		message := resp.Status
		if err := json.NewDecoder(resp.Body).Decode(&serverErr); err == nil && serverErr.Error != "" {
			message = serverErr.Error
		}
		return &APIError{StatusCode: resp.StatusCode, Message: message}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// Login authenticates and stores the returned token on the client.
func (c *Client) Login(ctx context.Context, username, password string) (*models.AuthResponse, error) {
	var auth models.AuthResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/login", models.LoginRequest{
		Username: username,
		Password: password,
	}, &auth)
	if err != nil {
		return nil, err
	}

	c.token = auth.Token
	return &auth, nil
}

func (c *Client) Me(ctx context.Context) (*models.UserDTO, error) {
	var user models.UserDTO
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) GetProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := c.do(ctx, http.MethodGet, "/api/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) SearchProducts(ctx context.Context, query string) ([]models.Product, error) {
	var products []models.Product
	path := "/api/products/search?query=" + url.QueryEscape(query)
	if err := c.do(ctx, http.MethodGet, path, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) GetProduct(ctx context.Context, id int) (*models.Product, error) {
	var product models.Product
	if err := c.do(ctx, http.MethodGet, "/api/products/"+strconv.Itoa(id), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) CreateProduct(ctx context.Context, req models.ProductRequest) (*models.Product, error) {
	var product models.Product
	if err := c.do(ctx, http.MethodPost, "/api/products", req, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id int, req models.ProductRequest) error {
	return c.do(ctx, http.MethodPut, "/api/products/"+strconv.Itoa(id), req, nil)
}

func (c *Client) DeleteProduct(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, "/api/products/"+strconv.Itoa(id), nil, nil)
}

func (c *Client) GetWareneingaenge(ctx context.Context, groupByReferenz bool) ([]models.WareneingangView, error) {
	path := "/api/wareneingaenge"
	if groupByReferenz {
		path += "?groupByReferenz=true"
	}
	var views []models.WareneingangView
	if err := c.do(ctx, http.MethodGet, path, nil, &views); err != nil {
		return nil, err
	}
	return views, nil
}

func (c *Client) CreateWareneingang(ctx context.Context, req models.WareneingangRequest) (*models.WareneingangView, error) {
	var view models.WareneingangView
	if err := c.do(ctx, http.MethodPost, "/api/wareneingaenge", req, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

func (c *Client) UpdateWareneingang(ctx context.Context, id int, req models.WareneingangRequest) error {
	return c.do(ctx, http.MethodPut, "/api/wareneingaenge/"+strconv.Itoa(id), req, nil)
}

func (c *Client) DeleteWareneingang(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, "/api/wareneingaenge/"+strconv.Itoa(id), nil, nil)
}

func (c *Client) GetWarenausgaenge(ctx context.Context) ([]models.WarenausgangView, error) {
	var views []models.WarenausgangView
	if err := c.do(ctx, http.MethodGet, "/api/warenausgaenge", nil, &views); err != nil {
		return nil, err
	}
	return views, nil
}

func (c *Client) CreateWarenausgang(ctx context.Context, req models.WarenausgangRequest) (*models.WarenausgangView, error) {
	var view models.WarenausgangView
	if err := c.do(ctx, http.MethodPost, "/api/warenausgaenge", req, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

func (c *Client) UpdateWarenausgang(ctx context.Context, id int, req models.WarenausgangRequest) error {
	return c.do(ctx, http.MethodPut, "/api/warenausgaenge/"+strconv.Itoa(id), req, nil)
}

func (c *Client) DeleteWarenausgang(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, "/api/warenausgaenge/"+strconv.Itoa(id), nil, nil)
}

func (c *Client) GetOrders(ctx context.Context, orderNumber string) ([]models.OrderView, error) {
	path := "/api/orders"
	if orderNumber != "" {
		path += "?orderNumber=" + url.QueryEscape(orderNumber)
	}
	var views []models.OrderView
	if err := c.do(ctx, http.MethodGet, path, nil, &views); err != nil {
		return nil, err
	}
	return views, nil
}

func (c *Client) GetOrderAssignments(ctx context.Context, orderID int) ([]models.OrderAssignmentView, error) {
	var views []models.OrderAssignmentView
	path := "/api/orders/" + strconv.Itoa(orderID) + "/items"
	if err := c.do(ctx, http.MethodGet, path, nil, &views); err != nil {
		return nil, err
	}
	return views, nil
}

func (c *Client) GetProjectAssignments(ctx context.Context, projectKey string) ([]models.ProjectAssignmentView, error) {
	var views []models.ProjectAssignmentView
	path := "/api/projects/" + url.PathEscape(projectKey) + "/items"
	if err := c.do(ctx, http.MethodGet, path, nil, &views); err != nil {
		return nil, err
	}
	return views, nil
}

func (c *Client) GetWarenausgangReasons(ctx context.Context) ([]models.WarenausgangReason, error) {
	var reasons []models.WarenausgangReason
	if err := c.do(ctx, http.MethodGet, "/api/settings/reasons", nil, &reasons); err != nil {
		return nil, err
	}
	return reasons, nil
}

func (c *Client) GetJustifications(ctx context.Context) ([]models.JustificationTemplate, error) {
	var templates []models.JustificationTemplate
	if err := c.do(ctx, http.MethodGet, "/api/settings/justifications", nil, &templates); err != nil {
		return nil, err
	}
	return templates, nil
}
