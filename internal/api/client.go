// Package api talks to the restaurant REST API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	_ "github.com/BrandonKowalski/certifiable" // Add CA certificates to the default trust store
	log "github.com/sirupsen/logrus"

	"github.com/poku-e/culinart/internal/restaurant"
)

const DefaultBaseURL = "https://restaurant-api.dicoding.dev"

// DefaultSubmitPath is where new restaurants are posted.
const DefaultSubmitPath = "/add"

// ImageSize selects one of the picture renditions served by the API.
type ImageSize string

const (
	ImageSmall  ImageSize = "small"
	ImageMedium ImageSize = "medium"
	ImageLarge  ImageSize = "large"
)

type Client struct {
	baseURL    string
	submitPath string
	http       *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the default transport, mostly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithSubmitPath(path string) Option {
	return func(c *Client) {
		if path != "" {
			c.submitPath = "/" + strings.TrimLeft(path, "/")
		}
	}
}

func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		submitPath: DefaultSubmitPath,
		http:       httpClient(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// No overall request timeout: calls end when the server answers or ctx ends.
func httpClient() *http.Client {
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 60 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	return &http.Client{Transport: transport}
}

func (c *Client) BaseURL() string { return c.baseURL }

// ParseImageSize accepts "small", "medium" or "large".
func ParseImageSize(s string) (ImageSize, error) {
	switch size := ImageSize(s); size {
	case ImageSmall, ImageMedium, ImageLarge:
		return size, nil
	default:
		return "", fmt.Errorf("unknown image size %q (want small, medium or large)", s)
	}
}

// ImageURL builds the picture address for pictureID at the given size.
func (c *Client) ImageURL(size ImageSize, pictureID string) string {
	if pictureID == "" {
		return ""
	}
	return fmt.Sprintf("%s/images/%s/%s", c.baseURL, size, url.PathEscape(pictureID))
}

type envelope struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

type listResp struct {
	envelope
	Count       int                     `json:"count"`
	Restaurants []restaurant.Restaurant `json:"restaurants"`
}

type detailResp struct {
	envelope
	Restaurant restaurant.Restaurant `json:"restaurant"`
}

// List fetches every restaurant.
func (c *Client) List(ctx context.Context) ([]restaurant.Restaurant, error) {
	var out listResp
	if err := c.do(ctx, http.MethodGet, "/list", nil, &out); err != nil {
		log.WithError(err).Error("[api] Error fetching restaurants")
		return nil, err
	}
	return out.Restaurants, nil
}

// Detail fetches one restaurant with its menus and reviews.
func (c *Client) Detail(ctx context.Context, id string) (restaurant.Restaurant, error) {
	var out detailResp
	if err := c.do(ctx, http.MethodGet, "/detail/"+url.PathEscape(id), nil, &out); err != nil {
		log.WithError(err).WithField("id", id).Error("[api] Error fetching restaurant detail")
		return restaurant.Restaurant{}, err
	}
	return out.Restaurant, nil
}

// Submit posts a new restaurant and returns what the server stored.
func (c *Client) Submit(ctx context.Context, d restaurant.Draft) (restaurant.Restaurant, error) {
	body, err := json.Marshal(d)
	if err != nil {
		return restaurant.Restaurant{}, &Error{Op: http.MethodPost + " " + c.submitPath, Err: fmt.Errorf("encode draft: %w", err)}
	}
	var out detailResp
	if err := c.do(ctx, http.MethodPost, c.submitPath, body, &out); err != nil {
		log.WithError(err).WithField("name", d.Name).Error("[api] Error adding restaurant")
		return restaurant.Restaurant{}, err
	}
	return out.Restaurant, nil
}

// do sends the request and decodes the JSON body into out. out must embed
// envelope so the error flag can be checked.
func (c *Client) do(ctx context.Context, method, path string, body []byte, out interface{ failure() *envelope }) error {
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return &Error{Op: method + " " + path, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Op: method + " " + path, Err: err}
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return &Error{Op: method + " " + path, Status: resp.StatusCode, Message: resp.Status}
		}
		return &Error{Op: method + " " + path, Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	if env := out.failure(); env.Error {
		return &Error{Op: method + " " + path, Status: resp.StatusCode, Message: env.Message}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &Error{Op: method + " " + path, Status: resp.StatusCode, Message: resp.Status}
	}
	return nil
}

func (e *envelope) failure() *envelope { return e }
