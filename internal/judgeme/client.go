package judgeme

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"storefront/internal/domain"
)

const DefaultBaseURL = "https://judge.me/api/v1"

// ErrNotConfigured is returned when the API token or shop domain is missing.
var ErrNotConfigured = errors.New("judge.me is not configured")

type Config struct {
	BaseURL    string
	APIToken   string
	ShopDomain string
	Timeout    time.Duration
}

// Client reads published reviews from the Judge.me REST API.
type Client struct {
	baseURL    string
	token      string
	shopDomain string
	httpClient *http.Client
	logger     *log.Logger
}

func New(cfg Config, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    base,
		token:      cfg.APIToken,
		shopDomain: cfg.ShopDomain,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger: logger,
	}
}

type review struct {
	ID                int64     `json:"id"`
	Title             string    `json:"title"`
	Body              string    `json:"body"`
	Rating            int       `json:"rating"`
	ProductExternalID int64     `json:"product_external_id"`
	ProductHandle     string    `json:"product_handle"`
	CreatedAt         time.Time `json:"created_at"`
	Verified          string    `json:"verified"`
	Hidden            bool      `json:"hidden"`
	Curated           string    `json:"curated"`
	Reviewer          struct {
		Name string `json:"name"`
	} `json:"reviewer"`
}

type reviewsResponse struct {
	CurrentPage int      `json:"current_page"`
	PerPage     int      `json:"per_page"`
	Reviews     []review `json:"reviews"`
}

// Reviews fetches one page of reviews and keeps only curated, visible ones.
func (c *Client) Reviews(ctx context.Context, perPage, page int) ([]domain.Review, error) {
	if c.token == "" || c.shopDomain == "" {
		return nil, ErrNotConfigured
	}

	q := url.Values{}
	q.Set("api_token", c.token)
	q.Set("shop_domain", c.shopDomain)
	q.Set("per_page", strconv.Itoa(perPage))
	q.Set("page", strconv.Itoa(page))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/reviews?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build reviews request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch reviews: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("judge.me returned status %d", resp.StatusCode)
	}

	var body reviewsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode reviews: %w", err)
	}

	out := make([]domain.Review, 0, len(body.Reviews))
	for _, r := range body.Reviews {
		if r.Curated != "ok" || r.Hidden {
			continue
		}
		out = append(out, domain.Review{
			ID:        r.ID,
			Title:     r.Title,
			Body:      r.Body,
			Rating:    r.Rating,
			Reviewer:  r.Reviewer.Name,
			ProductID: r.ProductExternalID,
			Handle:    r.ProductHandle,
			Verified:  r.Verified == "buyer" || r.Verified == "verified",
			CreatedAt: r.CreatedAt,
		})
	}
	c.logger.Printf("judgeme: fetched page=%d kept=%d of %d", page, len(out), len(body.Reviews))
	return out, nil
}
