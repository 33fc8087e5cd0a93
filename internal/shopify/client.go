package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	DefaultAPIVersion = "2024-01"
	tokenHeader       = "X-Shopify-Storefront-Access-Token"
	maxErrorBody      = 512
)

// Config describes how to reach the storefront GraphQL endpoint.
type Config struct {
	StoreDomain string
	AccessToken string
	APIVersion  string
	Timeout     time.Duration
	// Endpoint overrides the URL derived from StoreDomain.
	Endpoint string
}

// Client issues GraphQL requests against the storefront API.
type Client struct {
	endpoint   string
	token      string
	httpClient *http.Client
	logger     *log.Logger
}

// New builds a Client. Missing credentials are reported per call, not here.
func New(cfg Config, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	endpoint := cfg.Endpoint
	if endpoint == "" && cfg.StoreDomain != "" {
		version := cfg.APIVersion
		if version == "" {
			version = DefaultAPIVersion
		}
		domain := strings.TrimSuffix(strings.TrimPrefix(cfg.StoreDomain, "https://"), "/")
		endpoint = fmt.Sprintf("https://%s/api/%s/graphql.json", domain, version)
	}
	return &Client{
		endpoint: endpoint,
		token:    cfg.AccessToken,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger: logger,
	}
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLError struct {
	Message string `json:"message"`
	Extensions struct {
		Code string `json:"code"`
	} `json:"extensions"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors"`
}

// do posts one GraphQL document and decodes the data member into out.
func (c *Client) do(ctx context.Context, op, query string, vars map[string]any, out any) error {
	if c.endpoint == "" || c.token == "" {
		return ErrMissingCredentials
	}

	body, err := json.Marshal(graphQLRequest{Query: query, Variables: vars})
	if err != nil {
		return fmt.Errorf("%s: encode request: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(tokenHeader, c.token)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Printf("shopify: %s transport error: %v", op, err)
		return &Error{Kind: KindTransient, Op: op, Message: "storefront request failed", Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Kind: KindTransient, Op: op, Message: "storefront response unreadable", Err: err}
	}
	c.logger.Printf("shopify: %s status=%d took=%s", op, resp.StatusCode, time.Since(start).Round(time.Millisecond))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(op, resp.StatusCode, raw)
	}

	var gql graphQLResponse
	if err := json.Unmarshal(raw, &gql); err != nil {
		return &Error{Kind: KindTransient, Op: op, Message: "storefront response malformed", Err: err}
	}
	if len(gql.Errors) > 0 {
		return graphQLErrors(op, gql.Errors)
	}
	if out == nil || len(gql.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(gql.Data, out); err != nil {
		return &Error{Kind: KindTransient, Op: op, Message: "storefront response malformed", Err: err}
	}
	return nil
}

func statusError(op string, status int, body []byte) error {
	text := strings.TrimSpace(string(body))
	if len(text) > maxErrorBody {
		text = text[:maxErrorBody]
	}
	kind := KindValidation
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		kind = KindUnauthorized
	case status == http.StatusTooManyRequests || status >= 500:
		kind = KindTransient
	}
	return &Error{
		Kind:    kind,
		Op:      op,
		Message: fmt.Sprintf("storefront request failed: %d %s", status, text),
	}
}

func graphQLErrors(op string, errs []graphQLError) error {
	kind := KindValidation
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Message)
		switch e.Extensions.Code {
		case "THROTTLED", "INTERNAL_SERVER_ERROR":
			kind = KindTransient
		case "ACCESS_DENIED", "UNAUTHORIZED":
			kind = KindUnauthorized
		}
	}
	return &Error{Kind: kind, Op: op, Message: strings.Join(msgs, ", ")}
}

// toCountry normalizes a country code for the CountryCode GraphQL scalar.
// An empty code becomes nil so the variable is sent as null.
func toCountry(code string) any {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil
	}
	return code
}
