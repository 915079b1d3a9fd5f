package goldprice

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

const baseURL = "https://www.goldapi.io"

// HTTPClient describes an HTTP client.
//
//go:generate mockgen -package=goldprice_test -destination=mock_http_client_test.go -source=client.go HTTPClient
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// GoldAPIClient is a client for the GoldAPI.io spot price API.
type GoldAPIClient struct {
	// baseURL is the base URL for the API.
	baseURL string
	// httpClient is the HTTP httpClient.
	httpClient HTTPClient
	// header contains additional headers to be sent with each request.
	header http.Header
}

// GoldAPIClientOption is a configuration option for the GoldAPI client.
type GoldAPIClientOption func(*GoldAPIClient)

// WithBaseURL sets the base URL for the API.
func WithBaseURL(baseURL string) GoldAPIClientOption {
	return func(c *GoldAPIClient) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets the HTTP client for the API.
func WithHTTPClient(httpClient HTTPClient) GoldAPIClientOption {
	return func(c *GoldAPIClient) {
		c.httpClient = httpClient
	}
}

// WithHeader sets additional headers to be sent with each request.
func WithHeader(header http.Header) GoldAPIClientOption {
	return func(c *GoldAPIClient) {
		for key, values := range header {
			for _, value := range values {
				c.header.Add(key, value)
			}
		}
	}
}

// NewGoldAPIClient creates a new GoldAPI client.
func NewGoldAPIClient(key string, options ...GoldAPIClientOption) (*GoldAPIClient, error) {
	var goldAPIClient = &GoldAPIClient{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
		header:     http.Header{},
	}
	if key != "" {
		// This is the header that authenticates the client.
		// https://www.goldapi.io/documentation
		goldAPIClient.header.Set("x-access-token", key)
	}
	for _, option := range options {
		option(goldAPIClient)
	}
	return goldAPIClient, nil
}

// PriceGram24k retrieves the current 24-karat gold price in USD per gram.
func (c *GoldAPIClient) PriceGram24k(ctx context.Context) (float64, error) {
	url := fmt.Sprintf("%s/api/XAU/USD", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header = c.header.Clone()

	res, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("performing request: %w", err)
	}
	defer res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK:
		break

	case http.StatusUnauthorized, http.StatusForbidden:
		return 0, fmt.Errorf("unauthorized")

	case http.StatusTooManyRequests:
		return 0, fmt.Errorf("rate limited")

	default:
		return 0, fmt.Errorf("unexpected status code: %d", res.StatusCode)
	}

	var body struct {
		PriceGram24k *float64 `json:"price_gram_24k"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("decoding spot price response: %w", err)
	}
	if body.PriceGram24k == nil {
		return 0, fmt.Errorf("response missing price_gram_24k")
	}
	return *body.PriceGram24k, nil
}
