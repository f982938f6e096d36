package utils

import (
	"github.com/go-resty/resty/v2"
)

// HTTPClient embeds *resty.Client so callers configure and use it directly.
// Every instance owns its connection pool.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns a client with resty's defaults.
func NewHTTPClient() *HTTPClient {
	return &HTTPClient{Client: resty.New()}
}
