// Package feed builds photo feed REST URLs and parses their JSON envelopes.
package feed

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/timmy/photorama/internal/domain"
)

// DefaultBaseURL is the public REST endpoint of the photo feed.
const DefaultBaseURL = "https://api.flickr.com/services/rest"

const (
	remoteInterestingPhotos = "flickr.interestingness.getList"
	remoteRecentPhotos      = "flickr.photos.getRecent"
)

// Client knows the feed endpoint and API key. It performs no I/O.
type Client struct {
	baseURL string
	apiKey  string
}

// NewClient creates a Client. An empty baseURL selects DefaultBaseURL.
func NewClient(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "?"),
		apiKey:  apiKey,
	}
}

// BuildListURL returns the list URL for method. It is deterministic: the
// same method always yields the same URL.
//
// BuildListURL panics on a method other than MethodInterestingPhotos or
// MethodRecentPhotos, or when the configured base URL is not a URL.
// Both are programming errors; use domain.ParseMethod on untrusted input.
func (c *Client) BuildListURL(method domain.Method) *url.URL {
	var remote string
	switch method {
	case domain.MethodInterestingPhotos:
		remote = remoteInterestingPhotos
	case domain.MethodRecentPhotos:
		remote = remoteRecentPhotos
	default:
		panic(fmt.Sprintf("feed: unknown method %q", string(method)))
	}

	u, err := url.Parse(c.baseURL)
	if err != nil {
		panic(fmt.Sprintf("feed: invalid base URL %q: %v", c.baseURL, err))
	}

	q := u.Query()
	q.Set("method", remote)
	q.Set("api_key", c.apiKey)
	q.Set("format", "json")
	q.Set("nojsoncallback", "1")
	q.Set("extras", "url_h,date_taken")
	u.RawQuery = q.Encode()
	return u
}

// RedactURL returns u as a string with the api_key query value masked,
// for logs and error messages.
func RedactURL(u *url.URL) string {
	if u == nil {
		return ""
	}
	q := u.Query()
	if q.Get("api_key") == "" {
		return u.String()
	}
	cp := *u
	q.Set("api_key", "REDACTED")
	cp.RawQuery = q.Encode()
	return cp.String()
}
