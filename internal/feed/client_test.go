package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timmy/photorama/internal/domain"
)

func TestBuildListURL(t *testing.T) {
	c := NewClient("https://api.example.com/services/rest", "key123")

	tests := []struct {
		method domain.Method
		remote string
	}{
		{domain.MethodInterestingPhotos, "flickr.interestingness.getList"},
		{domain.MethodRecentPhotos, "flickr.photos.getRecent"},
	}
	for _, tt := range tests {
		t.Run(string(tt.method), func(t *testing.T) {
			u := c.BuildListURL(tt.method)
			assert.Equal(t, "https", u.Scheme)
			assert.Equal(t, "api.example.com", u.Host)
			assert.Equal(t, "/services/rest", u.Path)

			q := u.Query()
			assert.Equal(t, tt.remote, q.Get("method"))
			assert.Equal(t, "key123", q.Get("api_key"))
			assert.Equal(t, "json", q.Get("format"))
			assert.Equal(t, "1", q.Get("nojsoncallback"))
			assert.Equal(t, "url_h,date_taken", q.Get("extras"))
		})
	}
}

func TestBuildListURLDeterministic(t *testing.T) {
	c := NewClient("", "k")
	for _, m := range []domain.Method{domain.MethodInterestingPhotos, domain.MethodRecentPhotos} {
		assert.Equal(t, c.BuildListURL(m).String(), c.BuildListURL(m).String())
	}
	assert.NotEqual(t,
		c.BuildListURL(domain.MethodInterestingPhotos).String(),
		c.BuildListURL(domain.MethodRecentPhotos).String())
}

func TestBuildListURLDefaultBase(t *testing.T) {
	u := NewClient("", "k").BuildListURL(domain.MethodRecentPhotos)
	assert.Equal(t, "api.flickr.com", u.Host)
}

func TestBuildListURLUnknownMethodPanics(t *testing.T) {
	c := NewClient("", "k")
	assert.Panics(t, func() { c.BuildListURL(domain.Method("popular")) })
}

func TestRedactURL(t *testing.T) {
	u := NewClient("https://api.example.com/rest", "secret").BuildListURL(domain.MethodRecentPhotos)

	redacted := RedactURL(u)
	assert.NotContains(t, redacted, "secret")
	assert.Contains(t, redacted, "api_key=REDACTED")
	require.Equal(t, "secret", u.Query().Get("api_key"), "original URL must be untouched")

	assert.Empty(t, RedactURL(nil))
}
