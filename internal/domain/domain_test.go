package domain

import (
	"errors"
	"io"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func TestNewPhoto(t *testing.T) {
	u := mustURL(t, "https://img.example.com/a.jpg")
	taken := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)

	p, err := NewPhoto("a", "title", u, taken)
	require.NoError(t, err)
	assert.Equal(t, "a", p.ID())
	assert.Equal(t, "title", p.Title())
	assert.Equal(t, taken, p.DateTaken())

	p.RemoteURL().Path = "/mutated"
	u.Path = "/mutated-too"
	assert.Equal(t, "/a.jpg", p.RemoteURL().Path)

	_, err = NewPhoto("", "t", u, taken)
	assert.Error(t, err)
	_, err = NewPhoto("a", "t", nil, taken)
	assert.Error(t, err)
}

func TestPhotoEqualByID(t *testing.T) {
	a, _ := NewPhoto("x", "one", mustURL(t, "https://a/1"), time.Time{})
	b, _ := NewPhoto("x", "two", mustURL(t, "https://b/2"), time.Now())
	c, _ := NewPhoto("y", "one", mustURL(t, "https://a/1"), time.Time{})

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestParseMethod(t *testing.T) {
	tests := map[string]Method{
		"interesting":       MethodInterestingPhotos,
		"interestingPhotos": MethodInterestingPhotos,
		" Recent ":          MethodRecentPhotos,
		"recentPhotos":      MethodRecentPhotos,
	}
	for in, want := range tests {
		got, err := ParseMethod(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseMethod("popular")
	assert.ErrorIs(t, err, ErrUnknownMethod)
}

func TestResult(t *testing.T) {
	ok := Success(3)
	assert.True(t, ok.IsSuccess())
	v, err := ok.Get()
	assert.Equal(t, 3, v)
	assert.NoError(t, err)

	failed := Failure[int](io.EOF)
	assert.True(t, failed.IsFailure())
	assert.ErrorIs(t, failed.Err(), io.EOF)

	var sawSuccess, sawFailure bool
	failed.Match(func(int) { sawSuccess = true }, func(error) { sawFailure = true })
	assert.False(t, sawSuccess)
	assert.True(t, sawFailure)

	assert.True(t, Failure[string](nil).IsFailure())
}

func TestErrorsUnwrap(t *testing.T) {
	cause := errors.New("connection refused")

	var terr error = &TransportError{URL: "https://x", Err: cause}
	assert.ErrorIs(t, terr, cause)
	assert.Contains(t, terr.Error(), "https://x")

	var derr error = &ImageDecodeError{PhotoID: "1", Size: 4, Err: cause}
	assert.ErrorIs(t, derr, cause)
	assert.Contains(t, derr.Error(), "photo 1")

	perr := &ParseError{Reason: `missing "photos"`}
	assert.Nil(t, perr.Unwrap())
	assert.Equal(t, `parse error: missing "photos"`, perr.Error())
}

func TestImageContentType(t *testing.T) {
	assert.Equal(t, "image/jpeg", Image{Format: "jpeg"}.ContentType())
	assert.Equal(t, "image/webp", Image{Format: "webp"}.ContentType())
	assert.Equal(t, "application/octet-stream", Image{}.ContentType())
}

func TestPhotoRecordRoundTrip(t *testing.T) {
	p, err := NewPhoto("7", "seven", mustURL(t, "https://img/7.jpg"), time.Date(2021, 5, 6, 7, 8, 9, 0, time.UTC))
	require.NoError(t, err)

	rec := NewPhotoRecord(p, MethodRecentPhotos)
	assert.Equal(t, "photos", rec.TableName())
	assert.Equal(t, MethodRecentPhotos, rec.Method)

	back, err := rec.ToPhoto()
	require.NoError(t, err)
	assert.True(t, back.Equal(p))
	assert.Equal(t, p.RemoteURL().String(), back.RemoteURL().String())
	assert.Equal(t, p.DateTaken(), back.DateTaken())
}
