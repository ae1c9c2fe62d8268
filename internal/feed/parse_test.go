package feed

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timmy/photorama/internal/domain"
)

func TestParsePhotoList(t *testing.T) {
	data := []byte(`{
		"photos": {
			"page": 1,
			"photo": [
				{"id": "1", "title": "first", "datetaken": "2018-08-16 10:20:30", "url_h": "https://img.example.com/1.jpg"},
				{"id": "2", "title": "no url", "datetaken": "2018-08-16 10:20:30"},
				{"id": "3", "title": "bad date", "datetaken": "yesterday", "url_h": "https://img.example.com/3.jpg"},
				{"id": "4", "title": "", "datetaken": "2019-01-02 03:04:05", "url_h": "https://img.example.com/4.jpg"},
				{"title": "no id", "datetaken": "2019-01-02 03:04:05", "url_h": "https://img.example.com/5.jpg"},
				{"id": "6", "title": "bad url", "datetaken": "2019-01-02 03:04:05", "url_h": "not a url"},
				"garbage"
			]
		},
		"stat": "ok"
	}`)

	photos, err := ParsePhotoList(data)
	require.NoError(t, err)
	require.Len(t, photos, 2)

	assert.Equal(t, "1", photos[0].ID())
	assert.Equal(t, "first", photos[0].Title())
	assert.Equal(t, "https://img.example.com/1.jpg", photos[0].RemoteURL().String())
	assert.Equal(t, time.Date(2018, 8, 16, 10, 20, 30, 0, time.UTC), photos[0].DateTaken())

	assert.Equal(t, "4", photos[1].ID())
	assert.Empty(t, photos[1].Title())
}

func TestParsePhotoListAllDropped(t *testing.T) {
	photos, err := ParsePhotoList([]byte(`{"photos":{"photo":[{"id":"1"}]},"stat":"ok"}`))
	require.NoError(t, err)
	assert.NotNil(t, photos)
	assert.Empty(t, photos)
}

func TestParsePhotoListEmpty(t *testing.T) {
	photos, err := ParsePhotoList([]byte(`{"photos":{"photo":[]},"stat":"ok"}`))
	require.NoError(t, err)
	assert.Empty(t, photos)
}

func TestParsePhotoListErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `<html>oops</html>`},
		{"empty body", ``},
		{"array envelope", `[]`},
		{"missing photos", `{"stat":"ok"}`},
		{"missing photo array", `{"photos":{"page":1},"stat":"ok"}`},
		{"null photo array", `{"photos":{"photo":null},"stat":"ok"}`},
		{"feed failure", `{"stat":"fail","code":100,"message":"Invalid API Key"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			photos, err := ParsePhotoList([]byte(tt.data))
			require.Error(t, err)
			assert.Nil(t, photos)

			var perr *domain.ParseError
			assert.True(t, errors.As(err, &perr))
		})
	}
}

func TestParsePhotoListFeedFailureMessage(t *testing.T) {
	_, err := ParsePhotoList([]byte(`{"stat":"fail","code":100,"message":"Invalid API Key"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid API Key")
	assert.Contains(t, err.Error(), "100")
}
