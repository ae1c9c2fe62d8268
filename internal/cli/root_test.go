package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFeedServer(t *testing.T) *httptest.Server {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 1, 1))))
	pngData := buf.Bytes()

	var srv *httptest.Server
	mux := http.NewServeMux()
	mux.HandleFunc("/rest", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"photos":{"photo":[
			{"id":"a1","title":"first","datetaken":"2018-08-16 10:00:00","url_h":"%[1]s/img/a1"},
			{"id":"b2","title":"second","datetaken":"2018-08-16 11:00:00","url_h":"%[1]s/img/b2"},
			{"id":"c3","title":"broken","datetaken":"2018-08-16 12:00:00","url_h":"%[1]s/img/c3"}
		]},"stat":"ok"}`, srv.URL)
	})
	mux.HandleFunc("/img/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/img/c3" {
			fmt.Fprint(w, "nope")
			return
		}
		w.Write(pngData)
	})
	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func writeConfig(t *testing.T, feedURL string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	cacheDir := filepath.Join(dir, "images")
	body := fmt.Sprintf(`
log:
  level: error
feed:
  base_url: %s/rest
  api_key: test
cache:
  backend: file
  dir: %s
database:
  enabled: false
`, feedURL, cacheDir)
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path, cacheDir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestListTable(t *testing.T) {
	srv := newFeedServer(t)
	cfgPath, _ := writeConfig(t, srv.URL)

	out, err := run(t, "list", "--config", cfgPath, "--method", "recent")
	require.NoError(t, err)
	assert.Contains(t, out, "a1")
	assert.Contains(t, out, "second")
	assert.Contains(t, out, "3 photos (recentPhotos)")
}

func TestListJSON(t *testing.T) {
	srv := newFeedServer(t)
	cfgPath, _ := writeConfig(t, srv.URL)

	out, err := run(t, "list", "--config", cfgPath, "--json")
	require.NoError(t, err)

	var rows []map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 3)
	assert.Equal(t, "a1", rows[0]["id"])
	assert.Equal(t, "2018-08-16 10:00:00", rows[0]["date_taken"])
}

func TestListUnknownMethod(t *testing.T) {
	_, err := run(t, "list", "--method", "popular")
	assert.Error(t, err)
}

func TestWarm(t *testing.T) {
	srv := newFeedServer(t)
	cfgPath, cacheDir := writeConfig(t, srv.URL)

	out, err := run(t, "warm", "--config", cfgPath, "--workers", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "warmed 2/3 images (1 failed)")
	assert.Contains(t, out, "failed c3")

	entries, err := os.ReadDir(cacheDir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}
