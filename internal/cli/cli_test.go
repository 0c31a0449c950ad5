package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeGateway(t *testing.T) string {
	t.Helper()

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Get("/categories", func(w http.ResponseWriter, req *http.Request) {
			if req.URL.Query().Get("status") == "" {
				writeRaw(w, `{"success":true,"data":{"categories":[
					{"_id":"c1","name":"Movies","slug":"movies","status":"active","icon":"film","itemCount":2},
					{"_id":"c2","name":"Old","slug":"old","status":"inactive","itemCount":0}]}}`)
				return
			}
			writeRaw(w, `{"success":true,"data":{"categories":[
				{"_id":"c1","name":"Movies","slug":"movies","status":"active","icon":"film","itemCount":2}]}}`)
		})
		r.Get("/categories/stats", func(w http.ResponseWriter, _ *http.Request) {
			writeRaw(w, `{"success":true,"data":{"stats":[
				{"_id":"c1","name":"Movies","status":"active","itemCount":2},
				{"_id":"c2","name":"Old","status":"inactive","itemCount":0}]}}`)
		})
		r.Get("/items/stats", func(w http.ResponseWriter, _ *http.Request) {
			writeRaw(w, `{"success":true,"data":{"overview":{"total":4,"active":2,"draft":2,"featured":1}}}`)
		})
		r.Get("/items", func(w http.ResponseWriter, _ *http.Request) {
			writeRaw(w, `{"success":true,"data":{"items":[
				{"_id":"i1","title":"The Matrix","slug":"matrix","category":"c1","status":"active","rating":4.6,"featured":true},
				{"_id":"i2","title":"Alien","slug":"alien","category":"c1","status":"active","ratings":{"story":4,"graphics":3}}]}}`)
		})
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv.URL + "/api"
}

func writeRaw(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = io.WriteString(w, body)
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv(ConfigEnv, "")
	t.Chdir(t.TempDir())

	var out bytes.Buffer
	cmd := NewRootCommand(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCategoriesCommand(t *testing.T) {
	out, err := run(t, "categories", "--gateway-url", fakeGateway(t))
	require.NoError(t, err)

	assert.Contains(t, out, "SLUG")
	assert.Contains(t, out, "movies")
	assert.Contains(t, out, "Movies")
	assert.Contains(t, out, "film")
	assert.Contains(t, out, "PUBLIC")
	assert.NotContains(t, out, "Old")
}

func TestCategoriesCommand_AllMarksInactive(t *testing.T) {
	out, err := run(t, "categories", "--all", "--gateway-url", fakeGateway(t))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"movies", "Movies", "active", "yes", "2", "film"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"old", "Old", "inactive", "no", "0", "folder"}, strings.Fields(lines[2]))
}

func TestItemsCommand_SortAndFilter(t *testing.T) {
	url := fakeGateway(t)

	out, err := run(t, "items", "movies", "--sort", "title", "--gateway-url", url)
	require.NoError(t, err)
	assert.Less(t, bytes.Index([]byte(out), []byte("Alien")), bytes.Index([]byte(out), []byte("The Matrix")))
	assert.Contains(t, out, "2 of 2 items")

	out, err = run(t, "items", "movies", "--rating", "5", "--gateway-url", url)
	require.NoError(t, err)
	assert.Contains(t, out, "The Matrix")
	assert.NotContains(t, out, "Alien")
	assert.Contains(t, out, "1 of 2 items")

	out, err = run(t, "items", "movies", "--search", "zzz", "--gateway-url", url)
	require.NoError(t, err)
	assert.Contains(t, out, "No items match your filter")
}

func TestItemsCommand_Errors(t *testing.T) {
	url := fakeGateway(t)

	_, err := run(t, "items", "books", "--gateway-url", url)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `Category "books" not found`)

	_, err = run(t, "items", "movies", "--sort", "popularity", "--gateway-url", url)
	require.Error(t, err)
}

func TestShowCommand_JSON(t *testing.T) {
	out, err := run(t, "show", "movies", "alien", "-o", "json", "--gateway-url", fakeGateway(t))
	require.NoError(t, err)

	var view struct {
		Item struct {
			Title         string   `json:"title"`
			DisplayRating *float64 `json:"displayRating"`
		} `json:"item"`
		Related []struct {
			Title string `json:"title"`
		} `json:"related"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	assert.Equal(t, "Alien", view.Item.Title)
	require.NotNil(t, view.Item.DisplayRating)
	assert.InDelta(t, 1.8, *view.Item.DisplayRating, 0.001)
	require.Len(t, view.Related, 1)
	assert.Equal(t, "The Matrix", view.Related[0].Title)
}

func TestBreadcrumbCommand(t *testing.T) {
	out, err := run(t, "breadcrumb", "/movies/matrix", "--gateway-url", fakeGateway(t))
	require.NoError(t, err)

	assert.Contains(t, out, "Movies")
	assert.Contains(t, out, "The Matrix")
	assert.Contains(t, out, "/movies/matrix")
}

func TestStatsCommand(t *testing.T) {
	out, err := run(t, "stats", "-o", "json", "--gateway-url", fakeGateway(t))
	require.NoError(t, err)

	var snap struct {
		Categories struct{ Total, Active int } `json:"categories"`
		Items      struct{ Total, Draft int }  `json:"items"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &snap))
	assert.Equal(t, 2, snap.Categories.Total)
	assert.Equal(t, 1, snap.Categories.Active)
	assert.Equal(t, 4, snap.Items.Total)
	assert.Equal(t, 2, snap.Items.Draft)
}

func TestVersionCommand_SkipsGateway(t *testing.T) {
	out, err := run(t, "version", "--gateway-url", "ftp://nowhere")
	require.NoError(t, err)
	assert.Contains(t, out, "catalogctl dev")
}

func TestRoot_RejectsUnknownOutput(t *testing.T) {
	_, err := run(t, "categories", "-o", "xml", "--gateway-url", fakeGateway(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestLoadFileConfig(t *testing.T) {
	t.Run("defaults without a file", func(t *testing.T) {
		t.Setenv(ConfigEnv, "")
		t.Chdir(t.TempDir())

		cfg, err := LoadFileConfig("")
		require.NoError(t, err)
		assert.Equal(t, "table", cfg.Output)
		assert.Equal(t, "warn", cfg.LogLevel)
		assert.Empty(t, cfg.Gateway.URL)
	})

	t.Run("discovers file in working directory", func(t *testing.T) {
		t.Setenv(ConfigEnv, "")
		dir := t.TempDir()
		t.Chdir(dir)
		writeFile(t, filepath.Join(dir, ".catalogctl.yaml"), "gateway:\n  url: http://local/api\n  timeout: 3s\noutput: json\n")

		cfg, err := LoadFileConfig("")
		require.NoError(t, err)
		assert.Equal(t, "http://local/api", cfg.Gateway.URL)
		assert.Equal(t, 3*time.Second, cfg.Gateway.Timeout)
		assert.Equal(t, "json", cfg.Output)
	})

	t.Run("env override", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "custom.yaml")
		writeFile(t, path, "log_level: debug\n")
		t.Setenv(ConfigEnv, path)

		cfg, err := LoadFileConfig("")
		require.NoError(t, err)
		assert.Equal(t, "debug", cfg.LogLevel)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		writeFile(t, path, "gateway: [\n")

		_, err := LoadFileConfig(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse config file")
	})
}

func TestRoot_ConfigFileSuppliesOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalogctl.yaml")
	writeFile(t, path, "output: json\n")

	out, err := run(t, "categories", "--config", path, "--gateway-url", fakeGateway(t))
	require.NoError(t, err)

	var categories []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &categories))
	require.Len(t, categories, 1)
	assert.Equal(t, "movies", categories[0]["slug"])
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}
