package browse_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"s3lib/core/pathfs"
	"s3lib/core/storage"
	"s3lib/core/storage/mocks"
	"s3lib/feature/browse"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupApp(t *testing.T, files map[string]string) (*fiber.App, afero.Fs) {
	t.Helper()
	mem := afero.NewMemMapFs()
	for name, content := range files {
		require.NoError(t, afero.WriteFile(mem, "/"+name, []byte(content), 0o644))
	}
	return newApp(t, storage.NewLocalClient(mem)), mem
}

func newApp(t *testing.T, client storage.Client) *fiber.App {
	t.Helper()
	feature := browse.NewFeature(pathfs.New(client, zap.NewNop()), zap.NewNop())
	app := fiber.New()
	require.NoError(t, feature.Load(app))
	return app
}

func target(path, uri string, extra ...string) string {
	q := url.Values{"uri": {uri}}
	for i := 0; i+1 < len(extra); i += 2 {
		q.Set(extra[i], extra[i+1])
	}
	return path + "?" + q.Encode()
}

func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestFeature(t *testing.T) {
	feature := browse.NewFeature(pathfs.New(new(mocks.Client), nil), zap.NewNop())
	assert.Equal(t, "browse", feature.Name())
	assert.True(t, feature.IsEnabled())
	assert.NoError(t, feature.Load(fiber.New()))
}

func TestHandleList(t *testing.T) {
	app, _ := setupApp(t, map[string]string{
		"assets/a/b.txt":   "1",
		"assets/a/c/d.txt": "2",
	})

	t.Run("Children", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", target("/paths", "s3://assets/a"), nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		body := decode(t, resp)
		assert.Equal(t, "s3://assets/a", body["uri"])
		entries := body["entries"].([]any)
		require.Len(t, entries, 2)

		uris := []string{}
		for _, e := range entries {
			uris = append(uris, e.(map[string]any)["uri"].(string))
		}
		assert.ElementsMatch(t, []string{"s3://assets/a/b.txt", "s3://assets/a/c"}, uris)
	})

	t.Run("Pattern", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", target("/paths", "s3://assets/a", "pattern", "d.*"), nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		entries := decode(t, resp)["entries"].([]any)
		require.Len(t, entries, 1)
		assert.Equal(t, "s3://assets/a/c/d.txt", entries[0].(map[string]any)["uri"])
	})

	t.Run("BadPattern", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", target("/paths", "s3://assets/a", "pattern", "["), nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("InvalidURI", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", target("/paths", "assets/a"), nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, decode(t, resp)["error"], "invalid path")
	})
}

func TestHandleStat(t *testing.T) {
	app, _ := setupApp(t, map[string]string{"assets/a/b.txt": "1"})

	resp, err := app.Test(httptest.NewRequest("GET", target("/paths/stat", "s3://assets/a/b.txt"), nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decode(t, resp)
	assert.Equal(t, "s3://assets/a/b.txt", body["uri"])
	assert.Equal(t, "a/b.txt", body["key"])
	assert.Equal(t, true, body["exists"])
	assert.Equal(t, true, body["is_file"])
}

func TestHandleContent(t *testing.T) {
	app, mem := setupApp(t, nil)
	uri := "s3://assets/docs/readme.txt"

	req := httptest.NewRequest("PUT", target("/paths/content", uri, "text", "true"), strings.NewReader("hello"))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	data, err := afero.ReadFile(mem, "/assets/docs/readme.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	resp, err = app.Test(httptest.NewRequest("GET", target("/paths/content", uri), nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	got, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "hello", string(got))

	t.Run("InvalidText", func(t *testing.T) {
		req := httptest.NewRequest("PUT", target("/paths/content", uri, "text", "true"), strings.NewReader("\xff\xfe"))
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("DirectoryLike", func(t *testing.T) {
		req := httptest.NewRequest("PUT", target("/paths/content", "s3://assets/docs"), strings.NewReader("hello"))
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Missing", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", target("/paths/content", "s3://assets/nope.txt"), nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}

func TestHandleDelete(t *testing.T) {
	t.Run("File", func(t *testing.T) {
		app, mem := setupApp(t, map[string]string{"assets/a/b.txt": "1", "assets/a/c.txt": "2"})

		resp, err := app.Test(httptest.NewRequest("DELETE", target("/paths", "s3://assets/a/b.txt"), nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		exists, _ := afero.Exists(mem, "/assets/a/b.txt")
		assert.False(t, exists)
	})

	t.Run("PopulatedDirectory", func(t *testing.T) {
		app, mem := setupApp(t, map[string]string{"assets/a/b.txt": "1"})

		resp, err := app.Test(httptest.NewRequest("DELETE", target("/paths", "s3://assets/a"), nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

		resp, err = app.Test(httptest.NewRequest("DELETE", target("/paths", "s3://assets/a", "contents", "true"), nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		exists, _ := afero.Exists(mem, "/assets/a")
		assert.False(t, exists)
	})
}

func TestHandleCopy(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		app, mem := setupApp(t, map[string]string{
			"assets/src/_draft.txt": "x",
			"assets/src/final.txt":  "y",
		})

		req := httptest.NewRequest("POST", "/paths/copy", strings.NewReader(`{"src":"s3://assets/src","dst":"s3://backup/dst"}`))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, float64(1), decode(t, resp)["copied"])

		exists, _ := afero.Exists(mem, "/backup/dst/final.txt")
		assert.True(t, exists)
	})

	t.Run("StoreFailure", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("ListObjects", mock.Anything, "assets", mock.Anything).Return(mocks.Objects("src/a.txt"))
		client.On("CopyObject", mock.Anything, "assets", "src/a.txt", "assets", "dst/a.txt").Return(assert.AnError)
		app := newApp(t, client)

		req := httptest.NewRequest("POST", "/paths/copy", strings.NewReader(`{"src":"s3://assets/src","dst":"s3://assets/dst"}`))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
		assert.Equal(t, float64(0), decode(t, resp)["copied"])
	})

	t.Run("InvalidBody", func(t *testing.T) {
		app, _ := setupApp(t, nil)

		req := httptest.NewRequest("POST", "/paths/copy", strings.NewReader(`{`))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}
