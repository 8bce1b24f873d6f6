package recipenote

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pevans/recipenote/config"
	"github.com/pevans/recipenote/library"
	"github.com/pevans/recipenote/recipe"
)

const cakeHTML = `<html><body>
<h1>Test Cake</h1>
<ul class="ingredients">
  <li class="ingredient">2 cups flour</li>
  <li class="ingredient">1 cup sugar</li>
</ul>
<ol class="instructions">
  <li>Mix well.</li>
  <li>Bake for 30 minutes.</li>
</ol>
</body></html>`

type testEnv struct {
	router   *gin.Engine
	library  *library.Store
	prefs    *config.Store
	vaultDir string
}

// Test helper: create a server backed by a temporary vault and database
func setupTestServer(t *testing.T) *testEnv {
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	dbPath := filepath.Join(dir, "library.db")

	lib, err := library.NewStore(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { lib.Close() })

	prefs, err := config.NewStore(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { prefs.Close() })

	extractor, err := recipe.New(recipe.WithClock(func() time.Time {
		return time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)
	}))
	require.NoError(t, err)

	vaultDir := filepath.Join(dir, "vault")
	clipper := NewClipper(extractor, lib, prefs, vaultDir, zerolog.Nop())
	server := NewAPIServer(clipper, prefs, zerolog.Nop())

	return &testEnv{
		router:   server.SetupRouter(),
		library:  lib,
		prefs:    prefs,
		vaultDir: vaultDir,
	}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorDetail {
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Error
}

// TestHandleExtract verifies a page is extracted without being saved
func TestHandleExtract(t *testing.T) {
	env := setupTestServer(t)

	w := env.do(t, http.MethodPost, "/api/v1/extract", PageRequest{
		URL:  "https://example.com/test-cake",
		HTML: cakeHTML,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp ExtractResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Test Cake", resp.Title)
	assert.Equal(t, []string{"2 cups flour", "1 cup sugar"}, resp.Ingredients)
	assert.Equal(t, []string{"Mix well.", "Bake for 30 minutes."}, resp.Instructions)
	assert.Equal(t, "test_cake.md", resp.Filename)
	assert.Empty(t, resp.Warnings)
	assert.Contains(t, resp.Markdown, `source: "https://example.com/test-cake"`)
	assert.Contains(t, resp.Markdown, "date: 2024-03-05")

	_, err := os.Stat(filepath.Join(env.vaultDir, "test_cake.md"))
	assert.True(t, os.IsNotExist(err), "extract should not write a note")
}

// TestHandleExtract_Warnings verifies empty sections are reported
func TestHandleExtract_Warnings(t *testing.T) {
	env := setupTestServer(t)

	w := env.do(t, http.MethodPost, "/api/v1/extract", PageRequest{HTML: "<p>Nothing here</p>"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp ExtractResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, recipe.DefaultTitle, resp.Title)
	assert.Equal(t, []string{"no ingredients found", "no instructions found"}, resp.Warnings)
	assert.Contains(t, resp.Markdown, recipe.NoIngredientsPlaceholder)
}

// TestHandleExtract_BadRequests verifies request validation
func TestHandleExtract_BadRequests(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode string
	}{
		{name: "malformed JSON", body: `{"html":`, wantCode: "bad_request"},
		{name: "missing html", body: `{"url":"https://example.com"}`, wantCode: "validation_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupTestServer(t)
			w := env.do(t, http.MethodPost, "/api/v1/extract", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.wantCode, decodeError(t, w).Code)
		})
	}
}

// TestHandleSaveRecipe verifies the note is written and indexed
func TestHandleSaveRecipe(t *testing.T) {
	env := setupTestServer(t)

	w := env.do(t, http.MethodPost, "/api/v1/recipes", PageRequest{
		URL:  "https://example.com/test-cake",
		HTML: cakeHTML,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp SaveResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, filepath.Join(env.vaultDir, "test_cake.md"), resp.Path)
	assert.Equal(t, "test_cake.md", resp.Filename)
	require.NotNil(t, resp.Recipe)
	assert.Equal(t, "Test Cake", resp.Recipe.Title)
	assert.Equal(t, 2, resp.Recipe.IngredientCount)
	assert.Equal(t, 2, resp.Recipe.InstructionCount)

	data, err := os.ReadFile(resp.Path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "## Ingredients\n- 2 cups flour\n- 1 cup sugar\n")
}

// TestHandleSaveRecipe_Overwrites verifies saving twice keeps one note
func TestHandleSaveRecipe_Overwrites(t *testing.T) {
	env := setupTestServer(t)

	for range 2 {
		w := env.do(t, http.MethodPost, "/api/v1/recipes", PageRequest{HTML: cakeHTML})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	entries, err := env.library.List(library.Filter{})
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	files, err := os.ReadDir(env.vaultDir)
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

// TestHandleSaveRecipe_VaultPreference verifies the stored vault directory
// is honoured
func TestHandleSaveRecipe_VaultPreference(t *testing.T) {
	env := setupTestServer(t)
	override := filepath.Join(t.TempDir(), "elsewhere")
	require.NoError(t, env.prefs.UpdateConfig(&config.Config{VaultDir: override}))

	w := env.do(t, http.MethodPost, "/api/v1/recipes", PageRequest{HTML: cakeHTML})
	require.Equal(t, http.StatusCreated, w.Code)

	_, err := os.Stat(filepath.Join(override, "test_cake.md"))
	assert.NoError(t, err)
}

// TestHandleListRecipes verifies search and pagination parameters
func TestHandleListRecipes(t *testing.T) {
	env := setupTestServer(t)
	_, err := env.library.Record("Apple Pie", "", "apple_pie.md", 1, 1)
	require.NoError(t, err)
	_, err = env.library.Record("Banana Bread", "", "banana_bread.md", 1, 1)
	require.NoError(t, err)

	w := env.do(t, http.MethodGet, "/api/v1/recipes?q=apple", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp ListRecipesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Recipes, 1)
	assert.Equal(t, "Apple Pie", resp.Recipes[0].Title)
	assert.Equal(t, 50, resp.Limit)

	w = env.do(t, http.MethodGet, "/api/v1/recipes?limit=5000", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1000, resp.Limit, "limit should be capped")
	assert.Len(t, resp.Recipes, 2)

	for _, query := range []string{"limit=0", "limit=abc", "offset=-1"} {
		w = env.do(t, http.MethodGet, "/api/v1/recipes?"+query, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, query)
		assert.Equal(t, "invalid_parameter", decodeError(t, w).Code)
	}
}

// TestHandleGetRecipe verifies the entry is returned with its note
func TestHandleGetRecipe(t *testing.T) {
	env := setupTestServer(t)

	w := env.do(t, http.MethodPost, "/api/v1/recipes", PageRequest{HTML: cakeHTML})
	require.Equal(t, http.StatusCreated, w.Code)
	var saved SaveResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &saved))

	w = env.do(t, http.MethodGet, "/api/v1/recipes/"+saved.Recipe.RecipeID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp RecipeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, saved.Recipe.RecipeID, resp.Recipe.RecipeID)
	require.NotNil(t, resp.Note)
	assert.Equal(t, "Test Cake", resp.Note.Title)
	assert.Equal(t, []string{"recipe", "saved"}, resp.Note.Tags)

	// Note removed behind the server's back
	require.NoError(t, os.Remove(saved.Path))
	w = env.do(t, http.MethodGet, "/api/v1/recipes/"+saved.Recipe.RecipeID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp = RecipeResponse{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Nil(t, resp.Note)
}

// TestHandleGetRecipe_Errors verifies ID validation and not-found handling
func TestHandleGetRecipe_Errors(t *testing.T) {
	env := setupTestServer(t)

	w := env.do(t, http.MethodGet, "/api/v1/recipes/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_id", decodeError(t, w).Code)

	w = env.do(t, http.MethodGet, "/api/v1/recipes/"+uuid.New().String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not_found", decodeError(t, w).Code)
}

// TestHandleDeleteRecipe verifies the entry and its note are removed
func TestHandleDeleteRecipe(t *testing.T) {
	env := setupTestServer(t)

	w := env.do(t, http.MethodPost, "/api/v1/recipes", PageRequest{HTML: cakeHTML})
	require.Equal(t, http.StatusCreated, w.Code)
	var saved SaveResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &saved))

	path := "/api/v1/recipes/" + saved.Recipe.RecipeID.String()
	w = env.do(t, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	_, err := os.Stat(saved.Path)
	assert.True(t, os.IsNotExist(err), "note should be deleted")

	w = env.do(t, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// TestHandlePreview verifies notes and pages render to HTML
func TestHandlePreview(t *testing.T) {
	env := setupTestServer(t)

	w := env.do(t, http.MethodPost, "/api/v1/preview", PreviewRequest{
		Markdown: "---\ntitle: \"Soup\"\n---\n\n# Soup\n\n## Ingredients\n- water\n",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "<title>Soup</title>")
	assert.Contains(t, w.Body.String(), "<li>water</li>")

	w = env.do(t, http.MethodPost, "/api/v1/preview", PreviewRequest{
		PageRequest: PageRequest{HTML: cakeHTML},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<li>Bake for 30 minutes.</li>")

	w = env.do(t, http.MethodPost, "/api/v1/preview", PreviewRequest{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// TestCORS verifies preflight requests are answered
func TestCORS(t *testing.T) {
	env := setupTestServer(t)

	w := env.do(t, http.MethodOptions, "/api/v1/extract", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

// TestConfigRoutesMounted verifies preference routes share the router
func TestConfigRoutesMounted(t *testing.T) {
	env := setupTestServer(t)

	w := env.do(t, http.MethodPut, "/api/v1/meta/config", config.Config{VaultDir: "/srv/recipes"})
	require.Equal(t, http.StatusOK, w.Code)

	cfg, err := env.prefs.GetConfig()
	require.NoError(t, err)
	assert.Equal(t, "/srv/recipes", cfg.VaultDir)
}
