package recipenote

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pevans/recipenote/config"
	"github.com/pevans/recipenote/library"
	"github.com/pevans/recipenote/preview"
	"github.com/pevans/recipenote/recipe"
	"github.com/pevans/recipenote/vault"
)

// APIServer relays pages captured by the browser extension to the extractor
// and serves the saved-recipe library.
type APIServer struct {
	clipper  *Clipper
	prefs    *config.Store
	renderer *preview.Renderer
	logger   zerolog.Logger
}

// NewAPIServer creates a new API server. prefs may be nil, in which case the
// config routes are not mounted.
func NewAPIServer(clipper *Clipper, prefs *config.Store, logger zerolog.Logger) *APIServer {
	return &APIServer{
		clipper:  clipper,
		prefs:    prefs,
		renderer: preview.New(),
		logger:   logger,
	}
}

// SetupRouter configures the Gin router with all API routes.
func (s *APIServer) SetupRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	// Add CORS middleware
	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusOK)
			return
		}

		c.Next()
	})

	api := router.Group("/api/v1")
	api.POST("/extract", s.HandleExtract)
	api.POST("/preview", s.HandlePreview)
	api.POST("/recipes", s.HandleSaveRecipe)
	api.GET("/recipes", s.HandleListRecipes)
	api.GET("/recipes/:id", s.HandleGetRecipe)
	api.DELETE("/recipes/:id", s.HandleDeleteRecipe)

	if s.prefs != nil {
		config.NewAPIServer(s.prefs).RegisterRoutes(router)
	}

	return router
}

// PageRequest carries a page the extension has already loaded.
type PageRequest struct {
	URL  string `json:"url"`
	HTML string `json:"html"`
}

// PreviewRequest is either a page to extract or a finished note.
type PreviewRequest struct {
	PageRequest
	Markdown string `json:"markdown"`
}

// ExtractResponse represents the response for POST /api/v1/extract.
type ExtractResponse struct {
	Title        string   `json:"title"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	Markdown     string   `json:"markdown"`
	Filename     string   `json:"filename"`
	Warnings     []string `json:"warnings"`
}

// SaveResponse represents the response for POST /api/v1/recipes.
type SaveResponse struct {
	Recipe   *library.Entry `json:"recipe,omitempty"`
	Path     string         `json:"path"`
	Filename string         `json:"filename"`
	Warnings []string       `json:"warnings"`
}

// ListRecipesResponse represents the response for GET /api/v1/recipes.
type ListRecipesResponse struct {
	Recipes []library.Entry `json:"recipes"`
	Limit   int             `json:"limit"`
	Offset  int             `json:"offset"`
}

// RecipeResponse represents the response for GET /api/v1/recipes/:id. Note is
// omitted when the file has been removed from the vault.
type RecipeResponse struct {
	Recipe *library.Entry `json:"recipe"`
	Note   *vault.Note    `json:"note,omitempty"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error code and message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(c *gin.Context, status int, code, message string) {
	c.JSON(status, ErrorResponse{Error: ErrorDetail{Code: code, Message: message}})
}

// bindPage parses a page request and reports a response if it is unusable.
func (s *APIServer) bindPage(c *gin.Context, req *PageRequest) (*recipe.Page, bool) {
	if req.HTML == "" {
		writeError(c, http.StatusBadRequest, "validation_error", "html is required")
		return nil, false
	}

	page, err := recipe.ParsePage(req.HTML, req.URL)
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid_html", err.Error())
		return nil, false
	}
	return page, true
}

// HandleExtract handles POST /api/v1/extract.
func (s *APIServer) HandleExtract(c *gin.Context) {
	var req PageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	page, ok := s.bindPage(c, &req)
	if !ok {
		return
	}

	result := s.clipper.Extractor().Extract(page)

	c.JSON(http.StatusOK, ExtractResponse{
		Title:        result.Title,
		Ingredients:  result.Ingredients,
		Instructions: result.Instructions,
		Markdown:     result.Markdown,
		Filename:     result.Filename(),
		Warnings:     result.Warnings(),
	})
}

// HandleSaveRecipe handles POST /api/v1/recipes.
func (s *APIServer) HandleSaveRecipe(c *gin.Context) {
	var req PageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	page, ok := s.bindPage(c, &req)
	if !ok {
		return
	}

	clip, err := s.clipper.Clip(page)
	if err != nil {
		s.logger.Error().Err(err).Str("url", req.URL).Msg("failed to save recipe")
		writeError(c, http.StatusInternalServerError, "internal_error", "Failed to save recipe: "+err.Error())
		return
	}

	c.JSON(http.StatusCreated, SaveResponse{
		Recipe:   clip.Entry,
		Path:     clip.Path,
		Filename: clip.Result.Filename(),
		Warnings: clip.Result.Warnings(),
	})
}

// HandlePreview handles POST /api/v1/preview. The note is rendered to a
// standalone HTML page.
func (s *APIServer) HandlePreview(c *gin.Context) {
	var req PreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	note := req.Markdown
	if note == "" {
		page, ok := s.bindPage(c, &req.PageRequest)
		if !ok {
			return
		}
		note = s.clipper.Extractor().Extract(page).Markdown
	}

	doc, err := s.renderer.Document([]byte(note))
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid_markdown", err.Error())
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", doc)
}

// HandleListRecipes handles GET /api/v1/recipes.
func (s *APIServer) HandleListRecipes(c *gin.Context) {
	lib, ok := s.requireLibrary(c)
	if !ok {
		return
	}

	limit := 50 // default
	if limitParam := c.Query("limit"); limitParam != "" {
		parsedLimit, err := strconv.Atoi(limitParam)
		if err != nil || parsedLimit < 1 {
			writeError(c, http.StatusBadRequest, "invalid_parameter", "Invalid limit parameter")
			return
		}
		limit = min(parsedLimit, 1000)
	}

	offset := 0 // default
	if offsetParam := c.Query("offset"); offsetParam != "" {
		parsedOffset, err := strconv.Atoi(offsetParam)
		if err != nil || parsedOffset < 0 {
			writeError(c, http.StatusBadRequest, "invalid_parameter", "Invalid offset parameter")
			return
		}
		offset = parsedOffset
	}

	entries, err := lib.List(library.Filter{
		Query:  c.Query("q"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal_error", "Failed to list recipes: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, ListRecipesResponse{
		Recipes: entries,
		Limit:   limit,
		Offset:  offset,
	})
}

// HandleGetRecipe handles GET /api/v1/recipes/:id.
func (s *APIServer) HandleGetRecipe(c *gin.Context) {
	entry, ok := s.lookup(c)
	if !ok {
		return
	}

	resp := RecipeResponse{Recipe: entry}

	v, err := s.clipper.Vault()
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal_error", "Failed to open vault: "+err.Error())
		return
	}

	note, err := v.Read(entry.Filename)
	switch {
	case err == nil:
		resp.Note = note
	case !errors.Is(err, vault.ErrNoteNotFound):
		writeError(c, http.StatusInternalServerError, "internal_error", "Failed to read note: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, resp)
}

// HandleDeleteRecipe handles DELETE /api/v1/recipes/:id. The note file is
// removed along with the index entry.
func (s *APIServer) HandleDeleteRecipe(c *gin.Context) {
	entry, ok := s.lookup(c)
	if !ok {
		return
	}

	v, err := s.clipper.Vault()
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal_error", "Failed to open vault: "+err.Error())
		return
	}

	if err := v.Delete(entry.Filename); err != nil && !errors.Is(err, vault.ErrNoteNotFound) {
		writeError(c, http.StatusInternalServerError, "internal_error", "Failed to delete note: "+err.Error())
		return
	}

	if err := s.clipper.Library().Delete(entry.RecipeID); err != nil && !errors.Is(err, library.ErrRecipeNotFound) {
		writeError(c, http.StatusInternalServerError, "internal_error", "Failed to delete recipe: "+err.Error())
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *APIServer) requireLibrary(c *gin.Context) (*library.Store, bool) {
	lib := s.clipper.Library()
	if lib == nil {
		writeError(c, http.StatusServiceUnavailable, "unavailable", "Recipe library is not configured")
		return nil, false
	}
	return lib, true
}

// lookup resolves the :id path parameter to a library entry.
func (s *APIServer) lookup(c *gin.Context) (*library.Entry, bool) {
	lib, ok := s.requireLibrary(c)
	if !ok {
		return nil, false
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid_id", "Invalid recipe ID: "+err.Error())
		return nil, false
	}

	entry, err := lib.Get(id)
	if errors.Is(err, library.ErrRecipeNotFound) {
		writeError(c, http.StatusNotFound, "not_found", "Recipe with ID "+id.String()+" not found")
		return nil, false
	}
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal_error", "Failed to get recipe: "+err.Error())
		return nil, false
	}

	return entry, true
}
