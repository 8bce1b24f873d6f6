package config

import (
	"errors"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
)

// APIServer serves the preference endpoints.
type APIServer struct {
	store *Store
}

// NewAPIServer creates a new config API server.
func NewAPIServer(store *Store) *APIServer {
	return &APIServer{
		store: store,
	}
}

// RegisterRoutes mounts the config routes under /api/v1/meta on an existing
// router.
func (c *APIServer) RegisterRoutes(router gin.IRouter) {
	api := router.Group("/api/v1/meta")
	api.GET("/config", c.HandleGetConfig)
	api.PUT("/config", c.HandleUpdateConfig)
}

// errorResponse creates a standardized error response.
func errorResponse(code, message string) gin.H {
	return gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	}
}

// HandleGetConfig handles GET /api/v1/meta/config.
func (c *APIServer) HandleGetConfig(ctx *gin.Context) {
	config, err := c.store.GetConfig()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, errorResponse("internal_error", "Failed to retrieve configuration"))
		return
	}

	ctx.JSON(http.StatusOK, config)
}

// HandleUpdateConfig handles PUT /api/v1/meta/config.
func (c *APIServer) HandleUpdateConfig(ctx *gin.Context) {
	var updates Config
	if err := ctx.ShouldBindJSON(&updates); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse("bad_request", err.Error()))
		return
	}

	// If no fields provided (empty body), return current config
	if updates.VaultDir == "" {
		config, err := c.store.GetConfig()
		if err != nil {
			ctx.JSON(http.StatusInternalServerError, errorResponse("internal_error", "Failed to retrieve configuration"))
			return
		}
		ctx.JSON(http.StatusOK, config)
		return
	}

	if err := validateVaultDir(updates.VaultDir); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse("validation_error", err.Error()))
		return
	}

	if err := c.store.UpdateConfig(&updates); err != nil {
		ctx.JSON(http.StatusInternalServerError, errorResponse("internal_error", "Failed to update configuration"))
		return
	}

	ctx.JSON(http.StatusOK, updates)
}

// validateVaultDir requires an absolute path so the server's working
// directory never decides where notes land.
func validateVaultDir(dir string) error {
	if !filepath.IsAbs(dir) {
		return errors.New("invalid vault_dir: must be an absolute path")
	}
	return nil
}
