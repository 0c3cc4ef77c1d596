package admin

import "github.com/techgear-vn/techgear-api/internal/provider"

// Handler serves the back-office APIs under /api/admin.
type Handler struct {
	*provider.Container
}

// New creates the back-office handler.
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
