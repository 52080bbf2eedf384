package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sanctionsfeed/internal/storage"
)

// FeedHandler serves the loaded sanctions feed itself
type FeedHandler struct {
	store *storage.SanctionedStore
	meta  *storage.MetaStore
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(store *storage.SanctionedStore, meta *storage.MetaStore) *FeedHandler {
	return &FeedHandler{store: store, meta: meta}
}

// GetMetadata returns the metadata of the artifact currently being served
// GET /api/v1/metadata
func (h *FeedHandler) GetMetadata(c *gin.Context) {
	meta, err := h.meta.Get()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if meta == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No sanctions list loaded"})
		return
	}
	c.JSON(http.StatusOK, meta)
}

// ListByChain returns all sanctioned addresses for a chain
// GET /api/v1/addresses/:chain
func (h *FeedHandler) ListByChain(c *gin.Context) {
	chain := c.Param("chain")

	addrs, err := h.store.ListByChain(chain)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"blockchain": chain,
		"count":      len(addrs),
		"addresses":  addrs,
	})
}
