package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"sanctionsfeed/internal/metrics"
	"sanctionsfeed/internal/models"
	"sanctionsfeed/internal/storage"
)

// ScreenHandler handles address screening requests
type ScreenHandler struct {
	store   *storage.SanctionedStore
	metrics *metrics.Metrics
}

// NewScreenHandler creates a new ScreenHandler
func NewScreenHandler(store *storage.SanctionedStore, m *metrics.Metrics) *ScreenHandler {
	return &ScreenHandler{store: store, metrics: m}
}

// ScreeningResponse is the outcome of a single screening check
type ScreeningResponse struct {
	Address    string                    `json:"address"`
	Blockchain string                    `json:"blockchain"`
	Sanctioned bool                      `json:"sanctioned"`
	Entity     *models.SanctionedAddress `json:"entity,omitempty"`
}

// Screen checks whether an address is on the sanctions list
// GET /api/v1/screen/:chain/:address
func (h *ScreenHandler) Screen(c *gin.Context) {
	chain := c.Param("chain")
	address := strings.ToLower(strings.TrimSpace(c.Param("address")))

	entry, err := h.store.Get(chain, address)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.metrics.RecordCheck(entry != nil)

	c.JSON(http.StatusOK, ScreeningResponse{
		Address:    address,
		Blockchain: chain,
		Sanctioned: entry != nil,
		Entity:     entry,
	})
}
