// internal/api/zones/handlers.go
package zones

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/terrario-app/terrario/internal/api/apiutil"
	"github.com/terrario-app/terrario/internal/db"
)

const zoneQueryTimeout = 5 * time.Second

var (
	store     *db.DB
	storeOnce sync.Once
)

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(database *db.DB) {
	if database == nil {
		return
	}
	storeOnce.Do(func() {
		store = database
	})
}

// GET /api/zones
func HandleList(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if store == nil {
		logger.Error().Msg("Zone store not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), zoneQueryTimeout)
	defer cancel()

	zones, err := store.ListZones(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list zones")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to load zones")
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "success",
		"data":    zones,
	}); err != nil {
		logger.Error().Err(err).Msg("Failed to write zone response")
	}
}
