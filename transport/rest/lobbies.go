package rest

import (
	"encoding/json"
	"net/http"
)

func (that *Server) lobbiesHandler(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "lobbiesHandler")

	lobbies, err := that.lobbies.ListAvailable(r.Context())
	if err != nil {
		log.Error("failed to list lobbies", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err = json.NewEncoder(w).Encode(lobbies); err != nil {
		log.Error("failed to encode lobbies", "error", err)
	}
}
