package handler

import (
	"net/http"

	"github.com/bookboxapp/bookbox/internal/response"
	"github.com/jmoiron/sqlx"
)

type healthHandler struct {
	db *sqlx.DB
}

func NewHealthHandler(db *sqlx.DB) *healthHandler {
	return &healthHandler{db: db}
}

// Healthz reports liveness including a database ping.
func (h *healthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	err := h.db.PingContext(r.Context())
	if err != nil {
		response.Error(w, http.StatusServiceUnavailable, "database unreachable")
		return
	}

	response.Success(w, map[string]string{"status": "ok"})
}
