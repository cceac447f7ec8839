package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jloyd-c/bubble-chat/internal/domain"

	"github.com/go-chi/chi/v5"
)

// Per-room stylesheet lookup for the room page. Unmapped rooms fall
// back to the base theme.
var roomThemes = map[string]string{
	"ccs":  "css/ccs_design.css",
	"cn":   "css/cn_design.css",
	"ce":   "css/c_design.css",
	"ccje": "css/ccje_design.css",
	"cbaa": "css/cbaa_design.css",
}

const (
	defaultTheme = "css/base.css"
	defaultRoom  = "ccs"
)

type RoomSvc interface {
	GetOrCreate(ctx context.Context, name string) (*domain.Room, error)
}

type Handler struct {
	roomSvc RoomSvc
}

func NewHandler(room RoomSvc) *Handler {
	return &Handler{roomSvc: room}
}

type RoomPageResponse struct {
	RoomName string `json:"room_name"`
	ThemeCSS string `json:"theme_css"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// GET /rooms/{room}
func (h *Handler) RoomPage(w http.ResponseWriter, r *http.Request) {
	room := chi.URLParam(r, "room")
	if room == "" {
		room = defaultRoom
	}

	if _, err := h.roomSvc.GetOrCreate(r.Context(), room); err != nil {
		slog.Error("handler.RoomPage:", slog.Any("err", err))
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	theme, ok := roomThemes[strings.ToLower(room)]
	if !ok {
		theme = defaultTheme
	}

	writeJSON(w, http.StatusOK, RoomPageResponse{
		RoomName: room,
		ThemeCSS: theme,
	})
}
