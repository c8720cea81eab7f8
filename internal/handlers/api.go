package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/skip2/go-qrcode"

	"github.com/gamehub4u/gamehub-server/internal/models"
	"github.com/gamehub4u/gamehub-server/internal/store"
	"github.com/gamehub4u/gamehub-server/internal/ws"
)

const qrSize = 256

// Context carries the dependencies the HTTP surface needs
type Context struct {
	Registry *store.Registry
	Hub      *ws.Hub
	BaseURL  string
}

// HandleHealth reports process liveness plus room and connection counts
func (ctx *Context) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"rooms":     ctx.Registry.Count(),
		"players":   ctx.Hub.ConnCount(),
		"timestamp": time.Now().UnixMilli(),
	})
}

// HandleRooms lists the live rooms
func (ctx *Context) HandleRooms(w http.ResponseWriter, r *http.Request) {
	type roomSummary struct {
		Code        string            `json:"code"`
		PlayerCount int               `json:"playerCount"`
		Status      models.RoomStatus `json:"status"`
		CreatedAt   int64             `json:"createdAt"`
	}

	summaries := make([]roomSummary, 0)
	for _, room := range ctx.Registry.Rooms() {
		room.RLock()
		summaries = append(summaries, roomSummary{
			Code:        room.Code,
			PlayerCount: len(room.Players),
			Status:      room.Status,
			CreatedAt:   room.CreatedAt.UnixMilli(),
		})
		room.RUnlock()
	}

	writeJSON(w, http.StatusOK, map[string]any{"rooms": summaries})
}

// HandleRoom serves /api/room/{code} and /api/room/{code}/qr
func (ctx *Context) HandleRoom(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/room/"), "/"), "/")
	if len(parts) < 1 || parts[0] == "" {
		http.Error(w, "Invalid URL", http.StatusBadRequest)
		return
	}
	code := strings.ToUpper(parts[0])

	room, exists := ctx.Registry.Get(code)
	if !exists {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "Room not found"})
		return
	}

	if len(parts) == 2 && parts[1] == "qr" {
		ctx.serveJoinQR(w, code)
		return
	}
	if len(parts) > 1 {
		http.NotFound(w, r)
		return
	}

	room.RLock()
	info := room.Info()
	room.RUnlock()

	writeJSON(w, http.StatusOK, map[string]any{"room": info})
}

// serveJoinQR renders a PNG QR code pointing at the join link for the room
func (ctx *Context) serveJoinQR(w http.ResponseWriter, code string) {
	url := ctx.BaseURL + "/?room=" + code
	png, err := qrcode.Encode(url, qrcode.Medium, qrSize)
	if err != nil {
		log.Printf("qr encode for %s: %v", code, err)
		http.Error(w, "QR generation failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("writeJSON: %v", err)
	}
}
