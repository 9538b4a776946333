package websocket

import (
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/gorilla/websocket"
)

const upgraderBufferSize = 1024

// allowedOriginSet parses ALLOWED_ORIGINS into a lookup set. Falls back to
// the local dashboard origin when nothing usable is configured.
func allowedOriginSet() map[string]struct{} {
	set := make(map[string]struct{})
	for _, origin := range strings.Split(os.Getenv("ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			set[origin] = struct{}{}
		}
	}
	if len(set) == 0 {
		set["http://localhost:3000"] = struct{}{}
	}
	return set
}

// NewSecureUpgrader creates a WebSocket upgrader that only accepts
// connections from the configured dashboard origins. Requests without an
// Origin header are same-origin and pass.
func NewSecureUpgrader(logger *slog.Logger) websocket.Upgrader {
	allowed := allowedOriginSet()

	return websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}
			if _, ok := allowed[origin]; ok {
				return true
			}
			if logger != nil {
				logger.Warn("rejected websocket connection",
					slog.String("origin", origin),
					slog.String("remote_ip", r.RemoteAddr))
			}
			return false
		},
		ReadBufferSize:  upgraderBufferSize,
		WriteBufferSize: upgraderBufferSize,
	}
}

// DefaultUpgrader returns an upgrader that accepts any origin. Development
// only.
func DefaultUpgrader() websocket.Upgrader {
	return websocket.Upgrader{
		CheckOrigin:     func(r *http.Request) bool { return true },
		ReadBufferSize:  upgraderBufferSize,
		WriteBufferSize: upgraderBufferSize,
	}
}
