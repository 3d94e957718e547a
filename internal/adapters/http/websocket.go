package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"

	"github.com/samirrijal/campusradius/internal/core/domain"
	"github.com/samirrijal/campusradius/internal/core/scene"
	"github.com/samirrijal/campusradius/internal/core/usecases"
	"github.com/samirrijal/campusradius/internal/pkg/metrics"
)

// wsRequest is a check sent by a map client. Action "reset" clears the map,
// anything else runs a check.
type wsRequest struct {
	Action      string           `json:"action,omitempty"`
	Campus      string           `json:"campus,omitempty"`
	Origin      *domain.GeoPoint `json:"origin,omitempty"`
	Postcode    string           `json:"postcode,omitempty"`
	Destination *domain.GeoPoint `json:"destination,omitempty"`
	RadiusKm    float64          `json:"radius_km"`
}

// wsResponse carries either a result with the scene ops to apply, or an error.
type wsResponse struct {
	Result *domain.CheckResult `json:"result,omitempty"`
	Ops    []scene.Op          `json:"ops,omitempty"`
	Error  *APIError           `json:"error,omitempty"`
}

// sceneSession holds the map state of one connected client.
type sceneSession struct {
	checks *usecases.EligibilityService
	style  scene.Style
	state  scene.State
}

// handle processes one request and returns the reply. A failed check leaves
// the scene untouched.
func (s *sceneSession) handle(ctx context.Context, raw []byte) wsResponse {
	var req wsRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return wsResponse{Error: &APIError{Status: 400, Code: "bad_request", Message: "invalid JSON"}}
	}

	if req.Action == "reset" {
		ops := scene.Diff(s.state, scene.State{}, s.style)
		s.state = scene.State{}
		return wsResponse{Ops: ops}
	}

	res, err := s.checks.Check(ctx, usecases.CheckInput{
		CampusID:    req.Campus,
		Origin:      req.Origin,
		Postcode:    req.Postcode,
		Destination: req.Destination,
		RadiusKm:    req.RadiusKm,
	})
	if err != nil {
		status, code := Classify(err)
		msg := err.Error()
		if status >= 500 && code == "internal_error" {
			msg = "internal error"
		}
		return wsResponse{Error: &APIError{Status: status, Code: code, Message: msg}}
	}

	next := scene.StateFromResult(res)
	ops := scene.Diff(s.state, next, s.style)
	s.state = next
	return wsResponse{Result: res, Ops: ops}
}

// WebSocketHandler runs a map session: every message is a check request and
// every reply holds the result plus the scene ops that move the client's map
// from its previous state to the new one.
func WebSocketHandler(deps *Dependencies) func(*websocket.Conn) {
	return func(c *websocket.Conn) {
		defer c.Close()

		metrics.ActiveWebSockets.Inc()
		defer metrics.ActiveWebSockets.Dec()

		remote := c.RemoteAddr().String()
		slog.Info("ws session started", "remote", remote)

		var mu sync.Mutex
		writeJSON := func(v interface{}) error {
			data, err := json.Marshal(v)
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			return c.WriteMessage(websocket.TextMessage, data)
		}

		// Keep-alive ping
		done := make(chan struct{})
		go func() {
			ticker := time.NewTicker(30 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					mu.Lock()
					err := c.WriteMessage(websocket.PingMessage, nil)
					mu.Unlock()
					if err != nil {
						return
					}
				case <-done:
					return
				}
			}
		}()
		defer close(done)

		sess := &sceneSession{checks: deps.Eligibility, style: deps.Theme}
		for {
			_, msg, err := c.ReadMessage()
			if err != nil {
				break
			}

			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			reply := sess.handle(ctx, msg)
			cancel()

			if err := writeJSON(reply); err != nil {
				slog.Warn("ws write failed", "remote", remote, "error", err)
				break
			}
		}

		slog.Info("ws session ended", "remote", remote)
	}
}
