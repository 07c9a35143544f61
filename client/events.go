package client

import (
	"context"
	"encoding/json"

	"github.com/gorilla/websocket"

	"worldmap/server/internal/regions"
)

// SubscribeEvents consumes the server's dirty-region push channel and
// forwards each announcement to the tile view. Polling remains the
// authoritative sync path; this is a fast path that shortens the latency
// between a region changing and its tiles repainting. Returns when the
// context ends or the connection drops; callers decide whether to redial.
func SubscribeEvents(ctx context.Context, wsURL string, tiles TileView) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}
		var set regions.DirtySet
		if err := json.Unmarshal(data, &set); err != nil {
			continue
		}
		if tiles != nil && len(set.Regions) > 0 {
			tiles.RefreshRegions(set.Regions)
		}
	}
}
