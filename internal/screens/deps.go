// Package screens holds what every Flightify screen shares.
package screens

import (
	"go.uber.org/zap"

	"github.com/flightify/flightify/internal/session"
	"github.com/flightify/flightify/internal/store"
)

// Deps are the collaborators handed from screen to screen. Attempts may be
// nil, in which case finished attempts are not recorded.
type Deps struct {
	Engine   *session.Engine
	Attempts store.AttemptRepo
	Logger   *zap.SugaredLogger
}

// Log returns the logger, or a no-op logger when none was set.
func (d Deps) Log() *zap.SugaredLogger {
	if d.Logger == nil {
		return zap.NewNop().Sugar()
	}
	return d.Logger
}
