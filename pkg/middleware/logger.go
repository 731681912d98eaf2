package middleware

import (
	"log/slog"
	"time"

	"github.com/Vehmloewff/storable"
)

// Logger creates middleware that logs every committed change at debug
// level, including how long the notification pass took. Pass nil to use
// slog.Default().
//
//	cfg := storable.New(Config{}).
//	    WithName("config").
//	    WithMiddleware(middleware.Logger(nil))
func Logger(logger *slog.Logger) storable.Middleware {
	if logger == nil {
		logger = slog.Default()
	}

	return func(ev storable.Event, next func()) {
		start := time.Now()
		next()

		logger.Debug("storable change",
			"cell", cellLabel(ev),
			"id", ev.ID,
			"old", ev.Old,
			"new", ev.New,
			"subscribers", ev.Subscribers,
			"duration", time.Since(start),
		)
	}
}
