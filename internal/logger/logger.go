// Package logger holds kardbook's process-wide zap sugared logger.
package logger

import (
	"sync"

	"go.uber.org/zap"
)

var (
	sugar *zap.SugaredLogger
	once  sync.Once
)

// Init builds the global logger once. "production" selects zap's JSON
// encoder; every other environment gets the console encoder for local
// reading. Later calls are no-ops.
func Init(env string) {
	once.Do(func() {
		var base *zap.Logger
		var err error

		if env == "production" {
			base, err = zap.NewProduction()
		} else {
			base, err = zap.NewDevelopment()
		}

		if err != nil {
			// Logging must never take the server down with it.
			base = zap.NewNop()
		}

		sugar = base.Named("kardbook").Sugar()
	})
}

// Get returns the global sugared logger, initializing a development one
// on first use if Init was never called.
func Get() *zap.SugaredLogger {
	if sugar == nil {
		Init("development")
	}
	return sugar
}

// Sync flushes buffered entries. Deferred from main.
func Sync() {
	if sugar != nil {
		_ = sugar.Sync()
	}
}
