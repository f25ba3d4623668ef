package utils

import "go.uber.org/zap"

// InitLogger builds the application logger. Development mode switches to the
// human-readable console encoder.
func InitLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
