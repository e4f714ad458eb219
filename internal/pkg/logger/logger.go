package logger

import (
	"fmt"

	"go.uber.org/zap"
)

// New builds the application logger. Production mode emits JSON,
// development mode emits human-readable console output.
func New(production bool) (*zap.Logger, error) {
	var (
		log *zap.Logger
		err error
	)
	if production {
		log, err = zap.NewProduction()
	} else {
		log, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return log, nil
}
