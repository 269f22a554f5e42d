package services

import (
	"time"

	"github.com/mroshb/filmorate/internal/metrics"
	"github.com/mroshb/filmorate/pkg/errors"
	"github.com/mroshb/filmorate/pkg/logger"
)

// observe records the operation's metrics and logs failures that are not plain caller mistakes.
func observe(operation string, start time.Time, err error, keysAndValues ...interface{}) {
	metrics.RecordStoreOperation(operation, time.Since(start), err)
	if err == nil {
		return
	}

	kv := append([]interface{}{"operation", operation, "error", err}, keysAndValues...)
	switch errors.CodeOf(err) {
	case errors.ErrCodeNotFound:
		logger.Warn("Referenced record not found", kv...)
	case errors.ErrCodeValidation, errors.ErrCodeInvalidArgument:
		logger.Debug("Rejected invalid input", kv...)
	default:
		logger.Error("Store operation failed", kv...)
	}
}
