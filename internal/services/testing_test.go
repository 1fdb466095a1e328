package services

import (
	"io"

	"github.com/kkh1902/promptsave-sub001/pkg/config"
	"github.com/kkh1902/promptsave-sub001/pkg/logger"
)

func discardLogger() logger.Logger {
	return logger.NewWriterLogger(io.Discard, config.LogLevelDebug)
}
