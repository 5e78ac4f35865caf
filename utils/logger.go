package utils

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"
)

// Three level-separated loggers writing to date-stamped files under logs/.
// Callers go through the LogX helpers, which tolerate an uninitialized logger
// so library code stays usable from tests.
var (
	InfoLogger  *log.Logger
	ErrorLogger *log.Logger
	DebugLogger *log.Logger
)

func openLogFile(dir, level, stamp string) (*os.File, error) {
	f, err := os.OpenFile(
		filepath.Join(dir, fmt.Sprintf("%s-%s.log", level, stamp)),
		os.O_APPEND|os.O_CREATE|os.O_WRONLY,
		0644,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s log file: %v", level, err)
	}
	return f, nil
}

// InitLogger creates the logs directory and one file per level for today.
func InitLogger() error {
	logsDir := "logs"
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return fmt.Errorf("failed to create logs directory: %v", err)
	}

	stamp := time.Now().Format("2006-01-02")
	infoFile, err := openLogFile(logsDir, "info", stamp)
	if err != nil {
		return err
	}
	errorFile, err := openLogFile(logsDir, "error", stamp)
	if err != nil {
		return err
	}
	debugFile, err := openLogFile(logsDir, "debug", stamp)
	if err != nil {
		return err
	}

	flags := log.Ldate | log.Ltime | log.Lshortfile
	InfoLogger = log.New(infoFile, "INFO: ", flags)
	ErrorLogger = log.New(errorFile, "ERROR: ", flags)
	DebugLogger = log.New(debugFile, "DEBUG: ", flags)

	return nil
}

func LogInfo(format string, v ...interface{}) {
	if InfoLogger != nil {
		InfoLogger.Printf(format, v...)
	}
}

func LogError(format string, v ...interface{}) {
	if ErrorLogger != nil {
		ErrorLogger.Printf(format, v...)
	}
}

func LogDebug(format string, v ...interface{}) {
	if DebugLogger != nil {
		DebugLogger.Printf(format, v...)
	}
}

// LogRequest writes one line per handled HTTP request.
func LogRequest(method, path, ip string, status int, duration time.Duration) {
	LogInfo("Request: %s %s from %s - Status: %d - Duration: %v", method, path, ip, status, duration)
}

// LogErrorWithStack is used by the recovery middleware to keep the panic's
// stack next to the error.
func LogErrorWithStack(err error, stack []byte) {
	if ErrorLogger != nil {
		ErrorLogger.Printf("Error: %v\nStack Trace:\n%s", err, stack)
	}
}
