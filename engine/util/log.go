package util

import (
	"fmt"
	"io"
	"os"
)

var GLOBAL_LOG_LEVEL = LogLevelInfo
var GLOBAL_LOG_CATEGORIES = LogChaser | LogAnimation | LogPrefab | LogSystem

var logOutput io.Writer = os.Stderr

type LogLevel int

const (
	LogLevelError LogLevel = 1 << iota
	LogLevelWarning
	LogLevelInfo
	LogLevelDebug
)

func (l LogLevel) ToString() string {
	switch l {
	case LogLevelError:
		return "ERROR"
	case LogLevelWarning:
		return "WARN"
	case LogLevelInfo:
		return "INFO"
	case LogLevelDebug:
		return "DEBUG"
	}
	return "?"
}

type LogCategory int

const (
	LogChaser LogCategory = 1 << iota
	LogAnimation
	LogPrefab
	LogSystem
)

// SetLogOutput redirects all log lines and returns the previous writer.
func SetLogOutput(w io.Writer) io.Writer {
	previous := logOutput
	logOutput = w
	return previous
}

func log(cat LogCategory, lvl LogLevel, txt string) {
	if lvl > GLOBAL_LOG_LEVEL {
		return
	}
	if GLOBAL_LOG_CATEGORIES&cat == 0 {
		return
	}
	fmt.Fprintf(logOutput, "%-5s %s\n", lvl.ToString(), txt)
}

func LogChaserInfo(txt string) {
	log(LogChaser, LogLevelInfo, txt)
}

func LogChaserDebug(txt string) {
	log(LogChaser, LogLevelDebug, txt)
}

func LogChaserWarning(txt string) {
	log(LogChaser, LogLevelWarning, txt)
}

func LogAnimationDebug(txt string) {
	log(LogAnimation, LogLevelDebug, txt)
}

func LogAnimationError(txt string) {
	log(LogAnimation, LogLevelError, txt)
}

func LogAnimationInfo(txt string) {
	log(LogAnimation, LogLevelInfo, txt)
}

func LogPrefabInfo(txt string) {
	log(LogPrefab, LogLevelInfo, txt)
}

func LogPrefabWarning(txt string) {
	log(LogPrefab, LogLevelWarning, txt)
}

func LogPrefabError(txt string) {
	log(LogPrefab, LogLevelError, txt)
}

func LogSystemInfo(txt string) {
	log(LogSystem, LogLevelInfo, txt)
}

func LogSystemError(txt string) {
	log(LogSystem, LogLevelError, txt)
}
