// Package ilog is a small leveled logger. Messages below the configured level are dropped,
// FATAL messages exit the process.
package ilog

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

const (
	DEBUG = iota
	INFO
	WARN
	ERROR
	FATAL
	NONE
)

var levelNames = []string{"DEBUG", "INFO", "WARN", "ERROR", "FATAL", "NONE"}

// ILOG - Interface for the leveled logger used throughout the module
type ILOG interface {
	Debug(format string, a ...any)
	Info(format string, a ...any)
	Warn(format string, a ...any)
	Error(format string, a ...any)
	Fatal(format string, a ...any)
	IfDebug() bool
	SetLOGLEVEL(lvl int)
	GetLOGLEVEL() int
}

// LOG - Default ILOG implementation on top of a standard library logger
type LOG struct {
	mux    sync.RWMutex
	level  int
	logger *log.Logger
	exit   func(code int)
}

// NewLogger - Returns a logger writing to stderr, and additionally to logfile if one is given.
// If the logfile can not be opened the logger falls back to stderr only and says so.
//   - lvl is one of DEBUG, INFO, WARN, ERROR, FATAL or NONE
//   - logfile is an optional path to append log lines to
func NewLogger(lvl int, logfile string) ILOG {
	var w io.Writer = os.Stderr
	var openErr error
	if logfile != "" {
		f, err := os.OpenFile(logfile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			openErr = err
		} else {
			w = io.MultiWriter(os.Stderr, f)
		}
	}
	l := NewWriterLogger(lvl, w)
	if openErr != nil {
		l.Warn("unable to open logfile '%s': %v", logfile, openErr)
	}
	return l
}

// NewWriterLogger - Returns a logger writing to w
func NewWriterLogger(lvl int, w io.Writer) *LOG {
	return &LOG{
		level:  clampLevel(lvl),
		logger: log.New(w, "", log.LstdFlags|log.Lmicroseconds),
		exit:   os.Exit,
	}
}

// GetEnvLOGLEVEL - Returns the level named by the LOGLEVEL environment variable, INFO if unset
func GetEnvLOGLEVEL() int {
	return GetLOGLEVEL(os.Getenv("LOGLEVEL"))
}

// GetLOGLEVEL - Parses a level name (case-insensitive), unknown names give INFO
func GetLOGLEVEL(name string) int {
	name = strings.ToUpper(strings.TrimSpace(name))
	for i, n := range levelNames {
		if n == name {
			return i
		}
	}
	return INFO
}

// LevelName - Returns the name of lvl
func LevelName(lvl int) string {
	return levelNames[clampLevel(lvl)]
}

// SetLOGLEVEL - Sets the lowest level that is logged
func (l *LOG) SetLOGLEVEL(lvl int) {
	l.mux.Lock()
	l.level = clampLevel(lvl)
	l.mux.Unlock()
}

// GetLOGLEVEL - Returns the lowest level that is logged
func (l *LOG) GetLOGLEVEL() int {
	l.mux.RLock()
	defer l.mux.RUnlock()
	return l.level
}

// IfDebug - Returns true if DEBUG messages are logged
func (l *LOG) IfDebug() bool {
	return l.GetLOGLEVEL() == DEBUG
}

// Debug - Logs at DEBUG level
func (l *LOG) Debug(format string, a ...any) {
	l.logf(DEBUG, format, a...)
}

// Info - Logs at INFO level
func (l *LOG) Info(format string, a ...any) {
	l.logf(INFO, format, a...)
}

// Warn - Logs at WARN level
func (l *LOG) Warn(format string, a ...any) {
	l.logf(WARN, format, a...)
}

// Error - Logs at ERROR level
func (l *LOG) Error(format string, a ...any) {
	l.logf(ERROR, format, a...)
}

// Fatal - Logs regardless of level (unless NONE) and exits with status 1
func (l *LOG) Fatal(format string, a ...any) {
	l.logf(FATAL, format, a...)
	l.exit(1)
}

func (l *LOG) logf(lvl int, format string, a ...any) {
	if lvl < l.GetLOGLEVEL() {
		return
	}
	l.logger.Printf("%s %s", levelNames[lvl], fmt.Sprintf(format, a...))
}

func clampLevel(lvl int) int {
	if lvl < DEBUG {
		return DEBUG
	}
	if lvl > NONE {
		return NONE
	}
	return lvl
}
