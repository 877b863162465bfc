package main

import (
	"io"

	log "github.com/sirupsen/logrus"
)

// NewLogger returns a logrus logger writing to w at the given level.
func NewLogger(w io.Writer, level uint32, logFormat string) *log.Logger {
	l := log.New()
	l.Out = w
	l.SetLevel(log.Level(level))
	if logFormat == "json" {
		l.Formatter = &log.JSONFormatter{}
	} else {
		l.Formatter = &log.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		}
	}
	return l
}
