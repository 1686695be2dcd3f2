package logutil

import (
	"github.com/go-logr/logr"
	"github.com/hashicorp/go-retryablehttp"
)

// Leveled adapts a logr.Logger so that it can be
// used by a retryablehttp.Client.
type Leveled struct {
	log logr.Logger
}

var _ retryablehttp.LeveledLogger = &Leveled{}

func NewLeveled(log logr.Logger) *Leveled {
	return &Leveled{log: log}
}

func (l *Leveled) Error(msg string, keysAndValues ...interface{}) {
	l.log.Error(nil, msg, keysAndValues...)
}

func (l *Leveled) Warn(msg string, keysAndValues ...interface{}) {
	l.log.V(1).Info(msg, keysAndValues...)
}

func (l *Leveled) Info(msg string, keysAndValues ...interface{}) {
	l.log.V(2).Info(msg, keysAndValues...)
}

func (l *Leveled) Debug(msg string, keysAndValues ...interface{}) {
	l.log.V(5).Info(msg, keysAndValues...)
}
