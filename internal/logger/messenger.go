package logger

import (
	"fmt"

	"github.com/charmbracelet/log"
)

// Severity is the level handed to a host message callback.
type Severity int32

const (
	SeverityDebug   Severity = 0
	SeverityInfo    Severity = 1
	SeverityWarning Severity = 2
	SeverityError   Severity = 3
)

func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// MessageFunc receives diagnostics for the host. The text is only valid for
// the duration of the call.
type MessageFunc func(severity Severity, text string)

// Messenger writes diagnostics to the process logger and mirrors them to an
// optional host callback. Messages never influence control flow.
type Messenger struct {
	log      *log.Logger
	callback MessageFunc
}

// NewMessenger returns a messenger scoped to a component. callback may be nil.
func NewMessenger(component string, callback MessageFunc) *Messenger {
	return &Messenger{
		log:      Logger.With("component", component),
		callback: callback,
	}
}

// With returns a messenger sharing the callback with extra key/values on
// every log line.
func (m *Messenger) With(keyvals ...interface{}) *Messenger {
	if m == nil {
		return nil
	}
	return &Messenger{log: m.log.With(keyvals...), callback: m.callback}
}

func (m *Messenger) Debugf(format string, args ...interface{}) {
	m.send(SeverityDebug, format, args...)
}

func (m *Messenger) Infof(format string, args ...interface{}) {
	m.send(SeverityInfo, format, args...)
}

func (m *Messenger) Warnf(format string, args ...interface{}) {
	m.send(SeverityWarning, format, args...)
}

func (m *Messenger) Errorf(format string, args ...interface{}) {
	m.send(SeverityError, format, args...)
}

func (m *Messenger) send(severity Severity, format string, args ...interface{}) {
	if m == nil {
		return
	}
	text := fmt.Sprintf(format, args...)

	switch severity {
	case SeverityDebug:
		m.log.Debug(text)
	case SeverityInfo:
		m.log.Info(text)
	case SeverityWarning:
		m.log.Warn(text)
	default:
		m.log.Error(text)
	}

	if m.callback != nil {
		m.callback(severity, text)
	}
}
