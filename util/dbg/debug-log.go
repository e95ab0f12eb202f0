//go:build debug
// +build debug

package dbg

import (
	"github.com/sirupsen/logrus"
)

type debugLoggerImpl struct {
	logger *logrus.Logger
}

// init function for the debug build.
// This will be called when the 'debug' tag is active.
func init() {
	l := logrus.New()
	l.SetLevel(logrus.DebugLevel)
	l.Formatter = &logrus.TextFormatter{
		FullTimestamp: false,
	}
	debugLog = &debugLoggerImpl{logger: l}
}

func (d *debugLoggerImpl) Printf(format string, a ...interface{}) {
	d.logger.Debugf(format, a...)
}

func (d *debugLoggerImpl) Println(a ...interface{}) {
	d.logger.Debugln(a...)
}

func (d *debugLoggerImpl) Warnf(format string, a ...interface{}) {
	d.logger.Warnf(format, a...)
}

func (d *debugLoggerImpl) Stub(format string, a ...interface{}) {
	d.logger.WithField("kind", "stub-swi").Infof(format, a...)
}
