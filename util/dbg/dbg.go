package dbg

// DebugLogger is an interface that defines our debug logging functions.
// This allows us to have different implementations based on build tags.
type DebugLogger interface {
	Printf(format string, a ...interface{})
	Println(a ...interface{})
	Warnf(format string, a ...interface{})
	Stub(format string, a ...interface{})
}

// Global variable for our debug logger instance.
// This will be initialized by either debug-log.go or nodebug-log.go depending on build tags.
var debugLog DebugLogger

func Printf(format string, a ...interface{}) {
	debugLog.Printf(format, a...)
}

func Println(a ...interface{}) {
	debugLog.Println(a...)
}

// Warnf logs a non-fatal guest-triggered condition: a write to a
// read-only region, an invalid DMA timing configuration, and the like.
func Warnf(format string, a ...interface{}) {
	debugLog.Warnf(format, a...)
}

// Stub logs an unhandled BIOS software-interrupt immediate. It never
// affects guest-visible state; it exists purely for diagnostics.
func Stub(format string, a ...interface{}) {
	debugLog.Stub(format, a...)
}
