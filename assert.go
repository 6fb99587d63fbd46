package rb2d

import "fmt"

// assertf is the core's single precondition-violation path.
// Negative mass, a malformed polygon, an invalid entity — all of these are
// caller bugs, not recoverable runtime conditions: assertf logs the
// violation through the owning World's Logger and panics. There is no
// recovery, no retry; a release build choosing to strip these checks is
// outside this package's concern.
func (w *World) assertf(cond bool, format string, args ...any) {
	if cond {
		return
	}
	msg := fmt.Sprintf(format, args...)
	w.log.error("precondition violation", "detail", msg)
	panic("rb2d: " + msg)
}

// assertf is the world-less variant used by free functions such as shape
// constructors, which run before any World exists to own a Logger. It logs
// through the process default logger, matching plain log.Printf "dev
// error" checks in code paths with no object to hang a logger off of.
func assertf(cond bool, format string, args ...any) {
	if cond {
		return
	}
	msg := fmt.Sprintf(format, args...)
	NewLogger(nil).error("precondition violation", "detail", msg)
	panic("rb2d: " + msg)
}
