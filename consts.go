package logjack

const emptyString = ""

const (
	// stdlogShim is the stdlib logger's source file. Frames from it
	// belong to the BridgeStdlog shim, never to the caller being
	// attributed.
	stdlogShim = "src/log/log.go"

	// libSegment is elided from derived logger names wherever it
	// appears, so connect/lib/session becomes connect.session.
	libSegment = ".lib."
)

// debugInternalPaths are internal source locations of the external debug
// convention. They are skipped during attribution only while a debug
// namespace accompanies the call; without one they are legitimate
// attribution targets.
var debugInternalPaths = [...]string{
	"/go-debug/",
	"/pkg/mod/github.com/tj/go-debug",
}

const (
	errMsgNilSink     = "sink is nil"
	errMsgNilRegistry = "registry is nil"
	errMsgBadOptions  = "invalid install options"
	errMsgNoRoot      = "root not given and caller location unavailable"
)
