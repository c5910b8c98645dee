package diag

import (
	"fmt"
	"path/filepath"
	"runtime"
	"sync/atomic"

	log "github.com/sirupsen/logrus"
)

// Trace controls which internal --D* diagnostics are emitted. Each flag
// corresponds 1:1 to a CLI flag of the same name.
type Trace struct {
	Opt    bool
	Pass   bool
	Tokens bool
	Thread bool
}

// All enables every trace flag, implementing --Dall.
func All() Trace {
	return Trace{Opt: true, Pass: true, Tokens: true, Thread: true}
}

var threadSeq int64

// nextThreadID hands out a small, monotonically increasing id per
// goroutine announcement; logrus' own goroutine id is not exposed, so the
// front-end mints its own, matching the "thread id" prefix the CLI
// contract requires of internal log messages.
func nextThreadID() int64 {
	return atomic.AddInt64(&threadSeq, 1)
}

// ThreadSpawned logs a thread-creation announcement when --Dthread is set.
func (t Trace) ThreadSpawned(name string) int64 {
	id := nextThreadID()

	if t.Thread {
		log.WithFields(log.Fields{"thread": id, "level": "THREAD", "func": caller()}).Debugf("spawned %s", name)
	}

	return id
}

// ThreadJoined logs a thread-join announcement when --Dthread is set.
func (t Trace) ThreadJoined(id int64, name string) {
	if t.Thread {
		log.WithFields(log.Fields{"thread": id, "level": "THREAD", "func": caller()}).Debugf("joined %s", name)
	}
}

// PassEntered logs entry into a compiler pass when --Dpass is set.
func (t Trace) PassEntered(pass string) {
	if t.Pass {
		log.WithFields(log.Fields{"level": "PASS", "func": caller()}).Debugf("entering %s", pass)
	}
}

// PassExited logs exit from a compiler pass when --Dpass is set.
func (t Trace) PassExited(pass string) {
	if t.Pass {
		log.WithFields(log.Fields{"level": "PASS", "func": caller()}).Debugf("exiting %s", pass)
	}
}

// Token logs one scanned token when --Dtokens is set.
func (t Trace) Token(repr string) {
	if t.Tokens {
		log.WithFields(log.Fields{"level": "TOKEN", "func": caller()}).Debug(repr)
	}
}

// Option logs the resolved options state when --Dopt is set.
func (t Trace) Option(name string, value any) {
	if t.Opt {
		log.WithFields(log.Fields{"level": "OPT", "func": caller()}).Debugf("%s = %v", name, value)
	}
}

// caller returns the file basename and name of the function that called the
// Trace method two frames up, matching the CLI contract's requirement that
// internal log messages carry "thread id, level name, file basename,
// function name".
func caller() string {
	pc, file, line, ok := runtime.Caller(2)
	if !ok {
		return "unknown"
	}

	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return "unknown"
	}

	return fmt.Sprintf("%s:%d:%s", filepath.Base(file), line, fn.Name())
}
