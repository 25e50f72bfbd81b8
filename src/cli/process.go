package cli

import (
	"os"
	"os/signal"
	"sync"
	"syscall"
)

var exitHandlers struct {
	sync.Mutex
	handlers []func()
	once     sync.Once
}

// HandleSignals starts a goroutine that waits for a terminating signal, runs the exit handlers and
// then exits the process. A second signal exits immediately without waiting for the handlers.
func HandleSignals() {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGHUP, syscall.SIGINT, syscall.SIGQUIT, syscall.SIGTERM)
	go func() {
		sig := <-ch
		log.Info("Received signal %s", sig)
		done := make(chan struct{})
		go func() {
			RunExitHandlers()
			close(done)
		}()
		select {
		case <-done:
		case sig = <-ch:
			log.Warning("Received second signal %s, aborting", sig)
		}
		exit(sig)
	}()
}

// AtExit registers a function to be run by RunExitHandlers.
func AtExit(f func()) {
	exitHandlers.Lock()
	defer exitHandlers.Unlock()
	exitHandlers.handlers = append(exitHandlers.handlers, f)
}

// RunExitHandlers runs the registered exit handlers in reverse order of registration.
// Only the first call does anything; it's called on a terminating signal and should also be
// called when the process exits normally.
func RunExitHandlers() {
	exitHandlers.once.Do(func() {
		exitHandlers.Lock()
		handlers := exitHandlers.handlers
		exitHandlers.Unlock()
		for i := len(handlers) - 1; i >= 0; i-- {
			handlers[i]()
		}
	})
}

// exit kills the process with an exit code suitable for the given signal.
func exit(sig os.Signal) {
	if s, ok := sig.(syscall.Signal); ok {
		os.Exit(128 + int(s))
	}
	os.Exit(1)
}
