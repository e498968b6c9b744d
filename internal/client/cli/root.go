package cli

import (
	"context"
	"fmt"
)

func (a *App) getStatus() string {
	a.mu.Lock()
	defer a.mu.Unlock()

	s := ""
	if a.email != "" {
		s = a.email + " "
	}
	if a.mode != "" {
		s = s + string(a.mode)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// Root checks connectivity once, starts the background watcher and runs the
// REPL on the app's reader until the user exits or input ends.
func (a *App) Root(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	printlnFn("Welcome to the caet client (type 'help' for commands)")

	a.checkOnline(ctx)
	go a.StartOnlineStatusWatcher(ctx, onlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader)
}
