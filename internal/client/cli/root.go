package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
)

func (a *App) getStatus() string {
	s := ""
	if a.user != nil {
		s = a.user.Email + " "
	}
	if a.Mode != "" {
		s = s + string(a.Mode)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// Root restores a persisted session if one is still usable, starts the
// connectivity watcher and hands control to the REPL. It blocks until the
// user exits.
func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to FuelTrack CLI (type 'help' for commands)")

	user, err := a.session.Bootstrap(ctx)
	if err != nil {
		a.log.Warn(ctx, "session bootstrap failed", "error", err)
	}
	if user != nil {
		a.user = user
		printlnFn("Welcome back,", user.FullName())
	}

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
