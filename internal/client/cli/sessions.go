package cli

import (
	"context"
	"fmt"
)

// LoginHistory prints the recent login attempts for the account.
func (a *App) LoginHistory(ctx context.Context) {
	history, err := a.session.LoginHistory(ctx)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	if len(history) == 0 {
		fmt.Fprintln(a.out, "No login history")
		return
	}
	for _, rec := range history {
		status := "ok"
		if !rec.Success {
			status = "FAILED"
		}
		fmt.Fprintf(a.out, "%s  %-6s %-15s %s\n",
			rec.CreatedAt.Local().Format("2006-01-02 15:04"), status, rec.IPAddress, rec.UserAgent)
	}
}

// Sessions prints the active server-side sessions of the account.
func (a *App) Sessions(ctx context.Context) {
	sessions, err := a.session.Sessions(ctx)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	if len(sessions) == 0 {
		fmt.Fprintln(a.out, "No active sessions")
		return
	}
	for _, s := range sessions {
		marker := " "
		if s.Current {
			marker = "*"
		}
		fmt.Fprintf(a.out, "%s %s  %-15s expires %s  %s\n",
			marker, s.ID, s.IPAddress, s.ExpiresAt.Local().Format("2006-01-02 15:04"), s.UserAgent)
	}
	fmt.Fprintln(a.out, "* marks this device")
}

// RevokeSession revokes one server-side session by id.
func (a *App) RevokeSession(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "usage: revoke <session-id>")
		return
	}
	if err := a.session.RevokeSession(ctx, args[0]); err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	fmt.Fprintf(a.out, "Session %s revoked\n", args[0])
}
