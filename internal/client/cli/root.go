package cli

import (
	"context"
	"fmt"
	"strings"
)

func (a *App) prompt() string {
	if u := a.session.CurrentUser(); u != nil {
		return fmt.Sprintf("busticket (%s)> ", u.Email)
	}
	return "busticket> "
}

// Root runs the command loop until the user exits or input ends.
func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to the busticket CLI (type 'help' for commands)")

	for {
		fmt.Fprint(a.out, a.prompt())

		line, err := a.reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			a.Help()
		case "register":
			a.Register(ctx)
		case "login":
			a.Login(ctx)
		case "logout":
			a.Logout(ctx)
		case "whoami":
			a.WhoAmI()
		case "profile":
			a.Profile(ctx)
		case "update":
			a.UpdateProfile(ctx)
		case "passwd":
			a.ChangePassword(ctx)
		case "forgot":
			a.ForgotPassword(ctx)
		case "verify":
			a.VerifyEmail(ctx, args)
		case "resend":
			a.ResendVerification(ctx)
		case "history":
			a.LoginHistory(ctx)
		case "sessions":
			a.Sessions(ctx)
		case "revoke":
			a.RevokeSession(ctx, args)
		case "exit", "quit":
			return
		default:
			fmt.Fprintf(a.out, "unknown command %q, type 'help'\n", cmd)
		}
	}
}

func (a *App) Help() {
	if a.session.IsAuthenticated() {
		fmt.Fprintln(a.out, "Available commands: whoami, profile, update, passwd, verify <token>, resend, history, sessions, revoke <id>, logout, exit")
	} else {
		fmt.Fprintln(a.out, "Available commands: register, login, forgot, exit")
	}
}
