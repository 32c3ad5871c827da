package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/Nandighoshbus/busticket-cli/internal/common"
)

func (a *App) Login(ctx context.Context) {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}

	password, err := GetPassword(a.out, "Enter password")
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	defer common.WipeByteArray(password)

	remember, err := GetConfirm(a.reader, "Stay logged in?", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}

	user, err := a.session.Login(ctx, email, string(password), remember)
	if err != nil {
		if errors.Is(err, common.ErrAuthenticationFailed) {
			fmt.Fprintf(a.out, "Login failed: %v\n", err)
		} else {
			fmt.Fprintf(a.out, "error: %v\n", err)
		}
		return
	}

	fmt.Fprintf(a.out, "Logged in as %s (%s)\n", user.FullName, user.Role)
	if !user.IsVerified {
		fmt.Fprintln(a.out, "Your email is not verified yet; use 'verify <token>' or 'resend'.")
	}
}

func (a *App) Logout(ctx context.Context) {
	if err := a.session.Logout(ctx); err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	fmt.Fprintln(a.out, "Logged out")
}
