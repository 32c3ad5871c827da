package cli

import (
	"context"
	"fmt"

	"github.com/Nandighoshbus/busticket-cli/internal/client/api"
	"github.com/Nandighoshbus/busticket-cli/internal/client/models"
	"github.com/Nandighoshbus/busticket-cli/internal/common"
)

// WhoAmI prints the locally cached account summary without a network call.
func (a *App) WhoAmI() {
	user := a.session.CurrentUser()
	if user == nil {
		fmt.Fprintln(a.out, "Not logged in")
		return
	}
	a.printUser(user)
}

// Profile fetches the account profile from the server and prints it.
func (a *App) Profile(ctx context.Context) {
	user, err := a.session.Profile(ctx)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	a.printUser(user)
}

// UpdateProfile prompts for new profile values and submits the changed ones.
// Empty answers keep the current value.
func (a *App) UpdateProfile(ctx context.Context) {
	fullName, err := GetSimpleText(a.reader, "New full name (empty to keep)", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	phone, err := GetSimpleText(a.reader, "New phone (empty to keep)", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}

	var update api.ProfileUpdate
	if fullName != "" {
		update.FullName = &fullName
	}
	if phone != "" {
		update.Phone = &phone
	}
	if update.FullName == nil && update.Phone == nil {
		fmt.Fprintln(a.out, "Nothing to update")
		return
	}

	user, err := a.session.UpdateProfile(ctx, update)
	if err != nil {
		fmt.Fprintf(a.out, "Update failed: %v\n", err)
		return
	}
	fmt.Fprintln(a.out, "Profile updated")
	a.printUser(user)
}

func (a *App) ChangePassword(ctx context.Context) {
	current, err := GetPassword(a.out, "Current password")
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	defer common.WipeByteArray(current)

	next, err := GetPassword(a.out, "New password")
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	defer common.WipeByteArray(next)

	if err := a.session.ChangePassword(ctx, string(current), string(next)); err != nil {
		fmt.Fprintf(a.out, "Password change failed: %v\n", err)
		return
	}
	fmt.Fprintln(a.out, "Password changed")
}

func (a *App) ForgotPassword(ctx context.Context) {
	email, err := GetSimpleText(a.reader, "Enter account email", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	if err := a.session.ForgotPassword(ctx, email); err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	fmt.Fprintln(a.out, "If the account exists, a reset mail is on its way")
}

// VerifyEmail submits the verification token received by mail.
func (a *App) VerifyEmail(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "usage: verify <token>")
		return
	}
	if err := a.session.VerifyEmail(ctx, args[0]); err != nil {
		fmt.Fprintf(a.out, "Verification failed: %v\n", err)
		return
	}
	fmt.Fprintln(a.out, "Email verified")
}

func (a *App) ResendVerification(ctx context.Context) {
	if err := a.session.ResendVerification(ctx); err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	fmt.Fprintln(a.out, "Verification mail sent")
}

func (a *App) printUser(user *models.User) {
	fmt.Fprintf(a.out, "%s <%s>\n", user.FullName, user.Email)
	fmt.Fprintf(a.out, "  role:     %s\n", user.Role)
	if user.Phone != "" {
		fmt.Fprintf(a.out, "  phone:    %s\n", user.Phone)
	}
	fmt.Fprintf(a.out, "  verified: %t\n", user.IsVerified)
	if user.LastLogin != nil {
		fmt.Fprintf(a.out, "  last login: %s\n", user.LastLogin.Local().Format("2006-01-02 15:04"))
	}
}
