package cli

import (
	"context"
	"fmt"

	"github.com/Nandighoshbus/busticket-cli/internal/client/api"
	"github.com/Nandighoshbus/busticket-cli/internal/common"
)

func (a *App) Register(ctx context.Context) {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	fullName, err := GetSimpleText(a.reader, "Enter full name", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	phone, err := GetSimpleText(a.reader, "Enter phone (optional)", a.out)
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

	terms, err := GetConfirm(a.reader, "Accept the terms of service?", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	if !terms {
		fmt.Fprintln(a.out, "Registration requires accepting the terms of service")
		return
	}

	user, err := a.session.Register(ctx, api.RegisterRequest{
		Email:         email,
		Password:      string(password),
		FullName:      fullName,
		Phone:         phone,
		TermsAccepted: true,
	})
	if err != nil {
		fmt.Fprintf(a.out, "Registration failed: %v\n", err)
		return
	}

	fmt.Fprintf(a.out, "Registered and logged in as %s\n", user.Email)
	fmt.Fprintln(a.out, "Check your inbox for the verification mail, then use 'verify <token>'.")
}
