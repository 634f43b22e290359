package cli

import (
	"context"
	"fmt"
)

// getSimpleText, getPassword and confirm are indirections used to facilitate
// testing. They point to interactive input helpers and can be swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	confirm       = Confirm
)

// SignUp prompts for email, username and the password twice, then creates
// the account and signs it in.
func (a *App) SignUp(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, "Enter password", a.out)
	if err != nil {
		return err
	}
	confirmPassword, err := getPassword(a.reader, "Confirm password", a.out)
	if err != nil {
		return err
	}

	u, err := a.account.SignUp(ctx, email, username, password, confirmPassword)
	if err != nil {
		return err
	}

	printlnFn(fmt.Sprintf("Welcome, %s!", u.Username))
	return nil
}

// Login prompts for credentials and signs the user in, then shows the list.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, "Enter password", a.out)
	if err != nil {
		return err
	}

	u, err := a.account.Login(ctx, email, password)
	if err != nil {
		return err
	}

	printlnFn(fmt.Sprintf("Logged in as %s", u.Username))
	return a.List(ctx)
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.account.Logout(ctx); err != nil {
		return err
	}
	printlnFn("Logged out")
	return nil
}
