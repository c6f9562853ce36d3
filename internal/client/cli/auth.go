package cli

import (
	"context"
	"fmt"

	"github.com/OscarDom1/community-resource-platform/internal/client/api"
)

func (a *App) Register(ctx context.Context) error {
	name, err := GetSimpleText(a.reader, "Name", a.out)
	if err != nil {
		return err
	}
	email, err := GetSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.reader, "Password", a.out)
	if err != nil {
		return err
	}
	confirm, err := GetPassword(a.reader, "Repeat password", a.out)
	if err != nil {
		return err
	}
	if password != confirm {
		a.println("Passwords do not match.")
		return fmt.Errorf("passwords do not match")
	}

	u, err := a.api.Register(ctx, name, email, password)
	if err != nil {
		return a.report(err)
	}
	a.println("Registered", u.Email, "- you can log in now.")
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.reader, "Password", a.out)
	if err != nil {
		return err
	}

	res, err := a.api.Login(ctx, email, password)
	if err != nil {
		a.token, a.user = "", nil
		return a.report(err)
	}
	a.token, a.user = res.Token, res.User
	if err := a.tokens.Save(res.Token); err != nil {
		a.println("Warning: session not saved:", err)
	}
	a.println("Logged in as", res.User.Name, "until", res.ExpiresAt.Local().Format("2006-01-02 15:04"))
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.dropSession()
	a.println("Logged out.")
	return nil
}

func (a *App) Me(ctx context.Context) error {
	if !a.requireLogin() {
		return nil
	}
	u, err := a.api.Me(ctx, a.token)
	if err != nil {
		return a.report(err)
	}
	a.user = u
	a.println(fmt.Sprintf("%s <%s>\nid: %s\nsince: %s", u.Name, u.Email, u.ID, u.CreatedAt.Format("2006-01-02")))
	return nil
}

// Profile edits the caller's name, email or password.
func (a *App) Profile(ctx context.Context) error {
	if !a.requireLogin() {
		return nil
	}
	var upd api.UserUpdate
	var err error
	if upd.Name, err = GetOptionalText(a.reader, "New name", a.out); err != nil {
		return err
	}
	if upd.Email, err = GetOptionalText(a.reader, "New email", a.out); err != nil {
		return err
	}
	pw, err := GetPassword(a.reader, "New password (empty to keep)", a.out)
	if err != nil {
		return err
	}
	if pw != "" {
		upd.Password = &pw
	}

	u, err := a.api.UpdateUser(ctx, a.token, a.user.ID, upd)
	if err != nil {
		return a.report(err)
	}
	a.user = u
	a.println("Profile updated.")
	return nil
}
