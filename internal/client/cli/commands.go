package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophauth/internal/client/client"
	"github.com/dmitrijs2005/gophauth/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

func (a *App) readPassword() (string, error) {
	pw, err := getPassword(a.out)
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(pw)
	return string(pw), nil
}

// Register prompts for name, email and password, creates the account and
// stores the returned token.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := a.readPassword()
	if err != nil {
		return err
	}

	res, err := a.api.Register(ctx, name, email, password)
	if err != nil {
		return err
	}
	if err := a.tokens.Save(res.Token); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Registered as %s <%s>\n", res.User.Name, res.User.Email)
	return nil
}

// Login prompts for credentials and stores the returned token, replacing any
// previous one.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := a.readPassword()
	if err != nil {
		return err
	}

	res, err := a.api.Login(ctx, email, password)
	if err != nil {
		return err
	}
	if err := a.tokens.Save(res.Token); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Logged in as %s <%s>\n", res.User.Name, res.User.Email)
	return nil
}

// Logout revokes the stored token on the server and deletes it locally. A
// token the server already rejects is deleted as well.
func (a *App) Logout(ctx context.Context) error {
	token, err := a.tokens.Load()
	if err != nil {
		return err
	}

	err = a.api.Logout(ctx, token)
	if err != nil && !errors.Is(err, client.ErrUnauthorized) {
		return err
	}
	if cerr := a.tokens.Clear(); cerr != nil {
		return cerr
	}

	if err != nil {
		fmt.Fprintln(a.out, "Session had already expired; local token removed")
		return nil
	}
	fmt.Fprintln(a.out, "Successfully logged out")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	token, err := a.tokens.Load()
	if err != nil {
		return err
	}

	u, err := a.api.Verify(ctx, token)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s <%s> (id %d)\n", u.Name, u.Email, u.ID)
	return nil
}

func (a *App) Profile(ctx context.Context) error {
	token, err := a.tokens.Load()
	if err != nil {
		return err
	}

	u, err := a.api.Profile(ctx, token)
	if err != nil {
		return err
	}

	a.printUser(u)
	return nil
}

// Update prompts for a new name and email; empty answers keep the current
// value.
func (a *App) Update(ctx context.Context) error {
	token, err := a.tokens.Load()
	if err != nil {
		return err
	}

	name, err := getSimpleText(a.reader, "New name (empty to keep)", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "New email (empty to keep)", a.out)
	if err != nil {
		return err
	}

	var namePtr, emailPtr *string
	if name != "" {
		namePtr = &name
	}
	if email != "" {
		emailPtr = &email
	}
	if namePtr == nil && emailPtr == nil {
		fmt.Fprintln(a.out, "Nothing to update")
		return nil
	}

	u, err := a.api.UpdateProfile(ctx, token, namePtr, emailPtr)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Profile updated successfully")
	a.printUser(u)
	return nil
}

func (a *App) Ping(ctx context.Context) error {
	msg, err := a.api.Ping(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s (%s)\n", msg, a.config.ServerURL)
	return nil
}

func (a *App) printUser(u *client.User) {
	fmt.Fprintf(a.out, "ID:      %d\n", u.ID)
	fmt.Fprintf(a.out, "Name:    %s\n", u.Name)
	fmt.Fprintf(a.out, "Email:   %s\n", u.Email)
	fmt.Fprintf(a.out, "Created: %s\n", u.CreatedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(a.out, "Updated: %s\n", u.UpdatedAt.Format("2006-01-02 15:04:05 MST"))
}
