package cli

import (
	"context"
	"fmt"

	"github.com/akimovd/wastepoint/internal/client/models"
	"github.com/akimovd/wastepoint/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts the user for credentials and tries to authenticate. The
// session layer surfaces success/failure notifications itself; any error is
// returned so the REPL can keep its flow.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	return a.session.Login(ctx, email, string(password))
}

// Register prompts for a role and the registration fields and attempts to
// create an account. Registration does not log the new account in.
func (a *App) Register(ctx context.Context) error {
	roleText, err := getSimpleText(a.reader, "Role (HOUSEHOLD, COLLECTOR, ADMIN)", a.out)
	if err != nil {
		return err
	}
	role := models.Role(roleText)

	reg := models.Registration{}
	if reg.FirstName, err = getSimpleText(a.reader, "First name", a.out); err != nil {
		return err
	}
	if reg.LastName, err = getSimpleText(a.reader, "Last name", a.out); err != nil {
		return err
	}
	if reg.Email, err = getSimpleText(a.reader, "Email", a.out); err != nil {
		return err
	}
	if reg.Phone, err = getSimpleText(a.reader, "Phone", a.out); err != nil {
		return err
	}
	if reg.Address, err = getSimpleText(a.reader, "Address", a.out); err != nil {
		return err
	}
	if role == models.RoleCollector {
		if reg.MunicipalityName, err = getSimpleText(a.reader, "Municipality", a.out); err != nil {
			return err
		}
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	reg.Password = string(password)

	return a.session.Register(ctx, reg, role)
}

// Logout ends the session; local state is always cleared.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	return nil
}

// Profile prints the current user record.
func (a *App) Profile(ctx context.Context) error {
	snap := a.session.Snapshot()
	if snap.User == nil {
		fmt.Fprintln(a.out, "Not logged in")
		return nil
	}
	u := snap.User
	fmt.Fprintf(a.out, "%s %s <%s>\nRole:    %s\nPhone:   %s\nAddress: %s\n",
		u.FirstName, u.LastName, u.Email, u.RoleName, u.Phone, u.Address)
	if u.MunicipalityName != "" {
		fmt.Fprintf(a.out, "Municipality: %s\n", u.MunicipalityName)
	}
	return nil
}

// UpdateProfile prompts for the fields to change (empty input keeps the
// current value) and pushes the update.
func (a *App) UpdateProfile(ctx context.Context) error {
	upd := models.ProfileUpdate{}
	var err error
	if upd.FirstName, err = getSimpleText(a.reader, "First name (empty to keep)", a.out); err != nil {
		return err
	}
	if upd.LastName, err = getSimpleText(a.reader, "Last name (empty to keep)", a.out); err != nil {
		return err
	}
	if upd.Email, err = getSimpleText(a.reader, "Email (empty to keep)", a.out); err != nil {
		return err
	}
	if upd.Phone, err = getSimpleText(a.reader, "Phone (empty to keep)", a.out); err != nil {
		return err
	}
	if upd.Address, err = getSimpleText(a.reader, "Address (empty to keep)", a.out); err != nil {
		return err
	}

	return a.session.UpdateProfile(ctx, upd)
}
