package main

import (
	"fmt"

	"github.com/darasahq/darasa/core"
	"github.com/darasahq/darasa/core/user"
)

// addUser creates a user.User account.
func (cli *commandLine) addUser(uname, pwd, role, class string) error {
	uname = core.CleanString(uname, true /* lower */)
	role = core.CleanString(role, true /* lower */)
	class = core.CleanString(class)

	valid := false
	for _, r := range user.AllRoles {
		if role == r {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("invalid role %q", role)
	}
	if role != user.RoleAdmin && class == "" {
		return fmt.Errorf("class is required for role %q", role)
	}

	if _, err := cli.usrSvc.GetByUsername(uname); err == nil {
		return user.ErrUsernameExists
	} else if err != user.ErrNotFound {
		return err
	}

	_, err := cli.usrSvc.Create(user.NewUser{
		Username:        uname,
		Password:        pwd,
		PasswordConfirm: pwd,
		Role:            role,
		Class:           class,
	})
	return err
}
