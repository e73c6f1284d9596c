package user

import "time"

// SeedUsers returns the built-in bootstrap accounts used when no stored
// users exist: one admin, one teacher and one student, with fixed short ids.
func SeedUsers() []User {
	now := time.Now().UTC()
	mk := func(id, uname, pwd, role, class string) User {
		usr := User{
			ID:        id,
			Username:  uname,
			Role:      role,
			Class:     class,
			CreatedAt: now,
			UpdatedAt: now,
		}
		_ = usr.SetPassword(pwd)
		return usr
	}
	return []User{
		mk("1", "admin", "admin123", RoleAdmin, ""),
		mk("2", "teacher1", "teacher123", RoleTeacher, "10th"),
		mk("3", "student1", "student123", RoleStudent, "10th"),
	}
}
