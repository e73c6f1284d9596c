// Package memorydb implements the record store: insertion-ordered in-memory
// collections with a full-snapshot write to the blob store after every
// mutation. Mutations never interleave on a collection; the mutex only
// guards against a runtime that parallelizes handler execution.
package memorydb

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/pkg/errors"

	"github.com/darasahq/darasa/core/school"
	"github.com/darasahq/darasa/core/user"
	blobstore "github.com/darasahq/darasa/storage/blob"
)

type DB struct {
	mu    sync.RWMutex
	store blobstore.Store

	users       []user.User
	students    []school.Student
	teachers    []school.Teacher
	courses     []school.Course
	attendance  []school.Attendance
	grades      []school.Grade
	reportCards []school.ReportCard
	messages    []school.Message
}

// storedUser re-exposes the password hash that user.User hides from API
// serialization; the snapshot must round-trip it.
type storedUser struct {
	user.User
	PasswordHash []byte `json:"password_hash"`
}

type snapshot struct {
	Users       []storedUser        `json:"users"`
	Students    []school.Student    `json:"students"`
	Teachers    []school.Teacher    `json:"teachers"`
	Courses     []school.Course     `json:"courses"`
	Attendance  []school.Attendance `json:"attendance"`
	Grades      []school.Grade      `json:"grades"`
	ReportCards []school.ReportCard `json:"reportCards"`
	Messages    []school.Message    `json:"messages"`
}

// Open restores state from the blob store. Collections missing from the
// stored snapshot start empty, except users which falls back to the seed
// accounts. A nil store disables durability (tests).
func Open(store blobstore.Store) (*DB, error) {
	db := &DB{store: store}

	var snap snapshot
	if store != nil {
		data, err := store.Load(context.Background())
		if err != nil {
			return nil, errors.Wrap(err, "loading snapshot")
		}
		if len(data) > 0 {
			if err = json.Unmarshal(data, &snap); err != nil {
				return nil, errors.Wrap(err, "decoding snapshot")
			}
		}
	}

	for _, su := range snap.Users {
		usr := su.User
		usr.PasswordHash = su.PasswordHash
		db.users = append(db.users, usr)
	}
	if len(db.users) == 0 {
		db.users = user.SeedUsers()
	}
	db.students = snap.Students
	db.teachers = snap.Teachers
	db.courses = snap.Courses
	db.attendance = snap.Attendance
	db.grades = snap.Grades
	db.reportCards = snap.ReportCards
	db.messages = snap.Messages
	return db, nil
}

// persist writes the full snapshot. Callers must hold the write lock.
func (db *DB) persist() error {
	if db.store == nil {
		return nil
	}

	snap := snapshot{
		Users:       make([]storedUser, 0, len(db.users)),
		Students:    db.students,
		Teachers:    db.teachers,
		Courses:     db.courses,
		Attendance:  db.attendance,
		Grades:      db.grades,
		ReportCards: db.reportCards,
		Messages:    db.messages,
	}
	for _, usr := range db.users {
		snap.Users = append(snap.Users, storedUser{User: usr, PasswordHash: usr.PasswordHash})
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return errors.Wrap(err, "encoding snapshot")
	}
	return errors.Wrap(db.store.Save(context.Background(), data), "saving snapshot")
}
