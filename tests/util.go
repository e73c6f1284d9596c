package testutil

import (
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/darasahq/darasa/core"
	"github.com/darasahq/darasa/core/school"
	"github.com/darasahq/darasa/core/user"
	memorydb "github.com/darasahq/darasa/storage/memory"
)

// NewDB opens a fresh in-memory database without durability.
func NewDB(t *testing.T) *memorydb.DB {
	t.Helper()
	db, err := memorydb.Open(nil)
	if err != nil {
		t.Fatalf("memorydb.Open() failed: %v", err)
	}
	return db
}

// NewValidator returns a validator with all app tags registered.
func NewValidator(t *testing.T) (*validator.Validate, ut.Translator) {
	t.Helper()
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")

	validate := validator.New()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)
	school.InitValidators(validate, translator)
	return validate, translator
}

func CreateUser(t *testing.T, repo user.Repository, uname, pwd, role, class string) user.User {
	t.Helper()
	now := time.Now().UTC()
	usr := user.User{
		Username:  uname,
		Role:      role,
		Class:     class,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("CreateUser() failed: %v", err)
		}
	}
	usr, err := repo.CreateUser(usr)
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}

func CreateStudent(t *testing.T, repo school.Repository, name, email, gradeLevel, class string) school.Student {
	t.Helper()
	student, err := repo.CreateStudent(school.Student{
		Name:       name,
		Email:      email,
		GradeLevel: gradeLevel,
		Class:      class,
	})
	if err != nil {
		t.Fatalf("CreateStudent() failed: %v", err)
	}
	return student
}

func CreateTeacher(t *testing.T, repo school.Repository, name, email, subject, class string) school.Teacher {
	t.Helper()
	teacher, err := repo.CreateTeacher(school.Teacher{
		Name:    name,
		Email:   email,
		Subject: subject,
		Class:   class,
	})
	if err != nil {
		t.Fatalf("CreateTeacher() failed: %v", err)
	}
	return teacher
}

func CreateGrade(t *testing.T, repo school.Repository, studentID string, seq school.Sequence, score float64) school.Grade {
	t.Helper()
	grade, err := repo.CreateGrade(school.Grade{
		StudentID: studentID,
		Sequence:  seq,
		Score:     score,
	})
	if err != nil {
		t.Fatalf("CreateGrade() failed: %v", err)
	}
	return grade
}
