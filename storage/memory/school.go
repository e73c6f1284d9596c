package memorydb

import (
	"github.com/google/uuid"

	"github.com/darasahq/darasa/core/school"
)

type schoolRepository struct {
	db *DB
}

var _ school.Repository = (*schoolRepository)(nil) // interface compliance check

func NewSchoolRepository(db *DB) school.Repository {
	return &schoolRepository{db: db}
}

// Students

func (repo *schoolRepository) CreateStudent(s school.Student) (school.Student, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	s.ID = uuid.New().String()
	repo.db.students = append(repo.db.students, s)
	if err := repo.db.persist(); err != nil {
		return school.Student{}, err
	}
	return s, nil
}

func (repo *schoolRepository) QueryAllStudents() ([]school.Student, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	students := make([]school.Student, len(repo.db.students))
	copy(students, repo.db.students)
	return students, nil
}

func (repo *schoolRepository) GetStudentByID(id string) (school.Student, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	for _, s := range repo.db.students {
		if s.ID == id {
			return s, nil
		}
	}
	return school.Student{}, school.ErrStudentNotFound
}

// Teachers

func (repo *schoolRepository) CreateTeacher(t school.Teacher) (school.Teacher, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	t.ID = uuid.New().String()
	repo.db.teachers = append(repo.db.teachers, t)
	if err := repo.db.persist(); err != nil {
		return school.Teacher{}, err
	}
	return t, nil
}

func (repo *schoolRepository) QueryAllTeachers() ([]school.Teacher, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	teachers := make([]school.Teacher, len(repo.db.teachers))
	copy(teachers, repo.db.teachers)
	return teachers, nil
}

// Courses

func (repo *schoolRepository) CreateCourse(c school.Course) (school.Course, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	c.ID = uuid.New().String()
	repo.db.courses = append(repo.db.courses, c)
	if err := repo.db.persist(); err != nil {
		return school.Course{}, err
	}
	return c, nil
}

func (repo *schoolRepository) QueryAllCourses() ([]school.Course, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	courses := make([]school.Course, len(repo.db.courses))
	copy(courses, repo.db.courses)
	return courses, nil
}

// Attendance

func (repo *schoolRepository) CreateAttendance(a school.Attendance) (school.Attendance, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	a.ID = uuid.New().String()
	repo.db.attendance = append(repo.db.attendance, a)
	if err := repo.db.persist(); err != nil {
		return school.Attendance{}, err
	}
	return a, nil
}

func (repo *schoolRepository) QueryAllAttendance() ([]school.Attendance, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	attendance := make([]school.Attendance, len(repo.db.attendance))
	copy(attendance, repo.db.attendance)
	return attendance, nil
}

// Grades

func (repo *schoolRepository) CreateGrade(g school.Grade) (school.Grade, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	g.ID = uuid.New().String()
	repo.db.grades = append(repo.db.grades, g)
	if err := repo.db.persist(); err != nil {
		return school.Grade{}, err
	}
	return g, nil
}

func (repo *schoolRepository) QueryAllGrades() ([]school.Grade, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	grades := make([]school.Grade, len(repo.db.grades))
	copy(grades, repo.db.grades)
	return grades, nil
}

func (repo *schoolRepository) QueryGradesByStudentID(studentID string) ([]school.Grade, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	var grades []school.Grade
	for _, g := range repo.db.grades {
		if g.StudentID == studentID {
			grades = append(grades, g)
		}
	}
	return grades, nil
}

// Report cards

func (repo *schoolRepository) UpsertReportCard(rc school.ReportCard) (school.ReportCard, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	replaced := false
	for i, orig := range repo.db.reportCards {
		if orig.StudentID == rc.StudentID {
			repo.db.reportCards[i] = rc
			replaced = true
			break
		}
	}
	if !replaced {
		repo.db.reportCards = append(repo.db.reportCards, rc)
	}
	if err := repo.db.persist(); err != nil {
		return school.ReportCard{}, err
	}
	return rc, nil
}

func (repo *schoolRepository) GetReportCardByStudentID(studentID string) (school.ReportCard, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	for _, rc := range repo.db.reportCards {
		if rc.StudentID == studentID {
			return rc, nil
		}
	}
	return school.ReportCard{}, school.ErrReportCardNotFound
}

func (repo *schoolRepository) SetReportCardSubmitted(studentID string, submitted bool) (school.ReportCard, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	for i, rc := range repo.db.reportCards {
		if rc.StudentID == studentID {
			rc.Submitted = submitted
			repo.db.reportCards[i] = rc
			if err := repo.db.persist(); err != nil {
				return school.ReportCard{}, err
			}
			return rc, nil
		}
	}
	return school.ReportCard{}, school.ErrReportCardNotFound
}

// Messages

func (repo *schoolRepository) CreateMessage(m school.Message) (school.Message, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	m.ID = uuid.New().String()
	repo.db.messages = append(repo.db.messages, m)
	if err := repo.db.persist(); err != nil {
		return school.Message{}, err
	}
	return m, nil
}

func (repo *schoolRepository) QueryAllMessages() ([]school.Message, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	messages := make([]school.Message, len(repo.db.messages))
	copy(messages, repo.db.messages)
	return messages, nil
}
