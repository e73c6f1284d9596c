package school

import (
	"errors"
	"fmt"
	"net/mail"
	"time"

	pkgerrors "github.com/pkg/errors"

	"github.com/darasahq/darasa/core"
	"github.com/darasahq/darasa/core/user"
)

var (
	// errors
	ErrStudentNotFound    = errors.New("student not found")
	ErrReportCardNotFound = errors.New("report card not found")
)

type (
	Repository interface {
		CreateStudent(s Student) (Student, error)
		QueryAllStudents() ([]Student, error)
		GetStudentByID(id string) (Student, error)

		CreateTeacher(t Teacher) (Teacher, error)
		QueryAllTeachers() ([]Teacher, error)

		CreateCourse(c Course) (Course, error)
		QueryAllCourses() ([]Course, error)

		CreateAttendance(a Attendance) (Attendance, error)
		QueryAllAttendance() ([]Attendance, error)

		CreateGrade(g Grade) (Grade, error)
		QueryAllGrades() ([]Grade, error)
		// QueryGradesByStudentID returns the student's grades in insertion order.
		QueryGradesByStudentID(studentID string) ([]Grade, error)

		// UpsertReportCard replaces the report card keyed by StudentID.
		UpsertReportCard(rc ReportCard) (ReportCard, error)
		GetReportCardByStudentID(studentID string) (ReportCard, error)
		SetReportCardSubmitted(studentID string, submitted bool) (ReportCard, error)

		CreateMessage(m Message) (Message, error)
		QueryAllMessages() ([]Message, error)
	}

	Service struct {
		repo    Repository
		mailSvc core.EmailService
	}
)

func NewService(repo Repository, mailSvc core.EmailService) *Service {
	return &Service{repo: repo, mailSvc: mailSvc}
}

func (svc *Service) decide(ident user.Identity, req AccessRequest) error {
	if d := Decide(ident, req); !d.Allowed {
		return core.NewPermissionError(d.Reason)
	}
	return nil
}

// Students

func (svc *Service) ListStudents(ident user.Identity) ([]Student, error) {
	if err := svc.decide(ident, AccessRequest{Action: ActionList, Resource: ResourceStudent}); err != nil {
		return nil, err
	}
	return svc.repo.QueryAllStudents()
}

func (svc *Service) CreateStudent(ident user.Identity, ns NewStudent) (Student, error) {
	if err := svc.decide(ident, AccessRequest{Action: ActionCreate, Resource: ResourceStudent}); err != nil {
		return Student{}, err
	}
	return svc.repo.CreateStudent(Student{
		Name:       ns.Name,
		Email:      ns.Email,
		GradeLevel: ns.GradeLevel,
		Class:      ns.Class,
	})
}

// Teachers

func (svc *Service) ListTeachers(ident user.Identity) ([]Teacher, error) {
	if err := svc.decide(ident, AccessRequest{Action: ActionList, Resource: ResourceTeacher}); err != nil {
		return nil, err
	}
	return svc.repo.QueryAllTeachers()
}

func (svc *Service) CreateTeacher(ident user.Identity, nt NewTeacher) (Teacher, error) {
	if err := svc.decide(ident, AccessRequest{Action: ActionCreate, Resource: ResourceTeacher}); err != nil {
		return Teacher{}, err
	}
	return svc.repo.CreateTeacher(Teacher{
		Name:    nt.Name,
		Email:   nt.Email,
		Subject: nt.Subject,
		Class:   nt.Class,
	})
}

// Courses

func (svc *Service) ListCourses(ident user.Identity) ([]Course, error) {
	if err := svc.decide(ident, AccessRequest{Action: ActionList, Resource: ResourceCourse}); err != nil {
		return nil, err
	}
	return svc.repo.QueryAllCourses()
}

func (svc *Service) CreateCourse(ident user.Identity, nc NewCourse) (Course, error) {
	if err := svc.decide(ident, AccessRequest{Action: ActionCreate, Resource: ResourceCourse}); err != nil {
		return Course{}, err
	}
	return svc.repo.CreateCourse(Course{
		Name:      nc.Name,
		TeacherID: nc.TeacherID,
		Class:     nc.Class,
	})
}

// Attendance

func (svc *Service) ListAttendance(ident user.Identity) ([]Attendance, error) {
	if err := svc.decide(ident, AccessRequest{Action: ActionList, Resource: ResourceAttendance}); err != nil {
		return nil, err
	}
	return svc.repo.QueryAllAttendance()
}

func (svc *Service) CreateAttendance(ident user.Identity, na NewAttendance) (Attendance, error) {
	if err := svc.decide(ident, AccessRequest{Action: ActionCreate, Resource: ResourceAttendance}); err != nil {
		return Attendance{}, err
	}
	return svc.repo.CreateAttendance(Attendance{
		StudentID: na.StudentID,
		Date:      na.Date,
		Status:    na.Status,
	})
}

// Grades

// ListGrades returns all grade records, except for student callers who only
// ever see their own. A projection, not a denial.
func (svc *Service) ListGrades(ident user.Identity) ([]Grade, error) {
	if err := svc.decide(ident, AccessRequest{Action: ActionList, Resource: ResourceGrade}); err != nil {
		return nil, err
	}
	if ident.IsStudent() {
		return svc.repo.QueryGradesByStudentID(ident.ID)
	}
	return svc.repo.QueryAllGrades()
}

// CreateGrade records a grade and synchronously recomputes the student's
// report card, replacing any previous one wholesale.
func (svc *Service) CreateGrade(ident user.Identity, ng NewGrade) (Grade, error) {
	student, err := svc.repo.GetStudentByID(ng.StudentID)
	if err != nil {
		return Grade{}, err
	}
	req := AccessRequest{
		Action:    ActionCreate,
		Resource:  ResourceGrade,
		StudentID: student.ID,
		Class:     student.Class,
	}
	if err := svc.decide(ident, req); err != nil {
		return Grade{}, err
	}

	grade, err := svc.repo.CreateGrade(Grade{
		StudentID: ng.StudentID,
		Sequence:  ng.Sequence,
		Score:     ng.Score,
	})
	if err != nil {
		return Grade{}, err
	}

	grades, err := svc.repo.QueryGradesByStudentID(ng.StudentID)
	if err != nil {
		return Grade{}, pkgerrors.Wrap(err, "querying student grades")
	}
	if _, err := svc.repo.UpsertReportCard(ComputeReportCard(ng.StudentID, grades)); err != nil {
		return Grade{}, pkgerrors.Wrap(err, "upserting report card")
	}
	return grade, nil
}

// Report cards

func (svc *Service) GetReportCard(ident user.Identity, studentID string) (ReportCard, error) {
	req := AccessRequest{Action: ActionRead, Resource: ResourceReportCard, StudentID: studentID}
	if err := svc.decide(ident, req); err != nil {
		return ReportCard{}, err
	}
	return svc.repo.GetReportCardByStudentID(studentID)
}

// SubmitReportCard marks a student's report card as submitted and notifies
// the student by email. A missing report card is NotFound, checked before
// any class-match policy evaluation.
func (svc *Service) SubmitReportCard(ident user.Identity, studentID string) (ReportCard, error) {
	if _, err := svc.repo.GetReportCardByStudentID(studentID); err != nil {
		return ReportCard{}, err
	}
	student, err := svc.repo.GetStudentByID(studentID)
	if err != nil {
		return ReportCard{}, err
	}
	req := AccessRequest{
		Action:    ActionSubmit,
		Resource:  ResourceReportCard,
		StudentID: student.ID,
		Class:     student.Class,
	}
	if err := svc.decide(ident, req); err != nil {
		return ReportCard{}, err
	}

	rc, err := svc.repo.SetReportCardSubmitted(studentID, true)
	if err != nil {
		return ReportCard{}, err
	}
	svc.notifySubmitted(student, rc)
	return rc, nil
}

func (svc *Service) notifySubmitted(student Student, rc ReportCard) {
	if svc.mailSvc == nil || student.Email == "" {
		return
	}
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:      []mail.Address{{Name: student.Name, Address: student.Email}},
		Subject: "Your report card has been submitted",
		Body: fmt.Sprintf(
			"Hi %s,\n\nYour report card has been submitted. Overall average: %.2f.\n",
			student.Name, rc.Average,
		),
	})
}

// Messages

func (svc *Service) ListMessages(ident user.Identity) ([]Message, error) {
	if err := svc.decide(ident, AccessRequest{Action: ActionList, Resource: ResourceMessage}); err != nil {
		return nil, err
	}
	return svc.repo.QueryAllMessages()
}

func (svc *Service) CreateMessage(ident user.Identity, nm NewMessage) (Message, error) {
	if err := svc.decide(ident, AccessRequest{Action: ActionCreate, Resource: ResourceMessage}); err != nil {
		return Message{}, err
	}
	return svc.repo.CreateMessage(Message{
		SenderID:  ident.ID,
		Body:      nm.Body,
		Timestamp: time.Now().UTC(),
	})
}
