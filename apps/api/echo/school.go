package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/darasahq/darasa/core/school"
)

type schoolApi struct {
	svc      *school.Service
	validate *validator.Validate
}

func registerSchoolAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := schoolApi{
		svc:      deps.SchoolSvc,
		validate: deps.Validate,
	}

	ag := g.Group("", jwt)

	ag.GET("/students", api.listStudents)
	ag.POST("/students", api.createStudent)

	ag.GET("/teachers", api.listTeachers)
	ag.POST("/teachers", api.createTeacher)

	ag.GET("/courses", api.listCourses)
	ag.POST("/courses", api.createCourse)

	ag.GET("/attendance", api.listAttendance)
	ag.POST("/attendance", api.createAttendance)

	ag.GET("/grades", api.listGrades)
	ag.POST("/grades", api.createGrade)

	ag.GET("/report-cards/:studentId", api.retrieveReportCard)
	ag.POST("/report-cards/:studentId/submit", api.submitReportCard)

	ag.GET("/messages", api.listMessages)
	ag.POST("/messages", api.createMessage)
}

// Students

func (api *schoolApi) listStudents(ctx echo.Context) error {
	ident, err := getContextIdentity(ctx)
	if err != nil {
		return err
	}
	students, err := api.svc.ListStudents(ident)
	if err != nil {
		return errors.Wrap(err, "listing students")
	}
	if students == nil {
		students = []school.Student{}
	}
	return ctx.JSON(http.StatusOK, students)
}

func (api *schoolApi) createStudent(ctx echo.Context) error {
	var data school.NewStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudent")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	ident, err := getContextIdentity(ctx)
	if err != nil {
		return err
	}
	student, err := api.svc.CreateStudent(ident, data)
	if err != nil {
		return errors.Wrap(err, "creating student")
	}
	return ctx.JSON(http.StatusCreated, student)
}

// Teachers

func (api *schoolApi) listTeachers(ctx echo.Context) error {
	ident, err := getContextIdentity(ctx)
	if err != nil {
		return err
	}
	teachers, err := api.svc.ListTeachers(ident)
	if err != nil {
		return errors.Wrap(err, "listing teachers")
	}
	if teachers == nil {
		teachers = []school.Teacher{}
	}
	return ctx.JSON(http.StatusOK, teachers)
}

func (api *schoolApi) createTeacher(ctx echo.Context) error {
	var data school.NewTeacher
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewTeacher")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	ident, err := getContextIdentity(ctx)
	if err != nil {
		return err
	}
	teacher, err := api.svc.CreateTeacher(ident, data)
	if err != nil {
		return errors.Wrap(err, "creating teacher")
	}
	return ctx.JSON(http.StatusCreated, teacher)
}

// Courses

func (api *schoolApi) listCourses(ctx echo.Context) error {
	ident, err := getContextIdentity(ctx)
	if err != nil {
		return err
	}
	courses, err := api.svc.ListCourses(ident)
	if err != nil {
		return errors.Wrap(err, "listing courses")
	}
	if courses == nil {
		courses = []school.Course{}
	}
	return ctx.JSON(http.StatusOK, courses)
}

func (api *schoolApi) createCourse(ctx echo.Context) error {
	var data school.NewCourse
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCourse")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	ident, err := getContextIdentity(ctx)
	if err != nil {
		return err
	}
	course, err := api.svc.CreateCourse(ident, data)
	if err != nil {
		return errors.Wrap(err, "creating course")
	}
	return ctx.JSON(http.StatusCreated, course)
}

// Attendance

func (api *schoolApi) listAttendance(ctx echo.Context) error {
	ident, err := getContextIdentity(ctx)
	if err != nil {
		return err
	}
	records, err := api.svc.ListAttendance(ident)
	if err != nil {
		return errors.Wrap(err, "listing attendance")
	}
	if records == nil {
		records = []school.Attendance{}
	}
	return ctx.JSON(http.StatusOK, records)
}

func (api *schoolApi) createAttendance(ctx echo.Context) error {
	var data school.NewAttendance
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAttendance")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	ident, err := getContextIdentity(ctx)
	if err != nil {
		return err
	}
	record, err := api.svc.CreateAttendance(ident, data)
	if err != nil {
		return errors.Wrap(err, "creating attendance record")
	}
	return ctx.JSON(http.StatusCreated, record)
}

// Grades

func (api *schoolApi) listGrades(ctx echo.Context) error {
	ident, err := getContextIdentity(ctx)
	if err != nil {
		return err
	}
	grades, err := api.svc.ListGrades(ident)
	if err != nil {
		return errors.Wrap(err, "listing grades")
	}
	if grades == nil {
		grades = []school.Grade{}
	}
	return ctx.JSON(http.StatusOK, grades)
}

func (api *schoolApi) createGrade(ctx echo.Context) error {
	var data school.NewGrade
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewGrade")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	ident, err := getContextIdentity(ctx)
	if err != nil {
		return err
	}
	grade, err := api.svc.CreateGrade(ident, data)
	if err != nil {
		return errors.Wrap(err, "creating grade")
	}
	return ctx.JSON(http.StatusCreated, grade)
}

// Report cards

func (api *schoolApi) retrieveReportCard(ctx echo.Context) error {
	ident, err := getContextIdentity(ctx)
	if err != nil {
		return err
	}
	rc, err := api.svc.GetReportCard(ident, ctx.Param("studentId"))
	if err != nil {
		return errors.Wrap(err, "retrieving report card")
	}
	return ctx.JSON(http.StatusOK, rc)
}

func (api *schoolApi) submitReportCard(ctx echo.Context) error {
	ident, err := getContextIdentity(ctx)
	if err != nil {
		return err
	}
	rc, err := api.svc.SubmitReportCard(ident, ctx.Param("studentId"))
	if err != nil {
		return errors.Wrap(err, "submitting report card")
	}
	return ctx.JSON(http.StatusOK, rc)
}

// Messages

func (api *schoolApi) listMessages(ctx echo.Context) error {
	ident, err := getContextIdentity(ctx)
	if err != nil {
		return err
	}
	messages, err := api.svc.ListMessages(ident)
	if err != nil {
		return errors.Wrap(err, "listing messages")
	}
	if messages == nil {
		messages = []school.Message{}
	}
	return ctx.JSON(http.StatusOK, messages)
}

func (api *schoolApi) createMessage(ctx echo.Context) error {
	var data school.NewMessage
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewMessage")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	ident, err := getContextIdentity(ctx)
	if err != nil {
		return err
	}
	msg, err := api.svc.CreateMessage(ident, data)
	if err != nil {
		return errors.Wrap(err, "creating message")
	}
	return ctx.JSON(http.StatusCreated, msg)
}
