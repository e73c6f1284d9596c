package school

import (
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/darasahq/darasa/core"
)

// Sequence is one of the five fixed grading periods within a term.
type Sequence string

const (
	SequenceFirst  Sequence = "first"
	SequenceSecond Sequence = "second"
	SequenceThird  Sequence = "third"
	SequenceFourth Sequence = "fourth"
	SequenceFifth  Sequence = "fifth"
)

var Sequences = []Sequence{SequenceFirst, SequenceSecond, SequenceThird, SequenceFourth, SequenceFifth}

func KnownSequence(s Sequence) bool {
	for _, seq := range Sequences {
		if s == seq {
			return true
		}
	}
	return false
}

type (
	Student struct {
		ID         string `json:"id"`
		Name       string `json:"name"`
		Email      string `json:"email"`
		GradeLevel string `json:"grade"`
		Class      string `json:"class"`
	}

	Teacher struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		Email   string `json:"email"`
		Subject string `json:"subject"`
		Class   string `json:"class"`
	}

	Course struct {
		ID        string `json:"id"`
		Name      string `json:"name"`
		TeacherID string `json:"teacherId,omitempty"`
		Class     string `json:"class"`
	}

	Attendance struct {
		ID        string `json:"id"`
		StudentID string `json:"studentId"`
		Date      string `json:"date"`
		Status    string `json:"status"`
	}

	Grade struct {
		ID        string   `json:"id"`
		StudentID string   `json:"studentId"`
		Sequence  Sequence `json:"sequence"`
		Score     float64  `json:"grade"`
	}

	// Message records are stamped server-side: SenderID and Timestamp always
	// come from the verified caller and the clock, never from the payload.
	Message struct {
		ID        string    `json:"id"`
		SenderID  string    `json:"senderId"`
		Body      string    `json:"message"`
		Timestamp time.Time `json:"timestamp"`
	}

	// ReportCard is the derived per-student aggregate. Sequences only holds
	// keys for sequences that have at least one grade.
	ReportCard struct {
		StudentID string               `json:"studentId"`
		Sequences map[Sequence]float64 `json:"sequences"`
		Average   float64              `json:"average"`
		Submitted bool                 `json:"submitted"`
	}
)

// Creation payloads. These double as the per-entity field allowlist:
// anything not declared here never reaches the store.

type NewStudent struct {
	Name       string `json:"name" validate:"required,notblank"`
	Email      string `json:"email" validate:"required,email"`
	GradeLevel string `json:"grade" validate:"required"`
	Class      string `json:"class" validate:"required"`
}

func (ns *NewStudent) Validate(validate *validator.Validate) error {
	ns.Name = core.CleanString(ns.Name)
	ns.Email = core.CleanString(ns.Email, true /* lower */)
	ns.GradeLevel = core.CleanString(ns.GradeLevel)
	ns.Class = core.CleanString(ns.Class)
	return validate.Struct(ns)
}

type NewTeacher struct {
	Name    string `json:"name" validate:"required,notblank"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required"`
	Class   string `json:"class" validate:"required"`
}

func (nt *NewTeacher) Validate(validate *validator.Validate) error {
	nt.Name = core.CleanString(nt.Name)
	nt.Email = core.CleanString(nt.Email, true /* lower */)
	nt.Subject = core.CleanString(nt.Subject)
	nt.Class = core.CleanString(nt.Class)
	return validate.Struct(nt)
}

type NewCourse struct {
	Name      string `json:"name" validate:"required,notblank"`
	TeacherID string `json:"teacherId"`
	Class     string `json:"class" validate:"required"`
}

func (nc *NewCourse) Validate(validate *validator.Validate) error {
	nc.Name = core.CleanString(nc.Name)
	nc.Class = core.CleanString(nc.Class)
	return validate.Struct(nc)
}

type NewAttendance struct {
	StudentID string `json:"studentId" validate:"required"`
	Date      string `json:"date" validate:"required"`
	Status    string `json:"status" validate:"required,oneof=present absent late"`
}

func (na *NewAttendance) Validate(validate *validator.Validate) error {
	na.Status = core.CleanString(na.Status, true /* lower */)
	return validate.Struct(na)
}

type NewGrade struct {
	StudentID string   `json:"studentId" validate:"required"`
	Sequence  Sequence `json:"sequence" validate:"required,sequence"`
	Score     float64  `json:"grade" validate:"min=0,max=100"`
}

func (ng *NewGrade) Validate(validate *validator.Validate) error {
	return validate.Struct(ng)
}

type NewMessage struct {
	Body string `json:"message" validate:"required,notblank"`
}

func (nm *NewMessage) Validate(validate *validator.Validate) error {
	return validate.Struct(nm)
}

// custom validation tags
var (
	sequenceTag  = "sequence"
	sequenceText = "invalid grading sequence"
)

func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(sequenceTag, sequenceValidation)
	core.RegisterCustomTranslation(validate, translator, sequenceTag, sequenceText)
}

func sequenceValidation(fl validator.FieldLevel) bool {
	switch v := fl.Field().Interface().(type) {
	case Sequence:
		return KnownSequence(v)
	case string:
		return KnownSequence(Sequence(v))
	}
	return false
}
