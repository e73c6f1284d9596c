package school

import "github.com/darasahq/darasa/core/user"

// Actions and resources the authorization policy knows about.
type (
	Action   string
	Resource string
)

const (
	ActionList   Action = "list"
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionSubmit Action = "submit"
)

const (
	ResourceStudent    Resource = "student"
	ResourceTeacher    Resource = "teacher"
	ResourceCourse     Resource = "course"
	ResourceAttendance Resource = "attendance"
	ResourceGrade      Resource = "grade"
	ResourceReportCard Resource = "reportcard"
	ResourceMessage    Resource = "message"
)

// Denial reasons surfaced to callers. Fixed strings; no internal detail.
const (
	ReasonPermissionDenied = "permission denied"
	ReasonClassMismatch    = "class mismatch"
)

type (
	// AccessRequest describes an intended operation. For class-scoped targets
	// (grade creation, report card access) StudentID is the owning student
	// and Class is that student's class.
	AccessRequest struct {
		Action    Action
		Resource  Resource
		StudentID string
		Class     string
	}

	Decision struct {
		Allowed bool
		Reason  string
	}
)

func allow() Decision             { return Decision{Allowed: true} }
func deny(reason string) Decision { return Decision{Reason: reason} }

// Decide maps (identity, action, target) to allow/deny. It is pure: no
// lookups, no side effects; callers resolve the target's class beforehand.
func Decide(ident user.Identity, req AccessRequest) Decision {
	switch req.Resource {
	case ResourceStudent, ResourceTeacher:
		switch req.Action {
		case ActionCreate:
			if ident.IsAdmin() {
				return allow()
			}
		case ActionList:
			if ident.IsAdmin() || ident.IsTeacher() {
				return allow()
			}
		}
		return deny(ReasonPermissionDenied)

	case ResourceCourse, ResourceAttendance:
		if req.Action == ActionCreate && !(ident.IsAdmin() || ident.IsTeacher()) {
			return deny(ReasonPermissionDenied)
		}
		return allow()

	case ResourceGrade:
		if req.Action == ActionCreate {
			if !ident.IsTeacher() {
				return deny(ReasonPermissionDenied)
			}
			if req.Class != ident.Class {
				return deny(ReasonClassMismatch)
			}
		}
		// listing is open to all roles; students get a projection to their
		// own records at the service level, not a denial here.
		return allow()

	case ResourceReportCard:
		switch req.Action {
		case ActionRead:
			if ident.IsStudent() && ident.ID != req.StudentID {
				return deny(ReasonPermissionDenied)
			}
			return allow()
		case ActionSubmit:
			if ident.IsAdmin() {
				return allow()
			}
			if ident.IsTeacher() {
				if req.Class != ident.Class {
					return deny(ReasonClassMismatch)
				}
				return allow()
			}
		}
		return deny(ReasonPermissionDenied)

	case ResourceMessage:
		return allow()
	}
	return deny(ReasonPermissionDenied)
}
