package tests

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/darasahq/darasa/core/school"
	"github.com/darasahq/darasa/core/user"
	testutil "github.com/darasahq/darasa/tests"
)

var (
	adminUser    = user.User{ID: "1", Username: "admin", Role: user.RoleAdmin}
	teacherUser  = user.User{ID: "2", Username: "teacher1", Role: user.RoleTeacher, Class: "10th"}
	teacher11th  = user.User{ID: "9", Username: "teacher2", Role: user.RoleTeacher, Class: "11th"}
	errForbidden = httpErr{Error: "permission denied"}
)

func TestSchoolApi_authRequired(t *testing.T) {
	env := setup(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/v1/students"},
		{http.MethodPost, "/v1/students"},
		{http.MethodGet, "/v1/grades"},
		{http.MethodPost, "/v1/grades"},
		{http.MethodGet, "/v1/report-cards/s1"},
		{http.MethodPost, "/v1/report-cards/s1/submit"},
		{http.MethodGet, "/v1/messages"},
		{http.MethodPost, "/v1/messages"},
	}

	for _, p := range paths {
		t.Run(p.method+" "+p.path, func(t *testing.T) {
			tt := httpTest{wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)}
			req, rec := newRequest(p.method, p.path)
			env.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func TestSchoolApi_students(t *testing.T) {
	env := setup(t)

	john := testutil.CreateStudent(t, env.schoolRepo, "John Doe", "john@example.com", "A", "10th")
	studentToken := env.studentToken(t, john)
	newStudent := marchallObj(t, map[string]string{
		"name": "Jane Roe", "email": "jane@example.com", "grade": "B", "class": "11th",
	})

	tests := []httpTest{
		{
			name:     "student cannot list students",
			method:   http.MethodGet,
			token:    studentToken,
			wantCode: http.StatusForbidden,
			wantData: marchallObj(t, errForbidden),
		},
		{
			name:     "teacher lists students",
			method:   http.MethodGet,
			token:    env.getToken(t, teacherUser),
			wantCode: http.StatusOK,
			wantData: marchallList(t, john),
		},
		{
			name:     "teacher cannot create a student",
			method:   http.MethodPost,
			token:    env.getToken(t, teacherUser),
			body:     newStudent,
			wantCode: http.StatusForbidden,
			wantData: marchallObj(t, errForbidden),
		},
		{
			name:     "admin creates a student",
			method:   http.MethodPost,
			token:    env.getToken(t, adminUser),
			body:     newStudent,
			wantCode: http.StatusCreated,
			extra:    "Jane Roe",
		},
		{
			name:     "invalid payload",
			method:   http.MethodPost,
			token:    env.getToken(t, adminUser),
			body:     marchallObj(t, map[string]string{"name": "X", "email": "not-an-email", "grade": "A", "class": "10th"}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"email": "email must be a valid email address"}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, "/v1/students", tt.token, tt.body)
			env.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)

			if wantName, ok := tt.extra.(string); ok {
				var s school.Student
				if err := json.Unmarshal(rec.Body.Bytes(), &s); err != nil {
					t.Fatalf("failed to unmarshal response: %v", err)
				}
				if s.ID == "" {
					t.Error("created student has no id")
				}
				if s.Name != wantName {
					t.Errorf("name = %q; want %q", s.Name, wantName)
				}
			}
		})
	}
}

func TestSchoolApi_grades(t *testing.T) {
	env := setup(t)

	john := testutil.CreateStudent(t, env.schoolRepo, "John Doe", "john@example.com", "A", "10th")
	jane := testutil.CreateStudent(t, env.schoolRepo, "Jane Roe", "jane@example.com", "B", "11th")
	testutil.CreateGrade(t, env.schoolRepo, john.ID, school.SequenceFirst, 70)
	testutil.CreateGrade(t, env.schoolRepo, jane.ID, school.SequenceFirst, 55)

	gradeBody := func(studentID string, seq string, score float64) []byte {
		return marchallObj(t, map[string]interface{}{"studentId": studentID, "sequence": seq, "grade": score})
	}

	tests := []httpTest{
		{
			name:     "teacher grades a student in their class",
			method:   http.MethodPost,
			token:    env.getToken(t, teacherUser),
			body:     gradeBody(john.ID, "second", 90),
			wantCode: http.StatusCreated,
		},
		{
			name:     "class mismatch",
			method:   http.MethodPost,
			token:    env.getToken(t, teacherUser),
			body:     gradeBody(jane.ID, "second", 90),
			wantCode: http.StatusForbidden,
			wantData: marchallObj(t, httpErr{Error: "class mismatch"}),
		},
		{
			name:     "unknown student",
			method:   http.MethodPost,
			token:    env.getToken(t, teacherUser),
			body:     gradeBody("ghost", "second", 90),
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "student not found"}),
		},
		{
			name:     "admin cannot create grades",
			method:   http.MethodPost,
			token:    env.getToken(t, adminUser),
			body:     gradeBody(john.ID, "second", 90),
			wantCode: http.StatusForbidden,
			wantData: marchallObj(t, errForbidden),
		},
		{
			name:     "unknown sequence label",
			method:   http.MethodPost,
			token:    env.getToken(t, teacherUser),
			body:     gradeBody(john.ID, "sixth", 90),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"sequence": "invalid grading sequence"}),
		},
		{
			name:     "score above 100",
			method:   http.MethodPost,
			token:    env.getToken(t, teacherUser),
			body:     gradeBody(john.ID, "second", 101),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"grade": "grade must be 100 or less"}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, "/v1/grades", tt.token, tt.body)
			env.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("grading refreshes the report card", func(t *testing.T) {
		rc, err := env.schoolRepo.GetReportCardByStudentID(john.ID)
		if err != nil {
			t.Fatalf("GetReportCardByStudentID() failed: %v", err)
		}
		if got := rc.Sequences[school.SequenceSecond]; got != 90 {
			t.Errorf("second sequence average = %v; want 90", got)
		}
		if rc.Average != 80 {
			t.Errorf("average = %v; want 80", rc.Average)
		}
	})

	t.Run("student only sees their own grades", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/grades", env.studentToken(t, john))
		env.app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; want %v", rec.Code, http.StatusOK)
		}
		var grades []school.Grade
		if err := json.Unmarshal(rec.Body.Bytes(), &grades); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
		if len(grades) != 2 {
			t.Fatalf("len(grades) = %v; want 2", len(grades))
		}
		for _, g := range grades {
			if g.StudentID != john.ID {
				t.Errorf("leaked grade for student %v", g.StudentID)
			}
		}
	})

	t.Run("teacher sees every grade", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/grades", env.getToken(t, teacherUser))
		env.app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; want %v", rec.Code, http.StatusOK)
		}
		var grades []school.Grade
		if err := json.Unmarshal(rec.Body.Bytes(), &grades); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
		if len(grades) != 3 {
			t.Errorf("len(grades) = %v; want 3", len(grades))
		}
	})
}

func TestSchoolApi_reportCards(t *testing.T) {
	env := setup(t)

	john := testutil.CreateStudent(t, env.schoolRepo, "John Doe", "john@example.com", "A", "10th")
	jane := testutil.CreateStudent(t, env.schoolRepo, "Jane Roe", "jane@example.com", "B", "11th")
	testutil.CreateGrade(t, env.schoolRepo, john.ID, school.SequenceFirst, 80)
	johnCard, err := env.schoolRepo.UpsertReportCard(school.ComputeReportCard(john.ID, mustStudentGrades(t, env, john.ID)))
	if err != nil {
		t.Fatalf("UpsertReportCard() failed: %v", err)
	}

	tests := []httpTest{
		{
			name:     "student reads their own report card",
			method:   http.MethodGet,
			path:     "/v1/report-cards/" + john.ID,
			token:    env.studentToken(t, john),
			wantCode: http.StatusOK,
			wantData: marchallObj(t, johnCard),
		},
		{
			name:     "student cannot read another's report card",
			method:   http.MethodGet,
			path:     "/v1/report-cards/" + john.ID,
			token:    env.studentToken(t, jane),
			wantCode: http.StatusForbidden,
			wantData: marchallObj(t, errForbidden),
		},
		{
			name:     "missing report card",
			method:   http.MethodGet,
			path:     "/v1/report-cards/" + jane.ID,
			token:    env.getToken(t, adminUser),
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "report card not found"}),
		},
		{
			name:     "student cannot submit",
			method:   http.MethodPost,
			path:     "/v1/report-cards/" + john.ID + "/submit",
			token:    env.studentToken(t, john),
			wantCode: http.StatusForbidden,
			wantData: marchallObj(t, errForbidden),
		},
		{
			name:     "submit with class mismatch",
			method:   http.MethodPost,
			path:     "/v1/report-cards/" + john.ID + "/submit",
			token:    env.getToken(t, teacher11th),
			wantCode: http.StatusForbidden,
			wantData: marchallObj(t, httpErr{Error: "class mismatch"}),
		},
		{
			name:     "submit a missing report card",
			method:   http.MethodPost,
			path:     "/v1/report-cards/" + jane.ID + "/submit",
			token:    env.getToken(t, adminUser),
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "report card not found"}),
		},
		{
			name:     "teacher submits for their class",
			method:   http.MethodPost,
			path:     "/v1/report-cards/" + john.ID + "/submit",
			token:    env.getToken(t, teacherUser),
			wantCode: http.StatusOK,
			extra:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token)
			env.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)

			if wantSubmitted, ok := tt.extra.(bool); ok {
				var rc school.ReportCard
				if err := json.Unmarshal(rec.Body.Bytes(), &rc); err != nil {
					t.Fatalf("failed to unmarshal response: %v", err)
				}
				if rc.Submitted != wantSubmitted {
					t.Errorf("submitted = %v; want %v", rc.Submitted, wantSubmitted)
				}
			}
		})
	}
}

func TestSchoolApi_messages(t *testing.T) {
	env := setup(t)

	john := testutil.CreateStudent(t, env.schoolRepo, "John Doe", "john@example.com", "A", "10th")
	token := env.studentToken(t, john)

	t.Run("sender and timestamp are server-stamped", func(t *testing.T) {
		// spoofed senderId and timestamp must be discarded
		body := marchallObj(t, map[string]interface{}{
			"message":   "hello class",
			"senderId":  "somebody-else",
			"timestamp": "1970-01-01T00:00:00Z",
		})
		req, rec := newAuthRequest(http.MethodPost, "/v1/messages", token, body)
		env.app.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("code = %v; want %v: %s", rec.Code, http.StatusCreated, rec.Body.String())
		}

		var msg school.Message
		if err := json.Unmarshal(rec.Body.Bytes(), &msg); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
		if msg.SenderID != john.ID {
			t.Errorf("senderId = %q; want %q", msg.SenderID, john.ID)
		}
		if msg.Body != "hello class" {
			t.Errorf("message = %q; want %q", msg.Body, "hello class")
		}
		if time.Since(msg.Timestamp) > time.Minute {
			t.Errorf("timestamp not freshly stamped: %v", msg.Timestamp)
		}
	})

	t.Run("blank message rejected", func(t *testing.T) {
		tt := httpTest{
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"message": "this field cannot be blank"}),
		}
		req, rec := newAuthRequest(http.MethodPost, "/v1/messages", token, marchallObj(t, map[string]string{"message": "   "}))
		env.app.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})

	t.Run("any role can read the board", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/messages", env.getToken(t, adminUser))
		env.app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; want %v", rec.Code, http.StatusOK)
		}
		var msgs []school.Message
		if err := json.Unmarshal(rec.Body.Bytes(), &msgs); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
		if len(msgs) != 1 {
			t.Errorf("len(msgs) = %v; want 1", len(msgs))
		}
	})
}

func mustStudentGrades(t *testing.T, env *testEnv, studentID string) []school.Grade {
	t.Helper()
	grades, err := env.schoolRepo.QueryGradesByStudentID(studentID)
	if err != nil {
		t.Fatalf("QueryGradesByStudentID() failed: %v", err)
	}
	return grades
}
