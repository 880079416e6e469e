package echoapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/classdesk/actions"
	"github.com/trezcool/classdesk/core"
	"github.com/trezcool/classdesk/core/user"
	appfs "github.com/trezcool/classdesk/fs"
	"github.com/trezcool/classdesk/pages"
	cachesvc "github.com/trezcool/classdesk/services/cache"
	emailsvc "github.com/trezcool/classdesk/services/email"
	logsvc "github.com/trezcool/classdesk/services/logger"
	testutil "github.com/trezcool/classdesk/tests"
)

const pwd = "Passw0rd!"

type fixture struct {
	app     *Server
	svcs    *testutil.Services
	teacher user.User
	student user.User
	other   user.User
}

func setup(t *testing.T) *fixture {
	t.Helper()

	conf := core.NewTestConfig()
	logger := logsvc.NewNopLogger()
	core.ParseEmailTemplates(appfs.FS, true, logger)

	svcs := testutil.NewServices(t)
	cache := cachesvc.NewMemoryCache()
	acts := actions.New(actions.Deps{
		Validate:    svcs.Validate,
		Translator:  svcs.Translator,
		Users:       svcs.Users,
		Assignments: svcs.Assignments,
		Submissions: svcs.Submissions,
		Schedules:   svcs.Schedules,
		Leaves:      svcs.Leaves,
		Mail:        emailsvc.NewConsoleServiceMock(conf, logger),
		Revalidator: cache,
		Logger:      logger,
	})

	app := NewServer(conf, Deps{
		Users:      svcs.Users,
		Actions:    acts,
		Pages:      pages.NewService(acts, cache, cachesvc.Key, conf, logger),
		Validate:   svcs.Validate,
		Translator: svcs.Translator,
		Logger:     logger,
	})
	t.Cleanup(func() { _ = app.Close() })

	return &fixture{
		app:     app,
		svcs:    svcs,
		teacher: testutil.CreateUser(t, svcs.Users, "John Smith", "john@example.com", pwd, user.RoleTeacher),
		student: testutil.CreateUser(t, svcs.Users, "Alice Johnson", "alice@example.com", pwd, user.RoleStudent),
		other:   testutil.CreateUser(t, svcs.Users, "Bob Wilson", "bob@example.com", pwd, user.RoleStudent),
	}
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     interface{}
	token    string
	wantCode int
	check    func(t *testing.T, data map[string]interface{})
}

func (f *fixture) token(t *testing.T, usr user.User) string {
	t.Helper()
	token, err := f.app.GenerateToken(usr)
	require.NoError(t, err)
	return token
}

func (f *fixture) do(t *testing.T, tt httpTest) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var body bytes.Buffer
	if tt.body != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(tt.body))
	}
	method := tt.method
	if method == "" {
		method = http.MethodGet
	}
	req := httptest.NewRequest(method, tt.path, &body)
	req.Header.Set("Content-Type", "application/json")
	if tt.token != "" {
		req.Header.Set("Authorization", "Bearer "+tt.token)
	}
	rec := httptest.NewRecorder()
	f.app.ServeHTTP(rec, req)

	var data map[string]interface{}
	if rec.Body.Len() > 0 {
		_ = json.Unmarshal(rec.Body.Bytes(), &data)
	}
	return rec, data
}

func (f *fixture) run(t *testing.T, tests []httpTest) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, data := f.do(t, tt)
			assert.Equal(t, tt.wantCode, rec.Code, rec.Body.String())
			if tt.check != nil {
				tt.check(t, data)
			}
		})
	}
}

func loginRejected(t *testing.T, data map[string]interface{}) {
	assert.Nil(t, data["user"])
	assert.Equal(t, "Invalid email or password", data["error"])
	assert.NotContains(t, data, "token")
}

func TestServer_home(t *testing.T) {
	f := setup(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	f.app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Welcome to ClassDesk API!", rec.Body.String())
}

func TestServer_login(t *testing.T) {
	f := setup(t)

	f.run(t, []httpTest{
		{
			name: "unknown email", method: http.MethodPost, path: "/api/login",
			body:     map[string]string{"email": "nobody@example.com", "password": pwd},
			wantCode: http.StatusUnauthorized, check: loginRejected,
		},
		{
			name: "wrong password", method: http.MethodPost, path: "/api/login",
			body:     map[string]string{"email": "john@example.com", "password": "nope"},
			wantCode: http.StatusUnauthorized, check: loginRejected,
		},
		{
			name: "missing fields", method: http.MethodPost, path: "/api/login",
			body:     map[string]string{},
			wantCode: http.StatusUnauthorized, check: loginRejected,
		},
		{
			name: "success", method: http.MethodPost, path: "/api/login",
			body:     map[string]string{"email": "  JOHN@example.com ", "password": pwd},
			wantCode: http.StatusOK,
			check: func(t *testing.T, data map[string]interface{}) {
				usr, ok := data["user"].(map[string]interface{})
				require.True(t, ok)
				assert.Equal(t, f.teacher.ID, usr["id"])
				assert.Equal(t, string(user.RoleTeacher), usr["role"])
				assert.NotContains(t, usr, "password_hash")
				assert.NotEmpty(t, data["token"])
			},
		},
	})
}

func TestServer_retrieveUser(t *testing.T) {
	f := setup(t)
	studentToken := f.token(t, f.student)
	teacherToken := f.token(t, f.teacher)

	notFound := func(t *testing.T, data map[string]interface{}) {
		assert.Contains(t, data, "user")
		assert.Nil(t, data["user"])
	}
	found := func(id string) func(t *testing.T, data map[string]interface{}) {
		return func(t *testing.T, data map[string]interface{}) {
			usr, ok := data["user"].(map[string]interface{})
			require.True(t, ok)
			assert.Equal(t, id, usr["id"])
		}
	}

	f.run(t, []httpTest{
		{name: "auth required", path: "/api/user/" + f.student.ID, wantCode: http.StatusUnauthorized},
		{name: "invalid token", path: "/api/user/" + f.student.ID, token: "not-a-jwt", wantCode: http.StatusUnauthorized},
		{name: "self", path: "/api/user/" + f.student.ID, token: studentToken, wantCode: http.StatusOK, check: found(f.student.ID)},
		{name: "student asking for another user", path: "/api/user/" + f.other.ID, token: studentToken, wantCode: http.StatusNotFound, check: notFound},
		{name: "teacher asking for a student", path: "/api/user/" + f.other.ID, token: teacherToken, wantCode: http.StatusOK, check: found(f.other.ID)},
		{name: "unknown id", path: "/api/user/unknown", token: teacherToken, wantCode: http.StatusNotFound, check: notFound},
	})
}

func TestServer_tokenRefresh(t *testing.T) {
	f := setup(t)

	f.run(t, []httpTest{
		{name: "auth required", method: http.MethodPost, path: "/api/token-refresh", wantCode: http.StatusUnauthorized},
		{
			name: "refreshed", method: http.MethodPost, path: "/api/token-refresh", token: f.token(t, f.student),
			wantCode: http.StatusOK,
			check: func(t *testing.T, data map[string]interface{}) {
				token, _ := data["token"].(string)
				require.NotEmpty(t, token)
				claims, err := f.app.parseToken(token)
				require.NoError(t, err)
				assert.Equal(t, f.student.ID, claims.Subject)
			},
		},
	})
}

func TestServer_assignments(t *testing.T) {
	f := setup(t)
	teacherToken := f.token(t, f.teacher)
	newAsg := map[string]string{"title": "Intro", "description": "desc", "due_date": "2025-01-01"}

	f.run(t, []httpTest{
		{name: "auth required", method: http.MethodPost, path: "/v1/assignments", body: newAsg, wantCode: http.StatusUnauthorized},
		{
			name: "students cannot create", method: http.MethodPost, path: "/v1/assignments", body: newAsg,
			token: f.token(t, f.student), wantCode: http.StatusForbidden,
			check: func(t *testing.T, data map[string]interface{}) {
				assert.Equal(t, false, data["success"])
				assert.Equal(t, "permission denied", data["error"])
			},
		},
		{
			name: "missing title", method: http.MethodPost, path: "/v1/assignments",
			body:  map[string]string{"description": "desc", "due_date": "2025-01-01"},
			token: teacherToken, wantCode: http.StatusBadRequest,
			check: func(t *testing.T, data map[string]interface{}) {
				assert.Equal(t, false, data["success"])
				assert.NotEmpty(t, data["error"])
			},
		},
		{
			name: "created", method: http.MethodPost, path: "/v1/assignments", body: newAsg,
			token: teacherToken, wantCode: http.StatusCreated,
			check: func(t *testing.T, data map[string]interface{}) {
				assert.Equal(t, true, data["success"])
				asg := data["data"].(map[string]interface{})
				assert.Equal(t, f.teacher.ID, asg["teacher_id"])
			},
		},
		{
			name: "listed for its teacher", path: "/v1/assignments?teacher_id=" + f.teacher.ID,
			token: teacherToken, wantCode: http.StatusOK,
			check: func(t *testing.T, data map[string]interface{}) {
				list := data["data"].([]interface{})
				require.Len(t, list, 1)
				asg := list[0].(map[string]interface{})
				assert.Equal(t, "Intro", asg["title"])
				assert.Equal(t, "2025-01-01T00:00:00Z", asg["due_date"])
			},
		},
		{name: "unknown assignment", path: "/v1/assignments/unknown", token: teacherToken, wantCode: http.StatusNotFound},
	})
}

func TestServer_submissions(t *testing.T) {
	f := setup(t)
	asg := testutil.CreateAssignment(t, f.svcs.Assignments, f.teacher, "Essay", time.Now().Add(24*time.Hour))
	studentToken := f.token(t, f.student)

	var subID string
	f.run(t, []httpTest{
		{
			name: "submitted", method: http.MethodPost, path: "/v1/assignments/" + asg.ID + "/submissions",
			body: map[string]string{"content": "my essay"}, token: studentToken, wantCode: http.StatusCreated,
			check: func(t *testing.T, data map[string]interface{}) {
				sub := data["data"].(map[string]interface{})
				assert.Equal(t, asg.ID, sub["assignment_id"])
				assert.Equal(t, f.student.ID, sub["student_id"])
				subID, _ = sub["id"].(string)
			},
		},
		{
			name: "duplicate", method: http.MethodPost, path: "/v1/assignments/" + asg.ID + "/submissions",
			body: map[string]string{"content": "again"}, token: studentToken, wantCode: http.StatusBadRequest,
		},
		{
			name: "own submissions by default", path: "/v1/submissions", token: studentToken, wantCode: http.StatusOK,
			check: func(t *testing.T, data map[string]interface{}) {
				assert.Len(t, data["data"], 1)
			},
		},
		{
			name: "other students cannot list them", path: "/v1/submissions?student_id=" + f.student.ID,
			token: f.token(t, f.other), wantCode: http.StatusForbidden,
		},
	})

	require.NotEmpty(t, subID)
	f.run(t, []httpTest{
		{
			name: "students cannot grade", method: http.MethodPut, path: "/v1/submissions/" + subID,
			body: map[string]string{"grade": "A"}, token: studentToken, wantCode: http.StatusForbidden,
		},
		{
			name: "graded", method: http.MethodPut, path: "/v1/submissions/" + subID,
			body: map[string]string{"grade": "A", "feedback": "Well done"}, token: f.token(t, f.teacher), wantCode: http.StatusOK,
			check: func(t *testing.T, data map[string]interface{}) {
				sub := data["data"].(map[string]interface{})
				assert.Equal(t, "A", sub["grade"])
				assert.Equal(t, "Well done", sub["feedback"])
			},
		},
	})
}

func TestServer_leaveRequests(t *testing.T) {
	f := setup(t)
	studentToken := f.token(t, f.student)
	teacherToken := f.token(t, f.teacher)

	f.run(t, []httpTest{
		{
			name: "end before start", method: http.MethodPost, path: "/v1/leave-requests",
			body:  map[string]string{"reason": "Trip", "start_date": "2025-03-10", "end_date": "2025-03-09"},
			token: studentToken, wantCode: http.StatusBadRequest,
		},
		{
			name: "malformed body", method: http.MethodPost, path: "/v1/leave-requests",
			body: "not an object", token: studentToken, wantCode: http.StatusBadRequest,
			check: func(t *testing.T, data map[string]interface{}) {
				assert.Equal(t, false, data["success"])
			},
		},
		{
			name: "students list their own", path: "/v1/leave-requests", token: studentToken, wantCode: http.StatusOK,
			check: func(t *testing.T, data map[string]interface{}) {
				assert.Empty(t, data["data"])
			},
		},
		{name: "teachers list all", path: "/v1/leave-requests?status=pending", token: teacherToken, wantCode: http.StatusOK},
	})

	req := testutil.CreateLeaveRequest(t, f.svcs.Leaves, f.student, "Family", "2025-03-10", "2025-03-12")
	f.run(t, []httpTest{
		{
			name: "students cannot review", method: http.MethodPut, path: "/v1/leave-requests/" + req.ID,
			body: map[string]string{"status": "APPROVED"}, token: studentToken, wantCode: http.StatusForbidden,
		},
		{
			name: "approved", method: http.MethodPut, path: "/v1/leave-requests/" + req.ID,
			body: map[string]string{"status": "approved"}, token: teacherToken, wantCode: http.StatusOK,
			check: func(t *testing.T, data map[string]interface{}) {
				lr := data["data"].(map[string]interface{})
				assert.Equal(t, "APPROVED", lr["status"])
				assert.Equal(t, f.teacher.ID, lr["reviewed_by_id"])
			},
		},
		{
			name: "reviewed once", method: http.MethodPut, path: "/v1/leave-requests/" + req.ID,
			body: map[string]string{"status": "REJECTED"}, token: teacherToken, wantCode: http.StatusBadRequest,
		},
	})
}

func TestServer_pages(t *testing.T) {
	f := setup(t)

	redirect := func(want string) func(t *testing.T, data map[string]interface{}) {
		return func(t *testing.T, data map[string]interface{}) {
			view := data["data"].(map[string]interface{})
			assert.Equal(t, want, view["redirect"])
		}
	}

	f.run(t, []httpTest{
		{name: "index anonymous", path: "/v1/pages/index", wantCode: http.StatusOK, check: redirect(pages.PathLogin)},
		{name: "index bad token", path: "/v1/pages/index", token: "garbage", wantCode: http.StatusOK, check: redirect(pages.PathLogin)},
		{name: "index signed in", path: "/v1/pages/index/", token: f.token(t, f.student), wantCode: http.StatusOK, check: redirect(core.PathDashboard)},
		{name: "dashboard auth required", path: "/v1/pages/dashboard", wantCode: http.StatusUnauthorized},
		{
			name: "teacher leave requests", path: "/v1/pages/leave-requests", token: f.token(t, f.teacher), wantCode: http.StatusOK,
			check: func(t *testing.T, data map[string]interface{}) {
				view := data["data"].(map[string]interface{})
				assert.Equal(t, true, view["can_review"])
				assert.Equal(t, false, view["can_create"])
			},
		},
		{name: "unknown assignment", path: "/v1/pages/assignments/unknown", token: f.token(t, f.student), wantCode: http.StatusNotFound},
	})
}

func TestServer_metrics(t *testing.T) {
	f := setup(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	f.app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
