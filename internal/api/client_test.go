package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/safetyedu/safety-edu/pkg/models"
)

// newPlatform starts a fake platform serving the given routes under /api
func newPlatform(t *testing.T, routes map[string]http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()

	r := chi.NewRouter()
	for p, h := range routes {
		r.Post("/"+p, h)
	}
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	c, err := New(Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return c, srv
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func TestSessionFromHeaders(t *testing.T) {
	tests := []struct {
		name    string
		cookies []string
		want    Session
	}{
		{"no cookies", nil, ""},
		{"single cookie with attributes", []string{"auth=abc; Path=/; HttpOnly"}, "auth=abc"},
		{
			"keeps arrival order",
			[]string{"b=2; Path=/", "a=1; Expires=Wed, 21 Oct 2015 07:28:00 GMT", "c=3"},
			"b=2;a=1;c=3",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := http.Header{}
			for _, c := range tt.cookies {
				h.Add("Set-Cookie", c)
			}
			if got := SessionFromHeaders(h); got != tt.want {
				t.Errorf("SessionFromHeaders() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoginSuccess(t *testing.T) {
	var got url.Values
	c, _ := newPlatform(t, map[string]http.HandlerFunc{
		pathLogin: func(w http.ResponseWriter, r *http.Request) {
			got = r.URL.Query()
			w.Header().Add("Set-Cookie", "auth=token1; Path=/; HttpOnly")
			w.Header().Add("Set-Cookie", "acw_tc=xyz; Max-Age=1800")
			writeJSON(w, map[string]any{"code": 1, "msg": "ok"})
		},
	})

	authed, err := c.Login(context.Background(), "school-1", "alice", "secret")
	if err != nil {
		t.Fatalf("Login() error: %v", err)
	}
	if authed.Session() != "auth=token1;acw_tc=xyz" {
		t.Errorf("Session() = %q", authed.Session())
	}
	if c.Session() != "" {
		t.Error("Login should not modify the unauthenticated client")
	}
	if got.Get("schoolId") != "school-1" || got.Get("userName") != "alice" || got.Get("userPwd") != "secret" {
		t.Errorf("unexpected login params: %v", got)
	}
}

func TestLoginRequiresBothChecks(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       any
		wantStatus int
		wantMsg    string
	}{
		{"http failure", http.StatusInternalServerError, map[string]any{"code": 1}, http.StatusInternalServerError, ""},
		{"application rejection", http.StatusOK, map[string]any{"code": -1, "msg": "wrong password"}, http.StatusOK, "wrong password"},
		{"missing code", http.StatusOK, map[string]any{"msg": "?"}, http.StatusOK, "?"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newPlatform(t, map[string]http.HandlerFunc{
				pathLogin: func(w http.ResponseWriter, r *http.Request) {
					w.Header().Add("Set-Cookie", "auth=x")
					w.WriteHeader(tt.status)
					json.NewEncoder(w).Encode(tt.body)
				},
			})

			_, err := c.Login(context.Background(), "s", "u", "p")
			var authErr *AuthenticationError
			if !errors.As(err, &authErr) {
				t.Fatalf("expected AuthenticationError, got %v", err)
			}
			if authErr.Status != tt.wantStatus {
				t.Errorf("Status = %d, want %d", authErr.Status, tt.wantStatus)
			}
			if authErr.Msg != tt.wantMsg {
				t.Errorf("Msg = %q, want %q", authErr.Msg, tt.wantMsg)
			}
		})
	}
}

func TestLoginMalformedBody(t *testing.T) {
	c, _ := newPlatform(t, map[string]http.HandlerFunc{
		pathLogin: func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<html>maintenance</html>"))
		},
	})

	_, err := c.Login(context.Background(), "s", "u", "p")
	var protoErr *ProtocolError
	if !errors.As(err, &protoErr) {
		t.Fatalf("expected ProtocolError, got %v", err)
	}
}

func TestCallSendsHeadersAndSession(t *testing.T) {
	var header http.Header
	var method string
	c, _ := newPlatform(t, map[string]http.HandlerFunc{
		pathAuthInfo: func(w http.ResponseWriter, r *http.Request) {
			header = r.Header
			method = r.Method
			writeJSON(w, map[string]any{"displayName": "Alice"})
		},
	})
	c = c.WithSession("auth=abc;acw_tc=xyz")

	user, err := c.AuthInfo(context.Background())
	if err != nil {
		t.Fatalf("AuthInfo() error: %v", err)
	}
	if user.DisplayName != "Alice" {
		t.Errorf("DisplayName = %q", user.DisplayName)
	}
	if method != http.MethodPost {
		t.Errorf("method = %s, want POST", method)
	}
	if header.Get("Cookie") != "auth=abc;acw_tc=xyz" {
		t.Errorf("Cookie header = %q", header.Get("Cookie"))
	}
	if header.Get("User-Agent") != DefaultUserAgent {
		t.Errorf("User-Agent = %q", header.Get("User-Agent"))
	}
}

func TestSchoolListSendsNoCookie(t *testing.T) {
	var cookie string
	c, _ := newPlatform(t, map[string]http.HandlerFunc{
		pathSchoolList: func(w http.ResponseWriter, r *http.Request) {
			cookie = r.Header.Get("Cookie")
			writeJSON(w, map[string]any{"list": []map[string]string{
				{"id": "s1", "name": "First School"},
				{"id": "s2", "name": "Second School"},
			}})
		},
	})

	schools, err := c.SchoolList(context.Background())
	if err != nil {
		t.Fatalf("SchoolList() error: %v", err)
	}
	if len(schools) != 2 || schools[1] != (models.School{ID: "s2", Name: "Second School"}) {
		t.Errorf("unexpected schools: %+v", schools)
	}
	if cookie != "" {
		t.Errorf("expected no cookie, got %q", cookie)
	}
}

func TestNon200IsTransportError(t *testing.T) {
	calls := 0
	c, _ := newPlatform(t, map[string]http.HandlerFunc{
		pathModuleList: func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.WriteHeader(http.StatusBadGateway)
		},
	})

	_, err := c.WithSession("a=b").ModuleList(context.Background())
	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("expected TransportError, got %v", err)
	}
	if transportErr.Status != http.StatusBadGateway {
		t.Errorf("Status = %d, want %d", transportErr.Status, http.StatusBadGateway)
	}
	if transportErr.Op != "getModuleList" {
		t.Errorf("Op = %q", transportErr.Op)
	}
	if calls != 1 {
		t.Errorf("expected exactly one request, got %d", calls)
	}
}

func TestUnreachableHostIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c, err := New(Config{BaseURL: base})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	_, err = c.SchoolList(context.Background())
	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("expected TransportError, got %v", err)
	}
}

func TestMalformedJSONIsProtocolError(t *testing.T) {
	c, _ := newPlatform(t, map[string]http.HandlerFunc{
		pathAddMyMoocModule: func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("{not json"))
		},
	})

	err := c.AddMyMoocModule(context.Background(), "m1")
	var protoErr *ProtocolError
	if !errors.As(err, &protoErr) {
		t.Fatalf("expected ProtocolError, got %v", err)
	}
}

func TestModuleInfo(t *testing.T) {
	var moduleID string
	c, _ := newPlatform(t, map[string]http.HandlerFunc{
		pathModuleInfo: func(w http.ResponseWriter, r *http.Request) {
			moduleID = r.URL.Query().Get("moduleId")
			writeJSON(w, map[string]any{
				"moduleInfo": map[string]any{"courseOpenId": "course-9"},
				"cellList": []map[string]any{
					{"id": "c1", "docId": "d1"},
					{"id": "c2", "docId": ""},
					{"id": "c3", "docId": nil},
				},
			})
		},
	})

	m, err := c.ModuleInfo(context.Background(), "m1")
	if err != nil {
		t.Fatalf("ModuleInfo() error: %v", err)
	}
	if moduleID != "m1" {
		t.Errorf("moduleId param = %q", moduleID)
	}
	if m.CourseOpenID != "course-9" || len(m.Cells) != 3 {
		t.Fatalf("unexpected module: %+v", m)
	}
	if !m.Cells[0].HasDocument() || m.Cells[1].HasDocument() || m.Cells[2].HasDocument() {
		t.Errorf("unexpected document flags: %+v", m.Cells)
	}
}

func TestModuleInfoMissingCourse(t *testing.T) {
	c, _ := newPlatform(t, map[string]http.HandlerFunc{
		pathModuleInfo: func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, map[string]any{"cellList": []any{}})
		},
	})

	_, err := c.ModuleInfo(context.Background(), "m1")
	var protoErr *ProtocolError
	if !errors.As(err, &protoErr) {
		t.Fatalf("expected ProtocolError, got %v", err)
	}
	if protoErr.Field != "moduleInfo.courseOpenId" {
		t.Errorf("Field = %q", protoErr.Field)
	}
}

func TestStatCellTimeSendsDurationTwice(t *testing.T) {
	var got url.Values
	c, _ := newPlatform(t, map[string]http.HandlerFunc{
		pathStatCellTime: func(w http.ResponseWriter, r *http.Request) {
			got = r.URL.Query()
			writeJSON(w, map[string]any{"code": 1})
		},
	})

	if err := c.StatStuProcessCellLogAndTimeLong(context.Background(), "m1", "course-1", "cell-1", 123); err != nil {
		t.Fatalf("StatStuProcessCellLogAndTimeLong() error: %v", err)
	}
	want := map[string]string{
		"moduleIds":          "m1",
		"courseId":           "course-1",
		"cellId":             "cell-1",
		"auvideoLength":      "123",
		"videoTimeTotalLong": "123",
	}
	for k, v := range want {
		if got.Get(k) != v {
			t.Errorf("param %s = %q, want %q", k, got.Get(k), v)
		}
	}
}

func TestStuPaper(t *testing.T) {
	c, _ := newPlatform(t, map[string]http.HandlerFunc{
		pathStuPaper: func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, map[string]any{
				"paperId":    "p1",
				"paperStuId": "ps1",
				"paperName":  "Final",
				"stuPaperQuesList": []map[string]any{
					{"quesId": "q1", "questionType": 1},
					{"quesId": "q2", "questionType": "2"},
					{"quesId": "q3"},
				},
			})
		},
	})

	paper, err := c.StuPaper(context.Background(), "course-1")
	if err != nil {
		t.Fatalf("StuPaper() error: %v", err)
	}
	if paper.PaperID != "p1" || paper.PaperStuID != "ps1" || paper.PaperName != "Final" {
		t.Errorf("unexpected paper: %+v", paper)
	}
	wantTypes := []models.QuestionType{models.QuestionSingle, models.QuestionMultiple, models.QuestionUnknown}
	for i, q := range paper.Questions {
		if q.Type != wantTypes[i] {
			t.Errorf("question %d type = %v, want %v", i, q.Type, wantTypes[i])
		}
	}
}

func TestStuPaperMissingIDs(t *testing.T) {
	c, _ := newPlatform(t, map[string]http.HandlerFunc{
		pathStuPaper: func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, map[string]any{"paperId": "p1", "stuPaperQuesList": []any{}})
		},
	})

	_, err := c.StuPaper(context.Background(), "course-1")
	var protoErr *ProtocolError
	if !errors.As(err, &protoErr) || protoErr.Field != "paperStuId" {
		t.Fatalf("expected ProtocolError for paperStuId, got %v", err)
	}
}

func TestSaveStuQuesAnswerPayload(t *testing.T) {
	var got url.Values
	c, _ := newPlatform(t, map[string]http.HandlerFunc{
		pathSaveStuQuesAnswer: func(w http.ResponseWriter, r *http.Request) {
			got = r.URL.Query()
			writeJSON(w, map[string]any{"code": 1})
		},
	})

	if err := c.SaveStuQuesAnswer(context.Background(), "ps1", "p1", "q1", "A；C"); err != nil {
		t.Fatalf("SaveStuQuesAnswer() error: %v", err)
	}
	if got.Get("paperStuId") != "ps1" || got.Get("paperId") != "p1" || got.Get("quesId") != "q1" {
		t.Errorf("unexpected params: %v", got)
	}

	var payload struct {
		QuesID string `json:"quesId"`
		Answer string `json:"answer"`
	}
	if err := json.Unmarshal([]byte(got.Get("answerJson")), &payload); err != nil {
		t.Fatalf("answerJson is not JSON: %v", err)
	}
	if payload.QuesID != "q1" || payload.Answer != "A；C" {
		t.Errorf("unexpected payload: %+v", payload)
	}
}

func TestSubmitStuPaperIgnoresBody(t *testing.T) {
	c, _ := newPlatform(t, map[string]http.HandlerFunc{
		pathSubmitStuPaper: func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json at all"))
		},
	})

	if err := c.SubmitStuPaper(context.Background(), "ps1", "p1"); err != nil {
		t.Fatalf("SubmitStuPaper() error: %v", err)
	}
}

func TestCoursePaperInfo(t *testing.T) {
	c, _ := newPlatform(t, map[string]http.HandlerFunc{
		pathCoursePaperInfo: func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, map[string]any{"paperStudentList": []map[string]any{
				{"answerTimeStr": "12分30秒", "studentTotalScore": 98},
				{"answerTimeStr": "20分", "studentTotalScore": "60"},
			}})
		},
	})

	results, err := c.CoursePaperInfo(context.Background(), "course-1")
	if err != nil {
		t.Fatalf("CoursePaperInfo() error: %v", err)
	}
	if results[0].AnswerTimeStr != "12分30秒" || results[0].StudentTotalScore.String() != "98" {
		t.Errorf("unexpected latest result: %+v", results[0])
	}
	if results[1].StudentTotalScore.String() != "60" {
		t.Errorf("unexpected second score: %q", results[1].StudentTotalScore)
	}
}

func TestCoursePaperInfoPendingScore(t *testing.T) {
	tests := []struct {
		name  string
		score any
		want  string
	}{
		{"empty string", "", ""},
		{"text", "未评分", "未评分"},
		{"null", nil, ""},
		{"fraction", 87.5, "87.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newPlatform(t, map[string]http.HandlerFunc{
				pathCoursePaperInfo: func(w http.ResponseWriter, r *http.Request) {
					writeJSON(w, map[string]any{"paperStudentList": []map[string]any{
						{"answerTimeStr": "5分钟", "studentTotalScore": tt.score},
					}})
				},
			})

			results, err := c.CoursePaperInfo(context.Background(), "course-1")
			if err != nil {
				t.Fatalf("CoursePaperInfo() error: %v", err)
			}
			if results[0].StudentTotalScore.String() != tt.want || results[0].AnswerTimeStr != "5分钟" {
				t.Errorf("got %+v, want score %q", results[0], tt.want)
			}
		})
	}
}

func TestCoursePaperInfoWithoutAttempts(t *testing.T) {
	c, _ := newPlatform(t, map[string]http.HandlerFunc{
		pathCoursePaperInfo: func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, map[string]any{"paperStudentList": []any{}})
		},
	})

	results, err := c.CoursePaperInfo(context.Background(), "course-1")
	if err != nil {
		t.Fatalf("CoursePaperInfo() error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no attempts, got %+v", results)
	}
}

func TestMyStudyTimerSummary(t *testing.T) {
	c, _ := newPlatform(t, map[string]http.HandlerFunc{
		pathStudyTimerSummary: func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, map[string]any{
				"cumulativeStudyTimer":  3723,
				"cumulativeStudyCount":  12,
				"cumulativeStudyCourse": 2,
			})
		},
	})

	s, err := c.MyStudyTimerSummary(context.Background())
	if err != nil {
		t.Fatalf("MyStudyTimerSummary() error: %v", err)
	}
	if s.Duration() != "1h 2m 3s" || s.CumulativeStudyCount != 12 || s.CumulativeStudyCourse != 2 {
		t.Errorf("unexpected summary: %+v", s)
	}
}

func TestNewRejectsRelativeBaseURL(t *testing.T) {
	if _, err := New(Config{BaseURL: "aq.fhmooc.com/api"}); err == nil {
		t.Error("expected error for relative base URL")
	}
}
