package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/nhle/daily-planner/internal/model"
)

// newTestClient starts a server running handler and returns a client for it.
func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", "", 5*time.Second)
}

func decodeBody(t *testing.T, r *http.Request) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		t.Fatalf("decoding request body: %v", err)
	}
	return body
}

func TestListTasksMapsSnakeCase(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/v1/tasks" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.URL.Query().Get("user_id"); got != "u1" {
			t.Errorf("expected user_id u1, got %q", got)
		}
		if got := r.URL.Query().Get("scheduled_date"); got != "2024-01-01" {
			t.Errorf("expected scheduled_date, got %q", got)
		}
		io.WriteString(w, `[{"id":"t1","title":"Read","notes":"ch 3","scheduled_date":"2024-01-01",
			"estimated_minutes":25,"status":"pending","source":"pdf","pdf_ingestion_id":"ing-9",
			"user_id":"u1","created_at":"2024-01-01T10:00:00"}]`)
	})

	tasks, err := c.ListTasks(context.Background(), "u1", "2024-01-01")
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}
	got := tasks[0]
	if got.ID != "t1" || got.Notes != "ch 3" || got.ScheduledDate != "2024-01-01" {
		t.Fatalf("unexpected task %+v", got)
	}
	if got.EstimatedMinutes == nil || *got.EstimatedMinutes != 25 {
		t.Fatalf("expected estimate 25, got %v", got.EstimatedMinutes)
	}
	if got.Source != model.TaskSourcePDF || got.PDFIngestionID == nil || *got.PDFIngestionID != "ing-9" {
		t.Fatalf("expected pdf provenance, got %+v", got)
	}
}

func TestCreateTaskSendsManualSource(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/tasks" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected json content type, got %q", ct)
		}
		body := decodeBody(t, r)
		if body["user_id"] != "u1" || body["title"] != "Call mentor" ||
			body["scheduled_date"] != "2024-01-02" || body["source"] != "manual" {
			t.Errorf("unexpected body %v", body)
		}
		if _, ok := body["notes"]; ok {
			t.Errorf("expected empty notes to be omitted, got %v", body["notes"])
		}
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"id":"srv-1","title":"Call mentor","scheduled_date":"2024-01-02","status":"pending","source":"manual"}`)
	})

	task, err := c.CreateTask(context.Background(), "u1", model.TaskInput{Title: "Call mentor", ScheduledDate: "2024-01-02"})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if task.ID != "srv-1" || task.Status != model.TaskStatusPending {
		t.Fatalf("unexpected task %+v", task)
	}
}

func TestUpdateTaskSendsOnlyPatchedFields(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch || r.URL.Path != "/api/v1/tasks/t1" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		body := decodeBody(t, r)
		if len(body) != 1 || body["status"] != "complete" {
			t.Errorf("expected only status in patch, got %v", body)
		}
		io.WriteString(w, `{"id":"t1","title":"x","scheduled_date":"2024-01-01","status":"complete","source":"manual"}`)
	})

	status := model.TaskStatusComplete
	task, err := c.UpdateTask(context.Background(), "t1", model.TaskPatch{Status: &status})
	if err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}
	if task.Status != model.TaskStatusComplete {
		t.Fatalf("expected complete, got %s", task.Status)
	}
}

func TestDeleteTaskAcceptsEmptyBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/api/v1/tasks/t1" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	})

	if err := c.DeleteTask(context.Background(), "t1"); err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}
}

func TestErrorUsesBodyText(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"detail":"User not found"}`)
	})

	_, err := c.ListTasks(context.Background(), "ghost", "2024-01-01")
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != `{"detail":"User not found"}` {
		t.Fatalf("expected body text as message, got %q", err.Error())
	}
	if !IsStatus(err, http.StatusNotFound) {
		t.Fatal("expected IsStatus to match 404")
	}
}

func TestErrorFallsBackToStatusText(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	err := c.DeleteTask(context.Background(), "t1")
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if apiErr.Message != "Bad Gateway" {
		t.Fatalf("expected status text, got %q", apiErr.Message)
	}
}

func TestBearerTokenSent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("expected bearer token, got %q", got)
		}
		io.WriteString(w, `[]`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret", time.Second)
	if _, err := c.ListTasks(context.Background(), "u", "2024-01-01"); err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
}

func TestUploadPDFMultipart(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/uploads/pdf" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parsing multipart: %v", err)
			return
		}
		if r.FormValue("user_id") != "u1" || r.FormValue("scheduled_date") != "2024-01-03" {
			t.Errorf("unexpected fields %v", r.MultipartForm.Value)
		}
		f, hdr, err := r.FormFile("file")
		if err != nil {
			t.Errorf("reading file part: %v", err)
			return
		}
		defer f.Close()
		data, _ := io.ReadAll(f)
		if hdr.Filename != "syllabus.pdf" || string(data) != "%PDF-1.4" {
			t.Errorf("unexpected file %s %q", hdr.Filename, data)
		}
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"id":"ing-1","user_id":"u1","original_filename":"syllabus.pdf","status":"completed",
			"parsed_task_count":2,"error_message":null,"created_at":"2024-01-03T08:00:00","tasks_created":["a","b"]}`)
	})

	res, err := c.UploadPDF(context.Background(), "u1", "2024-01-03", "syllabus.pdf", strings.NewReader("%PDF-1.4"))
	if err != nil {
		t.Fatalf("UploadPDF: %v", err)
	}
	if res.ParsedTaskCount != 2 || len(res.TasksCreated) != 2 || res.Filename != "syllabus.pdf" {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestCarryForwardOmitsEmptyToDate(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/tasks/carry-forward" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		body := decodeBody(t, r)
		if body["from_date"] != "2024-01-01" || body["user_id"] != "u1" {
			t.Errorf("unexpected body %v", body)
		}
		if _, ok := body["to_date"]; ok {
			t.Errorf("expected to_date omitted, got %v", body["to_date"])
		}
		io.WriteString(w, `[{"id":"t1","title":"x","scheduled_date":"2024-01-02","status":"pending","source":"manual"}]`)
	})

	moved, err := c.CarryForward(context.Background(), "u1", "2024-01-01", "")
	if err != nil {
		t.Fatalf("CarryForward: %v", err)
	}
	if len(moved) != 1 || moved[0].ScheduledDate != "2024-01-02" {
		t.Fatalf("unexpected moved tasks %+v", moved)
	}
}

func TestRecommendations(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body := decodeBody(t, r)
		if body["primary_goal"] != "Ship a portfolio" || body["skills_focus"] != "SQL" {
			t.Errorf("unexpected body %v", body)
		}
		if _, ok := body["secondary_goals"]; ok {
			t.Errorf("expected empty secondary goals omitted")
		}
		io.WriteString(w, `{"user_id":"u1","scheduled_date":"2024-01-01","goal_statement":"Ship a portfolio",
			"recommended_todos":[{"title":"Skill drill","description":"Practice joins","category":"Skill Drill",
			"estimated_minutes":30,"resource_url":"https://example.test/joins"}]}`)
	})

	set, err := c.Recommendations(context.Background(), "u1", "2024-01-01",
		model.Goal{PrimaryGoal: "Ship a portfolio", SkillsFocus: "SQL"})
	if err != nil {
		t.Fatalf("Recommendations: %v", err)
	}
	if set.GoalStatement != "Ship a portfolio" || len(set.Todos) != 1 {
		t.Fatalf("unexpected set %+v", set)
	}
	if set.Todos[0].ResourceURL != "https://example.test/joins" || set.Todos[0].EstimatedMinutes != 30 {
		t.Fatalf("unexpected todo %+v", set.Todos[0])
	}
}

func TestOnboardAndAvailability(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/onboarding":
			body := decodeBody(t, r)
			goal, _ := body["goal"].(map[string]interface{})
			if body["email"] != "a@b.test" || goal["goal_statement"] != "Get hired" {
				t.Errorf("unexpected onboarding body %v", body)
			}
			io.WriteString(w, `{"id":"u9","email":"a@b.test","full_name":"Ada","timezone":null,
				"goal":{"goal_statement":"Get hired","industry":"AI"}}`)
		case "/api/v1/availability":
			body := decodeBody(t, r)
			if body["day"] != "2024-01-01" || body["minutes_available"] != float64(90) || body["source"] != "manual" {
				t.Errorf("unexpected availability body %v", body)
			}
			io.WriteString(w, `{"id":1,"user_id":"u9","day":"2024-01-01","minutes_available":90,"source":"manual"}`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	u, err := c.Onboard(context.Background(),
		model.Profile{Email: "a@b.test", FullName: "Ada"},
		model.Goal{PrimaryGoal: "Get hired"})
	if err != nil {
		t.Fatalf("Onboard: %v", err)
	}
	if u.ID != "u9" || u.Goal == nil || u.Goal.Industry != "AI" || u.Profile.Timezone != "" {
		t.Fatalf("unexpected user %+v", u)
	}

	a, err := c.SaveAvailability(context.Background(), "u9", model.Availability{Date: "2024-01-01", MinutesAvailable: 90})
	if err != nil {
		t.Fatalf("SaveAvailability: %v", err)
	}
	if a.MinutesAvailable != 90 {
		t.Fatalf("unexpected availability %+v", a)
	}
}
