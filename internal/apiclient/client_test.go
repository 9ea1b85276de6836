package apiclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kapilcyber/bank.ai-sub001/internal/domain"
)

func TestLoginSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Fatalf("unexpected method: %s", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token":"tok123","user":{"id":"u1","name":"Dana","email":"dana@example.com","role":"admin"}}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	resp, err := client.Login(context.Background(), "dana@example.com", "longenough1")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if resp.Token != "tok123" || resp.User.Role != domain.RoleAdmin {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"detail":"Invalid email or password"}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	_, err := client.Login(context.Background(), "dana@example.com", "wrongpassword")

	var ae *domain.AuthError
	if !errors.As(err, &ae) {
		t.Fatalf("expected AuthError, got %v", err)
	}
	if ae.Reason != domain.ReasonInvalidCredentials || ae.Message != "Invalid email or password" {
		t.Fatalf("unexpected error: %+v", ae)
	}
}

func TestBearerTokenAttached(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Fatalf("unexpected Authorization header: %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"jobs":[]}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	client.SetToken("secret")
	if _, err := client.Jobs(context.Background()); err != nil {
		t.Fatalf("Jobs failed: %v", err)
	}
}

func TestNoBearerTokenWhenCleared(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "" {
			t.Fatalf("unexpected Authorization header: %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"jobs":[]}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	client.SetToken("secret")
	client.ClearToken()
	if _, err := client.Jobs(context.Background()); err != nil {
		t.Fatalf("Jobs failed: %v", err)
	}
}

func TestNotifications(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/admin/notifications" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("limit") != "50" || q.Get("days") != "7" {
			t.Fatalf("unexpected query: %v", q)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"notifications":[{"id":"resume-r1","type":"resume_upload","message":"New resume uploaded (Outlook)","timestamp":"2026-08-30T10:00:00Z"}],"unread_count":1}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	batch, err := client.Notifications(context.Background(), 50, 7)
	if err != nil {
		t.Fatalf("Notifications failed: %v", err)
	}
	if len(batch.Items) != 1 || batch.UnreadCount != 1 {
		t.Fatalf("unexpected batch: %+v", batch)
	}
	if batch.Items[0].Type != domain.NotificationResumeUpload {
		t.Fatalf("unexpected item: %+v", batch.Items[0])
	}
}

func TestSearchResumesQueryParams(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("skills") != "Go,AWS" {
			t.Fatalf("unexpected skills: %q", q.Get("skills"))
		}
		if q.Get("min_experience") != "3.5" {
			t.Fatalf("unexpected min_experience: %q", q.Get("min_experience"))
		}
		if got := q["user_types"]; len(got) != 2 {
			t.Fatalf("unexpected user_types: %v", got)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"resumes":[{"id":"r1","name":"Dana"}]}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	resumes, err := client.SearchResumes(context.Background(), domain.SearchFilters{
		Skills:        []string{"Go", "AWS"},
		UserTypes:     []string{"Guest", "Freelancer"},
		MinExperience: 3.5,
	})
	if err != nil {
		t.Fatalf("SearchResumes failed: %v", err)
	}
	if len(resumes) != 1 || resumes[0].ID != "r1" {
		t.Fatalf("unexpected resumes: %+v", resumes)
	}
}

func TestServerErrorDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		fmt.Fprint(w, `{"detail":"Company employee list is not available"}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	_, err := client.Employees(context.Background())

	var fe *domain.FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FetchError, got %v", err)
	}
	if fe.StatusCode != http.StatusServiceUnavailable || fe.UserMessage() != "Company employee list is not available" {
		t.Fatalf("unexpected error: %+v", fe)
	}
}

func TestTransportErrorIsFetchError(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", 200*time.Millisecond)
	_, err := client.Jobs(context.Background())

	var fe *domain.FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FetchError, got %v", err)
	}
	if fe.StatusCode != 0 || fe.UserMessage() != domain.GenericErrorMessage {
		t.Fatalf("unexpected error: %+v", fe)
	}
}

func TestSetPasswordExpiredToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"detail":"Reset token is invalid or has expired"}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	err := client.SetPassword(context.Background(), "expired", "longenough1")

	var ae *domain.AuthError
	if !errors.As(err, &ae) {
		t.Fatalf("expected AuthError, got %v", err)
	}
	if ae.Reason != domain.ReasonInvalidResetToken {
		t.Fatalf("unexpected reason: %q", ae.Reason)
	}
}

func TestQueryAssistant(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/assistant/query" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"response":"hi there"}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	reply, err := client.QueryAssistant(context.Background(), "hello")
	if err != nil {
		t.Fatalf("QueryAssistant failed: %v", err)
	}
	if reply != "hi there" {
		t.Fatalf("unexpected reply: %q", reply)
	}
}
