// Command mockapi serves a canned-data stand-in for the platform backend so
// the portal client can be developed and demoed offline.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/kapilcyber/bank.ai-sub001/internal/domain"
)

const mockToken = "mock-token"

type server struct {
	mu   sync.Mutex
	jobs []domain.JobOpening
}

func main() {
	port := 8000
	if v := os.Getenv("MOCKAPI_PORT"); v != "" {
		fmt.Sscanf(v, "%d", &port)
	}

	s := &server{jobs: seedJobs()}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	api := e.Group("/api")
	api.POST("/auth/login", s.login)
	api.POST("/auth/signup", s.signup)
	api.POST("/auth/set-password", s.setPassword)
	api.POST("/assistant/query", s.assistantQuery, s.requireToken)

	admin := api.Group("", s.requireToken)
	admin.GET("/admin/stats", s.stats)
	admin.GET("/admin/notifications", s.notifications)
	admin.POST("/admin/invite", s.invite)
	admin.GET("/admin/users", s.users)
	admin.DELETE("/admin/users/:id", s.deleteUser)
	admin.GET("/resumes/search", s.searchResumes)
	admin.POST("/resumes/outlook/trigger", s.outlookTrigger)
	admin.GET("/jobs", s.listJobs)
	admin.POST("/jobs", s.createJob)
	admin.PUT("/jobs/:id", s.updateJob)
	admin.DELETE("/jobs/:id", s.deleteJob)
	admin.GET("/jobs/:id/applicants", s.applicants)
	admin.GET("/employees", s.employees)
	admin.GET("/employee-list-config", s.employeeListConfig)
	admin.PUT("/employee-list-config", s.updateEmployeeListConfig)
	admin.POST("/employee-list/upload", s.uploadEmployeeList)

	go func() {
		if err := e.Start(fmt.Sprintf(":%d", port)); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start mock API: %v", err)
		}
	}()
	log.Printf("Mock API started on port %d", port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("Failed to shutdown gracefully: %v", err)
	}
}

// requireToken rejects requests without the mock bearer token.
func (s *server) requireToken(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		auth := c.Request().Header.Get("Authorization")
		if auth != "Bearer "+mockToken {
			return c.JSON(http.StatusUnauthorized, echo.Map{"detail": "Not authenticated"})
		}
		return next(c)
	}
}

// login accepts any password of 8+ characters. The role is derived from the
// mailbox name so denied-role flows can be exercised: admin@… gets admin,
// hr@… gets hr, ta@… gets talent_acquisition, anything else gets user.
func (s *server) login(c echo.Context) error {
	var req domain.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "invalid request"})
	}
	if len(req.Password) < 8 {
		return c.JSON(http.StatusUnauthorized, echo.Map{"detail": "Invalid email or password"})
	}

	role := "user"
	switch {
	case strings.HasPrefix(req.Email, "admin@"):
		role = "admin"
	case strings.HasPrefix(req.Email, "hr@"):
		role = "hr"
	case strings.HasPrefix(req.Email, "ta@"):
		role = "Talent Acquisition"
	}

	return c.JSON(http.StatusOK, domain.LoginResponse{
		Token: mockToken,
		User: domain.Profile{
			ID:    "u_" + uuid.New().String()[:8],
			Name:  strings.Split(req.Email, "@")[0],
			Email: req.Email,
			Role:  domain.Role(role),
		},
	})
}

func (s *server) signup(c echo.Context) error {
	var req domain.SignupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "invalid request"})
	}
	return c.JSON(http.StatusOK, domain.Profile{
		ID:    "u_" + uuid.New().String()[:8],
		Name:  req.Name,
		Email: req.Email,
		Role:  domain.NormalizeRole(req.Role),
	})
}

func (s *server) setPassword(c echo.Context) error {
	var req domain.SetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "invalid request"})
	}
	if req.Token == "expired" {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "Reset token is invalid or has expired"})
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

func (s *server) assistantQuery(c echo.Context) error {
	var req domain.AssistantQuery
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "invalid request"})
	}
	msg := strings.ToLower(req.Message)
	reply := "I can help with resumes, job openings, and the employee list. Try asking about candidates with a skill."
	switch {
	case strings.Contains(msg, "how many"):
		reply = "There are 128 resumes in the database."
	case strings.Contains(msg, "skill"):
		reply = "Found 3 candidates: Dana Reeve (Go, SQL), Arjun Mehta (Go, AWS), Lena Fischer (Go)."
	case strings.Contains(msg, "upload"):
		reply = "Admins can upload resumes from the Records tab, or trigger an Outlook sync."
	}
	return c.JSON(http.StatusOK, domain.AssistantReply{Response: reply})
}

func (s *server) stats(c echo.Context) error {
	s.mu.Lock()
	jobCount := len(s.jobs)
	s.mu.Unlock()
	return c.JSON(http.StatusOK, domain.DashboardStats{
		TotalUsers:     42,
		TotalResumes:   128,
		TotalJobs:      jobCount,
		TotalMatches:   57,
		ResumesByType:  map[string]int{"guest": 60, "company_employee": 40, "freelancer": 28},
		RecentUploads:  9,
		ActiveOpenings: 4,
		LoginsThisWeek: 17,
	})
}

func (s *server) notifications(c echo.Context) error {
	now := time.Now().UTC()
	items := []domain.NotificationItem{
		{
			ID:        "resume-r101",
			Type:      domain.NotificationJobApplication,
			Message:   "New application for Senior Backend Engineer",
			Timestamp: now.Add(-10 * time.Minute),
			ResumeID:  "r101",
			JobTitle:  "Senior Backend Engineer",
		},
		{
			ID:         "resume-r102",
			Type:       domain.NotificationResumeUpload,
			Message:    "New resume uploaded (Outlook)",
			Timestamp:  now.Add(-2 * time.Hour),
			ResumeID:   "r102",
			SourceType: "outlook",
			Filename:   "candidate.pdf",
		},
		{
			ID:        fmt.Sprintf("login-u7-%d", now.Add(-3*time.Hour).Unix()),
			Type:      domain.NotificationLogin,
			Message:   "User logged in: Dana Reeve",
			Timestamp: now.Add(-3 * time.Hour),
			UserID:    "u7",
			Email:     "dana@example.com",
		},
	}
	unread := len(items)
	if unread > 99 {
		unread = 99
	}
	return c.JSON(http.StatusOK, domain.NotificationBatch{Items: items, UnreadCount: unread})
}

func (s *server) invite(c echo.Context) error {
	var req domain.InviteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "invalid request"})
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "invited", "email": req.Email})
}

func (s *server) users(c echo.Context) error {
	last := time.Now().Add(-26 * time.Hour)
	return c.JSON(http.StatusOK, echo.Map{
		"users": []domain.UserAccount{
			{ID: "u1", Name: "Dana Reeve", Email: "dana@example.com", Role: domain.RoleAdmin, LastLoginAt: &last},
			{ID: "u2", Name: "Arjun Mehta", Email: "arjun@example.com", Role: domain.RoleHR},
		},
	})
}

func (s *server) deleteUser(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "deleted", "id": c.Param("id")})
}

func (s *server) searchResumes(c echo.Context) error {
	resumes := []domain.ResumeSummary{
		{ID: "r1", Name: "Dana Reeve", Skills: []string{"Go", "SQL"}, Experience: 6, UserType: "Guest", UploadedAt: time.Now().Add(-48 * time.Hour)},
		{ID: "r2", Name: "Arjun Mehta", Skills: []string{"Go", "AWS"}, Experience: 4, UserType: "Freelancer", UploadedAt: time.Now().Add(-24 * time.Hour)},
		{ID: "r3", Name: "Lena Fischer", Skills: []string{"Python"}, Experience: 8, UserType: "Company Employee", UploadedAt: time.Now().Add(-2 * time.Hour)},
	}
	if skills := c.QueryParam("skills"); skills != "" {
		f := domain.SearchFilters{Skills: strings.Split(skills, ",")}
		resumes = domain.FilterResumes(resumes, f)
	}
	return c.JSON(http.StatusOK, echo.Map{"resumes": resumes})
}

func (s *server) outlookTrigger(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "sync_started"})
}

func (s *server) listJobs(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return c.JSON(http.StatusOK, echo.Map{"jobs": s.jobs})
}

func (s *server) createJob(c echo.Context) error {
	var job domain.JobOpening
	if err := c.Bind(&job); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "invalid request"})
	}
	job.ID = "j_" + uuid.New().String()[:8]
	if job.PostedAt.IsZero() {
		job.PostedAt = time.Now().UTC()
	}
	if job.Status == "" {
		job.Status = domain.JobStatusOpen
	}
	s.mu.Lock()
	s.jobs = append(s.jobs, job)
	s.mu.Unlock()
	return c.JSON(http.StatusOK, job)
}

func (s *server) updateJob(c echo.Context) error {
	var job domain.JobOpening
	if err := c.Bind(&job); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "invalid request"})
	}
	id := c.Param("id")
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.jobs {
		if s.jobs[i].ID == id {
			job.ID = id
			s.jobs[i] = job
			return c.JSON(http.StatusOK, job)
		}
	}
	return c.JSON(http.StatusNotFound, echo.Map{"detail": "job not found"})
}

func (s *server) deleteJob(c echo.Context) error {
	id := c.Param("id")
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.jobs {
		if s.jobs[i].ID == id {
			s.jobs = append(s.jobs[:i], s.jobs[i+1:]...)
			return c.JSON(http.StatusOK, echo.Map{"status": "deleted"})
		}
	}
	return c.JSON(http.StatusNotFound, echo.Map{"detail": "job not found"})
}

func (s *server) applicants(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"applicants": []domain.Applicant{
			{ID: "a1", ResumeID: "r1", Name: "Dana Reeve", Email: "dana@example.com", AppliedAt: time.Now().Add(-20 * time.Hour)},
		},
	})
}

func (s *server) employees(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"employees": []domain.EmployeeRecord{
			{EmployeeID: "E1001", Name: "Dana Reeve", Email: "dana@example.com"},
			{EmployeeID: "E1002", Name: "Arjun Mehta", Email: "arjun@example.com"},
		},
	})
}

func (s *server) employeeListConfig(c echo.Context) error {
	return c.JSON(http.StatusOK, domain.EmployeeListConfig{Enabled: true, Source: "upload", RowCount: 2})
}

func (s *server) updateEmployeeListConfig(c echo.Context) error {
	var cfg domain.EmployeeListConfig
	if err := c.Bind(&cfg); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "invalid request"})
	}
	return c.JSON(http.StatusOK, cfg)
}

func (s *server) uploadEmployeeList(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "uploaded", "filename": c.QueryParam("filename")})
}

func seedJobs() []domain.JobOpening {
	return []domain.JobOpening{
		{
			ID:       "j_seed1",
			Title:    "Senior Backend Engineer",
			Location: "Remote",
			JobType:  "full_time",
			Status:   domain.JobStatusOpen,
			PostedAt: time.Now().Add(-72 * time.Hour),
		},
		{
			ID:       "j_seed2",
			Title:    "Talent Acquisition Specialist",
			Location: "Berlin",
			JobType:  "full_time",
			Status:   domain.JobStatusOpen,
			PostedAt: time.Now().Add(-24 * time.Hour),
		},
	}
}
