package domain

import (
	"time"
)

// MaxChatSessions is the cap on persisted chat sessions. Inserting beyond the
// cap evicts the oldest session.
const MaxChatSessions = 50

// maxTitleLen is the display length a chat title is truncated to.
const maxTitleLen = 35

// Profile is the authenticated user's profile as returned by the backend.
type Profile struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         Role   `json:"role"`
	ProfileImage string `json:"profile_image,omitempty"`
}

// Session is the authenticated client state: bearer token plus profile.
// Exactly one session is active per client at a time.
type Session struct {
	Token   string  `json:"token"`
	Profile Profile `json:"profile"`
}

// NotificationItem is a single activity notification. Items are immutable
// once received; the unread count is derived from the batch, never stored
// per item.
type NotificationItem struct {
	ID         string           `json:"id"`
	Type       NotificationType `json:"type"`
	Message    string           `json:"message"`
	Timestamp  time.Time        `json:"timestamp"`
	ResumeID   string           `json:"resume_id,omitempty"`
	JobTitle   string           `json:"job_title,omitempty"`
	SourceType string           `json:"source_type,omitempty"`
	Filename   string           `json:"filename,omitempty"`
	UserID     string           `json:"user_id,omitempty"`
	Email      string           `json:"email,omitempty"`
}

// NotificationBatch is the result of one notification fetch.
type NotificationBatch struct {
	Items       []NotificationItem `json:"notifications"`
	UnreadCount int                `json:"unread_count"`
}

// ChatMessage is one turn in an assistant conversation. Error marks a bot
// message that records a failed request.
type ChatMessage struct {
	Role  MessageRole `json:"role"`
	Text  string      `json:"text"`
	Error bool        `json:"error,omitempty"`
}

// ChatSession is one persisted conversation thread with the help assistant.
type ChatSession struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	Messages  []ChatMessage `json:"messages"`
	CreatedAt time.Time     `json:"created_at"`
}

// FirstUserMessage returns the first user-authored message, or "" if none.
func (s *ChatSession) FirstUserMessage() string {
	for _, m := range s.Messages {
		if m.Role == MessageRoleUser {
			return m.Text
		}
	}
	return ""
}

// HasUserMessage reports whether the session contains at least one
// user-authored message. Sessions without one are never persisted.
func (s *ChatSession) HasUserMessage() bool {
	return s.FirstUserMessage() != ""
}

// DeriveTitle builds a session title from the first user message, truncated
// to 35 characters with an ellipsis.
func DeriveTitle(firstMessage string) string {
	runes := []rune(firstMessage)
	if len(runes) <= maxTitleLen {
		return firstMessage
	}
	return string(runes[:maxTitleLen]) + "..."
}

// LoginRequest is the POST /auth/login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the backend reply to a successful login.
type LoginResponse struct {
	Token string  `json:"access_token"`
	User  Profile `json:"user"`
}

// SignupRequest is the POST /auth/signup payload.
type SignupRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Role       string `json:"role"`
	EmployeeID string `json:"employee_id,omitempty"`
}

// SetPasswordRequest completes an invite or reset flow.
type SetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// AssistantQuery is the POST /assistant/query payload.
type AssistantQuery struct {
	Message string `json:"message"`
}

// AssistantReply is the assistant backend response.
type AssistantReply struct {
	Response string `json:"response"`
}

// JobOpening is a published job position.
type JobOpening struct {
	ID                 string    `json:"id"`
	Title              string    `json:"title"`
	Department         string    `json:"department,omitempty"`
	Location           string    `json:"location,omitempty"`
	JobType            string    `json:"job_type,omitempty"`
	ExperienceRequired string    `json:"experience_required,omitempty"`
	Description        string    `json:"description,omitempty"`
	Status             JobStatus `json:"status"`
	PostedAt           time.Time `json:"posted_at"`
}

// Applicant is one application against a job opening.
type Applicant struct {
	ID        string    `json:"id"`
	ResumeID  string    `json:"resume_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	JobTitle  string    `json:"job_title,omitempty"`
	AppliedAt time.Time `json:"applied_at"`
}

// ResumeSummary is a resume row as returned by the search endpoint.
type ResumeSummary struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email,omitempty"`
	Skills     []string  `json:"skills,omitempty"`
	Experience float64   `json:"experience_years,omitempty"`
	UserType   string    `json:"user_type,omitempty"`
	Location   string    `json:"location,omitempty"`
	Role       string    `json:"role,omitempty"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// SearchFilters are the query parameters accepted by the resume search
// endpoint, and the client-side refinement applied to fetched lists.
type SearchFilters struct {
	Query         string
	Skills        []string
	UserTypes     []string
	Locations     []string
	Roles         []string
	MinExperience float64
}

// DashboardStats is the admin dashboard summary.
type DashboardStats struct {
	TotalUsers      int            `json:"total_users"`
	TotalResumes    int            `json:"total_resumes"`
	TotalJobs       int            `json:"total_jobs"`
	TotalMatches    int            `json:"total_matches"`
	ResumesByType   map[string]int `json:"resumes_by_type,omitempty"`
	UploadsByWeek   map[string]int `json:"uploads_by_week,omitempty"`
	RecentUploads   int            `json:"recent_uploads,omitempty"`
	ActiveOpenings  int            `json:"active_openings,omitempty"`
	PendingInvites  int            `json:"pending_invites,omitempty"`
	LoginsThisWeek  int            `json:"logins_this_week,omitempty"`
	StorageUsedMB   float64        `json:"storage_used_mb,omitempty"`
	LastOutlookSync *time.Time     `json:"last_outlook_sync,omitempty"`
}

// UserAccount is an account row in the admin user list.
type UserAccount struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Role        Role       `json:"role"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// InviteRequest asks the backend to invite a staff member.
type InviteRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// EmployeeRecord is one row of the company employee list.
type EmployeeRecord struct {
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
}

// EmployeeListConfig controls employee verification during signup.
type EmployeeListConfig struct {
	Enabled  bool   `json:"enabled"`
	Source   string `json:"source,omitempty"`
	RowCount int    `json:"row_count,omitempty"`
}
