// Package domain defines the core models for the recruiting platform client.
package domain

import "strings"

// Role represents a user's role on the platform.
type Role string

const (
	RoleAdmin             Role = "admin"
	RoleTalentAcquisition Role = "talent_acquisition"
	RoleHR                Role = "hr"
	RoleUser              Role = "user"
	RoleGuest             Role = "guest"
)

// NormalizeRole canonicalizes role strings from the backend.
// "Talent Acquisition" and "talent-acquisition" both map to talent_acquisition.
func NormalizeRole(s string) Role {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	return Role(s)
}

// NotificationType represents the kind of a notification item.
type NotificationType string

const (
	NotificationReminder       NotificationType = "reminder"
	NotificationLogin          NotificationType = "login"
	NotificationJobApplication NotificationType = "job_application"
	NotificationResumeUpload   NotificationType = "resume_upload"
)

// Label returns the display label for a notification type.
func (t NotificationType) Label() string {
	switch t {
	case NotificationReminder:
		return "Reminder"
	case NotificationLogin:
		return "Login"
	case NotificationJobApplication:
		return "Job Application"
	case NotificationResumeUpload:
		return "Resume Upload"
	default:
		words := strings.Split(strings.ReplaceAll(string(t), "_", " "), " ")
		for i, w := range words {
			if w != "" {
				words[i] = strings.ToUpper(w[:1]) + w[1:]
			}
		}
		return strings.Join(words, " ")
	}
}

// MessageRole represents the author of a chat message.
type MessageRole string

const (
	MessageRoleUser MessageRole = "user"
	MessageRoleBot  MessageRole = "bot"
)

// JobStatus represents the publication state of a job opening.
type JobStatus string

const (
	JobStatusOpen   JobStatus = "open"
	JobStatusClosed JobStatus = "closed"
	JobStatusDraft  JobStatus = "draft"
)
