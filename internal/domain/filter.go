package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// FilterResumes applies client-side refinement to an already-fetched resume
// list. All matching is case-insensitive. A resume must carry every requested
// skill; list filters (user types, locations, roles) match any value.
func FilterResumes(items []ResumeSummary, f SearchFilters) []ResumeSummary {
	var out []ResumeSummary
	for _, r := range items {
		if !matchesFilters(r, f) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func matchesFilters(r ResumeSummary, f SearchFilters) bool {
	if f.MinExperience > 0 && r.Experience < f.MinExperience {
		return false
	}
	if len(f.UserTypes) > 0 && !containsFold(f.UserTypes, r.UserType) {
		return false
	}
	if len(f.Locations) > 0 && !anyContainsFold(f.Locations, r.Location) {
		return false
	}
	if len(f.Roles) > 0 && !anyContainsFold(f.Roles, r.Role) {
		return false
	}
	for _, want := range f.Skills {
		if !containsFold(r.Skills, want) {
			return false
		}
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		hay := strings.ToLower(r.Name + " " + r.Email + " " + r.Role + " " + strings.Join(r.Skills, " "))
		if !strings.Contains(hay, strings.ToLower(q)) {
			return false
		}
	}
	return true
}

func containsFold(list []string, want string) bool {
	for _, v := range list {
		if strings.EqualFold(strings.TrimSpace(v), strings.TrimSpace(want)) {
			return true
		}
	}
	return false
}

func anyContainsFold(wants []string, have string) bool {
	have = strings.ToLower(have)
	for _, w := range wants {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" && strings.Contains(have, w) {
			return true
		}
	}
	return false
}

// SortResumesByUploadDesc orders resumes newest-first, in place.
func SortResumesByUploadDesc(items []ResumeSummary) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].UploadedAt.After(items[j].UploadedAt)
	})
}

// SortJobsByPostedDesc orders job openings newest-first, in place.
func SortJobsByPostedDesc(items []JobOpening) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].PostedAt.After(items[j].PostedAt)
	})
}

// TimeAgo renders a timestamp as a short relative label for notification
// rows ("just now", "5m ago", "3h ago", "2d ago").
func TimeAgo(t time.Time, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
