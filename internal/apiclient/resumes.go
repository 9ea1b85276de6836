package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/kapilcyber/bank.ai-sub001/internal/domain"
)

// SearchResumes queries the resume search endpoint.
func (c *Client) SearchResumes(ctx context.Context, f domain.SearchFilters) ([]domain.ResumeSummary, error) {
	q := url.Values{}
	if f.Query != "" {
		q.Set("q", f.Query)
	}
	if len(f.Skills) > 0 {
		q.Set("skills", strings.Join(f.Skills, ","))
	}
	for _, ut := range f.UserTypes {
		q.Add("user_types", ut)
	}
	for _, loc := range f.Locations {
		q.Add("locations", loc)
	}
	for _, role := range f.Roles {
		q.Add("roles", role)
	}
	if f.MinExperience > 0 {
		q.Set("min_experience", strconv.FormatFloat(f.MinExperience, 'f', -1, 64))
	}

	var resp struct {
		Resumes []domain.ResumeSummary `json:"resumes"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/resumes/search", q, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Resumes, nil
}

// TriggerOutlookSync asks the backend to pull resumes from the Outlook inbox.
func (c *Client) TriggerOutlookSync(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, "/resumes/outlook/trigger", nil, nil, nil)
}
