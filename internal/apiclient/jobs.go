package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/kapilcyber/bank.ai-sub001/internal/domain"
)

// Jobs lists job openings.
func (c *Client) Jobs(ctx context.Context) ([]domain.JobOpening, error) {
	var resp struct {
		Jobs []domain.JobOpening `json:"jobs"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/jobs", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Jobs, nil
}

// CreateJob publishes a new job opening and returns it with its id assigned.
func (c *Client) CreateJob(ctx context.Context, job domain.JobOpening) (*domain.JobOpening, error) {
	var created domain.JobOpening
	if err := c.doJSON(ctx, http.MethodPost, "/jobs", nil, job, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateJob replaces a job opening.
func (c *Client) UpdateJob(ctx context.Context, job domain.JobOpening) error {
	return c.doJSON(ctx, http.MethodPut, "/jobs/"+url.PathEscape(job.ID), nil, job, nil)
}

// DeleteJob removes a job opening.
func (c *Client) DeleteJob(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/jobs/"+url.PathEscape(id), nil, nil, nil)
}

// Applicants lists applications for a job opening.
func (c *Client) Applicants(ctx context.Context, jobID string) ([]domain.Applicant, error) {
	var resp struct {
		Applicants []domain.Applicant `json:"applicants"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/jobs/"+url.PathEscape(jobID)+"/applicants", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Applicants, nil
}
