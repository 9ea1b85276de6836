package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/kapilcyber/bank.ai-sub001/internal/domain"
)

// DashboardStats fetches the admin dashboard summary. userType optionally
// narrows resume-based metrics to one talent category.
func (c *Client) DashboardStats(ctx context.Context, userType string) (*domain.DashboardStats, error) {
	q := url.Values{}
	if userType != "" {
		q.Set("user_type", userType)
	}
	var stats domain.DashboardStats
	if err := c.doJSON(ctx, http.MethodGet, "/admin/stats", q, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Notifications fetches recent activity items within windowDays, capped at
// limit. The backend derives the unread count from the returned batch.
func (c *Client) Notifications(ctx context.Context, limit, windowDays int) (*domain.NotificationBatch, error) {
	q := url.Values{
		"limit": {strconv.Itoa(limit)},
		"days":  {strconv.Itoa(windowDays)},
	}
	var batch domain.NotificationBatch
	if err := c.doJSON(ctx, http.MethodGet, "/admin/notifications", q, nil, &batch); err != nil {
		return nil, err
	}
	return &batch, nil
}

// Invite asks the backend to email a staff invite.
func (c *Client) Invite(ctx context.Context, req domain.InviteRequest) error {
	return c.doJSON(ctx, http.MethodPost, "/admin/invite", nil, req, nil)
}

// Users lists platform accounts.
func (c *Client) Users(ctx context.Context) ([]domain.UserAccount, error) {
	var resp struct {
		Users []domain.UserAccount `json:"users"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/admin/users", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}

// DeleteUser removes an account.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/admin/users/"+url.PathEscape(id), nil, nil, nil)
}

// Employees fetches the company employee list.
func (c *Client) Employees(ctx context.Context) ([]domain.EmployeeRecord, error) {
	var resp struct {
		Employees []domain.EmployeeRecord `json:"employees"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/employees", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Employees, nil
}

// EmployeeListConfig fetches the employee verification settings.
func (c *Client) EmployeeListConfig(ctx context.Context) (*domain.EmployeeListConfig, error) {
	var cfg domain.EmployeeListConfig
	if err := c.doJSON(ctx, http.MethodGet, "/employee-list-config", nil, nil, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// UpdateEmployeeListConfig stores new employee verification settings.
func (c *Client) UpdateEmployeeListConfig(ctx context.Context, cfg domain.EmployeeListConfig) error {
	return c.doJSON(ctx, http.MethodPut, "/employee-list-config", nil, cfg, nil)
}

// UploadEmployeeList uploads a replacement employee CSV.
func (c *Client) UploadEmployeeList(ctx context.Context, filename string, data []byte) error {
	return c.upload(ctx, "/employee-list/upload", filename, data, nil)
}
