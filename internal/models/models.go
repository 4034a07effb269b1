package models

import (
	"time"
)

// Session is an authenticated portal session.
// @Description Session represents a logged-in portal user bound to one customer.
type Session struct {
	Token      string    `json:"token" gorm:"type:varchar(36);primary_key"`
	UserID     string    `json:"userId" gorm:"type:varchar(64);not null;index"`
	CustomerID string    `json:"customerId" gorm:"type:varchar(16);not null"`
	CreatedAt  time.Time `json:"createdAt" gorm:"autoCreateTime"`
	ExpiresAt  time.Time `json:"expiresAt" gorm:"not null;index"`
}

// CallRecord is the audit row written for every backend operation.
// @Description CallRecord records the outcome of one backend operation.
type CallRecord struct {
	ID         string    `json:"id" gorm:"type:varchar(36);primary_key"`
	Operation  string    `json:"operation" gorm:"type:varchar(64);not null;index"`
	CustomerID string    `json:"customerId,omitempty" gorm:"type:varchar(16);index"`
	Outcome    string    `json:"outcome" gorm:"type:varchar(32);not null"`
	HTTPStatus int       `json:"httpStatus"`
	DurationMS int64     `json:"durationMs"`
	Error      string    `json:"error,omitempty" gorm:"type:text"`
	CreatedAt  time.Time `json:"createdAt" gorm:"autoCreateTime"`
}

// LoginRequest defines the request payload for logging in.
type LoginRequest struct {
	UserID   string `json:"userId" binding:"required,max=64"`
	Password string `json:"password" binding:"required,max=128"`
}

// LoginResult is returned on successful login.
type LoginResult struct {
	Token     string    `json:"token"`
	Kunnr     string    `json:"kunnr"`
	UserID    string    `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// CustomerRequest is the optional body of list endpoints. Older clients send
// kunnr, newer ones customerId.
type CustomerRequest struct {
	Kunnr      string `json:"kunnr,omitempty"`
	CustomerID string `json:"customerId,omitempty"`
}

// Customer returns whichever identifier was supplied.
func (r CustomerRequest) Customer() string {
	if r.CustomerID != "" {
		return r.CustomerID
	}
	return r.Kunnr
}

// DashboardSummary holds document counts for the dashboard tiles.
type DashboardSummary struct {
	Inquiries  int `json:"inquiries"`
	Orders     int `json:"orders"`
	Deliveries int `json:"deliveries"`
	Invoices   int `json:"invoices"`
}

// APIResponse is the envelope every successful response is wrapped in.
// @Description APIResponse wraps successful responses. Data is always present; list endpoints return an array.
type APIResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data"`
}
