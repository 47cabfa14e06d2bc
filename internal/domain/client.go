package domain

import "time"

// Client represents an advertising client of the agency.
type Client struct {
	ID           string
	Name         string
	ContactName  string
	ContactEmail string
	Industry     string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
