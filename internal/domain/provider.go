package domain

import "time"

// Provider represents an external production provider (printing, media, etc).
type Provider struct {
	ID           string
	Name         string
	ServiceType  string
	ContactEmail string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
