package dto

// ClientRequest payload for create/update.
type ClientRequest struct {
	Name         string `json:"name"`
	ContactName  string `json:"contact_name"`
	ContactEmail string `json:"contact_email"`
	Industry     string `json:"industry"`
	IsActive     *bool  `json:"is_active"`
}

// ProviderRequest payload for create/update.
type ProviderRequest struct {
	Name         string `json:"name"`
	ServiceType  string `json:"service_type"`
	ContactEmail string `json:"contact_email"`
	IsActive     *bool  `json:"is_active"`
}
