package domain

import "time"

// Organization is the customer account a ticket belongs to.
type Organization struct {
	ID             string
	Name           string
	AccountManager *string
	CreatedAt      time.Time
}

// Contact is the requester identity on the customer side.
type Contact struct {
	ID             string
	OrganizationID string
	Name           string
	Email          string
	CreatedAt      time.Time
}

// Device is a registered piece of equipment owned by a contact.
type Device struct {
	ID        string
	ContactID string
	Name      string
	Status    string
	CreatedAt time.Time
}

// Location is a physical site. Sites flagged ForceHumanAgent (data centers)
// bypass bot triage entirely on assignment.
type Location struct {
	ID              string
	OrganizationID  string
	Name            string
	ForceHumanAgent bool
	CreatedAt       time.Time
}
