package models

// Registration is the payload submitted to one of the role-specific
// registration endpoints. Registration never yields a session token; the user
// logs in separately afterwards.
type Registration struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`

	// Collector registrations carry the municipality they serve.
	MunicipalityName string `json:"municipalityName,omitempty"`
}

// ProfileUpdate is a partial UserRecord-shaped payload for the profile-update
// endpoint. Empty fields are omitted and left untouched by the backend.
type ProfileUpdate struct {
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
}
