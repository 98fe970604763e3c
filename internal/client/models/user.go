// Package models contains the data types exchanged between the WastePoint
// client layers and the backend API.
package models

// UserRecord represents the authenticated principal. It is created on a
// successful login, registration, or session restoration, merged (never
// replaced) by profile updates, and discarded on logout.
type UserRecord struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	RoleName  Role   `json:"roleName"`

	// Role-specific optional fields.
	CollectorStatus  string `json:"collectorStatus,omitempty"`
	MunicipalityName string `json:"municipalityName,omitempty"`
}

// Merge returns a copy of u overlaid with the fields present in update.
// Fields the update leaves empty keep their current values; in particular
// RoleName is never cleared by a partial profile response, so consumers may
// rely on a stale-but-present role.
func (u UserRecord) Merge(update UserRecord) UserRecord {
	merged := u
	if update.ID != "" {
		merged.ID = update.ID
	}
	if update.FirstName != "" {
		merged.FirstName = update.FirstName
	}
	if update.LastName != "" {
		merged.LastName = update.LastName
	}
	if update.Email != "" {
		merged.Email = update.Email
	}
	if update.Phone != "" {
		merged.Phone = update.Phone
	}
	if update.Address != "" {
		merged.Address = update.Address
	}
	if update.RoleName != "" {
		merged.RoleName = update.RoleName
	}
	if update.CollectorStatus != "" {
		merged.CollectorStatus = update.CollectorStatus
	}
	if update.MunicipalityName != "" {
		merged.MunicipalityName = update.MunicipalityName
	}
	return merged
}
