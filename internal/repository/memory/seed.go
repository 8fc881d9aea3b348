package memory

import (
	"github.com/shushovitJR/Yeti-Repair-backend/internal/models"
)

// SeedUser inserts one user and returns its id. The department must exist.
func (s *Store) SeedUser(u models.User, c models.Credential) int {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	u.ID = s.st.d.next()
	s.st.d.users[u.ID] = userRow{user: u, cred: c}
	return u.ID
}

// Credential returns the stored credential of a user.
func (s *Store) Credential(userID int) models.Credential {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	return s.st.d.users[userID].cred
}

// SeedStatuses installs the rows of the status seed migration.
func (s *Store) SeedStatuses() {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	d := s.st.d
	for _, st := range []models.Status{
		{Name: "Pending", Color: "#F59E0B", Description: "Waiting to be sent to a vendor"},
		{Name: "In Progress", Color: "#3B82F6", Description: "With the vendor"},
		{Name: "Repaired", Color: "#10B981", Description: "Repair finished"},
		{Name: "Received", Color: "#059669", Description: "Device returned to the owner"},
		{Name: "Cancelled", Color: "#6B7280", Description: "Repair abandoned"},
	} {
		st.ID = d.next()
		d.statuses[models.RepairStatus][st.ID] = st
	}
	for _, st := range []models.Status{
		{Name: "Pending", Color: "#F59E0B", Description: "Awaiting approval"},
		{Name: "On Hold", Color: "#8B5CF6", Description: "Paused by IT"},
		{Name: "Received", Color: "#10B981", Description: "Device handed to the requester"},
		{Name: "Cancelled", Color: "#6B7280", Description: "Request withdrawn"},
	} {
		st.ID = d.next()
		d.statuses[models.RequestStatus][st.ID] = st
	}
}
