package user

import "github.com/google/uuid"

// Actor is the authenticated caller of a booking operation.
type Actor struct {
	ID   uuid.UUID
	Role Role
}

func NewActor(id uuid.UUID, role Role) Actor {
	return Actor{ID: id, Role: role}
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// CanAccessBooking reports whether the actor is the booking's guest, its host, or an admin.
func (a Actor) CanAccessBooking(guestID, hostID uuid.UUID) bool {
	if a.IsAdmin() {
		return true
	}
	return a.ID == guestID || a.ID == hostID
}
