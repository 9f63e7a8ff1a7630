package models

// Actor is the calling identity handed to every access decision.
// The zero value is the anonymous actor.
type Actor struct {
	ID   uint
	Role Role
}

// Anonymous is the actor of a request that carried no identity.
var Anonymous = Actor{}

func (a Actor) IsAnonymous() bool { return a.ID == 0 }

func (a Actor) IsAdmin() bool { return !a.IsAnonymous() && a.Role == RoleAdmin }
