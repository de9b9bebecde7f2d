package domain

import "time"

// Snapshot is the subset of a user copied into the session store at login.
// It is not refreshed until the next login.
type Snapshot struct {
	ID          int64  `db:"user_id" json:"id"`
	Email       string `db:"email" json:"email"`
	Role        Role   `db:"role" json:"role"`
	DisplayName string `db:"displayname" json:"displayname"`
	Surname     string `db:"surname" json:"surname"`
}

type Session struct {
	Token     string
	Snapshot  Snapshot
	ExpiresAt time.Time
}

// Principal is either Anonymous or Authenticated with a snapshot.
type Principal struct {
	snap *Snapshot
}

func Anonymous() Principal { return Principal{} }

func Authenticated(s Snapshot) Principal { return Principal{snap: &s} }

func (p Principal) Snapshot() (Snapshot, bool) {
	if p.snap == nil {
		return Snapshot{}, false
	}
	return *p.snap, true
}

func (p Principal) IsAuthenticated() bool { return p.snap != nil }

// HasRole reports whether the principal is authenticated with one of roles.
func (p Principal) HasRole(roles ...Role) bool {
	if p.snap == nil {
		return false
	}
	for _, r := range roles {
		if p.snap.Role == r {
			return true
		}
	}
	return false
}
