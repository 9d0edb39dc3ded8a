package accounts

import (
	"time"

	"ticketdesk/internal/listview"
)

// Role is a platform capability held by an account.
type Role string

const (
	RoleBuyer     Role = "buyer"
	RoleOrganizer Role = "organizer"
)

// Status is the moderation state of an account.
type Status string

const (
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
)

// Account is one platform user as the admin console sees it.
type Account struct {
	ID            string
	Name          string
	Email         string
	Avatar        string
	Roles         []Role
	Status        Status
	JoinedAt      time.Time
	TicketsBought int
	EventsCreated int
	Notes         string
}

// RecordID implements listview.Record.
func (a Account) RecordID() string { return a.ID }

// HasRole reports whether the account holds the given role.
func (a Account) HasRole(role Role) bool {
	for _, r := range a.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// RoleFilter selects accounts by their exact role set, not by
// containment: "buyer" means exactly {buyer}, "both" means both roles.
type RoleFilter string

const (
	RoleFilterAny           RoleFilter = ""
	RoleFilterBuyerOnly     RoleFilter = "buyer"
	RoleFilterOrganizerOnly RoleFilter = "organizer"
	RoleFilterBoth          RoleFilter = "both"
)

func (f RoleFilter) matches(a Account) bool {
	switch f {
	case RoleFilterBuyerOnly:
		return len(a.Roles) == 1 && a.HasRole(RoleBuyer)
	case RoleFilterOrganizerOnly:
		return len(a.Roles) == 1 && a.HasRole(RoleOrganizer)
	case RoleFilterBoth:
		return len(a.Roles) == 2
	default:
		return true
	}
}

// Criteria is the active filter set for the accounts console. Zero
// values mean the criterion is inactive.
type Criteria struct {
	Query  string
	Role   RoleFilter
	Status Status
}

// Matches reports whether the account satisfies every active
// criterion. The text query searches name, email and id.
func (c Criteria) Matches(a Account) bool {
	if !listview.TextMatch(c.Query, a.Name, a.Email, a.ID) {
		return false
	}
	if c.Status != "" && a.Status != c.Status {
		return false
	}
	return c.Role.matches(a)
}

// Summary is the roll-up over the full collection, independent of
// filtering and pagination. Organizers counts by containment, unlike
// the role filter's set-equality semantics.
type Summary struct {
	Total       int
	NewThisWeek int
	Organizers  int
	Suspended   int
}

// Summarize computes the summary over the full collection.
func Summarize(all []Account, now time.Time) Summary {
	weekAgo := now.AddDate(0, 0, -7)
	s := Summary{Total: len(all)}
	for _, a := range all {
		if a.JoinedAt.After(weekAgo) {
			s.NewThisWeek++
		}
		if a.HasRole(RoleOrganizer) {
			s.Organizers++
		}
		if a.Status == StatusSuspended {
			s.Suspended++
		}
	}
	return s
}
