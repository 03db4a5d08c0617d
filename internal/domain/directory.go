package domain

import (
	"context"
	"strings"
)

// Role is a capability an identity may hold.
type Role string

const (
	RoleParticipant  Role = "PARTICIPANT"
	RoleEventManager Role = "EVENT_MANAGER"
	RoleAdmin        Role = "ADMIN"
	RoleJobSeeker    Role = "JOB_SEEKER"
	RoleEmployer     Role = "EMPLOYER"
)

// RoleSet holds the roles reported by the identity service. Unknown names are
// kept so membership stays a plain set containment check.
type RoleSet map[Role]struct{}

func NewRoleSet(roles ...string) RoleSet {
	set := make(RoleSet, len(roles))
	for _, r := range roles {
		r = strings.ToUpper(strings.TrimSpace(r))
		if r == "" {
			continue
		}
		set[Role(r)] = struct{}{}
	}
	return set
}

func (s RoleSet) Has(role Role) bool {
	_, ok := s[role]
	return ok
}

// LookupKind selects which remote collaborator answers an existence query.
type LookupKind int

const (
	KindIdentity LookupKind = iota
	KindListing
)

func (k LookupKind) String() string {
	switch k {
	case KindIdentity:
		return "identity"
	case KindListing:
		return "listing"
	default:
		return "unknown"
	}
}

// LookupOutcome classifies one remote round trip.
type LookupOutcome int

const (
	LookupFound LookupOutcome = iota
	LookupNotFound
	LookupUnreachable
)

func (o LookupOutcome) String() string {
	switch o {
	case LookupFound:
		return "found"
	case LookupNotFound:
		return "not_found"
	default:
		return "unreachable"
	}
}

// Lookup is the result of a directory call. Roles is only set for a Found
// identity attribute lookup; Err carries the transport cause of Unreachable.
type Lookup struct {
	Outcome LookupOutcome
	Roles   RoleSet
	Err     error
}

func Found(roles RoleSet) Lookup { return Lookup{Outcome: LookupFound, Roles: roles} }

func NotFound() Lookup { return Lookup{Outcome: LookupNotFound} }

func Unreachable(err error) Lookup { return Lookup{Outcome: LookupUnreachable, Err: err} }

// Directory answers existence and attribute questions about entities owned by
// other services. One call is one round trip: no retries, no caching.
type Directory interface {
	Exists(ctx context.Context, kind LookupKind, id string) Lookup
	Roles(ctx context.Context, userID string) Lookup
}
