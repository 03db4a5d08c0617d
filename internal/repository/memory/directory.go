package memory

import (
	"context"
	"errors"
	"sync"

	"go-jobboard-backend/internal/domain"
)

var errCollaboratorDown = errors.New("collaborator marked unreachable")

// Directory is an in-process stand-in for the identity and listing services.
// It honors the same Found / NotFound / Unreachable contract as the HTTP client.
type Directory struct {
	mu          sync.RWMutex
	identities  map[string]domain.RoleSet
	listings    map[string]struct{}
	unreachable map[domain.LookupKind]bool
	calls       map[domain.LookupKind]int
}

func NewDirectory() *Directory {
	return &Directory{
		identities:  make(map[string]domain.RoleSet),
		listings:    make(map[string]struct{}),
		unreachable: make(map[domain.LookupKind]bool),
		calls:       make(map[domain.LookupKind]int),
	}
}

func (d *Directory) AddIdentity(id string, roles ...string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.identities[id] = domain.NewRoleSet(roles...)
}

func (d *Directory) RemoveIdentity(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.identities, id)
}

func (d *Directory) AddListing(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listings[id] = struct{}{}
}

func (d *Directory) RemoveListing(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.listings, id)
}

// SetUnreachable makes every lookup of kind fail as if the service were down.
func (d *Directory) SetUnreachable(kind domain.LookupKind, down bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.unreachable[kind] = down
}

// Calls returns how many round trips of kind have been made.
func (d *Directory) Calls(kind domain.LookupKind) int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.calls[kind]
}

func (d *Directory) Exists(ctx context.Context, kind domain.LookupKind, id string) domain.Lookup {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.calls[kind]++
	if d.unreachable[kind] {
		return domain.Unreachable(errCollaboratorDown)
	}

	var ok bool
	switch kind {
	case domain.KindIdentity:
		_, ok = d.identities[id]
	case domain.KindListing:
		_, ok = d.listings[id]
	}
	if !ok {
		return domain.NotFound()
	}
	return domain.Found(nil)
}

func (d *Directory) Roles(ctx context.Context, userID string) domain.Lookup {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.calls[domain.KindIdentity]++
	if d.unreachable[domain.KindIdentity] {
		return domain.Unreachable(errCollaboratorDown)
	}

	roles, ok := d.identities[userID]
	if !ok {
		return domain.NotFound()
	}
	copied := make(domain.RoleSet, len(roles))
	for r := range roles {
		copied[r] = struct{}{}
	}
	return domain.Found(copied)
}
