package inmemory

import (
	"sync"

	"github.com/docshelf/warden/pkg/warden"
)

// InMemoryStore backs the API for development and tests. It holds group,
// permission, and membership state in maps; a single RWMutex stands in for
// the transactional integrity the SQL store gets from the database.
type InMemoryStore struct {
	mu sync.RWMutex

	groups      map[string]warden.Group
	permissions map[string][]warden.Permission

	memberships map[warden.Principal][]string
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		groups:      make(map[string]warden.Group),
		permissions: make(map[string][]warden.Permission),
		memberships: make(map[warden.Principal][]string),
	}
}

func dedupePermissions(permissions []warden.Permission) []warden.Permission {
	var out []warden.Permission
	seen := make(map[warden.Permission]struct{})

	for _, p := range permissions {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}

	return out
}

func samePermissionSet(a, b []warden.Permission) bool {
	a = dedupePermissions(a)
	b = dedupePermissions(b)

	if len(a) != len(b) {
		return false
	}

	set := make(map[warden.Permission]struct{}, len(a))
	for _, p := range a {
		set[p] = struct{}{}
	}

	for _, p := range b {
		if _, ok := set[p]; !ok {
			return false
		}
	}

	return true
}
