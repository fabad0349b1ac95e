package inmemory_test

import (
	. "github.com/docshelf/warden/pkg/api/repos/inmemory"

	"github.com/docshelf/warden/pkg/api/repos"
	. "github.com/docshelf/warden/pkg/api/repos/reposbehaviors"
	. "github.com/onsi/ginkgo"
)

var _ = Describe("InMemoryStore", func() {
	var (
		store *InMemoryStore
	)

	BeforeEach(func() {
		store = NewInMemoryStore()
	})

	BehavesLikeAGroupRepo(
		func() repos.GroupRepo { return store },
		func() repos.MembershipRepo { return store },
	)
	BehavesLikeAMembershipRepo(
		func() repos.MembershipRepo { return store },
		func() repos.GroupRepo { return store },
	)
	BehavesLikeAPermissionRepo(
		func() repos.PermissionRepo { return store },
		func() repos.GroupRepo { return store },
		func() repos.MembershipRepo { return store },
	)
})
