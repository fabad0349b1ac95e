package db_test

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/docshelf/warden/pkg/api/repos"
	"github.com/docshelf/warden/pkg/api/repos/db"
	. "github.com/docshelf/warden/pkg/api/repos/reposbehaviors"
	"github.com/docshelf/warden/pkg/sqlx"
)

var _ = Describe("DataService", func() {
	var (
		store *db.DataService
		conn  *sqlx.DB
	)

	BeforeEach(func() {
		var err error

		conn, err = testDB.Connect()
		Expect(err).NotTo(HaveOccurred())

		store = db.NewDataService(conn)
	})

	AfterEach(func() {
		Expect(conn.Close()).To(Succeed())

		err := testDB.Truncate(
			"DELETE FROM membership",
			"DELETE FROM permission",
			"DELETE FROM user_group",
			"DELETE FROM principal",
		)
		Expect(err).NotTo(HaveOccurred())
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
