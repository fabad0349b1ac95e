package reposbehaviors_test

import (
	"context"
	"time"

	"code.cloudfoundry.org/lager/lagertest"
	"github.com/docshelf/warden/pkg/api/repos"
	"github.com/docshelf/warden/pkg/logx"
	"github.com/docshelf/warden/pkg/logx/lagerx"
	"github.com/docshelf/warden/pkg/warden"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	uuid "github.com/satori/go.uuid"
)

func BehavesLikeAMembershipRepo(
	subjectCreator func() repos.MembershipRepo,
	groupRepoCreator func() repos.GroupRepo,
) {
	var (
		subject repos.MembershipRepo

		groupRepo repos.GroupRepo

		ctx    context.Context
		logger logx.Logger

		cancelFunc context.CancelFunc
	)

	BeforeEach(func() {
		subject = subjectCreator()
		groupRepo = groupRepoCreator()

		ctx, cancelFunc = context.WithTimeout(context.Background(), 1*time.Second)
		logger = lagerx.NewLogger(lagertest.NewTestLogger("warden-test"))
	})

	AfterEach(func() {
		cancelFunc()
	})

	Describe("#AssignPrincipal", func() {
		It("adds the principal to the group", func() {
			groupName := uuid.NewV4().String()
			principal := warden.Principal{ID: uuid.NewV4().String(), Issuer: "test"}

			_, err := groupRepo.CreateGroup(ctx, logger, groupName)
			Expect(err).NotTo(HaveOccurred())

			err = subject.AssignPrincipal(ctx, logger, groupName, principal)
			Expect(err).NotTo(HaveOccurred())

			groups, err := subject.ListPrincipalGroups(ctx, logger, repos.ListPrincipalGroupsQuery{Principal: principal})
			Expect(err).NotTo(HaveOccurred())
			Expect(groups).To(ConsistOf(warden.Group{Name: groupName}))
		})

		It("fails if the principal is already a member", func() {
			groupName := uuid.NewV4().String()
			principal := warden.Principal{ID: uuid.NewV4().String(), Issuer: "test"}

			_, err := groupRepo.CreateGroup(ctx, logger, groupName)
			Expect(err).NotTo(HaveOccurred())

			Expect(subject.AssignPrincipal(ctx, logger, groupName, principal)).To(Succeed())

			err = subject.AssignPrincipal(ctx, logger, groupName, principal)
			Expect(err).To(Equal(warden.ErrMembershipAlreadyExists))
		})

		It("fails if the group does not exist", func() {
			principal := warden.Principal{ID: uuid.NewV4().String(), Issuer: "test"}

			err := subject.AssignPrincipal(ctx, logger, uuid.NewV4().String(), principal)

			Expect(err).To(Equal(warden.ErrGroupNotFound))
		})
	})

	Describe("#UnassignPrincipal", func() {
		It("removes the principal from the group", func() {
			groupName := uuid.NewV4().String()
			principal := warden.Principal{ID: uuid.NewV4().String(), Issuer: "test"}

			_, err := groupRepo.CreateGroup(ctx, logger, groupName)
			Expect(err).NotTo(HaveOccurred())

			Expect(subject.AssignPrincipal(ctx, logger, groupName, principal)).To(Succeed())
			Expect(subject.UnassignPrincipal(ctx, logger, groupName, principal)).To(Succeed())

			groups, err := subject.ListPrincipalGroups(ctx, logger, repos.ListPrincipalGroupsQuery{Principal: principal})
			Expect(err).NotTo(HaveOccurred())
			Expect(groups).To(BeEmpty())
		})

		It("fails if the principal was never assigned", func() {
			groupName := uuid.NewV4().String()
			other := warden.Principal{ID: uuid.NewV4().String(), Issuer: "test"}
			principal := warden.Principal{ID: uuid.NewV4().String(), Issuer: "test"}

			_, err := groupRepo.CreateGroup(ctx, logger, groupName)
			Expect(err).NotTo(HaveOccurred())

			Expect(subject.AssignPrincipal(ctx, logger, groupName, other)).To(Succeed())

			err = subject.UnassignPrincipal(ctx, logger, groupName, principal)
			Expect(err).To(Equal(warden.ErrMembershipNotFound))
		})

		It("fails if the group does not exist", func() {
			principal := warden.Principal{ID: uuid.NewV4().String(), Issuer: "test"}

			err := subject.UnassignPrincipal(ctx, logger, uuid.NewV4().String(), principal)

			Expect(err).To(Equal(warden.ErrGroupNotFound))
		})
	})

	Describe("#ListPrincipalGroups", func() {
		It("returns every group the principal belongs to", func() {
			group1 := uuid.NewV4().String()
			group2 := uuid.NewV4().String()
			principal := warden.Principal{ID: uuid.NewV4().String(), Issuer: "test"}

			_, err := groupRepo.CreateGroup(ctx, logger, group1)
			Expect(err).NotTo(HaveOccurred())
			_, err = groupRepo.CreateGroup(ctx, logger, group2)
			Expect(err).NotTo(HaveOccurred())

			Expect(subject.AssignPrincipal(ctx, logger, group1, principal)).To(Succeed())
			Expect(subject.AssignPrincipal(ctx, logger, group2, principal)).To(Succeed())

			groups, err := subject.ListPrincipalGroups(ctx, logger, repos.ListPrincipalGroupsQuery{Principal: principal})
			Expect(err).NotTo(HaveOccurred())
			Expect(groups).To(ConsistOf(
				warden.Group{Name: group1},
				warden.Group{Name: group2},
			))
		})

		It("returns nothing for an unknown principal", func() {
			groups, err := subject.ListPrincipalGroups(ctx, logger, repos.ListPrincipalGroupsQuery{
				Principal: warden.Principal{ID: uuid.NewV4().String(), Issuer: "test"},
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(groups).To(BeEmpty())
		})
	})
}
