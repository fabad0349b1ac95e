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

func BehavesLikeAPermissionRepo(
	subjectCreator func() repos.PermissionRepo,
	groupRepoCreator func() repos.GroupRepo,
	membershipRepoCreator func() repos.MembershipRepo,
) {
	var (
		subject repos.PermissionRepo

		groupRepo      repos.GroupRepo
		membershipRepo repos.MembershipRepo

		ctx    context.Context
		logger logx.Logger

		cancelFunc context.CancelFunc
	)

	BeforeEach(func() {
		subject = subjectCreator()

		groupRepo = groupRepoCreator()
		membershipRepo = membershipRepoCreator()

		ctx, cancelFunc = context.WithTimeout(context.Background(), 1*time.Second)
		logger = lagerx.NewLogger(lagertest.NewTestLogger("warden-test"))
	})

	AfterEach(func() {
		cancelFunc()
	})

	Describe("#HasPermission", func() {
		It("returns true if the principal belongs to a group that grants the action", func() {
			groupName := uuid.NewV4().String()
			principal := warden.Principal{ID: uuid.NewV4().String(), Issuer: "test"}

			_, err := groupRepo.CreateGroup(ctx, logger, groupName, warden.Permission{
				Action:       warden.ActionView,
				ResourceType: warden.ResourceTypeDocument,
			})
			Expect(err).NotTo(HaveOccurred())

			err = membershipRepo.AssignPrincipal(ctx, logger, groupName, principal)
			Expect(err).NotTo(HaveOccurred())

			yes, err := subject.HasPermission(ctx, logger, repos.HasPermissionQuery{
				Principal:    principal,
				Action:       warden.ActionView,
				ResourceType: warden.ResourceTypeDocument,
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(yes).To(BeTrue())
		})

		It("returns false if none of the principal's groups grant the action", func() {
			groupName := uuid.NewV4().String()
			principal := warden.Principal{ID: uuid.NewV4().String(), Issuer: "test"}

			_, err := groupRepo.CreateGroup(ctx, logger, groupName,
				warden.Permission{Action: warden.ActionView, ResourceType: warden.ResourceTypeDocument},
				warden.Permission{Action: warden.ActionCreate, ResourceType: warden.ResourceTypeDocument},
				warden.Permission{Action: warden.ActionEdit, ResourceType: warden.ResourceTypeDocument},
			)
			Expect(err).NotTo(HaveOccurred())

			err = membershipRepo.AssignPrincipal(ctx, logger, groupName, principal)
			Expect(err).NotTo(HaveOccurred())

			yes, err := subject.HasPermission(ctx, logger, repos.HasPermissionQuery{
				Principal:    principal,
				Action:       warden.ActionDelete,
				ResourceType: warden.ResourceTypeDocument,
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(yes).To(BeFalse())
		})

		It("unions permissions across all of the principal's groups", func() {
			viewers := uuid.NewV4().String()
			editors := uuid.NewV4().String()
			principal := warden.Principal{ID: uuid.NewV4().String(), Issuer: "test"}

			_, err := groupRepo.CreateGroup(ctx, logger, viewers,
				warden.Permission{Action: warden.ActionView, ResourceType: warden.ResourceTypeDocument},
			)
			Expect(err).NotTo(HaveOccurred())

			_, err = groupRepo.CreateGroup(ctx, logger, editors,
				warden.Permission{Action: warden.ActionEdit, ResourceType: warden.ResourceTypeDocument},
			)
			Expect(err).NotTo(HaveOccurred())

			Expect(membershipRepo.AssignPrincipal(ctx, logger, viewers, principal)).To(Succeed())
			Expect(membershipRepo.AssignPrincipal(ctx, logger, editors, principal)).To(Succeed())

			for _, action := range []warden.Action{warden.ActionView, warden.ActionEdit} {
				yes, err := subject.HasPermission(ctx, logger, repos.HasPermissionQuery{
					Principal:    principal,
					Action:       action,
					ResourceType: warden.ResourceTypeDocument,
				})
				Expect(err).NotTo(HaveOccurred())
				Expect(yes).To(BeTrue())
			}

			yes, err := subject.HasPermission(ctx, logger, repos.HasPermissionQuery{
				Principal:    principal,
				Action:       warden.ActionDelete,
				ResourceType: warden.ResourceTypeDocument,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(yes).To(BeFalse())
		})

		It("returns false without error if the principal is unknown", func() {
			yes, err := subject.HasPermission(ctx, logger, repos.HasPermissionQuery{
				Principal:    warden.Principal{ID: uuid.NewV4().String(), Issuer: "test"},
				Action:       warden.ActionView,
				ResourceType: warden.ResourceTypeDocument,
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(yes).To(BeFalse())
		})

		It("returns false once the granting membership is revoked", func() {
			groupName := uuid.NewV4().String()
			principal := warden.Principal{ID: uuid.NewV4().String(), Issuer: "test"}

			_, err := groupRepo.CreateGroup(ctx, logger, groupName, warden.Permission{
				Action:       warden.ActionView,
				ResourceType: warden.ResourceTypeDocument,
			})
			Expect(err).NotTo(HaveOccurred())

			Expect(membershipRepo.AssignPrincipal(ctx, logger, groupName, principal)).To(Succeed())
			Expect(membershipRepo.UnassignPrincipal(ctx, logger, groupName, principal)).To(Succeed())

			yes, err := subject.HasPermission(ctx, logger, repos.HasPermissionQuery{
				Principal:    principal,
				Action:       warden.ActionView,
				ResourceType: warden.ResourceTypeDocument,
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(yes).To(BeFalse())
		})

		It("fails if the action is not defined", func() {
			_, err := subject.HasPermission(ctx, logger, repos.HasPermissionQuery{
				Principal:    warden.Principal{ID: uuid.NewV4().String(), Issuer: "test"},
				Action:       "publish",
				ResourceType: warden.ResourceTypeDocument,
			})

			Expect(err).To(Equal(warden.ErrInvalidAction))
		})
	})

	Describe("the standard catalog", func() {
		var (
			viewer warden.Principal
			admin  warden.Principal
		)

		BeforeEach(func() {
			viewer = warden.Principal{ID: uuid.NewV4().String(), Issuer: "test"}
			admin = warden.Principal{ID: uuid.NewV4().String(), Issuer: "test"}

			Expect(groupRepo.ProvisionGroups(ctx, logger, warden.DefaultGroupDefinitions)).To(Succeed())

			Expect(membershipRepo.AssignPrincipal(ctx, logger, "Viewers", viewer)).To(Succeed())
			Expect(membershipRepo.AssignPrincipal(ctx, logger, "Admins", admin)).To(Succeed())
		})

		AfterEach(func() {
			for _, def := range warden.DefaultGroupDefinitions {
				Expect(groupRepo.DeleteGroup(ctx, logger, def.Name)).To(Succeed())
			}
		})

		It("lets a viewer view but not change documents", func() {
			yes, err := subject.HasPermission(ctx, logger, repos.HasPermissionQuery{
				Principal:    viewer,
				Action:       warden.ActionView,
				ResourceType: warden.ResourceTypeDocument,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(yes).To(BeTrue())

			for _, action := range []warden.Action{warden.ActionCreate, warden.ActionEdit, warden.ActionDelete} {
				yes, err := subject.HasPermission(ctx, logger, repos.HasPermissionQuery{
					Principal:    viewer,
					Action:       action,
					ResourceType: warden.ResourceTypeDocument,
				})
				Expect(err).NotTo(HaveOccurred())
				Expect(yes).To(BeFalse())
			}
		})

		It("lets an admin perform every action", func() {
			for _, action := range warden.Actions {
				yes, err := subject.HasPermission(ctx, logger, repos.HasPermissionQuery{
					Principal:    admin,
					Action:       action,
					ResourceType: warden.ResourceTypeDocument,
				})
				Expect(err).NotTo(HaveOccurred())
				Expect(yes).To(BeTrue())
			}
		})
	})
}
