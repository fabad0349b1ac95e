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

func BehavesLikeAGroupRepo(
	subjectCreator func() repos.GroupRepo,
	membershipRepoCreator func() repos.MembershipRepo,
) {
	var (
		subject repos.GroupRepo

		membershipRepo repos.MembershipRepo

		ctx    context.Context
		logger logx.Logger

		cancelFunc context.CancelFunc
	)

	BeforeEach(func() {
		subject = subjectCreator()
		membershipRepo = membershipRepoCreator()

		ctx, cancelFunc = context.WithTimeout(context.Background(), 1*time.Second)
		logger = lagerx.NewLogger(lagertest.NewTestLogger("warden-test"))
	})

	AfterEach(func() {
		cancelFunc()
	})

	Describe("#CreateGroup", func() {
		It("saves the group", func() {
			name := uuid.NewV4().String()

			group, err := subject.CreateGroup(ctx, logger, name)

			Expect(err).NotTo(HaveOccurred())
			Expect(group.Name).To(Equal(name))
		})

		It("fails if a group with the name already exists", func() {
			name := uuid.NewV4().String()

			_, err := subject.CreateGroup(ctx, logger, name)
			Expect(err).NotTo(HaveOccurred())

			_, err = subject.CreateGroup(ctx, logger, name)
			Expect(err).To(Equal(warden.ErrGroupAlreadyExists))
		})

		It("rejects permissions with undefined actions", func() {
			name := uuid.NewV4().String()

			_, err := subject.CreateGroup(ctx, logger, name, warden.Permission{
				Action:       "publish",
				ResourceType: warden.ResourceTypeDocument,
			})

			Expect(err).To(Equal(warden.ErrInvalidAction))
		})
	})

	Describe("#DeleteGroup", func() {
		It("deletes the group if it exists", func() {
			name := uuid.NewV4().String()

			_, err := subject.CreateGroup(ctx, logger, name)
			Expect(err).NotTo(HaveOccurred())

			err = subject.DeleteGroup(ctx, logger, name)
			Expect(err).NotTo(HaveOccurred())

			_, err = subject.ListGroupPermissions(ctx, logger, repos.ListGroupPermissionsQuery{GroupName: name})
			Expect(err).To(Equal(warden.ErrGroupNotFound))
		})

		It("fails if the group does not exist", func() {
			err := subject.DeleteGroup(ctx, logger, uuid.NewV4().String())

			Expect(err).To(Equal(warden.ErrGroupNotFound))
		})
	})

	Describe("#ListGroupPermissions", func() {
		It("returns the permissions the group was created with", func() {
			name := uuid.NewV4().String()

			view := warden.Permission{Action: warden.ActionView, ResourceType: warden.ResourceTypeDocument}
			edit := warden.Permission{Action: warden.ActionEdit, ResourceType: warden.ResourceTypeDocument}

			_, err := subject.CreateGroup(ctx, logger, name, view, edit)
			Expect(err).NotTo(HaveOccurred())

			permissions, err := subject.ListGroupPermissions(ctx, logger, repos.ListGroupPermissionsQuery{GroupName: name})

			Expect(err).NotTo(HaveOccurred())
			Expect(permissions).To(ConsistOf(view, edit))
		})

		It("fails if the group does not exist", func() {
			_, err := subject.ListGroupPermissions(ctx, logger, repos.ListGroupPermissionsQuery{GroupName: uuid.NewV4().String()})

			Expect(err).To(Equal(warden.ErrGroupNotFound))
		})
	})

	Describe("#ProvisionGroups", func() {
		It("creates every declared group with its permission set", func() {
			viewers := uuid.NewV4().String()
			editors := uuid.NewV4().String()

			view := warden.Permission{Action: warden.ActionView, ResourceType: warden.ResourceTypeDocument}
			edit := warden.Permission{Action: warden.ActionEdit, ResourceType: warden.ResourceTypeDocument}

			err := subject.ProvisionGroups(ctx, logger, []warden.GroupDefinition{
				{Name: viewers, Permissions: []warden.Permission{view}},
				{Name: editors, Permissions: []warden.Permission{view, edit}},
			})
			Expect(err).NotTo(HaveOccurred())

			permissions, err := subject.ListGroupPermissions(ctx, logger, repos.ListGroupPermissionsQuery{GroupName: viewers})
			Expect(err).NotTo(HaveOccurred())
			Expect(permissions).To(ConsistOf(view))

			permissions, err = subject.ListGroupPermissions(ctx, logger, repos.ListGroupPermissionsQuery{GroupName: editors})
			Expect(err).NotTo(HaveOccurred())
			Expect(permissions).To(ConsistOf(view, edit))
		})

		It("is idempotent", func() {
			name := uuid.NewV4().String()
			view := warden.Permission{Action: warden.ActionView, ResourceType: warden.ResourceTypeDocument}

			definitions := []warden.GroupDefinition{
				{Name: name, Permissions: []warden.Permission{view}},
			}

			Expect(subject.ProvisionGroups(ctx, logger, definitions)).To(Succeed())
			Expect(subject.ProvisionGroups(ctx, logger, definitions)).To(Succeed())

			permissions, err := subject.ListGroupPermissions(ctx, logger, repos.ListGroupPermissionsQuery{GroupName: name})
			Expect(err).NotTo(HaveOccurred())
			Expect(permissions).To(ConsistOf(view))
		})

		It("synchronizes the permission set when a group is re-declared", func() {
			name := uuid.NewV4().String()
			view := warden.Permission{Action: warden.ActionView, ResourceType: warden.ResourceTypeDocument}
			edit := warden.Permission{Action: warden.ActionEdit, ResourceType: warden.ResourceTypeDocument}

			err := subject.ProvisionGroups(ctx, logger, []warden.GroupDefinition{
				{Name: name, Permissions: []warden.Permission{view}},
			})
			Expect(err).NotTo(HaveOccurred())

			err = subject.ProvisionGroups(ctx, logger, []warden.GroupDefinition{
				{Name: name, Permissions: []warden.Permission{edit}},
			})
			Expect(err).NotTo(HaveOccurred())

			permissions, err := subject.ListGroupPermissions(ctx, logger, repos.ListGroupPermissionsQuery{GroupName: name})
			Expect(err).NotTo(HaveOccurred())
			Expect(permissions).To(ConsistOf(edit))
		})

		It("preserves memberships when a group is re-provisioned", func() {
			name := uuid.NewV4().String()
			principal := warden.Principal{ID: uuid.NewV4().String(), Issuer: "test"}

			view := warden.Permission{Action: warden.ActionView, ResourceType: warden.ResourceTypeDocument}
			edit := warden.Permission{Action: warden.ActionEdit, ResourceType: warden.ResourceTypeDocument}

			err := subject.ProvisionGroups(ctx, logger, []warden.GroupDefinition{
				{Name: name, Permissions: []warden.Permission{view}},
			})
			Expect(err).NotTo(HaveOccurred())

			err = membershipRepo.AssignPrincipal(ctx, logger, name, principal)
			Expect(err).NotTo(HaveOccurred())

			err = subject.ProvisionGroups(ctx, logger, []warden.GroupDefinition{
				{Name: name, Permissions: []warden.Permission{view, edit}},
			})
			Expect(err).NotTo(HaveOccurred())

			groups, err := membershipRepo.ListPrincipalGroups(ctx, logger, repos.ListPrincipalGroupsQuery{Principal: principal})
			Expect(err).NotTo(HaveOccurred())
			Expect(groups).To(ConsistOf(warden.Group{Name: name}))
		})

		It("rejects conflicting definitions without applying any of them", func() {
			name := uuid.NewV4().String()
			other := uuid.NewV4().String()

			view := warden.Permission{Action: warden.ActionView, ResourceType: warden.ResourceTypeDocument}
			edit := warden.Permission{Action: warden.ActionEdit, ResourceType: warden.ResourceTypeDocument}

			err := subject.ProvisionGroups(ctx, logger, []warden.GroupDefinition{
				{Name: other, Permissions: []warden.Permission{view}},
				{Name: name, Permissions: []warden.Permission{view}},
				{Name: name, Permissions: []warden.Permission{edit}},
			})
			Expect(err).To(Equal(warden.ErrProvisioningConflict))

			_, err = subject.ListGroupPermissions(ctx, logger, repos.ListGroupPermissionsQuery{GroupName: other})
			Expect(err).To(Equal(warden.ErrGroupNotFound))

			_, err = subject.ListGroupPermissions(ctx, logger, repos.ListGroupPermissionsQuery{GroupName: name})
			Expect(err).To(Equal(warden.ErrGroupNotFound))
		})

		It("allows the same definition to be declared twice", func() {
			name := uuid.NewV4().String()
			view := warden.Permission{Action: warden.ActionView, ResourceType: warden.ResourceTypeDocument}

			err := subject.ProvisionGroups(ctx, logger, []warden.GroupDefinition{
				{Name: name, Permissions: []warden.Permission{view}},
				{Name: name, Permissions: []warden.Permission{view}},
			})
			Expect(err).NotTo(HaveOccurred())

			permissions, err := subject.ListGroupPermissions(ctx, logger, repos.ListGroupPermissionsQuery{GroupName: name})
			Expect(err).NotTo(HaveOccurred())
			Expect(permissions).To(ConsistOf(view))
		})

		It("rejects undefined actions without applying anything", func() {
			name := uuid.NewV4().String()

			err := subject.ProvisionGroups(ctx, logger, []warden.GroupDefinition{
				{Name: name, Permissions: []warden.Permission{
					{Action: "publish", ResourceType: warden.ResourceTypeDocument},
				}},
			})
			Expect(err).To(Equal(warden.ErrInvalidAction))

			_, err = subject.ListGroupPermissions(ctx, logger, repos.ListGroupPermissionsQuery{GroupName: name})
			Expect(err).To(Equal(warden.ErrGroupNotFound))
		})
	})
}
