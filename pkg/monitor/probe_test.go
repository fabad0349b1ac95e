package monitor_test

import (
	"context"
	"time"

	"code.cloudfoundry.org/clock/fakeclock"
	"code.cloudfoundry.org/lager/lagertest"
	"github.com/docshelf/warden/pkg/logx"
	"github.com/docshelf/warden/pkg/logx/lagerx"
	. "github.com/docshelf/warden/pkg/monitor"
	"github.com/docshelf/warden/pkg/warden"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

type fakeClient struct {
	latency   time.Duration
	clock     *fakeclock.FakeClock
	decisions map[warden.Action]warden.Decision

	createGroupErr error
	assignErr      error
	deleteErr      error
	authorizeErr   error

	createdGroups  []string
	assignedGroups []string
	deletedGroups  []string
}

func (c *fakeClient) CreateGroup(ctx context.Context, name string, permissions ...warden.Permission) (warden.Group, error) {
	c.createdGroups = append(c.createdGroups, name)
	if c.createGroupErr != nil {
		return warden.Group{}, c.createGroupErr
	}
	return warden.Group{Name: name}, nil
}

func (c *fakeClient) DeleteGroup(ctx context.Context, name string) error {
	c.deletedGroups = append(c.deletedGroups, name)
	return c.deleteErr
}

func (c *fakeClient) AssignPrincipal(ctx context.Context, groupName string, principal warden.Principal) error {
	c.assignedGroups = append(c.assignedGroups, groupName)
	return c.assignErr
}

func (c *fakeClient) Authorize(ctx context.Context, principal warden.Principal, action warden.Action, resourceType warden.ResourceType) (warden.Decision, error) {
	if c.latency != 0 {
		c.clock.Increment(c.latency)
	}
	if c.authorizeErr != nil {
		return warden.DecisionDeny, c.authorizeErr
	}
	return c.decisions[action], nil
}

var _ = Describe("Probe", func() {
	var (
		client    *fakeClient
		fakeClock *fakeclock.FakeClock
		subject   *Probe

		ctx    context.Context
		logger logx.Logger
	)

	BeforeEach(func() {
		fakeClock = fakeclock.NewFakeClock(time.Now())
		client = &fakeClient{
			clock: fakeClock,
			decisions: map[warden.Action]warden.Decision{
				ProbeAssignedAction:   warden.DecisionAllow,
				ProbeUnassignedAction: warden.DecisionDeny,
			},
		}

		subject = NewProbe(client, WithClock(fakeClock), WithMaxLatency(100*time.Millisecond))

		ctx = context.Background()
		logger = lagerx.NewLogger(lagertest.NewTestLogger("warden-monitor-test"))
	})

	Describe("#Setup", func() {
		It("creates the probe group and assigns the probe principal", func() {
			durations, err := subject.Setup(ctx, logger, "suffix")

			Expect(err).NotTo(HaveOccurred())
			Expect(durations).To(HaveLen(2))
			Expect(client.createdGroups).To(ConsistOf(ProbeGroupName + ".suffix"))
			Expect(client.assignedGroups).To(ConsistOf(ProbeGroupName + ".suffix"))
		})

		It("tolerates state left over from a previous run", func() {
			client.createGroupErr = warden.ErrGroupAlreadyExists
			client.assignErr = warden.ErrMembershipAlreadyExists

			_, err := subject.Setup(ctx, logger, "suffix")

			Expect(err).NotTo(HaveOccurred())
		})

		It("fails when group creation fails", func() {
			client.createGroupErr = warden.ErrUnknown

			_, err := subject.Setup(ctx, logger, "suffix")

			Expect(err).To(Equal(warden.ErrUnknown))
		})
	})

	Describe("#Run", func() {
		It("is correct when the assigned action is allowed and the unassigned one is denied", func() {
			correct, durations, err := subject.Run(ctx, logger)

			Expect(err).NotTo(HaveOccurred())
			Expect(correct).To(BeTrue())
			Expect(durations).To(HaveLen(2))
		})

		It("is incorrect when the assigned action is denied", func() {
			client.decisions[ProbeAssignedAction] = warden.DecisionDeny

			correct, _, err := subject.Run(ctx, logger)

			Expect(err).NotTo(HaveOccurred())
			Expect(correct).To(BeFalse())
		})

		It("is incorrect when the unassigned action is allowed", func() {
			client.decisions[ProbeUnassignedAction] = warden.DecisionAllow

			correct, _, err := subject.Run(ctx, logger)

			Expect(err).NotTo(HaveOccurred())
			Expect(correct).To(BeFalse())
		})

		It("fails when a check exceeds the latency ceiling", func() {
			client.latency = 200 * time.Millisecond

			_, _, err := subject.Run(ctx, logger)

			Expect(err).To(Equal(ExceededMaxLatencyError{}))
		})

		It("surfaces API errors", func() {
			client.authorizeErr = warden.ErrFailedToConnect

			_, _, err := subject.Run(ctx, logger)

			Expect(err).To(Equal(warden.ErrFailedToConnect))
		})
	})

	Describe("#Cleanup", func() {
		It("deletes the probe group", func() {
			_, err := subject.Cleanup(ctx, logger, "suffix")

			Expect(err).NotTo(HaveOccurred())
			Expect(client.deletedGroups).To(ConsistOf(ProbeGroupName + ".suffix"))
		})

		It("tolerates an already-deleted group", func() {
			client.deleteErr = warden.ErrGroupNotFound

			_, err := subject.Cleanup(ctx, logger, "suffix")

			Expect(err).NotTo(HaveOccurred())
		})
	})
})
