package monitor

import (
	"context"
	"time"

	"code.cloudfoundry.org/clock"
	"github.com/docshelf/warden/pkg/logx"
	"github.com/docshelf/warden/pkg/warden"
)

const (
	ProbeGroupName = "system.probe"

	ProbeAssignedAction   = warden.ActionView
	ProbeUnassignedAction = warden.ActionDelete
	ProbeResourceType     = warden.ResourceTypeDocument
)

var ProbePrincipal = warden.Principal{
	ID:     "probe",
	Issuer: "system",
}

type Client interface {
	CreateGroup(ctx context.Context, name string, permissions ...warden.Permission) (warden.Group, error)
	DeleteGroup(ctx context.Context, name string) error
	AssignPrincipal(ctx context.Context, groupName string, principal warden.Principal) error
	Authorize(ctx context.Context, principal warden.Principal, action warden.Action, resourceType warden.ResourceType) (warden.Decision, error)
}

type Probe struct {
	client Client

	timeout        time.Duration
	cleanupTimeout time.Duration
	maxLatency     time.Duration
	clock          clock.Clock
}

type LabeledDuration struct {
	Label    string
	Duration time.Duration
}

func NewProbe(client Client, opts ...Option) *Probe {
	config := defaultOptions()

	for _, opt := range opts {
		opt(config)
	}

	return &Probe{
		client:         client,
		timeout:        config.timeout,
		cleanupTimeout: config.cleanupTimeout,
		maxLatency:     config.maxLatency,
		clock:          config.clock,
	}
}

func (p *Probe) Setup(ctx context.Context, logger logx.Logger, uniqueSuffix string) ([]LabeledDuration, error) {
	logger.Debug(starting)
	defer logger.Debug(finished)

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	var durations []LabeledDuration

	duration, err := p.setupCreateGroup(ctx, logger, uniqueSuffix)
	durations = append(durations, duration)
	if err != nil {
		return durations, err
	}

	duration, err = p.setupAssignPrincipal(ctx, logger, uniqueSuffix)
	durations = append(durations, duration)

	return durations, err
}

func (p *Probe) setupCreateGroup(ctx context.Context, logger logx.Logger, uniqueSuffix string) (LabeledDuration, error) {
	groupName := ProbeGroupName + "." + uniqueSuffix
	permissions := []warden.Permission{
		{
			Action:       ProbeAssignedAction,
			ResourceType: ProbeResourceType,
		},
	}

	start := p.clock.Now()
	_, err := p.client.CreateGroup(ctx, groupName, permissions...)
	duration := p.clock.Since(start)

	if err != nil && err != warden.ErrGroupAlreadyExists {
		logger.Error(failedToCreateGroup, err, logx.Data{
			Key:   "group.name",
			Value: groupName,
		})

		return LabeledDuration{}, err
	}

	return LabeledDuration{Label: "CreateGroup", Duration: duration}, nil
}

func (p *Probe) setupAssignPrincipal(ctx context.Context, logger logx.Logger, uniqueSuffix string) (LabeledDuration, error) {
	groupName := ProbeGroupName + "." + uniqueSuffix

	start := p.clock.Now()
	err := p.client.AssignPrincipal(ctx, groupName, ProbePrincipal)
	duration := p.clock.Since(start)

	if err != nil && err != warden.ErrMembershipAlreadyExists {
		logger.Error(failedToAssignPrincipal, err, logx.Data{
			Key:   "group.name",
			Value: groupName,
		}, logx.Data{
			Key:   "principal.id",
			Value: ProbePrincipal.ID,
		})

		return LabeledDuration{}, err
	}

	return LabeledDuration{Label: "AssignPrincipal", Duration: duration}, nil
}

func (p *Probe) Cleanup(ctx context.Context, logger logx.Logger, uniqueSuffix string) ([]LabeledDuration, error) {
	logger.Debug(starting)
	defer logger.Debug(finished)

	ctx, cancel := context.WithTimeout(ctx, p.cleanupTimeout)
	defer cancel()

	groupName := ProbeGroupName + "." + uniqueSuffix

	start := p.clock.Now()
	err := p.client.DeleteGroup(ctx, groupName)
	duration := p.clock.Since(start)

	durations := []LabeledDuration{{Label: "DeleteGroup", Duration: duration}}

	if err != nil && err != warden.ErrGroupNotFound {
		logger.Error(failedToDeleteGroup, err, logx.Data{
			Key:   "group.name",
			Value: groupName,
		})

		return durations, err
	}

	return durations, nil
}

// Run checks that the probe principal is allowed its assigned action and
// denied an unassigned one. Both checks must come back correct and under
// the latency ceiling for the run to count as healthy.
func (p *Probe) Run(ctx context.Context, logger logx.Logger) (correct bool, durations []LabeledDuration, err error) {
	logger.Debug(starting)
	defer logger.Debug(finished)

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	correct, duration, err := p.runAssignedAction(ctx, logger)
	durations = append(durations, duration)
	if err != nil || !correct {
		return
	}

	correct, duration, err = p.runUnassignedAction(ctx, logger)
	durations = append(durations, duration)

	for _, d := range durations {
		if d.Duration > p.maxLatency {
			err = ExceededMaxLatencyError{}
			return
		}
	}

	return
}

func (p *Probe) runAssignedAction(ctx context.Context, logger logx.Logger) (bool, LabeledDuration, error) {
	logger = logger.WithName("assigned-action").WithData(logx.Data{
		Key:   "action",
		Value: ProbeAssignedAction,
	})

	start := p.clock.Now()
	decision, err := p.client.Authorize(ctx, ProbePrincipal, ProbeAssignedAction, ProbeResourceType)
	duration := p.clock.Since(start)

	if err != nil {
		logger.Error(failedToAuthorize, err)
		return false, LabeledDuration{}, err
	}

	if !decision.Allowed() {
		logger.Info(incorrectResponse, logx.Data{
			Key:   "expected",
			Value: warden.DecisionAllow,
		}, logx.Data{
			Key:   "got",
			Value: decision,
		})
		return false, LabeledDuration{}, nil
	}

	return true, LabeledDuration{Label: "Authorize", Duration: duration}, nil
}

func (p *Probe) runUnassignedAction(ctx context.Context, logger logx.Logger) (bool, LabeledDuration, error) {
	logger = logger.WithName("unassigned-action").WithData(logx.Data{
		Key:   "action",
		Value: ProbeUnassignedAction,
	})

	start := p.clock.Now()
	decision, err := p.client.Authorize(ctx, ProbePrincipal, ProbeUnassignedAction, ProbeResourceType)
	duration := p.clock.Since(start)

	if err != nil {
		logger.Error(failedToAuthorize, err)
		return false, LabeledDuration{}, err
	}

	if decision.Allowed() {
		logger.Info(incorrectResponse, logx.Data{
			Key:   "expected",
			Value: warden.DecisionDeny,
		}, logx.Data{
			Key:   "got",
			Value: decision,
		})
		return false, LabeledDuration{}, nil
	}

	return true, LabeledDuration{Label: "Authorize", Duration: duration}, nil
}
