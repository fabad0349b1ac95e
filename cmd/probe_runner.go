package cmd

import (
	"context"

	"github.com/docshelf/warden/pkg/logx"
	"github.com/docshelf/warden/pkg/monitor"
	uuid "github.com/satori/go.uuid"
)

// RecordProbeResults performs one full probe cycle and reports the outcome
// to the statter. The probe group gets a unique suffix per cycle so that
// concurrent monitors never trip over each other's state.
func RecordProbeResults(
	ctx context.Context,
	logger logx.Logger,
	probe *monitor.Probe,
	statter *monitor.Statter,
) {
	suffix := uuid.NewV4().String()

	defer func() {
		_, err := probe.Cleanup(ctx, logger.WithName("cleanup"), suffix)
		if err != nil {
			logger.Error(failedToCleanupProbe, err)
		}
	}()

	durations, err := probe.Setup(ctx, logger.WithName("setup"), suffix)
	if err != nil {
		statter.SendFailedProbe(logger)
		return
	}

	correct, runDurations, err := probe.Run(ctx, logger.WithName("run"))
	durations = append(durations, runDurations...)

	switch {
	case err != nil:
		statter.SendFailedProbe(logger)
	case !correct:
		statter.SendIncorrectProbe(logger)
	default:
		for _, d := range durations {
			statter.RecordProbeDuration(logger, d.Duration)
		}
		statter.SendCorrectProbe(logger)
	}
}
