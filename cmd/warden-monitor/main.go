package main

import (
	"context"
	"crypto/tls"
	"net"
	"os"
	"strconv"
	"time"

	"code.cloudfoundry.org/clock"
	flags "github.com/jessevdk/go-flags"

	"github.com/docshelf/warden/cmd"
	cmdflags "github.com/docshelf/warden/cmd/flags"
	"github.com/docshelf/warden/pkg/cryptox"
	"github.com/docshelf/warden/pkg/ioutilx"
	"github.com/docshelf/warden/pkg/logx"
	"github.com/docshelf/warden/pkg/monitor"
	"github.com/docshelf/warden/pkg/warden"
)

type options struct {
	Warden wardenOptions `group:"Warden" namespace:"warden"`

	StatsD cmdflags.StatsDFlag `group:"StatsD" namespace:"statsd"`

	Logger cmdflags.LagerFlag

	Frequency  time.Duration `long:"frequency" description:"Frequency with which the probe is issued" default:"5s"`
	MaxLatency time.Duration `long:"max-latency" description:"Latency above which a probe run is considered failed" default:"100ms"`
	Timeout    time.Duration `long:"timeout" description:"Time after which the probe will cancel a run" default:"10s"`
}

type wardenOptions struct {
	Hostname      string                 `long:"hostname" description:"Hostname used to resolve the address of the warden API" required:"true"`
	Port          int                    `long:"port" description:"Port used to connect to the warden API" required:"true"`
	CACertificate []ioutilx.FileOrString `long:"ca-certificate" description:"File path of the warden API CA certificate"`
}

func main() {
	parserOpts := &options{}
	parser := flags.NewParser(parserOpts, flags.Default)
	parser.NamespaceDelimiter = "-"

	_, err := parser.Parse()
	if err != nil {
		os.Exit(1)
	}

	logger := parserOpts.Logger.Logger("warden-monitor")

	logger.Debug(starting)
	defer logger.Debug(finished)

	statsDClient, err := parserOpts.StatsD.Connect(logger)
	if err != nil {
		os.Exit(1)
	}
	defer statsDClient.Close()

	var certs [][]byte
	for _, certPath := range parserOpts.Warden.CACertificate {
		caPem, err := certPath.Bytes(ioutilx.OS, ioutilx.IOReader)
		if err != nil {
			logger.Error(failedToReadCertificate, err, logx.Data{
				Key:   "location",
				Value: certPath,
			})
			os.Exit(1)
		}
		certs = append(certs, caPem)
	}

	pool, err := cryptox.NewCertPool(certs...)
	if err != nil {
		logger.Error(failedToAppendCertToPool, err)
		os.Exit(1)
	}

	addr := net.JoinHostPort(parserOpts.Warden.Hostname, strconv.Itoa(parserOpts.Warden.Port))
	client, err := warden.Dial(addr, warden.WithTLSConfig(&tls.Config{
		RootCAs:    pool,
		MinVersion: tls.VersionTLS12,
	}))
	if err != nil {
		logger.Error(failedToCreateWardenClient, err)
		os.Exit(1)
	}

	probe := monitor.NewProbe(
		client,
		monitor.WithTimeout(parserOpts.Timeout),
		monitor.WithMaxLatency(parserOpts.MaxLatency),
	)

	statter := &monitor.Statter{
		GaugeStatter: statsDClient,
		Histogram:    monitor.NewThreadSafeHistogram(monitor.ProbeHistogramWindow, monitor.SigFigs),
	}

	runProbeWithFrequency(
		context.Background(),
		logger.WithName("probe"),
		probe,
		statter,
		clock.NewClock(),
		parserOpts.Frequency,
	)
}

func runProbeWithFrequency(
	ctx context.Context,
	logger logx.Logger,
	probe *monitor.Probe,
	statter *monitor.Statter,
	c clock.Clock,
	frequency time.Duration,
) {
	rotateTicker := c.NewTicker(monitor.ProbeHistogramRefreshTime)
	defer rotateTicker.Stop()

	probeTicker := c.NewTicker(frequency)
	defer probeTicker.Stop()

	for {
		select {
		case <-rotateTicker.C():
			statter.Rotate()
		case <-probeTicker.C():
			cmd.RecordProbeResults(ctx, logger, probe, statter)
			statter.SendStats(logger)
		}
	}
}
