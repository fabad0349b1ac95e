package cmd

import (
	"context"
	"crypto/tls"
	"io"
	"net"
	"os"
	"strconv"

	oidc "github.com/coreos/go-oidc"
	"github.com/docshelf/warden/cmd/flags"
	"github.com/docshelf/warden/pkg/api"
	"github.com/docshelf/warden/pkg/api/repos/db"
	"github.com/docshelf/warden/pkg/api/repos/inmemory"
	"github.com/docshelf/warden/pkg/ioutilx"
	"github.com/docshelf/warden/pkg/logx"
	"github.com/docshelf/warden/pkg/logx/cef"
	"github.com/docshelf/warden/pkg/metrics/statsdx"
	"github.com/docshelf/warden/pkg/migrations"
	"github.com/docshelf/warden/pkg/sqlx"
)

type ServeCommand struct {
	Logger flags.LagerFlag

	Hostname       string `long:"listen-hostname" description:"Hostname on which to listen for API traffic" default:"0.0.0.0"`
	Port           int    `long:"listen-port" description:"Port on which to listen for API traffic" default:"8388"`
	TLSCertificate string `long:"tls-certificate" description:"File path of TLS certificate" required:"true"`
	TLSKey         string `long:"tls-key" description:"File path of TLS private key" required:"true"`
	AuditFilePath  string `long:"audit-file-path" description:"File path of audit log; defaults to stdout"`

	DB     flags.DBFlag     `group:"DB" namespace:"db"`
	StatsD flags.StatsDFlag `group:"StatsD" namespace:"statsd"`
	OIDC   OIDCFlag         `group:"OIDC" namespace:"oidc"`
}

type OIDCFlag struct {
	ProviderURL string `long:"provider-url" description:"URL of the OIDC provider used to authenticate API callers"`
	ClientID    string `long:"client-id" description:"OIDC client ID accepted in bearer tokens" default:"warden"`
}

func (cmd ServeCommand) Execute([]string) error {
	logger := cmd.Logger.Logger("warden").WithName("serve")
	logger.Debug(starting)
	defer logger.Debug(finished)

	ctx := context.Background()

	var auditSink io.Writer = os.Stdout
	if cmd.AuditFilePath != "" {
		auditFile, err := ioutilx.OpenLogFile(cmd.AuditFilePath)
		if err != nil {
			logger.Error(failedToOpenAuditFile, err, logx.Data{
				Key:   "path",
				Value: cmd.AuditFilePath,
			})
			return err
		}
		defer auditFile.Close()
		auditSink = auditFile
	}

	hostname, err := os.Hostname()
	if err != nil {
		logger.Error(failedToDetermineHostname, err)
		return err
	}

	securityLogger := cef.NewLogger(
		auditSink,
		cef.Vendor("docshelf"),
		cef.Product("warden"),
		cef.Version(Version),
		cef.Hostname(hostname),
		cmd.Port,
		logger.WithName("cef"),
	)

	serverOpts := []api.ServerOption{
		api.WithLogger(logger.WithName("api")),
		api.WithSecurityLogger(securityLogger),
	}

	cert, err := tls.LoadX509KeyPair(cmd.TLSCertificate, cmd.TLSKey)
	if err != nil {
		logger.Error(failedToParseTLSCredentials, err)
		return err
	}
	serverOpts = append(serverOpts, api.WithTLSConfig(&tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
	}))

	if cmd.StatsD.Enabled() {
		statsDClient, err := cmd.StatsD.Connect(logger)
		if err != nil {
			return err
		}
		defer statsDClient.Close()

		serverOpts = append(serverOpts, api.WithStatter(statsdx.NewStatter(logger.WithName("metrics"), statsDClient)))
	}

	if cmd.OIDC.ProviderURL != "" {
		provider, err := oidc.NewProvider(ctx, cmd.OIDC.ProviderURL)
		if err != nil {
			logger.Error(failedToCreateOIDCProvider, err, logx.Data{
				Key:   "provider_url",
				Value: cmd.OIDC.ProviderURL,
			})
			return err
		}

		serverOpts = append(serverOpts, api.WithOIDCProvider(provider, cmd.OIDC.ClientID))
	}

	var server *api.Server

	if cmd.DB.InMemory() {
		server = api.NewServer(inmemory.NewInMemoryStore(), serverOpts...)
	} else {
		conn, err := cmd.DB.Connect(ctx, logger)
		if err != nil {
			return err
		}
		defer conn.Close()

		migrated, err := sqlx.VerifyAppliedMigrations(
			ctx,
			logger.WithName("verify-migrations"),
			conn,
			migrations.TableName,
			migrations.Migrations,
		)
		if err != nil {
			return err
		}
		if !migrated {
			logger.Error(failedToVerifyMigrations, ErrMigrationsOutOfDate)
			return ErrMigrationsOutOfDate
		}

		server = api.NewServer(db.NewDataService(conn), serverOpts...)
	}

	listenAddr := net.JoinHostPort(cmd.Hostname, strconv.Itoa(cmd.Port))
	lis, err := net.Listen("tcp", listenAddr)
	if err != nil {
		logger.Error(failedToListen, err, logx.Data{
			Key:   "addr",
			Value: listenAddr,
		})
		return err
	}

	logger.Info(starting, logx.Data{
		Key:   "addr",
		Value: listenAddr,
	})

	return server.Serve(lis)
}
