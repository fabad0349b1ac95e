package api

import (
	"context"
	"crypto/tls"
	"net"
	"net/http"
	"time"

	"github.com/docshelf/warden/pkg/api/internal/httpapi"
	"github.com/docshelf/warden/pkg/logx"
	"github.com/docshelf/warden/pkg/metrics"
	"github.com/docshelf/warden/pkg/oidcx"
)

type Server struct {
	logger         logx.Logger
	securityLogger httpapi.SecurityLogger
	server         *http.Server
}

func NewServer(store httpapi.Store, opts ...ServerOption) *Server {
	config := &options{
		logger:         &emptyLogger{},
		securityLogger: &emptySecurityLogger{},
		oidcClientID:   "warden",
	}

	for _, opt := range opts {
		opt(config)
	}

	logger := config.logger
	securityLogger := config.securityLogger

	var middlewares []func(http.Handler) http.Handler

	if config.statter != nil {
		middlewares = append(middlewares, httpapi.MetricsMiddleware(config.statter))
	}

	if config.oidcProvider != nil {
		middlewares = append(middlewares, httpapi.OIDCMiddleware(config.oidcProvider, config.oidcClientID, securityLogger))
	}

	router := httpapi.NewRouter(logger, securityLogger, store, middlewares...)

	server := &http.Server{
		Handler:      router,
		TLSConfig:    config.tlsConfig,
		ReadTimeout:  config.readTimeout,
		WriteTimeout: config.writeTimeout,
	}

	return &Server{
		logger:         logger,
		securityLogger: securityLogger,
		server:         server,
	}
}

func (s *Server) Serve(listener net.Listener) error {
	if s.server.TLSConfig != nil {
		listener = tls.NewListener(listener, s.server.TLSConfig)
	}

	err := s.server.Serve(listener)

	switch err {
	case nil:
		return nil
	case http.ErrServerClosed:
		return ErrServerStopped
	default:
		return ErrServerFailedToStart
	}
}

func (s *Server) GracefulStop() {
	_ = s.server.Shutdown(context.Background())
}

func (s *Server) Stop() {
	_ = s.server.Close()
}

type ServerOption func(*options)

func WithLogger(logger logx.Logger) ServerOption {
	return func(o *options) {
		o.logger = logger
	}
}

func WithSecurityLogger(logger httpapi.SecurityLogger) ServerOption {
	return func(o *options) {
		o.securityLogger = logger
	}
}

func WithTLSConfig(config *tls.Config) ServerOption {
	return func(o *options) {
		o.tlsConfig = config
	}
}

func WithStatter(statter metrics.Statter) ServerOption {
	return func(o *options) {
		o.statter = statter
	}
}

func WithOIDCProvider(provider oidcx.Provider, clientID string) ServerOption {
	return func(o *options) {
		o.oidcProvider = provider
		o.oidcClientID = clientID
	}
}

func WithReadTimeout(d time.Duration) ServerOption {
	return func(o *options) {
		o.readTimeout = d
	}
}

func WithWriteTimeout(d time.Duration) ServerOption {
	return func(o *options) {
		o.writeTimeout = d
	}
}

type options struct {
	logger         logx.Logger
	securityLogger httpapi.SecurityLogger

	tlsConfig *tls.Config

	statter metrics.Statter

	oidcProvider oidcx.Provider
	oidcClientID string

	readTimeout  time.Duration
	writeTimeout time.Duration
}

type emptyLogger struct{}

func (l *emptyLogger) WithName(string) logx.Logger { return l }

func (l *emptyLogger) WithData(...logx.Data) logx.Logger { return l }

func (l *emptyLogger) Debug(string, ...logx.Data) {}

func (l *emptyLogger) Info(string, ...logx.Data) {}

func (l *emptyLogger) Error(string, error, ...logx.Data) {}

type emptySecurityLogger struct{}

func (l *emptySecurityLogger) Log(context.Context, string, string, ...logx.SecurityData) {}
