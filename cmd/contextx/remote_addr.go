package contextx

import (
	"context"
)

type remoteAddrKey struct{}

// WithRemoteAddr stores the transport-level peer address ("host:port") so
// the security logger can attribute events to a source.
func WithRemoteAddr(parent context.Context, addr string) context.Context {
	return context.WithValue(parent, remoteAddrKey{}, addr)
}

func RemoteAddrFromContext(ctx context.Context) (string, bool) {
	addr, ok := ctx.Value(remoteAddrKey{}).(string)
	return addr, ok
}
