package logx

import (
	"context"
)

type SecurityData struct {
	Key   string
	Value string
}

// SecurityLogger records security-relevant events (authorization
// decisions, authentication failures) for an external audit pipeline.
type SecurityLogger interface {
	Log(ctx context.Context, signature, name string, args ...SecurityData)
}
