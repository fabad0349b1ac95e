package httpapi

import (
	"context"

	"github.com/docshelf/warden/pkg/logx"
)

type SecurityLogger interface {
	Log(ctx context.Context, signature, name string, args ...logx.SecurityData)
}
