package cryptox

import "errors"

var ErrFailedToAppendCertToPool = errors.New("cryptox: failed to append certificate to pool")
