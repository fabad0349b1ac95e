package oidcx

import oidc "github.com/coreos/go-oidc"

type Provider interface {
	Verifier(config *oidc.Config) *oidc.IDTokenVerifier
}
