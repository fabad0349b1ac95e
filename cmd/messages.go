package cmd

const (
	starting = "starting"
	finished = "finished"

	failedToListen              = "failed-to-listen"
	failedToParseTLSCredentials = "failed-to-parse-tls-credentials"
	failedToOpenAuditFile       = "failed-to-open-audit-file"
	failedToDetermineHostname   = "failed-to-determine-hostname"
	failedToCreateOIDCProvider  = "failed-to-create-oidc-provider"
	failedToVerifyMigrations    = "failed-to-verify-migrations"

	failedToCleanupProbe = "failed-to-cleanup-probe"
)
