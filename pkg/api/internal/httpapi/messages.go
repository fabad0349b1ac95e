package httpapi

const (
	starting = "starting"
	success  = "success"

	failedToDecodeRequest  = "failed-to-decode-request"
	failedToWriteResponse  = "failed-to-write-response"
	recoveredFromPanic     = "recovered-from-panic"
	errAnonymousPrincipal  = "anonymous-principal"
	errInvalidActionName   = "invalid-action"
	errMissingGroupName    = "missing-group-name"
	errMissingPrincipalID  = "missing-principal-id"
	errFailedAuthorization = "failed-authorization"
)

const (
	// CEF event signatures
	AuthzCheckSignature = "AuthzCheck"
	AuthzAllowSignature = "AuthzAllow"
	AuthzDenySignature  = "AuthzDeny"
	AuthFailSignature   = "AuthFail"
	AuthPassSignature   = "AuthPass"
	ProvisionSignature  = "GroupProvision"
	AssignSignature     = "PrincipalAssign"
	UnassignSignature   = "PrincipalUnassign"
)
