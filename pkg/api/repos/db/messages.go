package db

const (
	starting = "starting"
	success  = "success"

	failedToStartTransaction = "failed-to-start-transaction"

	failedToRetrieveID        = "failed-to-retrieve-id"
	failedToCountRowsAffected = "failed-to-count-rows-affected"
	failedToScanRow           = "failed-to-scan-row"
	failedToIterateOverRows   = "failed-to-iterate-over-rows"

	errGroupAlreadyExists = "group-already-exists"
	errGroupNotFound      = "group-not-found"

	failedToCreateGroup = "failed-to-create-group"
	failedToFindGroup   = "failed-to-find-group"
	failedToDeleteGroup = "failed-to-delete-group"

	errPrincipalAlreadyExists = "principal-already-exists"
	errPrincipalNotFound      = "principal-not-found"

	failedToCreatePrincipal = "failed-to-create-principal"
	failedToFindPrincipal   = "failed-to-find-principal"

	errMembershipAlreadyExists = "membership-already-exists"
	errMembershipNotFound      = "membership-not-found"

	failedToCreateMembership = "failed-to-create-membership"
	failedToDeleteMembership = "failed-to-delete-membership"
	failedToFindMemberships  = "failed-to-find-memberships"

	errActionAlreadyExists = "action-already-exists"
	errActionNotFound      = "action-not-found"

	failedToCreateAction = "failed-to-create-action"
	failedToFindAction   = "failed-to-find-action"

	errPermissionAlreadyExists = "permission-already-exists"
	errProvisioningConflict    = "provisioning-conflict"

	failedToCreatePermission  = "failed-to-create-permission"
	failedToDeletePermissions = "failed-to-delete-permissions"
	failedToFindPermissions   = "failed-to-find-permissions"
)
