package inmemory

const (
	success = "success"

	errGroupNotFound           = "group-not-found"
	errMembershipAlreadyExists = "membership-already-exists"
	errMembershipNotFound      = "membership-not-found"
	errProvisioningConflict    = "provisioning-conflict"
)
