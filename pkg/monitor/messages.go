package monitor

const (
	starting = "starting"
	finished = "finished"

	incorrectResponse = "incorrect-response"

	failedToRecordHistogramValue = "failed-to-record-histogram-value"
	failedToSendMetric           = "failed-to-send-metric"

	failedToCreateGroup     = "failed-to-create-group"
	failedToDeleteGroup     = "failed-to-delete-group"
	failedToAssignPrincipal = "failed-to-assign-principal"

	failedToAuthorize = "failed-to-authorize"
)
