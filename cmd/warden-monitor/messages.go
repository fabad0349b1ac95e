package main

const (
	starting = "starting"
	finished = "finished"

	failedToReadCertificate    = "failed-to-read-certificate"
	failedToAppendCertToPool   = "failed-to-append-cert-to-pool"
	failedToCreateWardenClient = "failed-to-create-warden-client"
)
