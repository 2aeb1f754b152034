package model

// SubmissionStatus describes the composer lifecycle of a draft.
type SubmissionStatus string

const (
	SubmissionIdle       SubmissionStatus = "idle"
	SubmissionSubmitting SubmissionStatus = "submitting"
	SubmissionSucceeded  SubmissionStatus = "succeeded"
	SubmissionFailed     SubmissionStatus = "failed"
)

// SubmissionState pairs the status with the message shown to the user.
type SubmissionState struct {
	Status  SubmissionStatus
	Message string
}
