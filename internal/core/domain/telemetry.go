package domain

import "time"

// ImplicitRestoreReason tells why the worker stopped collecting requests and started a restore.
type ImplicitRestoreReason int

const (
	// ImplicitReasonNone is used for requests that did not wait for nominations.
	ImplicitReasonNone ImplicitRestoreReason = iota
	// ImplicitReasonProjectsReady means every project reported it had no pending nomination.
	ImplicitReasonProjectsReady
	// ImplicitReasonProjectsReadyCheckTimeout means waiting for pending nominations timed out.
	ImplicitReasonProjectsReadyCheckTimeout
	// ImplicitReasonAllProjectsNominated means every project of the solution was nominated.
	ImplicitReasonAllProjectsNominated
	// ImplicitReasonNominationsIdleTimeout means no nomination arrived within the idle wait.
	ImplicitReasonNominationsIdleTimeout
)

// String returns the name of the reason.
func (r ImplicitRestoreReason) String() string {
	switch r {
	case ImplicitReasonProjectsReady:
		return "ProjectsReady"
	case ImplicitReasonProjectsReadyCheckTimeout:
		return "ProjectsReadyCheckTimeout"
	case ImplicitReasonAllProjectsNominated:
		return "AllProjectsNominated"
	case ImplicitReasonNominationsIdleTimeout:
		return "NominationsIdleTimeout"
	default:
		return "None"
	}
}

// TrackingData is the worker-side telemetry attached to a restore run.
type TrackingData struct {
	ImplicitReason                ImplicitRestoreReason
	RequestCount                  int
	ExplicitReason                ExplicitRestoreReason
	IsSolutionLoadRestore         bool
	TimeSinceLastRestoreCompleted time.Duration
	LastOperationSource           RestoreSource
	HasLastOperation              bool
}
