package domain

import "github.com/google/uuid"

// RestoreSource tells why a restore was requested.
type RestoreSource int

const (
	// SourceImplicit is an automatic restore triggered by project nomination or file changes.
	SourceImplicit RestoreSource = iota
	// SourceOnBuild is a restore triggered by the build host before a build.
	SourceOnBuild
	// SourceExplicit is a restore requested by the user.
	SourceExplicit
)

// String returns the name of the source.
func (s RestoreSource) String() string {
	switch s {
	case SourceOnBuild:
		return "OnBuild"
	case SourceExplicit:
		return "Explicit"
	default:
		return "Implicit"
	}
}

// ExplicitRestoreReason records why an explicit restore was requested.
type ExplicitRestoreReason int

const (
	// ReasonNone is used for implicit and build restores.
	ReasonNone ExplicitRestoreReason = iota
	// ReasonMissingPackagesBanner is a restore started from the missing packages banner.
	ReasonMissingPackagesBanner
	// ReasonRestoreSolutionPackages is a restore started from the restore command.
	ReasonRestoreSolutionPackages
)

// String returns the name of the reason.
func (r ExplicitRestoreReason) String() string {
	switch r {
	case ReasonMissingPackagesBanner:
		return "MissingPackagesBanner"
	case ReasonRestoreSolutionPackages:
		return "RestoreSolutionPackages"
	default:
		return "None"
	}
}

// RestoreRequest describes a request for a solution restore. Requests have no
// identity beyond their operation id and may be coalesced.
type RestoreRequest struct {
	OperationID    uuid.UUID
	Source         RestoreSource
	Force          bool
	ExplicitReason ExplicitRestoreReason
}

// OnUpdate creates an implicit request issued after a project nomination.
func OnUpdate() RestoreRequest {
	return RestoreRequest{OperationID: uuid.New(), Source: SourceImplicit}
}

// OnBuild creates a request issued by the build host before a build.
func OnBuild(force bool) RestoreRequest {
	return RestoreRequest{OperationID: uuid.New(), Source: SourceOnBuild, Force: force}
}

// ByMenu creates an explicit user request.
func ByMenu(force bool, reason ExplicitRestoreReason) RestoreRequest {
	return RestoreRequest{
		OperationID:    uuid.New(),
		Source:         SourceExplicit,
		Force:          force,
		ExplicitReason: reason,
	}
}

// Coalesce merges next into r. When the sources differ the merged request is
// explicit; the force flags are OR'd. The operation id of r is kept.
func (r RestoreRequest) Coalesce(next RestoreRequest) RestoreRequest {
	merged := r
	merged.Force = r.Force || next.Force
	if r.Source != next.Source {
		merged.Source = SourceExplicit
	}
	if merged.ExplicitReason == ReasonNone {
		merged.ExplicitReason = next.ExplicitReason
	}
	return merged
}
