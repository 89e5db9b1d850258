package domain

// BuildAction is the kind of build the host is starting.
type BuildAction int

const (
	// BuildActionBuild is an incremental build.
	BuildActionBuild BuildAction = iota
	// BuildActionRebuild is a full rebuild.
	BuildActionRebuild
	// BuildActionClean removes build outputs.
	BuildActionClean
)

// String returns the name of the action.
func (a BuildAction) String() string {
	switch a {
	case BuildActionRebuild:
		return "rebuild"
	case BuildActionClean:
		return "clean"
	default:
		return "build"
	}
}

// ParseBuildAction maps a build action name to a BuildAction.
func ParseBuildAction(s string) (BuildAction, bool) {
	switch s {
	case "build", "":
		return BuildActionBuild, true
	case "rebuild":
		return BuildActionRebuild, true
	case "clean":
		return BuildActionClean, true
	default:
		return BuildActionBuild, false
	}
}
