package contracts

// ResolvedPlugin is the disposable product of URL resolution, computed fresh
// for every run.
type ResolvedPlugin struct {
	ArchiveURL      string
	DestinationName string
}

type InstallStatus int

const (
	InstallSucceeded InstallStatus = iota
	FetchFailed
	ExtractFailed
)

func (this InstallStatus) String() string {
	switch this {
	case FetchFailed:
		return "fetch failed"
	case ExtractFailed:
		return "extract failed"
	default:
		return "installed"
	}
}

// InstallOutcome is the terminal result of one plugin's install attempt.
// Failures become data here rather than errors so that no plugin can abort
// its siblings.
type InstallOutcome struct {
	Status InstallStatus
	Reason string
}

func SuccessOutcome() InstallOutcome {
	return InstallOutcome{Status: InstallSucceeded}
}

func FetchFailure(err error) InstallOutcome {
	return InstallOutcome{Status: FetchFailed, Reason: err.Error()}
}

func ExtractFailure(err error) InstallOutcome {
	return InstallOutcome{Status: ExtractFailed, Reason: err.Error()}
}

func (this InstallOutcome) Failed() bool {
	return this.Status != InstallSucceeded
}

// PluginReport pairs a spec with its outcome for the presentation layer.
type PluginReport struct {
	Spec    PluginSpec
	Outcome InstallOutcome
}
