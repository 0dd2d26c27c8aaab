package watcher

// ChangeAnalysis describes what changed and what has to be redone
type ChangeAnalysis struct {
	ReloadConfig bool
	Rebuild      bool
	ChangedFiles []string
}

// AnalyzeChanges determines what to redo for a debounced event
func AnalyzeChanges(event ChangeEvent) ChangeAnalysis {
	analysis := ChangeAnalysis{
		ChangedFiles: event.Paths,
	}

	switch event.Type {
	case ChangeTypeConfig:
		// Format, strategy and attribute settings may all change the output
		analysis.ReloadConfig = true
		analysis.Rebuild = true

	case ChangeTypeDescription:
		analysis.Rebuild = true
	}

	return analysis
}
