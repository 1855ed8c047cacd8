package application

type ProcessCommand struct {
	SourcePath string
	OutputDir  string
	// RunID stamps the simulation file. Empty means generate one.
	RunID string
}

type BatchCommand struct {
	SourcePaths []string
	OutputDir   string
	Workers     int
	// OnResult, when set, is called once per file as it finishes. Calls may
	// come from several goroutines at once.
	OnResult func(Result)
}
