package operation

import (
	"time"
)

// 📊 Phase is where a run currently is
type Phase int

const (
	PhaseScanning Phase = iota
	PhaseDone
)

func (p Phase) String() string {
	if p == PhaseDone {
		return "done"
	}
	return "scanning"
}

// ❗ FailureKind classifies a recovered error
type FailureKind int

const (
	FailureMissingRoot FailureKind = iota // root directory does not exist
	FailureFileRead                       // unreadable or not UTF-8
	FailureFileWrite                      // rewrite failed after a successful read
	FailureWalk                           // a directory or entry could not be listed
)

func (k FailureKind) String() string {
	switch k {
	case FailureMissingRoot:
		return "missing_root"
	case FailureFileRead:
		return "file_read"
	case FailureFileWrite:
		return "file_write"
	case FailureWalk:
		return "walk"
	default:
		return "unknown"
	}
}

// MarshalText renders the kind by name in JSON and YAML output.
func (k FailureKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// 📄 FileOutcome records one rewritten file
type FileOutcome struct {
	Path         string `json:"path" yaml:"path"`
	Replacements int    `json:"replacements" yaml:"replacements"`
}

// ❌ Failure records an error that was logged and skipped
type Failure struct {
	Kind    FailureKind `json:"kind" yaml:"kind"`
	Path    string      `json:"path" yaml:"path"`
	Message string      `json:"message" yaml:"message"`
	Err     error       `json:"-" yaml:"-"`
}

// 📈 RunSummary is the aggregate result of one run
type RunSummary struct {
	Phase             Phase         `json:"-" yaml:"-"`
	FilesScanned      int           `json:"files_scanned" yaml:"files_scanned"`
	FilesModified     int           `json:"files_modified" yaml:"files_modified"`
	TotalReplacements int           `json:"total_replacements" yaml:"total_replacements"`
	Duration          time.Duration `json:"duration_ns" yaml:"duration"`
	Outcomes          []FileOutcome `json:"outcomes" yaml:"outcomes"`
	Failures          []Failure     `json:"failures" yaml:"failures"`
	MissingRoots      []string      `json:"missing_roots" yaml:"missing_roots"`
}

func newRunSummary() *RunSummary {
	return &RunSummary{
		Phase:        PhaseScanning,
		Outcomes:     []FileOutcome{},
		Failures:     []Failure{},
		MissingRoots: []string{},
	}
}

// Seconds returns the elapsed time in seconds.
func (s *RunSummary) Seconds() float64 {
	return s.Duration.Seconds()
}

func (s *RunSummary) record(outcome FileOutcome) {
	s.Outcomes = append(s.Outcomes, outcome)
	s.FilesModified++
	s.TotalReplacements += outcome.Replacements
}

func (s *RunSummary) fail(kind FailureKind, path string, err error) Failure {
	f := Failure{Kind: kind, Path: path, Message: err.Error(), Err: err}
	s.Failures = append(s.Failures, f)
	return f
}

// FailuresOf returns the failures of the given kind, in the order they happened.
func (s *RunSummary) FailuresOf(kind FailureKind) []Failure {
	var out []Failure
	for _, f := range s.Failures {
		if f.Kind == kind {
			out = append(out, f)
		}
	}
	return out
}
