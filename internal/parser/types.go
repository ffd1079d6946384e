package parser

// Function is a single function or method definition.
type Function struct {
	Name      string
	Docstring string
	Args      []string
	Returns   string // literal return annotation text, "" when absent
}

// Class is a module-level class definition with its immediate methods.
type Class struct {
	Name      string
	Docstring string
	Methods   []Function
}

// FileAnalysis is the declaration model extracted from one source file.
// Functions holds every function definition at any nesting depth in
// depth-first source order; Classes holds module-level classes only.
type FileAnalysis struct {
	Name      string
	Docstring string
	Functions []Function
	Classes   []Class
	Imports   []string
	Err       string // diagnostic message when the file failed to parse
}

// Failed reports whether this analysis is a failure record. Failure
// records carry no declarations and are excluded from documentation.
func (a *FileAnalysis) Failed() bool {
	return a.Err != ""
}
