package render

import (
	"fmt"
	"strings"
	"time"

	"readmegen/internal/parser"
	"readmegen/internal/project"
)

const (
	noModuleDoc   = "No module description available."
	noClassDoc    = "No class description available."
	noFunctionDoc = "No function description available."
	noMethodDoc   = "No description available."
)

type Options struct {
	GeneratedAt time.Time // zero value means time.Now()
}

// Generator renders a project model into a README document: an ordered
// join of up to ten sections, empty sections omitted, sections separated
// by one blank line.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

func (g *Generator) Generate(m *project.Model, opts Options) string {
	if opts.GeneratedAt.IsZero() {
		opts.GeneratedAt = time.Now()
	}

	sections := []string{
		g.header(m),
		g.description(m),
		g.installation(m),
		g.usage(m),
		g.apiReference(m),
		g.structure(m),
		g.testing(m),
		g.contributing(),
		g.license(m),
		g.footer(opts.GeneratedAt),
	}

	kept := make([]string, 0, len(sections))
	for _, section := range sections {
		if section != "" {
			kept = append(kept, section)
		}
	}

	return strings.Join(kept, "\n\n")
}

func (g *Generator) header(m *project.Model) string {
	lines := []string{
		"# " + m.Name,
		"",
		"[![Python](https://img.shields.io/badge/python-3.6%2B-blue.svg)]",
		"[![License](https://img.shields.io/badge/license-MIT-green.svg)]",
	}

	if m.HasGit {
		lines = append(lines, "[![GitHub](https://img.shields.io/badge/github-repo-black.svg)]")
	}

	return strings.Join(lines, "\n")
}

// description uses the first analyzed module's docstring; without one the
// section is omitted entirely.
func (g *Generator) description(m *project.Model) string {
	if len(m.Documentation) == 0 {
		return ""
	}
	if doc := m.Documentation[0].Docstring; doc != "" {
		return "## Description\n\n" + doc
	}
	return ""
}

func (g *Generator) installation(m *project.Model) string {
	var b strings.Builder
	b.WriteString("## Installation\n\n")
	b.WriteString("```bash\npip install -r requirements.txt\n```")

	if len(m.Requirements) > 0 {
		b.WriteString("\n\n### Dependencies\n\n")
		b.WriteString("* " + strings.Join(m.Requirements, "\n* "))
	}

	return b.String()
}

// usage emits an example import for the first file's first function; with
// no functions the section header still appears.
func (g *Generator) usage(m *project.Model) string {
	lines := []string{"## Usage", ""}

	if len(m.Documentation) > 0 && len(m.Documentation[0].Functions) > 0 {
		name := m.Documentation[0].Functions[0].Name
		lines = append(lines,
			"```python",
			fmt.Sprintf("from %s import %s", strings.ToLower(m.Name), name),
			"",
			"# Example usage",
			name+"()",
			"```",
		)
	}

	return strings.Join(lines, "\n")
}

func (g *Generator) apiReference(m *project.Model) string {
	if len(m.Documentation) == 0 {
		return ""
	}

	lines := []string{"## API Documentation", ""}

	for _, module := range m.Documentation {
		lines = append(lines,
			"### "+module.Name,
			"",
			nonEmpty(module.Docstring, noModuleDoc),
			"",
		)

		if len(module.Classes) > 0 {
			lines = append(lines, g.documentClasses(module.Classes)...)
		}
		if len(module.Functions) > 0 {
			lines = append(lines, g.documentFunctions(module.Functions)...)
		}
	}

	return strings.Join(lines, "\n")
}

func (g *Generator) documentClasses(classes []parser.Class) []string {
	var lines []string
	for _, cls := range classes {
		lines = append(lines,
			"#### class "+cls.Name,
			"",
			nonEmpty(cls.Docstring, noClassDoc),
			"",
			"Methods:",
			"",
		)

		for _, method := range cls.Methods {
			doc := "  - " + noMethodDoc
			if method.Docstring != "" {
				doc = "  - " + method.Docstring
			}
			lines = append(lines, "- `"+method.Name+"`", doc, "")
		}
	}
	return lines
}

func (g *Generator) documentFunctions(functions []parser.Function) []string {
	var lines []string
	for _, fn := range functions {
		signature := fmt.Sprintf("#### %s(%s)", fn.Name, strings.Join(fn.Args, ", "))
		if fn.Returns != "" {
			signature += " -> " + fn.Returns
		}

		lines = append(lines,
			signature,
			"",
			nonEmpty(fn.Docstring, noFunctionDoc),
			"",
		)
	}
	return lines
}

func (g *Generator) structure(m *project.Model) string {
	return "## Project Structure\n\n```\n" + strings.Join(m.Structure, "\n") + "\n```"
}

// testing is omitted entirely when the project has no test files.
func (g *Generator) testing(m *project.Model) string {
	if len(m.TestFiles) == 0 {
		return ""
	}

	return strings.Join([]string{
		"## Testing",
		"",
		"Run the tests using:",
		"",
		"```bash",
		"python -m pytest",
		"```",
	}, "\n")
}

func (g *Generator) contributing() string {
	return strings.Join([]string{
		"## Contributing",
		"",
		"1. Fork the repository",
		"2. Create your feature branch (`git checkout -b feature/AmazingFeature`)",
		"3. Commit your changes (`git commit -m 'Add some AmazingFeature'`)",
		"4. Push to the branch (`git push origin feature/AmazingFeature`)",
		"5. Open a Pull Request",
	}, "\n")
}

func (g *Generator) license(m *project.Model) string {
	if m.License != "" {
		return "## License\n\n" + m.License
	}
	return "## License\n\nThis project is licensed under the MIT License - see the LICENSE file for details."
}

func (g *Generator) footer(generatedAt time.Time) string {
	return "\n---\nGenerated by readmegen on " + generatedAt.Format("2006-01-02 15:04:05")
}

func nonEmpty(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
