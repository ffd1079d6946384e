package parser

import (
	"fmt"
	"path/filepath"
	"time"
	"unicode/utf8"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"readmegen/internal/shared/observability"
)

type Parser struct {
	loader     *GrammarLoader
	extractors map[string]Extractor // language -> extractor
}

type Extractor interface {
	Extract(root *sitter.Node, source []byte, filePath string) *FileAnalysis
}

func NewParser(loader *GrammarLoader) *Parser {
	p := &Parser{
		loader:     loader,
		extractors: make(map[string]Extractor),
	}
	p.RegisterExtractor("python", &PythonExtractor{})
	return p
}

func (p *Parser) RegisterExtractor(lang string, e Extractor) {
	p.extractors[lang] = e
}

// IsSupportedPath reports whether the file at path belongs to a language
// this parser has a grammar for.
func (p *Parser) IsSupportedPath(path string) bool {
	return p.detectLanguage(path) != ""
}

// ParseFile always returns an analysis: a malformed file yields a failure
// record with a diagnostic instead of an error, so one bad file never
// aborts a traversal.
func (p *Parser) ParseFile(path string, content []byte) *FileAnalysis {
	start := time.Now()
	lang := p.detectLanguage(path)
	if lang == "" {
		return p.failure(path, "unsupported language")
	}

	if !utf8.Valid(content) {
		return p.failure(path, "invalid UTF-8 encoding")
	}

	grammar := p.loader.Language(lang)
	if grammar == nil {
		return p.failure(path, fmt.Sprintf("grammar not loaded: %s", lang))
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(grammar)

	tree := parser.Parse(content, nil)
	if tree == nil {
		return p.failure(path, "parse failed")
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return p.failure(path, "syntax error")
	}

	extractor := p.extractors[lang]
	if extractor == nil {
		return p.failure(path, fmt.Sprintf("no extractor for: %s", lang))
	}

	analysis := extractor.Extract(root, content, path)
	observability.ParsingDuration.WithLabelValues(lang).Observe(time.Since(start).Seconds())
	return analysis
}

func (p *Parser) failure(path, reason string) *FileAnalysis {
	observability.ParseFailuresTotal.Inc()
	return &FileAnalysis{
		Name: filepath.Base(path),
		Err:  fmt.Sprintf("error analyzing %s: %s", path, reason),
	}
}

func (p *Parser) detectLanguage(path string) string {
	switch filepath.Ext(path) {
	case ".py":
		return "python"
	default:
		return ""
	}
}
