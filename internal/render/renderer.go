// Package render turns an agent definition and a label config into the
// text of each generated document.
//
// Templates are text/template sources evaluated against a Context struct.
// Every field a template references is resolved against the Context type
// before execution, so an unknown placeholder is reported by name instead
// of rendering as blank. Rendering does no I/O: template overrides are read
// once by New.
package render

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"text/template"

	"github.com/ShayCichocki/labelcrew/pkg/models"
)

//go:embed templates/*.tmpl
var builtin embed.FS

// Document is one rendered document, handed to the output writer once.
type Document struct {
	Agent string
	Kind  models.DocumentKind
	Text  string
}

// Renderer resolves document templates. It is safe for concurrent use.
type Renderer struct {
	// sources maps sourceKey(agent, kind) to template text. The empty
	// agent holds the defaults for a kind.
	sources map[string]source
}

type source struct {
	name string
	text string
}

func sourceKey(agent string, kind models.DocumentKind) string {
	return agent + "/" + string(kind)
}

// templateFile returns the file name of the template for kind.
func templateFile(kind models.DocumentKind) string {
	if kind.Markdown() {
		return string(kind) + ".md.tmpl"
	}
	return string(kind) + ".txt.tmpl"
}

// New returns a Renderer using the built-in templates, overridden by any
// templates found in dir. dir may contain <kind>.tmpl files applying to
// every agent and <agent-id>/<kind>.tmpl files applying to one agent. An
// empty dir uses the built-in templates only.
func New(dir string, agents []string) (*Renderer, error) {
	r := &Renderer{sources: make(map[string]source)}

	for _, kind := range models.DocumentKinds {
		name := templateFile(kind)
		data, err := builtin.ReadFile("templates/" + name)
		if err != nil {
			return nil, fmt.Errorf("read built-in template %s: %w", name, err)
		}
		r.sources[sourceKey("", kind)] = source{name: name, text: string(data)}
	}

	if dir == "" {
		return r, nil
	}
	for _, kind := range models.DocumentKinds {
		if err := r.loadOverride(filepath.Join(dir, string(kind)+".tmpl"), "", kind); err != nil {
			return nil, err
		}
		for _, agent := range agents {
			if err := r.loadOverride(filepath.Join(dir, agent, string(kind)+".tmpl"), agent, kind); err != nil {
				return nil, err
			}
		}
	}
	return r, nil
}

func (r *Renderer) loadOverride(path, agent string, kind models.DocumentKind) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read template override: %w", err)
	}
	r.sources[sourceKey(agent, kind)] = source{name: path, text: string(data)}
	return nil
}

// Source returns the name of the template that renders kind for agent.
func (r *Renderer) Source(agent string, kind models.DocumentKind) string {
	return r.lookup(agent, kind).name
}

func (r *Renderer) lookup(agent string, kind models.DocumentKind) source {
	if s, ok := r.sources[sourceKey(agent, kind)]; ok {
		return s
	}
	return r.sources[sourceKey("", kind)]
}

var funcs = template.FuncMap{
	"join":  strings.Join,
	"upper": strings.ToUpper,
	"lower": strings.ToLower,
}

// Render resolves the template for kind against ctx. Failures are returned
// as *RenderError.
func (r *Renderer) Render(kind models.DocumentKind, ctx Context) (string, error) {
	fail := func(key, reason string, err error) error {
		return &RenderError{Agent: ctx.AgentID, Kind: kind, Key: key, Reason: reason, Err: err}
	}
	if !kind.Valid() {
		return "", fail("", fmt.Sprintf("unknown document kind %q", kind), nil)
	}

	src := r.lookup(ctx.AgentID, kind)
	tmpl, err := template.New(string(kind)).
		Option("missingkey=error").
		Funcs(funcs).
		Parse(src.text)
	if err != nil {
		return "", fail("", "parse template "+src.name, err)
	}

	refs, err := checkFields(tmpl, contextType)
	if err != nil {
		var unresolved *unresolvedError
		if errors.As(err, &unresolved) {
			return "", fail(unresolved.key, "", nil)
		}
		return "", fail("", "check template "+src.name, err)
	}

	if refs["Access"] {
		for _, a := range ctx.Access {
			if !a.Configured {
				return "", fail("credentials."+a.Name, "", nil)
			}
		}
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, ctx); err != nil {
		return "", fail("", "execute template "+src.name, err)
	}

	text := normalize(buf.String())
	if strings.TrimSpace(text) == "" {
		return "", fail("", "rendered document is empty", nil)
	}
	if kind.Markdown() {
		if err := checkMarkdown(text); err != nil {
			return "", fail("", "malformed markdown", err)
		}
	}
	return text, nil
}

var (
	trailingSpace = regexp.MustCompile(`[ \t]+\n`)
	blankRuns     = regexp.MustCompile(`\n{3,}`)
)

// normalize trims trailing spaces, collapses runs of blank lines and ends
// the text with exactly one newline.
func normalize(s string) string {
	s = trailingSpace.ReplaceAllString(s, "\n")
	s = blankRuns.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s) + "\n"
}
