package render

import (
	"fmt"
	"strings"

	"github.com/ShayCichocki/labelcrew/internal/label"
	"github.com/ShayCichocki/labelcrew/pkg/models"
)

// Context is everything a template can reference: one agent definition
// joined with the label config. Templates address it by field name only.
type Context struct {
	AgentID     string
	Name        string
	Codename    string
	RoleTitle   string
	Tier        string
	Portability string
	Status      string
	Model       string
	Avatar      string
	Specialty   string
	Description string
	Tools       []string
	Memory      []string
	Commands    []CommandView
	// Access lists the credentials the agent needs and whether the label
	// config provides them. Secret values are never exposed.
	Access []AccessView

	LabelName    string
	Owner        string
	Distributor  string
	Hosting      string
	Storage      string
	Currency     string
	DefaultSplit string
	Artists      []ArtistView
	ArtistCount  int
}

// CommandView is a chat command as seen by templates.
type CommandView struct {
	Command     string
	Name        string
	Description string
	AdminOnly   bool
}

// AccessView is a required credential as seen by templates.
type AccessView struct {
	Name       string
	Configured bool
}

// ArtistView is a roster entry as seen by templates.
type ArtistView struct {
	Name  string
	Split string
}

// NewContext builds the render context for def over cfg. Neither input is
// modified. String values are passed through inline so that no value can
// start a new line in the output.
func NewContext(def models.AgentDefinition, cfg *label.Config) Context {
	ctx := Context{
		AgentID:     string(def.ID),
		Name:        inline(def.Name),
		Codename:    inline(def.Codename),
		RoleTitle:   inline(def.RoleTitle),
		Tier:        string(def.Tier),
		Portability: string(def.Portability),
		Status:      string(def.Status),
		Model:       inline(def.Model),
		Avatar:      inline(def.Avatar),
		Specialty:   inline(def.Specialty),
		Description: inline(def.Description),
		Tools:       inlineAll(def.Tools),
		Memory:      inlineAll(def.Memory),

		LabelName:    inline(cfg.Name()),
		Owner:        inline(cfg.Owner()),
		Distributor:  inline(cfg.Distributor()),
		Hosting:      inline(cfg.Hosting()),
		Storage:      inline(cfg.Contracts().Storage),
		Currency:     inline(cfg.Contracts().Currency),
		DefaultSplit: percent(cfg.Contracts().DefaultSplit),
	}

	for _, c := range def.Commands {
		ctx.Commands = append(ctx.Commands, CommandView{
			Command:     inline(c.Command),
			Name:        inline(c.Name()),
			Description: inline(c.Description),
			AdminOnly:   c.AdminOnly,
		})
	}
	for _, name := range def.Credentials {
		_, ok := cfg.Credential(name)
		ctx.Access = append(ctx.Access, AccessView{Name: name, Configured: ok})
	}
	for _, a := range cfg.Artists() {
		ctx.Artists = append(ctx.Artists, ArtistView{
			Name:  inline(a.Name),
			Split: percent(cfg.EffectiveSplit(a)),
		})
	}
	ctx.ArtistCount = len(ctx.Artists)
	return ctx
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// inline is the only escaping applied to values: line breaks collapse to
// a single space. Everything else is kept verbatim.
func inline(s string) string {
	return lineBreaks.Replace(s)
}

func inlineAll(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = inline(s)
	}
	return out
}

func percent(f float64) string {
	return fmt.Sprintf("%.0f%%", f*100)
}
