package label

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/ShayCichocki/labelcrew/internal/digest"
	"github.com/ShayCichocki/labelcrew/pkg/models"
)

// Load reads and validates the label config at path. YAML (.yaml, .yml)
// and JSON with comments (.json, .jsonc) are accepted.
//
// A file that cannot be read yields a plain wrapped error. A file that can
// be read but is invalid yields a *ConfigError listing every problem.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read label config: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		data = jsonc.ToJSON(data)
	}
	return Parse(path, data)
}

// Parse validates raw YAML (or JSON) config data. name is used in error
// messages only.
func Parse(name string, data []byte) (*Config, error) {
	v := &validator{}
	cfg := &Config{
		source: name,
		digest: digest.String(data),
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		v.add("(root)", 0, "cannot parse: %v", err)
		return nil, v.err(name)
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind == 0 || (root.Kind == yaml.DocumentNode && len(root.Content) == 0) || isNull(root) {
		// Empty file: report every required field.
		root = &yaml.Node{Kind: yaml.MappingNode}
	}
	if root.Kind != yaml.MappingNode {
		v.add("(root)", root.Line, "expected a mapping, got %s", kindName(root))
		return nil, v.err(name)
	}

	v.label(cfg, root)
	v.artists(cfg, root)
	v.distributor(cfg, root)
	v.credentials(cfg, root)
	v.contracts(cfg, root)
	v.hosting(cfg, root)
	v.overrides(cfg, root)

	if len(v.problems) > 0 {
		return nil, v.err(name)
	}
	return cfg, nil
}

// validator accumulates problems; every check runs regardless of earlier
// failures.
type validator struct {
	problems []Problem
}

func (v *validator) add(field string, line int, format string, args ...interface{}) {
	v.problems = append(v.problems, Problem{
		Field:   field,
		Message: fmt.Sprintf(format, args...),
		Line:    line,
	})
}

func (v *validator) err(name string) error {
	return &ConfigError{Path: name, Problems: v.problems}
}

func (v *validator) label(cfg *Config, root *yaml.Node) {
	node := lookup(root, "label")
	if node == nil {
		v.add("label.name", 0, "required field is missing")
		return
	}
	if node.Kind != yaml.MappingNode {
		v.add("label", node.Line, "expected a mapping, got %s", kindName(node))
		return
	}
	cfg.name = v.requiredString(node, "label", "name")
	cfg.owner = v.optionalString(node, "label", "owner")
}

func (v *validator) artists(cfg *Config, root *yaml.Node) {
	node := lookup(root, "artists")
	if node == nil {
		v.add("artists", 0, "required field is missing")
		return
	}
	if node.Kind != yaml.SequenceNode {
		v.add("artists", node.Line, "expected a list of artists, got %s", kindName(node))
		return
	}
	if len(node.Content) == 0 {
		v.add("artists", node.Line, "at least one artist is required")
		return
	}

	for i, item := range node.Content {
		item = deref(item)
		field := fmt.Sprintf("artists[%d]", i)
		if item.Kind != yaml.MappingNode {
			v.add(field, item.Line, "expected a mapping with a name, got %s", kindName(item))
			continue
		}
		a := Artist{
			Name:           v.requiredString(item, field, "name"),
			ContractStatus: v.optionalString(item, field, "contract_status"),
			Aliases:        v.stringList(item, field, "aliases"),
		}
		if split, ok := v.fraction(item, field, "split"); ok {
			a.Split = &split
		}
		cfg.artists = append(cfg.artists, a)
	}
}

func (v *validator) distributor(cfg *Config, root *yaml.Node) {
	node := lookup(root, "distributor")
	if node == nil {
		v.add("distributor", 0, "required field is missing")
		return
	}
	switch node.Kind {
	case yaml.ScalarNode:
		s, ok := scalarString(node)
		if !ok || strings.TrimSpace(s) == "" {
			v.add("distributor", node.Line, "expected a non-empty distributor identifier")
			return
		}
		cfg.distributor = strings.TrimSpace(s)
	case yaml.MappingNode:
		cfg.distributor = v.requiredString(node, "distributor", "name")
	default:
		v.add("distributor", node.Line, "expected a string or a mapping with a name, got %s", kindName(node))
	}
}

func (v *validator) credentials(cfg *Config, root *yaml.Node) {
	node := lookup(root, "credentials")
	if node == nil {
		v.add("credentials", 0, "required field is missing")
		return
	}
	if node.Kind != yaml.MappingNode {
		v.add("credentials", node.Line, "expected a mapping of credential names to values, got %s", kindName(node))
		return
	}
	cfg.credentials = make(map[string]string, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		value := deref(node.Content[i+1])
		field := "credentials." + key
		s, ok := scalarString(value)
		if !ok {
			v.add(field, value.Line, "expected a string value, got %s", kindName(value))
			continue
		}
		cfg.credentials[key] = expandEnv(s)
	}
}

func (v *validator) contracts(cfg *Config, root *yaml.Node) {
	cfg.contracts = Contracts{
		Storage:      defaultStorage,
		DefaultSplit: defaultSplit,
		Currency:     defaultCurrency,
	}
	v.legacyStorage(cfg, root)

	node := lookup(root, "contracts")
	if node == nil {
		return
	}
	if node.Kind != yaml.MappingNode {
		v.add("contracts", node.Line, "expected a mapping, got %s", kindName(node))
		return
	}
	if s := v.optionalString(node, "contracts", "storage"); s != "" {
		if !oneOf(s, StorageTypes) {
			v.add("contracts.storage", lookup(node, "storage").Line, "unknown storage %q, choose from %s", s, strings.Join(StorageTypes, ", "))
		}
		cfg.contracts.Storage = s
	}
	if split, ok := v.fraction(node, "contracts", "default_split"); ok {
		cfg.contracts.DefaultSplit = split
	}
	if s := v.optionalString(node, "contracts", "currency"); s != "" {
		cfg.contracts.Currency = strings.ToUpper(s)
	}
}

// legacyStorage reads the older contracts_storage.type key. A
// contracts.storage value, when present, replaces it.
func (v *validator) legacyStorage(cfg *Config, root *yaml.Node) {
	node := lookup(root, "contracts_storage")
	if node == nil {
		return
	}
	if node.Kind != yaml.MappingNode {
		v.add("contracts_storage", node.Line, "expected a mapping, got %s", kindName(node))
		return
	}
	if s := v.optionalString(node, "contracts_storage", "type"); s != "" {
		if !oneOf(s, StorageTypes) {
			v.add("contracts_storage.type", lookup(node, "type").Line, "unknown storage %q, choose from %s", s, strings.Join(StorageTypes, ", "))
		}
		cfg.contracts.Storage = s
	}
}

func (v *validator) hosting(cfg *Config, root *yaml.Node) {
	node := lookup(root, "hosting")
	if node == nil {
		return
	}
	if node.Kind != yaml.MappingNode {
		v.add("hosting", node.Line, "expected a mapping, got %s", kindName(node))
		return
	}
	if s := v.optionalString(node, "hosting", "provider"); s != "" {
		if !oneOf(s, HostingProviders) {
			v.add("hosting.provider", lookup(node, "provider").Line, "unknown hosting provider %q, choose from %s", s, strings.Join(HostingProviders, ", "))
		}
		cfg.hosting = s
	}
}

var overrideFields = []string{"enabled", "model", "display_name", "extra_tools"}

func (v *validator) overrides(cfg *Config, root *yaml.Node) {
	node := lookup(root, "agents")
	if node == nil {
		return
	}
	if node.Kind != yaml.MappingNode {
		v.add("agents", node.Line, "expected a mapping of agent ids to overrides, got %s", kindName(node))
		return
	}
	cfg.overrides = make(map[models.Role]models.AgentOverride)
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, body := node.Content[i], deref(node.Content[i+1])
		field := "agents." + keyNode.Value
		role, ok := models.ParseRole(keyNode.Value)
		if !ok {
			v.add(field, keyNode.Line, "unknown agent, choose from %s", strings.Join(roleNames(), ", "))
			continue
		}
		if isNull(body) {
			cfg.overrides[role] = models.AgentOverride{}
			continue
		}
		if body.Kind != yaml.MappingNode {
			v.add(field, body.Line, "expected a mapping, got %s", kindName(body))
			continue
		}
		for j := 0; j+1 < len(body.Content); j += 2 {
			if k := body.Content[j]; !oneOf(k.Value, overrideFields) {
				v.add(field+"."+k.Value, k.Line, "unknown override field, choose from %s", strings.Join(overrideFields, ", "))
			}
		}

		o := models.AgentOverride{
			Model:       v.optionalString(body, field, "model"),
			DisplayName: v.optionalString(body, field, "display_name"),
			ExtraTools:  v.stringList(body, field, "extra_tools"),
		}
		if en := lookup(body, "enabled"); en != nil {
			b, err := strconv.ParseBool(en.Value)
			if en.Kind != yaml.ScalarNode || en.Tag != "!!bool" || err != nil {
				v.add(field+".enabled", en.Line, "expected true or false, got %s", kindName(en))
			} else {
				o.Enabled = &b
			}
		}
		cfg.overrides[role] = o
	}
}

// requiredString reads parent.key as a non-empty string.
func (v *validator) requiredString(parent *yaml.Node, prefix, key string) string {
	field := prefix + "." + key
	node := lookup(parent, key)
	if node == nil {
		v.add(field, parent.Line, "required field is missing")
		return ""
	}
	s, ok := scalarString(node)
	if !ok {
		v.add(field, node.Line, "expected a string, got %s", kindName(node))
		return ""
	}
	s = strings.TrimSpace(s)
	if s == "" {
		v.add(field, node.Line, "must not be empty")
	}
	return s
}

// optionalString reads parent.key as a string, or "" when absent.
func (v *validator) optionalString(parent *yaml.Node, prefix, key string) string {
	node := lookup(parent, key)
	if node == nil || isNull(node) {
		return ""
	}
	s, ok := scalarString(node)
	if !ok {
		v.add(prefix+"."+key, node.Line, "expected a string, got %s", kindName(node))
		return ""
	}
	return strings.TrimSpace(s)
}

// stringList reads parent.key as a list of strings, or nil when absent.
func (v *validator) stringList(parent *yaml.Node, prefix, key string) []string {
	field := prefix + "." + key
	node := lookup(parent, key)
	if node == nil || isNull(node) {
		return nil
	}
	if node.Kind != yaml.SequenceNode {
		v.add(field, node.Line, "expected a list of strings, got %s", kindName(node))
		return nil
	}
	out := make([]string, 0, len(node.Content))
	for i, item := range node.Content {
		item = deref(item)
		s, ok := scalarString(item)
		if !ok {
			v.add(fmt.Sprintf("%s[%d]", field, i), item.Line, "expected a string, got %s", kindName(item))
			continue
		}
		out = append(out, s)
	}
	return out
}

// fraction reads parent.key as a number in [0,1].
func (v *validator) fraction(parent *yaml.Node, prefix, key string) (float64, bool) {
	field := prefix + "." + key
	node := lookup(parent, key)
	if node == nil || isNull(node) {
		return 0, false
	}
	if node.Kind != yaml.ScalarNode || (node.Tag != "!!int" && node.Tag != "!!float") {
		v.add(field, node.Line, "expected a number between 0.0 and 1.0, got %s", kindName(node))
		return 0, false
	}
	f, err := strconv.ParseFloat(node.Value, 64)
	if err != nil {
		v.add(field, node.Line, "expected a number between 0.0 and 1.0: %v", err)
		return 0, false
	}
	if f < 0 || f > 1 {
		v.add(field, node.Line, "must be between 0.0 and 1.0, got %g", f)
		return 0, false
	}
	return f, true
}

// lookup returns the value node for key in a mapping, following aliases.
func lookup(m *yaml.Node, key string) *yaml.Node {
	if m == nil || m.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return deref(m.Content[i+1])
		}
	}
	return nil
}

func deref(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.Tag == "!!null"
}

// scalarString accepts string and numeric scalars; numbers are kept as
// written so that an artist named 1999 survives.
func scalarString(n *yaml.Node) (string, bool) {
	if n.Kind != yaml.ScalarNode {
		return "", false
	}
	switch n.Tag {
	case "!!str", "!!int", "!!float":
		return n.Value, true
	default:
		return "", false
	}
}

func kindName(n *yaml.Node) string {
	switch n.Kind {
	case yaml.MappingNode:
		return "a mapping"
	case yaml.SequenceNode:
		return "a list"
	case yaml.ScalarNode:
		switch n.Tag {
		case "!!null":
			return "null"
		case "!!bool":
			return "a boolean"
		case "!!int", "!!float":
			return "a number"
		default:
			return "a string"
		}
	default:
		return "an unsupported node"
	}
}

func oneOf(s string, options []string) bool {
	for _, o := range options {
		if s == o {
			return true
		}
	}
	return false
}

func roleNames() []string {
	out := make([]string, len(models.Roles))
	for i, r := range models.Roles {
		out[i] = string(r)
	}
	return out
}

// expandEnv expands ${VAR} references in credential values.
func expandEnv(s string) string {
	return os.ExpandEnv(s)
}
