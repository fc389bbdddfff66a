package render

import (
	"reflect"
	"strings"
	"text/template"
	"text/template/parse"
)

var contextType = reflect.TypeOf(Context{})

// unresolvedError names a placeholder that does not exist on the type it
// is evaluated against.
type unresolvedError struct {
	key string
}

func (e *unresolvedError) Error() string {
	return "unresolved placeholder " + e.key
}

// fieldChecker walks a parsed template and resolves every field reference
// against the static type of dot, or of the variable it starts from, at
// that point. Where the type cannot be known (function results, map
// values) the check is skipped and execution with missingkey=error remains
// the backstop.
type fieldChecker struct {
	tmpl     *template.Template
	root     reflect.Type
	refs     map[string]bool
	visiting map[string]bool
	// vars is the variable scope stack; a nil type means unknown.
	vars []variable
}

type variable struct {
	name string
	t    reflect.Type
}

// checkFields validates tmpl against root and returns the set of root-level
// fields it references.
func checkFields(tmpl *template.Template, root reflect.Type) (map[string]bool, error) {
	c := &fieldChecker{
		tmpl:     tmpl,
		root:     root,
		refs:     make(map[string]bool),
		visiting: make(map[string]bool),
		vars:     []variable{{name: "$", t: root}},
	}
	if tmpl.Tree == nil {
		return c.refs, nil
	}
	c.visiting[tmpl.Name()] = true
	return c.refs, c.list(tmpl.Tree.Root, root)
}

func (c *fieldChecker) push(name string, t reflect.Type) {
	c.vars = append(c.vars, variable{name: name, t: t})
}

func (c *fieldChecker) pop(mark int) {
	c.vars = c.vars[:mark]
}

// assign handles {{$x = pipeline}}: the variable keeps its scope but its
// type becomes t.
func (c *fieldChecker) assign(name string, t reflect.Type) {
	for i := len(c.vars) - 1; i >= 0; i-- {
		if c.vars[i].name == name {
			c.vars[i].t = t
			return
		}
	}
}

func (c *fieldChecker) lookupVar(name string) (variable, bool) {
	for i := len(c.vars) - 1; i >= 0; i-- {
		if c.vars[i].name == name {
			return c.vars[i], true
		}
	}
	return variable{}, false
}

// declare binds the variables of an action pipeline to t.
func (c *fieldChecker) declare(p *parse.PipeNode, t reflect.Type) {
	for _, v := range p.Decl {
		if len(v.Ident) == 0 {
			continue
		}
		if p.IsAssign {
			c.assign(v.Ident[0], t)
		} else {
			c.push(v.Ident[0], t)
		}
	}
}

// list checks a node list. Variables declared in it go out of scope at
// its end.
func (c *fieldChecker) list(l *parse.ListNode, dot reflect.Type) error {
	if l == nil {
		return nil
	}
	defer c.pop(len(c.vars))
	for _, n := range l.Nodes {
		if err := c.node(n, dot); err != nil {
			return err
		}
	}
	return nil
}

func (c *fieldChecker) node(n parse.Node, dot reflect.Type) error {
	switch n := n.(type) {
	case *parse.ActionNode:
		t, err := c.pipe(n.Pipe, dot)
		if err != nil {
			return err
		}
		c.declare(n.Pipe, t)
		return nil
	case *parse.IfNode:
		return c.branch(&n.BranchNode, dot, false)
	case *parse.WithNode:
		return c.branch(&n.BranchNode, dot, true)
	case *parse.RangeNode:
		t, err := c.pipe(n.Pipe, dot)
		if err != nil {
			return err
		}
		mark := len(c.vars)
		switch decl := n.Pipe.Decl; len(decl) {
		case 1:
			c.push(decl[0].Ident[0], elem(t))
		case 2:
			c.push(decl[0].Ident[0], key(t))
			c.push(decl[1].Ident[0], elem(t))
		}
		err = c.list(n.List, elem(t))
		c.pop(mark)
		if err != nil {
			return err
		}
		return c.list(n.ElseList, dot)
	case *parse.TemplateNode:
		t, err := c.pipe(n.Pipe, dot)
		if err != nil {
			return err
		}
		sub := c.tmpl.Lookup(n.Name)
		if sub == nil || sub.Tree == nil || c.visiting[n.Name] {
			return nil
		}
		c.visiting[n.Name] = true
		defer delete(c.visiting, n.Name)

		// An invoked template starts a fresh scope where $ is its dot.
		outer := c.vars
		c.vars = []variable{{name: "$", t: t}}
		defer func() { c.vars = outer }()
		return c.list(sub.Tree.Root, t)
	}
	return nil
}

// branch checks if and with. Inside a with body dot is the pipeline result.
func (c *fieldChecker) branch(b *parse.BranchNode, dot reflect.Type, with bool) error {
	t, err := c.pipe(b.Pipe, dot)
	if err != nil {
		return err
	}
	inner := dot
	if with {
		inner = t
	}

	mark := len(c.vars)
	defer c.pop(mark)
	if b.Pipe != nil {
		c.declare(b.Pipe, t)
	}
	if err := c.list(b.List, inner); err != nil {
		return err
	}
	return c.list(b.ElseList, dot)
}

// pipe checks every command of p and returns the static type of its result,
// or nil when unknown.
func (c *fieldChecker) pipe(p *parse.PipeNode, dot reflect.Type) (reflect.Type, error) {
	if p == nil {
		return nil, nil
	}
	var last reflect.Type
	for _, cmd := range p.Cmds {
		var t reflect.Type
		for i, arg := range cmd.Args {
			at, err := c.arg(arg, dot)
			if err != nil {
				return nil, err
			}
			if i == 0 {
				t = at
			}
		}
		if len(cmd.Args) > 0 {
			if _, isFunc := cmd.Args[0].(*parse.IdentifierNode); isFunc {
				t = nil
			}
		}
		last = t
	}
	return last, nil
}

func (c *fieldChecker) arg(n parse.Node, dot reflect.Type) (reflect.Type, error) {
	switch n := n.(type) {
	case *parse.FieldNode:
		if dot == c.root && len(n.Ident) > 0 {
			c.refs[n.Ident[0]] = true
		}
		return resolve(dot, n.Ident)
	case *parse.ChainNode:
		base, err := c.arg(n.Node, dot)
		if err != nil {
			return nil, err
		}
		return resolve(base, n.Field)
	case *parse.VariableNode:
		if len(n.Ident) == 0 {
			return nil, nil
		}
		v, ok := c.lookupVar(n.Ident[0])
		if !ok {
			return nil, nil
		}
		if v.t == c.root && len(n.Ident) > 1 {
			c.refs[n.Ident[1]] = true
		}
		return resolve(v.t, n.Ident[1:])
	case *parse.DotNode:
		return dot, nil
	case *parse.PipeNode:
		return c.pipe(n, dot)
	}
	return nil, nil
}

// resolve follows a chain of field names from t.
func resolve(t reflect.Type, idents []string) (reflect.Type, error) {
	for i, name := range idents {
		if t == nil {
			return nil, nil
		}
		for t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		switch t.Kind() {
		case reflect.Struct:
			f, ok := t.FieldByName(name)
			if !ok || !f.IsExported() {
				return nil, &unresolvedError{key: strings.Join(idents[:i+1], ".")}
			}
			t = f.Type
		case reflect.Map, reflect.Interface:
			return nil, nil
		default:
			return nil, &unresolvedError{key: strings.Join(idents[:i+1], ".")}
		}
	}
	return t, nil
}

// key returns the type of the first variable of a two-variable range.
func key(t reflect.Type) reflect.Type {
	if t == nil {
		return nil
	}
	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		return reflect.TypeOf(0)
	case reflect.Map:
		return t.Key()
	default:
		return nil
	}
}

func elem(t reflect.Type) reflect.Type {
	if t == nil {
		return nil
	}
	switch t.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return t.Elem()
	default:
		return nil
	}
}
