package command

// Kind tells leaves and groups apart.
type Kind uint8

const (
	// KindLeaf nodes run a handler.
	KindLeaf Kind = iota + 1

	// KindGroup nodes hold nested commands.
	KindGroup
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindLeaf:
		return "leaf"
	case KindGroup:
		return "group"
	}
	return "invalid"
}

// Node is one entry of a command tree. Build nodes with Command or
// Subcommand; the zero Node is invalid and never matches.
type Node struct {
	name string
	help string
	kind Kind

	children Forest
	handler  Handler
	usage    Usage
}

// Forest is an ordered list of sibling nodes.
type Forest []Node

// Command creates a leaf. usage may be nil. It panics if h is nil.
func Command(name string, h Handler, help string, usage Usage) Node {
	if h == nil {
		panic("command: nil handler for " + name)
	}
	return Node{
		name:    name,
		help:    help,
		kind:    KindLeaf,
		handler: h,
		usage:   usage,
	}
}

// Subcommand creates a group of nested commands.
func Subcommand(name string, children Forest, help string) Node {
	return Node{
		name:     name,
		help:     help,
		kind:     KindGroup,
		children: children,
	}
}

// Name returns the token the node matches.
func (n Node) Name() string { return n.name }

// Help returns the one-line description.
func (n Node) Help() string { return n.help }

// Kind returns whether n is a leaf or a group.
func (n Node) Kind() Kind { return n.kind }

// IsGroup reports whether n holds nested commands.
func (n Node) IsGroup() bool { return n.kind == KindGroup }

// Children returns the nested commands of a group.
func (n Node) Children() Forest { return n.children }

// Handler returns the handler of a leaf.
func (n Node) Handler() Handler { return n.handler }

// Usage returns the usage callback of a leaf, or nil.
func (n Node) Usage() Usage { return n.usage }

// Find resolves a path of names without running anything.
func (f Forest) Find(path ...string) (Node, bool) {
	if len(path) == 0 {
		return Node{}, false
	}
	for _, n := range f {
		if n.kind == 0 || n.name != path[0] {
			continue
		}
		if len(path) == 1 {
			return n, true
		}
		if !n.IsGroup() {
			return Node{}, false
		}
		return n.children.Find(path[1:]...)
	}
	return Node{}, false
}

// Names returns the sibling names in order.
func (f Forest) Names() []string {
	names := make([]string, 0, len(f))
	for _, n := range f {
		if n.kind != 0 {
			names = append(names, n.name)
		}
	}
	return names
}
