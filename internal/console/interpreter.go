package console

import (
	"fmt"
	"sort"
	"strings"

	"github.com/zeusync/ontology/internal/core/observability/log"
	"github.com/zeusync/ontology/internal/core/ontology"
)

type handler func(args []string) (string, error)

type command struct {
	usage   string
	summary string
	minArgs int
	maxArgs int // -1 takes the rest of the line
	run     handler
}

// Interpreter executes console lines against one universe. Like the
// universe it is not safe for concurrent use; see Dispatcher.
type Interpreter struct {
	universe *ontology.Universe
	logger   log.Log
	commands map[string]command
}

func NewInterpreter(u *ontology.Universe, logger log.Log) *Interpreter {
	if logger == nil {
		logger = log.NewNop()
	}
	in := &Interpreter{
		universe: u,
		logger:   logger.With(log.String("component", "console")),
	}
	in.commands = map[string]command{
		"names":    {"names [path]", "list names in the global scope or in path's scope", 0, 1, in.names},
		"info":     {"info <path>", "describe an entity", 1, 1, in.info},
		"children": {"children <path>", "list children grouped by kind", 1, 1, in.children},
		"complete": {"complete <prefix>", "complete a global name", 0, 1, in.complete},
		"bind":     {"bind <path> <parent-path>", "move an entity under a new parent, or to a brain", 2, 2, in.bind},
		"master":   {"master <path> <master-path>", "bind an apprentice to a new master", 2, 2, in.master},
		"unmaster": {"unmaster <path> <kind>", "drop the apprentice edge to a master kind", 2, 2, in.unmaster},
		"destroy":  {"destroy <path>", "destroy an entity and its subtree", 1, 1, in.destroy},
		"rename":   {"rename <path> global|local <name>", "set a global or local name", 3, 3, in.rename},
		"get":      {"get <path>", "print a variable's value", 1, 1, in.get},
		"set":      {"set <path> <value>", "set a variable and activate it", 2, -1, in.set},
		"count":    {"count", "count live entities", 0, 0, in.count},
		"digest":   {"digest", "hash the live hierarchy", 0, 0, in.digest},
		"help":     {"help [command]", "show commands", 0, 1, in.help},
	}
	return in
}

// Execute runs one command line. An empty line is a no-op.
func (in *Interpreter) Execute(line string) (string, error) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return "", nil
	}
	name, args := parts[0], parts[1:]

	cmd, ok := in.commands[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	if len(args) < cmd.minArgs || (cmd.maxArgs >= 0 && len(args) > cmd.maxArgs) {
		return "", fmt.Errorf("%w: usage: %s", ErrUsage, cmd.usage)
	}

	out, err := cmd.run(args)
	if err != nil {
		in.logger.Debug("command failed", log.String("command", name), log.Error(err))
		return "", err
	}
	in.logger.Debug("command executed", log.String("command", name))
	return out, nil
}

func (in *Interpreter) resolve(path string) (ontology.Entity, error) {
	if path == "/" {
		return in.universe, nil
	}
	return in.universe.ResolvePath(path)
}

func (in *Interpreter) names(args []string) (string, error) {
	var scope ontology.Entity = in.universe
	if len(args) == 1 {
		e, err := in.resolve(args[0])
		if err != nil {
			return "", err
		}
		scope = e
	}
	return strings.Join(scope.Registry().EntityNames(), "\n"), nil
}

func (in *Interpreter) info(args []string) (string, error) {
	e, err := in.resolve(args[0])
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "kind:        %s\n", e.Kind())
	fmt.Fprintf(&b, "handle:      %s\n", e.Handle())
	fmt.Fprintf(&b, "global name: %s\n", e.GlobalName())
	fmt.Fprintf(&b, "local name:  %s\n", e.LocalName())
	fmt.Fprintf(&b, "child id:    %d\n", e.ChildID())
	fmt.Fprintf(&b, "parent:      %s\n", describe(e.Parent()))
	fmt.Fprintf(&b, "scene:       %s\n", describe(sceneOf(e)))
	for _, k := range ontology.Kinds() {
		if !e.Kind().AcceptsMaster(k) {
			continue
		}
		fmt.Fprintf(&b, "%-12s %s\n", k.String()+":", describe(e.Master(k)))
	}
	fmt.Fprintf(&b, "children:    %d\n", e.NumberOfChildren())
	fmt.Fprintf(&b, "descendants: %d\n", e.NumberOfDescendants())
	fmt.Fprintf(&b, "apprentices: %d\n", e.NumberOfApprentices())
	fmt.Fprintf(&b, "erasable:    %t", e.CanBeErased())
	return b.String(), nil
}

func (in *Interpreter) children(args []string) (string, error) {
	e, err := in.resolve(args[0])
	if err != nil {
		return "", err
	}
	var lines []string
	for _, k := range ontology.Kinds() {
		for _, c := range e.ChildrenOf(k) {
			lines = append(lines, fmt.Sprintf("%s %d %s", k, c.ChildID(), describe(c)))
		}
	}
	return strings.Join(lines, "\n"), nil
}

func (in *Interpreter) complete(args []string) (string, error) {
	prefix := ""
	if len(args) == 1 {
		prefix = args[0]
	}
	reg := in.universe.Registry()
	if reg.NumberOfCompletions(prefix) == 1 {
		return reg.Complete(prefix), nil
	}
	return strings.Join(reg.Completions(prefix), "\n"), nil
}

// bind follows the shape of the target: a brain becomes the master of a
// movable, anything else becomes the new parent.
func (in *Interpreter) bind(args []string) (string, error) {
	e, err := in.resolve(args[0])
	if err != nil {
		return "", err
	}
	target, err := in.resolve(args[1])
	if err != nil {
		return "", err
	}
	if target.Kind() == ontology.KindBrain && e.Kind().AcceptsMaster(ontology.KindBrain) {
		return "", ontology.BindToNewMaster(e, target)
	}
	return "", ontology.BindToNewParent(e, target)
}

func (in *Interpreter) master(args []string) (string, error) {
	e, err := in.resolve(args[0])
	if err != nil {
		return "", err
	}
	m, err := in.resolve(args[1])
	if err != nil {
		return "", err
	}
	return "", ontology.BindToNewMaster(e, m)
}

func (in *Interpreter) unmaster(args []string) (string, error) {
	e, err := in.resolve(args[0])
	if err != nil {
		return "", err
	}
	k, err := ontology.ParseKind(args[1])
	if err != nil {
		return "", err
	}
	return "", ontology.UnbindMaster(e, k)
}

func (in *Interpreter) destroy(args []string) (string, error) {
	e, err := in.resolve(args[0])
	if err != nil {
		return "", err
	}
	n := 1 + e.NumberOfDescendants()
	if err := in.universe.Destroy(e); err != nil {
		return "", err
	}
	return fmt.Sprintf("destroyed %d", n), nil
}

func (in *Interpreter) rename(args []string) (string, error) {
	e, err := in.resolve(args[0])
	if err != nil {
		return "", err
	}
	switch args[1] {
	case "global", "g":
		return "", e.SetGlobalName(args[2])
	case "local", "l":
		return "", e.SetLocalName(args[2])
	default:
		return "", fmt.Errorf("%w: usage: %s", ErrUsage, in.commands["rename"].usage)
	}
}

func (in *Interpreter) variable(path string) (*ontology.Variable, error) {
	e, err := in.resolve(path)
	if err != nil {
		return nil, err
	}
	v, ok := e.(*ontology.Variable)
	if !ok {
		return nil, fmt.Errorf("%w: %s is a %s", ErrNotVariable, path, e.Kind())
	}
	return v, nil
}

func (in *Interpreter) get(args []string) (string, error) {
	v, err := in.variable(args[0])
	if err != nil {
		return "", err
	}
	return v.Get(), nil
}

func (in *Interpreter) set(args []string) (string, error) {
	v, err := in.variable(args[0])
	if err != nil {
		return "", err
	}
	return "", v.Set(strings.Join(args[1:], " "))
}

func (in *Interpreter) count([]string) (string, error) {
	return fmt.Sprint(1 + in.universe.NumberOfDescendants()), nil
}

func (in *Interpreter) digest([]string) (string, error) {
	return fmt.Sprintf("%016x", in.universe.Digest()), nil
}

func (in *Interpreter) help(args []string) (string, error) {
	if len(args) == 1 {
		cmd, ok := in.commands[args[0]]
		if !ok {
			return "", fmt.Errorf("%w: %s", ErrUnknownCommand, args[0])
		}
		return cmd.usage + "\n  " + cmd.summary, nil
	}
	names := make([]string, 0, len(in.commands))
	for name := range in.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	lines := make([]string, len(names))
	for i, name := range names {
		lines[i] = fmt.Sprintf("%-36s %s", in.commands[name].usage, in.commands[name].summary)
	}
	return strings.Join(lines, "\n"), nil
}

func sceneOf(e ontology.Entity) ontology.Entity {
	if s := e.Scene(); s != nil {
		return s
	}
	return nil
}

func describe(e ontology.Entity) string {
	if e == nil {
		return "-"
	}
	switch {
	case e.GlobalName() != "":
		return fmt.Sprintf("%s %q", e.Kind(), e.GlobalName())
	case e.LocalName() != "":
		return fmt.Sprintf("%s .%s", e.Kind(), e.LocalName())
	default:
		return fmt.Sprintf("%s %s", e.Kind(), e.Handle())
	}
}
