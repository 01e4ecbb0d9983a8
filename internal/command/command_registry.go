package command

import "sort"

var registry = map[string]Command{}

// Register wires a command and its aliases into the lookup table. A name or
// alias colliding with an already-registered one is a programming error and
// fails at startup.
func Register(cmd Command) {
	for _, name := range append([]string{cmd.Name()}, cmd.Aliases()...) {
		if _, dup := registry[name]; dup {
			panic("duplicate command registration: " + name)
		}
		registry[name] = cmd
	}
}

func Get(name string) (Command, bool) {
	cmd, ok := registry[name]
	return cmd, ok
}

// All returns every registered command once, sorted by name for display.
func All() []Command {
	seen := map[string]bool{}
	var list []Command
	for _, cmd := range registry {
		if seen[cmd.Name()] {
			continue
		}
		list = append(list, cmd)
		seen[cmd.Name()] = true
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name() < list[j].Name() })
	return list
}
