package handlers

import "strings"

// prefixCommand is a parsed text command such as "!autoban add free nitro".
type prefixCommand struct {
	Name string
	Sub  string
	Rest string
}

// parsePrefixCommand splits content into command, optional subcommand and the remaining text.
// Only autoban takes a subcommand; for other commands Rest holds all arguments.
func parsePrefixCommand(prefix, content string) (prefixCommand, bool) {
	if prefix == "" || !strings.HasPrefix(content, prefix) {
		return prefixCommand{}, false
	}
	body := strings.TrimSpace(strings.TrimPrefix(content, prefix))
	name, rest, _ := strings.Cut(body, " ")
	if name == "" {
		return prefixCommand{}, false
	}
	cmd := prefixCommand{Name: strings.ToLower(name), Rest: strings.TrimSpace(rest)}
	if cmd.Name == "autoban" {
		sub, rest, _ := strings.Cut(cmd.Rest, " ")
		cmd.Sub = strings.ToLower(sub)
		cmd.Rest = strings.TrimSpace(rest)
	}
	return cmd, true
}
