package bot

import (
	"context"
	"sort"
	"strings"

	"github.com/sw33tLie/pricebot/pkg/render"
)

// DefaultPrefix is the prefix for text commands such as "!price diamond".
const DefaultPrefix = "!"

// Logger abstracts logging so callers can use logrus, stdlib log, or any
// other logger that satisfies this interface.
type Logger interface {
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}

type nopLogger struct{}

func (nopLogger) Infof(string, ...interface{})  {}
func (nopLogger) Warnf(string, ...interface{})  {}
func (nopLogger) Errorf(string, ...interface{}) {}
func (nopLogger) Debugf(string, ...interface{}) {}

// Reply is what a command answers with: plain text or a rich card.
type Reply struct {
	Text string
	Card *render.Card
}

// String flattens the reply for text-only transports.
func (r Reply) String() string {
	if r.Card != nil {
		return r.Card.Text()
	}
	return r.Text
}

// Command is the interface that all bot commands must implement.
type Command interface {
	Execute(ctx context.Context, args []string) Reply
	Description() string
}

// Registry holds the named commands and parses incoming messages.
type Registry struct {
	prefix   string
	commands map[string]Command
}

// NewRegistry creates an empty registry. An empty prefix means DefaultPrefix.
func NewRegistry(prefix string) *Registry {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Registry{prefix: prefix, commands: make(map[string]Command)}
}

func (r *Registry) Prefix() string { return r.prefix }

// Register adds a command. Names are case-insensitive.
func (r *Registry) Register(name string, cmd Command) {
	r.commands[strings.ToLower(name)] = cmd
}

// Parse splits a message into a lower-cased command name and its arguments.
// Both the text prefix and slash commands ("/price@SomeBot diamond") are
// accepted. ok is false when the message is not a command.
func (r *Registry) Parse(text string) (name string, args []string, ok bool) {
	switch {
	case strings.HasPrefix(text, r.prefix):
		text = text[len(r.prefix):]
	case strings.HasPrefix(text, "/"):
		text = text[1:]
	default:
		return "", nil, false
	}

	fields := strings.Fields(text)
	if len(fields) == 0 {
		return "", nil, false
	}
	name = strings.ToLower(fields[0])
	if at := strings.IndexByte(name, '@'); at >= 0 {
		name = name[:at]
	}
	return name, fields[1:], true
}

// Dispatch runs the command named in text. handled is false for messages
// that are not commands or name an unknown command.
func (r *Registry) Dispatch(ctx context.Context, text string) (reply Reply, handled bool) {
	name, args, ok := r.Parse(text)
	if !ok {
		return Reply{}, false
	}
	cmd, ok := r.commands[name]
	if !ok {
		return Reply{}, false
	}
	return cmd.Execute(ctx, args), true
}

// Help lists registered commands with their descriptions, sorted by name.
func (r *Registry) Help() string {
	names := make([]string, 0, len(r.commands))
	for n := range r.commands {
		names = append(names, n)
	}
	sort.Strings(names)

	var b strings.Builder
	for i, n := range names {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(r.prefix + n + " - " + r.commands[n].Description())
	}
	return b.String()
}
