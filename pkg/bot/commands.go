package bot

import (
	"context"
	"errors"
	"strings"

	"github.com/sw33tLie/pricebot/pkg/catalog"
	"github.com/sw33tLie/pricebot/pkg/engine"
	"github.com/sw33tLie/pricebot/pkg/paginate"
	"github.com/sw33tLie/pricebot/pkg/render"
)

// PriceCommand looks an item up, or lists the catalog when no name is given.
type PriceCommand struct {
	Engine   *engine.Engine
	Prefix   string
	PageSize int
	MaxLen   int
	Log      Logger
}

func (c *PriceCommand) Description() string {
	return "Get the current price and details of a market item."
}

func (c *PriceCommand) Execute(ctx context.Context, args []string) Reply {
	log := c.Log
	if log == nil {
		log = nopLogger{}
	}
	query := strings.Join(args, " ")

	it, err := c.Engine.ResolveQuery(query)
	switch {
	case err == nil:
		card := render.ItemCard(it, c.Prefix)
		return Reply{Card: &card}
	case errors.Is(err, catalog.ErrEmpty):
		return c.listing()
	case errors.Is(err, catalog.ErrNotFound):
		log.Debugf("price lookup missed: %q", query)
		return Reply{Text: render.NotFound(c.Prefix)}
	case errors.Is(err, catalog.ErrServiceUnavailable):
		return Reply{Text: render.Unavailable()}
	}
	log.Errorf("price lookup failed: %v", err)
	return Reply{Text: render.Unavailable()}
}

func (c *PriceCommand) listing() Reply {
	size := c.PageSize
	if size <= 0 {
		size = paginate.CompactPageSize
	}
	pages, total, err := c.Engine.ListPages(size)
	if err != nil {
		return Reply{Text: render.Unavailable()}
	}
	card := render.Listing(pages, total, c.Prefix, c.MaxLen)
	return Reply{Card: &card}
}

// PingCommand is a health check and never touches the engine.
type PingCommand struct{}

func (PingCommand) Description() string { return "Replies with Pong! (Health check)." }

func (PingCommand) Execute(context.Context, []string) Reply {
	return Reply{Text: "Pong!"}
}

// HelpCommand prints the registry's command list.
type HelpCommand struct {
	Registry *Registry
}

func (h HelpCommand) Description() string { return "Lists the available commands." }

func (h HelpCommand) Execute(context.Context, []string) Reply {
	return Reply{Text: h.Registry.Help()}
}

// NewDefaultRegistry wires the price, ping and help commands to e.
func NewDefaultRegistry(e *engine.Engine, prefix string, log Logger) *Registry {
	r := NewRegistry(prefix)
	r.Register("price", &PriceCommand{Engine: e, Prefix: r.Prefix(), PageSize: paginate.CompactPageSize, MaxLen: render.MaxRenderLength, Log: log})
	r.Register("ping", PingCommand{})
	r.Register("help", HelpCommand{Registry: r})
	return r
}
