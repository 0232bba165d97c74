// Package pagination windows ordered collections into pages.
// Windows and collections are values: every operation returns a new one and nothing is mutated,
// so they can be shared between goroutines without locking.
package pagination

// Package-wide fallbacks used when no Config in the chain sets a value.
const (
	DefaultPerPage = 25
	// MaxPerPage of 0 means per-page values are not capped.
	MaxPerPage = 0
	// MaxPages of 0 means the page count is not capped.
	MaxPages = 0
)

// Settings are the per-type paging knobs. A zero field is "not set here" and falls back to the parent.
type Settings struct {
	DefaultPerPage int `mapstructure:"default_per_page" json:"default_per_page,omitempty" validate:"gte=0"`
	MaxPerPage     int `mapstructure:"max_per_page" json:"max_per_page,omitempty" validate:"gte=0"`
	MaxPages       int `mapstructure:"max_pages" json:"max_pages,omitempty" validate:"gte=0"`
}

// Config is one node of the per-type configuration chain.
// It is built once when a type is declared and only read afterwards.
type Config struct {
	parent *Config
	own    Settings
}

// NewConfig creates a config that falls back to parent (may be nil) for anything own leaves unset.
// Negative values are treated as unset.
func NewConfig(parent *Config, own Settings) *Config {
	if own.DefaultPerPage < 0 {
		own.DefaultPerPage = 0
	}
	if own.MaxPerPage < 0 {
		own.MaxPerPage = 0
	}
	if own.MaxPages < 0 {
		own.MaxPages = 0
	}
	return &Config{parent: parent, own: own}
}

// Parent returns the config this one falls back to, or nil for a root.
func (c *Config) Parent() *Config {
	if c == nil {
		return nil
	}
	return c.parent
}

// Own returns only the values declared at this level.
func (c *Config) Own() Settings {
	if c == nil {
		return Settings{}
	}
	return c.own
}

func (c *Config) DefaultPerPage() int {
	return c.lookup(func(s Settings) int { return s.DefaultPerPage }, DefaultPerPage)
}

func (c *Config) MaxPerPage() int {
	return c.lookup(func(s Settings) int { return s.MaxPerPage }, MaxPerPage)
}

func (c *Config) MaxPages() int {
	return c.lookup(func(s Settings) int { return s.MaxPages }, MaxPages)
}

// Effective resolves every field through the chain.
func (c *Config) Effective() Settings {
	return Settings{
		DefaultPerPage: c.DefaultPerPage(),
		MaxPerPage:     c.MaxPerPage(),
		MaxPages:       c.MaxPages(),
	}
}

func (c *Config) lookup(field func(Settings) int, fallback int) int {
	for cur := c; cur != nil; cur = cur.parent {
		if v := field(cur.own); v > 0 {
			return v
		}
	}
	return fallback
}
