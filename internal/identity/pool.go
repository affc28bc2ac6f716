package identity

import "math/rand/v2"

// defaultAgents is the built-in identity set: current desktop browser
// User-Agent strings across engines and platforms. Values mirror what the
// major browsers actually send, since identity-based filters key on
// recognizable strings.
var defaultAgents = []string{
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:121.0) Gecko/20100101 Firefox/121.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.2 Safari/605.1.15",
}

// Pool supplies a client identity on each request attempt.
//
// The pool is stateless from the caller's perspective: there is no
// ordering guarantee, only the promise that Pick never returns the
// identity used on the immediately prior failed attempt when the caller
// passes it as exclude.
type Pool struct {
	agents []string
}

// NewPool creates a Pool from the given identities. With no arguments the
// built-in set is used. The input slice is copied; the pool is immutable
// after construction and safe for concurrent use.
func NewPool(agents ...string) *Pool {
	if len(agents) == 0 {
		agents = defaultAgents
	}
	owned := make([]string, len(agents))
	copy(owned, agents)
	return &Pool{agents: owned}
}

// Pick returns a random identity from the pool, never equal to exclude
// unless the pool offers no alternative. Pass the identity used on the
// previous failed attempt to maximize the chance a retry passes
// identity-based filtering.
func (p *Pool) Pick(exclude string) string {
	candidates := p.agents
	if exclude != "" {
		filtered := make([]string, 0, len(p.agents))
		for _, a := range p.agents {
			if a != exclude {
				filtered = append(filtered, a)
			}
		}
		if len(filtered) > 0 {
			candidates = filtered
		}
	}
	return candidates[rand.IntN(len(candidates))]
}

// Size returns the number of identities in the pool.
func (p *Pool) Size() int {
	return len(p.agents)
}
