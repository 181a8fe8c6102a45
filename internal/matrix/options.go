package matrix

import (
	"sync"

	"github.com/born-ml/axle/internal/backend/cpu"
	"github.com/born-ml/axle/internal/la"
)

// defaultEngine is the CPU engine shared by matrices built without
// WithEngine.
var defaultEngine = sync.OnceValue(func() la.Engine {
	return cpu.New()
})

// Option configures matrix construction.
type Option func(*options)

type options struct {
	hint   Hint
	attr   Attribute
	engine la.Engine
}

func gatherOptions(opts []Option) options {
	o := options{hint: HintNone, attr: AttributeNone}
	for _, opt := range opts {
		opt(&o)
	}
	if o.engine == nil {
		o.engine = defaultEngine()
	}
	return o
}

// WithHint attaches a structural or numerical hint. Constructors that fix
// the structure themselves (Zeros, Identity, Diagonal) ignore it.
func WithHint(h Hint) Option {
	h.Raw() // panics on unknown hints
	return func(o *options) {
		o.hint = h
	}
}

// WithAttribute attaches a diagnostic attribute. Results of operations
// inherit the attributes of their operands.
func WithAttribute(a Attribute) Option {
	a.Raw()
	return func(o *options) {
		o.attr = a
	}
}

// WithEngine selects the engine that records and evaluates the matrix.
// Operands of a binary operation must share an engine.
func WithEngine(e la.Engine) Option {
	if e == nil {
		panic("matrix: WithEngine: nil engine")
	}
	return func(o *options) {
		o.engine = e
	}
}
