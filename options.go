package spiro

// Options configures the solver and the Bézier emitter. Fields with their
// zero value use the corresponding field of [DefaultOptions].
type Options struct {
	// The maximum number of Newton iterations.
	MaxIterations int
	// The solver has converged once the norm of the residual vector drops
	// below Tolerance. Residuals are scale free.
	Tolerance float64
	// The maximum subdivision depth per segment when emitting Béziers. A
	// segment produces at most 2^MaxDepth cubics. A negative value disables
	// subdivision.
	MaxDepth int
	// The maximum distance between the spiral and an emitted cubic,
	// relative to the mean chord length of the shape.
	ErrorBudget float64
	// Emit straight segments as lines rather than as cubics with control
	// points at one and two thirds of the chord.
	Lines bool
}

var DefaultOptions = Options{
	MaxIterations: 20,
	Tolerance:     1e-9,
	MaxDepth:      5,
	ErrorBudget:   1e-3,
}

func (o Options) WithMaxIterations(n int) Options        { o.MaxIterations = n; return o }
func (o Options) WithTolerance(tol float64) Options      { o.Tolerance = tol; return o }
func (o Options) WithMaxDepth(depth int) Options         { o.MaxDepth = depth; return o }
func (o Options) WithErrorBudget(budget float64) Options { o.ErrorBudget = budget; return o }
func (o Options) WithLines(lines bool) Options           { o.Lines = lines; return o }

// resolveOptions returns a copy of opts with defaults filled in.
func resolveOptions(opts *Options) Options {
	var o Options
	if opts != nil {
		o = *opts
	}
	if o.MaxIterations <= 0 {
		o.MaxIterations = DefaultOptions.MaxIterations
	}
	if o.Tolerance <= 0 {
		o.Tolerance = DefaultOptions.Tolerance
	}
	if o.MaxDepth < 0 {
		o.MaxDepth = 0
	} else if o.MaxDepth == 0 {
		o.MaxDepth = DefaultOptions.MaxDepth
	}
	if o.ErrorBudget <= 0 {
		o.ErrorBudget = DefaultOptions.ErrorBudget
	}
	return o
}
