package spiro

// Convert solves shape and emits its Béziers to sink. On error, sink
// receives no calls. A nil opts uses [DefaultOptions].
func Convert(shape Shape, sink Sink, opts *Options) error {
	sol, err := Solve(shape, opts)
	if err != nil {
		return err
	}
	sol.Emit(sink)
	return nil
}

// ConvertPath solves shape and returns its Béziers as a path, along with
// the knots.
func ConvertPath(shape Shape, opts *Options) (BezPath, []Knot, error) {
	var ps PathSink
	if err := Convert(shape, &ps, opts); err != nil {
		return nil, nil, err
	}
	return ps.Path, ps.Knots, nil
}
