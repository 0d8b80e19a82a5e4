// Package spiro converts spiro control points to cubic Béziers.
//
// A spiro curve is specified by a sequence of knots, each with a type that
// says how smooth the curve is allowed to be there. Between two knots, the
// curve is a polynomial spiral: a curve whose curvature is a polynomial of
// its arc length, of degree three at most. Solving a shape finds the
// coefficients of all spirals so that the curve passes through every knot
// with the continuity its type requests. The resulting curves are
// approximated with cubic Béziers for consumption by ordinary 2D graphics
// code.
//
// # Point types
//
// Knots can be one of the following types:
//
//   - [Corner]: no continuity, the curve can change direction abruptly.
//   - [Smooth]: continuous tangent, curvature and the first two derivatives
//     of curvature (G4).
//   - [SmoothG2]: continuous tangent and curvature (G2).
//   - [LeftConstrained] and [RightConstrained]: the transition from a curve
//     to a straight line and back.
//   - [CurveStart] and [CurveEnd]: the ends of an open curve.
//   - [Anchor]: an explicit boundary, treated like a corner.
//
// The first and last knots of an open shape are always treated as
// [CurveStart] and [CurveEnd], regardless of their declared type.
//
// Tagged shapes carry their own terminator instead of a closed flag: the
// list ends at the first [End] (closed) or [CurveEnd] (open). In tagged
// mode, knots may also carry an [Annotation] that pins the derivatives of
// curvature at a free end to explicit values.
//
// # Solving and emitting
//
// [Solve] computes a [Solution] with Newton's method. Every iteration
// linearizes the continuity constraints numerically and solves the
// resulting banded system. Failures are reported as a [*SolveError]
// wrapping [ErrDegenerateInput], [ErrSingularSystem] or
// [ErrMaxIterations]. A solution can be emitted to any [Sink] with
// [Solution.Emit]; [Convert] does both in one step.
//
// Sinks included in this package are [PathSink], which builds a [BezPath],
// [HitTester], which measures the distance of a point to the curve, and
// [KnotCollector].
//
// # Coordinate system
//
// Angles are measured from the positive x axis towards the positive y
// axis. The engine works the same in y-up and y-down coordinate systems;
// only the visual sense of rotation differs.
//
// # Literature
//
//   - Raph Levien, "From Spiral to Spline: Optimal Techniques in Interactive
//     Curve Design", PhD thesis, 2009.
//   - Raph Levien and Carlo H. Séquin, "Interpolating Splines: Which is the
//     fairest of them all?", Computer-Aided Design and Applications, 2009.
package spiro
