package timeline

// InvariantError reports a derived-map entry the snapshot data must
// contain but does not. It is fatal to the current render pass; callers
// surface it instead of defaulting the missing value.
type InvariantError struct {
	Missing string
}

func (e *InvariantError) Error() string {
	return "timeline invariant violated: missing " + e.Missing
}
