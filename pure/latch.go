package pure

// LatchI1O1 returns a function that behaves like fn on its first call and
// replays that first result forever after, whatever the argument.
func LatchI1O1[I1, O1 any](fn func(I1) O1) func(I1) O1 {
	return NewCacher(fn).Value
}

// LatchI1O2 is LatchI1O1 for fallible functions. Errors are not latched.
func LatchI1O2[I1, O1 any](fn func(I1) (O1, error)) func(I1) (O1, error) {
	return NewFallibleCacher(fn).Value
}
