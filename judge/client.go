package judge

import "context"

// Client submits code to the external judging service and returns the
// terminal verdict. Authentication against the judge is internal to the
// implementation; callers never observe token mechanics.
//
// Implementations must convert transport and auth failures into a terminal
// verdict instead of returning them, so scoring can always proceed
// deterministically. The returned error is reserved for context
// cancellation.
type Client interface {
	Submit(ctx context.Context, code string, language string, exerciseRef string) (Verdict, error)
}
