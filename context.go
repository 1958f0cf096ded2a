package ivaltauth

import "context"

type clientIPContextKey struct{}
type realmContextKey struct{}

// WithClientIP attaches the caller's IP address to ctx. The engine
// carries it into audit events for every flow invocation.
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPContextKey{}, ip)
}

// WithRealm attaches the host realm name to ctx so audit events can be
// attributed when one engine serves several realms.
func WithRealm(ctx context.Context, realm string) context.Context {
	return context.WithValue(ctx, realmContextKey{}, realm)
}

func clientIPFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	ip, _ := ctx.Value(clientIPContextKey{}).(string)
	return ip
}

func realmFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	realm, _ := ctx.Value(realmContextKey{}).(string)
	return realm
}
