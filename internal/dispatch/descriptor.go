// Package dispatch provides the transport-agnostic command core: typed
// command descriptors, a name registry, permission authorization, and an
// executor that validates arguments and converts handler failures into
// user-visible replies. How commands are registered with a platform and how
// events reach the executor is defined by adapters that wrap this package.
package dispatch

import (
	"context"
)

// ArgKind is the declared type of a command argument.
type ArgKind int

const (
	ArgString ArgKind = iota
	ArgInteger
	ArgBoolean
	ArgUser
	ArgChannel
)

// ArgumentSpec declares one typed argument of a command.
type ArgumentSpec struct {
	Name        string
	Description string
	Kind        ArgKind
	Required    bool
	// Allowed restricts string arguments to a fixed set of values.
	// Empty means any value is accepted.
	Allowed []string
}

// HandlerFunc executes a validated invocation and reports its outcome.
type HandlerFunc func(ctx context.Context, inv *Invocation) (*Outcome, error)

// Descriptor is the immutable registration record of a command: identity,
// argument contract, and the permission set an actor must hold.
type Descriptor struct {
	Name        string
	Description string
	Args        []ArgumentSpec
	// RequiredPermissions is a bitmask of discordgo permission flags; the
	// actor must hold every bit.
	RequiredPermissions int64
	// GuildOnly rejects invocations that arrive outside a guild.
	GuildOnly bool
	// DeferFirst acknowledges the invocation before running the handler,
	// for handlers that perform a slow external call before replying.
	DeferFirst bool
	Handler    HandlerFunc
}
