package dispatch

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"
)

// Executor routes one inbound command event through resolve → authorize →
// validate → handler, and converts every failure into a single user-visible
// reply. A handler failure never escapes the dispatch loop.
type Executor struct {
	registry *Registry
	log      *zap.Logger
}

// NewExecutor returns an executor over the given registry.
func NewExecutor(registry *Registry, log *zap.Logger) *Executor {
	return &Executor{registry: registry, log: log}
}

// Dispatch processes one command event. The returned outcome is non-nil only
// on handler success; the returned error is the classified failure after the
// user has already been notified, for the adapter's logging.
func (e *Executor) Dispatch(ctx context.Context, name string, inv *Invocation) (*Outcome, error) {
	d, err := e.registry.Resolve(name)
	if err != nil {
		e.log.Warn("unknown command", zap.String("command", name))
		e.fail(inv, err)
		return nil, err
	}

	if d.GuildOnly && inv.GuildID == "" {
		err = &ValidationError{Problems: []ArgProblem{{Field: "guild", Reason: "this command can only be used in a server"}}}
		e.log.Info("guild-only command used outside a guild",
			zap.String("command", name),
			zap.String("actor", inv.ActorID))
		e.fail(inv, err)
		return nil, err
	}

	if decision := Authorize(inv.ActorPermissions, d); !decision.Allowed {
		err = &UnauthorizedError{Missing: decision.Missing}
		e.log.Info("command denied",
			zap.String("command", name),
			zap.String("actor", inv.ActorID),
			zap.Strings("missing", PermissionNames(decision.Missing)))
		e.fail(inv, err)
		return nil, err
	}

	if err = validateArgs(d, inv.Args); err != nil {
		e.log.Info("invalid arguments",
			zap.String("command", name),
			zap.String("actor", inv.ActorID),
			zap.Error(err))
		e.fail(inv, err)
		return nil, err
	}

	if d.DeferFirst {
		if err = inv.Replier.Defer(); err != nil {
			err = Collaborator("acknowledge the command", err)
			e.log.Error("defer failed", zap.String("command", name), zap.Error(err))
			return nil, err
		}
	}

	outcome, err := e.run(ctx, d, inv)
	if err != nil {
		e.logFailure(name, err)
		e.fail(inv, err)
		return nil, err
	}

	if outcome == nil {
		outcome = Deferred()
	}
	if outcome.Kind == OutcomeReply {
		if err = e.sendReply(inv, outcome); err != nil {
			err = Collaborator("send the reply", err)
			e.logFailure(name, err)
			return nil, err
		}
	}
	return outcome, nil
}

// run invokes the handler, converting a panic into an error so a misbehaving
// handler cannot take down the event loop.
func (e *Executor) run(ctx context.Context, d *Descriptor, inv *Invocation) (outcome *Outcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			outcome = nil
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	return d.Handler(ctx, inv)
}

// sendReply delivers a reply outcome, editing the deferred acknowledgement
// when the first-reply slot is already consumed.
func (e *Executor) sendReply(inv *Invocation, o *Outcome) error {
	if inv.Replier.Consumed() {
		if o.Embed != nil {
			_, err := inv.Replier.EditPage(o.Embed, nil)
			return err
		}
		return inv.Replier.Edit(o.Content)
	}
	if o.Embed != nil {
		return inv.Replier.ReplyEmbed(o.Embed, o.Ephemeral)
	}
	return inv.Replier.Reply(o.Content, o.Ephemeral)
}

// fail sends the single human-readable failure message for err, choosing
// reply, edit, or followup depending on what the invocation already sent.
func (e *Executor) fail(inv *Invocation, err error) {
	msg := UserMessage(err)
	var sendErr error
	if inv.Replier.Consumed() {
		sendErr = inv.Replier.Edit(msg)
		if errors.Is(sendErr, ErrNoFirstReply) {
			sendErr = inv.Replier.Followup(msg, true)
		}
	} else {
		sendErr = inv.Replier.Reply(msg, true)
	}
	if sendErr != nil {
		e.log.Error("failed to deliver error reply", zap.Error(sendErr), zap.String("cause", err.Error()))
	}
}

func (e *Executor) logFailure(name string, err error) {
	var cerr *CollaboratorError
	switch {
	case errors.As(err, &cerr):
		e.log.Error("collaborator failure", zap.String("command", name), zap.String("op", cerr.Op), zap.Error(cerr.Err))
	case errors.Is(err, ErrDoubleReply) || errors.Is(err, ErrNoFirstReply):
		e.log.Error("reply contract violation", zap.String("command", name), zap.Error(err))
	default:
		e.log.Error("handler failure", zap.String("command", name), zap.Error(err))
	}
}

// validateArgs checks every argument spec and collects all problems so the
// user sees the full list at once.
func validateArgs(d *Descriptor, args Args) error {
	var problems []ArgProblem
	for _, spec := range d.Args {
		raw, present := args[spec.Name]
		if !present {
			if spec.Required {
				problems = append(problems, ArgProblem{Field: spec.Name, Reason: "required argument is missing"})
			}
			continue
		}
		if len(spec.Allowed) > 0 {
			v, _ := raw.(string)
			if !slices.Contains(spec.Allowed, v) {
				problems = append(problems, ArgProblem{
					Field:  spec.Name,
					Reason: "must be one of: " + strings.Join(spec.Allowed, ", "),
				})
			}
		}
	}
	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}
