package dispatch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func noopHandler(ctx context.Context, inv *Invocation) (*Outcome, error) {
	return ReplyWith("ok"), nil
}

func TestRegistryRegisterAndResolve(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(&Descriptor{Name: "ping", Description: "ping", Handler: noopHandler}))

	d, err := reg.Resolve("ping")
	require.NoError(t, err)
	require.Equal(t, "ping", d.Name)
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(&Descriptor{Name: "ping", Description: "ping", Handler: noopHandler}))

	err := reg.Register(&Descriptor{Name: "ping", Description: "other", Handler: noopHandler})
	var derr *DuplicateCommandError
	require.ErrorAs(t, err, &derr)
	require.Equal(t, "ping", derr.Name)
}

func TestRegistryResolveUnknown(t *testing.T) {
	reg := NewRegistry()
	_, err := reg.Resolve("ghost")
	var nerr *NotFoundError
	require.ErrorAs(t, err, &nerr)
}

func TestRegistryAllSorted(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister(
		&Descriptor{Name: "zeta", Description: "z", Handler: noopHandler},
		&Descriptor{Name: "alpha", Description: "a", Handler: noopHandler},
		&Descriptor{Name: "mid", Description: "m", Handler: noopHandler},
	)

	all := reg.All()
	require.Len(t, all, 3)
	require.Equal(t, "alpha", all[0].Name)
	require.Equal(t, "mid", all[1].Name)
	require.Equal(t, "zeta", all[2].Name)
}

func TestRegistryMustRegisterPanicsOnDuplicate(t *testing.T) {
	reg := NewRegistry()
	require.Panics(t, func() {
		reg.MustRegister(
			&Descriptor{Name: "dup", Description: "a", Handler: noopHandler},
			&Descriptor{Name: "dup", Description: "b", Handler: noopHandler},
		)
	})
}
