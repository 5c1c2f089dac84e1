package dispatch

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGuardSecondReplyFails(t *testing.T) {
	rec := &recordingReplier{}
	r := GuardReplier(rec)

	require.NoError(t, r.Reply("first", false))
	require.ErrorIs(t, r.Reply("second", false), ErrDoubleReply)
	require.Equal(t, []string{"first"}, rec.replies)
}

func TestGuardReplyThenDeferFails(t *testing.T) {
	rec := &recordingReplier{}
	r := GuardReplier(rec)

	require.NoError(t, r.Reply("first", false))
	require.ErrorIs(t, r.Defer(), ErrDoubleReply)
	require.Zero(t, rec.deferred)
}

func TestGuardEditBeforeFirstReplyFails(t *testing.T) {
	r := GuardReplier(&recordingReplier{})

	require.ErrorIs(t, r.Edit("nope"), ErrNoFirstReply)
	_, err := r.EditPage(nil, nil)
	require.ErrorIs(t, err, ErrNoFirstReply)
	require.ErrorIs(t, r.Followup("nope", false), ErrNoFirstReply)
}

func TestGuardDeferThenEditSucceeds(t *testing.T) {
	rec := &recordingReplier{}
	r := GuardReplier(rec)

	require.False(t, r.Consumed())
	require.NoError(t, r.Defer())
	require.True(t, r.Consumed())
	require.NoError(t, r.Edit("updated"))

	id, err := r.EditPage(nil, nil)
	require.NoError(t, err)
	require.Equal(t, "msg-1", id)
}

func TestGuardConcurrentFirstRepliesConsumeOnce(t *testing.T) {
	rec := &recordingReplier{}
	r := GuardReplier(rec)

	errs := make(chan error, 2)
	go func() { errs <- r.Reply("a", false) }()
	go func() { errs <- r.Reply("b", false) }()

	var failures int
	for i := 0; i < 2; i++ {
		if err := <-errs; err != nil {
			require.ErrorIs(t, err, ErrDoubleReply)
			failures++
		}
	}
	require.Equal(t, 1, failures)
	require.Len(t, rec.replies, 1)
}
