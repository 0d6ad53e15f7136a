package identity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forria64/dolphinex/internal/dfx/dfxtest"
)

func TestContextCurrent(t *testing.T) {
	tool := dfxtest.New("alice")
	ctx := NewContext(tool)

	got, err := ctx.Current()
	require.NoError(t, err)
	assert.Equal(t, "alice", got)
}

func TestContextCurrentQueryError(t *testing.T) {
	tool := dfxtest.New("alice")
	tool.Fail("Whoami", errors.New("no identity configured"))
	ctx := NewContext(tool)

	_, err := ctx.Current()
	require.Error(t, err)

	var queryErr *QueryError
	assert.True(t, errors.As(err, &queryErr))
}

func TestContextSwitchToUnknownIdentity(t *testing.T) {
	tool := dfxtest.New("alice")
	ctx := NewContext(tool)

	err := ctx.SwitchTo("nobody")
	require.Error(t, err)

	var switchErr *SwitchError
	require.True(t, errors.As(err, &switchErr))
	assert.Equal(t, "nobody", switchErr.Name)
	assert.Equal(t, "alice", tool.Active, "failed switch must not change the active identity")
}

func TestWithPrivilegedRestoresOnSuccess(t *testing.T) {
	tool := dfxtest.New("alice")
	ctx := NewContext(tool)

	var seenInside string
	err := ctx.WithPrivileged("default", func() error {
		seenInside = tool.Active
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "default", seenInside)
	assert.Equal(t, "alice", tool.Active)
}

func TestWithPrivilegedRestoresOnBodyError(t *testing.T) {
	tool := dfxtest.New("alice")
	ctx := NewContext(tool)

	bodyErr := errors.New("deploy exploded")
	err := ctx.WithPrivileged("default", func() error { return bodyErr })

	assert.ErrorIs(t, err, bodyErr, "body's result must propagate unchanged")
	assert.Equal(t, "alice", tool.Active)
}

func TestWithPrivilegedSaveFailureSkipsBody(t *testing.T) {
	tool := dfxtest.New("alice")
	tool.Fail("Whoami", errors.New("cannot read identity"))
	ctx := NewContext(tool)

	invoked := false
	err := ctx.WithPrivileged("default", func() error {
		invoked = true
		return nil
	})

	var queryErr *QueryError
	require.True(t, errors.As(err, &queryErr))
	assert.False(t, invoked)
	assert.Empty(t, tool.CallsFor("UseIdentity"), "no switch may be attempted when the save failed")
}

func TestWithPrivilegedSwitchFailureSkipsBody(t *testing.T) {
	tool := dfxtest.New("alice")
	tool.Fail("UseIdentity default", errors.New("keyring locked"))
	ctx := NewContext(tool)

	invoked := false
	err := ctx.WithPrivileged("default", func() error {
		invoked = true
		return nil
	})

	var switchErr *SwitchError
	require.True(t, errors.As(err, &switchErr))
	assert.False(t, invoked)
	assert.Equal(t, "alice", tool.Active)
	// Only the failed switch attempt, never a restore.
	assert.Len(t, tool.CallsFor("UseIdentity"), 1)
}

func TestWithPrivilegedRestoreFailureDoesNotOverrideResult(t *testing.T) {
	tool := dfxtest.New("alice")
	tool.Fail("UseIdentity alice", errors.New("keyring locked"))
	ctx := NewContext(tool)

	err := ctx.WithPrivileged("default", func() error { return nil })
	assert.NoError(t, err, "restore failure is reported but must not override body's success")
}

func TestWithPrivilegedRejectsNesting(t *testing.T) {
	tool := dfxtest.New("alice")
	ctx := NewContext(tool)

	var inner error
	err := ctx.WithPrivileged("default", func() error {
		inner = ctx.WithPrivileged("default", func() error { return nil })
		return nil
	})
	require.NoError(t, err)
	assert.ErrorIs(t, inner, ErrNestedPrivileged)
	assert.Equal(t, "alice", tool.Active)
}

func TestWithPrivilegedReusableAfterCompletion(t *testing.T) {
	tool := dfxtest.New("alice")
	ctx := NewContext(tool)

	require.NoError(t, ctx.WithPrivileged("default", func() error { return nil }))
	require.NoError(t, ctx.WithPrivileged("default", func() error { return nil }))
	assert.Equal(t, "alice", tool.Active)
}
