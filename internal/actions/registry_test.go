package actions

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryRegisterAndInvoke(t *testing.T) {
	reg := NewRegistry()

	require.NoError(t, reg.Register(Action{
		Name:        "echo",
		Description: "echo the input",
		Params: map[string]any{
			"text": map[string]any{"type": "string"},
		},
		Required: []string{"text"},
		Handler: func(_ context.Context, args map[string]any) Result {
			return Success(getString(args, "text"), false)
		},
	}))

	assert.True(t, reg.Has("echo"))
	assert.False(t, reg.Has("nope"))

	res := reg.Invoke(context.Background(), "echo", map[string]any{"text": "hello"})
	require.True(t, res.OK())
	assert.Equal(t, "hello", res.Content)
}

func TestRegistryRejectsDuplicatesAndInvalid(t *testing.T) {
	reg := NewRegistry()
	handler := func(_ context.Context, _ map[string]any) Result { return Success("", false) }

	require.NoError(t, reg.Register(Action{Name: "a", Handler: handler}))
	assert.Error(t, reg.Register(Action{Name: "a", Handler: handler}))
	assert.Error(t, reg.Register(Action{Name: "", Handler: handler}))
	assert.Error(t, reg.Register(Action{Name: "b"}))
}

func TestRegistryUnknownAction(t *testing.T) {
	reg := NewRegistry()
	res := reg.Invoke(context.Background(), "missing", nil)
	assert.False(t, res.OK())
	assert.Contains(t, res.String(), "unknown action")
}

func TestRegistryToolsOrder(t *testing.T) {
	reg := NewRegistry()
	handler := func(_ context.Context, _ map[string]any) Result { return Success("", false) }

	for _, name := range []string{"first", "second", "third"} {
		require.NoError(t, reg.Register(Action{Name: name, Handler: handler}))
	}

	assert.Equal(t, []string{"first", "second", "third"}, reg.Names())
	assert.Len(t, reg.Tools(), 3)
}

func TestResultString(t *testing.T) {
	assert.Equal(t, "Error: boom at 3", Failure("boom at %d", 3).String())
	assert.Equal(t, "Success", Success("", false).String())
	assert.Equal(t, "saved", Success("saved", false).String())
}

func TestArgHelpers(t *testing.T) {
	args := map[string]any{
		"index":  float64(7),
		"text":   "hi",
		"score":  0.8,
		"badint": "seven",
	}

	i, err := getInt(args, "index")
	require.NoError(t, err)
	assert.Equal(t, 7, i)

	_, err = getInt(args, "missing")
	assert.Error(t, err)
	_, err = getInt(args, "badint")
	assert.Error(t, err)

	assert.Equal(t, "hi", getString(args, "text"))
	assert.Equal(t, "", getString(args, "missing"))
	assert.Equal(t, 0.8, getFloat(args, "score"))
	assert.Equal(t, 0.0, getFloat(args, "missing"))
}
