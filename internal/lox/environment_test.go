package lox

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvironmentDefineThenGet(t *testing.T) {
	assert := assert.New(t)
	env := NewEnvironment(nil)
	env.Define("a", 1.0)

	val, err := env.Get(NewToken(IDENTIFIER, "a", nil, 1))
	assert.NoError(err)
	assert.Equal(1.0, val)
}

func TestEnvironmentGetUndefined(t *testing.T) {
	assert := assert.New(t)
	env := NewEnvironment(nil)

	_, err := env.Get(NewToken(IDENTIFIER, "a", nil, 1))
	assert.EqualError(err, "Undefined variable 'a'.\n[line 1]")
}

func TestEnvironmentRedefine(t *testing.T) {
	assert := assert.New(t)
	env := NewEnvironment(nil)
	env.Define("a", 1.0)
	env.Define("a", "again")

	val, err := env.Get(NewToken(IDENTIFIER, "a", nil, 1))
	assert.NoError(err)
	assert.Equal("again", val)
}

func TestEnvironmentAssign(t *testing.T) {
	assert := assert.New(t)
	env := NewEnvironment(nil)
	env.Define("a", 1.0)

	assert.NoError(env.Assign(NewToken(IDENTIFIER, "a", nil, 1), 2.0))
	val, err := env.Get(NewToken(IDENTIFIER, "a", nil, 1))
	assert.NoError(err)
	assert.Equal(2.0, val)
}

func TestEnvironmentAssignUndefined(t *testing.T) {
	assert := assert.New(t)
	env := NewEnvironment(nil)

	err := env.Assign(NewToken(IDENTIFIER, "a", nil, 1), 2.0)
	assert.EqualError(err, "Undefined variable 'a'.\n[line 1]")
}

func TestEnvironmentGetFromEnclosing(t *testing.T) {
	assert := assert.New(t)
	global := NewEnvironment(nil)
	global.Define("a", 1.0)
	local := NewEnvironment(global)

	val, err := local.Get(NewToken(IDENTIFIER, "a", nil, 1))
	assert.NoError(err)
	assert.Equal(1.0, val)
}

func TestEnvironmentShadowing(t *testing.T) {
	assert := assert.New(t)
	global := NewEnvironment(nil)
	global.Define("a", 1.0)
	local := NewEnvironment(global)
	local.Define("a", 2.0)

	val, err := local.Get(NewToken(IDENTIFIER, "a", nil, 1))
	assert.NoError(err)
	assert.Equal(2.0, val)

	// the shadowed binding is untouched
	val, err = global.Get(NewToken(IDENTIFIER, "a", nil, 1))
	assert.NoError(err)
	assert.Equal(1.0, val)
}

func TestEnvironmentAssignInEnclosing(t *testing.T) {
	assert := assert.New(t)
	global := NewEnvironment(nil)
	global.Define("a", 1.0)
	local := NewEnvironment(global)

	assert.NoError(local.Assign(NewToken(IDENTIFIER, "a", nil, 1), 2.0))
	val, err := global.Get(NewToken(IDENTIFIER, "a", nil, 1))
	assert.NoError(err)
	assert.Equal(2.0, val)
}

func TestEnvironmentGetAt(t *testing.T) {
	assert := assert.New(t)
	global := NewEnvironment(nil)
	global.Define("a", "global")
	middle := NewEnvironment(global)
	middle.Define("a", "middle")
	inner := NewEnvironment(middle)
	inner.Define("a", "inner")

	assert.Equal("inner", inner.GetAt(0, "a"))
	assert.Equal("middle", inner.GetAt(1, "a"))
	assert.Equal("global", inner.GetAt(2, "a"))
}

func TestEnvironmentAssignAt(t *testing.T) {
	assert := assert.New(t)
	global := NewEnvironment(nil)
	global.Define("a", "global")
	inner := NewEnvironment(global)
	inner.Define("a", "inner")

	inner.AssignAt(1, NewToken(IDENTIFIER, "a", nil, 1), "changed")
	assert.Equal("inner", inner.GetAt(0, "a"))
	assert.Equal("changed", inner.GetAt(1, "a"))
}
