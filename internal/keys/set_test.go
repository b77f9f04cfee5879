package keys

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet_Equal(t *testing.T) {
	assert.True(t, NewSet().Equal(NewSet()))
	assert.True(t, NewSet(A, B).Equal(NewSet(B, A)))
	assert.False(t, NewSet(A).Equal(NewSet(A, B)))
	assert.False(t, NewSet(A, C).Equal(NewSet(A, B)))
	assert.True(t, Set(nil).Equal(NewSet()))
}

func TestSet_ContainsAny(t *testing.T) {
	assert.True(t, NewSet(A, LShift).ContainsAny(NewSet(LShift)))
	assert.False(t, NewSet(A).ContainsAny(NewSet(B, C)))
	assert.False(t, NewSet(A).ContainsAny(NewSet()))
	assert.False(t, Set(nil).ContainsAny(NewSet(A)))
}

func TestSet_CloneIsIndependent(t *testing.T) {
	s := NewSet(A)
	c := s.Clone()
	c.Add(B)
	s.Remove(A)

	assert.Equal(t, 0, s.Len())
	assert.True(t, c.Equal(NewSet(A, B)))
}

func TestSet_String(t *testing.T) {
	assert.Equal(t, "A+LShift", NewSet(LShift, A).String())
	assert.Equal(t, "", NewSet().String())
}
