package lox

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringifyMatchesSpecFormat(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{Nil{}, "nil"},
		{Bool(true), "true"},
		{Bool(false), "false"},
		{Number(7), "7"},
		{Number(1.5), "1.5"},
		{Number(2), "2"},
		{String("hi"), "hi"},
		{clockNative(), "<native fn>"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, stringify(c.v))
	}
}

func TestNumberStringifyStripsTrailingDotZero(t *testing.T) {
	assert.Equal(t, "4", formatNumber(4))
	assert.Equal(t, "4.5", formatNumber(4.5))
}

func TestIsTruthy(t *testing.T) {
	assert.False(t, isTruthy(Nil{}))
	assert.False(t, isTruthy(Bool(false)))
	assert.True(t, isTruthy(Bool(true)))
	assert.True(t, isTruthy(Number(0)))
	assert.True(t, isTruthy(String("")))
}

func TestIsEqualNilRules(t *testing.T) {
	assert.True(t, isEqual(Nil{}, Nil{}))
	assert.False(t, isEqual(Nil{}, Number(0)))
	assert.False(t, isEqual(Number(0), Nil{}))
}

func TestIsEqualByKind(t *testing.T) {
	assert.True(t, isEqual(Number(1), Number(1)))
	assert.False(t, isEqual(Number(1), Number(2)))
	assert.True(t, isEqual(String("a"), String("a")))
	assert.False(t, isEqual(String("a"), String("b")))
	assert.True(t, isEqual(Bool(true), Bool(true)))
	assert.False(t, isEqual(Number(1), String("1")))
}

func TestIsEqualInstancesByIdentity(t *testing.T) {
	class := NewClass("C", nil, nil)
	a := NewInstance(class)
	b := NewInstance(class)
	assert.True(t, isEqual(a, a))
	assert.False(t, isEqual(a, b))
}
