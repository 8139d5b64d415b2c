package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenGate_Verify(t *testing.T) {
	hash, err := HashToken("correct horse battery staple")
	require.NoError(t, err)

	gate := NewTokenGate(hash)
	require.True(t, gate.Enabled())

	assert.NoError(t, gate.Verify("correct horse battery staple"))
	assert.ErrorIs(t, gate.Verify("wrong token"), ErrUnauthorized)
	assert.ErrorIs(t, gate.Verify(""), ErrUnauthorized)
}

func TestTokenGate_DisabledGateIsOpen(t *testing.T) {
	gate := NewTokenGate("")
	assert.False(t, gate.Enabled())
	assert.NoError(t, gate.Verify(""))
	assert.NoError(t, gate.Verify("anything"))
}
