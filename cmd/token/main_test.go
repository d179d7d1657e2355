package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/proposal-backend/internal/service"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestRootCmd_IssuesToken(t *testing.T) {
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"--secret", testSecret, "--subject", "zapier", "--ttl", "1h"})

	require.NoError(t, cmd.Execute())

	tokens, err := service.NewTokenManager(testSecret)
	require.NoError(t, err)
	claims, err := tokens.Parse(strings.TrimSpace(out.String()))
	require.NoError(t, err)
	assert.Equal(t, "zapier", claims.Subject)
	assert.Contains(t, errOut.String(), "subject=zapier")
}

func TestRootCmd_RejectsShortSecret(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--secret", "short"})

	assert.ErrorIs(t, cmd.Execute(), service.ErrTokenSecretTooShort)
}
