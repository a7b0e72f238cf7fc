package usecase

import (
	"context"
	"testing"

	"github.com/otpvault/otpvault/internal/pkg/goerror"
	"github.com/otpvault/otpvault/internal/vault/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExport(t *testing.T) {
	f := newFixture(t)
	ctx := authContext(42)

	gitlab, err := f.uc.Add(ctx, AddInput{Service: "GitLab"})
	require.NoError(t, err)
	github, err := f.uc.Add(ctx, AddInput{Service: "GitHub"})
	require.NoError(t, err)

	out, err := f.uc.Export(ctx)
	require.NoError(t, err)
	assert.Equal(t, []entity.ExportEntry{
		{Service: "GitLab", Secret: gitlab.Secret},
		{Service: "GitHub", Secret: github.Secret},
	}, out.Tokens)
}

func TestExport_RoundTripsThroughImport(t *testing.T) {
	f := newFixture(t)
	ctx := authContext(42)

	_, err := f.uc.Add(ctx, AddInput{Service: "GitHub"})
	require.NoError(t, err)

	exported, err := f.uc.Export(ctx)
	require.NoError(t, err)

	entries := make([]ImportEntryInput, 0, len(exported.Tokens))
	for _, e := range exported.Tokens {
		entries = append(entries, ImportEntryInput{Service: e.Service, Secret: e.Secret})
	}

	other := authContext(43)
	imported, err := f.uc.Import(other, ImportInput{Entries: entries})
	require.NoError(t, err)
	assert.Equal(t, 1, imported.Imported)

	out, err := f.uc.Export(other)
	require.NoError(t, err)
	assert.Equal(t, exported.Tokens, out.Tokens)
}

func TestExport_Unauthenticated(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Export(context.Background())
	assert.Equal(t, goerror.CodeUnauthorized, errCode(t, err))
}
