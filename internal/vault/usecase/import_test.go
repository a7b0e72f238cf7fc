package usecase

import (
	"testing"

	"github.com/otpvault/otpvault/internal/pkg/goerror"
	"github.com/otpvault/otpvault/internal/shared/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImport(t *testing.T) {
	f := newFixture(t)
	ctx := authContext(42)

	out, err := f.uc.Import(ctx, ImportInput{Entries: []ImportEntryInput{
		{Service: "GitHub", Secret: testSeed},
		{Service: "GitLab", Secret: "NBSWY3DPEB3W64TMMQ"},
	}})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Imported)
	assert.Equal(t, 0, out.Skipped)
	assert.Len(t, f.db.tokens, 2)

	require.Len(t, f.mq.events, 1)
	assert.Equal(t, event.VaultActionImported, f.mq.events[0].Action)
	assert.Equal(t, 2, f.mq.events[0].Count)
}

func TestImport_FirstEntryWinsWithinBatch(t *testing.T) {
	f := newFixture(t)
	ctx := authContext(42)

	out, err := f.uc.Import(ctx, ImportInput{Entries: []ImportEntryInput{
		{Service: "GitHub", Secret: testSeed},
		{Service: "GitHub", Secret: "NBSWY3DPEB3W64TMMQ"},
	}})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Imported)
	assert.Equal(t, 1, out.Skipped)

	list, err := f.uc.Export(ctx)
	require.NoError(t, err)
	require.Len(t, list.Tokens, 1)
	assert.Equal(t, testSeed, list.Tokens[0].Secret)
}

func TestImport_SkipsStoredServices(t *testing.T) {
	f := newFixture(t)
	ctx := authContext(42)

	_, err := f.uc.Import(ctx, ImportInput{Entries: []ImportEntryInput{{Service: "GitHub", Secret: testSeed}}})
	require.NoError(t, err)

	out, err := f.uc.Import(ctx, ImportInput{Entries: []ImportEntryInput{
		{Service: "GitHub", Secret: "NBSWY3DPEB3W64TMMQ"},
		{Service: "GitLab", Secret: "NBSWY3DPEB3W64TMMQ"},
	}})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Imported)
	assert.Equal(t, 1, out.Skipped)

	// stored token is never overwritten
	list, err := f.uc.Export(ctx)
	require.NoError(t, err)
	require.Len(t, list.Tokens, 2)
	assert.Equal(t, testSeed, list.Tokens[0].Secret)
}

func TestImport_SkipsInvalidEntries(t *testing.T) {
	f := newFixture(t)
	ctx := authContext(42)

	out, err := f.uc.Import(ctx, ImportInput{Entries: []ImportEntryInput{
		{Service: "GitHub", Secret: testSeed},
		{Service: "", Secret: testSeed},
		{Service: "GitLab", Secret: "not-base32!"},
		{Service: "Fastmail", Secret: ""},
	}})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Imported)
	assert.Equal(t, 3, out.Skipped)

	list, err := f.uc.Export(ctx)
	require.NoError(t, err)
	require.Len(t, list.Tokens, 1)
	assert.Equal(t, "GitHub", list.Tokens[0].Service)
}

func TestImport_EmptyBatch(t *testing.T) {
	f := newFixture(t)
	ctx := authContext(42)

	_, err := f.uc.Import(ctx, ImportInput{Entries: nil})
	assert.Equal(t, goerror.CodeInvalidInput, errCode(t, err))
}

func TestImport_IdempotencyKey(t *testing.T) {
	f := newFixture(t)
	ctx := authContext(42)

	in := ImportInput{
		Entries:        []ImportEntryInput{{Service: "GitHub", Secret: testSeed}},
		IdempotencyKey: "batch-1",
	}

	out, err := f.uc.Import(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Imported)
	assert.Equal(t, 1, f.idemp.execCalls)

	_, err = f.uc.Import(ctx, in)
	assert.Equal(t, goerror.CodeConflict, errCode(t, err))
	assert.Len(t, f.db.tokens, 1)
}

func TestImport_WithoutKeySkipsTracker(t *testing.T) {
	f := newFixture(t)
	ctx := authContext(42)

	_, err := f.uc.Import(ctx, ImportInput{Entries: []ImportEntryInput{{Service: "GitHub", Secret: testSeed}}})
	require.NoError(t, err)
	assert.Zero(t, f.idemp.execCalls)
}
