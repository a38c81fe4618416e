package internal

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/firodj/mipsword/instruction"
)

func newTestRepository(t *testing.T) *SQLRepository {
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	repo, err := NewSQLRepository(dsn, false)
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	require.NoError(t, repo.Init(context.Background()))
	return repo
}

func TestRepository(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	_, err := repo.db.ExecContext(ctx, "SELECT 1")
	assert.NoError(t, err)

	r, err := instruction.NewRType(0, 18, 19, 17, 0, 32)
	require.NoError(t, err)
	i, err := instruction.NewIType(8, 8, 9, -1)
	require.NoError(t, err)

	saved, err := repo.Save(ctx, 0x400000, r, "encode")
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)

	_, err = repo.Save(ctx, 0x400004, i, "encode")
	require.NoError(t, err)
	_, err = repo.Save(ctx, 0x400008, r, "decode")
	require.NoError(t, err)

	words, err := repo.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, words, 3)

	words, err = repo.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, words, 2)

	words, err = repo.FindByHex(ctx, "02538820")
	require.NoError(t, err)
	require.Len(t, words, 2)
	assert.Equal(t, uint32(0x400000), words[0].Address)
	assert.Equal(t, "decode", words[1].Source)
	assert.Equal(t, "00000010010100111000100000100000", words[0].Binary)

	words, err = repo.FindByHex(ctx, "2109ffff")
	require.NoError(t, err)
	require.Len(t, words, 1)
	views, err := DecodeFieldViews(&words[0])
	require.NoError(t, err)
	require.Len(t, views, 4)
	assert.Equal(t, "immediate", views[3].Name)
	assert.Equal(t, int64(-1), views[3].Value)
	assert.Equal(t, "signed", views[3].Mode)
}

func TestRepositoryNewestFirst(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	for _, addr := range []uint32{0x0, 0x8, 0x10} {
		j, err := instruction.NewJType(2, int64(addr))
		require.NoError(t, err)
		_, err = repo.Save(ctx, addr, j, "encode")
		require.NoError(t, err)
	}

	words, err := repo.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, words, 1)
	assert.Equal(t, uint32(0x10), words[0].Address)

	words, err = repo.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, words, 3)
	assert.Equal(t, []uint32{0x10, 0x8, 0x0}, []uint32{words[0].Address, words[1].Address, words[2].Address})
	assert.False(t, words[0].CreatedAt.Before(words[2].CreatedAt))
}
