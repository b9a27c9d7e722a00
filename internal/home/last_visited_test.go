package home

import (
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goquote/internal/common/mocks"
	"goquote/internal/slotstore"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "home_last_visited_u1_engineering", Key("u1", "engineering"))
}

func TestStore_RoundTrip(t *testing.T) {
	store := NewStore(slotstore.NewMemory().View(), nil)

	_, found, err := store.LastVisited("u1", "engineering")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.SetLastVisited("u1", "engineering", "/engineering/threads"))
	require.NoError(t, store.SetLastVisited("u1", "design", "/design/drafts"))

	page, found, err := store.LastVisited("u1", "engineering")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "/engineering/threads", page)

	_, found, err = store.LastVisited("u2", "engineering")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestStore_Validation(t *testing.T) {
	store := NewStore(slotstore.NewMemory().View(), nil)

	assert.ErrorIs(t, store.SetLastVisited("", "t", "/p"), ErrMissingField)
	assert.ErrorIs(t, store.SetLastVisited("u1", "t", ""), ErrMissingField)
	_, _, err := store.LastVisited("u1", "")
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestStore_StorageError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	storage := mocks.NewMockSlotStorage(ctrl)
	store := NewStore(storage, nil)

	storage.EXPECT().Get("home_last_visited_u1_t").Return("", false, errors.New("disk gone"))
	_, _, err := store.LastVisited("u1", "t")
	assert.Error(t, err)

	storage.EXPECT().Set("home_last_visited_u1_t", "/p").Return(errors.New("disk gone"))
	assert.Error(t, store.SetLastVisited("u1", "t", "/p"))
}
