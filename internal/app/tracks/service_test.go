package tracks

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"albumapi/internal/store"
)

type memoryStore struct {
	albums map[uuid.UUID]bool
	tracks map[int64]store.Track
	nextID int64
}

func newMemoryStore(albumIDs ...uuid.UUID) *memoryStore {
	m := &memoryStore{albums: map[uuid.UUID]bool{}, tracks: map[int64]store.Track{}}
	for _, id := range albumIDs {
		m.albums[id] = true
	}
	return m
}

func (m *memoryStore) AlbumExists(_ context.Context, id uuid.UUID) (bool, error) {
	return m.albums[id], nil
}

func (m *memoryStore) CreateTrack(_ context.Context, track store.Track) (store.Track, error) {
	if !m.albums[track.AlbumID] {
		return store.Track{}, store.ErrAlbumNotFound
	}
	m.nextID++
	track.ID = m.nextID
	m.tracks[track.ID] = track
	return track, nil
}

func (m *memoryStore) TrackByID(_ context.Context, albumID uuid.UUID, id int64) (store.Track, error) {
	t, ok := m.tracks[id]
	if !ok || t.AlbumID != albumID {
		return store.Track{}, store.ErrTrackNotFound
	}
	return t, nil
}

func (m *memoryStore) UpdateTrack(_ context.Context, track store.Track) (store.WriteResult, error) {
	t, ok := m.tracks[track.ID]
	if !ok || t.AlbumID != track.AlbumID {
		return store.WriteNotFound, nil
	}
	m.tracks[track.ID] = track
	return store.WriteOK, nil
}

func (m *memoryStore) DeleteTrack(_ context.Context, albumID uuid.UUID, id int64) (store.WriteResult, error) {
	t, ok := m.tracks[id]
	if !ok || t.AlbumID != albumID {
		return store.WriteNotFound, nil
	}
	delete(m.tracks, id)
	return store.WriteOK, nil
}

func TestCreateAssignsSequentialIDs(t *testing.T) {
	albumID := uuid.New()
	svc := New(newMemoryStore(albumID))
	ctx := context.Background()

	first, err := svc.Create(ctx, albumID, Input{Title: "Dreams", Artist: "Fleetwood Mac", Duration: 257})
	require.NoError(t, err)
	second, err := svc.Create(ctx, albumID, Input{Title: "Songbird", Artist: "Fleetwood Mac", Duration: 200})
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)
	assert.Equal(t, 257, first.Duration)
}

func TestCreateUnderMissingAlbumWritesNothing(t *testing.T) {
	mem := newMemoryStore()
	svc := New(mem)

	_, err := svc.Create(context.Background(), uuid.New(), Input{Title: "Orphan"})
	require.ErrorIs(t, err, store.ErrAlbumNotFound)
	assert.Empty(t, mem.tracks)
}

func TestGetUpdateDelete(t *testing.T) {
	albumID := uuid.New()
	mem := newMemoryStore(albumID)
	svc := New(mem)
	ctx := context.Background()

	created, err := svc.Create(ctx, albumID, Input{Title: "Hotel California", Artist: "Eagles", Duration: 391})
	require.NoError(t, err)

	require.NoError(t, svc.Update(ctx, albumID, created.ID, Input{Title: "Hotel California (Live)", Artist: "Eagles", Duration: 412}))

	got, err := svc.Get(ctx, albumID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hotel California (Live)", got.Title)
	assert.Equal(t, 412, got.Duration)

	require.NoError(t, svc.Delete(ctx, albumID, created.ID))

	_, err = svc.Get(ctx, albumID, created.ID)
	require.ErrorIs(t, err, store.ErrTrackNotFound)
}

func TestMissingTrackIsNotFound(t *testing.T) {
	albumID := uuid.New()
	svc := New(newMemoryStore(albumID))
	ctx := context.Background()

	require.ErrorIs(t, svc.Update(ctx, albumID, 42, Input{Title: "x"}), store.ErrTrackNotFound)
	require.ErrorIs(t, svc.Delete(ctx, albumID, 42), store.ErrTrackNotFound)
}

func TestTrackUnderOtherAlbumIsNotFound(t *testing.T) {
	albumID, otherID := uuid.New(), uuid.New()
	svc := New(newMemoryStore(albumID, otherID))
	ctx := context.Background()

	created, err := svc.Create(ctx, albumID, Input{Title: "Back in Black", Artist: "AC/DC", Duration: 255})
	require.NoError(t, err)

	_, err = svc.Get(ctx, otherID, created.ID)
	require.ErrorIs(t, err, store.ErrTrackNotFound)
}
