package tracks

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"albumapi/internal/store"
)

// Track is the wire representation of a stored track.
type Track struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	Duration int    `json:"duration"`
}

// Input carries the writable track fields. The owning album comes from the
// request path, never from the body.
type Input struct {
	Title    string `json:"title" validate:"required"`
	Artist   string `json:"artist" validate:"required"`
	Duration int    `json:"duration" validate:"min=0,max=2147483647"`
}

// Store captures the persistence needs for track workflows.
type Store interface {
	AlbumExists(ctx context.Context, id uuid.UUID) (bool, error)
	CreateTrack(ctx context.Context, track store.Track) (store.Track, error)
	TrackByID(ctx context.Context, albumID uuid.UUID, id int64) (store.Track, error)
	UpdateTrack(ctx context.Context, track store.Track) (store.WriteResult, error)
	DeleteTrack(ctx context.Context, albumID uuid.UUID, id int64) (store.WriteResult, error)
}

// Service exposes track operations scoped to a parent album.
type Service interface {
	Create(ctx context.Context, albumID uuid.UUID, in Input) (Track, error)
	Get(ctx context.Context, albumID uuid.UUID, id int64) (Track, error)
	Update(ctx context.Context, albumID uuid.UUID, id int64, in Input) error
	Delete(ctx context.Context, albumID uuid.UUID, id int64) error
}

type service struct {
	store Store
}

// New constructs a track Service backed by the provided Store.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) Create(ctx context.Context, albumID uuid.UUID, in Input) (Track, error) {
	if err := ctx.Err(); err != nil {
		return Track{}, err
	}

	exists, err := s.store.AlbumExists(ctx, albumID)
	if err != nil {
		return Track{}, err
	}
	if !exists {
		return Track{}, fmt.Errorf("album %s: %w", albumID, store.ErrAlbumNotFound)
	}

	created, err := s.store.CreateTrack(ctx, store.Track{
		AlbumID:  albumID,
		Title:    in.Title,
		Artist:   in.Artist,
		Duration: in.Duration,
	})
	if err != nil {
		if errors.Is(err, store.ErrAlbumNotFound) {
			return Track{}, fmt.Errorf("album %s: %w", albumID, err)
		}
		return Track{}, err
	}
	return FromStore(created), nil
}

func (s *service) Get(ctx context.Context, albumID uuid.UUID, id int64) (Track, error) {
	if err := ctx.Err(); err != nil {
		return Track{}, err
	}

	t, err := s.store.TrackByID(ctx, albumID, id)
	if err != nil {
		return Track{}, err
	}
	return FromStore(t), nil
}

func (s *service) Update(ctx context.Context, albumID uuid.UUID, id int64, in Input) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	res, err := s.store.UpdateTrack(ctx, store.Track{
		ID:       id,
		AlbumID:  albumID,
		Title:    in.Title,
		Artist:   in.Artist,
		Duration: in.Duration,
	})
	if err != nil {
		return err
	}
	if res != store.WriteOK {
		return fmt.Errorf("track %d: %w", id, store.ErrTrackNotFound)
	}
	return nil
}

func (s *service) Delete(ctx context.Context, albumID uuid.UUID, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	res, err := s.store.DeleteTrack(ctx, albumID, id)
	if err != nil {
		return err
	}
	if res != store.WriteOK {
		return fmt.Errorf("track %d: %w", id, store.ErrTrackNotFound)
	}
	return nil
}

// FromStore maps a persisted track to its wire representation.
func FromStore(t store.Track) Track {
	return Track{
		ID:       t.ID,
		Title:    t.Title,
		Artist:   t.Artist,
		Duration: t.Duration,
	}
}
