package albums

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"albumapi/internal/app/tracks"
	"albumapi/internal/store"
)

// Album is the wire representation of an album and its tracks.
type Album struct {
	ID       uuid.UUID      `json:"id"`
	Name     string         `json:"name"`
	Artist   string         `json:"artist"`
	ImageURL string         `json:"imageUrl"`
	Tracks   []tracks.Track `json:"tracks"`
}

// Input carries the writable album fields for create and update.
type Input struct {
	Name     string `json:"name" validate:"required,max=200"`
	Artist   string `json:"artist" validate:"required,max=200"`
	ImageURL string `json:"imageUrl" validate:"required,max=500"`
}

// Store captures the persistence needs for album workflows.
type Store interface {
	CreateAlbum(ctx context.Context, album store.Album) (store.Album, error)
	AlbumByID(ctx context.Context, id uuid.UUID) (store.Album, error)
	ListAlbums(ctx context.Context) ([]store.Album, error)
	AlbumExists(ctx context.Context, id uuid.UUID) (bool, error)
	AlbumExistsByNameAndArtist(ctx context.Context, name, artist string) (bool, error)
	UpdateAlbum(ctx context.Context, current, next store.Album) (store.WriteResult, error)
	DeleteAlbum(ctx context.Context, id uuid.UUID) error
}

// Service coordinates album-related operations.
type Service interface {
	Create(ctx context.Context, in Input) (Album, error)
	Get(ctx context.Context, id uuid.UUID) (Album, error)
	List(ctx context.Context) ([]Album, error)
	Update(ctx context.Context, id uuid.UUID, in Input) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	store Store
	newID func() uuid.UUID
}

// New constructs a Service backed by the provided Store.
func New(store Store) Service {
	return &service{store: store, newID: uuid.New}
}

func (s *service) Create(ctx context.Context, in Input) (Album, error) {
	if err := ctx.Err(); err != nil {
		return Album{}, err
	}

	taken, err := s.store.AlbumExistsByNameAndArtist(ctx, in.Name, in.Artist)
	if err != nil {
		return Album{}, err
	}
	if taken {
		return Album{}, store.ErrAlbumExists
	}

	created, err := s.store.CreateAlbum(ctx, store.Album{
		ID:       s.newID(),
		Name:     in.Name,
		Artist:   in.Artist,
		ImageURL: in.ImageURL,
	})
	if err != nil {
		return Album{}, err
	}
	return fromStore(created), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (Album, error) {
	if err := ctx.Err(); err != nil {
		return Album{}, err
	}

	a, err := s.store.AlbumByID(ctx, id)
	if err != nil {
		return Album{}, err
	}
	return fromStore(a), nil
}

func (s *service) List(ctx context.Context) ([]Album, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stored, err := s.store.ListAlbums(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Album, 0, len(stored))
	for _, a := range stored {
		out = append(out, fromStore(a))
	}
	return out, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, in Input) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	current, err := s.store.AlbumByID(ctx, id)
	if err != nil {
		return err
	}

	if current.Name != in.Name || current.Artist != in.Artist {
		taken, err := s.store.AlbumExistsByNameAndArtist(ctx, in.Name, in.Artist)
		if err != nil {
			return err
		}
		if taken {
			return store.ErrAlbumExists
		}
	}

	next := current
	next.Name = in.Name
	next.Artist = in.Artist
	next.ImageURL = in.ImageURL

	res, err := s.store.UpdateAlbum(ctx, current, next)
	if err != nil {
		return err
	}
	if res == store.WriteOK {
		return nil
	}

	// The row changed or vanished after it was read.
	exists, err := s.store.AlbumExists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return store.ErrAlbumNotFound
	}
	return fmt.Errorf("album %s: %w", id, store.ErrConcurrentUpdate)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.DeleteAlbum(ctx, id)
}

func fromStore(a store.Album) Album {
	out := Album{
		ID:       a.ID,
		Name:     a.Name,
		Artist:   a.Artist,
		ImageURL: a.ImageURL,
		Tracks:   make([]tracks.Track, 0, len(a.Tracks)),
	}
	for _, t := range a.Tracks {
		out.Tracks = append(out.Tracks, tracks.FromStore(t))
	}
	return out
}
