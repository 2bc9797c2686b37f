package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrAlbumNotFound signals a missing album record.
	ErrAlbumNotFound = errors.New("album not found")
	// ErrAlbumExists signals that another album already uses the name and artist.
	ErrAlbumExists = errors.New("an album with the same name and artist already exists")
	// ErrConcurrentUpdate signals an album write that lost a race with another writer.
	ErrConcurrentUpdate = errors.New("album was modified concurrently")
)

// Album is the persisted album aggregate. Tracks are loaded alongside on reads.
type Album struct {
	ID       uuid.UUID
	Name     string
	Artist   string
	ImageURL string
	Tracks   []Track
}

// CreateAlbum inserts a new album. The caller assigns the identity.
func (s *Store) CreateAlbum(ctx context.Context, album Album) (Album, error) {
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO albums (id, name, artist, image_url)
		VALUES ($1, $2, $3, $4)
	`, album.ID, album.Name, album.Artist, album.ImageURL); err != nil {
		if isUniqueViolation(err) {
			return Album{}, ErrAlbumExists
		}
		return Album{}, fmt.Errorf("insert album: %w", err)
	}

	album.Tracks = []Track{}
	return album, nil
}

// AlbumByID fetches a single album with its tracks.
func (s *Store) AlbumByID(ctx context.Context, id uuid.UUID) (Album, error) {
	var a Album
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, artist, image_url
		FROM albums
		WHERE id = $1
	`, id).Scan(&a.ID, &a.Name, &a.Artist, &a.ImageURL)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Album{}, ErrAlbumNotFound
		}
		return Album{}, fmt.Errorf("select album: %w", err)
	}

	tracks, err := s.TracksByAlbum(ctx, id)
	if err != nil {
		return Album{}, err
	}
	a.Tracks = tracks

	return a, nil
}

// ListAlbums returns every album with its tracks in storage order.
func (s *Store) ListAlbums(ctx context.Context) ([]Album, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, artist, image_url
		FROM albums
	`)
	if err != nil {
		return nil, fmt.Errorf("select albums: %w", err)
	}
	defer rows.Close()

	albums := []Album{}
	for rows.Next() {
		var a Album
		if err := rows.Scan(&a.ID, &a.Name, &a.Artist, &a.ImageURL); err != nil {
			return nil, fmt.Errorf("scan album: %w", err)
		}
		a.Tracks = []Track{}
		albums = append(albums, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate albums: %w", err)
	}

	if len(albums) == 0 {
		return albums, nil
	}

	tracks, err := s.listTracks(ctx)
	if err != nil {
		return nil, err
	}

	index := make(map[uuid.UUID]int, len(albums))
	for i, a := range albums {
		index[a.ID] = i
	}
	for _, t := range tracks {
		if i, ok := index[t.AlbumID]; ok {
			albums[i].Tracks = append(albums[i].Tracks, t)
		}
	}

	return albums, nil
}

// AlbumExists reports whether an album with the given id is stored.
func (s *Store) AlbumExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	if err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM albums WHERE id = $1)
	`, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("check album: %w", err)
	}
	return exists, nil
}

// AlbumExistsByNameAndArtist reports whether the (name, artist) pair is taken.
func (s *Store) AlbumExistsByNameAndArtist(ctx context.Context, name, artist string) (bool, error) {
	var exists bool
	if err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM albums WHERE name = $1 AND artist = $2)
	`, name, artist).Scan(&exists); err != nil {
		return false, fmt.Errorf("check album name: %w", err)
	}
	return exists, nil
}

// UpdateAlbum overwrites name, artist and image of current with the values of
// next. The write only applies while the row still holds the values of
// current; otherwise WriteStale is returned and nothing changes.
func (s *Store) UpdateAlbum(ctx context.Context, current, next Album) (WriteResult, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE albums
		SET name = $2, artist = $3, image_url = $4
		WHERE id = $1 AND name = $5 AND artist = $6 AND image_url = $7
	`, current.ID, next.Name, next.Artist, next.ImageURL, current.Name, current.Artist, current.ImageURL)
	if err != nil {
		if isUniqueViolation(err) {
			return WriteOK, ErrAlbumExists
		}
		return WriteOK, fmt.Errorf("update album: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return WriteOK, fmt.Errorf("update album rows: %w", err)
	}
	if affected == 0 {
		return WriteStale, nil
	}
	return WriteOK, nil
}

// DeleteAlbum removes the album and, through the foreign key, its tracks.
// Deleting a missing album is not an error.
func (s *Store) DeleteAlbum(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `
		DELETE FROM albums
		WHERE id = $1
	`, id); err != nil {
		return fmt.Errorf("delete album: %w", err)
	}
	return nil
}

// CountAlbums returns the number of stored albums.
func (s *Store) CountAlbums(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM albums
	`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count albums: %w", err)
	}
	return count, nil
}
