package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrTrackNotFound signals a missing track record.
var ErrTrackNotFound = errors.New("track not found")

// Track is a song stored under exactly one album.
type Track struct {
	ID       int64
	AlbumID  uuid.UUID
	Title    string
	Artist   string
	Duration int
}

// CreateTrack inserts a track under its album and returns it with the
// store-assigned id.
func (s *Store) CreateTrack(ctx context.Context, track Track) (Track, error) {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO tracks (album_id, title, artist, duration)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, track.AlbumID, track.Title, track.Artist, track.Duration).Scan(&track.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return Track{}, ErrAlbumNotFound
		}
		return Track{}, fmt.Errorf("insert track: %w", err)
	}
	return track, nil
}

// TrackByID fetches a track that belongs to the given album.
func (s *Store) TrackByID(ctx context.Context, albumID uuid.UUID, id int64) (Track, error) {
	var t Track
	err := s.db.QueryRowContext(ctx, `
		SELECT id, album_id, title, artist, duration
		FROM tracks
		WHERE id = $1 AND album_id = $2
	`, id, albumID).Scan(&t.ID, &t.AlbumID, &t.Title, &t.Artist, &t.Duration)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Track{}, ErrTrackNotFound
		}
		return Track{}, fmt.Errorf("select track: %w", err)
	}
	return t, nil
}

// TracksByAlbum lists an album's tracks in creation order.
func (s *Store) TracksByAlbum(ctx context.Context, albumID uuid.UUID) ([]Track, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, album_id, title, artist, duration
		FROM tracks
		WHERE album_id = $1
		ORDER BY id ASC
	`, albumID)
	if err != nil {
		return nil, fmt.Errorf("select tracks: %w", err)
	}
	defer rows.Close()

	return scanTrackRows(rows)
}

// UpdateTrack overwrites title, artist and duration of a track.
func (s *Store) UpdateTrack(ctx context.Context, track Track) (WriteResult, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE tracks
		SET title = $3, artist = $4, duration = $5
		WHERE id = $1 AND album_id = $2
	`, track.ID, track.AlbumID, track.Title, track.Artist, track.Duration)
	if err != nil {
		return WriteOK, fmt.Errorf("update track: %w", err)
	}
	return affectedResult(res, "update track")
}

// DeleteTrack removes a track from its album.
func (s *Store) DeleteTrack(ctx context.Context, albumID uuid.UUID, id int64) (WriteResult, error) {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM tracks
		WHERE id = $1 AND album_id = $2
	`, id, albumID)
	if err != nil {
		return WriteOK, fmt.Errorf("delete track: %w", err)
	}
	return affectedResult(res, "delete track")
}

func (s *Store) listTracks(ctx context.Context) ([]Track, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, album_id, title, artist, duration
		FROM tracks
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("select tracks: %w", err)
	}
	defer rows.Close()

	return scanTrackRows(rows)
}

func scanTrackRows(rows *sql.Rows) ([]Track, error) {
	tracks := []Track{}
	for rows.Next() {
		var t Track
		if err := rows.Scan(&t.ID, &t.AlbumID, &t.Title, &t.Artist, &t.Duration); err != nil {
			return nil, fmt.Errorf("scan track: %w", err)
		}
		tracks = append(tracks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tracks: %w", err)
	}
	return tracks, nil
}

func affectedResult(res sql.Result, op string) (WriteResult, error) {
	affected, err := res.RowsAffected()
	if err != nil {
		return WriteOK, fmt.Errorf("%s rows: %w", op, err)
	}
	if affected == 0 {
		return WriteNotFound, nil
	}
	return WriteOK, nil
}
