package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestCreateTrackSuccess(t *testing.T) {
	s, mock := newMockStore(t)
	albumID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`
		INSERT INTO tracks (album_id, title, artist, duration)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`)).
		WithArgs(albumID, "Dreams", "Fleetwood Mac", 257).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	got, err := s.CreateTrack(context.Background(), Track{
		AlbumID:  albumID,
		Title:    "Dreams",
		Artist:   "Fleetwood Mac",
		Duration: 257,
	})
	if err != nil {
		t.Fatalf("CreateTrack error: %v", err)
	}
	if got.ID != 7 || got.AlbumID != albumID {
		t.Fatalf("unexpected track: %#v", got)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateTrackMissingAlbum(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO tracks`)).
		WillReturnError(&pgconn.PgError{Code: "23503"})

	_, err := s.CreateTrack(context.Background(), Track{AlbumID: uuid.New(), Title: "Orphan"})
	if !errors.Is(err, ErrAlbumNotFound) {
		t.Fatalf("expected ErrAlbumNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTrackByIDNotFound(t *testing.T) {
	s, mock := newMockStore(t)
	albumID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT id, album_id, title, artist, duration
		FROM tracks
		WHERE id = $1 AND album_id = $2
	`)).
		WithArgs(int64(3), albumID).
		WillReturnError(sql.ErrNoRows)

	_, err := s.TrackByID(context.Background(), albumID, 3)
	if !errors.Is(err, ErrTrackNotFound) {
		t.Fatalf("expected ErrTrackNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateTrackResults(t *testing.T) {
	albumID := uuid.New()
	query := regexp.QuoteMeta(`
		UPDATE tracks
		SET title = $3, artist = $4, duration = $5
		WHERE id = $1 AND album_id = $2
	`)

	for _, tc := range []struct {
		name     string
		affected int64
		want     WriteResult
	}{
		{name: "updated", affected: 1, want: WriteOK},
		{name: "missing", affected: 0, want: WriteNotFound},
	} {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			s, mock := newMockStore(t)

			mock.ExpectExec(query).
				WithArgs(int64(5), albumID, "Go Your Own Way", "Fleetwood Mac", 223).
				WillReturnResult(sqlmock.NewResult(0, tc.affected))

			got, err := s.UpdateTrack(context.Background(), Track{
				ID:       5,
				AlbumID:  albumID,
				Title:    "Go Your Own Way",
				Artist:   "Fleetwood Mac",
				Duration: 223,
			})
			if err != nil {
				t.Fatalf("UpdateTrack error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}

			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatalf("unmet expectations: %v", err)
			}
		})
	}
}

func TestDeleteTrackMissing(t *testing.T) {
	s, mock := newMockStore(t)
	albumID := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta(`
		DELETE FROM tracks
		WHERE id = $1 AND album_id = $2
	`)).
		WithArgs(int64(9), albumID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	got, err := s.DeleteTrack(context.Background(), albumID, 9)
	if err != nil {
		t.Fatalf("DeleteTrack error: %v", err)
	}
	if got != WriteNotFound {
		t.Fatalf("expected WriteNotFound, got %s", got)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
