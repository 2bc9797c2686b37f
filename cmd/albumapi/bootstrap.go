package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"albumapi/internal/store"
)

type seedAlbum struct {
	Name     string
	Artist   string
	ImageURL string
}

var demoAlbums = []seedAlbum{
	{Name: "Thriller", Artist: "Michael Jackson", ImageURL: "https://upload.wikimedia.org/wikipedia/en/5/55/Michael_Jackson_-_Thriller.png"},
	{Name: "Back in Black", Artist: "AC/DC", ImageURL: "https://upload.wikimedia.org/wikipedia/commons/b/be/Acdc_backinblack_cover.jpg"},
	{Name: "The Dark Side of the Moon", Artist: "Pink Floyd", ImageURL: "https://upload.wikimedia.org/wikipedia/en/3/3b/Dark_Side_of_the_Moon.png"},
	{Name: "The Bodyguard", Artist: "Whitney Houston", ImageURL: "https://upload.wikimedia.org/wikipedia/en/0/03/Whitney_Houston_-_The_Bodyguard.png"},
	{Name: "Rumours", Artist: "Fleetwood Mac", ImageURL: "https://upload.wikimedia.org/wikipedia/en/f/fb/FMacRumours.PNG"},
	{Name: "Saturday Night Fever", Artist: "Bee Gees", ImageURL: "https://upload.wikimedia.org/wikipedia/en/0/0c/TheBeeGeesSaturdayNightFeveralbumcover.jpg"},
	{Name: "Hotel California", Artist: "Eagles", ImageURL: "https://upload.wikimedia.org/wikipedia/en/4/49/Hotelcalifornia.jpg"},
	{Name: "21", Artist: "Adele", ImageURL: "https://upload.wikimedia.org/wikipedia/en/1/1b/Adele_-_21.png"},
	{Name: "Abbey Road", Artist: "The Beatles", ImageURL: "https://upload.wikimedia.org/wikipedia/en/4/42/Beatles_-_Abbey_Road.jpg"},
	{Name: "Born in the U.S.A.", Artist: "Bruce Springsteen", ImageURL: "https://upload.wikimedia.org/wikipedia/en/3/31/BruceBorn1984.JPG"},
}

// bootstrapDemoData inserts the demo catalog when the albums table exists and is empty.
func bootstrapDemoData(ctx context.Context, db *sql.DB, dataStore *store.Store) error {
	albumsTableExists, err := tableExists(ctx, db, "albums")
	if err != nil {
		return fmt.Errorf("check albums table: %w", err)
	}
	if !albumsTableExists {
		return nil
	}

	count, err := dataStore.CountAlbums(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback()
		}
	}()

	for _, album := range demoAlbums {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO albums (id, name, artist, image_url)
			VALUES ($1, $2, $3, $4)
		`, uuid.New(), album.Name, album.Artist, album.ImageURL); err != nil {
			return fmt.Errorf("insert demo album %q: %w", album.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}
	tx = nil

	log.Info().Int("albums", len(demoAlbums)).Msg("seeded demo catalog")
	return nil
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func tableExists(ctx context.Context, q queryer, table string) (bool, error) {
	var exists bool
	if err := q.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1
			FROM information_schema.tables
			WHERE table_schema = current_schema()
			  AND table_name = $1
		)
	`, table).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
