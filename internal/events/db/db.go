package db

import (
	"context"

	"github.com/uptrace/bun"

	"lpt-event/internal/models"
)

type DB struct {
	Bun *bun.DB
}

func (d *DB) ListEvents() ([]models.Event, error) {
	var events []models.Event
	err := d.Bun.NewSelect().
		Model(&events).
		Order("id ASC").
		Scan(context.Background())
	if err != nil {
		return nil, err
	}
	if events == nil {
		events = []models.Event{}
	}
	return events, nil
}

func (d *DB) GetEventByID(id int64) (*models.Event, error) {
	var event models.Event
	err := d.Bun.NewSelect().
		Model(&event).
		Where("id = ?", id).
		Limit(1).
		Scan(context.Background())
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// CreateEvent inserts the event and scans the generated id back into it.
func (d *DB) CreateEvent(event *models.Event) error {
	_, err := d.Bun.NewInsert().Model(event).Exec(context.Background())
	return err
}

func (d *DB) UpdateEvent(event models.Event) error {
	_, err := d.Bun.NewUpdate().
		Model(&event).
		Column("title", "short_description", "detailed_description", "city", "days_of_week", "cost_usd", "picture_url").
		Where("id = ?", event.ID).
		Exec(context.Background())
	return err
}

// DeleteEvent removes the row and reports how many rows were affected,
// so the caller can distinguish a missing id from a successful delete.
func (d *DB) DeleteEvent(id int64) (int64, error) {
	res, err := d.Bun.NewDelete().
		Model((*models.Event)(nil)).
		Where("id = ?", id).
		Exec(context.Background())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (d *DB) CountEvents() (int, error) {
	return d.Bun.NewSelect().
		Model((*models.Event)(nil)).
		Count(context.Background())
}
