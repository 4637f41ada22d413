package db

import (
	"context"

	"lpt-event/internal/models"
)

// CreateSchema creates the events table if it does not exist. Used for
// the SQLite development backend and in tests; production Postgres
// schema is managed by the golang-migrate runner instead.
func (d *DB) CreateSchema(ctx context.Context) error {
	_, err := d.Bun.NewCreateTable().
		Model((*models.Event)(nil)).
		IfNotExists().
		Exec(ctx)
	return err
}

// DemoEvents returns the demo records seeded on first run.
func DemoEvents() []models.Event {
	return []models.Event{
		{
			Title:            "Data & AI Meetup",
			ShortDescription: "Monthly community meetup on data and AI.",
			DetailedDescription: "Join fellow data engineers and scientists for lightning talks, " +
				"live demos, and networking. Snacks and drinks provided.",
			City:       "San Francisco",
			DaysOfWeek: []string{"Thursday"},
			CostUSD:    0.0,
			PictureURL: "https://images.pexels.com/photos/1181567/pexels-photo-1181567.jpeg",
		},
		{
			Title:            "Weekend Hackathon",
			ShortDescription: "48-hour product hackathon.",
			DetailedDescription: "Form a team, ship a prototype, and pitch to a panel of judges. " +
				"Tracks include AI, analytics, and developer tooling.",
			City:       "New York",
			DaysOfWeek: []string{"Saturday", "Sunday"},
			CostUSD:    49.0,
			PictureURL: "https://images.pexels.com/photos/1181675/pexels-photo-1181675.jpeg",
		},
		{
			Title:            "Analytics Workshop",
			ShortDescription: "Hands-on workshop on modern analytics stacks.",
			DetailedDescription: "A full-day workshop covering ingestion, transformation, " +
				"and visualization best practices using modern tooling.",
			City:       "London",
			DaysOfWeek: []string{"Wednesday"},
			CostUSD:    199.0,
			PictureURL: "https://images.pexels.com/photos/1181673/pexels-photo-1181673.jpeg",
		},
	}
}

// SeedDemoEvents inserts the demo records, but only when the table is
// empty so repeated startups do not duplicate them.
func (d *DB) SeedDemoEvents(ctx context.Context) (bool, error) {
	count, err := d.CountEvents()
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	events := DemoEvents()
	_, err = d.Bun.NewInsert().Model(&events).Exec(ctx)
	if err != nil {
		return false, err
	}
	return true, nil
}
