package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/emiliopalmerini/herdstats/internal/domain"
	"github.com/emiliopalmerini/herdstats/internal/infrastructure/database"
	"github.com/emiliopalmerini/herdstats/internal/util"
)

// ErrSeedDriver is returned when seeding is attempted outside the local store.
var ErrSeedDriver = errors.New("seeding is only supported on the libsql driver")

// Seeder writes demo and fixture data into a local libsql database.
// The dashboard itself never writes; this exists for demos and tests.
type Seeder struct {
	db *sql.DB
}

func NewSeeder(client *database.Client) (*Seeder, error) {
	if client.Driver != database.DriverLibSQL {
		return nil, ErrSeedDriver
	}
	return &Seeder{db: client.DB}, nil
}

func (s *Seeder) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (s *Seeder) InsertAreas(ctx context.Context, areas []domain.Area) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		for _, a := range areas {
			if _, err := tx.ExecContext(ctx, `INSERT INTO area (ar_id, ar_name) VALUES (?, ?)`, a.ID, a.Name); err != nil {
				return fmt.Errorf("insert area %d: %w", a.ID, err)
			}
		}
		return nil
	})
}

func (s *Seeder) InsertHerds(ctx context.Context, herds []domain.Herd) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		for _, h := range herds {
			var area any
			if h.AreaID != 0 {
				area = h.AreaID
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO herds (h_id, h_name, h_breed_id, h_area_id) VALUES (?, ?, ?, ?)`,
				h.ID, h.Name, h.BreedID, area,
			); err != nil {
				return fmt.Errorf("insert herd %d: %w", h.ID, err)
			}
		}
		return nil
	})
}

func (s *Seeder) InsertRecords(ctx context.Context, records []domain.ProductionRecord) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO production (p_herd_id, p_bdate, p_lact, p_fmilk, p_fdays, p_males, p_females, p_year)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, rec := range records {
			if _, err := stmt.ExecContext(ctx,
				rec.HerdID, util.NullDate(rec.BirthDate), rec.Lactation, util.NullInt64(rec.MilkGrams),
				rec.Days, rec.Males, rec.Females, util.NullIntZero(rec.Year),
			); err != nil {
				return fmt.Errorf("insert record %d: %w", i, err)
			}
		}
		return nil
	})
}

// DemoOptions controls the generated demo data set.
type DemoOptions struct {
	Seed           uint64
	FromYear       int
	ToYear         int
	HerdsPerBreed  int
	AnimalsPerHerd int
}

// DefaultDemoOptions returns a small but realistic data set.
func DefaultDemoOptions() DemoOptions {
	return DemoOptions{
		Seed:           1,
		FromYear:       2010,
		ToYear:         2020,
		HerdsPerBreed:  3,
		AnimalsPerHerd: 40,
	}
}

var demoAreas = []domain.Area{
	{ID: 1, Name: "Central Macedonia"},
	{ID: 2, Name: "Thessaly"},
	{ID: 3, Name: "Epirus"},
	{ID: 4, Name: "North Aegean"},
}

// Mean yield in kg of a first lactation, per breed ID.
var demoBaseYield = map[int]float64{1: 180, 2: 260, 3: 330, 4: 300, 5: 150}

// Demo fills the database with deterministic synthetic production data for
// every breed in the lookup and returns the number of records written.
func (s *Seeder) Demo(ctx context.Context, breeds []domain.Breed, opts DemoOptions) (int, error) {
	if opts.ToYear < opts.FromYear {
		return 0, &domain.RangeError{Field: domain.FieldNameYear, Range: domain.Range{From: opts.FromYear, To: opts.ToYear}}
	}
	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))

	if err := s.InsertAreas(ctx, demoAreas); err != nil {
		return 0, err
	}

	var herds []domain.Herd
	for _, b := range breeds {
		for i := 0; i < opts.HerdsPerBreed; i++ {
			herds = append(herds, domain.Herd{
				ID:      b.ID*100 + i + 1,
				Name:    fmt.Sprintf("%s herd %d", b.Name, i+1),
				BreedID: b.ID,
				AreaID:  demoAreas[rng.IntN(len(demoAreas))].ID,
			})
		}
	}
	if err := s.InsertHerds(ctx, herds); err != nil {
		return 0, err
	}

	var records []domain.ProductionRecord
	for _, h := range herds {
		base, ok := demoBaseYield[h.BreedID]
		if !ok {
			base = 200
		}
		for a := 0; a < opts.AnimalsPerHerd; a++ {
			first := opts.FromYear + rng.IntN(opts.ToYear-opts.FromYear+1)
			for year, lact := first, 1; year <= opts.ToYear && lact <= domain.MaxLactation; year, lact = year+1, lact+1 {
				records = append(records, demoRecord(rng, h.ID, year, lact, base))
			}
		}
	}
	if err := s.InsertRecords(ctx, records); err != nil {
		return 0, err
	}
	return len(records), nil
}

func demoRecord(rng *rand.Rand, herdID, year, lact int, base float64) domain.ProductionRecord {
	// Yield peaks around the third lactation.
	shape := 1 + 0.15*float64(min(lact, 3)-1) - 0.05*float64(max(lact-4, 0))
	kg := math.Max(20, base*shape+rng.NormFloat64()*base*0.2)
	days := int(math.Max(30, 210+rng.NormFloat64()*35))

	rec := domain.ProductionRecord{
		HerdID:    herdID,
		BirthDate: time.Date(year, time.Month(1+rng.IntN(12)), 1+rng.IntN(28), 0, 0, 0, 0, time.UTC),
		Lactation: lact,
		Days:      days,
		Year:      year,
	}
	if rng.Float64() > 0.03 {
		g := int64(kg * domain.GramsPerKg)
		rec.MilkGrams = &g
	}
	offspring := 1 + rng.IntN(3)
	rec.Males = rng.IntN(offspring + 1)
	rec.Females = offspring - rec.Males
	return rec
}
