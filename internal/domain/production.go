package domain

import "time"

// Breed is a row of the breed lookup table.
type Breed struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Area is a row of the area lookup table.
type Area struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Herd groups animals of one breed.
type Herd struct {
	ID      int
	Name    string
	BreedID int
	AreaID  int
}

// ProductionRecord is one lactation event. The dashboard only reads these;
// they are written by the demo seeder.
type ProductionRecord struct {
	HerdID    int
	BirthDate time.Time
	Lactation int
	MilkGrams *int64 // nil when the yield was not recorded
	Days      int
	Males     int
	Females   int
	Year      int
}
