// Skyguide - Personalized Night Sky Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skyguide

package database

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/tomtom215/skyguide/internal/logging"
	"github.com/tomtom215/skyguide/internal/models"
)

// Demo data sizes. The interaction count clears the default trending
// threshold while the Like/Rate subset stays below the collaborative one,
// so a fresh demo database exercises both the database and the fallback path.
const (
	seedInteractions = 600
	seedSeed1        = 0x5ca1ab1e
	seedSeed2        = 0xdecade
)

var seedUsers = []string{"Vega Watcher", "Orion Fan", "Lunar Lou", "Ring Seeker", "Deep Field"}

var seedStars = []struct {
	name, spType  string
	ra, dec, gmag float64
}{
	{"Sirius", "A1V", 101.287, -16.716, -1.46},
	{"Canopus", "A9II", 95.988, -52.696, -0.74},
	{"Arcturus", "K1.5III", 213.915, 19.182, -0.05},
	{"Vega", "A0V", 279.235, 38.784, 0.03},
	{"Capella", "G3III", 79.172, 45.998, 0.08},
	{"Rigel", "B8Ia", 78.634, -8.202, 0.13},
	{"Procyon", "F5IV", 114.825, 5.225, 0.34},
	{"Betelgeuse", "M1Ia", 88.793, 7.407, 0.42},
	{"Altair", "A7V", 297.696, 8.868, 0.76},
	{"Aldebaran", "K5III", 68.980, 16.509, 0.86},
	{"Antares", "M1.5Iab", 247.352, -26.432, 0.91},
	{"Spica", "B1V", 201.298, -11.161, 0.97},
	{"Pollux", "K0III", 116.329, 28.026, 1.14},
	{"Deneb", "A2Ia", 310.358, 45.280, 1.25},
	{"Polaris", "F7Ib", 37.955, 89.264, 1.98},
}

var seedPlanets = []models.PlanetRecord{
	{Name: "Mercury", Magnitude: -0.4, Color: "Grey", DistanceFromSun: 57.9, DistanceFromEarth: 91.7, Diameter: 4879, Mass: 0.33, OrbitalPeriod: 88, OrbitalInclination: 7.0, SemiMajorAxisAU: 0.387, LongitudeAscendingNode: 48.33, ArgumentPeriapsis: 29.12, MeanAnomaly: 174.8, MeanTemperature: 167, Type: "Terrestrial"},
	{Name: "Venus", Magnitude: -4.4, Color: "Yellowish-White", DistanceFromSun: 108.2, DistanceFromEarth: 41.4, Diameter: 12104, Mass: 4.87, OrbitalPeriod: 224.7, OrbitalInclination: 3.4, SemiMajorAxisAU: 0.723, LongitudeAscendingNode: 76.68, ArgumentPeriapsis: 54.88, MeanAnomaly: 50.1, MeanTemperature: 464, Type: "Terrestrial"},
	{Name: "Mars", Magnitude: -2.0, Color: "Red", DistanceFromSun: 227.9, DistanceFromEarth: 78.3, Diameter: 6792, Mass: 0.642, OrbitalPeriod: 687, OrbitalInclination: 1.8, SemiMajorAxisAU: 1.524, LongitudeAscendingNode: 49.56, ArgumentPeriapsis: 286.5, MeanAnomaly: 19.4, MeanTemperature: -65, NumberOfMoons: 2, HasMagneticField: false, Type: "Terrestrial"},
	{Name: "Jupiter", Magnitude: -2.7, Color: "Orange-White", DistanceFromSun: 778.5, DistanceFromEarth: 628.7, Diameter: 142984, Mass: 1898, OrbitalPeriod: 4331, OrbitalInclination: 1.3, SemiMajorAxisAU: 5.203, LongitudeAscendingNode: 100.46, ArgumentPeriapsis: 273.9, MeanAnomaly: 20.0, MeanTemperature: -110, NumberOfMoons: 95, HasRings: true, HasMagneticField: true, Type: "Gas Giant"},
	{Name: "Saturn", Magnitude: 0.5, Color: "Pale Gold", DistanceFromSun: 1432, DistanceFromEarth: 1275, Diameter: 120536, Mass: 568, OrbitalPeriod: 10747, OrbitalInclination: 2.5, SemiMajorAxisAU: 9.537, LongitudeAscendingNode: 113.66, ArgumentPeriapsis: 339.4, MeanAnomaly: 317.0, MeanTemperature: -140, NumberOfMoons: 146, HasRings: true, HasMagneticField: true, Type: "Gas Giant"},
	{Name: "Uranus", Magnitude: 5.7, Color: "Cyan", DistanceFromSun: 2867, DistanceFromEarth: 2724, Diameter: 51118, Mass: 86.8, OrbitalPeriod: 30589, OrbitalInclination: 0.8, SemiMajorAxisAU: 19.19, LongitudeAscendingNode: 74.01, ArgumentPeriapsis: 96.99, MeanAnomaly: 142.2, MeanTemperature: -195, NumberOfMoons: 28, HasRings: true, HasMagneticField: true, Type: "Ice Giant"},
	{Name: "Neptune", Magnitude: 7.8, Color: "Blue", DistanceFromSun: 4515, DistanceFromEarth: 4351, Diameter: 49528, Mass: 102, OrbitalPeriod: 59800, OrbitalInclination: 1.8, SemiMajorAxisAU: 30.07, LongitudeAscendingNode: 131.78, ArgumentPeriapsis: 276.3, MeanAnomaly: 256.2, MeanTemperature: -200, NumberOfMoons: 16, HasRings: true, HasMagneticField: true, Type: "Ice Giant"},
}

var seedMoons = []models.MoonRecord{
	{Name: "Moon", Parent: "Earth", Color: "Grey", Diameter: 3474.8, Mass: 0.0735, OrbitalPeriod: 27.3, SemiMajorAxisKm: 384400, Inclination: 5.14, SurfaceTemperature: -20, Composition: "Silicate", SurfaceFeatures: "Maria, craters", DistanceFromEarth: 384400},
	{Name: "Io", Parent: "Jupiter", Color: "Yellow", Diameter: 3643, Mass: 0.0893, OrbitalPeriod: 1.77, SemiMajorAxisKm: 421700, Inclination: 0.05, SurfaceTemperature: -143, Composition: "Silicate, sulfur", SurfaceFeatures: "Active volcanoes", DistanceFromEarth: 628300000},
	{Name: "Europa", Parent: "Jupiter", Color: "White", Diameter: 3121.6, Mass: 0.048, OrbitalPeriod: 3.55, SemiMajorAxisKm: 671034, Inclination: 0.47, SurfaceTemperature: -160, Composition: "Water ice", SurfaceFeatures: "Cracked ice shell", DistanceFromEarth: 628300000},
	{Name: "Ganymede", Parent: "Jupiter", Color: "Grey-Brown", Diameter: 5268, Mass: 0.148, OrbitalPeriod: 7.15, SemiMajorAxisKm: 1070400, Inclination: 0.2, SurfaceTemperature: -163, Composition: "Ice, rock", SurfaceFeatures: "Grooved terrain", DistanceFromEarth: 628300000},
	{Name: "Callisto", Parent: "Jupiter", Color: "Dark Grey", Diameter: 4821, Mass: 0.108, OrbitalPeriod: 16.7, SemiMajorAxisKm: 1882700, Inclination: 0.2, SurfaceTemperature: -139, Composition: "Ice, rock", SurfaceFeatures: "Heavily cratered", DistanceFromEarth: 628300000},
	{Name: "Titan", Parent: "Saturn", Color: "Orange", Diameter: 5149, Mass: 0.135, OrbitalPeriod: 15.9, SemiMajorAxisKm: 1221870, Inclination: 0.35, SurfaceTemperature: -179, Composition: "Ice, rock", SurfaceFeatures: "Methane lakes", DistanceFromEarth: 1272000000},
	{Name: "Triton", Parent: "Neptune", Color: "Pinkish", Diameter: 2706.8, Mass: 0.0214, OrbitalPeriod: 5.88, SemiMajorAxisKm: 354759, Inclination: 156.9, SurfaceTemperature: -235, Composition: "Nitrogen ice", SurfaceFeatures: "Cryovolcanoes", DistanceFromEarth: 4300000000},
}

// SeedDemoData fills an empty embedded database with a small deterministic
// catalog, a handful of explorers and their interactions. It does nothing
// when Users already has rows.
func (db *DB) SeedDemoData(ctx context.Context) error {
	var users int
	if err := db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM Users").Scan(&users); err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if users > 0 {
		return nil
	}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	rng := rand.New(rand.NewPCG(seedSeed1, seedSeed2))

	steps := []func(context.Context, *sql.Tx, *rand.Rand) error{
		seedCatalog,
		seedExplorers,
		seedInteractionRows,
	}
	for _, step := range steps {
		if err := step(ctx, tx, rng); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed data: %w", err)
	}

	logging.Info().
		Int("users", len(seedUsers)).
		Int("stars", len(seedStars)).
		Int("interactions", seedInteractions).
		Msg("Seeded demo data")
	return nil
}

// execEach prepares stmt once and runs it for every argument set.
func execEach(ctx context.Context, tx *sql.Tx, stmt string, rows [][]any) error {
	prepared, err := tx.PrepareContext(ctx, stmt)
	if err != nil {
		return fmt.Errorf("failed to prepare seed statement: %w", err)
	}
	defer closeQuietly(prepared)

	for _, args := range rows {
		if _, err := prepared.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("failed to insert seed row: %w", err)
		}
	}
	return nil
}

func seedCatalog(ctx context.Context, tx *sql.Tx, _ *rand.Rand) error {
	stars := make([][]any, 0, len(seedStars))
	for i, s := range seedStars {
		stars = append(stars, []any{i + 1, s.name, "Gaia DR3", s.ra, s.dec, s.gmag, s.spType})
	}
	if err := execEach(ctx, tx,
		`INSERT INTO Stars (Star_ID, Star_Name, Star_Source, Star_RA, Star_DE, Star_GMag, Star_SpType)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`, stars); err != nil {
		return err
	}

	planets := make([][]any, 0, len(seedPlanets))
	for i, p := range seedPlanets {
		planets = append(planets, []any{
			i + 1, p.Name, p.Magnitude, p.Color, p.DistanceFromSun, p.DistanceFromEarth,
			p.Diameter, p.Mass, p.OrbitalPeriod, p.OrbitalInclination, p.SemiMajorAxisAU,
			p.LongitudeAscendingNode, p.ArgumentPeriapsis, p.MeanAnomaly, p.MeanTemperature,
			p.NumberOfMoons, p.HasRings, p.HasMagneticField, p.Type,
		})
	}
	if err := execEach(ctx, tx,
		`INSERT INTO Planets (
			Planet_ID, Planet_Name, Planet_Magnitude, Planet_Color,
			Planet_Distance_From_Sun, Planet_Distance_From_Earth, Planet_Diameter,
			Planet_Mass, Planet_Orbital_Period, Planet_Orbital_Inclination,
			Planet_SemiMajorAxisAU, Planet_Longitude_Ascending_Node,
			Planet_Argument_Periapsis, Planet_Mean_Anomaly, Planet_Mean_Temperature,
			Planet_Number_of_Moons, Planet_Has_Rings, Planet_Has_Magnetic_Field, Planet_Type
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, planets); err != nil {
		return err
	}

	moons := make([][]any, 0, len(seedMoons))
	for i, m := range seedMoons {
		moons = append(moons, []any{
			i + 1, m.Name, m.Parent, m.Color, m.Diameter, m.Mass, m.OrbitalPeriod,
			m.SemiMajorAxisKm, m.Inclination, m.SurfaceTemperature, m.Composition,
			m.SurfaceFeatures, m.DistanceFromEarth,
		})
	}
	return execEach(ctx, tx,
		`INSERT INTO Moons (
			Moon_ID, Moon_Name, Parent_Planet_Name, Moon_Color, Moon_Diameter, Moon_Mass,
			Moon_Orbital_Period, Moon_SemiMajorAxisKm, Moon_Inclination,
			Moon_Surface_Temperature, Moon_Composition, Moon_Surface_Features,
			Moon_Distance_From_Earth
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, moons)
}

// randomObject picks an object type and a valid reference id for it.
func randomObject(rng *rand.Rand) (string, int) {
	switch rng.IntN(3) {
	case 0:
		return models.ObjectStar, rng.IntN(len(seedStars)) + 1
	case 1:
		return models.ObjectPlanet, rng.IntN(len(seedPlanets)) + 1
	default:
		return models.ObjectMoon, rng.IntN(len(seedMoons)) + 1
	}
}

func seedExplorers(ctx context.Context, tx *sql.Tx, rng *rand.Rand) error {
	users := make([][]any, 0, len(seedUsers))
	for i, name := range seedUsers {
		users = append(users, []any{i + 1, name})
	}
	if err := execEach(ctx, tx, `INSERT INTO Users (User_ID, User_Name) VALUES (?, ?)`, users); err != nil {
		return err
	}

	var likes [][]any
	likeID := 1
	for userID := range len(seedUsers) {
		seen := make(map[string]bool)
		for range 4 {
			objType, ref := randomObject(rng)
			key := fmt.Sprintf("%s/%d", objType, ref)
			if seen[key] {
				continue
			}
			seen[key] = true
			likes = append(likes, []any{likeID, userID + 1, objType, ref})
			likeID++
		}
	}
	return execEach(ctx, tx,
		`INSERT INTO Liked_Objects (Like_ID, User_ID, Object_Type, Object_Reference_ID) VALUES (?, ?, ?, ?)`,
		likes)
}

func seedInteractionRows(ctx context.Context, tx *sql.Tx, rng *rand.Rand) error {
	base := time.Date(2026, time.January, 1, 20, 0, 0, 0, time.UTC)

	rows := make([][]any, 0, seedInteractions)
	for i := range seedInteractions {
		objType, ref := randomObject(rng)

		var (
			kind   string
			rating any
		)
		switch n := rng.IntN(10); {
		case n < 3:
			kind = models.InteractionLike
		case n < 5:
			kind = models.InteractionRate
			rating = float64(rng.IntN(5) + 1)
		default:
			kind = models.InteractionView
		}

		ts := base.Add(time.Duration(rng.IntN(24*180)) * time.Hour)
		rows = append(rows, []any{i + 1, rng.IntN(len(seedUsers)) + 1, objType, ref, kind, rating, ts})
	}
	return execEach(ctx, tx,
		`INSERT INTO Interactions (
			Interaction_ID, User_ID, Object_Type, Object_Reference_ID,
			Interaction_Type, Interaction_Rating, Interaction_Timestamp
		) VALUES (?, ?, ?, ?, ?, ?, ?)`, rows)
}
