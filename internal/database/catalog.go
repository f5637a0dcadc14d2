// Skyguide - Personalized Night Sky Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skyguide

package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tomtom215/skyguide/internal/database/query"
	"github.com/tomtom215/skyguide/internal/models"
)

// Stars returns a random sample of at most limit stars brighter than maxMagnitude.
func (db *DB) Stars(ctx context.Context, limit int, maxMagnitude float64) ([]models.StarRecord, error) {
	where, args := query.NewWhereBuilder().
		AddClause("Star_GMag < ?", maxMagnitude).
		BuildWithPrefix()

	q := fmt.Sprintf(`
		SELECT
			Star_ID, Star_Name, Star_Source, Star_RA, Star_DE, Star_GMag, Star_SpType
		FROM Stars
		%s
		ORDER BY %s
		LIMIT ?`, where, db.dialect.random)
	args = append(args, limit)

	return queryAll(ctx, db, "stars", "Stars", q, args, scanStar)
}

func scanStar(rows *sql.Rows) (models.StarRecord, error) {
	var (
		s                  models.StarRecord
		name, src, spType  sql.NullString
		ra, dec, magnitude sql.NullFloat64
	)
	if err := rows.Scan(&s.ID, &name, &src, &ra, &dec, &magnitude, &spType); err != nil {
		return s, err
	}
	s.Name = name.String
	s.Source = src.String
	s.RA = ra.Float64
	s.Dec = dec.Float64
	s.GMag = magnitude.Float64
	s.SpectralType = spType.String
	return s, nil
}

// Planets returns the full planet catalog.
func (db *DB) Planets(ctx context.Context) ([]models.PlanetRecord, error) {
	const q = `
		SELECT
			Planet_ID, Planet_Name, Planet_Magnitude, Planet_Color,
			Planet_Distance_From_Sun, Planet_Distance_From_Earth, Planet_Diameter,
			Planet_Mass, Planet_Orbital_Period, Planet_Orbital_Inclination,
			Planet_SemiMajorAxisAU, Planet_Longitude_Ascending_Node,
			Planet_Argument_Periapsis, Planet_Mean_Anomaly, Planet_Mean_Temperature,
			Planet_Number_of_Moons, Planet_Has_Rings, Planet_Has_Magnetic_Field,
			Planet_Type
		FROM Planets
		ORDER BY Planet_ID`

	return queryAll(ctx, db, "planets", "Planets", q, nil, scanPlanet)
}

func scanPlanet(rows *sql.Rows) (models.PlanetRecord, error) {
	var (
		p                                  models.PlanetRecord
		color, planetType                  sql.NullString
		mag, dSun, dEarth, diameter, mass  sql.NullFloat64
		period, incl, sma, lan, argp, mean sql.NullFloat64
		temp                               sql.NullFloat64
		moons                              sql.NullInt64
		rings, magnetic                    sql.NullBool
	)
	if err := rows.Scan(&p.ID, &p.Name, &mag, &color, &dSun, &dEarth, &diameter,
		&mass, &period, &incl, &sma, &lan, &argp, &mean, &temp,
		&moons, &rings, &magnetic, &planetType); err != nil {
		return p, err
	}
	p.Magnitude = mag.Float64
	p.Color = color.String
	p.DistanceFromSun = dSun.Float64
	p.DistanceFromEarth = dEarth.Float64
	p.Diameter = diameter.Float64
	p.Mass = mass.Float64
	p.OrbitalPeriod = period.Float64
	p.OrbitalInclination = incl.Float64
	p.SemiMajorAxisAU = sma.Float64
	p.LongitudeAscendingNode = lan.Float64
	p.ArgumentPeriapsis = argp.Float64
	p.MeanAnomaly = mean.Float64
	p.MeanTemperature = temp.Float64
	p.NumberOfMoons = int(moons.Int64)
	p.HasRings = rings.Bool
	p.HasMagneticField = magnetic.Bool
	p.Type = planetType.String
	return p, nil
}

// Moons returns the full moon catalog.
func (db *DB) Moons(ctx context.Context) ([]models.MoonRecord, error) {
	const q = `
		SELECT
			Moon_ID, Moon_Name, Parent_Planet_Name, Moon_Color, Moon_Diameter,
			Moon_Mass, Moon_Orbital_Period, Moon_SemiMajorAxisKm, Moon_Inclination,
			Moon_Surface_Temperature, Moon_Composition, Moon_Surface_Features,
			Moon_Distance_From_Earth
		FROM Moons
		ORDER BY Moon_ID`

	return queryAll(ctx, db, "moons", "Moons", q, nil, scanMoon)
}

func scanMoon(rows *sql.Rows) (models.MoonRecord, error) {
	var (
		m                                   models.MoonRecord
		parent, color, composition, surface sql.NullString
		diameter, mass, period, sma, incl   sql.NullFloat64
		temp, dEarth                        sql.NullFloat64
	)
	if err := rows.Scan(&m.ID, &m.Name, &parent, &color, &diameter, &mass, &period,
		&sma, &incl, &temp, &composition, &surface, &dEarth); err != nil {
		return m, err
	}
	m.Parent = parent.String
	m.Color = color.String
	m.Diameter = diameter.Float64
	m.Mass = mass.Float64
	m.OrbitalPeriod = period.Float64
	m.SemiMajorAxisKm = sma.Float64
	m.Inclination = incl.Float64
	m.SurfaceTemperature = temp.Float64
	m.Composition = composition.String
	m.SurfaceFeatures = surface.String
	m.DistanceFromEarth = dEarth.Float64
	return m, nil
}
