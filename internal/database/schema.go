// Skyguide - Personalized Night Sky Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skyguide

package database

import (
	"context"
	"fmt"
)

// schemaStatements mirror the columns of the production schema that the
// gateway reads. Account and credential columns are not part of it.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS Users (
		User_ID BIGINT PRIMARY KEY,
		User_Name VARCHAR NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS Stars (
		Star_ID BIGINT PRIMARY KEY,
		Star_Name VARCHAR,
		Star_Source VARCHAR,
		Star_RA DOUBLE,
		Star_DE DOUBLE,
		Star_GMag DOUBLE,
		Star_SpType VARCHAR
	)`,
	`CREATE TABLE IF NOT EXISTS Planets (
		Planet_ID BIGINT PRIMARY KEY,
		Planet_Name VARCHAR NOT NULL,
		Planet_Magnitude DOUBLE,
		Planet_Color VARCHAR,
		Planet_Distance_From_Sun DOUBLE,
		Planet_Distance_From_Earth DOUBLE,
		Planet_Diameter DOUBLE,
		Planet_Mass DOUBLE,
		Planet_Orbital_Period DOUBLE,
		Planet_Orbital_Inclination DOUBLE,
		Planet_SemiMajorAxisAU DOUBLE,
		Planet_Longitude_Ascending_Node DOUBLE,
		Planet_Argument_Periapsis DOUBLE,
		Planet_Mean_Anomaly DOUBLE,
		Planet_Mean_Temperature DOUBLE,
		Planet_Number_of_Moons INTEGER,
		Planet_Has_Rings BOOLEAN,
		Planet_Has_Magnetic_Field BOOLEAN,
		Planet_Type VARCHAR
	)`,
	`CREATE TABLE IF NOT EXISTS Moons (
		Moon_ID BIGINT PRIMARY KEY,
		Moon_Name VARCHAR NOT NULL,
		Parent_Planet_Name VARCHAR,
		Moon_Color VARCHAR,
		Moon_Diameter DOUBLE,
		Moon_Mass DOUBLE,
		Moon_Orbital_Period DOUBLE,
		Moon_SemiMajorAxisKm DOUBLE,
		Moon_Inclination DOUBLE,
		Moon_Surface_Temperature DOUBLE,
		Moon_Composition VARCHAR,
		Moon_Surface_Features VARCHAR,
		Moon_Distance_From_Earth DOUBLE
	)`,
	`CREATE TABLE IF NOT EXISTS Liked_Objects (
		Like_ID BIGINT PRIMARY KEY,
		User_ID BIGINT NOT NULL,
		Object_Type VARCHAR NOT NULL,
		Object_Reference_ID BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS Interactions (
		Interaction_ID BIGINT PRIMARY KEY,
		User_ID BIGINT NOT NULL,
		Object_Type VARCHAR NOT NULL,
		Object_Reference_ID BIGINT NOT NULL,
		Interaction_Type VARCHAR NOT NULL,
		Interaction_Rating DOUBLE,
		Interaction_Timestamp TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_liked_user ON Liked_Objects(User_ID)`,
	`CREATE INDEX IF NOT EXISTS idx_interactions_type ON Interactions(Interaction_Type)`,
}

func (db *DB) createTables(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}
