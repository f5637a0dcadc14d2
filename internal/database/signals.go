// Skyguide - Personalized Night Sky Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/skyguide

package database

import (
	"context"
	"database/sql"

	"github.com/tomtom215/skyguide/internal/database/query"
	"github.com/tomtom215/skyguide/internal/models"
)

// TrendInteractions returns every Like, Rate and View interaction. It is the
// input of the trending layer.
func (db *DB) TrendInteractions(ctx context.Context) ([]models.InteractionRow, error) {
	where, args := query.NewWhereBuilder().
		AddIn("Interaction_Type", models.InteractionLike, models.InteractionRate, models.InteractionView).
		BuildWithPrefix()

	q := `
		SELECT
			Interaction_ID, User_ID, Object_Type,
			Object_Reference_ID AS Object_ID,
			Interaction_Type, Interaction_Rating,
			Interaction_Timestamp AS Timestamp
		FROM Interactions
		` + where + `
		ORDER BY Interaction_ID`

	return queryAll(ctx, db, "trend_interactions", "Interactions", q, args, func(rows *sql.Rows) (models.InteractionRow, error) {
		var (
			r      models.InteractionRow
			rating sql.NullFloat64
			ts     sql.NullTime
		)
		if err := rows.Scan(&r.InteractionID, &r.UserID, &r.ObjectType, &r.ObjectID, &r.Type, &rating, &ts); err != nil {
			return r, err
		}
		if rating.Valid {
			v := rating.Float64
			r.Rating = &v
		}
		r.Timestamp = ts.Time
		return r, nil
	})
}

// CategorySignals returns Like and Rate interactions projected onto the
// category of the touched object: spectral type for stars, planet type for
// planets and parent planet for moons. A like counts 1, a rating counts its
// value. It is the input of the collaborative and neural layers.
func (db *DB) CategorySignals(ctx context.Context) ([]models.SignalRow, error) {
	where, args := query.NewWhereBuilder().
		AddIn("i.Interaction_Type", models.InteractionLike, models.InteractionRate).
		BuildWithPrefix()

	q := `
		SELECT
			i.Interaction_ID,
			i.User_ID,
			i.Object_Type AS Category_Type,
			CASE i.Object_Type
				WHEN 'Star' THEN s.Star_SpType
				WHEN 'Planet' THEN p.Planet_Type
				WHEN 'Moon' THEN m.Parent_Planet_Name
			END AS Category_Value,
			CASE i.Interaction_Type
				WHEN 'Like' THEN 1
				WHEN 'Rate' THEN i.Interaction_Rating
				ELSE 0
			END AS Strength,
			i.Interaction_Timestamp AS Timestamp
		FROM Interactions i
		LEFT JOIN Stars s ON i.Object_Type = 'Star' AND i.Object_Reference_ID = s.Star_ID
		LEFT JOIN Planets p ON i.Object_Type = 'Planet' AND i.Object_Reference_ID = p.Planet_ID
		LEFT JOIN Moons m ON i.Object_Type = 'Moon' AND i.Object_Reference_ID = m.Moon_ID
		` + where + `
		ORDER BY i.Interaction_ID`

	return queryAll(ctx, db, "category_signals", "Interactions", q, args, func(rows *sql.Rows) (models.SignalRow, error) {
		var (
			r        models.SignalRow
			category sql.NullString
			strength sql.NullFloat64
			ts       sql.NullTime
		)
		if err := rows.Scan(&r.InteractionID, &r.UserID, &r.CategoryType, &category, &strength, &ts); err != nil {
			return r, err
		}
		r.CategoryValue = category.String
		r.Strength = strength.Float64
		r.Timestamp = ts.Time
		return r, nil
	})
}
