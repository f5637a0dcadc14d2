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

// Explorer returns the user with the given id, or ErrNotFound.
func (db *DB) Explorer(ctx context.Context, userID int64) (*models.Explorer, error) {
	const q = `SELECT User_ID, User_Name FROM Users WHERE User_ID = ?`

	rows, err := queryAll(ctx, db, "explorer", "Users", q, []any{userID}, func(rows *sql.Rows) (models.Explorer, error) {
		var e models.Explorer
		err := rows.Scan(&e.ID, &e.Name)
		return e, err
	})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &rows[0], nil
}

// LikedObjects returns the user's favorites with their display names.
func (db *DB) LikedObjects(ctx context.Context, userID int64) ([]models.LikedObject, error) {
	where, args := query.NewWhereBuilder().
		AddClause("lo.User_ID = ?", userID).
		BuildWithPrefix()

	q := `
		SELECT lo.Object_Type,
			CASE
				WHEN lo.Object_Type = 'Star' THEN s.Star_Name
				WHEN lo.Object_Type = 'Planet' THEN p.Planet_Name
				WHEN lo.Object_Type = 'Moon' THEN m.Moon_Name
			END AS Name
		FROM Liked_Objects lo
		LEFT JOIN Stars s ON lo.Object_Type = 'Star' AND lo.Object_Reference_ID = s.Star_ID
		LEFT JOIN Planets p ON lo.Object_Type = 'Planet' AND lo.Object_Reference_ID = p.Planet_ID
		LEFT JOIN Moons m ON lo.Object_Type = 'Moon' AND lo.Object_Reference_ID = m.Moon_ID
		` + where + `
		ORDER BY lo.Like_ID`

	return queryAll(ctx, db, "liked_objects", "Liked_Objects", q, args, func(rows *sql.Rows) (models.LikedObject, error) {
		var (
			lo   models.LikedObject
			name sql.NullString
		)
		err := rows.Scan(&lo.ObjectType, &name)
		lo.Name = name.String
		return lo, err
	})
}
