// Copyright (c) 2026 RateUp. All rights reserved.

package game

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nifoox/rateup/internal/platform/apperr"
	"github.com/nifoox/rateup/internal/platform/database/schema"
	"github.com/nifoox/rateup/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var gameConstraints = dberr.Constraints{
	schema.Games.NameKey: apperr.Conflict("A game with this name already exists"),
	schema.Games.SlugKey: apperr.Conflict("A game with this name already exists"),
}

func gameColumns(alias string) string {
	t := schema.Games
	prefix := ""
	if alias != "" {
		prefix = alias + "."
	}
	return fmt.Sprintf("%[1]s%[2]s, %[1]s%[3]s, %[1]s%[4]s, %[1]s%[5]s, %[1]s%[6]s, %[1]s%[7]s, %[1]s%[8]s",
		prefix, t.ID, t.Name, t.Slug, t.Description, t.Genre, t.CreatedAt, t.UpdatedAt)
}

func scanGame(row pgx.Row, g *Game, extra ...any) error {
	dest := []any{&g.ID, &g.Name, &g.Slug, &g.Description, &g.Genre, &g.CreatedAt, &g.UpdatedAt}
	return row.Scan(append(dest, extra...)...)
}

func (repository *PostgresRepository) ListGames(context context.Context, f Filter, limit, offset int) ([]*Game, int, error) {
	t := schema.Games
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE TRUE`, gameColumns(""), t.Table)
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s WHERE TRUE`, t.Table)

	args := []any{}

	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		clause := fmt.Sprintf(` AND %s ILIKE $%d`, t.Name, len(args))
		query += clause
		countQuery += clause
	}

	if f.Genre != "" {
		args = append(args, f.Genre)
		clause := fmt.Sprintf(` AND LOWER(%s) = LOWER($%d)`, t.Genre, len(args))
		query += clause
		countQuery += clause
	}

	countArgs := append([]any{}, args...)

	query += fmt.Sprintf(" ORDER BY %s ASC LIMIT $", t.Name) + itos(len(args)+1) + ` OFFSET $` + itos(len(args)+2)
	args = append(args, limit, offset)

	var total int
	if err := repository.db.QueryRow(context, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_games")
	}

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_games")
	}
	defer rows.Close()

	games := []*Game{}
	for rows.Next() {
		g := &Game{}
		if err := scanGame(rows, g); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_game")
		}
		games = append(games, g)
	}

	return games, total, dberr.Wrap(rows.Err(), "iterate_games")
}

func (repository *PostgresRepository) GetGame(context context.Context, id int64) (*Game, error) {
	t := schema.Games
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, gameColumns(""), t.Table, t.ID)

	g := &Game{}
	if err := scanGame(repository.db.QueryRow(context, query, id), g); err != nil {
		if dberr.IsNotFound(err) {
			return nil, apperr.NotFound("Game")
		}
		return nil, dberr.Wrap(err, "get_game")
	}
	return g, nil
}

func (repository *PostgresRepository) CreateGame(context context.Context, g *Game) error {
	t := schema.Games
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		RETURNING %s, %s, %s
	`,
		t.Table, t.Name, t.Slug, t.Description, t.Genre,
		t.ID, t.CreatedAt, t.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, g.Name, g.Slug, g.Description, g.Genre).Scan(&g.ID, &g.CreatedAt, &g.UpdatedAt)
	return dberr.WrapWith(err, "create_game", gameConstraints)
}

func (repository *PostgresRepository) UpdateGame(context context.Context, g *Game) error {
	t := schema.Games
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`,
		t.Table, t.Name, t.Slug, t.Description, t.Genre, t.UpdatedAt,
		t.ID,
		t.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, g.ID, g.Name, g.Slug, g.Description, g.Genre).Scan(&g.UpdatedAt)
	if dberr.IsNotFound(err) {
		return apperr.NotFound("Game")
	}
	return dberr.WrapWith(err, "update_game", gameConstraints)
}

// DeleteGame removes the game; its reviews, comments and votes cascade.
func (repository *PostgresRepository) DeleteGame(context context.Context, id int64) error {
	t := schema.Games
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, t.Table, t.ID)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_game")
	}

	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("Game")
	}
	return nil
}

func (repository *PostgresRepository) TopRated(context context.Context, limit int, minReviews int) ([]*RatedGame, error) {
	g, r := schema.Games, schema.Reviews
	query := fmt.Sprintf(`
		SELECT %s, AVG(r.%s)::float8, COUNT(r.%s)
		FROM %s g
		JOIN %s r ON r.%s = g.%s
		GROUP BY g.%s
		HAVING COUNT(r.%s) >= $1
		ORDER BY AVG(r.%s) DESC, COUNT(r.%s) DESC, g.%s ASC
		LIMIT $2
	`,
		gameColumns("g"), r.Score, r.ID,
		g.Table,
		r.Table, r.GameID, g.ID,
		g.ID,
		r.ID,
		r.Score, r.ID, g.ID,
	)

	rows, err := repository.db.Query(context, query, minReviews, limit)
	if err != nil {
		return nil, dberr.Wrap(err, "top_rated_games")
	}
	defer rows.Close()

	games := []*RatedGame{}
	for rows.Next() {
		rated := &RatedGame{}
		if err := scanGame(rows, &rated.Game, &rated.AverageScore, &rated.ReviewCount); err != nil {
			return nil, dberr.Wrap(err, "scan_rated_game")
		}
		games = append(games, rated)
	}

	return games, dberr.Wrap(rows.Err(), "iterate_rated_games")
}

func itos(i int) string {
	return strconv.Itoa(i)
}
