package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/tkops/hcr2_manager/model"
)

const playerColumns = `id, name, alias, garage_power, active, is_leader, birthday,
		team, discord_name, about, preferred_vehicles, playstyle, language, emoji,
		away_from, away_until, created_at, last_modified, active_modified`

func (db *postgresDB) GetPlayer(ctx context.Context, id int32) (*model.Player, error) {
	query := fmt.Sprintf(`SELECT %s FROM players WHERE id=@id`, playerColumns)

	row := db.pool.QueryRow(ctx, query, pgx.NamedArgs{"id": id})
	p, err := scanPlayer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("error scanning player %d: %w", id, err)
	}
	return p, nil
}

func (db *postgresDB) ListPlayers(ctx context.Context, activeOnly bool, team model.Team) ([]model.Player, error) {
	query := fmt.Sprintf(`SELECT %s FROM players
		WHERE (NOT @activeOnly OR active)
			AND (@team = '' OR team = @team)
		ORDER BY garage_power DESC, name ASC`, playerColumns)

	teamArg := ""
	if team != model.TEAM_UNKNOWN {
		teamArg = string(team)
	}
	args := pgx.NamedArgs{
		"activeOnly": activeOnly,
		"team":       teamArg,
	}
	return db.queryPlayers(ctx, query, args)
}

func (db *postgresDB) ListLeaders(ctx context.Context) ([]model.Player, error) {
	query := fmt.Sprintf(`SELECT %s FROM players WHERE is_leader ORDER BY name ASC`, playerColumns)
	return db.queryPlayers(ctx, query, pgx.NamedArgs{})
}

func (db *postgresDB) FindPlayersExact(ctx context.Context, ref string) ([]model.Player, error) {
	query := fmt.Sprintf(`SELECT %s FROM players
		WHERE LOWER(name) = LOWER(@ref)
			OR LOWER(alias) = LOWER(@ref)
			OR LOWER(discord_name) = LOWER(@ref)
		ORDER BY name ASC`, playerColumns)

	return db.queryPlayers(ctx, query, pgx.NamedArgs{"ref": ref})
}

func (db *postgresDB) FindPlayersFuzzy(ctx context.Context, term string) ([]model.Player, error) {
	query := fmt.Sprintf(`SELECT %s FROM players
		WHERE name ILIKE @pattern
			OR alias ILIKE @pattern
			OR discord_name ILIKE @pattern
		ORDER BY name ASC`, playerColumns)

	args := pgx.NamedArgs{"pattern": "%" + escapeLikeTerm(term) + "%"}
	return db.queryPlayers(ctx, query, args)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLikeTerm neutralizes LIKE metacharacters so a search term only
// ever matches literally.
func escapeLikeTerm(term string) string {
	return likeEscaper.Replace(term)
}

func (db *postgresDB) ListTeamAliases(ctx context.Context, team model.Team) ([]string, error) {
	const query = `SELECT alias FROM players WHERE team=@team AND alias IS NOT NULL AND alias != ''`

	rows, err := db.pool.Query(ctx, query, pgx.NamedArgs{"team": string(team)})
	if err != nil {
		return nil, fmt.Errorf("error listing aliases for %s: %w", team, err)
	}
	defer rows.Close()

	aliases := make([]string, 0, 16)
	for rows.Next() {
		var a string
		if err := rows.Scan(&a); err != nil {
			return nil, err
		}
		aliases = append(aliases, a)
	}
	return aliases, rows.Err()
}

func (db *postgresDB) InsertPlayer(ctx context.Context, p *model.Player) (int32, error) {
	const query = `INSERT INTO players (
		name, alias, garage_power, active, is_leader, birthday, team,
		discord_name, about, preferred_vehicles, playstyle, language, emoji,
		created_at, last_modified, active_modified
	) VALUES (
		@name, @alias, @garagePower, @active, @isLeader, @birthday, @team,
		@discordName, @about, @preferredVehicles, @playstyle, @language, @emoji,
		@now, @now, @now
	) RETURNING id`

	args := namedArgsForPlayer(p)
	args["now"] = nullTimestamptz(db.clock.Now().UTC())

	var id int32
	if err := db.pool.QueryRow(ctx, query, args).Scan(&id); err != nil {
		return 0, fmt.Errorf("error inserting player (%s): %w", p.Name, err)
	}
	return id, nil
}

func (db *postgresDB) UpdatePlayer(ctx context.Context, p *model.Player) error {
	const query = `UPDATE players
		SET name=@name,
			alias=@alias,
			garage_power=@garagePower,
			active=@active,
			is_leader=@isLeader,
			birthday=@birthday,
			team=@team,
			discord_name=@discordName,
			about=@about,
			preferred_vehicles=@preferredVehicles,
			playstyle=@playstyle,
			language=@language,
			emoji=@emoji,
			last_modified=@now,
			active_modified=CASE WHEN active != @active THEN @now ELSE active_modified END
		WHERE id=@id`

	args := namedArgsForPlayer(p)
	args["id"] = p.ID
	args["now"] = nullTimestamptz(db.clock.Now().UTC())

	tag, err := db.pool.Exec(ctx, query, args)
	if err != nil {
		return fmt.Errorf("error updating player (%d): %w", p.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPlayerNotFound
	}
	return nil
}

func (db *postgresDB) SetPlayerAway(ctx context.Context, id int32, from, until time.Time) error {
	const query = `UPDATE players
		SET away_from=@from, away_until=@until, last_modified=@now
		WHERE id=@id`

	args := pgx.NamedArgs{
		"id":    id,
		"from":  nullTimestamptz(from),
		"until": nullTimestamptz(until),
		"now":   nullTimestamptz(db.clock.Now().UTC()),
	}
	tag, err := db.pool.Exec(ctx, query, args)
	if err != nil {
		return fmt.Errorf("error setting away window for player %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPlayerNotFound
	}
	return nil
}

func (db *postgresDB) queryPlayers(ctx context.Context, query string, args pgx.NamedArgs) ([]model.Player, error) {
	rows, err := db.pool.Query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("error running player query: %w", err)
	}
	defer rows.Close()

	results := make([]model.Player, 0, 8)
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *p)
	}
	return results, rows.Err()
}

func scanPlayer(row pgx.Row) (*model.Player, error) {
	var result model.Player
	var alias, birthday, discordName, about, vehicles, playstyle, language, emoji sql.NullString
	var team string
	var awayFrom, awayUntil, created, updated, activeChanged pgtype.Timestamptz
	err := row.Scan(
		&result.ID,
		&result.Name,
		&alias,
		&result.GaragePower,
		&result.Active,
		&result.Leader,
		&birthday,
		&team,
		&discordName,
		&about,
		&vehicles,
		&playstyle,
		&language,
		&emoji,
		&awayFrom,
		&awayUntil,
		&created,
		&updated,
		&activeChanged)

	if err != nil {
		return nil, err
	}

	result.Alias = valueOrEmpty(alias)
	result.Birthday = valueOrEmpty(birthday)
	result.Team = model.ParseTeam(team)
	result.DiscordName = valueOrEmpty(discordName)
	result.About = valueOrEmpty(about)
	result.PreferredVehicles = valueOrEmpty(vehicles)
	result.Playstyle = valueOrEmpty(playstyle)
	result.Language = valueOrEmpty(language)
	result.Emoji = valueOrEmpty(emoji)
	result.AwayFrom = awayFrom.Time
	result.AwayUntil = awayUntil.Time
	result.Created = created.Time
	result.Updated = updated.Time
	result.ActiveChanged = activeChanged.Time

	return &result, nil
}

func namedArgsForPlayer(p *model.Player) pgx.NamedArgs {
	return pgx.NamedArgs{
		"name":              p.Name,
		"alias":             nullString(p.Alias),
		"garagePower":       p.GaragePower,
		"active":            p.Active,
		"isLeader":          p.Leader,
		"birthday":          nullString(p.Birthday),
		"team":              string(p.Team),
		"discordName":       nullString(p.DiscordName),
		"about":             nullString(p.About),
		"preferredVehicles": nullString(p.PreferredVehicles),
		"playstyle":         nullString(p.Playstyle),
		"language":          nullString(p.Language),
		"emoji":             nullString(p.Emoji),
	}
}
