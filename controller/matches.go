package controller

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/tkops/hcr2_manager/db"
	"github.com/tkops/hcr2_manager/model"
)

// MissingEventKey groups importer rows whose event name had no matching
// team event. Count is how often the identical row occurred.
type MissingEventKey struct {
	Event    string
	Opponent string
	Date     string
	Count    int
}

type ImportReport struct {
	Added      int
	Skipped    int
	Duplicates int
	Missing    []MissingEventKey
}

func (c *controller) AddMatch(ctx context.Context, teamEventID int32, start time.Time, opponent string, scoreLadys, scoreOpponent int) (*model.Match, error) {
	if opponent == "" {
		return nil, fmt.Errorf("opponent must not be empty")
	}
	if _, err := c.db.GetTeamEvent(ctx, teamEventID); err != nil {
		return nil, err
	}

	season, err := model.SeasonOf(start)
	if err != nil {
		return nil, err
	}

	m := &model.Match{
		TeamEventID:   teamEventID,
		SeasonNumber:  season,
		Start:         start,
		Opponent:      opponent,
		ScoreLadys:    scoreLadys,
		ScoreOpponent: scoreOpponent,
	}
	id, err := c.db.InsertMatch(ctx, m)
	if err != nil {
		return nil, err
	}
	m.ID = id
	return m, nil
}

func (c *controller) GetMatch(ctx context.Context, id int32) (*model.Match, error) {
	return c.db.GetMatch(ctx, id)
}

func (c *controller) ListMatches(ctx context.Context, season int) ([]model.Match, error) {
	return c.db.ListMatches(ctx, season)
}

func (c *controller) EditMatch(ctx context.Context, m *model.Match) error {
	if m.SeasonNumber == 0 {
		season, err := model.SeasonOf(m.Start)
		if err != nil {
			return err
		}
		m.SeasonNumber = season
	}
	return c.db.UpdateMatch(ctx, m)
}

func (c *controller) DeleteMatch(ctx context.Context, id int32) error {
	return c.db.DeleteMatch(ctx, id)
}

// ImportMatches reads rows of date,event,opponent plus optional own and
// opponent scores. All surviving rows are written in one transaction, so
// a mid-import failure leaves the store untouched.
func (c *controller) ImportMatches(ctx context.Context, r io.Reader) (*ImportReport, error) {
	reader, err := newMatchCSVReader(r)
	if err != nil {
		return nil, err
	}

	report := &ImportReport{}
	missing := make(map[MissingEventKey]int)
	pending := make([]model.Match, 0, 64)
	// Duplicates inside the same file would not be caught by FindMatch
	// because nothing is committed until the end.
	seen := make(map[string]bool)

	for {
		line, err := reader.readLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			if errors.Is(err, errMalformedRow) {
				report.Skipped++
				continue
			}
			return nil, err
		}

		season, err := model.SeasonOf(line.date)
		if err != nil {
			report.Skipped++
			continue
		}

		te, err := c.BindTeamEvent(ctx, line.event, line.date)
		if err != nil {
			key := MissingEventKey{Event: line.event, Opponent: line.opponent, Date: line.date.Format(time.DateOnly)}
			missing[key]++
			report.Skipped++
			continue
		}

		dupKey := fmt.Sprintf("%d|%d|%s|%s", te.ID, season, line.date.Format(time.DateOnly), line.opponent)
		if seen[dupKey] {
			report.Skipped++
			report.Duplicates++
			continue
		}
		if _, err := c.db.FindMatch(ctx, te.ID, season, line.date, line.opponent); err == nil {
			report.Skipped++
			report.Duplicates++
			continue
		} else if !errors.Is(err, db.ErrMatchNotFound) {
			return nil, err
		}

		seen[dupKey] = true
		pending = append(pending, model.Match{
			TeamEventID:   te.ID,
			SeasonNumber:  season,
			Start:         line.date,
			Opponent:      line.opponent,
			ScoreLadys:    line.scoreLadys,
			ScoreOpponent: line.scoreOpponent,
		})
	}

	if len(pending) > 0 {
		if err := c.db.InsertMatches(ctx, pending); err != nil {
			return nil, err
		}
	}
	report.Added = len(pending)

	for key, n := range missing {
		key.Count = n
		report.Missing = append(report.Missing, key)
	}
	sort.Slice(report.Missing, func(i, j int) bool {
		a, b := report.Missing[i], report.Missing[j]
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		if a.Event != b.Event {
			return a.Event < b.Event
		}
		return a.Opponent < b.Opponent
	})

	return report, nil
}

var errMalformedRow = errors.New("malformed row")

type matchCSVReader struct {
	csvReader   *csv.Reader
	dateIdx     int
	eventIdx    int
	opponentIdx int
	forIdx      int
	againstIdx  int
}

type matchCSVLine struct {
	date          time.Time
	event         string
	opponent      string
	scoreLadys    int
	scoreOpponent int
}

func newMatchCSVReader(r io.Reader) (*matchCSVReader, error) {
	mr := &matchCSVReader{
		csvReader:   csv.NewReader(r),
		dateIdx:     -1,
		eventIdx:    -1,
		opponentIdx: -1,
		forIdx:      -1,
		againstIdx:  -1,
	}
	mr.csvReader.FieldsPerRecord = -1

	header, err := mr.csvReader.Read()
	if err != nil {
		return nil, fmt.Errorf("error reading match CSV header: %v", err)
	}

	for i, h := range header {
		switch h {
		case "date":
			mr.dateIdx = i
		case "event":
			mr.eventIdx = i
		case "opponent":
			mr.opponentIdx = i
		case "score":
			mr.forIdx = i
		case "score_opponent":
			mr.againstIdx = i
		}
	}

	if mr.dateIdx == -1 || mr.eventIdx == -1 || mr.opponentIdx == -1 {
		return nil, fmt.Errorf("error finding required columns; date: %d, event: %d, opponent: %d",
			mr.dateIdx, mr.eventIdx, mr.opponentIdx)
	}
	return mr, nil
}

func (mr *matchCSVReader) readLine() (*matchCSVLine, error) {
	record, err := mr.csvReader.Read()
	if errors.Is(err, io.EOF) {
		return nil, err
	}
	if err != nil {
		return nil, errMalformedRow
	}

	max := mr.dateIdx
	if mr.eventIdx > max {
		max = mr.eventIdx
	}
	if mr.opponentIdx > max {
		max = mr.opponentIdx
	}
	if len(record) <= max {
		return nil, errMalformedRow
	}

	line := matchCSVLine{
		event:    record[mr.eventIdx],
		opponent: record[mr.opponentIdx],
	}
	if line.event == "" || line.opponent == "" {
		return nil, errMalformedRow
	}

	line.date, err = time.ParseInLocation(time.DateOnly, record[mr.dateIdx], time.UTC)
	if err != nil {
		return nil, errMalformedRow
	}

	line.scoreLadys = optionalInt(record, mr.forIdx)
	line.scoreOpponent = optionalInt(record, mr.againstIdx)

	return &line, nil
}

func optionalInt(record []string, idx int) int {
	if idx < 0 || idx >= len(record) {
		return 0
	}
	n, _ := strconv.Atoi(record[idx])
	return n
}
