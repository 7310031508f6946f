package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"virtual-conductor/internal/transit"
)

var ErrNotFound = errors.New("not found")

const lineColumns = `l.id, l.name_short, l.name_roman, l.name_katakana, l.color, l.line_type, l.transport_type`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLine(r rowScanner, extra ...any) (transit.Line, error) {
	var l transit.Line
	var lt, tt string
	dest := append([]any{&l.ID, &l.NameShort, &l.NameRoman, &l.NameKatakana, &l.Color, &lt, &tt}, extra...)
	if err := r.Scan(dest...); err != nil {
		return transit.Line{}, err
	}
	l.LineType = transit.LineType(lt)
	l.TransportType = transit.TransportType(tt)
	return l, nil
}

// FetchRoute loads the ordered station list of lineID. With a non-zero
// trainTypeID the stations and stop pattern come from that train type,
// which may run across several lines.
func (s *Store) FetchRoute(ctx context.Context, lineID, trainTypeID int) (transit.Route, error) {
	line, err := s.fetchLine(ctx, lineID)
	if err != nil {
		return transit.Route{}, err
	}
	route := transit.Route{Line: line}

	var stations []transit.Station
	if trainTypeID > 0 {
		tt, err := s.fetchTrainType(ctx, trainTypeID)
		if err != nil {
			return transit.Route{}, err
		}
		route.TrainType = &tt
		route.Line.TrainType = &tt
		stations, err = s.fetchTrainTypeStations(ctx, trainTypeID)
		if err != nil {
			return transit.Route{}, err
		}
	} else {
		stations, err = s.fetchLineStations(ctx, lineID)
		if err != nil {
			return transit.Route{}, err
		}
	}
	if len(stations) == 0 {
		return transit.Route{}, fmt.Errorf("route for line %d: no stations: %w", lineID, ErrNotFound)
	}

	lines, err := s.fetchGroupLines(ctx, stations)
	if err != nil {
		return transit.Route{}, err
	}
	numbers, err := s.fetchStationNumbers(ctx, stations)
	if err != nil {
		return transit.Route{}, err
	}
	for i := range stations {
		stations[i].Lines = lines[stations[i].GroupID]
		stations[i].StationNumbers = numbers[stations[i].ID]
		stations[i].TrainType = route.TrainType
	}
	route.Stations = stations
	return route, nil
}

func (s *Store) fetchLine(ctx context.Context, id int) (transit.Line, error) {
	q := `
SELECT ` + lineColumns + `, c.id, c.name_short, c.name_english_short
FROM lines l LEFT JOIN companies c ON c.id = l.company_id
WHERE l.id = $1`
	var cid sql.NullInt64
	var cname, cnameEN sql.NullString
	line, err := scanLine(s.queryRow(ctx, q, id), &cid, &cname, &cnameEN)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return transit.Line{}, fmt.Errorf("line %d: %w", id, ErrNotFound)
		}
		return transit.Line{}, fmt.Errorf("query line %d: %w", id, err)
	}
	if cid.Valid {
		line.Company = &transit.Company{ID: int(cid.Int64), NameShort: cname.String, NameEnglishShort: cnameEN.String}
	}
	return line, nil
}

func (s *Store) fetchTrainType(ctx context.Context, id int) (transit.TrainType, error) {
	var tt transit.TrainType
	var kind string
	q := `SELECT id, group_id, type_id, name, name_roman, name_katakana, kind FROM train_types WHERE id = $1`
	err := s.queryRow(ctx, q, id).Scan(&tt.ID, &tt.GroupID, &tt.TypeID, &tt.Name, &tt.NameRoman, &tt.NameKatakana, &kind)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return tt, fmt.Errorf("train type %d: %w", id, ErrNotFound)
		}
		return tt, fmt.Errorf("query train type %d: %w", id, err)
	}
	tt.Kind = transit.TrainTypeKind(kind)

	rows, err := s.query(ctx, `
SELECT `+lineColumns+`
FROM train_type_lines ttl JOIN lines l ON l.id = ttl.line_id
WHERE ttl.train_type_id = $1
ORDER BY ttl.seq`, id)
	if err != nil {
		return tt, fmt.Errorf("query train type lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		l, err := scanLine(rows)
		if err != nil {
			return tt, err
		}
		tt.Lines = append(tt.Lines, l)
	}
	return tt, rows.Err()
}

const stationColumns = `s.id, s.group_id, s.name, s.name_roman, s.name_katakana, s.lat, s.lon`

func (s *Store) fetchLineStations(ctx context.Context, lineID int) ([]transit.Station, error) {
	q := `
SELECT ` + stationColumns + `, s.stop_condition, ` + lineColumns + `
FROM stations s JOIN lines l ON l.id = s.line_id
WHERE s.line_id = $1
ORDER BY s.seq`
	return s.scanStations(ctx, q, lineID)
}

func (s *Store) fetchTrainTypeStations(ctx context.Context, trainTypeID int) ([]transit.Station, error) {
	q := `
SELECT ` + stationColumns + `, tts.stop_condition, ` + lineColumns + `
FROM train_type_stops tts
JOIN stations s ON s.id = tts.station_id
JOIN lines l ON l.id = s.line_id
WHERE tts.train_type_id = $1
ORDER BY tts.seq`
	return s.scanStations(ctx, q, trainTypeID)
}

func (s *Store) scanStations(ctx context.Context, q string, arg int) ([]transit.Station, error) {
	rows, err := s.query(ctx, q, arg)
	if err != nil {
		return nil, fmt.Errorf("query stations: %w", err)
	}
	defer rows.Close()

	var out []transit.Station
	for rows.Next() {
		var st transit.Station
		var lat, lon sql.NullFloat64
		var cond string
		var l transit.Line
		var lt, tt string
		if err := rows.Scan(&st.ID, &st.GroupID, &st.Name, &st.NameRoman, &st.NameKatakana, &lat, &lon, &cond,
			&l.ID, &l.NameShort, &l.NameRoman, &l.NameKatakana, &l.Color, &lt, &tt); err != nil {
			return nil, err
		}
		if lat.Valid {
			st.Coordinate.Latitude = &lat.Float64
		}
		if lon.Valid {
			st.Coordinate.Longitude = &lon.Float64
		}
		st.StopCondition = transit.StopCondition(cond)
		l.LineType = transit.LineType(lt)
		l.TransportType = transit.TransportType(tt)
		st.Line = &l
		out = append(out, st)
	}
	return out, rows.Err()
}

// fetchGroupLines returns every line serving each station group.
func (s *Store) fetchGroupLines(ctx context.Context, stations []transit.Station) (map[int][]transit.Line, error) {
	q, args := inClause(`
SELECT s.group_id, `+lineColumns+`
FROM stations s JOIN lines l ON l.id = s.line_id
WHERE s.group_id IN (%s)
ORDER BY s.group_id, l.id`, stations, func(st transit.Station) int { return st.GroupID })
	rows, err := s.query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query group lines: %w", err)
	}
	defer rows.Close()

	out := map[int][]transit.Line{}
	for rows.Next() {
		var gid int
		var l transit.Line
		var lt, tt string
		if err := rows.Scan(&gid, &l.ID, &l.NameShort, &l.NameRoman, &l.NameKatakana, &l.Color, &lt, &tt); err != nil {
			return nil, err
		}
		l.LineType = transit.LineType(lt)
		l.TransportType = transit.TransportType(tt)
		if ls := out[gid]; len(ls) > 0 && ls[len(ls)-1].ID == l.ID {
			continue
		}
		out[gid] = append(out[gid], l)
	}
	return out, rows.Err()
}

func (s *Store) fetchStationNumbers(ctx context.Context, stations []transit.Station) (map[int][]transit.StationNumber, error) {
	q, args := inClause(`
SELECT station_id, line_symbol, code
FROM station_numbers
WHERE station_id IN (%s)
ORDER BY station_id, seq`, stations, func(st transit.Station) int { return st.ID })
	rows, err := s.query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query station numbers: %w", err)
	}
	defer rows.Close()

	out := map[int][]transit.StationNumber{}
	for rows.Next() {
		var id int
		var n transit.StationNumber
		if err := rows.Scan(&id, &n.LineSymbol, &n.Code); err != nil {
			return nil, err
		}
		out[id] = append(out[id], n)
	}
	return out, rows.Err()
}

// inClause expands %s into $1..$n over the distinct keys of stations.
func inClause(q string, stations []transit.Station, key func(transit.Station) int) (string, []any) {
	seen := map[int]bool{}
	var ph []byte
	var args []any
	for _, st := range stations {
		k := key(st)
		if seen[k] {
			continue
		}
		seen[k] = true
		args = append(args, k)
		if len(ph) > 0 {
			ph = append(ph, ',')
		}
		ph = fmt.Appendf(ph, "$%d", len(args))
	}
	return fmt.Sprintf(q, ph), args
}
