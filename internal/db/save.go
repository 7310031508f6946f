package db

import (
	"context"
	"database/sql"
	"fmt"

	"virtual-conductor/internal/transit"
)

// SaveRoute writes route into the store, replacing rows with the same ids.
// Stations keep their list order as seq; with a train type the list is
// also stored as that type's stop pattern.
func (s *Store) SaveRoute(ctx context.Context, route transit.Route) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	w := &txWriter{s: s, tx: tx}
	lines := map[int]transit.Line{route.Line.ID: route.Line}
	if route.TrainType != nil {
		for _, l := range route.TrainType.Lines {
			lines[l.ID] = l
		}
	}
	for _, st := range route.Stations {
		if st.Line != nil {
			lines[st.Line.ID] = *st.Line
		}
		for _, l := range st.Lines {
			if _, ok := lines[l.ID]; !ok {
				lines[l.ID] = l
			}
		}
	}
	for _, l := range lines {
		w.line(ctx, l)
	}

	for i, st := range route.Stations {
		lineID := route.Line.ID
		if st.Line != nil {
			lineID = st.Line.ID
		}
		w.station(ctx, st, lineID, i)
	}

	if tt := route.TrainType; tt != nil {
		w.exec(ctx, `DELETE FROM train_types WHERE id = $1`, tt.ID)
		w.exec(ctx, `INSERT INTO train_types (id, group_id, type_id, name, name_roman, name_katakana, kind) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			tt.ID, tt.GroupID, tt.TypeID, tt.Name, tt.NameRoman, tt.NameKatakana, string(tt.Kind))
		w.exec(ctx, `DELETE FROM train_type_lines WHERE train_type_id = $1`, tt.ID)
		for i, l := range tt.Lines {
			w.exec(ctx, `INSERT INTO train_type_lines (train_type_id, line_id, seq) VALUES ($1, $2, $3)`, tt.ID, l.ID, i)
		}
		w.exec(ctx, `DELETE FROM train_type_stops WHERE train_type_id = $1`, tt.ID)
		for i, st := range route.Stations {
			w.exec(ctx, `INSERT INTO train_type_stops (train_type_id, station_id, seq, stop_condition) VALUES ($1, $2, $3, $4)`,
				tt.ID, st.ID, i, stopCondition(st.StopCondition))
		}
	}
	if w.err != nil {
		return w.err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// txWriter keeps the first error so the inserts read as a flat list.
type txWriter struct {
	s   *Store
	tx  *sql.Tx
	err error
}

func (w *txWriter) exec(ctx context.Context, q string, args ...any) {
	if w.err != nil {
		return
	}
	if _, err := w.tx.ExecContext(ctx, w.s.rebind(q), args...); err != nil {
		w.err = fmt.Errorf("exec %q: %w", q, err)
	}
}

func (w *txWriter) line(ctx context.Context, l transit.Line) {
	var companyID any
	if c := l.Company; c != nil {
		companyID = c.ID
		w.exec(ctx, `DELETE FROM companies WHERE id = $1`, c.ID)
		w.exec(ctx, `INSERT INTO companies (id, name_short, name_english_short) VALUES ($1, $2, $3)`, c.ID, c.NameShort, c.NameEnglishShort)
	}
	lt := l.LineType
	if lt == "" {
		lt = transit.LineTypeNormal
	}
	tt := l.TransportType
	if tt == "" {
		tt = transit.TransportRail
	}
	w.exec(ctx, `DELETE FROM lines WHERE id = $1`, l.ID)
	w.exec(ctx, `INSERT INTO lines (id, company_id, name_short, name_roman, name_katakana, color, line_type, transport_type) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		l.ID, companyID, l.NameShort, l.NameRoman, l.NameKatakana, l.Color, string(lt), string(tt))
}

func (w *txWriter) station(ctx context.Context, st transit.Station, lineID, seq int) {
	var lat, lon any
	if st.Coordinate.Valid() {
		lat, lon = *st.Coordinate.Latitude, *st.Coordinate.Longitude
	}
	w.exec(ctx, `DELETE FROM stations WHERE id = $1`, st.ID)
	w.exec(ctx, `INSERT INTO stations (id, group_id, line_id, seq, name, name_roman, name_katakana, lat, lon, stop_condition) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		st.ID, st.GroupID, lineID, seq, st.Name, st.NameRoman, st.NameKatakana, lat, lon, stopCondition(st.StopCondition))
	w.exec(ctx, `DELETE FROM station_numbers WHERE station_id = $1`, st.ID)
	for i, n := range st.StationNumbers {
		w.exec(ctx, `INSERT INTO station_numbers (station_id, seq, line_symbol, code) VALUES ($1, $2, $3, $4)`, st.ID, i, n.LineSymbol, n.Code)
	}
}

func stopCondition(c transit.StopCondition) string {
	if c == "" {
		return string(transit.StopAll)
	}
	return string(c)
}
