package repositories

import (
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/mychesstour/chesstour-api/query"
)

// tournamentColumns — whitelist колонок движка запросов и их SQL-выражений.
// Любая колонка вне этой карты — ошибка программиста, а не пользователя:
// значения всегда уходят в placeholder'ы, имена колонок — только отсюда.
var tournamentColumns = map[string]string{
	query.ColID:         "t.id",
	query.ColName:       "t.name",
	query.ColVenueName:  "t.venue_name",
	query.ColVenueState: "t.venue_state",
	query.ColStartDate:  "t.start_date",
	query.ColEndDate:    "t.end_date",
	query.ColCreatedAt:  "t.created_at",
	query.ColFormatType: "t.format->>'type'",
	query.ColFIDERated:  "t.is_fide_rated",
	query.ColMCFRated:   "t.is_mcf_rated",
	query.ColStatus:     "t.status",
}

// sqlBuilder переводит дерево предикатов в параметризованный SQL-фрагмент.
type sqlBuilder struct {
	args []interface{}
}

func (b *sqlBuilder) placeholder(value interface{}) string {
	b.args = append(b.args, value)
	return fmt.Sprintf("$%d", len(b.args))
}

func (b *sqlBuilder) predicate(p query.Predicate) (string, error) {
	switch pred := p.(type) {
	case query.Cond:
		column, ok := tournamentColumns[pred.Column]
		if !ok {
			return "", fmt.Errorf("unknown filter column: %s", pred.Column)
		}
		switch pred.Op {
		case query.OpEq:
			return fmt.Sprintf("%s = %s", column, b.placeholder(pred.Value)), nil
		case query.OpGt:
			return fmt.Sprintf("%s > %s", column, b.placeholder(pred.Value)), nil
		case query.OpGte:
			return fmt.Sprintf("%s >= %s", column, b.placeholder(pred.Value)), nil
		case query.OpLt:
			return fmt.Sprintf("%s < %s", column, b.placeholder(pred.Value)), nil
		case query.OpLte:
			return fmt.Sprintf("%s <= %s", column, b.placeholder(pred.Value)), nil
		case query.OpContains:
			return fmt.Sprintf("%s ILIKE '%%' || %s || '%%'", column, b.placeholder(pred.Value)), nil
		}
		return "", fmt.Errorf("unknown filter op: %s", pred.Op)

	case query.In:
		column, ok := tournamentColumns[pred.Column]
		if !ok {
			return "", fmt.Errorf("unknown filter column: %s", pred.Column)
		}
		return fmt.Sprintf("%s = ANY(%s)", column, b.placeholder(pq.Array(pred.Values))), nil

	case query.Or:
		return b.joinPredicates(pred.Preds, " OR ")

	case query.And:
		return b.joinPredicates(pred.Preds, " AND ")
	}

	return "", fmt.Errorf("unknown predicate type: %T", p)
}

func (b *sqlBuilder) joinPredicates(preds []query.Predicate, sep string) (string, error) {
	parts := make([]string, 0, len(preds))
	for _, p := range preds {
		part, err := b.predicate(p)
		if err != nil {
			return "", err
		}
		parts = append(parts, part)
	}
	return "(" + strings.Join(parts, sep) + ")", nil
}

func (b *sqlBuilder) orderBy(order []query.OrderBy) (string, error) {
	parts := make([]string, 0, len(order))
	for _, o := range order {
		column, ok := tournamentColumns[o.Column]
		if !ok {
			return "", fmt.Errorf("unknown sort column: %s", o.Column)
		}
		direction := "ASC"
		if o.Desc {
			direction = "DESC"
		}
		parts = append(parts, column+" "+direction)
	}
	return strings.Join(parts, ", "), nil
}
