package query

import "time"

// CompileFilters собирает конъюнкцию предикатов из проверенных параметров.
// Между измерениями — AND, внутри измерения с несколькими значениями — OR.
// Пустой набор значений измерения означает "нет ограничения", а не
// "ничего не совпадает". Статус published добавляется всегда и не
// управляется клиентом.
func CompileFilters(p *ListParams, today time.Time) []Predicate {
	preds := []Predicate{
		Cond{Column: ColStatus, Op: OpEq, Value: "published"},
	}

	if p.Search != "" {
		preds = append(preds, Or{Preds: []Predicate{
			Cond{Column: ColName, Op: OpContains, Value: p.Search},
			Cond{Column: ColVenueName, Op: OpContains, Value: p.Search},
		}})
	}

	if len(p.Formats) == 1 {
		preds = append(preds, Cond{Column: ColFormatType, Op: OpEq, Value: p.Formats[0]})
	} else if len(p.Formats) > 1 {
		alts := make([]Predicate, 0, len(p.Formats))
		for _, f := range p.Formats {
			alts = append(alts, Cond{Column: ColFormatType, Op: OpEq, Value: f})
		}
		preds = append(preds, Or{Preds: alts})
	}

	if len(p.States) > 0 {
		preds = append(preds, In{Column: ColVenueState, Values: p.States})
	}

	switch {
	case p.RatingFIDE && p.RatingMCF:
		preds = append(preds, Or{Preds: []Predicate{
			Cond{Column: ColFIDERated, Op: OpEq, Value: "true"},
			Cond{Column: ColMCFRated, Op: OpEq, Value: "true"},
		}})
	case p.RatingFIDE:
		preds = append(preds, Cond{Column: ColFIDERated, Op: OpEq, Value: "true"})
	case p.RatingMCF:
		preds = append(preds, Cond{Column: ColMCFRated, Op: OpEq, Value: "true"})
	}

	preds = append(preds, DateWindow(today, p.Date)...)

	return preds
}

// CursorBoundary строит seek-предикат keyset-пагинации:
// (sort > v) OR (sort = v AND id > cid), для desc — зеркально с <.
// Композитный ключ (sort, id) даёт тотальный порядок даже при дублях в
// колонке сортировки, поэтому строки не пропускаются и не повторяются.
func CursorBoundary(sort string, descending bool, c *Cursor) Predicate {
	op := OpGt
	if descending {
		op = OpLt
	}
	return Or{Preds: []Predicate{
		Cond{Column: sort, Op: op, Value: c.Value},
		And{Preds: []Predicate{
			Cond{Column: sort, Op: OpEq, Value: c.Value},
			Cond{Column: ColID, Op: op, Value: c.ID},
		}},
	}}
}

// BuildListSpec — полный скомпилированный запрос страницы: фильтры, граница
// курсора, сортировка (sort, id) в одном направлении и overfetch limit+1,
// по которому исполнитель определяет has_more.
func BuildListSpec(p *ListParams, today time.Time) ListSpec {
	where := CompileFilters(p, today)
	if p.Cursor != nil {
		where = append(where, CursorBoundary(p.Sort, p.Descending(), p.Cursor))
	}

	desc := p.Descending()
	return ListSpec{
		Where: where,
		OrderBy: []OrderBy{
			{Column: p.Sort, Desc: desc},
			{Column: ColID, Desc: desc},
		},
		Limit: p.Limit + 1,
	}
}
