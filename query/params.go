package query

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// DateFilter — именованное относительное окно дат.
type DateFilter string

const (
	DateNone      DateFilter = ""
	DateUpcoming  DateFilter = "upcoming"
	DateThisWeek  DateFilter = "this_week"
	DateThisMonth DateFilter = "this_month"
	DatePast      DateFilter = "past"
)

var (
	validSorts  = []string{"start_date", "created_at", "name"}
	validOrders = []string{"asc", "desc"}
	validDates  = []string{"upcoming", "this_week", "this_month", "past"}
)

// ValidationError — ошибка клиента: параметр не прошёл валидацию.
// Message — готовый человекочитаемый текст для ответа 400.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ListParams — типизированный, проверенный запрос списка турниров.
// Инвариант: каждое поле провалидировано до любого обращения к хранилищу.
type ListParams struct {
	Search     string
	Formats    []string
	States     []string
	RatingFIDE bool
	RatingMCF  bool
	Date       DateFilter
	Sort       string
	Order      string
	Cursor     *Cursor
	Limit      int
}

// Descending — направление сортировки, одинаковое для колонки и id-tiebreak.
func (p *ListParams) Descending() bool {
	return p.Order == "desc"
}

// ParseListParams валидирует сырые query-параметры листинга. Ошибки не
// накапливаются: первый невалидный параметр прерывает разбор, поэтому до
// хранилища невалидный запрос не доходит никогда. Никаких побочных эффектов.
func ParseListParams(values url.Values) (*ListParams, error) {
	p := &ListParams{
		Search: strings.TrimSpace(values.Get("search")),
		Sort:   "start_date",
		Order:  "asc",
		Limit:  DefaultLimit,
	}

	if sort := values.Get("sort"); sort != "" {
		p.Sort = sort
	}
	if !contains(validSorts, p.Sort) {
		return nil, &ValidationError{
			Field:   "sort",
			Message: fmt.Sprintf("Invalid sort value. Must be one of: %s", strings.Join(validSorts, ", ")),
		}
	}

	if order := values.Get("order"); order != "" {
		p.Order = order
	}
	if !contains(validOrders, p.Order) {
		return nil, &ValidationError{
			Field:   "order",
			Message: fmt.Sprintf("Invalid order value. Must be one of: %s", strings.Join(validOrders, ", ")),
		}
	}

	if date := values.Get("date"); date != "" {
		if !contains(validDates, date) {
			return nil, &ValidationError{
				Field:   "date",
				Message: fmt.Sprintf("Invalid date value. Must be one of: %s", strings.Join(validDates, ", ")),
			}
		}
		p.Date = DateFilter(date)
	}

	if limitParam := values.Get("limit"); limitParam != "" {
		parsed, err := strconv.Atoi(limitParam)
		if err != nil || parsed < 1 {
			return nil, &ValidationError{
				Field:   "limit",
				Message: "Invalid limit value. Must be a positive integer.",
			}
		}
		// Значения выше потолка молча обрезаются, это не ошибка.
		if parsed > MaxLimit {
			parsed = MaxLimit
		}
		p.Limit = parsed
	}

	if token := values.Get("cursor"); token != "" {
		cursor, err := DecodeCursor(token)
		if err != nil {
			return nil, &ValidationError{Field: "cursor", Message: "Invalid cursor"}
		}
		p.Cursor = cursor
	}

	p.Formats = splitList(values.Get("format"))
	p.States = splitList(values.Get("state"))

	// Распознаются только fide/mcf; прочие токены игнорируются, как и в
	// клиентском фильтре. Отсутствие rating = видны все, включая нерейтинговые.
	for _, r := range splitList(values.Get("rating")) {
		switch strings.ToLower(r) {
		case "fide":
			p.RatingFIDE = true
		case "mcf":
			p.RatingMCF = true
		}
	}

	return p, nil
}

// splitList разбирает запятую-разделённый параметр, отбрасывая пустые куски.
func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
