// Package query реализует движок запросов списка турниров: валидацию
// параметров, курсорную (keyset) пагинацию и компиляцию фильтров в
// типизированное дерево предикатов, независимое от конкретного хранилища.
package query

// Имена колонок, известные движку. Хранилище само решает, как они ложатся
// на его схему (format_type — это подполе JSONB format).
const (
	ColID         = "id"
	ColName       = "name"
	ColVenueName  = "venue_name"
	ColVenueState = "venue_state"
	ColStartDate  = "start_date"
	ColEndDate    = "end_date"
	ColCreatedAt  = "created_at"
	ColFormatType = "format_type"
	ColFIDERated  = "is_fide_rated"
	ColMCFRated   = "is_mcf_rated"
	ColStatus     = "status"
)

// Op — операция сравнения в предикате.
type Op string

const (
	OpEq  Op = "eq"
	OpGt  Op = "gt"
	OpGte Op = "gte"
	OpLt  Op = "lt"
	OpLte Op = "lte"
	// OpContains — регистронезависимое вхождение подстроки (ILIKE %v%).
	OpContains Op = "contains"
)

// Predicate — узел дерева фильтров. Дерево строится только из тегированных
// вариантов ниже, никакой конкатенации пользовательского ввода в строки
// запроса: хранилище получает структуру и само параметризует значения.
type Predicate interface {
	pred()
}

// Cond — сравнение одной колонки со значением. Значения всегда строковые
// ("true"/"false" для булевых колонок, ISO-даты для дат): это общий знаменатель
// для реляционного бэкенда и in-memory реализации.
type Cond struct {
	Column string
	Op     Op
	Value  string
}

// In — членство колонки в наборе значений.
type In struct {
	Column string
	Values []string
}

// Or — дизъюнкция вложенных предикатов.
type Or struct {
	Preds []Predicate
}

// And — конъюнкция вложенных предикатов (нужна внутри Or для границы курсора).
type And struct {
	Preds []Predicate
}

func (Cond) pred() {}
func (In) pred()   {}
func (Or) pred()   {}
func (And) pred()  {}

// OrderBy — одна колонка сортировки с направлением.
type OrderBy struct {
	Column string
	Desc   bool
}

// ListSpec — скомпилированный запрос к хранилищу турниров: конъюнкция
// предикатов Where, сортировка и лимит строк.
type ListSpec struct {
	Where   []Predicate
	OrderBy []OrderBy
	Limit   int
}
