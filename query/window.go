package query

import "time"

// dateLayout — календарные даты без компонента времени и зоны.
const dateLayout = "2006-01-02"

// DateWindow переводит именованный фильтр дат в предикаты на границах окна.
// "Сегодня" передаётся явно и вычисляется один раз на запрос — никакого
// чтения часов внутри алгоритма, иначе тесты границ недетерминированы.
//
//	upcoming:   start_date >= today (без верхней границы)
//	this_week:  today <= start_date <= today+7d (включительно)
//	this_month: today <= start_date <= today+1 месяц (включительно,
//	            переполнение дня месяца — по стандартным правилам календаря)
//	past:       end_date < today
//	DateNone:   окно не применяется вовсе
func DateWindow(today time.Time, filter DateFilter) []Predicate {
	day := today.Format(dateLayout)

	switch filter {
	case DateUpcoming:
		return []Predicate{Cond{Column: ColStartDate, Op: OpGte, Value: day}}
	case DateThisWeek:
		weekEnd := today.AddDate(0, 0, 7).Format(dateLayout)
		return []Predicate{
			Cond{Column: ColStartDate, Op: OpGte, Value: day},
			Cond{Column: ColStartDate, Op: OpLte, Value: weekEnd},
		}
	case DateThisMonth:
		monthEnd := today.AddDate(0, 1, 0).Format(dateLayout)
		return []Predicate{
			Cond{Column: ColStartDate, Op: OpGte, Value: day},
			Cond{Column: ColStartDate, Op: OpLte, Value: monthEnd},
		}
	case DatePast:
		return []Predicate{Cond{Column: ColEndDate, Op: OpLt, Value: day}}
	}

	return nil
}
