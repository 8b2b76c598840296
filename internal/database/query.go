package database

import (
	"fmt"

	"gorm.io/gorm"
)

// FilterOperator represents SQL comparison operators.
type FilterOperator int

// FilterOperator values.
const (
	OpEqual FilterOperator = iota
	OpNotEqual
	OpGreaterThanOrEqual
	OpLessThanOrEqual
	OpLike
	OpIn
	OpIsNull
	OpBetween
)

// Filter represents a single query filter condition.
type Filter struct {
	field    string
	operator FilterOperator
	value    any
	value2   any // upper bound for BETWEEN
}

// Field returns the filter field name.
func (f Filter) Field() string { return f.field }

// Operator returns the filter operator.
func (f Filter) Operator() FilterOperator { return f.operator }

// Value returns the filter value.
func (f Filter) Value() any { return f.value }

// OrderBy represents a sort specification.
type OrderBy struct {
	field     string
	ascending bool
}

// Query represents a database query with filters, ordering, and pagination.
type Query struct {
	filters []Filter
	orderBy []OrderBy
	limit   int
	offset  int
}

// NewQuery creates a new empty Query.
func NewQuery() Query {
	return Query{}
}

// Where adds a filter condition.
func (q Query) Where(field string, operator FilterOperator, value any) Query {
	q.filters = append(q.filters, Filter{field: field, operator: operator, value: value})
	return q
}

// Equal adds an equality filter.
func (q Query) Equal(field string, value any) Query {
	return q.Where(field, OpEqual, value)
}

// NotEqual adds a not-equal filter.
func (q Query) NotEqual(field string, value any) Query {
	return q.Where(field, OpNotEqual, value)
}

// GreaterThanOrEqual adds a greater-than-or-equal filter.
func (q Query) GreaterThanOrEqual(field string, value any) Query {
	return q.Where(field, OpGreaterThanOrEqual, value)
}

// LessThanOrEqual adds a less-than-or-equal filter.
func (q Query) LessThanOrEqual(field string, value any) Query {
	return q.Where(field, OpLessThanOrEqual, value)
}

// Like adds a LIKE filter.
func (q Query) Like(field string, pattern string) Query {
	return q.Where(field, OpLike, pattern)
}

// In adds an IN filter.
func (q Query) In(field string, values any) Query {
	return q.Where(field, OpIn, values)
}

// IsNull adds an IS NULL filter.
func (q Query) IsNull(field string) Query {
	return q.Where(field, OpIsNull, nil)
}

// Between adds a BETWEEN filter.
func (q Query) Between(field string, low, high any) Query {
	q.filters = append(q.filters, Filter{field: field, operator: OpBetween, value: low, value2: high})
	return q
}

// OrderAsc adds ascending ordering.
func (q Query) OrderAsc(field string) Query {
	q.orderBy = append(q.orderBy, OrderBy{field: field, ascending: true})
	return q
}

// OrderDesc adds descending ordering.
func (q Query) OrderDesc(field string) Query {
	q.orderBy = append(q.orderBy, OrderBy{field: field})
	return q
}

// Limit sets the result limit.
func (q Query) Limit(limit int) Query {
	q.limit = limit
	return q
}

// Offset sets the result offset.
func (q Query) Offset(offset int) Query {
	q.offset = offset
	return q
}

// Filters returns all filter conditions.
func (q Query) Filters() []Filter {
	result := make([]Filter, len(q.filters))
	copy(result, q.filters)
	return result
}

// LimitValue returns the limit value (0 means no limit).
func (q Query) LimitValue() int { return q.limit }

// OffsetValue returns the offset value.
func (q Query) OffsetValue() int { return q.offset }

// Apply applies the query to a GORM database session.
func (q Query) Apply(db *gorm.DB) *gorm.DB {
	result := q.ApplyConditions(db)

	for _, order := range q.orderBy {
		dir := "DESC"
		if order.ascending {
			dir = "ASC"
		}
		result = result.Order(fmt.Sprintf("%s %s", order.field, dir))
	}

	if q.limit > 0 {
		result = result.Limit(q.limit)
	}
	if q.offset > 0 {
		result = result.Offset(q.offset)
	}

	return result
}

// ApplyConditions applies only WHERE conditions (no limit/offset/order),
// suitable for COUNT and bulk UPDATE/DELETE statements.
func (q Query) ApplyConditions(db *gorm.DB) *gorm.DB {
	result := db
	for _, filter := range q.filters {
		result = applyFilter(result, filter)
	}
	return result
}

func applyFilter(db *gorm.DB, filter Filter) *gorm.DB {
	switch filter.operator {
	case OpEqual:
		return db.Where(fmt.Sprintf("%s = ?", filter.field), filter.value)
	case OpNotEqual:
		return db.Where(fmt.Sprintf("%s != ?", filter.field), filter.value)
	case OpGreaterThanOrEqual:
		return db.Where(fmt.Sprintf("%s >= ?", filter.field), filter.value)
	case OpLessThanOrEqual:
		return db.Where(fmt.Sprintf("%s <= ?", filter.field), filter.value)
	case OpLike:
		return db.Where(fmt.Sprintf("%s LIKE ?", filter.field), filter.value)
	case OpIn:
		return db.Where(fmt.Sprintf("%s IN ?", filter.field), filter.value)
	case OpIsNull:
		return db.Where(fmt.Sprintf("%s IS NULL", filter.field))
	case OpBetween:
		return db.Where(fmt.Sprintf("%s BETWEEN ? AND ?", filter.field), filter.value, filter.value2)
	default:
		return db.Where(fmt.Sprintf("%s = ?", filter.field), filter.value)
	}
}
