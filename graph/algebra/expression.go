package algebra

// Logic combines the results of a filter's conditions.
type Logic string

const (
	// LogicAnd requires every condition to hold.
	LogicAnd Logic = "and"
	// LogicOr requires at least one condition to hold. The empty string
	// defaults to OR.
	LogicOr Logic = "or"
)

// Filter condition operators. Numeric operators compare numerically when
// both sides are numbers and lexicographically otherwise; string operators
// work on the term's value string.
const (
	OpEqual            = "eq"
	OpNotEqual         = "neq"
	OpLessThan         = "lt"
	OpLessThanEqual    = "lte"
	OpGreaterThan      = "gt"
	OpGreaterThanEqual = "gte"
	OpContains         = "contains"
	OpStartsWith       = "startsWith"
	OpEndsWith         = "endsWith"
	OpRegexMatch       = "regex"
)

// Condition is a single comparison between a variable's bound term and a
// constant value. A condition referencing an unbound variable is
// unsatisfied, never an error.
type Condition struct {
	// Variable names the solution binding being tested.
	Variable string `json:"variable"`

	// Operator is one of the Op* constants.
	Operator string `json:"operator"`

	// Value is the constant compared against: a string, a number, or a
	// bool (JSON scalar types).
	Value any `json:"value"`
}

// LogicalExpression is the boolean expression a Filter node owns:
// a flat list of conditions combined under one logic operator. An empty
// condition list passes every solution.
type LogicalExpression struct {
	Logic      Logic       `json:"logic,omitempty"`
	Conditions []Condition `json:"conditions"`
}

// And builds a conjunction of conditions.
func And(conditions ...Condition) LogicalExpression {
	return LogicalExpression{Logic: LogicAnd, Conditions: conditions}
}

// Or builds a disjunction of conditions.
func Or(conditions ...Condition) LogicalExpression {
	return LogicalExpression{Logic: LogicOr, Conditions: conditions}
}

// Cond builds a single condition.
func Cond(variable, operator string, value any) Condition {
	return Condition{Variable: variable, Operator: operator, Value: value}
}
