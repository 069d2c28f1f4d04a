// Package expression evaluates filter expressions against solution
// mappings. Conditions compare a variable's bound term to a constant;
// numeric comparison is used when both sides are numbers, lexicographic
// comparison otherwise. A condition on an unbound variable is
// unsatisfied, never an error.
package expression

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/c360/semgraph/graph/algebra"
	"github.com/c360/semgraph/term"
)

// OperatorFunc implements a single comparison operator.
type OperatorFunc func(bound term.Term, compareValue any) (bool, error)

// Evaluator applies logical expressions to solutions.
type Evaluator struct {
	operators map[string]OperatorFunc
}

// NewEvaluator creates an evaluator with all supported operators
// registered.
func NewEvaluator() *Evaluator {
	e := &Evaluator{operators: make(map[string]OperatorFunc)}

	e.operators[algebra.OpEqual] = operatorEqual
	e.operators[algebra.OpNotEqual] = operatorNotEqual
	e.operators[algebra.OpLessThan] = operatorLessThan
	e.operators[algebra.OpLessThanEqual] = operatorLessThanEqual
	e.operators[algebra.OpGreaterThan] = operatorGreaterThan
	e.operators[algebra.OpGreaterThanEqual] = operatorGreaterThanEqual

	e.operators[algebra.OpContains] = operatorContains
	e.operators[algebra.OpStartsWith] = operatorStartsWith
	e.operators[algebra.OpEndsWith] = operatorEndsWith
	e.operators[algebra.OpRegexMatch] = operatorRegex

	return e
}

// Evaluate reports whether the solution satisfies the expression. An
// empty condition list passes every solution.
func (e *Evaluator) Evaluate(solution *algebra.Solution, expr algebra.LogicalExpression) (bool, error) {
	if len(expr.Conditions) == 0 {
		return true, nil
	}

	results := make([]bool, len(expr.Conditions))
	for i, condition := range expr.Conditions {
		result, err := e.evaluateCondition(solution, condition)
		if err != nil {
			return false, err
		}
		results[i] = result
	}

	switch expr.Logic {
	case algebra.LogicOr, "":
		for _, result := range results {
			if result {
				return true, nil
			}
		}
		return false, nil

	case algebra.LogicAnd:
		for _, result := range results {
			if !result {
				return false, nil
			}
		}
		return true, nil

	default:
		return false, &EvaluationError{
			Message: fmt.Sprintf("unsupported logic operator: %s", expr.Logic),
		}
	}
}

func (e *Evaluator) evaluateCondition(solution *algebra.Solution, condition algebra.Condition) (bool, error) {
	bound, ok := solution.Get(condition.Variable)
	if !ok {
		// Unbound variable: the condition is unsatisfied.
		return false, nil
	}

	opFunc, ok := e.operators[condition.Operator]
	if !ok {
		return false, &EvaluationError{
			Variable: condition.Variable,
			Operator: condition.Operator,
			Message:  "unsupported operator",
		}
	}

	result, err := opFunc(bound, condition.Value)
	if err != nil {
		return false, &EvaluationError{
			Variable: condition.Variable,
			Operator: condition.Operator,
			Message:  "operator execution failed",
			Err:      err,
		}
	}
	return result, nil
}

// EvaluationError reports a failure while evaluating a condition.
type EvaluationError struct {
	Variable string
	Operator string
	Message  string
	Err      error
}

func (e *EvaluationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("evaluation error for variable '%s' with operator '%s': %s: %v",
			e.Variable, e.Operator, e.Message, e.Err)
	}
	return fmt.Sprintf("evaluation error for variable '%s' with operator '%s': %s",
		e.Variable, e.Operator, e.Message)
}

func (e *EvaluationError) Unwrap() error {
	return e.Err
}

// Operator implementations.

func operatorEqual(bound term.Term, compareValue any) (bool, error) {
	return compareTermValue(bound, compareValue) == 0, nil
}

func operatorNotEqual(bound term.Term, compareValue any) (bool, error) {
	return compareTermValue(bound, compareValue) != 0, nil
}

func operatorLessThan(bound term.Term, compareValue any) (bool, error) {
	return compareTermValue(bound, compareValue) < 0, nil
}

func operatorLessThanEqual(bound term.Term, compareValue any) (bool, error) {
	return compareTermValue(bound, compareValue) <= 0, nil
}

func operatorGreaterThan(bound term.Term, compareValue any) (bool, error) {
	return compareTermValue(bound, compareValue) > 0, nil
}

func operatorGreaterThanEqual(bound term.Term, compareValue any) (bool, error) {
	return compareTermValue(bound, compareValue) >= 0, nil
}

func operatorContains(bound term.Term, compareValue any) (bool, error) {
	return strings.Contains(bound.Value(), stringify(compareValue)), nil
}

func operatorStartsWith(bound term.Term, compareValue any) (bool, error) {
	return strings.HasPrefix(bound.Value(), stringify(compareValue)), nil
}

func operatorEndsWith(bound term.Term, compareValue any) (bool, error) {
	return strings.HasSuffix(bound.Value(), stringify(compareValue)), nil
}

func operatorRegex(bound term.Term, compareValue any) (bool, error) {
	pattern, ok := compareValue.(string)
	if !ok {
		return false, fmt.Errorf("regex pattern must be a string")
	}

	re, err := compileRegex(pattern)
	if err != nil {
		return false, err
	}
	return re.MatchString(bound.Value()), nil
}

// compareTermValue compares the bound term against the condition value.
// Numeric comparison applies when both sides are numbers, otherwise the
// term's value string is compared against the stringified constant.
func compareTermValue(bound term.Term, compareValue any) int {
	boundNum, boundIsNum := term.NumericValue(bound)
	compareNum, compareIsNum := toFloat64(compareValue)

	if boundIsNum && compareIsNum {
		switch {
		case boundNum < compareNum:
			return -1
		case boundNum > compareNum:
			return 1
		default:
			return 0
		}
	}

	return strings.Compare(bound.Value(), stringify(compareValue))
}

func stringify(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func toFloat64(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int32:
		return float64(val), true
	case int64:
		return float64(val), true
	case string:
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
