// Package expr evaluates the numeric expressions allowed in definition
// files, such as "width * 2" or "RowStride(width, 24)".
package expr

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/knetic/govaluate"
)

// ErrNotNumeric is returned when an expression evaluates to something
// other than a number.
var ErrNotNumeric = errors.New("expression is not numeric")

// numbers converts the arguments of a function call, govaluate passes all
// numbers as float64.
func numbers(name string, args []interface{}, want int) ([]float64, error) {
	if len(args) != want {
		return nil, fmt.Errorf("%s expects %d arguments, got %d", name, want, len(args))
	}
	res := make([]float64, want)
	for i, arg := range args {
		v, ok := arg.(float64)
		if !ok {
			return nil, fmt.Errorf("arg %d of %s must be numeric", i+1, name)
		}
		res[i] = v
	}
	return res, nil
}

// rowStride is the number of bytes in one padded bitmap row.
func rowStride(width, bitsPerPixel float64) (int, error) {
	if bitsPerPixel <= 0 || math.Mod(bitsPerPixel, 8) != 0 {
		return 0, fmt.Errorf("unsupported bitsPerPixel: %g", bitsPerPixel)
	}
	bytesPerRow := int(width) * int(bitsPerPixel/8)
	paddingPerRow := (4 - (bytesPerRow % 4)) % 4 // Standard BMP padding logic
	return bytesPerRow + paddingPerRow, nil
}

// Functions defines the functions usable in expressions.
func Functions() map[string]govaluate.ExpressionFunction {
	return map[string]govaluate.ExpressionFunction{
		// Size of the pixel data of a bitmap, rows padded to four bytes.
		"CalculatePaddedSize": func(args ...interface{}) (interface{}, error) {
			v, err := numbers("CalculatePaddedSize", args, 3)
			if err != nil {
				return nil, err
			}
			stride, err := rowStride(v[0], v[2])
			if err != nil {
				return nil, err
			}
			return float64(stride * int(v[1])), nil
		},
		"RowStride": func(args ...interface{}) (interface{}, error) {
			v, err := numbers("RowStride", args, 2)
			if err != nil {
				return nil, err
			}
			stride, err := rowStride(v[0], v[1])
			return float64(stride), err
		},
		"min": func(args ...interface{}) (interface{}, error) {
			v, err := numbers("min", args, 2)
			if err != nil {
				return nil, err
			}
			return math.Min(v[0], v[1]), nil
		},
		"max": func(args ...interface{}) (interface{}, error) {
			v, err := numbers("max", args, 2)
			if err != nil {
				return nil, err
			}
			return math.Max(v[0], v[1]), nil
		},
	}
}

// Evaluate computes the numeric value of expression with variables taken
// from params. Numbers in params should be float64.
func Evaluate(expression string, params map[string]interface{}) (float64, error) {
	return EvaluateWith(expression, govaluate.MapParameters(params))
}

// EvaluateWith is Evaluate with variables resolved by params on demand.
func EvaluateWith(expression string, params govaluate.Parameters) (float64, error) {
	e, err := govaluate.NewEvaluableExpressionWithFunctions(expression, Functions())
	if err != nil {
		return 0, fmt.Errorf("invalid expression '%s': %w", expression, err)
	}
	result, err := e.Eval(params)
	if err != nil {
		return 0, fmt.Errorf("failed to evaluate '%s': %w", expression, err)
	}
	v, ok := result.(float64)
	if !ok {
		return 0, fmt.Errorf("'%s' gave %v: %w", expression, result, ErrNotNumeric)
	}
	return v, nil
}

// IsValidExpression reports whether expression parses. It does not check
// that its variables will be defined.
func IsValidExpression(expression string) bool {
	trimmed := strings.TrimSpace(expression)
	if trimmed == "" || trimmed == "..." {
		return false
	}
	_, err := govaluate.NewEvaluableExpressionWithFunctions(trimmed, Functions())
	return err == nil
}
