package calc

import "fmt"

// Operation selects the arithmetic performed by a Calculator.
type Operation int

const (
	OpAdd Operation = iota
	OpSub
	OpMul
)

// Operations lists every operation in display order.
var Operations = []Operation{OpAdd, OpMul, OpSub}

func (op Operation) String() string {
	switch op {
	case OpAdd:
		return "add"
	case OpSub:
		return "sub"
	case OpMul:
		return "mul"
	default:
		return fmt.Sprintf("Operation(%d)", int(op))
	}
}

// Symbol returns the infix operator used when printing an expression.
func (op Operation) Symbol() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	default:
		return "?"
	}
}

// ParseOperation accepts the names returned by String as well as the
// operator symbols.
func ParseOperation(s string) (Operation, error) {
	switch s {
	case "add", "+":
		return OpAdd, nil
	case "sub", "-":
		return OpSub, nil
	case "mul", "*", "x":
		return OpMul, nil
	default:
		return 0, fmt.Errorf("unknown operation %q", s)
	}
}
