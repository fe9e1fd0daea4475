// Package eval compiles and evaluates constraint expressions over decision
// variable values.
package eval

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Compiled is a validated, pre-compiled constraint.
type Compiled struct {
	cond    string
	program *vm.Program
}

// Compile validates and compiles a constraint expression.
func Compile(cond string) (*Compiled, error) {
	cond = strings.TrimSpace(cond)
	if cond == "" {
		return nil, fmt.Errorf("empty condition")
	}
	if err := Validate(cond); err != nil {
		return nil, err
	}

	program, err := expr.Compile(cond)
	if err != nil {
		return nil, err
	}
	return &Compiled{cond: cond, program: program}, nil
}

// Eval runs the constraint against one candidate assignment. The result must
// be a bool.
func (c *Compiled) Eval(vars map[string]any) (bool, error) {
	out, err := expr.Run(c.program, vars)
	if err != nil {
		return false, err
	}
	b, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("condition must evaluate to bool (got %T)", out)
	}
	return b, nil
}

// Cond returns the source expression.
func (c *Compiled) Cond() string { return c.cond }
