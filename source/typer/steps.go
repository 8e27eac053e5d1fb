package typer

import (
	"github.com/tim-hardcastle/welang/source/ast"
	"github.com/tim-hardcastle/welang/source/report"
	"github.com/tim-hardcastle/welang/source/types"
)

// Says what type a reference chain stands for. A nil Resolver means references can't be
// resolved yet, and anything that depends on one is left for later.
type Resolver func(chain []string) (types.Type, error)

// Whether a step needing nextIn can follow a step producing prevOut. The second return
// value is false if the question can't be settled until references are resolved.
func Compatible(prevOut, nextIn types.Type, resolve Resolver) (ok bool, settled bool, err error) {
	if nextIn.Unalias().Is(types.NONE) {
		return true, true, nil
	}
	if resolve == nil && (prevOut.Is(types.UNKNOWN) || nextIn.Is(types.UNKNOWN)) {
		return false, false, nil
	}
	if prevOut.HasReference() || nextIn.HasReference() {
		if resolve == nil {
			return false, false, nil
		}
		if prevOut, err = types.Deref(prevOut, resolve); err != nil {
			return false, true, err
		}
		if nextIn, err = types.Deref(nextIn, resolve); err != nil {
			return false, true, err
		}
		if nextIn.Unalias().Is(types.NONE) {
			return true, true, nil
		}
	}
	return types.Equal(prevOut, nextIn), true, nil
}

// Checks every consecutive pair of steps, in execution order. The first step receives
// None. The error names the position of the step that can't accept its input.
func CheckSteps(steps []*ast.Node, resolve Resolver) error {
	prevOut := types.None()
	for i, step := range steps {
		ok, settled, err := Compatible(prevOut, step.InType, resolve)
		if err != nil {
			return err
		}
		if settled && !ok {
			return report.CreateErr("type/step", &step.Token, i, prevOut, step.InType)
		}
		prevOut = step.OutType
	}
	return nil
}

// The type a word has as a value: what it needs is what its first step needs, and what
// it produces is what its last step produces.
func WordTypes(steps []*ast.Node) (in, out types.Type) {
	if len(steps) == 0 {
		return types.None(), types.Word(types.None())
	}
	return steps[0].InType, types.Word(steps[len(steps)-1].OutType)
}
