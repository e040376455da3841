package bernstein

import (
	"fmt"
	"strings"

	"github.com/rocky/mult-by-constants/core"
	"github.com/rocky/mult-by-constants/memo"
)

// StepKind distinguishes a regular reconstruction step from the trailing
// normalizing shift emitted when the original constant was even.
type StepKind int

const (
	// StepOp is a regular u_i = u_{i-1} << k (+|-) operand step.
	StepOp StepKind = iota
	// StepFinalShift is the extra shift emitted when Engine.Build's input
	// constant had a nonzero trailing-zero count.
	StepFinalShift
)

// Step is one line of reconstructed straight-line program, spec.md §4.2's
// "Reconstruction" / §6's "Reconstruction text format".
type Step struct {
	Kind        StepKind
	Index       int         // u_i being defined; 0 is the implicit leaf u0 = 1
	Op          core.OpCode // meaningless for StepFinalShift
	Shift       uint
	UsesParent  bool // operand is u_{i-1} (factor ops) rather than 1 (add1/sub1)
	ResultValue core.Value
}

// String renders the step in spec.md §6's reconstruction text format:
// "<value>: u<i> = u<i-1> << <k> <+|-> <1|u<i-1>>".
func (s Step) String() string {
	if s.Kind == StepFinalShift {
		return fmt.Sprintf("%d: u%d = u%d << %d", s.ResultValue, s.Index, s.Index-1, s.Shift)
	}
	if s.Op == core.Identity {
		return fmt.Sprintf("%d: u0 = 1", s.ResultValue)
	}

	operand := "1"
	if s.UsesParent {
		operand = fmt.Sprintf("u%d", s.Index-1)
	}

	return fmt.Sprintf("%d: u%d = u%d << %d %c %s",
		s.ResultValue, s.Index, s.Index-1, s.Shift, s.Op.Sign(), operand)
}

// Program is the reconstructed straight-line sequence computing Constant*x,
// together with its total Cost under the Engine's cost parameters.
type Program struct {
	Steps    []Step
	Cost     uint32
	Constant core.Value
}

// String renders every step, one per line, in spec.md §6 format.
func (p *Program) String() string {
	lines := make([]string, len(p.Steps))
	for i, s := range p.Steps {
		lines[i] = s.String()
	}

	return strings.Join(lines, "\n")
}

// Verify evaluates the reconstructed program against x and returns the
// result, letting callers check the "correctness of reconstruction"
// testable property from spec.md §8: Verify(x) must equal Constant*x.
func (p *Program) Verify(x core.Value) core.Value {
	// The printed program tracks coefficients (u0 = 1); evaluated against a
	// concrete x, u0 = x and every literal "1" operand becomes x.
	u := make([]core.Value, 1, len(p.Steps)+1)
	u[0] = x

	for _, s := range p.Steps {
		switch s.Kind {
		case StepFinalShift:
			u = append(u, u[len(u)-1]<<s.Shift)
		default:
			if s.Op == core.Identity {
				u = append(u, x)
				continue
			}

			shifted := u[len(u)-1] << s.Shift
			var operand core.Value
			if s.UsesParent {
				operand = u[len(u)-1]
			} else {
				operand = x
			}
			if s.Op.Sign() == '+' {
				u = append(u, shifted+operand)
			} else {
				u = append(u, shifted-operand)
			}
		}
	}

	return u[len(u)-1]
}

// reconstruct walks node's parent chain in post-order and emits the Step
// sequence, per spec.md §4.2's "Reconstruction".
func reconstruct(node *memo.Node) []Step {
	var steps []Step
	var walk func(n *memo.Node) int
	walk = func(n *memo.Node) int {
		if n.Op == core.Identity {
			steps = append(steps, Step{
				Kind:        StepOp,
				Index:       0,
				Op:          core.Identity,
				ResultValue: 1,
			})

			return 1
		}

		idx := walk(n.Parent)
		steps = append(steps, Step{
			Kind:        StepOp,
			Index:       idx,
			Op:          n.Op,
			Shift:       n.Shift,
			UsesParent:  n.Op == core.FactorAdd || n.Op == core.FactorSub,
			ResultValue: n.Value,
		})

		return idx + 1
	}
	walk(node)

	return steps
}
