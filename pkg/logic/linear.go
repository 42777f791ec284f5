package logic

import "slices"

// LinearForm is a linear integer term: a constant plus a sum of variables
// scaled by integer coefficients. Variables with a zero coefficient are not
// recorded.
type LinearForm struct {
	Coeffs   map[string]int64
	Constant int64
}

// Linear extracts the linear form of an integer term. It reports false when
// the term is not linear (e.g. a product of two variables) or not an integer
// term at all.
func Linear(t Term) (LinearForm, bool) {
	form := LinearForm{Coeffs: make(map[string]int64)}
	if !accumulateLinear(t, 1, &form) {
		return LinearForm{}, false
	}
	for name, coeff := range form.Coeffs {
		if coeff == 0 {
			delete(form.Coeffs, name)
		}
	}
	return form, true
}

func accumulateLinear(t Term, scale int64, form *LinearForm) bool {
	switch t.op {
	case OpVar:
		form.Coeffs[t.name] += scale
		return true
	case OpInt:
		form.Constant += scale * t.num
		return true
	case OpNeg:
		return accumulateLinear(t.args[0], -scale, form)
	case OpAdd:
		for _, arg := range t.args {
			if !accumulateLinear(arg, scale, form) {
				return false
			}
		}
		return true
	case OpMul:
		// At most one non-constant factor keeps the product linear.
		factor := scale
		nonConstant := -1
		for i, arg := range t.args {
			if arg.IsInt() {
				factor *= arg.num
				continue
			}
			if nonConstant >= 0 {
				return false
			}
			nonConstant = i
		}
		if nonConstant < 0 {
			form.Constant += factor
			return true
		}
		return accumulateLinear(t.args[nonConstant], factor, form)
	}
	return false
}

// Vars lists the variables carrying a coefficient, sorted by name.
func (f LinearForm) Vars() []string {
	return sortedNames(f.Coeffs)
}

// Term renders the linear form back into a term.
func (f LinearForm) Term() Term {
	parts := make([]Term, 0, len(f.Coeffs)+1)
	for _, name := range sortedNames(f.Coeffs) {
		coeff := f.Coeffs[name]
		switch coeff {
		case 1:
			parts = append(parts, Var(name))
		case -1:
			parts = append(parts, Neg(Var(name)))
		default:
			parts = append(parts, Mul(Int(coeff), Var(name)))
		}
	}
	if f.Constant != 0 || len(parts) == 0 {
		parts = append(parts, Int(f.Constant))
	}
	if len(parts) == 1 {
		return parts[0]
	}
	return Add(parts...)
}

// Scaled multiplies every coefficient and the constant by the factor.
func (f LinearForm) Scaled(factor int64) LinearForm {
	scaled := LinearForm{Coeffs: make(map[string]int64, len(f.Coeffs)), Constant: f.Constant * factor}
	for name, coeff := range f.Coeffs {
		scaled.Coeffs[name] = coeff * factor
	}
	return scaled
}

// Minus subtracts another linear form.
func (f LinearForm) Minus(other LinearForm) LinearForm {
	diff := LinearForm{Coeffs: make(map[string]int64, len(f.Coeffs)+len(other.Coeffs)), Constant: f.Constant - other.Constant}
	for name, coeff := range f.Coeffs {
		diff.Coeffs[name] = coeff
	}
	for name, coeff := range other.Coeffs {
		diff.Coeffs[name] -= coeff
		if diff.Coeffs[name] == 0 {
			delete(diff.Coeffs, name)
		}
	}
	return diff
}

// Deterministic rendering keeps structural equality meaningful across
// repeated extractions.
func sortedNames(coeffs map[string]int64) []string {
	names := make([]string, 0, len(coeffs))
	for name := range coeffs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
