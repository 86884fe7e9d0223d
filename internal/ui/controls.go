package ui

import (
	"math"
	"strconv"
	"strings"

	"rainscape/internal/core"
)

// adjustableState tracks the displayed value of one HUD control.
type adjustableState struct {
	control core.ParameterControl
	value   string

	number   float64
	hasValue bool
}

// refresh parses the control's current value out of a snapshot.
func (a *adjustableState) refresh(values map[string]string) {
	a.hasValue = false
	a.value = "--"
	raw, ok := values[a.control.Key]
	if !ok {
		return
	}
	switch a.control.Type {
	case core.ParamTypeInt:
		v, err := strconv.Atoi(raw)
		if err != nil {
			return
		}
		a.number = float64(v)
	case core.ParamTypeFloat:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return
		}
		a.number = v
	default:
		return
	}
	a.hasValue = true
	a.value = formatControl(a.control, a.number)
}

// target returns the value one step in direction, and whether moving there
// is possible for this sim.
func (a *adjustableState) target(sim core.Sim, direction int) (float64, bool) {
	if !a.hasValue || direction == 0 {
		return 0, false
	}
	step := a.control.Step
	switch a.control.Type {
	case core.ParamTypeInt:
		if _, ok := sim.(core.IntParameterSetter); !ok {
			return 0, false
		}
		step = math.Max(1, math.Round(step))
	case core.ParamTypeFloat:
		if _, ok := sim.(core.FloatParameterSetter); !ok {
			return 0, false
		}
		if step <= 0 {
			step = 0.05
		}
	default:
		return 0, false
	}
	next := a.number + float64(direction)*step
	next = a.control.Clamp(next)
	if math.Abs(next-a.number) < 1e-9 {
		return 0, false
	}
	return next, true
}

// apply moves the control one step and pushes the value into the sim.
func (a *adjustableState) apply(sim core.Sim, direction int) bool {
	next, ok := a.target(sim, direction)
	if !ok {
		return false
	}
	switch a.control.Type {
	case core.ParamTypeInt:
		v := int(math.Round(next))
		ok = sim.(core.IntParameterSetter).SetIntParameter(a.control.Key, v)
		next = float64(v)
	case core.ParamTypeFloat:
		ok = sim.(core.FloatParameterSetter).SetFloatParameter(a.control.Key, next)
	}
	if ok {
		a.number = next
		a.value = formatControl(a.control, next)
	}
	return ok
}

func formatControl(ctrl core.ParameterControl, v float64) string {
	if ctrl.Type == core.ParamTypeInt {
		return strconv.Itoa(int(math.Round(v)))
	}
	precision := 1
	switch step := ctrl.Step; {
	case step <= 0:
		precision = 2
	case step < 0.001:
		precision = 4
	case step < 0.01:
		precision = 3
	case step < 0.1:
		precision = 2
	}
	return strconv.FormatFloat(v, 'f', precision, 64)
}

func panelTitle(sim core.Sim) string {
	if sim == nil || sim.Name() == "" {
		return "Controls"
	}
	name := sim.Name()
	return strings.ToUpper(name[:1]) + name[1:] + " Controls"
}
