package core

import "strconv"

// ParamType is the value kind of a tunable.
type ParamType string

const (
	ParamTypeInt   ParamType = "int"
	ParamTypeFloat ParamType = "float"
)

// Parameter is one tunable as shown to the user. Value is preformatted.
type Parameter struct {
	Key   string
	Label string
	Type  ParamType
	Value string
}

// IntParam formats an integer tunable.
func IntParam(key, label string, v int) Parameter {
	return Parameter{Key: key, Label: label, Type: ParamTypeInt, Value: strconv.Itoa(v)}
}

// FloatParam formats a float tunable with the shortest exact representation.
func FloatParam(key, label string, v float32) Parameter {
	return Parameter{Key: key, Label: label, Type: ParamTypeFloat, Value: strconv.FormatFloat(float64(v), 'f', -1, 32)}
}

// ParameterGroup is a titled block of parameters.
type ParameterGroup struct {
	Name   string
	Params []Parameter
}

// ParameterSnapshot is the full set of tunables a sim reports.
type ParameterSnapshot struct {
	Groups []ParameterGroup
}

// Values flattens the snapshot into key -> formatted value.
func (s ParameterSnapshot) Values() map[string]string {
	values := map[string]string{}
	for _, group := range s.Groups {
		for _, p := range group.Params {
			values[p.Key] = p.Value
		}
	}
	return values
}

// ParameterControl is a tunable the HUD can step up and down. Bounds apply
// only when the matching Has flag is set.
type ParameterControl struct {
	Key   string
	Label string
	Type  ParamType

	Step float64

	Min    float64
	Max    float64
	HasMin bool
	HasMax bool
}

// FloatControl builds a bounded float control.
func FloatControl(key, label string, step, lo, hi float64) ParameterControl {
	return ParameterControl{
		Key: key, Label: label, Type: ParamTypeFloat,
		Step: step, Min: lo, Max: hi, HasMin: true, HasMax: true,
	}
}

// IntControl builds a bounded integer control.
func IntControl(key, label string, step, lo, hi int) ParameterControl {
	return ParameterControl{
		Key: key, Label: label, Type: ParamTypeInt,
		Step: float64(step), Min: float64(lo), Max: float64(hi), HasMin: true, HasMax: true,
	}
}

// Clamp limits v to the control's bounds.
func (c ParameterControl) Clamp(v float64) float64 {
	if c.HasMin && v < c.Min {
		v = c.Min
	}
	if c.HasMax && v > c.Max {
		v = c.Max
	}
	return v
}

type ParameterControlsProvider interface {
	ParameterControls() []ParameterControl
}

type IntParameterSetter interface {
	SetIntParameter(key string, value int) bool
}

type FloatParameterSetter interface {
	SetFloatParameter(key string, value float64) bool
}

type ParameterSnapshotProvider interface {
	Parameters() ParameterSnapshot
}
