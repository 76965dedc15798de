package core

// ParamType enumerates supported parameter value kinds.
type ParamType string

const (
	// ParamTypeInt denotes integer-valued parameters.
	ParamTypeInt ParamType = "int"
	// ParamTypeFloat denotes floating-point parameters.
	ParamTypeFloat ParamType = "float"
)

// Parameter describes a single value reported by a canvas.
type Parameter struct {
	Key   string
	Label string
	Type  ParamType
	Value string
}

// ParameterGroup clusters related parameters for presentation purposes.
type ParameterGroup struct {
	Name   string
	Params []Parameter
}

// ParameterSnapshot captures the current values exposed by a canvas.
type ParameterSnapshot struct {
	Groups []ParameterGroup
}

// Lookup returns the parameter registered under key, if any.
func (s ParameterSnapshot) Lookup(key string) (Parameter, bool) {
	for _, g := range s.Groups {
		for _, p := range g.Params {
			if p.Key == key {
				return p, true
			}
		}
	}
	return Parameter{}, false
}

// ParameterProvider is implemented by canvases that report live values.
type ParameterProvider interface {
	Parameters() ParameterSnapshot
}

// ParameterControl describes an adjustable float parameter that should be
// exposed on the HUD. Bounds are inclusive.
type ParameterControl struct {
	Key   string
	Label string
	Step  float64
	Min   float64
	Max   float64
}

// Clamp bounds v to the control's range.
func (c ParameterControl) Clamp(v float64) float64 {
	if v < c.Min {
		return c.Min
	}
	if v > c.Max {
		return c.Max
	}
	return v
}

// ParameterControlsProvider exposes the list of HUD-adjustable controls.
type ParameterControlsProvider interface {
	ParameterControls() []ParameterControl
}

// FloatParameterSetter allows HUD interactions to update float parameters.
type FloatParameterSetter interface {
	SetFloatParameter(key string, value float64) bool
}
