package sentinel

import "encoding/json"

// Quantity types are named float64 wrappers carrying a physical unit
// implied by their name (degrees, m/s, volts, amps, kelvin). The unit
// libraries themselves are out of scope here; these only guarantee a
// lossless, canonical numeric wire shape.

type Angle float64

func (a Angle) MarshalJSON() ([]byte, error)      { return json.Marshal(float64(a)) }
func (a *Angle) UnmarshalJSON(b []byte) error      { return unmarshalFloatLike(b, (*float64)(a)) }

type Velocity float64

func (v Velocity) MarshalJSON() ([]byte, error) { return json.Marshal(float64(v)) }
func (v *Velocity) UnmarshalJSON(b []byte) error { return unmarshalFloatLike(b, (*float64)(v)) }

type ElectricPotential float64

func (p ElectricPotential) MarshalJSON() ([]byte, error) { return json.Marshal(float64(p)) }
func (p *ElectricPotential) UnmarshalJSON(b []byte) error {
	return unmarshalFloatLike(b, (*float64)(p))
}

type ElectricCurrent float64

func (c ElectricCurrent) MarshalJSON() ([]byte, error) { return json.Marshal(float64(c)) }
func (c *ElectricCurrent) UnmarshalJSON(b []byte) error {
	return unmarshalFloatLike(b, (*float64)(c))
}

type Temperature float64

func (t Temperature) MarshalJSON() ([]byte, error) { return json.Marshal(float64(t)) }
func (t *Temperature) UnmarshalJSON(b []byte) error {
	return unmarshalFloatLike(b, (*float64)(t))
}

func unmarshalFloatLike(b []byte, dst *float64) error {
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*dst = f
	return nil
}
