package sentinel

import "encoding/json"

// RecordData is satisfied by every one of the 16 sensor payload shapes. It
// is the bound on SensorRecord[T] and is how the codec recovers the
// capability-named wire property for a given T without a separate registry.
type RecordData interface {
	Capability() SensorCapability
}

type AccelerometerData struct {
	Ax float32 `json:"ax"`
	Ay float32 `json:"ay"`
	Az float32 `json:"az"`
}

func (AccelerometerData) Capability() SensorCapability { return CapabilityAccelerometer }

type AnemometerData struct {
	Angle Angle    `json:"angle"`
	Speed Velocity `json:"speed"`
}

func (AnemometerData) Capability() SensorCapability { return CapabilityAnemometer }

type CloudcoverData struct {
	Percent float32 `json:"percent"`
}

func (CloudcoverData) Capability() SensorCapability { return CapabilityCloudcover }

type FireData struct {
	FireProb float64 `json:"fireProb"`
}

func (FireData) Capability() SensorCapability { return CapabilityFire }

type GasData struct {
	Gas      int32   `json:"gas"`
	Humidity float64 `json:"humidity"`
	Pressure float64 `json:"pressure"`
	Altitude float64 `json:"altitude"`
}

func (GasData) Capability() SensorCapability { return CapabilityGas }

type GpsData struct {
	Latitude          Angle    `json:"latitude"`
	Longitude         Angle    `json:"longitude"`
	Altitude          *float64 `json:"altitude,omitempty"`
	Quality           *float64 `json:"quality,omitempty"`
	NumberOfSatellites *int32  `json:"numberOfSatellites,omitempty"`
	HDOP              *float32 `json:"hdop,omitempty"`
}

func (GpsData) Capability() SensorCapability { return CapabilityGPS }

// UnmarshalJSON accepts the uppercase "HDOP" alias required by spec.md §4.1
// in addition to the canonical lowercase "hdop" property.
func (g *GpsData) UnmarshalJSON(b []byte) error {
	type alias GpsData
	var a alias
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	if a.HDOP == nil {
		var upper struct {
			HDOP *float32 `json:"HDOP"`
		}
		if err := json.Unmarshal(b, &upper); err != nil {
			return err
		}
		a.HDOP = upper.HDOP
	}
	*g = GpsData(a)
	return nil
}

type GyroscopeData struct {
	Gx float64 `json:"gx"`
	Gy float64 `json:"gy"`
	Gz float64 `json:"gz"`
}

func (GyroscopeData) Capability() SensorCapability { return CapabilityGyroscope }

type ImageData struct {
	Filename          string    `json:"filename"`
	IsInfrared        bool      `json:"isInfrared"`
	OrientationRecord *RecordID `json:"orientationRecord,omitempty"`
}

func (ImageData) Capability() SensorCapability { return CapabilityImage }

type MagnetometerData struct {
	Mx float64 `json:"mx"`
	My float64 `json:"my"`
	Mz float64 `json:"mz"`
}

func (MagnetometerData) Capability() SensorCapability { return CapabilityMagnetometer }

type OrientationData struct {
	W  float64 `json:"w"`
	Qx float64 `json:"qx"`
	Qy float64 `json:"qy"`
	Qz float64 `json:"qz"`
}

func (OrientationData) Capability() SensorCapability { return CapabilityOrientation }

type PersonData struct {
	PersonProb float64 `json:"personProb"`
}

func (PersonData) Capability() SensorCapability { return CapabilityPerson }

type PowerData struct {
	BatteryVoltage        ElectricPotential `json:"batteryVoltage"`
	BatteryCurrent        ElectricCurrent   `json:"batteryCurrent"`
	SolarVoltage          ElectricPotential `json:"solarVoltage"`
	SolarCurrent          ElectricCurrent   `json:"solarCurrent"`
	LoadVoltage           ElectricPotential `json:"loadVoltage"`
	LoadCurrent           ElectricCurrent   `json:"loadCurrent"`
	SOC                   float64           `json:"soc"`
	BatteryTemp           Temperature       `json:"batteryTemp"`
	ControllerTemp        Temperature       `json:"controllerTemp"`
	BatteryStatus         string            `json:"batteryStatus"`
	ChargingVoltageStatus string            `json:"chargingVoltageStatus"`
	ChargingStatus        string            `json:"chargingStatus"`
	LoadVoltageStatus     string            `json:"loadVoltageStatus"`
	LoadStatus            string            `json:"loadStatus"`
}

func (PowerData) Capability() SensorCapability { return CapabilityPower }

type SmokeData struct {
	SmokeProb float64 `json:"smokeProb"`
}

func (SmokeData) Capability() SensorCapability { return CapabilitySmoke }

type ThermometerData struct {
	Temperature Temperature `json:"temperature"`
}

func (ThermometerData) Capability() SensorCapability { return CapabilityThermometer }

type ValveData struct {
	ValveOpen       bool `json:"valveOpen"`
	ExternalLightOn bool `json:"externalLightOn"`
	InternalLightOn bool `json:"internalLightOn"`
}

func (ValveData) Capability() SensorCapability { return CapabilityValve }

type VocData struct {
	TVOC int32 `json:"tvoc"`
	ECO2 int32 `json:"e_co2"`
}

func (VocData) Capability() SensorCapability { return CapabilityVOC }

// UnmarshalJSON accepts the uppercase "TVOC"/"eCO2" aliases required by
// spec.md §4.1 in addition to the canonical "tvoc"/"e_co2" properties.
func (v *VocData) UnmarshalJSON(b []byte) error {
	type alias VocData
	var a alias
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	var upper struct {
		TVOC *int32 `json:"TVOC"`
		ECO2 *int32 `json:"eCO2"`
	}
	if err := json.Unmarshal(b, &upper); err != nil {
		return err
	}
	if upper.TVOC != nil {
		a.TVOC = *upper.TVOC
	}
	if upper.ECO2 != nil {
		a.ECO2 = *upper.ECO2
	}
	*v = VocData(a)
	return nil
}
