package sentinel

// SentinelUpdate is the single non-generic envelope carrying any one of the
// 16 SensorRecord[T] shapes for fan-out through update_callbacks. At most
// one field is non-nil at a time (spec.md §3, §9).
type SentinelUpdate struct {
	Accelerometer *SensorRecord[AccelerometerData]
	Anemometer    *SensorRecord[AnemometerData]
	Cloudcover    *SensorRecord[CloudcoverData]
	Fire          *SensorRecord[FireData]
	Gas           *SensorRecord[GasData]
	GPS           *SensorRecord[GpsData]
	Gyroscope     *SensorRecord[GyroscopeData]
	Image         *SensorRecord[ImageData]
	Magnetometer  *SensorRecord[MagnetometerData]
	Orientation   *SensorRecord[OrientationData]
	Person        *SensorRecord[PersonData]
	Power         *SensorRecord[PowerData]
	Smoke         *SensorRecord[SmokeData]
	Thermometer   *SensorRecord[ThermometerData]
	Valve         *SensorRecord[ValveData]
	VOC           *SensorRecord[VocData]
}

// Capability reports which payload this update carries.
func (u *SentinelUpdate) Capability() SensorCapability {
	switch {
	case u.Accelerometer != nil:
		return CapabilityAccelerometer
	case u.Anemometer != nil:
		return CapabilityAnemometer
	case u.Cloudcover != nil:
		return CapabilityCloudcover
	case u.Fire != nil:
		return CapabilityFire
	case u.Gas != nil:
		return CapabilityGas
	case u.GPS != nil:
		return CapabilityGPS
	case u.Gyroscope != nil:
		return CapabilityGyroscope
	case u.Image != nil:
		return CapabilityImage
	case u.Magnetometer != nil:
		return CapabilityMagnetometer
	case u.Orientation != nil:
		return CapabilityOrientation
	case u.Person != nil:
		return CapabilityPerson
	case u.Power != nil:
		return CapabilityPower
	case u.Smoke != nil:
		return CapabilitySmoke
	case u.Thermometer != nil:
		return CapabilityThermometer
	case u.Valve != nil:
		return CapabilityValve
	case u.VOC != nil:
		return CapabilityVOC
	default:
		return -1
	}
}

func NewSentinelUpdateAccelerometer(rec SensorRecord[AccelerometerData]) *SentinelUpdate {
	return &SentinelUpdate{Accelerometer: &rec}
}

func NewSentinelUpdateAnemometer(rec SensorRecord[AnemometerData]) *SentinelUpdate {
	return &SentinelUpdate{Anemometer: &rec}
}

func NewSentinelUpdateCloudcover(rec SensorRecord[CloudcoverData]) *SentinelUpdate {
	return &SentinelUpdate{Cloudcover: &rec}
}

func NewSentinelUpdateFire(rec SensorRecord[FireData]) *SentinelUpdate {
	return &SentinelUpdate{Fire: &rec}
}

func NewSentinelUpdateGas(rec SensorRecord[GasData]) *SentinelUpdate {
	return &SentinelUpdate{Gas: &rec}
}

func NewSentinelUpdateGPS(rec SensorRecord[GpsData]) *SentinelUpdate {
	return &SentinelUpdate{GPS: &rec}
}

func NewSentinelUpdateGyroscope(rec SensorRecord[GyroscopeData]) *SentinelUpdate {
	return &SentinelUpdate{Gyroscope: &rec}
}

func NewSentinelUpdateImage(rec SensorRecord[ImageData]) *SentinelUpdate {
	return &SentinelUpdate{Image: &rec}
}

func NewSentinelUpdateMagnetometer(rec SensorRecord[MagnetometerData]) *SentinelUpdate {
	return &SentinelUpdate{Magnetometer: &rec}
}

func NewSentinelUpdateOrientation(rec SensorRecord[OrientationData]) *SentinelUpdate {
	return &SentinelUpdate{Orientation: &rec}
}

func NewSentinelUpdatePerson(rec SensorRecord[PersonData]) *SentinelUpdate {
	return &SentinelUpdate{Person: &rec}
}

func NewSentinelUpdatePower(rec SensorRecord[PowerData]) *SentinelUpdate {
	return &SentinelUpdate{Power: &rec}
}

func NewSentinelUpdateSmoke(rec SensorRecord[SmokeData]) *SentinelUpdate {
	return &SentinelUpdate{Smoke: &rec}
}

func NewSentinelUpdateThermometer(rec SensorRecord[ThermometerData]) *SentinelUpdate {
	return &SentinelUpdate{Thermometer: &rec}
}

func NewSentinelUpdateValve(rec SensorRecord[ValveData]) *SentinelUpdate {
	return &SentinelUpdate{Valve: &rec}
}

func NewSentinelUpdateVOC(rec SensorRecord[VocData]) *SentinelUpdate {
	return &SentinelUpdate{VOC: &rec}
}
