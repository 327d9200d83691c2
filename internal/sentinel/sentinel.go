package sentinel

import "time"

// Sentinel is the per-device aggregate: a display name, the last-update
// timestamp, and one bounded, newest-first sequence per capability. Not
// safe for concurrent use — per spec.md §5, all mutation happens inside
// the connector's single-consumer mailbox.
type Sentinel struct {
	DeviceID   DeviceId   `json:"deviceId"`
	DeviceName string     `json:"deviceName"`
	LastUpdate *time.Time `json:"date"`

	Accelerometer []SensorRecord[AccelerometerData] `json:"accel"`
	Anemometer    []SensorRecord[AnemometerData]    `json:"anemo"`
	Cloudcover    []SensorRecord[CloudcoverData]    `json:"cloudcover"`
	Fire          []SensorRecord[FireData]          `json:"fire"`
	Gas           []SensorRecord[GasData]           `json:"gas"`
	GPS           []SensorRecord[GpsData]           `json:"gps"`
	Gyroscope     []SensorRecord[GyroscopeData]     `json:"gyro"`
	Image         []SensorRecord[ImageData]         `json:"image"`
	Magnetometer  []SensorRecord[MagnetometerData]  `json:"mag"`
	Orientation   []SensorRecord[OrientationData]   `json:"orientation"`
	Person        []SensorRecord[PersonData]        `json:"person"`
	Power         []SensorRecord[PowerData]         `json:"power"`
	Smoke         []SensorRecord[SmokeData]         `json:"smoke"`
	Thermometer   []SensorRecord[ThermometerData]   `json:"thermo"`
	Valve         []SensorRecord[ValveData]         `json:"valve"`
	VOC           []SensorRecord[VocData]           `json:"voc"`
}

// NewSentinel creates an empty per-device aggregate.
func NewSentinel(deviceID DeviceId, deviceName string) *Sentinel {
	return &Sentinel{DeviceID: deviceID, DeviceName: deviceName}
}

func (s *Sentinel) touch(t time.Time) {
	if s.LastUpdate == nil || t.After(*s.LastUpdate) {
		s.LastUpdate = &t
	}
}

// SortInRecord inserts rec into seq (kept newest-first) at the first
// position i such that rec.TimeRecorded is strictly after seq[i]'s, per
// spec.md §4.3. Ties keep the existing record first (stable). The result
// is trimmed to maxHistory; if rec would land at or past the bound and the
// sequence is already full, it is discarded rather than evicting a newer
// record.
func SortInRecord[T RecordData](seq []SensorRecord[T], rec SensorRecord[T], maxHistory int) []SensorRecord[T] {
	i := 0
	for i < len(seq) && !rec.TimeRecorded.After(seq[i].TimeRecorded) {
		i++
	}
	if i == len(seq) {
		if len(seq) >= maxHistory {
			return seq
		}
		return append(seq, rec)
	}

	seq = append(seq, rec)
	copy(seq[i+1:], seq[i:len(seq)-1])
	seq[i] = rec
	if len(seq) > maxHistory {
		seq = seq[:maxHistory]
	}
	return seq
}

func (s *Sentinel) InsertAccelerometer(rec SensorRecord[AccelerometerData], maxHistory int) {
	s.Accelerometer = SortInRecord(s.Accelerometer, rec, maxHistory)
	s.touch(rec.TimeRecorded)
}

func (s *Sentinel) InsertAnemometer(rec SensorRecord[AnemometerData], maxHistory int) {
	s.Anemometer = SortInRecord(s.Anemometer, rec, maxHistory)
	s.touch(rec.TimeRecorded)
}

func (s *Sentinel) InsertCloudcover(rec SensorRecord[CloudcoverData], maxHistory int) {
	s.Cloudcover = SortInRecord(s.Cloudcover, rec, maxHistory)
	s.touch(rec.TimeRecorded)
}

func (s *Sentinel) InsertFire(rec SensorRecord[FireData], maxHistory int) {
	s.Fire = SortInRecord(s.Fire, rec, maxHistory)
	s.touch(rec.TimeRecorded)
}

func (s *Sentinel) InsertGas(rec SensorRecord[GasData], maxHistory int) {
	s.Gas = SortInRecord(s.Gas, rec, maxHistory)
	s.touch(rec.TimeRecorded)
}

func (s *Sentinel) InsertGPS(rec SensorRecord[GpsData], maxHistory int) {
	s.GPS = SortInRecord(s.GPS, rec, maxHistory)
	s.touch(rec.TimeRecorded)
}

func (s *Sentinel) InsertGyroscope(rec SensorRecord[GyroscopeData], maxHistory int) {
	s.Gyroscope = SortInRecord(s.Gyroscope, rec, maxHistory)
	s.touch(rec.TimeRecorded)
}

func (s *Sentinel) InsertImage(rec SensorRecord[ImageData], maxHistory int) {
	s.Image = SortInRecord(s.Image, rec, maxHistory)
	s.touch(rec.TimeRecorded)
}

func (s *Sentinel) InsertMagnetometer(rec SensorRecord[MagnetometerData], maxHistory int) {
	s.Magnetometer = SortInRecord(s.Magnetometer, rec, maxHistory)
	s.touch(rec.TimeRecorded)
}

func (s *Sentinel) InsertOrientation(rec SensorRecord[OrientationData], maxHistory int) {
	s.Orientation = SortInRecord(s.Orientation, rec, maxHistory)
	s.touch(rec.TimeRecorded)
}

func (s *Sentinel) InsertPerson(rec SensorRecord[PersonData], maxHistory int) {
	s.Person = SortInRecord(s.Person, rec, maxHistory)
	s.touch(rec.TimeRecorded)
}

func (s *Sentinel) InsertPower(rec SensorRecord[PowerData], maxHistory int) {
	s.Power = SortInRecord(s.Power, rec, maxHistory)
	s.touch(rec.TimeRecorded)
}

func (s *Sentinel) InsertSmoke(rec SensorRecord[SmokeData], maxHistory int) {
	s.Smoke = SortInRecord(s.Smoke, rec, maxHistory)
	s.touch(rec.TimeRecorded)
}

func (s *Sentinel) InsertThermometer(rec SensorRecord[ThermometerData], maxHistory int) {
	s.Thermometer = SortInRecord(s.Thermometer, rec, maxHistory)
	s.touch(rec.TimeRecorded)
}

func (s *Sentinel) InsertValve(rec SensorRecord[ValveData], maxHistory int) {
	s.Valve = SortInRecord(s.Valve, rec, maxHistory)
	s.touch(rec.TimeRecorded)
}

func (s *Sentinel) InsertVOC(rec SensorRecord[VocData], maxHistory int) {
	s.VOC = SortInRecord(s.VOC, rec, maxHistory)
	s.touch(rec.TimeRecorded)
}
