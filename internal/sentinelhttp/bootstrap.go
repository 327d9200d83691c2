package sentinelhttp

import (
	"context"

	"github.com/racelabs/sentinel-connector/internal/sentinel"
)

// Bootstrap implements the algorithm of spec.md §4.2: enumerate devices,
// create a Sentinel per device (named from info or "unknown"), enumerate
// its sensors, and for every (sensor, capability) pair fetch the last
// maxHistory records and merge-insert them into the matching capability
// sequence.
func Bootstrap(ctx context.Context, c *Client, maxHistory int) (*sentinel.Store, error) {
	store := sentinel.NewStore()

	deviceList, err := c.ListDevices(ctx)
	if err != nil {
		return nil, err
	}

	for _, dev := range deviceList.Devices() {
		name := "unknown"
		if dev.Info != nil && *dev.Info != "" {
			name = *dev.Info
		}
		deviceID := sentinel.DeviceId(dev.ID)
		sen := sentinel.NewSentinel(deviceID, name)

		sensorList, err := c.ListSensors(ctx, deviceID)
		if err != nil {
			return nil, err
		}
		for _, sd := range sensorList.Sensors() {
			for _, capability := range sd.Capabilities {
				if err := fetchAndInsert(ctx, c, sen, sd.No, capability, maxHistory); err != nil {
					return nil, err
				}
			}
		}

		store.Insert(deviceID, sen)
	}

	return store, nil
}

// fetchAndInsert is the 16-way compile-time capability dispatch spec.md §9
// calls out as equivalent to a switch, a function-pointer table, or
// codegen; a switch is the idiomatic Go realization since Go methods
// cannot introduce their own type parameters.
func fetchAndInsert(ctx context.Context, c *Client, sen *sentinel.Sentinel, sensorNo uint32, capability sentinel.SensorCapability, maxHistory int) error {
	switch capability {
	case sentinel.CapabilityAccelerometer:
		recs, err := FetchRecords[sentinel.AccelerometerData](ctx, c, sen.DeviceID, sensorNo, maxHistory)
		if err != nil {
			return err
		}
		for _, r := range recs {
			sen.InsertAccelerometer(r, maxHistory)
		}
	case sentinel.CapabilityAnemometer:
		recs, err := FetchRecords[sentinel.AnemometerData](ctx, c, sen.DeviceID, sensorNo, maxHistory)
		if err != nil {
			return err
		}
		for _, r := range recs {
			sen.InsertAnemometer(r, maxHistory)
		}
	case sentinel.CapabilityCloudcover:
		recs, err := FetchRecords[sentinel.CloudcoverData](ctx, c, sen.DeviceID, sensorNo, maxHistory)
		if err != nil {
			return err
		}
		for _, r := range recs {
			sen.InsertCloudcover(r, maxHistory)
		}
	case sentinel.CapabilityFire:
		recs, err := FetchRecords[sentinel.FireData](ctx, c, sen.DeviceID, sensorNo, maxHistory)
		if err != nil {
			return err
		}
		for _, r := range recs {
			sen.InsertFire(r, maxHistory)
		}
	case sentinel.CapabilityGas:
		recs, err := FetchRecords[sentinel.GasData](ctx, c, sen.DeviceID, sensorNo, maxHistory)
		if err != nil {
			return err
		}
		for _, r := range recs {
			sen.InsertGas(r, maxHistory)
		}
	case sentinel.CapabilityGPS:
		recs, err := FetchRecords[sentinel.GpsData](ctx, c, sen.DeviceID, sensorNo, maxHistory)
		if err != nil {
			return err
		}
		for _, r := range recs {
			sen.InsertGPS(r, maxHistory)
		}
	case sentinel.CapabilityGyroscope:
		recs, err := FetchRecords[sentinel.GyroscopeData](ctx, c, sen.DeviceID, sensorNo, maxHistory)
		if err != nil {
			return err
		}
		for _, r := range recs {
			sen.InsertGyroscope(r, maxHistory)
		}
	case sentinel.CapabilityImage:
		recs, err := FetchRecords[sentinel.ImageData](ctx, c, sen.DeviceID, sensorNo, maxHistory)
		if err != nil {
			return err
		}
		for _, r := range recs {
			sen.InsertImage(r, maxHistory)
		}
	case sentinel.CapabilityMagnetometer:
		recs, err := FetchRecords[sentinel.MagnetometerData](ctx, c, sen.DeviceID, sensorNo, maxHistory)
		if err != nil {
			return err
		}
		for _, r := range recs {
			sen.InsertMagnetometer(r, maxHistory)
		}
	case sentinel.CapabilityOrientation:
		recs, err := FetchRecords[sentinel.OrientationData](ctx, c, sen.DeviceID, sensorNo, maxHistory)
		if err != nil {
			return err
		}
		for _, r := range recs {
			sen.InsertOrientation(r, maxHistory)
		}
	case sentinel.CapabilityPerson:
		recs, err := FetchRecords[sentinel.PersonData](ctx, c, sen.DeviceID, sensorNo, maxHistory)
		if err != nil {
			return err
		}
		for _, r := range recs {
			sen.InsertPerson(r, maxHistory)
		}
	case sentinel.CapabilityPower:
		recs, err := FetchRecords[sentinel.PowerData](ctx, c, sen.DeviceID, sensorNo, maxHistory)
		if err != nil {
			return err
		}
		for _, r := range recs {
			sen.InsertPower(r, maxHistory)
		}
	case sentinel.CapabilitySmoke:
		recs, err := FetchRecords[sentinel.SmokeData](ctx, c, sen.DeviceID, sensorNo, maxHistory)
		if err != nil {
			return err
		}
		for _, r := range recs {
			sen.InsertSmoke(r, maxHistory)
		}
	case sentinel.CapabilityThermometer:
		recs, err := FetchRecords[sentinel.ThermometerData](ctx, c, sen.DeviceID, sensorNo, maxHistory)
		if err != nil {
			return err
		}
		for _, r := range recs {
			sen.InsertThermometer(r, maxHistory)
		}
	case sentinel.CapabilityValve:
		recs, err := FetchRecords[sentinel.ValveData](ctx, c, sen.DeviceID, sensorNo, maxHistory)
		if err != nil {
			return err
		}
		for _, r := range recs {
			sen.InsertValve(r, maxHistory)
		}
	case sentinel.CapabilityVOC:
		recs, err := FetchRecords[sentinel.VocData](ctx, c, sen.DeviceID, sensorNo, maxHistory)
		if err != nil {
			return err
		}
		for _, r := range recs {
			sen.InsertVOC(r, maxHistory)
		}
	}
	return nil
}
