package connector

import (
	"context"

	"github.com/racelabs/sentinel-connector/internal/sentinel"
	"github.com/racelabs/sentinel-connector/internal/sentinelhttp"
)

// fetchAndPostRecord implements spec.md §4.5 step 3b: given a WebSocket
// record notification, fetch the single latest record over REST and post
// it back to the mailbox as the matching recordMsg[T]. Mirrors the closed
// capability switch already used by sentinelhttp.Bootstrap — per spec.md
// §9 this dispatch may be a switch, function-pointer table, or codegen.
func (c *Connector) fetchAndPostRecord(ctx context.Context, deviceID sentinel.DeviceId, sensorNo uint32, capability sentinel.SensorCapability) {
	switch capability {
	case sentinel.CapabilityAccelerometer:
		fetchAndPost[sentinel.AccelerometerData](ctx, c, deviceID, sensorNo)
	case sentinel.CapabilityAnemometer:
		fetchAndPost[sentinel.AnemometerData](ctx, c, deviceID, sensorNo)
	case sentinel.CapabilityCloudcover:
		fetchAndPost[sentinel.CloudcoverData](ctx, c, deviceID, sensorNo)
	case sentinel.CapabilityFire:
		fetchAndPost[sentinel.FireData](ctx, c, deviceID, sensorNo)
	case sentinel.CapabilityGas:
		fetchAndPost[sentinel.GasData](ctx, c, deviceID, sensorNo)
	case sentinel.CapabilityGPS:
		fetchAndPost[sentinel.GpsData](ctx, c, deviceID, sensorNo)
	case sentinel.CapabilityGyroscope:
		fetchAndPost[sentinel.GyroscopeData](ctx, c, deviceID, sensorNo)
	case sentinel.CapabilityImage:
		fetchAndPost[sentinel.ImageData](ctx, c, deviceID, sensorNo)
	case sentinel.CapabilityMagnetometer:
		fetchAndPost[sentinel.MagnetometerData](ctx, c, deviceID, sensorNo)
	case sentinel.CapabilityOrientation:
		fetchAndPost[sentinel.OrientationData](ctx, c, deviceID, sensorNo)
	case sentinel.CapabilityPerson:
		fetchAndPost[sentinel.PersonData](ctx, c, deviceID, sensorNo)
	case sentinel.CapabilityPower:
		fetchAndPost[sentinel.PowerData](ctx, c, deviceID, sensorNo)
	case sentinel.CapabilitySmoke:
		fetchAndPost[sentinel.SmokeData](ctx, c, deviceID, sensorNo)
	case sentinel.CapabilityThermometer:
		fetchAndPost[sentinel.ThermometerData](ctx, c, deviceID, sensorNo)
	case sentinel.CapabilityValve:
		fetchAndPost[sentinel.ValveData](ctx, c, deviceID, sensorNo)
	case sentinel.CapabilityVOC:
		fetchAndPost[sentinel.VocData](ctx, c, deviceID, sensorNo)
	default:
		c.log.Warn().Str("capability", capability.String()).Msg("record notification for unrecognized capability")
	}
}

// fetchAndPost fetches the single latest record for T and posts it as a
// recordMsg[T]. An empty fetch (NoDataError) is swallowed with a warning,
// per spec.md §4.5; any other failure is reported via errMsg.
func fetchAndPost[T sentinel.RecordData](ctx context.Context, c *Connector, deviceID sentinel.DeviceId, sensorNo uint32) {
	rec, err := sentinelhttp.FetchLatest[T](ctx, c.httpClient, deviceID, sensorNo)
	if err != nil {
		if sentinel.Is(err, sentinel.KindNoData) {
			c.log.Warn().Err(err).Msg("empty record fetch for notified capability, dropping")
			c.metrics.droppedNoData.Add(1)
			return
		}
		c.post(errMsg{err: err})
		return
	}
	c.post(recordMsg[T]{rec: rec})
}
