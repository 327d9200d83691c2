package sentinelhttp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/racelabs/sentinel-connector/internal/sentinel"
)

// ListDevices performs GET {base}/devices.
func (c *Client) ListDevices(ctx context.Context) (*sentinel.DeviceList, error) {
	body, err := c.get(ctx, "/devices", "")
	if err != nil {
		return nil, err
	}
	var list sentinel.DeviceList
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, sentinel.New(sentinel.KindJSON, err)
	}
	return &list, nil
}

// ListSensors performs GET {base}/devices/{id}/sensors.
func (c *Client) ListSensors(ctx context.Context, deviceID sentinel.DeviceId) (*sentinel.SensorList, error) {
	path := fmt.Sprintf("/devices/%s/sensors", url.PathEscape(string(deviceID)))
	body, err := c.get(ctx, path, "")
	if err != nil {
		return nil, err
	}
	var list sentinel.SensorList
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, sentinel.New(sentinel.KindJSON, err)
	}
	return &list, nil
}

// FetchRecords performs GET
// {base}/devices/{id}/sensors/{no}/{capability}?sort=timeRecorded,DESC&limit={N}
// for the capability T is bound to.
func FetchRecords[T sentinel.RecordData](ctx context.Context, c *Client, deviceID sentinel.DeviceId, sensorNo uint32, limit int) ([]sentinel.SensorRecord[T], error) {
	var zero T
	path := fmt.Sprintf("/devices/%s/sensors/%d/%s", url.PathEscape(string(deviceID)), sensorNo, zero.Capability())
	query := url.Values{"sort": {"timeRecorded,DESC"}, "limit": {strconv.Itoa(limit)}}.Encode()

	body, err := c.get(ctx, path, query)
	if err != nil {
		return nil, err
	}
	var list sentinel.RecordList[T]
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, sentinel.New(sentinel.KindJSON, err)
	}
	return list.Records(), nil
}

// FetchLatest wraps FetchRecords with limit=1 and maps an empty result to
// NoDataError, per spec.md §4.2/§4.5.
func FetchLatest[T sentinel.RecordData](ctx context.Context, c *Client, deviceID sentinel.DeviceId, sensorNo uint32) (sentinel.SensorRecord[T], error) {
	recs, err := FetchRecords[T](ctx, c, deviceID, sensorNo, 1)
	if err != nil {
		return sentinel.SensorRecord[T]{}, err
	}
	if len(recs) == 0 {
		var zero T
		return sentinel.SensorRecord[T]{}, sentinel.NoData(
			fmt.Sprintf("no records for device %s sensor %d capability %s", deviceID, sensorNo, zero.Capability()))
	}
	return recs[0], nil
}
