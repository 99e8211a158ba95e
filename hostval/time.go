// --------------------------------------------------------------------------------
// Author: Thomas F McGeehan V
//
// This file is part of a software project developed by Thomas F McGeehan V.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//
// For more information about the MIT License, please visit:
// https://opensource.org/licenses/MIT
//
// Acknowledgment appreciated but not required.
// --------------------------------------------------------------------------------

package hostval

import (
	"fmt"
	"time"

	"github.com/arrowarc/arrowarc/pqerr"
	"github.com/arrowarc/arrowarc/schema"
	"github.com/arrowarc/arrowarc/value"
)

const epochDay = 24 * time.Hour

// isoLayouts are tried in order for a best-effort ISO-8601 parse when the
// schema carries no explicit format.
var isoLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseHostTime extracts a time.Time from hv, using n.Format if set,
// otherwise a best-effort ISO-8601 parse. Parsing failure is a fatal
// per-row Conversion error.
func parseHostTime(path string, hv any, format string) (time.Time, error) {
	switch t := hv.(type) {
	case time.Time:
		return t, nil
	case string:
		if format != "" {
			parsed, err := time.Parse(format, t)
			if err != nil {
				return time.Time{}, pqerr.Wrap(pqerr.Conversion, "to_value", path, err).WithValue(t)
			}
			return parsed, nil
		}
		var lastErr error
		for _, layout := range isoLayouts {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed, nil
			} else {
				lastErr = err
			}
		}
		return time.Time{}, pqerr.Wrap(pqerr.Conversion, "to_value", path, lastErr).WithValue(t)
	default:
		return time.Time{}, convErr(path, fmt.Sprint(hv))
	}
}

// ToDate32 accepts a time.Time, a string, or an int32 already expressing
// days since the Unix epoch.
func (c *Converter) ToDate32(path string, hv any, n schema.Node) (value.Value, error) {
	if days, ok := hv.(int32); ok {
		return value.Date32(days), nil
	}
	t, err := parseHostTime(path, hv, n.Format)
	if err != nil {
		return value.Value{}, err
	}
	days := int32(t.UTC().Truncate(epochDay).Unix() / int64(epochDay/time.Second))
	return value.Date32(days), nil
}

// ToDate64 accepts a time.Time, a string, or an int64 already expressing
// milliseconds since the epoch at midnight.
func (c *Converter) ToDate64(path string, hv any, n schema.Node) (value.Value, error) {
	if ms, ok := hv.(int64); ok {
		return value.Date64(ms), nil
	}
	t, err := parseHostTime(path, hv, n.Format)
	if err != nil {
		return value.Value{}, err
	}
	midnight := t.UTC().Truncate(epochDay)
	return value.Date64(midnight.UnixMilli()), nil
}

// ToTimeMillis/ToTimeMicros accept a time.Time (time-of-day components
// only), a string, or a pre-computed integer offset from midnight.
func (c *Converter) ToTimeMillis(path string, hv any, n schema.Node) (value.Value, error) {
	if ms, ok := hv.(int32); ok {
		return value.TimeMillis(ms), nil
	}
	t, err := parseHostTime(path, hv, n.Format)
	if err != nil {
		return value.Value{}, err
	}
	midnight := t.Truncate(epochDay)
	ms := int32(t.Sub(midnight).Milliseconds())
	return value.TimeMillis(ms), nil
}

func (c *Converter) ToTimeMicros(path string, hv any, n schema.Node) (value.Value, error) {
	if us, ok := hv.(int64); ok {
		return value.TimeMicros(us), nil
	}
	t, err := parseHostTime(path, hv, n.Format)
	if err != nil {
		return value.Value{}, err
	}
	midnight := t.Truncate(epochDay)
	us := t.Sub(midnight).Microseconds()
	return value.TimeMicros(us), nil
}

// ToTimestamp handles TimestampSecond/Millis/Micros/Nanos uniformly. The
// produced Value always carries the schema's is_adjusted_to_utc: if
// the schema is UTC-adjusted and the host value carries a zone, the value
// is normalized to UTC and the original offset is discarded; if the schema
// is naive, the host value's local wall-clock components are stored
// as-is, with no zone conversion.
func (c *Converter) ToTimestamp(path string, hv any, n schema.Node) (value.Value, error) {
	if epoch, ok := asEpochInt(hv); ok {
		return makeTimestamp(n.Primitive, epoch, n.IsAdjustedToUTC), nil
	}

	t, err := parseHostTime(path, hv, n.Format)
	if err != nil {
		return value.Value{}, err
	}

	var instant time.Time
	if n.IsAdjustedToUTC {
		instant = t.UTC()
	} else {
		// Naive: keep the wall-clock components the host expressed,
		// dropping any zone info by reinterpreting them as UTC so the
		// stored integer reflects the same Y/M/D h:m:s.
		instant = time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
	}

	epoch := epochFromTime(n.Primitive, instant)
	return makeTimestamp(n.Primitive, epoch, n.IsAdjustedToUTC), nil
}

func asEpochInt(hv any) (int64, bool) {
	switch v := hv.(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	default:
		return 0, false
	}
}

func epochFromTime(unit schema.PrimitiveType, t time.Time) int64 {
	switch unit {
	case schema.TimestampSecond:
		return t.Unix()
	case schema.TimestampMillis:
		return t.UnixMilli()
	case schema.TimestampMicros:
		return t.UnixMicro()
	case schema.TimestampNanos:
		return t.UnixNano()
	default:
		return 0
	}
}

func makeTimestamp(unit schema.PrimitiveType, epoch int64, utc bool) value.Value {
	switch unit {
	case schema.TimestampSecond:
		return value.TimestampSecond(epoch, utc)
	case schema.TimestampMillis:
		return value.TimestampMillis(epoch, utc)
	case schema.TimestampMicros:
		return value.TimestampMicros(epoch, utc)
	default:
		return value.TimestampNanos(epoch, utc)
	}
}

// DateFromDays reconstructs a time.Time (UTC midnight) from a Date32's
// days-since-epoch payload, for the Value -> Host direction.
func DateFromDays(days int32) time.Time {
	return time.Unix(int64(days)*int64(epochDay/time.Second), 0).UTC()
}

// DateFromMillis reconstructs a time.Time (UTC midnight) from a Date64's
// milliseconds-since-epoch payload.
func DateFromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

// TimeFromTimestamp reconstructs a time.Time for the Value -> Host
// direction: UTC-adjusted timestamps return a UTC instant; naive
// timestamps return the same wall-clock components with no zone, modeled
// as UTC for representability.
func TimeFromTimestamp(unit schema.PrimitiveType, epoch int64) time.Time {
	switch unit {
	case schema.TimestampSecond:
		return time.Unix(epoch, 0).UTC()
	case schema.TimestampMillis:
		return time.UnixMilli(epoch).UTC()
	case schema.TimestampMicros:
		return time.UnixMicro(epoch).UTC()
	default:
		return time.Unix(0, epoch).UTC()
	}
}
