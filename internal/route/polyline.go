package route

import (
	"errors"
	"math"
	"strings"

	"github.com/triprec/trips-backend-go/internal/models"
)

// polyline implements the Google encoded polyline algorithm format at the
// standard 1e-5 degree precision. The collector decodes routes with the
// same scheme, so the output must match it exactly.

const polylinePrecision = 1e5

// ErrTruncatedPolyline is returned when the encoded string ends in the
// middle of a value
var ErrTruncatedPolyline = errors.New("polyline: truncated input")

// Encode converts an ordered coordinate sequence to its encoded polyline
// form. Coordinates are rounded to 5 decimal digits and delta-encoded
// against the previous point.
func Encode(coords []models.Coordinate) string {
	var sb strings.Builder
	var prevLat, prevLng int64

	for _, c := range coords {
		lat := roundE5(c.Lat)
		lng := roundE5(c.Lng)
		encodeValue(&sb, lat-prevLat)
		encodeValue(&sb, lng-prevLng)
		prevLat, prevLng = lat, lng
	}
	return sb.String()
}

// Decode parses an encoded polyline back into coordinates. For any string
// produced by Encode, Decode returns the rounded coordinate sequence and
// Encode(Decode(s)) == s.
func Decode(encoded string) ([]models.Coordinate, error) {
	var coords []models.Coordinate
	var lat, lng int64
	pos := 0

	for pos < len(encoded) {
		dLat, next, err := decodeValue(encoded, pos)
		if err != nil {
			return nil, err
		}
		dLng, after, err := decodeValue(encoded, next)
		if err != nil {
			return nil, err
		}
		lat += dLat
		lng += dLng
		coords = append(coords, models.Coordinate{
			Lat: float64(lat) / polylinePrecision,
			Lng: float64(lng) / polylinePrecision,
		})
		pos = after
	}
	return coords, nil
}

func roundE5(deg float64) int64 {
	return int64(math.Round(deg * polylinePrecision))
}

// encodeValue writes one signed delta: zig-zag to unsigned, then 5-bit
// groups from the least significant end, continuation bit on all but the
// last group, each offset by 63.
func encodeValue(sb *strings.Builder, v int64) {
	u := uint64(v) << 1
	if v < 0 {
		u = ^u
	}
	for u >= 0x20 {
		sb.WriteByte(byte(0x20|(u&0x1f)) + 63)
		u >>= 5
	}
	sb.WriteByte(byte(u) + 63)
}

func decodeValue(encoded string, pos int) (int64, int, error) {
	var u uint64
	var shift uint

	for {
		if pos >= len(encoded) {
			return 0, 0, ErrTruncatedPolyline
		}
		b := uint64(encoded[pos]) - 63
		pos++
		u |= (b & 0x1f) << shift
		if b < 0x20 {
			break
		}
		shift += 5
	}

	v := int64(u >> 1)
	if u&1 != 0 {
		v = ^v
	}
	return v, pos, nil
}
