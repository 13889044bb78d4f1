package lockbox

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/iov-one/lockbox/errors"
)

// UnixTime is a point in time with second precision, stored as the number
// of seconds since the unix epoch. Lock timestamps use it so that block
// time and user provided expiry compare without any rounding.
type UnixTime int64

// AsUnixTime drops the sub second part of the given time.
func AsUnixTime(t time.Time) UnixTime {
	return UnixTime(t.Unix())
}

// Time returns the value as a UTC time.Time.
func (t UnixTime) Time() time.Time {
	return time.Unix(int64(t), 0).UTC()
}

// Add returns the time shifted by d, truncated to full seconds.
func (t UnixTime) Add(d time.Duration) UnixTime {
	return t + UnixTime(d/time.Second)
}

// Sub returns the duration t-u.
func (t UnixTime) Sub(u UnixTime) UnixDuration {
	return UnixDuration(t - u)
}

// Validate returns an error for a time before the epoch.
func (t UnixTime) Validate() error {
	if t < 0 {
		return errors.Wrap(errors.ErrState, "negative time")
	}
	return nil
}

func (t UnixTime) String() string {
	return t.Time().Format(time.RFC3339)
}

// UnmarshalJSON accepts both a number of seconds and an RFC3339 string.
func (t *UnixTime) UnmarshalJSON(raw []byte) error {
	var unix int64
	if err := json.Unmarshal(raw, &unix); err == nil {
		*t = UnixTime(unix)
		return t.Validate()
	}
	var stdtime time.Time
	if err := json.Unmarshal(raw, &stdtime); err != nil {
		return errors.Wrap(errors.ErrInput, "invalid time format")
	}
	*t = AsUnixTime(stdtime)
	return t.Validate()
}

// UnixDuration is a length of time in seconds.
type UnixDuration int64

// AsUnixDuration truncates d to full seconds.
func AsUnixDuration(d time.Duration) UnixDuration {
	return UnixDuration(d / time.Second)
}

// Duration returns the value as a time.Duration.
func (d UnixDuration) Duration() time.Duration {
	return time.Duration(d) * time.Second
}

func (d UnixDuration) String() string {
	return d.Duration().String()
}

// MarshalJSON encodes the duration as a number of seconds.
func (d UnixDuration) MarshalJSON() ([]byte, error) {
	return json.Marshal(int64(d))
}

// UnmarshalJSON accepts a number of seconds or a string as understood by
// time.ParseDuration, for example "72h".
func (d *UnixDuration) UnmarshalJSON(raw []byte) error {
	var secs int64
	if err := json.Unmarshal(raw, &secs); err == nil {
		*d = UnixDuration(secs)
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return errors.Wrap(errors.ErrInput, "invalid duration format")
	}
	dur, err := time.ParseDuration(s)
	if err != nil {
		return errors.Wrap(errors.ErrInput, fmt.Sprintf("duration %q: %s", s, err))
	}
	*d = AsUnixDuration(dur)
	return nil
}
