package ptr

import "time"

// String returns a pointer to the input value
func String(value string) *string {
	return &value
}

// Int32 returns a pointer to the input value
func Int32(value int32) *int32 {
	return &value
}

// Int64 returns a pointer to the input value
func Int64(value int64) *int64 {
	return &value
}

// Float64 returns a pointer to the input value
func Float64(value float64) *float64 {
	return &value
}

// Bool returns a pointer to the input value
func Bool(value bool) *bool {
	return &value
}

// Time returns a pointer to the input value
func Time(value time.Time) *time.Time {
	return &value
}
