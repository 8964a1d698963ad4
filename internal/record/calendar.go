package record

// Tick arithmetic uses 100ns units counted from 0001-01-01T00:00:00 in the
// proleptic Gregorian calendar.
const (
	TicksPerMillisecond int64 = 10_000
	TicksPerSecond            = TicksPerMillisecond * 1000
	TicksPerMinute            = TicksPerSecond * 60
	TicksPerHour              = TicksPerMinute * 60
	TicksPerDay               = TicksPerHour * 24
)

// Days elapsed before the first of each month, indexed by month-1. The 13th
// entry is the length of the year.
var (
	daysToMonth365 = [13]int{0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334, 365}
	daysToMonth366 = [13]int{0, 31, 60, 91, 121, 152, 182, 213, 244, 274, 305, 335, 366}
)

func IsLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func daysToMonth(year int) *[13]int {
	if IsLeap(year) {
		return &daysToMonth366
	}
	return &daysToMonth365
}

// DayOfYear returns the 1-based ordinal of the date within its year.
// month must be in [1, 12].
func DayOfYear(year, month, day int) int {
	return daysToMonth(year)[month-1] + day
}

// DaysSinceEpoch returns the number of whole days between 0001-01-01 and the
// given date.
func DaysSinceEpoch(year, month, day int) int64 {
	y := int64(year - 1)
	return y*365 + y/4 - y/100 + y/400 + int64(DayOfYear(year, month, day)-1)
}

// Ticks converts a calendar date and time of day to ticks since the epoch.
// No date value is constructed; this runs twice per record.
func Ticks(year, month, day, hour, minute, second int) int64 {
	seconds := int64(hour)*3600 + int64(minute)*60 + int64(second)
	return DaysSinceEpoch(year, month, day)*TicksPerDay + seconds*TicksPerSecond
}
