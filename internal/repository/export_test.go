package repository

var (
	NullableInt64   = nullableInt64
	NullableFloat64 = nullableFloat64
	NullableString  = nullableString
	Int64Ptr        = int64Ptr
	StringPtr       = stringPtr
	FormatTime      = formatTime
	ParseTime       = parseTime
)
