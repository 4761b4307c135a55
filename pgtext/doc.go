// Package pgtext parses and encodes the PostgreSQL text formats for dates, times, intervals, money, arrays, records
// and hstore values.
//
// Every function in this package is pure. Settings that depend on the server, such as the DateStyle or the decimal
// point used for money output, are passed in as arguments.
//
// Date and time values are returned as time.Time. Values outside of the representable range (dates before Christ,
// years with more than four digits, and the infinity sentinels) are clamped to MinDate or MaxDate, and MinTimestamp
// or MaxTimestamp respectively.
//
// Intervals are returned as time.Duration. Years and months are converted to days using 365 days per year and 30
// days per month. This is not calendar accurate.
package pgtext
