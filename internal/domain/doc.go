// Package domain contains the core entities of the medication safety engine:
// schedules, medications, times of day, and the result types produced by
// validation, conflict detection, and interaction aggregation.
//
// All types in this package are value objects owned by the caller. The engine
// never mutates them; every operation returns newly constructed results.
package domain
