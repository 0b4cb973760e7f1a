// Package mocks provides mock implementations of service interfaces for
// testing. Mocks track calls for verification and allow per-test behavior
// overrides through Fn fields.
package mocks
