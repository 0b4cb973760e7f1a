// Package events provides types and interfaces for safety alert delivery.
//
// This package defines alert event types and handler interfaces that allow for
// loose coupling between the safety engine and notification channels. The
// engine emits alerts without knowing which handlers will process them,
// enabling delivery integrations (push, SMS, emergency contact) to be added
// without touching assessment code.
//
// The primary components are:
// - AlertEvent: Represents a safety escalation requiring attention
// - AlertHandler: Interface for components that can handle alerts
// - AlertEmitter: Interface for components that can emit alerts
package events
