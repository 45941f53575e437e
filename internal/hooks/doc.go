// Package hooks is the typed extension-point mechanism of smartdocs. Observers
// register against typed event keys at startup and are invoked synchronously,
// in registration order, at well-defined points around every entity mutation.
//
//   - event.go: Event and AlterEvent keys, Observer and Alterer contracts.
//   - registry.go: Registry (register, lookup, seal, taps).
//   - dispatch.go: Dispatch (notification) and Alter (content chain).
//   - catalog.go: every lifecycle event key and its argument struct.
//   - recorder.go: Recorder and Feed taps for diagnostics and streaming.
//   - metrics.go: Prometheus instrumentation of dispatch.
//
// Two dispatch flavors exist. Dispatch passes the same argument value to every
// observer and stops at the first error, which is returned to the caller
// wrapped in *ObserverError. Alter threads a content buffer through the
// observers so that each one sees the previous one's output.
//
// Registration is expected to happen once during process initialization;
// call Registry.Seal afterwards to reject late registrations.
package hooks
