// Package events defines the engine events emitted on the event bus.
//
// Available event types:
//   - ObservationSubmitted: staged targets assembled into an observation
//   - TargetStaged: a target row added to the staging area
//   - TargetDeleted: a staged target row cleared
//   - BlocksExpired: scheduling block retention pass completed
package events
