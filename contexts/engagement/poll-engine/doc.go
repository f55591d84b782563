// Package pollengine implements the live poll engine inside the
// engagement context.
//
// The module owns poll lifecycle (create/read), the vote transaction
// (anonymous identity resolution, duplicate detection, atomic tally
// mutation), insight derivation, and realtime update publication. It keeps
// business rules in application/domain layers and isolates infrastructure
// concerns behind ports and adapters.
package pollengine
