// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - HostDocument: The viewer-side document that displays committed ink
//   - AnnotationStore: Per-(user, document) annotation persistence
//   - Codec: Serialization to and from the AXF interchange format
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - CatalogStore: SQLite-backed listing index. Without it, listings
//     fall back to scanning the annotations directory.
//   - Migrator: Legacy-JSON to AXF migration.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
