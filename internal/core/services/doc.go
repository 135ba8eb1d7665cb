// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
//   - ItemService: add and remove board items for one project
//   - LabelSyncService: match a label event against the mapping table
//
// Services hold no state between calls.
package services
