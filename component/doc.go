// Package component defines the lifecycle contract shared by the
// long-running pieces of the eventsource toolkit (the reconnecting
// client, the broadcast hub) and a registry that starts and stops them
// in dependency order.
package component
