// Package cache provides a byte-budget LRU shared by the block-caching blob
// store and the decoded icon cache.
//
// Every entry is charged its size against the LRU capacity and, when a
// resource.Controller is set, against the process-wide memory budget. If the
// controller refuses a reservation the value is simply not cached.
package cache
