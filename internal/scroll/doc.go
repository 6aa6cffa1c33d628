// Package scroll detects when a list viewport has moved close enough to the
// end of the loaded content that the next page should be requested.
//
// The detector never touches pagination state directly. It holds a narrow
// Target that answers whether a load is in flight and whether more data may
// exist, and receives the near-end signal.
package scroll
