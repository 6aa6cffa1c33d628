// Package source provides the paged data sources a host screen loads from.
//
// Sources are offset/limit based and know nothing about pagination state:
// the host turns OnLoadNext arguments into a Query, appends what comes back,
// and reports the new total to the controller. A source that has run dry
// simply returns no items, which the controller reads as exhaustion.
package source
