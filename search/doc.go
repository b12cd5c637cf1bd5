// Package search composes the query-side pipeline: route the query to a
// collection, derive a metadata filter from it, embed it, and run filtered
// similarity search.
//
// Every degradable stage fails soft. A query that cannot be routed searches
// the fallback collection; a filter that cannot be built searches
// unfiltered. The only hard errors are embedding and storage failures.
package search
