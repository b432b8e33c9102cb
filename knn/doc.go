// Package knn finds nearest neighbours of a query series inside a Dataset.
//
// Two searchers share one API:
//
//   - DTWSearch builds an LB_Keogh envelope of the query once, bounds every
//     candidate with it, and pays for banded DTW only when the bound is
//     strictly below the best exact distance found so far. Exact
//     evaluations are also abandoned early against that best distance.
//   - LinearSearch evaluates any distance.Func on every candidate; it serves
//     distance functions for which no lower bound is available.
//
// KNearest semantics (kept deliberately):
//
//	The searcher tracks a single best distance. A strictly smaller distance
//	resets the result to that one series; an equal distance appends to it.
//	The result therefore holds every series tied for the best distance, no
//	matter which k was requested; Distances reports that best distance once
//	per returned neighbour. In DTWSearch a tie is only discovered when its
//	lower bound is strictly below the best distance; LinearSearch never
//	prunes and finds every tie.
//
// KBest is the true k-nearest variant: a bounded max-heap of the k smallest
// distances drives pruning and the result keeps every candidate tied with
// the k-th distance.
//
// Searchers keep the distances of their last search and are therefore not
// safe for concurrent use; create one per goroutine.
//
// Errors (sentinel):
//
//	ErrEmptyDataset         - the searcher was built without a dataset.
//	ErrInvalidConfiguration - DTWSearch with a non-DTW distance function.
//	ErrNoDistanceComputed   - Distances called before any search.
//	ErrBadK                 - k < 1.
//	ErrBadID                - LeaveOneOut id outside the dataset.
package knn
