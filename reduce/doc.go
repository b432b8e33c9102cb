// Package reduce implements rank-based numerosity reduction: it shrinks a
// labelled time-series dataset while preserving 1-nearest-neighbour
// classification accuracy.
//
// A run goes through four ordered phases, each feeding the next:
//
//  1. Deduplicate - drop every series equal (values and class) to an
//     earlier one.
//  2. Graph - leave-one-out 1-NN search for every series; each edge
//     "x has y as nearest neighbour" puts x into y's reverse-neighbour set.
//  3. Rank - +1 for every reverse neighbour of the same class, −2 for every
//     other one; entries are inserted into an ascending ranked list by
//     lower-bound binary search.
//  4. Tie-break - every run of equal rank is re-scored by Σ 1/d² over the
//     reverse neighbours (d: the leave-one-out distance of that edge) and
//     re-inserted in that order, producing the priority sequence.
//
// Select then walks the phase-3 ranked list from the highest entry down
// (WithOrdering(OrderPriority) walks the tie-broken sequence instead),
// keeping every series whose class is outside the target range and keeping
// in-range series until the quota count − ⌊count·p/100⌋ is used up.
//
// Series ids are positions in the deduplicated dataset and never shift:
// leave-one-out searches use an exclusion id instead of removing and
// re-inserting series.
//
// Phase 2 dominates the cost (n searches of up to n candidates each); it can
// run on several workers (WithWorkers). Results are gathered by id, so the
// graph, and everything downstream, is identical to a serial run.
package reduce
