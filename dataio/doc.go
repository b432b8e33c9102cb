// Package dataio reads and writes labelled time-series datasets.
//
// Two formats are supported:
//
//   - UCR text files: one series per line, the class label first and the
//     values after it, separated by commas (.csv) or tabs (.tsv). Class
//     labels are assigned indices in order of first appearance.
//   - A SQLite store (modernc.org/sqlite, no cgo) holding any number of
//     named datasets. Values are stored as little-endian float64 blobs, so a
//     round trip is exact.
//
// Non-finite values are rejected on both paths.
package dataio
