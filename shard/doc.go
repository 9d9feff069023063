// Package shard sorts a flat directory of archive files into a two-level
// bucket hierarchy keyed on the leading characters of each filename.
//
// The first level is the uppercased first letter (A-Z), "0-9" for names that
// start with a digit, or "OTHER". The second level narrows letters by the
// second character in chunks of GroupSize (AA-AD, AE-AH, ..., AY-AZ), splits
// digits into the bands 0-2, 3-5 and 6-9, and keeps a single OTHER bucket:
//
//	mirror/
//	  S/SE-SH/serde-1.0.0.crate
//	  0-9/6-9/7z-1.0.tar
//	  OTHER/OTHER/_private-0.1.0.crate
//
// Classify is pure and total over any string. Provision creates every bucket
// directory up front, and Relocate moves the top-level files of a base
// directory into their buckets on a bounded worker pool, or tallies where they
// would land when run as a simulation.
package shard
