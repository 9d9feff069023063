// Package metaindex writes per-version metadata sidecars next to the archives
// of a (possibly sharded) mirror, using a line-delimited JSON index as the
// source of truth.
//
// An index is a directory tree of files named after packages. Each line of a
// package file is a JSON object describing one version, with the version
// string in the "vers" field:
//
//	index/se/rd/serde:
//	  {"name":"serde","vers":"1.0.0","deps":[],"cksum":"..."}
//	  {"name":"serde","vers":"1.0.1","deps":[],"cksum":"..."}
//
// For every record the Indexer looks up "<package>-<vers>.<ext>" in the
// mirror through a Locator and writes the record, re-indented, to
// "<package>-<vers>.metadata.json" in the same directory as the archive.
//
// Two locators are provided. IndexLocator walks the mirror once and answers
// lookups from a filename map; WalkLocator walks the mirror afresh for every
// lookup. Both return the first match in lexical walk order.
//
// Archive filenames follow the grammar
//
//	archive = name "-" version ext
//	version = DIGIT *CHAR
//	ext     = one of the configured extensions, e.g. ".crate"
//
// Since names and versions may both contain "-", a filename can parse more
// than one way; ParseArchiveName reports every reading rather than picking one.
package metaindex
