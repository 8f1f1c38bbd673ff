// Package catalog ingests the raw Steam games dataset and produces the
// canonical analysis table.
//
// The raw file is semi-structured JSON: one record per game, keyed by app id
// (or, in some exports, a bare array), with fields of inconsistent shape and
// type. Nothing in a record can be assumed present or correctly typed. The
// loader tolerates all of it: fields that fail to coerce become missing values
// and are imputed in a single column-level pass, never dropped rows. The row
// count of the canonical table always equals the number of raw records.
//
// Known data-quality gap carried over from the source: negative prices pass
// through the loader unvalidated. Range policing is left to downstream
// filters.
package catalog
