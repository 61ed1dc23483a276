// Package export writes a run's tables to disk.
//
// The long CSV is the one file other implementations of the pipeline read,
// so its layout is fixed: header ppa.LongFields, ISO calendar dates,
// shortest round-trip float formatting, an empty field for a missing
// price, LF line endings and no byte-order mark. The same input always
// produces the same bytes.
//
// The summary workbook and the markdown report are for people and carry no
// compatibility promise.
package export
