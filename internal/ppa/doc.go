// Package ppa holds the record types shared by every stage of the solar
// power-purchase-agreement pipeline: the wide rows read from the source
// workbook, the long rows produced by the reshape, and the error conditions
// that stop a run.
//
// Data flows one way:
//
//	RawTable → Reshape → LongTable → Normalize → LongTable → Aggregate
//
// Every stage returns a new table and leaves its input untouched.
package ppa
