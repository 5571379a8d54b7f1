// Package parser reads workbooks into raw cell grids.
//
// It is the only package that talks to excelize. Everything downstream sees
// models.Grid values addressed by absolute 1-based row and column.
package parser

// WorkbookExt is the file extension of workbooks picked up from a directory.
const WorkbookExt = ".xlsx"

// lockFilePrefix marks the owner files Office leaves next to open workbooks.
const lockFilePrefix = "~$"
