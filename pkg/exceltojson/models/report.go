package models

// SheetResult describes what happened to one worksheet.
type SheetResult struct {
	// SheetName is the worksheet name.
	SheetName string `json:"sheet_name"`
	// JSONPath is the written data file (empty if none was written).
	JSONPath string `json:"json_path,omitempty"`
	// CodePath is the written source file (empty if none was written).
	CodePath string `json:"code_path,omitempty"`
	// Rows is the number of emitted data rows.
	Rows int `json:"rows"`
	// Skipped holds the reason the sheet was not converted.
	Skipped string `json:"skipped,omitempty"`
	// Err is the fatal error that stopped the sheet, if any.
	Err error `json:"-"`
}

// WorkbookReport holds the per-sheet results for one workbook file.
type WorkbookReport struct {
	// BookName is the workbook file name (no path).
	BookName string `json:"book_name"`
	// Sheets lists results in workbook sheet order.
	Sheets []SheetResult `json:"sheets"`
	// Err is set when the workbook could not be opened.
	Err error `json:"-"`
}

// Report is the outcome of a conversion run.
type Report struct {
	Workbooks []WorkbookReport `json:"workbooks"`
}

// Converted returns the number of sheets that produced output.
func (r *Report) Converted() int {
	n := 0
	for _, wb := range r.Workbooks {
		for _, s := range wb.Sheets {
			if s.Skipped == "" && s.Err == nil {
				n++
			}
		}
	}
	return n
}

// Failed returns the number of sheets, and unreadable workbooks, that
// stopped on an error.
func (r *Report) Failed() int {
	n := 0
	for _, wb := range r.Workbooks {
		if wb.Err != nil {
			n++
		}
		for _, s := range wb.Sheets {
			if s.Err != nil {
				n++
			}
		}
	}
	return n
}
