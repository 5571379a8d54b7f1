package logger

// Standard field names for structured log entries.
const (
	FieldWorkbook  = "workbook"
	FieldSheet     = "sheet"
	FieldRow       = "row"
	FieldColumn    = "column"
	FieldType      = "type"
	FieldStage     = "stage"
	FieldFile      = "file"
	FieldPath      = "path"
	FieldCount     = "count"
	FieldError     = "error"
	FieldExtent    = "extent"
	FieldExtension = "extension"
)
