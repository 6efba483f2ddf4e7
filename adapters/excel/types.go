package excel

// Kind is the upload format recognised from the file extension
type Kind string

const (
	KindCSV  Kind = "csv"
	KindTSV  Kind = "tsv"
	KindText Kind = "txt"
	KindXLSX Kind = "xlsx"
)

// Table is a grid of cells as read from a file, header row first
type Table struct {
	Sheet string
	Rows  [][]string
}
