package report

// FlatTable is the exporter-facing row set: a header plus untyped cells that
// are either strings or plain decimals. Currency and locale formatting is the
// exporter's job, never done here.
type FlatTable struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}
