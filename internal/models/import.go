package models

// StatementFailure records one statement that the engine rejected during
// an import, with the engine's message untouched.
type StatementFailure struct {
	Index     int    `json:"index"`
	Statement string `json:"statement"`
	Error     string `json:"error"`
}

type ImportReport struct {
	Succeeded int                `json:"succeeded"`
	Failed    int                `json:"failed"`
	Failures  []StatementFailure `json:"failures,omitempty"`
}
