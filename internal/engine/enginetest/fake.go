// Package enginetest provides a scripted in-memory engine for unit tests.
package enginetest

import (
	"context"
	"strings"
	"sync"

	"sqlbench/internal/engine"
	"sqlbench/internal/models"
)

type rule struct {
	matches []string
	result  *engine.Result
	err     error
}

func (r rule) matched(sql string) bool {
	for _, m := range r.matches {
		if !strings.Contains(sql, m) {
			return false
		}
	}
	return true
}

// Fake answers statements from scripted rules, first match wins. A rule
// matches when the statement contains all of its substrings. Statements
// with no matching rule succeed with an empty result, so tests only script
// what they assert on. Every statement seen is recorded in order.
type Fake struct {
	mu      sync.Mutex
	rules   []rule
	calls   []string
	PingErr error
}

func NewFake() *Fake {
	return &Fake{}
}

// On scripts a result for statements containing every given substring.
func (f *Fake) On(result *engine.Result, matches ...string) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rules = append(f.rules, rule{matches: matches, result: result})
	return f
}

// Fail scripts an error for statements containing every given substring.
func (f *Fake) Fail(err error, matches ...string) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rules = append(f.rules, rule{matches: matches, err: err})
	return f
}

// Reset drops all scripted rules. Recorded calls are kept.
func (f *Fake) Reset() *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rules = nil
	return f
}

// Calls returns a copy of every statement executed so far, in order.
func (f *Fake) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	copy(out, f.calls)
	return out
}

// CallsContaining returns the recorded statements containing substr.
func (f *Fake) CallsContaining(substr string) []string {
	var out []string
	for _, c := range f.Calls() {
		if strings.Contains(c, substr) {
			out = append(out, c)
		}
	}
	return out
}

func (f *Fake) Query(_ context.Context, sql string) (*engine.Result, error) {
	res, err := f.dispatch(sql)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return &engine.Result{}, nil
	}
	return res, nil
}

func (f *Fake) Execute(_ context.Context, sql string) (int64, error) {
	res, err := f.dispatch(sql)
	if err != nil {
		return 0, err
	}
	if res == nil {
		return 0, nil
	}
	return res.RowsAffected, nil
}

func (f *Fake) Ping(context.Context) error {
	return f.PingErr
}

func (f *Fake) dispatch(sql string) (*engine.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, sql)
	for _, r := range f.rules {
		if r.matched(sql) {
			return r.result, r.err
		}
	}
	return nil, nil
}

// Result builds an engine.Result from column names and rows.
func Result(columns []string, rows ...[]any) *engine.Result {
	fields := make([]models.Field, len(columns))
	for i, c := range columns {
		fields[i] = models.Field{Name: c}
	}
	return &engine.Result{Fields: fields, Rows: rows}
}
