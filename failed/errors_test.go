package failed

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatWithCode(t *testing.T) {
	err := New(NewMissingField{Position: Position{Line: 3, Column: 5}, Node: "ref", Field: "lifetime"})
	assert.Equal(t, MissingField, err.Code())
	assert.Equal(t, "(E007) 3:5: ref node is missing 'lifetime'", FormatWithCode(err))

	unknown := New(NewUnknownNode{Keys: []string{"foo", "bar"}})
	assert.Equal(t, "(E001) ?: unknown node with keys foo, bar", FormatWithCode(unknown))
}

func TestFormatWithStack(t *testing.T) {
	DebugErrorPrinting = true
	defer func() { DebugErrorPrinting = false }()

	err := New(NewMissingField{Position: Position{Line: 3, Column: 5}, Node: "ref", Field: "lifetime"})
	formatted := FormatWithCode(err)
	assert.Contains(t, formatted, "errors_test.go:")
	assert.True(t, strings.HasSuffix(formatted, ":(E007) 3:5: ref node is missing 'lifetime'"), formatted)

	var missing NewMissingField
	assert.True(t, errors.As(err, &missing))
	assert.NotEmpty(t, missing.stack)
}

func TestErrorsAs(t *testing.T) {
	var wrapped error = fmt.Errorf("in fixture: %w", New(NewArityMismatch{Params: 2, Args: 1}))

	var coded Error
	assert.True(t, errors.As(wrapped, &coded))
	assert.Equal(t, ArityMismatch, coded.Code())

	var arity NewArityMismatch
	assert.True(t, errors.As(wrapped, &arity))
	assert.Equal(t, 2, arity.Params)
}

func TestLogValue(t *testing.T) {
	value := LogValue(New(NewKindMismatch{Position: Position{Line: 1, Column: 2}, Index: 0, Expected: "type", Found: "lifetime"}))
	assert.Equal(t, slog.KindGroup, value.Kind())

	attrs := map[string]string{}
	for _, attr := range value.Group() {
		attrs[attr.Key] = attr.Value.String()
	}
	assert.Equal(t, map[string]string{
		"code": "5",
		"at":   "1:2",
		"msg":  "argument 0 is a lifetime, but parameter 0 is a type",
	}, attrs)
}
