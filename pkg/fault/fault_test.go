package fault

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"gitlab.com/tozd/go/errors"
)

func TestKindOf(t *testing.T) {
	_, statErr := os.Stat(filepath.Join(t.TempDir(), "missing.xlsx"))

	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{name: "nil", err: nil, want: KindUnknown},
		{name: "plain_error", err: errors.New("boom"), want: KindUnknown},
		{name: "configuration", err: Configuration("folder is empty"), want: KindConfiguration},
		{name: "not_found", err: NotFound("sheet %q", "Test Case"), want: KindNotFound},
		{name: "format", err: Format("row %d", 7), want: KindFormat},
		{name: "io", err: IO("saving"), want: KindIO},
		{name: "wrapped_kind", err: errors.Errorf("staging: %w", Format("bad")), want: KindFormat},
		{name: "missing_file", err: statErr, want: KindNotFound},
		{name: "wrap_helper", err: Wrap(KindIO, errors.New("disk full")), want: KindIO},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err), "kind should match")
		})
	}
}

func TestErrorMessage(t *testing.T) {
	err := NotFound("file not found: %s", "a.xlsx")
	assert.Equal(t, "file not found: a.xlsx", err.Error(), "message should not include the kind")
	assert.True(t, Is(err, KindNotFound), "Is should match the kind")
	assert.False(t, Is(err, KindIO), "Is should not match another kind")
	assert.Nil(t, Wrap(KindIO, nil), "wrapping nil should stay nil")
	assert.Equal(t, "not_found", KindNotFound.String(), "kind string should match")
}
