package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/arthur-debert/toolbars/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToolbarsError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *errors.ToolbarsError
		want string
	}{
		{
			name: "plain",
			err:  errors.New(errors.ErrMissingTarget, "item Play targets unknown toolbar"),
			want: "[MISSING_TARGET] item Play targets unknown toolbar",
		},
		{
			name: "formatted",
			err:  errors.Newf(errors.ErrItemConflict, "%s replaces %s", "Play", "Stop"),
			want: "[ITEM_CONFLICT] Play replaces Stop",
		},
		{
			name: "wrapped",
			err:  errors.Wrap(fmt.Errorf("no such file"), errors.ErrManifestLoad, "failed to load manifest"),
			want: "[MANIFEST_LOAD] failed to load manifest: no such file",
		},
		{
			name: "wrapped formatted",
			err:  errors.Wrapf(fmt.Errorf("bad key"), errors.ErrConfigParse, "line %d", 3),
			want: "[CONFIG_PARSE] line 3: bad key",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestWrap_Nil(t *testing.T) {
	assert.Nil(t, errors.Wrap(nil, errors.ErrInternal, "unused"))
	assert.Nil(t, errors.Wrapf(nil, errors.ErrInternal, "unused %d", 1))
}

func TestToolbarsError_IsAndUnwrap(t *testing.T) {
	cause := fmt.Errorf("permission denied")
	err := errors.Wrap(cause, errors.ErrManifestLoad, "cannot read")

	assert.True(t, stderrors.Is(err, cause))
	assert.True(t, stderrors.Is(err, errors.New(errors.ErrManifestLoad, "other message")))
	assert.False(t, stderrors.Is(err, errors.New(errors.ErrManifestParse, "cannot read")))

	outer := fmt.Errorf("build: %w", err)
	var tbErr *errors.ToolbarsError
	require.True(t, stderrors.As(outer, &tbErr))
	assert.Equal(t, errors.ErrManifestLoad, tbErr.Code)
}

func TestDetails(t *testing.T) {
	err := errors.New(errors.ErrItemConflict, "slot taken").
		WithDetail("toolbar", "main").
		WithDetails(map[string]interface{}{"kept": "Play", "discarded": "Stop"})

	assert.Equal(t, map[string]interface{}{
		"toolbar":   "main",
		"kept":      "Play",
		"discarded": "Stop",
	}, errors.GetErrorDetails(err))

	bare := &errors.ToolbarsError{Code: errors.ErrInternal}
	bare.WithDetail("k", 1)
	assert.Equal(t, 1, bare.Details["k"])

	assert.Nil(t, errors.GetErrorDetails(fmt.Errorf("plain")))
}

func TestErrorCodes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code errors.ErrorCode
	}{
		{"direct", errors.New(errors.ErrNotFound, "x"), errors.ErrNotFound},
		{"wrapped by fmt", fmt.Errorf("ctx: %w", errors.New(errors.ErrOutputWrite, "x")), errors.ErrOutputWrite},
		{"foreign", fmt.Errorf("plain"), errors.ErrUnknown},
		{"nil", nil, errors.ErrUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, errors.GetErrorCode(tt.err))
			if tt.code != errors.ErrUnknown {
				assert.True(t, errors.IsErrorCode(tt.err, tt.code))
			}
			assert.False(t, errors.IsErrorCode(tt.err, errors.ErrAlreadyExists))
		})
	}
}
