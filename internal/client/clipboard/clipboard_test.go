package clipboard

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubClipboard(t *testing.T, isUnsupported bool, err error) *[]string {
	t.Helper()
	oldWrite, oldUnsupported := writeAll, unsupported
	t.Cleanup(func() { writeAll, unsupported = oldWrite, oldUnsupported })

	var written []string
	writeAll = func(text string) error {
		if err != nil {
			return err
		}
		written = append(written, text)
		return nil
	}
	unsupported = func() bool { return isUnsupported }
	return &written
}

func TestSystem_Copy(t *testing.T) {
	written := stubClipboard(t, false, nil)

	require.NoError(t, System{}.Copy("CARD-1"))
	assert.Equal(t, []string{"CARD-1"}, *written)
}

func TestSystem_CopyUnsupported(t *testing.T) {
	written := stubClipboard(t, true, nil)

	err := System{}.Copy("CARD-1")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Empty(t, *written)
}

func TestSystem_CopyWriteFails(t *testing.T) {
	stubClipboard(t, false, errors.New("xclip not found"))

	err := System{}.Copy("CARD-1")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Contains(t, err.Error(), "xclip not found")
}
