package pidfile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/seliv/sysvitals/internal/errors"
	"codeberg.org/seliv/sysvitals/internal/pidfile"
)

func TestWriteAndRemove(t *testing.T) {
	require.NoError(t, pidfile.Write())
	require.NoError(t, pidfile.Remove())
	// Removing an absent file is not an error.
	require.NoError(t, pidfile.Remove())
}

func TestWriteRefusesLiveInstance(t *testing.T) {
	require.NoError(t, pidfile.Write())
	t.Cleanup(func() { _ = pidfile.Remove() })

	// The file now names this test process, which is alive.
	err := pidfile.Write()
	require.Error(t, err)

	var appErr errors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, errors.ErrAlreadyRunning, appErr.Code())
}
