package agent_test

import (
	"os"
	"path/filepath"
	"testing"

	"fulfillment/internal/agent"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDevicePrinter_Print(t *testing.T) {
	zplJob := func(payload []byte) agent.Job {
		return agent.Job{
			JobID:       "job-1",
			OrderID:     "order-1",
			LabelData:   payload,
			LabelFormat: "zpl",
			Attempt:     1,
		}
	}

	t.Run("should write the raw payload to the device node", func(t *testing.T) {
		device := filepath.Join(t.TempDir(), "lp0")
		require.NoError(t, os.WriteFile(device, nil, 0o600))
		p, err := agent.NewDevicePrinter(device)
		require.NoError(t, err)

		require.NoError(t, p.Print(zplJob([]byte("^XA^FDTest^FS^XZ"))))

		written, err := os.ReadFile(device)
		require.NoError(t, err)
		assert.Equal(t, "^XA^FDTest^FS^XZ", string(written))
	})

	t.Run("should reject non-ZPL payloads", func(t *testing.T) {
		device := filepath.Join(t.TempDir(), "lp0")
		require.NoError(t, os.WriteFile(device, nil, 0o600))
		p, err := agent.NewDevicePrinter(device)
		require.NoError(t, err)

		job := zplJob([]byte("%PDF-1.4"))
		job.LabelFormat = "pdf"

		assert.Error(t, p.Print(job))
	})

	t.Run("should reject an empty payload", func(t *testing.T) {
		p, err := agent.NewDevicePrinter(filepath.Join(t.TempDir(), "lp0"))
		require.NoError(t, err)

		assert.Error(t, p.Print(zplJob(nil)))
	})

	t.Run("should fail when the device is missing", func(t *testing.T) {
		p, err := agent.NewDevicePrinter(filepath.Join(t.TempDir(), "missing"))
		require.NoError(t, err)

		assert.Error(t, p.Print(zplJob([]byte("^XA^XZ"))))
	})

	t.Run("should require a device path", func(t *testing.T) {
		_, err := agent.NewDevicePrinter("")
		assert.Error(t, err)
	})
}
