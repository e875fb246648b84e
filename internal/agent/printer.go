package agent

import (
	"fmt"
	"os"

	"fulfillment/internal/pkg/errs"
)

// Printer writes a label payload to a physical printer.
type Printer interface {
	Print(job Job) error
}

// DevicePrinter writes raw ZPL to a character device, typically the
// /dev/usb/lp0 node a USB label printer exposes. The printer firmware
// interprets the stream, so no driver is involved.
type DevicePrinter struct {
	devicePath string
}

// NewDevicePrinter creates a printer over the given device node.
func NewDevicePrinter(devicePath string) (*DevicePrinter, error) {
	if devicePath == "" {
		return nil, errs.NewValueIsRequiredError("device path")
	}
	return &DevicePrinter{devicePath: devicePath}, nil
}

// Print sends the label to the device. Only ZPL payloads are accepted;
// anything else would print as garbage on a thermal label printer.
func (p *DevicePrinter) Print(job Job) error {
	if job.LabelFormat != "zpl" {
		return fmt.Errorf("unsupported label format %q for job %s", job.LabelFormat, job.JobID)
	}
	if len(job.LabelData) == 0 {
		return fmt.Errorf("empty label payload for job %s", job.JobID)
	}

	device, err := os.OpenFile(p.devicePath, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("open printer device %s: %w", p.devicePath, err)
	}
	defer device.Close()

	if _, err = device.Write(job.LabelData); err != nil {
		return fmt.Errorf("write label to %s: %w", p.devicePath, err)
	}

	return nil
}
