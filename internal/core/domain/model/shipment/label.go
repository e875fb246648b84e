package shipment

import "bytes"

// LabelFormat identifies the wire format of a label payload.
type LabelFormat string

const (
	// LabelFormatZPL is raw ZPL II printer bytes.
	LabelFormatZPL LabelFormat = "zpl"

	// LabelFormatPDF is a PDF document.
	LabelFormatPDF LabelFormat = "pdf"

	// LabelFormatUnknown is anything the sniffer cannot identify.
	LabelFormatUnknown LabelFormat = "unknown"
)

// DetectLabelFormat sniffs the label payload. ZPL streams start with the
// ^XA command and end with ^XZ; PDF files start with the %PDF- magic.
func DetectLabelFormat(payload []byte) LabelFormat {
	trimmed := bytes.TrimSpace(payload)

	switch {
	case bytes.HasPrefix(trimmed, []byte("^XA")) && bytes.Contains(trimmed, []byte("^XZ")):
		return LabelFormatZPL
	case bytes.HasPrefix(trimmed, []byte("%PDF-")):
		return LabelFormatPDF
	default:
		return LabelFormatUnknown
	}
}

// Label is a purchased shipping label: the raw payload to print plus the
// tracking data issued with it.
type Label struct {
	Payload        []byte
	TrackingNumber string
	TrackingURL    string
}
