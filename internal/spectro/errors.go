package spectro

import "errors"

// Acquisition-class failures raised by capture collaborators. All are
// retryable without reinitializing the pipeline; none is fatal to the
// process. The host surfaces them for user messaging and retry.
var (
	// ErrAcquisitionDenied means permission to capture was refused.
	ErrAcquisitionDenied = errors.New("spectro: capture permission denied")

	// ErrDeviceUnavailable means the capture device is missing or was
	// disconnected; retry with a different device selection.
	ErrDeviceUnavailable = errors.New("spectro: capture device unavailable")

	// ErrDeviceBusy means another consumer holds the capture resource.
	ErrDeviceBusy = errors.New("spectro: capture device busy")
)
