package renderer

import (
	"errors"
	"fmt"
)

var (
	// ErrDeviceCreation classifies failures to create the GPU device or any resource that
	// lives for the whole run. These are fatal at startup.
	ErrDeviceCreation = errors.New("renderer: device creation failed")

	// ErrResourceUpload classifies per-frame buffer creation and upload failures.
	// The frame is skipped and rendering continues.
	ErrResourceUpload = errors.New("renderer: resource upload failed")
)

// DeviceError reports which startup step failed.
type DeviceError struct {
	Op  string
	Err error
}

func (e *DeviceError) Error() string {
	return fmt.Sprintf("renderer: %s: %v", e.Op, e.Err)
}

func (e *DeviceError) Unwrap() error { return e.Err }

// Is reports ErrDeviceCreation as a match so callers can branch on the class alone.
func (e *DeviceError) Is(target error) bool { return target == ErrDeviceCreation }

// UploadError reports a failed per-frame upload.
type UploadError struct {
	Resource string
	Size     int
	Err      error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("renderer: upload %s (%d bytes): %v", e.Resource, e.Size, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

// Is reports ErrResourceUpload as a match so callers can branch on the class alone.
func (e *UploadError) Is(target error) bool { return target == ErrResourceUpload }

func deviceErr(op string, err error) error {
	if err == nil {
		err = errors.New("nil result")
	}
	return &DeviceError{Op: op, Err: err}
}

func uploadErr(resource string, size int, err error) error {
	return &UploadError{Resource: resource, Size: size, Err: err}
}
