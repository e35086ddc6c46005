// SPDX-License-Identifier: EPL-2.0

package session

import "fmt"

// DeviceType is the direction of an endpoint.
type DeviceType int

const (
	Output DeviceType = iota
	Input
)

func (t DeviceType) String() string {
	switch t {
	case Output:
		return "output"
	case Input:
		return "input"
	default:
		return fmt.Sprintf("devicetype(%d)", int(t))
	}
}

// Device is an immutable snapshot of one endpoint taken by the device
// thread. It may be copied freely and passed between goroutines.
type Device struct {
	ID        string
	Name      string
	Type      DeviceType
	IsDefault bool

	// Format is the shared-mode format the device will be opened with.
	Format Format

	api    Api
	handle any
}

// newDevice builds a Device, rejecting a format the engine cannot use.
func newDevice(api Api, id, name string, typ DeviceType, isDefault bool,
	f Format, handle any) (Device, error) {

	if err := f.Validate(); err != nil {
		return Device{}, fmt.Errorf("device %q: %w", name, err)
	}
	return Device{
		ID:        id,
		Name:      name,
		Type:      typ,
		IsDefault: isDefault,
		Format:    f,
		api:       api,
		handle:    handle,
	}, nil
}

// Api returns the backend the device was enumerated by.
func (d Device) Api() Api { return d.api }

func (d Device) String() string {
	return fmt.Sprintf("%s %s %q (%s)", d.api, d.Type, d.Name, d.Format)
}

// deviceState is the cached result of one enumeration.
type deviceState struct {
	defaultOutput *Device
	defaultInput  *Device
	all           []Device
}

func (s *deviceState) defaultFor(typ DeviceType) (Device, error) {
	var d *Device
	switch typ {
	case Output:
		d = s.defaultOutput
	case Input:
		d = s.defaultInput
	}
	if d == nil {
		return Device{}, noDefaultDevice(typ)
	}
	return *d, nil
}
