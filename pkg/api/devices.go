package api

import (
	"context"
	"time"
)

// Service is a containerized workload running on a device.
type Service struct {
	ID   int    `json:"id"`
	Name string `json:"serviceName"`
}

// Device is a cloud-registered device.
type Device struct {
	UUID     string    `json:"uuid"`
	Name     string    `json:"deviceName"`
	Type     string    `json:"deviceType"`
	Online   bool      `json:"isOnline"`
	LastSeen time.Time `json:"lastSeen,omitempty"`
	Services []Service `json:"services,omitempty"`
}

// ServiceName resolves a numeric service ID against the device's service
// list, returning the empty string when unknown.
func (d Device) ServiceName(id int) string {
	for _, s := range d.Services {
		if s.ID == id {
			return s.Name
		}
	}
	return ""
}

// Devices lists the devices visible to the current user.
func (c *Client) Devices(ctx context.Context) ([]Device, error) {
	var devices []Device
	if err := c.get(ctx, "/v1/devices", nil, &devices); err != nil {
		return nil, err
	}
	return devices, nil
}

// Device fetches a single device by UUID.
func (c *Client) Device(ctx context.Context, deviceUUID string) (Device, error) {
	var device Device
	if err := c.get(ctx, "/v1/devices/"+deviceUUID, nil, &device); err != nil {
		return Device{}, err
	}
	return device, nil
}

// User identifies the owner of the auth token.
type User struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

// WhoAmI reports the user the stored token belongs to.
func (c *Client) WhoAmI(ctx context.Context) (User, error) {
	var user User
	if err := c.get(ctx, "/v1/whoami", nil, &user); err != nil {
		return User{}, err
	}
	return user, nil
}
