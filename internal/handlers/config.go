// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import "net/http"

// ClientConfig serves the public client configuration. Only values meant
// for browser consumption belong here.
type ClientConfig struct {
	googleMapsAPIKey string
}

// NewClientConfig creates a new ClientConfig handler.
func NewClientConfig(googleMapsAPIKey string) *ClientConfig {
	return &ClientConfig{googleMapsAPIKey: googleMapsAPIKey}
}

// Get returns the client-facing configuration values.
func (h *ClientConfig) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"googleMapsApiKey": h.googleMapsAPIKey,
	})
}
