// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package grpc

import "github.com/MKhiriev/go-compositor/models"

// CreateConnectionRequest asks for a new VSync connection owned by the
// caller's pid.
type CreateConnectionRequest struct {
	Name string `msgpack:"name"`
}

type CreateConnectionReply struct {
	ConnectionID models.ConnectionID `msgpack:"connection_id"`
}

// ReceiveRequest opens the event stream of a connection.
type ReceiveRequest struct {
	ConnectionID models.ConnectionID `msgpack:"connection_id"`
}
