// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package grpc

import (
	"github.com/shamaton/msgpack"
	"google.golang.org/grpc/encoding"
)

// CodecName is the content subtype clients select with
// grpc.CallContentSubtype to talk to the VSync service.
const CodecName = "msgpack"

// msgpackCodec carries the VSync messages as MessagePack instead of protobuf,
// the same encoding used for parcel payloads.
type msgpackCodec struct{}

func (msgpackCodec) Marshal(v any) ([]byte, error) {
	return msgpack.Encode(v)
}

func (msgpackCodec) Unmarshal(data []byte, v any) error {
	return msgpack.Decode(data, v)
}

func (msgpackCodec) Name() string {
	return CodecName
}

func init() {
	encoding.RegisterCodec(msgpackCodec{})
}
