// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package vsync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-compositor/internal/logger"
	"github.com/MKhiriev/go-compositor/models"
	"github.com/shamaton/msgpack"
)

// InterfaceDescriptor must prefix every parcel addressed to a connection.
const InterfaceDescriptor = "compositor.IVSyncConnection"

// Code is a remote operation code.
type Code uint32

const (
	CodeRequestNextVSync Code = iota + 1
	CodeGetReceiveFd
	CodeSetVSyncRate
	CodeGetVSyncPeriod
	CodeSetVSyncRefreshRate
)

// ReplyCode is the status carried back in a [Reply].
type ReplyCode int32

const (
	ReplyOK ReplyCode = iota
	ReplyInvalidArguments
	ReplyInvalidOperating
	ReplyInvalidState
	ReplyNoPermission
	ReplyNotFound
	ReplyInternal
)

func (c ReplyCode) String() string {
	switch c {
	case ReplyOK:
		return "ok"
	case ReplyInvalidArguments:
		return "invalid arguments"
	case ReplyInvalidOperating:
		return "invalid operating"
	case ReplyInvalidState:
		return "invalid state"
	case ReplyNoPermission:
		return "no permission"
	case ReplyNotFound:
		return "not found"
	}
	return "internal error"
}

// Request is one remote call on a connection.
type Request struct {
	Descriptor   string              `msgpack:"descriptor"`
	ConnectionID models.ConnectionID `msgpack:"connection_id"`
	Code         Code                `msgpack:"code"`
	Payload      []byte              `msgpack:"payload"`
}

// Reply is the outcome of a [Request].
type Reply struct {
	Code    ReplyCode `msgpack:"code"`
	Payload []byte    `msgpack:"payload"`
}

// SetRateArgs is the payload of CodeSetVSyncRate.
type SetRateArgs struct {
	Rate        int32 `msgpack:"rate"`
	AutoTrigger bool  `msgpack:"auto_trigger"`
}

// RefreshRateArgs is the payload of CodeSetVSyncRefreshRate.
type RefreshRateArgs struct {
	RefreshRate uint32 `msgpack:"refresh_rate"`
}

// PeriodReply is the payload returned by CodeGetVSyncPeriod.
type PeriodReply struct {
	Period int64 `msgpack:"period"`
}

// ReceiveFdReply is the payload returned by CodeGetReceiveFd: the id to
// open the Receive stream with.
type ReceiveFdReply struct {
	ConnectionID models.ConnectionID `msgpack:"connection_id"`
}

// EncodePayload encodes an argument or reply struct.
func EncodePayload(v any) ([]byte, error) {
	return msgpack.Encode(v)
}

// DecodePayload decodes an argument or reply struct.
func DecodePayload(data []byte, v any) error {
	return msgpack.Decode(data, v)
}

// RateController is the part of the timing source the stub drives.
type RateController interface {
	Period() time.Duration
	SetRefreshRate(refreshRate uint32) error
}

type operation struct {
	capability models.Capability
	handle     func(s *Stub, conn *Connection, payload []byte) Reply
}

// operations maps each code to the capability required to invoke it. The
// check happens once in Dispatch, before the handler runs.
var operations = map[Code]operation{
	CodeRequestNextVSync:    {capability: models.CapVSync, handle: (*Stub).requestNextVSync},
	CodeGetReceiveFd:        {capability: models.CapVSync, handle: (*Stub).getReceiveFd},
	CodeSetVSyncRate:        {capability: models.CapVSync, handle: (*Stub).setVSyncRate},
	CodeGetVSyncPeriod:      {capability: models.CapVSync, handle: (*Stub).getVSyncPeriod},
	CodeSetVSyncRefreshRate: {capability: models.CapVSyncAdmin, handle: (*Stub).setVSyncRefreshRate},
}

// RequiredCapability returns the capability code needs, if the code exists.
func RequiredCapability(code Code) (models.Capability, bool) {
	op, ok := operations[code]
	return op.capability, ok
}

// Stub is the server side of the connection protocol.
type Stub struct {
	distributor *Distributor
	rates       RateController
	logger      *logger.Logger
}

func NewStub(distributor *Distributor, rates RateController, log *logger.Logger) *Stub {
	return &Stub{
		distributor: distributor,
		rates:       rates,
		logger:      log.Component("vsync-stub"),
	}
}

// Dispatch validates the descriptor, the opcode, the caller's capability and
// connection ownership, in that order, and only then runs the operation.
func (s *Stub) Dispatch(ctx context.Context, caller models.Caller, req Request) Reply {
	log := logger.FromContext(ctx)

	if req.Descriptor != InterfaceDescriptor {
		log.Warn().Str("descriptor", req.Descriptor).Uint32("code", uint32(req.Code)).
			Msg("interface descriptor mismatch")
		return Reply{Code: ReplyInvalidState}
	}

	op, ok := operations[req.Code]
	if !ok {
		log.Warn().Uint32("code", uint32(req.Code)).Msg("unknown vsync operation code")
		return Reply{Code: ReplyInvalidOperating}
	}

	if !caller.Has(op.capability) {
		log.Warn().Int32("pid", caller.Pid).Str("capability", string(op.capability)).
			Msg("caller lacks capability")
		return Reply{Code: ReplyNoPermission}
	}

	conn, ok := s.distributor.Connection(req.ConnectionID)
	if !ok {
		return Reply{Code: ReplyNotFound}
	}
	if conn.Pid() != caller.Pid {
		log.Warn().Int32("pid", caller.Pid).Int32("owner", conn.Pid()).
			Uint64("connection_id", uint64(conn.ID())).Msg("connection owned by another process")
		return Reply{Code: ReplyNoPermission}
	}

	return op.handle(s, conn, req.Payload)
}

func (s *Stub) requestNextVSync(conn *Connection, _ []byte) Reply {
	return s.replyFor(s.distributor.RequestNextVSync(conn.ID()))
}

func (s *Stub) getReceiveFd(conn *Connection, _ []byte) Reply {
	return s.encodeReply(ReceiveFdReply{ConnectionID: conn.ID()})
}

func (s *Stub) setVSyncRate(conn *Connection, payload []byte) Reply {
	var args SetRateArgs
	if err := DecodePayload(payload, &args); err != nil {
		return Reply{Code: ReplyInvalidArguments}
	}
	return s.replyFor(s.distributor.SetRate(conn.ID(), args.Rate, args.AutoTrigger))
}

func (s *Stub) getVSyncPeriod(_ *Connection, _ []byte) Reply {
	return s.encodeReply(PeriodReply{Period: int64(s.rates.Period())})
}

func (s *Stub) setVSyncRefreshRate(_ *Connection, payload []byte) Reply {
	var args RefreshRateArgs
	if err := DecodePayload(payload, &args); err != nil {
		return Reply{Code: ReplyInvalidArguments}
	}
	return s.replyFor(s.rates.SetRefreshRate(args.RefreshRate))
}

func (s *Stub) encodeReply(v any) Reply {
	payload, err := EncodePayload(v)
	if err != nil {
		s.logger.Error().Err(err).Msg("error encoding vsync reply")
		return Reply{Code: ReplyInternal}
	}
	return Reply{Code: ReplyOK, Payload: payload}
}

func (s *Stub) replyFor(err error) Reply {
	switch {
	case err == nil:
		return Reply{Code: ReplyOK}
	case errors.Is(err, models.ErrInvalidArgument):
		return Reply{Code: ReplyInvalidArguments}
	case errors.Is(err, models.ErrStaleState):
		return Reply{Code: ReplyNotFound}
	}
	s.logger.Error().Err(err).Msg("vsync operation failed")
	return Reply{Code: ReplyInternal}
}

// Err converts a non-OK reply into an error for client code.
func (r Reply) Err() error {
	if r.Code == ReplyOK {
		return nil
	}
	return fmt.Errorf("vsync call failed: %s", r.Code)
}
