// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package vsync

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/go-compositor/internal/logger"
	"github.com/MKhiriev/go-compositor/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRates struct {
	period      time.Duration
	refreshRate uint32
}

func (f *fakeRates) Period() time.Duration { return f.period }

func (f *fakeRates) SetRefreshRate(rate uint32) error {
	if rate == 0 {
		return ErrInvalidRefreshRate
	}
	f.refreshRate = rate
	return nil
}

func newTestStub(t *testing.T) (*Stub, *Distributor, *fakeRates, *Connection) {
	t.Helper()
	d := NewDistributor(8, logger.Nop())
	rates := &fakeRates{period: 16 * time.Millisecond}
	conn, err := d.CreateConnection(7, "app")
	require.NoError(t, err)
	return NewStub(d, rates, logger.Nop()), d, rates, conn
}

var client = models.Caller{Pid: 7, Capabilities: []models.Capability{models.CapVSync}}

func request(conn *Connection, code Code, payload any) Request {
	req := Request{Descriptor: InterfaceDescriptor, ConnectionID: conn.ID(), Code: code}
	if payload != nil {
		data, err := EncodePayload(payload)
		if err != nil {
			panic(err)
		}
		req.Payload = data
	}
	return req
}

func TestDispatch_DescriptorMismatch(t *testing.T) {
	stub, d, _, conn := newTestStub(t)
	req := request(conn, CodeRequestNextVSync, nil)
	req.Descriptor = "compositor.ISomethingElse"

	reply := stub.Dispatch(context.Background(), client, req)
	assert.Equal(t, ReplyInvalidState, reply.Code)

	assert.Equal(t, 0, d.OnVSync(tickAt(1)), "request must not have been executed")
}

func TestDispatch_UnknownCode(t *testing.T) {
	stub, _, _, conn := newTestStub(t)

	reply := stub.Dispatch(context.Background(), client, request(conn, Code(99), nil))
	assert.Equal(t, ReplyInvalidOperating, reply.Code)
}

func TestDispatch_CapabilityCheckedBeforeHandler(t *testing.T) {
	stub, _, rates, conn := newTestStub(t)

	reply := stub.Dispatch(context.Background(), client,
		request(conn, CodeSetVSyncRefreshRate, RefreshRateArgs{RefreshRate: 90}))
	assert.Equal(t, ReplyNoPermission, reply.Code)
	assert.Zero(t, rates.refreshRate)

	admin := models.Caller{Pid: 7, Capabilities: []models.Capability{models.CapVSync, models.CapVSyncAdmin}}
	reply = stub.Dispatch(context.Background(), admin,
		request(conn, CodeSetVSyncRefreshRate, RefreshRateArgs{RefreshRate: 90}))
	assert.Equal(t, ReplyOK, reply.Code)
	assert.Equal(t, uint32(90), rates.refreshRate)
}

func TestDispatch_ForeignConnection(t *testing.T) {
	stub, _, _, conn := newTestStub(t)
	other := models.Caller{Pid: 8, Capabilities: []models.Capability{models.CapVSync}}

	reply := stub.Dispatch(context.Background(), other, request(conn, CodeRequestNextVSync, nil))
	assert.Equal(t, ReplyNoPermission, reply.Code)
}

func TestDispatch_Operations(t *testing.T) {
	stub, d, _, conn := newTestStub(t)
	ctx := context.Background()

	reply := stub.Dispatch(ctx, client, request(conn, CodeRequestNextVSync, nil))
	require.Equal(t, ReplyOK, reply.Code)
	assert.Equal(t, 1, d.OnVSync(tickAt(1)))

	reply = stub.Dispatch(ctx, client, request(conn, CodeGetVSyncPeriod, nil))
	require.Equal(t, ReplyOK, reply.Code)
	var period PeriodReply
	require.NoError(t, DecodePayload(reply.Payload, &period))
	assert.Equal(t, int64(16*time.Millisecond), period.Period)

	reply = stub.Dispatch(ctx, client, request(conn, CodeGetReceiveFd, nil))
	require.Equal(t, ReplyOK, reply.Code)
	var fd ReceiveFdReply
	require.NoError(t, DecodePayload(reply.Payload, &fd))
	assert.Equal(t, conn.ID(), fd.ConnectionID)

	reply = stub.Dispatch(ctx, client, request(conn, CodeSetVSyncRate, SetRateArgs{Rate: 0}))
	assert.Equal(t, ReplyInvalidArguments, reply.Code)

	reply = stub.Dispatch(ctx, client, request(conn, CodeSetVSyncRate, SetRateArgs{Rate: 2, AutoTrigger: true}))
	require.Equal(t, ReplyOK, reply.Code)
	assert.Equal(t, 0, d.OnVSync(tickAt(2)))
	assert.Equal(t, 1, d.OnVSync(tickAt(3)))
}

func TestDispatch_RemovedConnection(t *testing.T) {
	stub, d, _, conn := newTestStub(t)
	d.RemoveConnection(conn.ID())

	reply := stub.Dispatch(context.Background(), client, request(conn, CodeRequestNextVSync, nil))
	assert.Equal(t, ReplyNotFound, reply.Code)
	assert.Error(t, reply.Err())
}

func TestRequiredCapability(t *testing.T) {
	capability, ok := RequiredCapability(CodeSetVSyncRefreshRate)
	require.True(t, ok)
	assert.Equal(t, models.CapVSyncAdmin, capability)

	_, ok = RequiredCapability(Code(0))
	assert.False(t, ok)
}
