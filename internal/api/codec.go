// Package api declares the gRPC surface: request/response messages,
// service descriptors, server interfaces and typed clients.
//
// Messages are plain Go structs carried by the "json" codec registered
// here. Clients select it per call with grpc.CallContentSubtype(Codec); the
// server picks it from the request content-subtype, so proto services such
// as health and reflection keep using the proto codec on the same server.
package api

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

// Codec is the content-subtype of every accountadate RPC.
const Codec = "json"

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	if m, ok := v.(proto.Message); ok {
		return protojson.Marshal(m)
	}
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	if m, ok := v.(proto.Message); ok {
		return protojson.UnmarshalOptions{DiscardUnknown: true}.Unmarshal(data, m)
	}
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string { return Codec }

func init() {
	encoding.RegisterCodec(jsonCodec{})
}
