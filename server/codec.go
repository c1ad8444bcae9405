package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"
)

// Codec names accepted by SNAKE_CODEC
const (
	CodecJSON    = "json"
	CodecMsgpack = "msgpack"
)

// Codec serializes state frames and picks the websocket frame type for them
type Codec interface {
	Name() string
	Encode(v any) (messageType int, data []byte, err error)
}

type jsonCodec struct{}

func (jsonCodec) Name() string { return CodecJSON }

func (jsonCodec) Encode(v any) (int, []byte, error) {
	data, err := json.Marshal(v)
	return websocket.TextMessage, data, err
}

// msgpackCodec sends binary frames, roughly half the size of the JSON form
// for long snakes
type msgpackCodec struct{}

func (msgpackCodec) Name() string { return CodecMsgpack }

func (msgpackCodec) Encode(v any) (int, []byte, error) {
	data, err := msgpack.Marshal(v)
	return websocket.BinaryMessage, data, err
}

// CodecByName resolves a codec from its config name
func CodecByName(name string) (Codec, error) {
	switch strings.ToLower(name) {
	case "", CodecJSON:
		return jsonCodec{}, nil
	case CodecMsgpack:
		return msgpackCodec{}, nil
	}
	return nil, fmt.Errorf("unknown codec %q: want %q or %q", name, CodecJSON, CodecMsgpack)
}
