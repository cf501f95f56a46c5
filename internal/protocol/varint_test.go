package protocol

import (
	"bytes"
	"errors"
	"io"
	"math"
	"testing"
)

func TestVarIntKnownEncodings(t *testing.T) {
	cases := []struct {
		v    int32
		want []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		{127, []byte{0x7f}},
		{128, []byte{0x80, 0x01}},
		{255, []byte{0xff, 0x01}},
		{25565, []byte{0xdd, 0xc7, 0x01}},
		{2097151, []byte{0xff, 0xff, 0x7f}},
		{math.MaxInt32, []byte{0xff, 0xff, 0xff, 0xff, 0x07}},
		{-1, []byte{0xff, 0xff, 0xff, 0xff, 0x0f}},
		{math.MinInt32, []byte{0x80, 0x80, 0x80, 0x80, 0x08}},
	}
	for _, tc := range cases {
		got := EncodeVarInt(tc.v)
		if !bytes.Equal(got, tc.want) {
			t.Fatalf("encode %d: got=%x want=%x", tc.v, got, tc.want)
		}
		if VarIntSize(tc.v) != len(tc.want) {
			t.Fatalf("size %d: got=%d want=%d", tc.v, VarIntSize(tc.v), len(tc.want))
		}
		dec, err := ReadVarInt(bytes.NewReader(got))
		if err != nil {
			t.Fatalf("decode %d: %v", tc.v, err)
		}
		if dec != tc.v {
			t.Fatalf("round trip: got=%d want=%d", dec, tc.v)
		}
	}
}

func TestVarIntRoundTripSweep(t *testing.T) {
	values := []int32{math.MinInt32, math.MaxInt32, -2, -1}
	for shift := 0; shift < 32; shift++ {
		v := int32(uint32(1) << shift)
		values = append(values, v, v-1, v+1, -v)
	}
	for _, v := range values {
		enc := EncodeVarInt(v)
		if len(enc) > MaxVarIntLen {
			t.Fatalf("encoding of %d is %d bytes", v, len(enc))
		}
		got, err := ReadVarInt(bytes.NewReader(enc))
		if err != nil {
			t.Fatalf("decode %d: %v", v, err)
		}
		if got != v {
			t.Fatalf("round trip: got=%d want=%d", got, v)
		}
	}
}

func TestReadVarIntTooLong(t *testing.T) {
	_, err := ReadVarInt(bytes.NewReader([]byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x01}))
	if !errors.Is(err, ErrMalformedVarInt) {
		t.Fatalf("expected ErrMalformedVarInt, got %v", err)
	}
}

func TestReadVarIntCutOff(t *testing.T) {
	_, err := ReadVarInt(bytes.NewReader([]byte{0x80, 0x80}))
	if !errors.Is(err, ErrMalformedVarInt) || !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("expected ErrMalformedVarInt+ErrUnexpectedEOF, got %v", err)
	}
}

func TestReadVarIntCleanEOF(t *testing.T) {
	_, err := ReadVarInt(bytes.NewReader(nil))
	if err == nil || errors.Is(err, ErrMalformedVarInt) {
		t.Fatalf("expected io.EOF, got %v", err)
	}
}

func TestReadVarIntConsumesOnlyItsBytes(t *testing.T) {
	r := bytes.NewReader([]byte{0xac, 0x02, 0x09})
	v, err := ReadVarInt(r)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if v != 300 {
		t.Fatalf("unexpected value: %d", v)
	}
	if r.Len() != 1 {
		t.Fatalf("expected 1 trailing byte, got %d", r.Len())
	}
}
