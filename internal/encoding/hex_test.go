package encoding

import (
	"encoding"
	"errors"
	"testing"
)

var (
	_ encoding.TextMarshaler   = (*HexEncoding)(nil)
	_ encoding.TextUnmarshaler = (*HexEncoding)(nil)
)

func TestHexEncoder_MarshalText(t *testing.T) {
	t.Parallel()

	tcs := []struct {
		name   string
		addr   uint32
		data   []byte
		expect string
	}{
		{
			name:   "empty",
			expect: ":00000001ff\n",
		},
		{
			name:   "one record",
			addr:   0x0100,
			data:   []byte{0xAA, 0x55},
			expect: ":02010000aa55fe\n:00000001ff\n",
		},
	}

	for _, tc := range tcs {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			enc := HexEncoding{Addr: tc.addr, Data: tc.data}

			out, err := enc.MarshalText()
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}

			if string(out) != tc.expect {
				t.Errorf("got: %q, want: %q", out, tc.expect)
			}
		})
	}
}

func TestHexEncoder_RoundTrip(t *testing.T) {
	t.Parallel()

	want := HexEncoding{Addr: 0x0100, Data: []byte{0xAA, 0x55, 0x01, 0x02, 0x03}}

	text, err := want.MarshalText()
	if err != nil {
		t.Fatalf("marshal: %s", err)
	}

	var got HexEncoding
	if err := got.UnmarshalText(text); err != nil {
		t.Fatalf("unmarshal: %s", err)
	}

	if got.Addr != want.Addr {
		t.Errorf("addr: got: %#x, want: %#x", got.Addr, want.Addr)
	}

	if string(got.Data) != string(want.Data) {
		t.Errorf("data: got: %x, want: %x", got.Data, want.Data)
	}
}

func TestHexEncoder_UnmarshalText_errors(t *testing.T) {
	t.Parallel()

	tcs := []struct {
		name      string
		input     string
		expectErr error
	}{
		{name: "empty", input: "", expectErr: errEmpty},
		{name: "eof only", input: ":00000001ff\n", expectErr: errEmpty},
		{name: "nonsense", input: "u wot mate", expectErr: errInvalidHex},
		{name: "too short", input: ":FF00", expectErr: errInvalidHex},
	}

	for _, tc := range tcs {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var got HexEncoding

			err := got.UnmarshalText([]byte(tc.input))
			if !errors.Is(err, tc.expectErr) {
				t.Errorf("got: %v, want: %v", err, tc.expectErr)
			}
		})
	}
}
