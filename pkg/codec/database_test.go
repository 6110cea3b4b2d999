package codec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"reflect"
	"testing"

	"golang.org/x/text/encoding/charmap"
)

// buildFile assembles a wire image from parts for tests.
func buildFile(parts ...[]byte) []byte {
	var buf bytes.Buffer
	for _, p := range parts {
		buf.Write(p)
	}
	return buf.Bytes()
}

func word(v uint32) []byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return b[:]
}

func defaultHeaderBytes() []byte {
	return buildFile(Signature[:], word(1), make([]byte, 8))
}

var terminatorBytes = buildFile(word(sentinelWord), word(sentinelWord))

func TestDatabaseCodec_ConcreteScenario(t *testing.T) {
	// header + one record ("color" -> "red", "blue") + terminator
	data := buildFile(
		defaultHeaderBytes(),
		word(5), []byte("color"),
		word(2),
		word(3), []byte("red"),
		word(4), []byte("blue"),
		terminatorBytes,
	)

	db, err := NewDatabaseCodec(Options{}).DecodeBytes(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if len(db.Entries) != 1 {
		t.Fatalf("Entry count mismatch: got %d, want 1", len(db.Entries))
	}
	want := Entry{Key: "color", Values: []string{"red", "blue"}}
	if !reflect.DeepEqual(db.Entries[0], want) {
		t.Errorf("Entry mismatch: got %+v, want %+v", db.Entries[0], want)
	}
	if db.Header.Flag != 1 {
		t.Errorf("Flag mismatch: got %d, want 1", db.Header.Flag)
	}
}

func TestDatabaseCodec_RoundTrip(t *testing.T) {
	testCases := []struct {
		name    string
		opts    Options
		entries []Entry
	}{
		{
			name:    "empty database",
			entries: nil,
		},
		{
			name:    "single key single value",
			entries: []Entry{{Key: "color", Values: []string{"red"}}},
		},
		{
			name:    "key with no values",
			entries: []Entry{{Key: "marker", Values: nil}},
		},
		{
			name: "multiple keys preserving order",
			entries: []Entry{
				{Key: "zulu", Values: []string{"z"}},
				{Key: "alpha", Values: []string{"a", "aa", "aaa"}},
				{Key: "mike", Values: nil},
			},
		},
		{
			name: "duplicate keys stay distinct",
			entries: []Entry{
				{Key: "color", Values: []string{"red"}},
				{Key: "color", Values: []string{"blue"}},
			},
		},
		{
			name:    "empty strings",
			entries: []Entry{{Key: "k", Values: []string{"", ""}}},
		},
		{
			name:    "unicode text",
			entries: []Entry{{Key: "pozdrav", Values: []string{"ahoj světe", "čau"}}},
		},
		{
			name:    "nul-counted lengths",
			opts:    Options{LengthIncludesNul: true},
			entries: []Entry{{Key: "color", Values: []string{"red", "blue"}}},
		},
		{
			name:    "windows-1250 charmap",
			opts:    Options{Encoding: charmap.Windows1250},
			entries: []Entry{{Key: "město", Values: []string{"Plzeň"}}},
		},
		{
			name: "charmap with nul-counted lengths",
			opts: Options{LengthIncludesNul: true, Encoding: charmap.Windows1250},
			entries: []Entry{
				{Key: "věta", Values: []string{"žluťoučký kůň"}},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewDatabaseCodec(tc.opts)

			original := NewTextDatabase()
			original.Entries = tc.entries

			encoded, err := c.EncodeBytes(original)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}

			decoded, err := c.DecodeBytes(encoded)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}

			if decoded.Header != original.Header {
				t.Errorf("Header mismatch: got %+v, want %+v", decoded.Header, original.Header)
			}
			if len(decoded.Entries) != len(original.Entries) {
				t.Fatalf("Entry count mismatch: got %d, want %d", len(decoded.Entries), len(original.Entries))
			}
			for i := range original.Entries {
				if !reflect.DeepEqual(decoded.Entries[i], original.Entries[i]) {
					t.Errorf("Entry %d mismatch: got %+v, want %+v", i, decoded.Entries[i], original.Entries[i])
				}
			}

			// The byte image itself must round-trip too.
			reencoded, err := c.EncodeBytes(decoded)
			if err != nil {
				t.Fatalf("Re-encode failed: %v", err)
			}
			if !bytes.Equal(reencoded, encoded) {
				t.Errorf("Byte round trip mismatch:\n got %x\nwant %x", reencoded, encoded)
			}
		})
	}
}

func TestDatabaseCodec_HeaderFidelity(t *testing.T) {
	// Reserved bytes are undocumented; they must pass through untouched.
	reserved := []byte{0xDE, 0xAD, 0xBE, 0xEF, 0x01, 0x02, 0x03, 0x04}
	data := buildFile(Signature[:], word(7), reserved, terminatorBytes)

	c := NewDatabaseCodec(Options{})
	db, err := c.DecodeBytes(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if db.Header.Flag != 7 {
		t.Errorf("Flag mismatch: got %d, want 7", db.Header.Flag)
	}
	if !bytes.Equal(db.Header.Reserved[:], reserved) {
		t.Errorf("Reserved mismatch: got %x, want %x", db.Header.Reserved, reserved)
	}

	encoded, err := c.EncodeBytes(db)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if !bytes.Equal(encoded, data) {
		t.Errorf("Header not reproduced bit-for-bit:\n got %x\nwant %x", encoded[:HeaderSize], data[:HeaderSize])
	}
}

func TestDatabaseCodec_EmptyDatabase(t *testing.T) {
	data := buildFile(defaultHeaderBytes(), terminatorBytes)

	db, err := NewDatabaseCodec(Options{}).DecodeBytes(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(db.Entries) != 0 {
		t.Errorf("Expected empty database, got %d entries", len(db.Entries))
	}
}

func TestDatabaseCodec_BadSignature(t *testing.T) {
	data := buildFile([]byte("BOGUS"), make([]byte, 11), terminatorBytes)

	_, err := NewDatabaseCodec(Options{}).DecodeBytes(data)
	if !errors.Is(err, ErrBadSignature) {
		t.Fatalf("Expected ErrBadSignature, got %v", err)
	}

	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("Expected *DecodeError, got %T", err)
	}
	if de.Offset != 0 {
		t.Errorf("Offset mismatch: got %d, want 0", de.Offset)
	}
}

func TestDatabaseCodec_Truncation(t *testing.T) {
	valid := buildFile(
		defaultHeaderBytes(),
		word(5), []byte("color"),
		word(2),
		word(3), []byte("red"),
		word(4), []byte("blue"),
		terminatorBytes,
	)

	// Every cut strictly before the terminator must fail as truncated input,
	// never succeed silently.
	for cut := 0; cut < len(valid)-len(terminatorBytes); cut++ {
		_, err := NewDatabaseCodec(Options{}).DecodeBytes(valid[:cut])
		if !errors.Is(err, ErrTruncatedInput) {
			t.Errorf("cut at %d: expected ErrTruncatedInput, got %v", cut, err)
		}
	}
}

func TestDatabaseCodec_TruncatedTerminator(t *testing.T) {
	// Stream ends after the first sentinel word: the input ran out.
	data := buildFile(defaultHeaderBytes(), word(sentinelWord))

	_, err := NewDatabaseCodec(Options{}).DecodeBytes(data)
	if !errors.Is(err, ErrTruncatedInput) {
		t.Fatalf("Expected ErrTruncatedInput, got %v", err)
	}
}

func TestDatabaseCodec_MalformedTerminator(t *testing.T) {
	testCases := []struct {
		name   string
		second uint32
	}{
		{name: "zero word", second: 0},
		{name: "plausible length", second: 5},
		{name: "almost sentinel", second: 0xFFFFFFFE},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			data := buildFile(defaultHeaderBytes(), word(sentinelWord), word(tc.second))

			_, err := NewDatabaseCodec(Options{}).DecodeBytes(data)
			if !errors.Is(err, ErrMalformedTerminator) {
				t.Fatalf("Expected ErrMalformedTerminator, got %v", err)
			}

			var de *DecodeError
			if !errors.As(err, &de) {
				t.Fatalf("Expected *DecodeError, got %T", err)
			}
			if de.Offset != int64(HeaderSize+4) {
				t.Errorf("Offset mismatch: got %d, want %d", de.Offset, HeaderSize+4)
			}
		})
	}
}

func TestDatabaseCodec_InvalidEncoding(t *testing.T) {
	t.Run("invalid UTF-8 value", func(t *testing.T) {
		data := buildFile(
			defaultHeaderBytes(),
			word(1), []byte("k"),
			word(1),
			word(2), []byte{0xFF, 0xFE},
			terminatorBytes,
		)

		_, err := NewDatabaseCodec(Options{}).DecodeBytes(data)
		if !errors.Is(err, ErrInvalidEncoding) {
			t.Fatalf("Expected ErrInvalidEncoding, got %v", err)
		}
	})

	t.Run("same bytes valid under charmap", func(t *testing.T) {
		data := buildFile(
			defaultHeaderBytes(),
			word(1), []byte("k"),
			word(1),
			word(2), []byte{0xFF, 0xFE},
			terminatorBytes,
		)

		db, err := NewDatabaseCodec(Options{Encoding: charmap.Windows1252}).DecodeBytes(data)
		if err != nil {
			t.Fatalf("Decode failed: %v", err)
		}
		if got := db.Entries[0].Values[0]; got != "ÿþ" {
			t.Errorf("Value mismatch: got %q, want %q", got, "ÿþ")
		}
	})

	t.Run("byte undefined in charmap", func(t *testing.T) {
		// 0x81 has no assignment in Windows-1250.
		data := buildFile(
			defaultHeaderBytes(),
			word(1), []byte{0x81},
			word(0),
			terminatorBytes,
		)

		_, err := NewDatabaseCodec(Options{Encoding: charmap.Windows1250}).DecodeBytes(data)
		if !errors.Is(err, ErrInvalidEncoding) {
			t.Fatalf("Expected ErrInvalidEncoding, got %v", err)
		}
	})

	t.Run("interior NUL in key", func(t *testing.T) {
		data := buildFile(
			defaultHeaderBytes(),
			word(3), []byte{'a', 0, 'b'},
			word(0),
			terminatorBytes,
		)

		_, err := NewDatabaseCodec(Options{}).DecodeBytes(data)
		if !errors.Is(err, ErrInvalidEncoding) {
			t.Fatalf("Expected ErrInvalidEncoding, got %v", err)
		}
	})

	t.Run("missing NUL under nul-counted lengths", func(t *testing.T) {
		data := buildFile(
			defaultHeaderBytes(),
			word(5), []byte("color"), // no trailing NUL
			word(0),
			terminatorBytes,
		)

		_, err := NewDatabaseCodec(Options{LengthIncludesNul: true}).DecodeBytes(data)
		if !errors.Is(err, ErrInvalidEncoding) {
			t.Fatalf("Expected ErrInvalidEncoding, got %v", err)
		}
	})
}

func TestDatabaseCodec_NulConventionWireFormat(t *testing.T) {
	// Under the NUL-counted convention "color" is stored as 6 bytes.
	c := NewDatabaseCodec(Options{LengthIncludesNul: true})

	db := NewTextDatabase()
	db.Entries = []Entry{{Key: "color", Values: []string{"red"}}}

	encoded, err := c.EncodeBytes(db)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	want := buildFile(
		defaultHeaderBytes(),
		word(6), []byte("color\x00"),
		word(1),
		word(4), []byte("red\x00"),
		terminatorBytes,
	)
	if !bytes.Equal(encoded, want) {
		t.Errorf("Wire mismatch:\n got %x\nwant %x", encoded, want)
	}
}

func TestDatabaseCodec_TrailingGarbageIgnored(t *testing.T) {
	// The codec owns the stream only up to the terminator.
	data := buildFile(defaultHeaderBytes(), terminatorBytes, []byte("trailing"))

	db, err := NewDatabaseCodec(Options{}).DecodeBytes(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(db.Entries) != 0 {
		t.Errorf("Expected empty database, got %d entries", len(db.Entries))
	}
}

func TestTextDatabase_Lookup(t *testing.T) {
	db := NewTextDatabase()
	db.Entries = []Entry{
		{Key: "color", Values: []string{"red"}},
		{Key: "size", Values: []string{"large"}},
		{Key: "color", Values: []string{"blue"}},
	}

	values, ok := db.Lookup("color")
	if !ok {
		t.Fatal("Lookup(color) reported missing key")
	}
	if !reflect.DeepEqual(values, []string{"red"}) {
		t.Errorf("Lookup returned %v, want [red]", values)
	}

	if _, ok := db.Lookup("weight"); ok {
		t.Error("Lookup(weight) reported a hit for a missing key")
	}

	all := db.LookupAll("color")
	if len(all) != 2 {
		t.Fatalf("LookupAll(color) returned %d matches, want 2", len(all))
	}
	if !reflect.DeepEqual(all[0], []string{"red"}) || !reflect.DeepEqual(all[1], []string{"blue"}) {
		t.Errorf("LookupAll returned %v in wrong order", all)
	}
}

func TestDatabaseCodec_HugeDeclaredLength(t *testing.T) {
	// A corrupt length just under the sentinel must fail as truncation, not
	// exhaust memory.
	data := buildFile(defaultHeaderBytes(), word(0xFFFFFFFE))

	_, err := NewDatabaseCodec(Options{}).DecodeBytes(data)
	if !errors.Is(err, ErrTruncatedInput) {
		t.Fatalf("Expected ErrTruncatedInput, got %v", err)
	}
}
