package codec

import (
	"bytes"
	"errors"
	"testing"
)

func TestRegistryRegisterAndGet(t *testing.T) {
	r := NewRegistry()
	c := &TestCodec{SyntaxUID: "1.2.3.4", CodecName: "test-a"}
	r.Register(c)

	got, err := r.Get("1.2.3.4")
	if err != nil {
		t.Fatalf("Get by UID: %v", err)
	}
	if got != Codec(c) {
		t.Error("Get by UID returned a different codec")
	}

	got, err = r.Get("test-a")
	if err != nil {
		t.Fatalf("Get by name: %v", err)
	}
	if got != Codec(c) {
		t.Error("Get by name returned a different codec")
	}
}

func TestRegistryMissing(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Get("1.9.9.9"); !errors.Is(err, ErrCodecNotFound) {
		t.Fatalf("err = %v, want ErrCodecNotFound", err)
	}
	if r.Has("1.9.9.9") {
		t.Error("Has reported an unregistered codec")
	}
}

func TestRegistryListDeduplicates(t *testing.T) {
	r := NewRegistry()
	r.Register(&TestCodec{SyntaxUID: "1.2.3.4", CodecName: "test-a"})
	r.Register(&TestCodec{SyntaxUID: "1.2.3.5", CodecName: "test-b"})

	// Each codec is registered under UID and name but listed once.
	if got := len(r.List()); got != 2 {
		t.Fatalf("List returned %d codecs, want 2", got)
	}
}

func TestRegistryIsolatedFromDefault(t *testing.T) {
	r := NewRegistry()
	r.Register(&TestCodec{SyntaxUID: "1.2.3.4.5.6.7"})
	if Default().Has("1.2.3.4.5.6.7") {
		t.Error("private registry leaked into the default registry")
	}
}

func TestBaseOptionsValidate(t *testing.T) {
	if err := (&BaseOptions{Quality: 85}).Validate(); err != nil {
		t.Errorf("valid options rejected: %v", err)
	}
	if err := (&BaseOptions{Quality: 101}).Validate(); !errors.Is(err, ErrInvalidQuality) {
		t.Errorf("quality 101 err = %v, want ErrInvalidQuality", err)
	}
	if err := (&BaseOptions{NearLossless: -1}).Validate(); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("negative near-lossless err = %v, want ErrInvalidParameter", err)
	}
}

func TestTestCodecRoundTrip(t *testing.T) {
	c := &TestCodec{SyntaxUID: "1.2.3.4"}
	pixels := []byte{10, 20, 30, 40}
	data, err := c.Encode(EncodeParams{
		PixelData: pixels, Width: 2, Height: 2, Components: 1, BitsAllocated: 8, BitsStored: 8,
	})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	res, err := c.Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if res.Width != 2 || res.Height != 2 || res.Components != 1 || res.BitsAllocated != 8 {
		t.Fatalf("geometry = %+v", res)
	}
	if !bytes.Equal(res.PixelData, pixels) {
		t.Fatal("unbiased codec changed samples")
	}
}

func TestTestCodecBias(t *testing.T) {
	c := &TestCodec{SyntaxUID: "1.2.3.4", DecodeBias: 3}
	data, err := c.Encode(EncodeParams{
		PixelData: []byte{100, 200}, Width: 2, Height: 1, Components: 1, BitsAllocated: 8, BitsStored: 8,
	})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	res, err := c.Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if res.PixelData[0] != 103 || res.PixelData[1] != 203 {
		t.Fatalf("biased samples = %v, want [103 203]", res.PixelData)
	}
}
