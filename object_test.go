package bser_test

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/pierre7donaire/bser"
)

func TestObjectRangeStopsEarly(t *testing.T) {
	d := bser.NewDecoder(bser.Unsorted, bser.WithByteOrder(binary.LittleEndian))
	v, err := d.Decode(bytes.NewReader(objectMessage()))
	if err != nil {
		t.Fatalf("Decode: unexpected error: %v", err)
	}
	obj, ok := v.AsObject()
	if !ok {
		t.Fatalf("Decode: got Kind %v, want Object", v.Kind())
	}

	var seen []string
	obj.Range(func(key string, _ bser.Value) bool {
		seen = append(seen, key)
		return len(seen) < 2
	})
	if len(seen) != 2 {
		t.Fatalf("Range: visited %d entries, want 2 (early stop)", len(seen))
	}
	if seen[0] != "foo" || seen[1] != "bar" {
		t.Errorf("Range: got %v, want [foo bar]", seen)
	}
}

func TestObjectGetMissingKey(t *testing.T) {
	d := bser.NewDecoder(bser.Unsorted, bser.WithByteOrder(binary.LittleEndian))
	v, err := d.Decode(bytes.NewReader(objectMessage()))
	if err != nil {
		t.Fatalf("Decode: unexpected error: %v", err)
	}
	obj, _ := v.AsObject()
	if _, ok := obj.Get("quux"); ok {
		t.Errorf("Get: got ok=true for absent key, want false")
	}
}
