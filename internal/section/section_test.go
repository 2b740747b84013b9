package section

import (
	"errors"
	"testing"

	"github.com/papapumpkin/asperge/internal/decodeerr"
)

func TestRawValidate(t *testing.T) {
	t.Parallel()

	full := Raw{}
	for _, n := range Names {
		full[n] = []byte("x")
	}
	if err := full.Validate(); err != nil {
		t.Fatalf("Validate() on complete project: %v", err)
	}

	delete(full, Library)
	err := full.Validate()
	if !errors.Is(err, decodeerr.ErrMalformedContainer) {
		t.Fatalf("Validate() = %v, want MalformedContainer", err)
	}
	var de *decodeerr.Error
	if !errors.As(err, &de) || de.Section != Library {
		t.Errorf("error should name section %q, got %v", Library, err)
	}
}

func TestDecryptedValidateAndBytes(t *testing.T) {
	t.Parallel()

	d := Decrypted{}
	if err := d.Validate(); err == nil {
		t.Fatal("Validate() on empty project should fail")
	}
	for _, n := range Names {
		d[n] = n + "-text"
	}
	if err := d.Validate(); err != nil {
		t.Fatalf("Validate(): %v", err)
	}
	raw := d.Bytes()
	if string(raw[Logic]) != "logic-text" {
		t.Errorf("Bytes()[logic] = %q", raw[Logic])
	}
}

func TestIsKnown(t *testing.T) {
	t.Parallel()

	if !IsKnown("resource") {
		t.Error("resource should be known")
	}
	if IsKnown("resources") {
		t.Error("resources should not be known")
	}
}
