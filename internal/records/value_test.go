package records

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want Value
	}{
		{`"hello"`, Value{Kind: String, Text: "hello"}},
		{`"say \"hi\"\n"`, Value{Kind: String, Text: "say \"hi\"\n"}},
		{`-12.5`, Value{Kind: Number, Text: "-12.5"}},
		{`true`, Value{Kind: Bool, Text: "true"}},
		{`@count`, Value{Kind: Ref, Text: "count"}},
		{`#FF00aa11`, Value{Kind: Color, Text: "ff00aa11"}},
		{`#00aa11`, Value{Kind: Color, Text: "ff00aa11"}},
		{`%logo`, Value{Kind: Resource, Text: "logo"}},
		{`[finishActivity]`, Value{Kind: Call, Text: "finishActivity"}},
		{` [ not , [ eq , @a , 1 ] ] `, Value{Kind: Call, Text: "not", Args: []Value{
			{Kind: Call, Text: "eq", Args: []Value{{Kind: Ref, Text: "a"}, {Kind: Number, Text: "1"}}},
		}}},
	}
	for _, tt := range tests {
		got, err := ParseValue(tt.in)
		if err != nil {
			t.Errorf("ParseValue(%q): %v", tt.in, err)
			continue
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("ParseValue(%q) mismatch (-want +got):\n%s", tt.in, diff)
		}
	}
}

func TestParseValue_Errors(t *testing.T) {
	t.Parallel()

	bad := []string{"", `"open`, "@", "#12", "1.", "--1", "hello", "[]", "[1, 2]", "[op 1]", "@a extra", "[op, 1"}
	for _, in := range bad {
		if v, err := ParseValue(in); err == nil {
			t.Errorf("ParseValue(%q) = %+v, want error", in, v)
		}
	}
}

func TestParseList(t *testing.T) {
	t.Parallel()

	got, err := ParseList(`[]`)
	if err != nil || len(got) != 0 {
		t.Fatalf("ParseList([]) = %v, %v", got, err)
	}
	got, err = ParseList(`[@a, "b", [c, 1]]`)
	if err != nil {
		t.Fatalf("ParseList: %v", err)
	}
	if len(got) != 3 || got[2].Kind != Call || got[2].Args[0].Text != "1" {
		t.Errorf("ParseList = %+v", got)
	}
	if _, err := ParseList(`@a`); err == nil {
		t.Error("ParseList without brackets should fail")
	}
}

func TestParseAttrs(t *testing.T) {
	t.Parallel()

	got, err := ParseAttrs(`[width=-1, text="Hi, there", image=%logo]`)
	if err != nil {
		t.Fatalf("ParseAttrs: %v", err)
	}
	want := []Attr{
		{Key: "width", Value: Value{Kind: Number, Text: "-1"}},
		{Key: "text", Value: Value{Kind: String, Text: "Hi, there"}},
		{Key: "image", Value: Value{Kind: Resource, Text: "logo"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseAttrs mismatch (-want +got):\n%s", diff)
	}
	for _, in := range []string{`[width]`, `[=1]`, `[a=1 b=2]`} {
		if _, err := ParseAttrs(in); err == nil {
			t.Errorf("ParseAttrs(%q) should fail", in)
		}
	}
}

func TestValueEncodeRoundTrip(t *testing.T) {
	t.Parallel()

	in := `[stringJoin, "a\"b", [toString, @n], #ff000000, %img, true, -3]`
	v, err := ParseValue(in)
	if err != nil {
		t.Fatal(err)
	}
	again, err := ParseValue(v.Encode())
	if err != nil {
		t.Fatalf("re-parsing %q: %v", v.Encode(), err)
	}
	if diff := cmp.Diff(v, again); diff != "" {
		t.Errorf("Encode round trip mismatch:\n%s", diff)
	}

	var refs []string
	v.Walk(func(x Value) {
		if x.Kind == Ref {
			refs = append(refs, x.Text)
		}
	})
	if len(refs) != 1 || refs[0] != "n" {
		t.Errorf("Walk refs = %v", refs)
	}
}
