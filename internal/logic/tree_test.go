package logic

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTree_Refs(t *testing.T) {
	t.Parallel()

	text := "@Main.java_button1_onClick\n" +
		"1\t0\tif\t[[gt, @count, 1]]\n" +
		"2\t1\tsetText\t[@label, [toString, @count]]\n" +
		"3\t0\telseIf\t[@flag]\n" +
		"@Other.java_save_onClick\n" +
		"1\t0\tsetEnable\t[@name_edit, true]\n"
	trees, err := build(t, text)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	want := map[string]bool{"button1": true, "count": true, "label": true, "flag": true}
	if diff := cmp.Diff(want, trees["Main"].Refs()); diff != "" {
		t.Errorf("Main refs mismatch (-want +got):\n%s", diff)
	}

	all := Referenced(trees)
	for _, id := range []string{"button1", "save", "name_edit", "label"} {
		if !all[id] {
			t.Errorf("Referenced() missing %q", id)
		}
	}
}

func TestTree_Opcodes(t *testing.T) {
	t.Parallel()

	text := "@Main.java_a_onClick\n" +
		"1\t0\tif\t[true]\n" +
		"2\t1\tdoToast\t[\"x\"]\n" +
		"3\t0\telse\t[]\n" +
		"4\t1\tfinishActivity\t[]\n"
	trees, err := build(t, text)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	want := []string{"doToast", "else", "finishActivity", "if"}
	if diff := cmp.Diff(want, trees["Main"].Opcodes()); diff != "" {
		t.Errorf("Opcodes mismatch (-want +got):\n%s", diff)
	}
}

func TestTree_Func(t *testing.T) {
	t.Parallel()

	trees, err := build(t, "@Main.java_func\nreset\treset %d.value\n")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	fn, ok := trees["Main"].Func("reset")
	if !ok || len(fn.Params) != 1 || fn.Params[0].Name != "value" {
		t.Errorf("Func(reset) = %+v, %v", fn, ok)
	}
	if _, ok := trees["Main"].Func("missing"); ok {
		t.Error("Func(missing) should not be found")
	}
}
