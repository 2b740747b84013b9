package layout

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/papapumpkin/asperge/internal/decodeerr"
	"github.com/papapumpkin/asperge/internal/records"
	"github.com/papapumpkin/asperge/internal/view"
)

func tree(t *testing.T, lines ...string) *view.Tree {
	t.Helper()
	secs, err := records.ParseView("@main.xml\n" + strings.Join(lines, "\n"))
	if err != nil {
		t.Fatalf("ParseView: %v", err)
	}
	trees, err := view.Build(secs)
	if err != nil {
		t.Fatalf("view.Build: %v", err)
	}
	return trees["main"]
}

var (
	testFiles = records.Files{
		Activities:  []records.ActivityFile{{Name: "main"}},
		CustomViews: []string{"row"},
	}
	testRes  = records.Resources{Images: []records.ResourceEntry{{Name: "logo", File: "logo.png"}}}
	testMeta = records.Metadata{PackageName: "com.x", AppName: "X"}
)

func TestGenerate_Document(t *testing.T) {
	t.Parallel()

	tr := tree(t,
		"root\t-\t0\t[width=-1, height=-1, orientation=\"vertical\"]",
		"title\troot\t4\t[text=\"a & <b>\", textSize=20]",
	)
	got, err := Generator{Indent: "  "}.Generate(tr, testRes, testFiles, testMeta)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	want := `<?xml version="1.0" encoding="utf-8"?>
<LinearLayout
  xmlns:android="http://schemas.android.com/apk/res/android"
  xmlns:tools="http://schemas.android.com/tools"
  tools:context="com.x.MainActivity"
  android:id="@+id/root"
  android:layout_width="match_parent"
  android:layout_height="match_parent"
  android:orientation="vertical">
  <TextView
    android:id="@+id/title"
    android:layout_width="wrap_content"
    android:layout_height="wrap_content"
    android:text="a &amp; &lt;b&gt;"
    android:textSize="20sp"/>
</LinearLayout>
`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Generate mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerate_Containers(t *testing.T) {
	t.Parallel()

	tr := tree(t,
		"root\t-\t0\t[]",
		"count\troot\t4\t[weight=1]",
		"box\troot\t1\t[height=120, bgColor=#ffeeeeee]",
		"badge\tbox\t4\t[x=10, y=20, text=\"@home\"]",
		"scroll\troot\t2\t[]",
		"img\tscroll\t6\t[image=%logo, scaleType=\"FIT_CENTER\"]",
		"list\troot\t9\t[listItem=\"row\", visibility=\"gone\"]",
	)
	got, err := Generate(tr, testRes, testFiles, testMeta)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	for _, want := range []string{
		`android:layout_weight="1"`,
		`android:layout_height="120dp"`,
		`android:background="#ffeeeeee"`,
		`android:layout_marginLeft="10dp"`,
		`android:layout_alignParentTop="true"`,
		`android:text="\@home"`,
		"<HorizontalScrollView",
		"\t\t<LinearLayout\n\t\t\tandroid:layout_width=\"wrap_content\"",
		`android:orientation="horizontal">`,
		"\t\t\t<ImageView",
		`android:src="@drawable/logo"`,
		`android:scaleType="fitCenter"`,
		`tools:listitem="@layout/row"`,
		`android:visibility="gone"`,
		"\t\t</LinearLayout>\n\t</HorizontalScrollView>\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q\n%s", want, got)
		}
	}
	if strings.Count(got, "xmlns:android") != 1 {
		t.Error("namespace should only be declared on the root")
	}
}

func TestGenerate_NoToolsContextForCustomView(t *testing.T) {
	t.Parallel()

	tr := tree(t, "root\t-\t0\t[]")
	got, err := Generate(tr, testRes, records.Files{CustomViews: []string{"main"}}, testMeta)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if strings.Contains(got, "tools:context") {
		t.Errorf("custom view layout should not carry tools:context:\n%s", got)
	}
}

func TestGenerate_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		record  string
		want    error
		wantTag string
	}{
		{"unknown attribute", "v\troot\t4\t[shadow=2]", decodeerr.ErrUnsupportedAttribute, "v.shadow"},
		{"weight outside linear", "v\tbox\t4\t[weight=1]", decodeerr.ErrUnsupportedAttribute, "v.weight"},
		{"position outside relative", "v\troot\t4\t[x=1]", decodeerr.ErrUnsupportedAttribute, "v.x"},
		{"bad width", "v\troot\t4\t[width=\"wide\"]", decodeerr.ErrUnsupportedAttribute, "v.width"},
		{"wrong value kind", "v\troot\t4\t[textColor=\"red\"]", decodeerr.ErrUnsupportedAttribute, "v.textColor"},
		{"orientation on leaf", "v\troot\t4\t[orientation=\"vertical\"]", decodeerr.ErrUnsupportedAttribute, "v.orientation"},
		{"missing image", "v\troot\t6\t[image=%ghost]", decodeerr.ErrUnresolvedReference, "ghost"},
		{"missing list item", "v\troot\t9\t[listItem=\"main\"]", decodeerr.ErrUnresolvedReference, "main"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tr := tree(t, "root\t-\t0\t[]", "box\troot\t1\t[]", tt.record)
			_, err := Generate(tr, testRes, testFiles, testMeta)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Generate() error = %v, want %v", err, tt.want)
			}
			var de *decodeerr.Error
			errors.As(err, &de)
			if de.Tag != tt.wantTag || de.Screen != "main" || de.Line != 4 {
				t.Errorf("error context = tag %q screen %q line %d", de.Tag, de.Screen, de.Line)
			}
		})
	}
}
