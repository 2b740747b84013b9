package javagen

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/papapumpkin/asperge/internal/decodeerr"
	"github.com/papapumpkin/asperge/internal/logic"
	"github.com/papapumpkin/asperge/internal/records"
	"github.com/papapumpkin/asperge/internal/view"
)

const mainView = "@main.xml\n" +
	"root\t-\t0\t[]\n" +
	"button1\troot\t3\t[text=\"Go\"]\n" +
	"label\troot\t4\t[]\n" +
	"seek\troot\t14\t[]\n"

// input builds the MainActivity Input from logic and view section text.
func input(t *testing.T, logicText, viewText string) Input {
	t.Helper()
	lsecs, err := records.ParseLogic(logicText)
	if err != nil {
		t.Fatalf("ParseLogic: %v", err)
	}
	trees, err := logic.Build(lsecs)
	if err != nil {
		t.Fatalf("logic.Build: %v", err)
	}
	vsecs, err := records.ParseView(viewText)
	if err != nil {
		t.Fatalf("ParseView: %v", err)
	}
	views, err := view.Build(vsecs)
	if err != nil {
		t.Fatalf("view.Build: %v", err)
	}
	return Input{
		Tree:      trees["MainActivity"],
		Index:     view.NewIDIndex(views["main"], logic.Referenced(trees)),
		Activity:  "MainActivity",
		Layout:    "main",
		Meta:      records.Metadata{PackageName: "com.x", AppName: "X"},
		Files:     records.Files{Activities: []records.ActivityFile{{Name: "main"}, {Name: "second"}}},
		Resources: records.Resources{Images: []records.ResourceEntry{{Name: "logo", File: "logo.png"}}},
	}
}

func generate(t *testing.T, logicText string) string {
	t.Helper()
	out, err := Generate(input(t, logicText, mainView))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return out
}

func TestGenerate_ButtonScenario(t *testing.T) {
	t.Parallel()

	got := generate(t, "@MainActivity.java_var\n1:count\n"+
		"@MainActivity.java_button1_onClick\n1\t0\tdoToast\t[\"Hi\"]\n")

	want := `package com.x;

import android.app.Activity;
import android.os.Bundle;
import android.view.View;
import android.widget.Button;
import android.widget.Toast;

public class MainActivity extends Activity {

	private double count = 0;

	private Button button1;

	@Override
	protected void onCreate(Bundle _savedInstanceState) {
		super.onCreate(_savedInstanceState);
		setContentView(R.layout.main);
		initialize(_savedInstanceState);
		initializeLogic();
	}

	private void initialize(Bundle _savedInstanceState) {
		button1 = findViewById(R.id.button1);

		button1.setOnClickListener(new View.OnClickListener() {
			@Override
			public void onClick(View _view) {
				_button1_onClick();
			}
		});
	}

	private void initializeLogic() {
	}

	public void _button1_onClick() {
		Toast.makeText(getApplicationContext(), "Hi", Toast.LENGTH_SHORT).show();
	}
}
`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Generate mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerate_NilTreeAndCompat(t *testing.T) {
	t.Parallel()

	in := input(t, "", mainView)
	in.Tree = nil
	in.Compat = true
	got, err := Generate(in)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for _, want := range []string{
		"import androidx.appcompat.app.AppCompatActivity;",
		"public class MainActivity extends AppCompatActivity {",
		"setContentView(R.layout.main);",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Contains(got, "findViewById") {
		t.Error("no view is referenced, so none should be looked up")
	}
}

func TestGenerate_Declarations(t *testing.T) {
	t.Parallel()

	got := generate(t, "@MainActivity.java_var\n0:on\n2:s\n3:m\n"+
		"@MainActivity.java_list\n1:nums\n3:rows\n"+
		"@MainActivity.java_components\n"+
		"intent\tgo\t\nsharedpreferences\tprefs\tsettings\ntimer\ttick\t\n"+
		"calendar\tcal\t\nvibrator\tvib\t\ndialog\tdlg\t\n")

	for _, want := range []string{
		"private Timer _timer = new Timer();",
		"private boolean on = false;",
		`private String s = "";`,
		"private HashMap<String, Object> m = new HashMap<>();",
		"private ArrayList<Double> nums = new ArrayList<>();",
		"private ArrayList<HashMap<String, Object>> rows = new ArrayList<>();",
		"private Intent go = new Intent();",
		"private SharedPreferences prefs;",
		"private TimerTask tick;",
		"private Calendar cal = Calendar.getInstance();",
		`prefs = getSharedPreferences("settings", Activity.MODE_PRIVATE);`,
		"vib = (Vibrator) getSystemService(Context.VIBRATOR_SERVICE);",
		"dlg = new AlertDialog.Builder(this);",
		"import java.util.ArrayList;",
		"import java.util.HashMap;",
		"import java.util.TimerTask;",
		"import android.content.SharedPreferences;",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestGenerate_HandlersAndEvents(t *testing.T) {
	t.Parallel()

	got := generate(t, "@MainActivity.java_func\nshow\tshow %s.msg %d.n\nidle\tidle\n"+
		"@MainActivity.java_seek_onProgressChanged\n1\t0\tsetText\t[@label, [toString, @progress]]\n"+
		"@MainActivity.java_show_moreBlock\n1\t0\tsetText\t[@label, @msg]\n"+
		"@MainActivity.java_onResume_onResume\n1\t0\tcallFunc\t[@show, \"x\", 2]\n"+
		"@MainActivity.java_onBackPressed_onBackPressed\n1\t0\tfinishActivity\t[]\n")

	for _, want := range []string{
		"seek.setOnSeekBarChangeListener(new SeekBar.OnSeekBarChangeListener() {",
		"_seek_onProgressChanged(_param2);",
		"public void onStopTrackingTouch(SeekBar _param1) {",
		"public void _seek_onProgressChanged(final int _progress) {",
		"label.setText(String.valueOf((long)(_progress)));",
		"public void _show(final String _msg, final double _n) {",
		"label.setText(_msg);",
		"\t@Override\n\tprotected void onResume() {\n\t\tsuper.onResume();\n\t\t_show(\"x\", 2);\n\t}\n",
		"\t@Override\n\tpublic void onBackPressed() {\n\t\tfinish();\n\t}\n",
		"\tpublic void _idle() {\n\t}\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q\n%s", want, got)
		}
	}
}

func TestGenerate_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		logic   string
		want    error
		wantTag string
	}{
		{"unknown statement", "@MainActivity.java_button1_onClick\n1\t0\tlaunchRocket\t[]\n", decodeerr.ErrUnsupportedBlock, "launchRocket"},
		{"unknown expression", "@MainActivity.java_button1_onClick\n1\t0\tsetText\t[@label, [frobnicate]]\n", decodeerr.ErrUnsupportedBlock, "frobnicate"},
		{"missing parameter", "@MainActivity.java_button1_onClick\n1\t0\tsetText\t[@label]\n", decodeerr.ErrUnsupportedBlock, "setText"},
		{"unknown event", "@MainActivity.java_button1_onSwipe\n", decodeerr.ErrUnsupportedEvent, "onSwipe"},
		{"unknown identifier", "@MainActivity.java_button1_onClick\n1\t0\tincreaseInt\t[@ghost]\n", decodeerr.ErrUnresolvedReference, "ghost"},
		{"handler on missing view", "@MainActivity.java_nothere_onClick\n", decodeerr.ErrUnresolvedReference, "nothere"},
		{"unknown screen", "@MainActivity.java_components\nintent\tgo\t\n@MainActivity.java_button1_onClick\n1\t0\tintentSetScreen\t[@go, \"third\"]\n", decodeerr.ErrUnresolvedReference, "third"},
		{"missing image", "@MainActivity.java_button1_onClick\n1\t0\tsetImage\t[@label, %nope]\n", decodeerr.ErrUnresolvedReference, "nope"},
		{"undeclared more-block", "@MainActivity.java_button1_onClick\n1\t0\tcallFunc\t[@reset]\n", decodeerr.ErrUnresolvedReference, "reset"},
		{"unknown component", "@MainActivity.java_components\nbluetooth\tbt\t\n", decodeerr.ErrUnsupportedComponent, "bluetooth"},
		{"timer without component", "@MainActivity.java_button1_onClick\n1\t0\ttimerAfter\t[@label, 10]\n", decodeerr.ErrUnresolvedReference, "@label"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Generate(input(t, tt.logic, mainView))
			if !errors.Is(err, tt.want) {
				t.Fatalf("Generate() error = %v, want %v", err, tt.want)
			}
			var de *decodeerr.Error
			errors.As(err, &de)
			if de.Tag != tt.wantTag || de.Screen != "MainActivity" {
				t.Errorf("error context = tag %q screen %q", de.Tag, de.Screen)
			}
		})
	}
}

func TestGenerate_UnsupportedBlockNamesHandler(t *testing.T) {
	t.Parallel()

	_, err := Generate(input(t, "@MainActivity.java_button1_onClick\n\n7\t0\tlaunchRocket\t[]\n", mainView))
	var de *decodeerr.Error
	if !errors.As(err, &de) {
		t.Fatalf("Generate() error = %v, want *decodeerr.Error", err)
	}
	if de.Handler != "MainActivity.java_button1_onClick" || de.Line != 3 {
		t.Errorf("handler %q line %d", de.Handler, de.Line)
	}
}
