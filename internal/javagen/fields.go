package javagen

import (
	"github.com/papapumpkin/asperge/internal/decodeerr"
	"github.com/papapumpkin/asperge/internal/records"
)

// Component kinds of the logic components section.
const (
	CompIntent  = "intent"
	CompPrefs   = "sharedpreferences"
	CompTimer   = "timer"
	CompCal     = "calendar"
	CompVibrate = "vibrator"
	CompDialog  = "dialog"
)

type componentDecl struct {
	field   string // field declaration with %s for the name
	init    string // initialize() statement with %[1]s name and %[2]s param, or ""
	imports []string
}

var componentDecls = map[string]componentDecl{
	CompIntent: {field: "private Intent %s = new Intent();", imports: []string{"android.content.Intent"}},
	CompPrefs: {
		field:   "private SharedPreferences %s;",
		init:    "%[1]s = getSharedPreferences(%[2]s, Activity.MODE_PRIVATE);",
		imports: []string{"android.content.SharedPreferences", "android.app.Activity"},
	},
	CompTimer: {field: "private TimerTask %s;", imports: []string{"java.util.Timer", "java.util.TimerTask"}},
	CompCal:   {field: "private Calendar %s = Calendar.getInstance();", imports: []string{"java.util.Calendar"}},
	CompVibrate: {
		field:   "private Vibrator %s;",
		init:    "%[1]s = (Vibrator) getSystemService(Context.VIBRATOR_SERVICE);",
		imports: []string{"android.os.Vibrator", "android.content.Context"},
	},
	CompDialog: {
		field:   "private AlertDialog.Builder %s;",
		init:    "%[1]s = new AlertDialog.Builder(this);",
		imports: []string{"android.app.AlertDialog"},
	},
}

var varFields = map[int]string{
	records.VarBoolean: "private boolean %s = false;",
	records.VarNumber:  "private double %s = 0;",
	records.VarString:  "private String %s = \"\";",
	records.VarMap:     "private HashMap<String, Object> %s = new HashMap<>();",
}

var listFields = map[int]string{
	records.ListNumber: "private ArrayList<Double> %s = new ArrayList<>();",
	records.ListString: "private ArrayList<String> %s = new ArrayList<>();",
	records.ListMap:    "private ArrayList<HashMap<String, Object>> %s = new ArrayList<>();",
}

// fields emits activity members: the shared timer, variables, lists,
// components and one field per referenced view.
func (g *generator) fields() error {
	w := g.w
	for _, c := range g.tree.Components {
		if _, ok := componentDecls[c.Kind]; !ok {
			return g.fail(decodeerr.KindUnsupportedComponent, c.Kind, "component %q has no mapping entry", c.Name)
		}
		g.kinds[c.Name] = c.Kind
		if c.Kind == CompTimer && !g.members["_timer"] {
			g.members["_timer"] = true
			w.blank()
			w.line("private Timer _timer = new Timer();")
		}
	}

	if len(g.tree.Vars) > 0 || len(g.tree.Lists) > 0 || len(g.tree.Components) > 0 {
		w.blank()
	}
	for _, v := range g.tree.Vars {
		if v.Type == records.VarMap {
			g.imports["java.util.HashMap"] = true
		}
		g.members[v.Name] = true
		w.line(varFields[v.Type], v.Name)
	}
	for _, l := range g.tree.Lists {
		g.imports["java.util.ArrayList"] = true
		if l.Type == records.ListMap {
			g.imports["java.util.HashMap"] = true
		}
		g.members[l.Name] = true
		w.line(listFields[l.Type], l.Name)
	}
	for _, c := range g.tree.Components {
		d := componentDecls[c.Kind]
		for _, imp := range d.imports {
			g.imports[imp] = true
		}
		g.members[c.Name] = true
		w.line(d.field, c.Name)
	}

	views := g.referencedViews()
	if len(views) > 0 {
		w.blank()
	}
	for _, e := range views {
		if g.members[e.ID] {
			return g.fail(decodeerr.KindUnresolvedReference, e.ID, "view id %q collides with a declared name", e.ID)
		}
		g.imports[e.Component.Import()] = true
		w.line("private %s %s;", e.Component.Widget, e.ID)
	}
	return nil
}

// initialize emits the setup method: view lookups, component construction
// and listener binding for every view event handler.
func (g *generator) initialize() error {
	w := g.w
	w.blank()
	w.open("private void initialize(Bundle _savedInstanceState) {")
	for _, e := range g.referencedViews() {
		w.line("%[1]s = findViewById(R.id.%[1]s);", e.ID)
	}
	for _, c := range g.tree.Components {
		d := componentDecls[c.Kind]
		if d.init == "" {
			continue
		}
		param := c.Param
		if param == "" {
			param = c.Name
		}
		w.line(d.init, c.Name, javaString(param))
	}
	if err := g.listeners(); err != nil {
		return err
	}
	w.close("}")
	return nil
}
