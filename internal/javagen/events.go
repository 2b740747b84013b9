package javagen

import (
	"strings"

	"github.com/papapumpkin/asperge/internal/decodeerr"
	"github.com/papapumpkin/asperge/internal/logic"
	"github.com/papapumpkin/asperge/internal/naming"
)

// eventParam is a listener argument forwarded to the handler method.
type eventParam struct {
	name  string // name blocks reference it by
	jtype string
	from  string // expression inside the listener
}

type listener struct {
	setter  string
	iface   string
	method  string
	ret     string
	param   *eventParam
	extra   []string // further callbacks the interface requires, left empty
	imports []string
}

var listeners = map[string]listener{
	"onClick": {
		setter: "setOnClickListener", iface: "View.OnClickListener",
		method:  "public void onClick(View _view)",
		imports: []string{"android.view.View"},
	},
	"onLongClick": {
		setter: "setOnLongClickListener", iface: "View.OnLongClickListener",
		method:  "public boolean onLongClick(View _view)",
		ret:     "return true;",
		imports: []string{"android.view.View"},
	},
	"onCheckedChange": {
		setter: "setOnCheckedChangeListener", iface: "CompoundButton.OnCheckedChangeListener",
		method:  "public void onCheckedChanged(CompoundButton _param1, boolean _param2)",
		param:   &eventParam{name: "isChecked", jtype: "boolean", from: "_param2"},
		imports: []string{"android.widget.CompoundButton"},
	},
	"onItemClicked": {
		setter: "setOnItemClickListener", iface: "AdapterView.OnItemClickListener",
		method:  "public void onItemClick(AdapterView<?> _param1, View _param2, int _param3, long _param4)",
		param:   &eventParam{name: "position", jtype: "int", from: "_param3"},
		imports: []string{"android.widget.AdapterView", "android.view.View"},
	},
	"onItemSelected": {
		setter: "setOnItemSelectedListener", iface: "AdapterView.OnItemSelectedListener",
		method:  "public void onItemSelected(AdapterView<?> _param1, View _param2, int _param3, long _param4)",
		param:   &eventParam{name: "position", jtype: "int", from: "_param3"},
		extra:   []string{"public void onNothingSelected(AdapterView<?> _param1)"},
		imports: []string{"android.widget.AdapterView", "android.view.View"},
	},
	"onProgressChanged": {
		setter: "setOnSeekBarChangeListener", iface: "SeekBar.OnSeekBarChangeListener",
		method: "public void onProgressChanged(SeekBar _param1, int _param2, boolean _param3)",
		param:  &eventParam{name: "progress", jtype: "int", from: "_param2"},
		extra: []string{
			"public void onStartTrackingTouch(SeekBar _param1)",
			"public void onStopTrackingTouch(SeekBar _param1)",
		},
		imports: []string{"android.widget.SeekBar"},
	},
	"onTextChanged": {
		setter: "addTextChangedListener", iface: "TextWatcher",
		method: "public void onTextChanged(CharSequence _param1, int _param2, int _param3, int _param4)",
		param:  &eventParam{name: "charSeq", jtype: "String", from: "_param1.toString()"},
		extra: []string{
			"public void beforeTextChanged(CharSequence _param1, int _param2, int _param3, int _param4)",
			"public void afterTextChanged(Editable _param1)",
		},
		imports: []string{"android.text.TextWatcher", "android.text.Editable"},
	},
}

type lifecycleMethod struct {
	signature string
	super     string
}

var lifecycles = map[string]lifecycleMethod{
	"onBackPressed": {signature: "public void onBackPressed()"},
	"onStart":       {signature: "protected void onStart()", super: "super.onStart();"},
	"onResume":      {signature: "protected void onResume()", super: "super.onResume();"},
	"onPause":       {signature: "protected void onPause()", super: "super.onPause();"},
	"onStop":        {signature: "protected void onStop()", super: "super.onStop();"},
	"onDestroy":     {signature: "protected void onDestroy()", super: "super.onDestroy();"},
	"onPostCreate": {
		signature: "protected void onPostCreate(Bundle _savedInstanceState)",
		super:     "super.onPostCreate(_savedInstanceState);",
	},
}

var funcParamTypes = map[byte]string{
	's': "String",
	'd': "double",
	'b': "boolean",
	'm': "HashMap<String, Object>",
}

// listenerFor validates a view handler's target and event.
func (g *generator) listenerFor(h *logic.Handler) (listener, error) {
	g.handler, g.line = h.Key, h.Line
	if _, ok := g.lookupView(h.Target); !ok {
		return listener{}, g.fail(decodeerr.KindUnresolvedReference, h.Target, "handler target is not a view of layout %q", g.in.Layout)
	}
	l, ok := listeners[h.Event]
	if !ok {
		return listener{}, g.fail(decodeerr.KindUnsupportedEvent, h.Event, "event has no listener mapping")
	}
	return l, nil
}

// listeners binds every view handler inside initialize().
func (g *generator) listeners() error {
	w := g.w
	for _, h := range g.tree.Handlers {
		if h.Kind != logic.HandlerView {
			continue
		}
		l, err := g.listenerFor(h)
		if err != nil {
			return err
		}
		for _, imp := range l.imports {
			g.imports[imp] = true
		}
		arg := ""
		if l.param != nil {
			arg = l.param.from
		}

		w.blank()
		w.open("%s.%s(new %s() {", h.Target, l.setter, l.iface)
		w.line("@Override")
		w.open("%s {", l.method)
		w.line("%s(%s);", naming.HandlerMethod(h.Target, h.Event), arg)
		if l.ret != "" {
			w.line("%s", l.ret)
		}
		w.close("}")
		for _, sig := range l.extra {
			w.blank()
			w.line("@Override")
			w.open("%s {", sig)
			w.close("}")
		}
		w.close("});")
	}
	return nil
}

func (g *generator) viewHandler(h *logic.Handler) error {
	l, err := g.listenerFor(h)
	if err != nil {
		return err
	}
	decl, params := "", map[string]string{}
	if p := l.param; p != nil {
		decl = "final " + p.jtype + " " + naming.Param(p.name)
		params[p.name] = naming.Param(p.name)
	}
	g.w.blank()
	g.w.open("public void %s(%s) {", naming.HandlerMethod(h.Target, h.Event), decl)
	if err := g.body(h, params); err != nil {
		return err
	}
	g.w.close("}")
	return nil
}

func (g *generator) lifecycle(h *logic.Handler) error {
	g.handler, g.line = h.Key, h.Line
	m, ok := lifecycles[h.Target]
	if !ok {
		return g.fail(decodeerr.KindUnsupportedEvent, h.Event, "no lifecycle override")
	}
	g.w.blank()
	g.w.line("@Override")
	g.w.open("%s {", m.signature)
	if m.super != "" {
		g.w.line("%s", m.super)
	}
	if err := g.body(h, nil); err != nil {
		return err
	}
	g.w.close("}")
	return nil
}

func (g *generator) moreBlock(h *logic.Handler) error {
	g.handler, g.line = h.Key, h.Line
	fn, ok := g.tree.Func(h.Target)
	if !ok {
		return g.fail(decodeerr.KindUnresolvedReference, h.Target, "more-block body without a declaration")
	}
	var decls []string
	params := map[string]string{}
	for _, p := range fn.Params {
		jtype := funcParamTypes[p.Type]
		if p.Type == 'm' {
			g.imports["java.util.HashMap"] = true
		}
		decls = append(decls, "final "+jtype+" "+naming.Param(p.Name))
		params[p.Name] = naming.Param(p.Name)
	}
	g.w.blank()
	g.w.open("public void %s(%s) {", naming.HandlerMethod(fn.Name, ""), strings.Join(decls, ", "))
	if err := g.body(h, params); err != nil {
		return err
	}
	g.w.close("}")
	return nil
}
