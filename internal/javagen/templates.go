package javagen

import (
	"fmt"
	"maps"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/papapumpkin/asperge/internal/logic"
)

// Template is the Java text of one block or expression. Slots are written
// {N} for argument N, {N:mod} to apply a modifier (int, class, visibility,
// drawable, func) and {*N} for every argument from N on. Literal braces are
// doubled.
type Template struct {
	Format  string   `toml:"format"`
	Imports []string `toml:"imports"`
}

// Templates holds the statement and expression tables keyed by opcode.
type Templates struct {
	Statements  map[string]Template `toml:"statements"`
	Expressions map[string]Template `toml:"expressions"`
}

const (
	importToast = "android.widget.Toast"
	importView  = "android.view.View"
	importRand  = "java.util.Random"
)

var defaultStatements = map[string]Template{
	"setVarInt":          {Format: "{0} = {1};"},
	"setVarString":       {Format: "{0} = {1};"},
	"setVarBoolean":      {Format: "{0} = {1};"},
	"increaseInt":        {Format: "{0}++;"},
	"decreaseInt":        {Format: "{0}--;"},
	"setText":            {Format: "{0}.setText({1});"},
	"setHint":            {Format: "{0}.setHint({1});"},
	"setTextColor":       {Format: "{0}.setTextColor({1:int});"},
	"setBgColor":         {Format: "{0}.setBackgroundColor({1:int});"},
	"setImage":           {Format: "{0}.setImageResource({1:drawable});"},
	"setEnable":          {Format: "{0}.setEnabled({1});"},
	"setChecked":         {Format: "{0}.setChecked({1});"},
	"setVisible":         {Format: "{0}.setVisibility({1:visibility});", Imports: []string{importView}},
	"requestFocus":       {Format: "{0}.requestFocus();"},
	"setProgress":        {Format: "{0}.setProgress({1:int});"},
	"webViewLoadUrl":     {Format: "{0}.loadUrl({1});"},
	"doToast":            {Format: "Toast.makeText(getApplicationContext(), {0}, Toast.LENGTH_SHORT).show();", Imports: []string{importToast}},
	"finishActivity":     {Format: "finish();"},
	"break":              {Format: "break;"},
	"callFunc":           {Format: "{0:func}({*1});"},
	"addListStr":         {Format: "{0}.add({1});"},
	"addListNum":         {Format: "{0}.add(Double.valueOf({1}));"},
	"addListMap":         {Format: "{0}.add({1});"},
	"deleteList":         {Format: "{0}.remove({1:int});"},
	"clearList":          {Format: "{0}.clear();"},
	"mapPut":             {Format: "{0}.put({1}, {2});"},
	"mapRemove":          {Format: "{0}.remove({1});"},
	"mapClear":           {Format: "{0}.clear();"},
	"intentSetScreen":    {Format: "{0}.setClass(getApplicationContext(), {1:class});"},
	"intentPutExtra":     {Format: "{0}.putExtra({1}, {2});"},
	"startActivity":      {Format: "startActivity({0});"},
	"spSetData":          {Format: "{0}.edit().putString({1}, {2}).commit();"},
	"spRemoveData":       {Format: "{0}.edit().remove({1}).commit();"},
	"timerCancel":        {Format: "{0}.cancel();"},
	"vibratorAction":     {Format: "{0}.vibrate((long)({1}));"},
	"dialogSetTitle":     {Format: "{0}.setTitle({1});"},
	"dialogSetMessage":   {Format: "{0}.setMessage({1});"},
	"dialogShow":         {Format: "{0}.create().show();"},
	"calendarGetNow":     {Format: "{0} = Calendar.getInstance();"},
	"calendarAdd":        {Format: "{0}.add({1:int}, {2:int});"},
	"calendarSetTime":    {Format: "{0}.setTimeInMillis((long)({1}));"},
	"seekBarSetMax":      {Format: "{0}.setMax({1:int});"},
	"progressBarSetMax":  {Format: "{0}.setMax({1:int});"},
	"editTextSetEnabled": {Format: "{0}.setEnabled({1});"},
}

var defaultExpressions = map[string]Template{
	"toString":            {Format: "String.valueOf((long)({0}))"},
	"toStringWithDecimal": {Format: "String.valueOf({0})"},
	"toNumber":            {Format: "Double.parseDouble({0})"},
	"getText":             {Format: "{0}.getText().toString()"},
	"isChecked":           {Format: "{0}.isChecked()"},
	"getProgress":         {Format: "{0}.getProgress()"},
	"and":                 {Format: "({0} && {1})"},
	"or":                  {Format: "({0} || {1})"},
	"not":                 {Format: "!({0})"},
	"eq":                  {Format: "({0} == {1})"},
	"lt":                  {Format: "({0} < {1})"},
	"gt":                  {Format: "({0} > {1})"},
	"plus":                {Format: "({0} + {1})"},
	"minus":               {Format: "({0} - {1})"},
	"multiply":            {Format: "({0} * {1})"},
	"divide":              {Format: "({0} / {1})"},
	"mod":                 {Format: "({0} % {1})"},
	"random":              {Format: "(new Random().nextInt({1:int} - {0:int} + 1) + {0:int})", Imports: []string{importRand}},
	"stringEquals":        {Format: "{0}.equals({1})"},
	"stringJoin":          {Format: "{0}.concat({1})"},
	"stringLength":        {Format: "{0}.length()"},
	"stringContains":      {Format: "{0}.contains({1})"},
	"stringIndex":         {Format: "{1}.indexOf({0})"},
	"stringSub":           {Format: "{0}.substring({1:int}, {2:int})"},
	"trim":                {Format: "{0}.trim()"},
	"toUpperCase":         {Format: "{0}.toUpperCase()"},
	"toLowerCase":         {Format: "{0}.toLowerCase()"},
	"lengthList":          {Format: "{0}.size()"},
	"getAtListStr":        {Format: "{0}.get({1:int})"},
	"getAtListNum":        {Format: "{0}.get({1:int})"},
	"getAtListMap":        {Format: "{0}.get({1:int})"},
	"containListStr":      {Format: "{0}.contains({1})"},
	"mapGet":              {Format: "{0}.get({1}).toString()"},
	"mapContainKey":       {Format: "{0}.containsKey({1})"},
	"spGetData":           {Format: "{0}.getString({1}, \"\")"},
	"intentGetString":     {Format: "getIntent().getStringExtra({0})"},
	"calendarGetTime":     {Format: "{0}.getTimeInMillis()"},
	"currentTime":         {Format: "System.currentTimeMillis()"},
	"callFuncValue":       {Format: "{0:func}({*1})"},
}

// Default returns a copy of the built-in tables.
func Default() *Templates {
	return &Templates{
		Statements:  maps.Clone(defaultStatements),
		Expressions: maps.Clone(defaultExpressions),
	}
}

// LoadTemplates returns the built-in tables extended by the [statements]
// and [expressions] sections of the TOML file at path. Entries in the file
// replace built-in entries with the same opcode.
func LoadTemplates(path string) (*Templates, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading templates: %w", err)
	}
	var file Templates
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing templates %s: %w", path, err)
	}

	t := Default()
	for op, tmpl := range file.Statements {
		if logic.IsControl(op) || op == logic.OpElseIf || op == logic.OpElse || op == logic.OpLocalVar {
			return nil, fmt.Errorf("templates %s: %q is a structural block and cannot be overridden", path, op)
		}
		if _, err := parseFormat(tmpl.Format); err != nil {
			return nil, fmt.Errorf("templates %s: statement %q: %w", path, op, err)
		}
		t.Statements[op] = tmpl
	}
	for op, tmpl := range file.Expressions {
		if _, err := parseFormat(tmpl.Format); err != nil {
			return nil, fmt.Errorf("templates %s: expression %q: %w", path, op, err)
		}
		t.Expressions[op] = tmpl
	}
	return t, nil
}

// segment is a literal run or a slot of a parsed template format.
type segment struct {
	lit      string
	slot     int
	mod      string
	variadic bool
	isSlot   bool
}

var modifiers = map[string]bool{"": true, "int": true, "class": true, "visibility": true, "drawable": true, "func": true}

func parseFormat(format string) ([]segment, error) {
	var (
		segs []segment
		lit  strings.Builder
	)
	flush := func() {
		if lit.Len() > 0 {
			segs = append(segs, segment{lit: lit.String()})
			lit.Reset()
		}
	}
	for i := 0; i < len(format); i++ {
		c := format[i]
		switch {
		case c == '{' && i+1 < len(format) && format[i+1] == '{':
			lit.WriteByte('{')
			i++
		case c == '}' && i+1 < len(format) && format[i+1] == '}':
			lit.WriteByte('}')
			i++
		case c == '}':
			return nil, fmt.Errorf("unmatched '}' at offset %d", i)
		case c == '{':
			end := strings.IndexByte(format[i:], '}')
			if end < 0 {
				return nil, fmt.Errorf("unterminated slot at offset %d", i)
			}
			seg, err := parseSlot(format[i+1 : i+end])
			if err != nil {
				return nil, err
			}
			flush()
			segs = append(segs, seg)
			i += end
		default:
			lit.WriteByte(c)
		}
	}
	flush()
	return segs, nil
}

func parseSlot(body string) (segment, error) {
	seg := segment{isSlot: true}
	if strings.HasPrefix(body, "*") {
		seg.variadic = true
		body = body[1:]
	}
	idx, mod, _ := strings.Cut(body, ":")
	n, err := strconv.Atoi(idx)
	if err != nil || n < 0 {
		return segment{}, fmt.Errorf("invalid slot {%s}", body)
	}
	if !modifiers[mod] {
		return segment{}, fmt.Errorf("unknown slot modifier %q", mod)
	}
	if seg.variadic && mod != "" {
		return segment{}, fmt.Errorf("variadic slot {*%s} cannot take a modifier", body)
	}
	seg.slot, seg.mod = n, mod
	return seg, nil
}
