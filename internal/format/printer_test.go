package format_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sniper/internal/format"
	"sniper/internal/model"
)

func sampleClass(f *model.Factory) *model.Element {
	cls := f.Named(model.KindClass, "A")
	cls.Attach(model.RoleModifier, f.Modifier("public"))
	cls.Attach(model.RoleSuperclass, f.Text(model.KindTypeRef, "B"))
	cls.Attach(model.RoleInterface, f.Text(model.KindTypeRef, "I"))
	cls.Attach(model.RoleInterface, f.Text(model.KindTypeRef, "J"))
	cls.Attach(model.RoleTypeMember, f.Field("int", "x", "1", "private"))

	run := f.Named(model.KindMethod, "run")
	run.Attach(model.RoleComment, f.Text(model.KindComment, "/** doc */"))
	run.Attach(model.RoleType, f.Text(model.KindTypeRef, "void"))
	run.Attach(model.RoleParameter, f.Parameter("String", "a", false))
	run.Attach(model.RoleParameter, f.Parameter("int", "rest", true))
	run.Attach(model.RoleThrown, f.Text(model.KindTypeRef, "IOException"))
	body := f.New(model.KindBlock)
	body.Attach(model.RoleStatement, f.Text(model.KindStatement, "return;"))
	run.Attach(model.RoleBody, body)
	cls.Attach(model.RoleTypeMember, run)
	return cls
}

func TestSourceClass(t *testing.T) {
	f := model.NewFactory()
	got := string(format.Source(sampleClass(f), format.Options{UseTabs: true}))
	want := "public class A extends B implements I, J {\n" +
		"\tprivate int x = 1;\n" +
		"\n" +
		"\t/** doc */\n" +
		"\tvoid run(String a, int... rest) throws IOException {\n" +
		"\t\treturn;\n" +
		"\t}\n" +
		"}"
	assert.Equal(t, want, got)
}

func TestSourceUnitWithSpaces(t *testing.T) {
	f := model.NewFactory()
	cu := f.New(model.KindCompilationUnit)
	cu.Attach(model.RolePackage, f.Text(model.KindPackage, "package a;"))
	cu.Attach(model.RoleImport, f.Text(model.KindImport, "import x.Y;"))
	cu.Attach(model.RoleImport, f.Text(model.KindImport, "import x.Z;"))
	iface := f.Named(model.KindInterface, "Shape")
	iface.Attach(model.RoleInterface, f.Text(model.KindTypeRef, "Base"))
	area := f.Named(model.KindMethod, "area")
	area.Attach(model.RoleType, f.Text(model.KindTypeRef, "double"))
	iface.Attach(model.RoleTypeMember, area)
	cu.Attach(model.RoleDeclaredType, iface)
	cu.Attach(model.RoleDeclaredType, f.Named(model.KindClass, "Empty"))

	got := string(format.Source(cu, format.Options{IndentWidth: 2}))
	want := "package a;\n\n" +
		"import x.Y;\nimport x.Z;\n\n" +
		"interface Shape extends Base {\n  double area();\n}\n\n" +
		"class Empty {}\n"
	assert.Equal(t, want, got)
}

func TestSortModifiers(t *testing.T) {
	f := model.NewFactory()
	mods := []*model.Element{
		f.Modifier("final"), f.Modifier("static"), f.Modifier("@Deprecated"), f.Modifier("public"), f.Modifier("@Inject"),
	}
	var got []string
	for _, m := range format.SortModifiers(mods) {
		got = append(got, m.Value())
	}
	assert.Equal(t, []string{"@Deprecated", "@Inject", "public", "static", "final"}, got)
	assert.Equal(t, "final", mods[0].Value(), "input order untouched")
}

type recordingHooks struct {
	format.NopHooks
	events []string
}

func (h *recordingHooks) Element(role model.Role, _, child *model.Element, print func()) {
	h.events = append(h.events, "element "+role.String()+" "+child.Kind().String())
	print()
}

func (h *recordingHooks) Collection(role model.Role, _ *model.Element, items []*model.Element, print func()) {
	h.events = append(h.events, "collection "+role.String())
	print()
}

func TestHooksSeeRoles(t *testing.T) {
	f := model.NewFactory()
	fd := f.Field("int", "x", "", "private")
	h := &recordingHooks{}
	w := format.NewWriter(format.Options{}, 0)
	format.NewPrinter(w, h).Print(fd)

	assert.Equal(t, "private int x;", w.String())
	assert.Equal(t, []string{
		"collection modifier",
		"element modifier modifier",
		"element type type-ref",
	}, h.events)
}

func TestWriterSpacing(t *testing.T) {
	w := format.NewWriter(format.Options{UseTabs: true}, 0)
	w.Space()
	w.WriteString("a")
	w.Space()
	w.Space()
	w.WriteString("b")
	w.Raw(" ")
	w.Space()
	w.WriteString("c")
	w.IndentPush()
	w.Space()
	w.Newline()
	w.WriteString("d")
	w.Newline()
	w.Raw("e")
	w.Newline()
	w.Raw("  f")
	w.IndentPop()
	w.IndentPop()
	assert.Equal(t, "a b c\n\td\n\te\n  f", w.String())
	assert.Equal(t, 0, w.Indent())
}

func TestOptionsResolve(t *testing.T) {
	tabbed := []byte("class A {\n\tint a;\n\n\tvoid m() {\n\t\tm();\n\t}\n}\n")
	spaced := []byte("class A {\n    int a;\n    /**\n     * doc\n     */\n    void m() {}\n}\n")

	assert.True(t, format.Options{InferTabs: true}.Resolve(tabbed).UseTabs)
	assert.False(t, format.Options{InferTabs: true}.Resolve(spaced).UseTabs)
	assert.False(t, format.Options{InferTabs: true}.Resolve(nil).UseTabs)
	assert.False(t, format.Options{}.Resolve(tabbed).UseTabs, "explicit spaces win")
	assert.True(t, format.Options{UseTabs: true}.Resolve(spaced).UseTabs, "explicit tabs win")

	resolved := format.Options{IndentWidth: 2, InferTabs: true}.Resolve(tabbed)
	assert.Equal(t, format.Options{IndentWidth: 2, UseTabs: true}, resolved)
}
