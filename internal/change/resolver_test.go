package change_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sniper/internal/change"
	"sniper/internal/model"
)

type fixture struct {
	factory *model.Factory
	unit    *model.Element
	class   *model.Element
	method  *model.Element
	coll    *change.Collector
	res     *change.Resolver
}

func newFixture() *fixture {
	f := model.NewFactory()
	cu := f.New(model.KindCompilationUnit)
	cls := f.Named(model.KindClass, "A")
	cu.Attach(model.RoleDeclaredType, cls)
	cls.Attach(model.RoleTypeMember, f.Field("int", "x", ""))
	m := f.Named(model.KindMethod, "run")
	m.Attach(model.RoleType, f.Text(model.KindTypeRef, "void"))
	m.Attach(model.RoleParameter, f.Parameter("String", "a", false))
	m.Attach(model.RoleParameter, f.Parameter("int", "b", false))
	cls.Attach(model.RoleTypeMember, m)

	coll := change.NewCollector().Attach(f)
	return &fixture{factory: f, unit: cu, class: cls, method: m, coll: coll, res: change.NewResolver(coll)}
}

func TestNothingTouched(t *testing.T) {
	fx := newFixture()
	assert.Equal(t, change.Unmodified, fx.res.IsRoleModified(fx.class, model.RoleTypeMember))
	assert.Equal(t, change.Unmodified, fx.res.IsRoleModified(fx.method, model.RoleName))
	assert.False(t, fx.res.IsElementModified(fx.unit))
	assert.Equal(t, 0, fx.coll.Changes())
}

func TestRenamePropagatesThroughRoles(t *testing.T) {
	fx := newFixture()
	fx.method.SetName("execute")

	tests := []struct {
		name string
		el   *model.Element
		role model.Role
		want change.Result
	}{
		{"renamed attribute", fx.method, model.RoleName, change.Modified},
		{"sibling attribute", fx.method, model.RoleParameter, change.Unmodified},
		{"members of class", fx.class, model.RoleTypeMember, change.Unknown},
		{"class name", fx.class, model.RoleName, change.Unmodified},
		{"declared types of unit", fx.unit, model.RoleDeclaredType, change.Unknown},
		{"nil element", nil, model.RoleName, change.Unmodified},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fx.res.IsRoleModified(tt.el, tt.role))
		})
	}

	field := fx.class.Member("x")
	assert.False(t, fx.res.IsElementModified(field))
	assert.True(t, fx.res.IsElementModified(fx.method))
	assert.Equal(t, model.RoleSet(0).With(model.RoleName), fx.coll.DirectRoles(fx.method))
}

func TestRemovalMarksOwnerOnly(t *testing.T) {
	fx := newFixture()
	b := fx.method.Parameter("b")
	b.Delete()

	assert.Equal(t, change.Unknown, fx.res.IsRoleModified(fx.method, model.RoleParameter))
	assert.False(t, fx.res.IsElementModified(fx.method.Parameter("a")))
	assert.Equal(t, []model.Role{model.RoleParameter}, fx.res.ModifiedRoles(fx.method))
}

func TestLeafValueChange(t *testing.T) {
	fx := newFixture()
	fx.method.Child(model.RoleType).SetValue("int")

	assert.Equal(t, change.Modified, fx.res.IsRoleModified(fx.method, model.RoleType))
	assert.True(t, fx.coll.WasRoleTouched(fx.method.Child(model.RoleType), model.RoleNone))

	fx.coll.Reset()
	assert.False(t, fx.res.IsElementModified(fx.method))
	assert.Equal(t, "unknown", change.Unknown.String())
}
