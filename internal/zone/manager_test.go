package zone

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/likipe/zonekit/internal/view"
)

type recorder struct {
	log []string
}

func (r *recorder) add(s string) { r.log = append(r.log, s) }

type testView struct {
	view.Base
	text   string
	closed int
	keys   int
	others int
}

func (v *testView) Render() string { return v.SetContent(v.text) }

func (v *testView) Close() {
	v.closed++
	v.Base.Close()
}

func (v *testView) Update(msg tea.Msg) tea.Cmd {
	if _, ok := msg.(tea.KeyMsg); ok {
		v.keys++
	} else {
		v.others++
	}
	return nil
}

// trackedFactory records CloseZone calls and events into rec.
func trackedFactory(rec *recorder, name, text string) (*FuncFactory, *[]*testView) {
	var made []*testView
	f := NewFuncFactory(func() view.View {
		v := &testView{text: text}
		made = append(made, v)
		return v
	}, func() { rec.add(name + ":closeZone") })
	f.On(Created, func(view.View) { rec.add(name + ":created") })
	f.On(Closed, func(view.View) { rec.add(name + ":closed") })
	return f, &made
}

func TestFactory_IDsAreUniqueAndStable(t *testing.T) {
	a := NewFuncFactory(nil, nil)
	b := NewFuncFactory(nil, nil)

	require.True(t, strings.HasPrefix(a.ID(), "viewZoneFactory-"))
	require.Equal(t, a.ID(), a.ID())
	require.NotEqual(t, a.ID(), b.ID())
}

func TestManager_InstallOnEmptyZone(t *testing.T) {
	rec := &recorder{}
	m := NewManager("header", "main")
	f, made := trackedFactory(rec, "tasks", "task list")

	require.NoError(t, m.SetZoneContents("main", f))
	require.Equal(t, []string{"tasks:created"}, rec.log)
	require.Len(t, *made, 1)
	require.Equal(t, "task list", m.Container("main").Content())
	require.Equal(t, map[string]Factory{"main": f}, m.CurrentZones())
}

func TestManager_SameFactoryIsIdempotent(t *testing.T) {
	rec := &recorder{}
	m := NewManager("main")
	f, made := trackedFactory(rec, "tasks", "x")

	require.NoError(t, m.SetZoneContents("main", f))
	require.NoError(t, m.SetZoneContents("main", f))

	require.Equal(t, []string{"tasks:created"}, rec.log)
	require.Len(t, *made, 1)
	require.Zero(t, (*made)[0].closed)
}

func TestManager_DifferentFactoryClosesThenCreates(t *testing.T) {
	rec := &recorder{}
	m := NewManager("main")
	a, madeA := trackedFactory(rec, "a", "A")
	b, _ := trackedFactory(rec, "b", "B")

	require.NoError(t, m.SetZoneContents("main", a))
	rec.log = nil
	require.NoError(t, m.SetZoneContents("main", b))

	require.Equal(t, []string{"a:closeZone", "a:closed", "b:created"}, rec.log)
	require.Equal(t, 1, (*madeA)[0].closed, "manager closes the replaced view")
	require.Equal(t, "B", m.Container("main").Content())
	require.Equal(t, b, m.Factory("main"))
}

func TestManager_ClearZone(t *testing.T) {
	rec := &recorder{}
	m := NewManager("main")
	f, made := trackedFactory(rec, "a", "A")

	require.NoError(t, m.SetZoneContents("main", f))
	rec.log = nil

	require.NoError(t, m.ClearZoneContents("main"))
	require.Equal(t, []string{"a:closeZone", "a:closed"}, rec.log)
	require.Empty(t, m.CurrentZones())
	require.Nil(t, m.Container("main").View())
	require.Equal(t, 1, (*made)[0].closed)

	rec.log = nil
	require.NoError(t, m.SetZoneContents("main", nil))
	require.Empty(t, rec.log, "clearing an empty zone is a no-op")
}

func TestManager_InvalidZoneFailsBeforeMutation(t *testing.T) {
	rec := &recorder{}
	m := NewManager("header", "main")
	a, _ := trackedFactory(rec, "a", "A")
	b, _ := trackedFactory(rec, "b", "B")
	require.NoError(t, m.SetZoneContents("main", a))
	rec.log = nil

	err := m.SetZoneContents("sidebar", b)
	require.ErrorIs(t, err, ErrInvalidZone)
	require.ErrorIs(t, m.ClearZoneContents("sidebar"), ErrInvalidZone)

	err = m.SetZoneGroup(Group{
		{Zone: "main", Factory: b},
		{Zone: "sidebar", Factory: b},
	})
	require.ErrorIs(t, err, ErrInvalidZone)
	require.Empty(t, rec.log)
	require.Equal(t, a, m.Factory("main"))
}

func TestManager_SetZoneGroupAppliesInOrder(t *testing.T) {
	rec := &recorder{}
	m := NewManager("header", "main", "footer")
	h, _ := trackedFactory(rec, "h", "H")
	a, _ := trackedFactory(rec, "a", "A")
	f, _ := trackedFactory(rec, "f", "F")
	require.NoError(t, m.SetZoneContents("footer", f))
	rec.log = nil

	require.NoError(t, m.SetZoneGroup(Group{
		{Zone: "main", Factory: a},
		{Zone: "header", Factory: h},
	}))
	require.Equal(t, []string{"a:created", "h:created"}, rec.log)
	require.Len(t, m.CurrentZones(), 3, "footer left untouched")

	rec.log = nil
	require.NoError(t, m.SetZoneGroup(Group{{Zone: "header", Factory: nil}}))
	require.Equal(t, []string{"h:closeZone", "h:closed"}, rec.log)
}

func TestManager_NilViewLeavesZoneEmpty(t *testing.T) {
	released := 0
	m := NewManager("main")
	f := NewFuncFactory(func() view.View { return nil }, func() { released++ })

	err := m.SetZoneContents("main", f)
	require.ErrorIs(t, err, ErrNilView)
	require.Empty(t, m.CurrentZones())
	require.Equal(t, 1, released)
}

func TestManager_TypedNilViewIsRejected(t *testing.T) {
	m := NewManager("main")
	released := 0
	f := NewFuncFactory(func() view.View {
		var fn *view.Func
		return fn
	}, func() { released++ })

	err := m.SetZoneContents("main", f)
	require.ErrorIs(t, err, ErrNilView)
	require.Empty(t, m.CurrentZones())
	require.Nil(t, m.Container("main").View())
	require.Equal(t, 1, released)
	require.Equal(t, "", m.Render())
}

func TestManager_RenderUsesLayout(t *testing.T) {
	rec := &recorder{}
	m := NewManager("header", "main", "footer")
	h, _ := trackedFactory(rec, "h", "HEAD")
	a, _ := trackedFactory(rec, "a", "BODY")
	require.NoError(t, m.SetZoneGroup(Group{{Zone: "header", Factory: h}, {Zone: "main", Factory: a}}))

	require.Equal(t, "HEAD\nBODY", m.Render())

	m.SetLayout(func(names []string, blocks map[string]string) string {
		return blocks["main"] + "|" + blocks["header"]
	})
	require.Equal(t, "BODY|HEAD", m.Content())
}

func TestManager_UpdateRoutesKeysToFocus(t *testing.T) {
	rec := &recorder{}
	m := NewManager("header", "main")
	h, madeH := trackedFactory(rec, "h", "H")
	a, madeA := trackedFactory(rec, "a", "A")
	require.NoError(t, m.SetZoneGroup(Group{{Zone: "header", Factory: h}, {Zone: "main", Factory: a}}))

	require.ErrorIs(t, m.Focus("nope"), ErrInvalidZone)
	require.NoError(t, m.Focus("main"))
	require.Equal(t, "main", m.Focused())

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	require.Equal(t, 0, (*madeH)[0].keys)
	require.Equal(t, 1, (*madeA)[0].keys)
	require.Equal(t, 1, (*madeH)[0].others)
	require.Equal(t, 1, (*madeA)[0].others)
}

func TestManager_CloseClosesEveryZone(t *testing.T) {
	rec := &recorder{}
	m := NewManager("header", "main", "footer")
	h, madeH := trackedFactory(rec, "h", "H")
	a, madeA := trackedFactory(rec, "a", "A")
	require.NoError(t, m.SetZoneGroup(Group{{Zone: "header", Factory: h}, {Zone: "main", Factory: a}}))
	rec.log = nil

	m.Close()
	require.Equal(t, []string{"h:closeZone", "h:closed", "a:closeZone", "a:closed"}, rec.log)
	require.Equal(t, 1, (*madeH)[0].closed)
	require.Equal(t, 1, (*madeA)[0].closed)
	require.Empty(t, m.Zones())
	require.ErrorIs(t, m.SetZoneContents("main", a), ErrInvalidZone)
}
