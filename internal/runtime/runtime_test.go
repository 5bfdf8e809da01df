package runtime

import (
	"bytes"
	"context"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/risor-io/risor/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jward/tagalong"
	"github.com/jward/tagalong/scripts"
)

func evalFloat(t *testing.T, rt *Runtime, src string) float64 {
	t.Helper()
	result, err := rt.EvalSource(context.Background(), src, nil)
	require.NoError(t, err)
	f, ok := result.(*object.Float)
	require.True(t, ok, "expected float, got %s", result.Type())
	return f.Value()
}

// --- Host function tests ---

func TestEfficiency_HostFunction(t *testing.T) {
	t.Parallel()
	rt := NewRuntime("")

	assert.InDelta(t, 0.4, evalFloat(t, rt, `efficiency(rectangle(1, 4))`), 1e-9)
	assert.InDelta(t, 1.0, evalFloat(t, rt, `efficiency(rectangle(4, 4))`), 1e-9)
	assert.InDelta(t, 2.0, evalFloat(t, rt, `efficiency(circle(4))`), 1e-9)
}

func TestEfficiency_ZeroPerimeterRaises(t *testing.T) {
	t.Parallel()
	rt := NewRuntime("")

	err := rt.RunSource(context.Background(), `efficiency(rectangle(0, 0))`, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "division by zero")
	assert.Contains(t, err.Error(), "<inline>")
}

func TestAreaPerimeter_HostFunctions(t *testing.T) {
	t.Parallel()
	rt := NewRuntime("")

	assert.InDelta(t, 4.0, evalFloat(t, rt, `area(rectangle(1, 4))`), 1e-9)
	assert.InDelta(t, 10.0, evalFloat(t, rt, `perimeter(rectangle(1, 4))`), 1e-9)
	assert.InDelta(t, 2.5*2.5*math.Pi, evalFloat(t, rt, `area(circle(2.5))`), 1e-9)
}

func TestDetectCircle_HostFunction(t *testing.T) {
	t.Parallel()
	rt := NewRuntime("")

	script := `
r := detect_circle(rectangle(4, 4))
assert(r[0] == 0.0, 'expected radius 0, got {r[0]}')
assert(r[1] == false, 'expected false for rectangle')

c := detect_circle(circle(4))
assert(c[0] == 4.0, 'expected radius 4, got {c[0]}')
assert(c[1] == true, 'expected true for circle')
`
	err := rt.RunSource(context.Background(), script, nil)
	require.NoError(t, err)
}

func TestShape_FromMap(t *testing.T) {
	t.Parallel()
	rt := NewRuntime("")

	assert.InDelta(t, 0.4, evalFloat(t, rt, `efficiency(shape({"kind": "rectangle", "width": 1, "height": 4}))`), 1e-9)
	assert.InDelta(t, 2.0, evalFloat(t, rt, `efficiency(shape({"kind": "circle", "radius": 4}))`), 1e-9)
}

func TestShape_Square(t *testing.T) {
	t.Parallel()
	rt := NewRuntime("")

	assert.InDelta(t, 9.0, evalFloat(t, rt, `area(shape({"kind": "square", "side": 3}))`), 1e-9)
	assert.InDelta(t, 9.0, evalFloat(t, rt, `area(shape({"kind": "rectangle", "side": 3}))`), 1e-9)
	assert.InDelta(t, 9.0, evalFloat(t, rt, `area(shape({"kind": "square", "width": 3}))`), 1e-9)
	assert.InDelta(t, 6.0, evalFloat(t, rt, `area(shape({"kind": "square", "width": 3, "height": 2}))`), 1e-9)
}

func TestShape_BadDimensions(t *testing.T) {
	t.Parallel()
	rt := NewRuntime("")
	ctx := context.Background()

	tests := []struct {
		src  string
		want string
	}{
		{`shape({"kind": "rectangle", "width": 3})`, `missing "height"`},
		{`shape({"kind": "rectangle", "height": 3})`, `missing "width"`},
		{`shape({"kind": "circle"})`, `missing "radius"`},
		{`shape({"kind": "circle", "radius": "4"})`, `"radius" must be a number`},
		{`shape({"kind": "square", "side": nil})`, `"side" must be a number`},
		{`shape(4)`, "expected map"},
	}
	for _, tt := range tests {
		err := rt.RunSource(ctx, tt.src, nil)
		require.Error(t, err, tt.src)
		assert.Contains(t, err.Error(), tt.want, tt.src)
	}
}

func TestShape_UnknownKind(t *testing.T) {
	t.Parallel()
	rt := NewRuntime("")

	err := rt.RunSource(context.Background(), `shape({"kind": "triangle"})`, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown shape kind")
}

func TestScale_HostFunction(t *testing.T) {
	t.Parallel()
	rt := NewRuntime("")

	assert.InDelta(t, 24.0, evalFloat(t, rt, `
s := rectangle(2, 3)
scale(s, 2)
area(s)
`), 1e-9)
	assert.InDelta(t, 20.0, evalFloat(t, rt, `
s := rectangle(2, 3)
scale(s, 2)
perimeter(s)
`), 1e-9)
}

func TestShapeProxy_Methods(t *testing.T) {
	t.Parallel()
	rt := NewRuntime("")

	script := `
r := rectangle(1, 4)
assert(r.Kind() == "rectangle", 'got {r.Kind()}')
assert(r.Area() == 4.0, 'got {r.Area()}')
assert(r.Perimeter() == 10.0, 'got {r.Perimeter()}')

c := circle(1)
assert(c.Kind() == "circle", 'got {c.Kind()}')
`
	require.NoError(t, rt.RunSource(context.Background(), script, nil))
}

func TestHostFunctions_ArgumentErrors(t *testing.T) {
	t.Parallel()
	rt := NewRuntime("")
	ctx := context.Background()

	tests := []struct {
		src  string
		want string
	}{
		{`rectangle(1)`, "rectangle"},
		{`rectangle("a", 1)`, "must be a number"},
		{`circle()`, "circle"},
		{`efficiency(3)`, "expected shape"},
		{`detect_circle("circle")`, "expected shape"},
		{`scale(circle(1), "x")`, "must be a number"},
	}
	for _, tt := range tests {
		err := rt.RunSource(ctx, tt.src, nil)
		require.Error(t, err, tt.src)
		assert.Contains(t, err.Error(), tt.want, tt.src)
	}
}

func TestExtraGlobals(t *testing.T) {
	t.Parallel()
	rt := NewRuntime("")

	result, err := rt.EvalSource(context.Background(), `efficiency(circle(radius))`, map[string]any{"radius": 3})
	require.NoError(t, err)
	f, ok := result.(*object.Float)
	require.True(t, ok)
	assert.InDelta(t, 1.5, f.Value(), 1e-9)
}

func TestShapeObject_WrapsValues(t *testing.T) {
	t.Parallel()

	obj := newShapeObject(tagalong.Rectangle{Width: 1, Height: 2})
	obj.Scale(2)
	assert.Equal(t, &tagalong.Rectangle{Width: 2, Height: 4}, obj.shape)
	assert.Equal(t, "rectangle(2, 4)", obj.String())

	obj = newShapeObject(tagalong.Circle{Radius: 1.5})
	assert.Equal(t, "circle(1.5)", obj.String())
}

func TestLog_UsesLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	rt := NewRuntime("", WithLogger(logger))

	require.NoError(t, rt.RunSource(context.Background(), `log.Warn("thin rectangle")`, nil))
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), `msg="thin rectangle"`)
	assert.Contains(t, buf.String(), "source=script")
}

// --- Script loading tests ---

func TestRunScript_LoadsFile(t *testing.T) {
	dir := t.TempDir()

	scriptPath := filepath.Join(dir, "test.risor")
	if err := os.WriteFile(scriptPath, []byte(`result := efficiency(rectangle(1, 4))`), 0644); err != nil {
		t.Fatalf("writing script: %v", err)
	}

	rt := NewRuntime(dir)
	err := rt.RunScript(context.Background(), "test.risor", nil)
	if err != nil {
		t.Fatalf("RunScript: %v", err)
	}
}

func TestRunScript_MissingFile(t *testing.T) {
	rt := NewRuntime(t.TempDir())

	err := rt.RunScript(context.Background(), "nonexistent.risor", nil)
	if err == nil {
		t.Fatal("expected error for missing script, got nil")
	}
}

func TestLoadScript(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "test.risor")
	content := `x := 42`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing: %v", err)
	}

	rt := NewRuntime(dir)
	got, err := rt.LoadScript(path)
	if err != nil {
		t.Fatalf("LoadScript: %v", err)
	}
	if got != content {
		t.Errorf("LoadScript = %q, want %q", got, content)
	}
}

func TestLoadScript_FromFSFS(t *testing.T) {
	t.Parallel()

	content := `x := 42`
	mapFS := fstest.MapFS{
		"demo.risor": &fstest.MapFile{Data: []byte(content)},
	}

	rt := NewRuntime("", WithRuntimeFS(mapFS))

	got, err := rt.LoadScript("/demo.risor")
	require.NoError(t, err)
	assert.Equal(t, content, got)

	_, err = rt.LoadScript("missing.risor")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "from fs")
}

func TestImport_FSImporter(t *testing.T) {
	mapFS := fstest.MapFS{
		"helpers.risor": &fstest.MapFile{Data: []byte(`
func double_area(s) {
	return area(s) * 2
}
`)},
	}

	rt := NewRuntime("", WithRuntimeFS(mapFS))

	script := `
import helpers

got := helpers.double_area(rectangle(2, 3))
assert(got == 12.0, 'expected 12, got {got}')
`
	require.NoError(t, rt.RunSource(context.Background(), script, nil))
}

func TestImport_LocalImporter(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "unit.risor"), []byte(`
func side() {
	return 4
}
`), 0644))

	rt := NewRuntime(dir)

	script := `
import unit

r := detect_circle(circle(unit.side()))
assert(r[0] == 4.0, 'expected 4, got {r[0]}')
`
	require.NoError(t, rt.RunSource(context.Background(), script, nil))
}

func TestImport_ModuleUsesBuiltins(t *testing.T) {
	mapFS := fstest.MapFS{
		"show.risor": &fstest.MapFile{Data: []byte(`
func show(s) {
	print(s.Kind(), len([area(s), perimeter(s)]))
	return s.Kind()
}
`)},
	}

	var out bytes.Buffer
	rt := NewRuntime("", WithRuntimeFS(mapFS), WithStdout(&out))

	script := `
import show

got := show.show(circle(1))
assert(got == "circle", 'expected circle, got {got}')
`
	require.NoError(t, rt.RunSource(context.Background(), script, nil))
	assert.Equal(t, "circle 2\n", out.String())
}

func TestWithStdout_CapturesPrint(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	rt := NewRuntime("", WithStdout(&out))

	require.NoError(t, rt.RunSource(context.Background(), `print("efficiency:", efficiency(circle(4)))`, nil))
	assert.Equal(t, "efficiency: 2\n", out.String())
}

func TestRunScript_EmbeddedDemo(t *testing.T) {
	var buf, out bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	rt := NewRuntime("", WithRuntimeFS(scripts.FS), WithLogger(logger), WithStdout(&out))

	require.NoError(t, rt.RunScript(context.Background(), DemoScript, nil))
	assert.Contains(t, buf.String(), "circle of radius")
	assert.Contains(t, out.String(), "1x4 rectangle efficiency: 0.4")
	assert.Contains(t, out.String(), "circle efficiency: 2")
	assert.Contains(t, out.String(), "plate")
}
