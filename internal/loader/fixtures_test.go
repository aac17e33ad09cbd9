package loader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vk/jpsloader/internal/model"
	"github.com/vk/jpsloader/internal/registry"
	"github.com/vk/jpsloader/internal/workerpool"
	"github.com/vk/jpsloader/internal/xmldoc"
	"github.com/vk/jpsloader/plugins/devkit"
	"github.com/vk/jpsloader/plugins/java"
)

// scriptedModuleType is a module type whose properties component tells the
// test serializer how long to sleep and whether to fail or panic.
const scriptedModuleType = "SCRIPTED_MODULE"

type scriptedProperties struct{ Delay time.Duration }

func (scriptedProperties) ModuleType() model.ModuleType { return scriptedModuleType }

type scriptedSerializer struct{}

func (scriptedSerializer) TypeID() string               { return scriptedModuleType }
func (scriptedSerializer) ModuleType() model.ModuleType { return scriptedModuleType }
func (scriptedSerializer) ComponentName() string        { return "Script" }

func (scriptedSerializer) LoadProperties(c *xmldoc.Element) (model.ModuleProperties, error) {
	delay, err := time.ParseDuration(c.AttrOr("delay", "0s"))
	if err != nil {
		return nil, err
	}
	time.Sleep(delay)
	if c.AttrOr("panic", "") == "true" {
		panic("scripted panic")
	}
	if msg, ok := c.Attr("fail"); ok {
		return nil, fmt.Errorf("scripted failure: %s", msg)
	}
	return scriptedProperties{Delay: delay}, nil
}

type scriptedExtension struct{}

func (scriptedExtension) Name() string { return "scripted" }
func (scriptedExtension) Register(r *registry.Registry) {
	r.RegisterModuleType(scriptedSerializer{})
}

// recordingListener keeps every event it receives.
type recordingListener struct {
	mu      sync.Mutex
	stages  []Stage
	modules []string
	indices []int
	lastErr error
}

func (r *recordingListener) StageChanged(_ context.Context, ev StageEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stages = append(r.stages, ev.Stage)
	if ev.Err != nil {
		r.lastErr = ev.Err
	}
}

func (r *recordingListener) ModuleLoaded(_ context.Context, ev ModuleEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.modules = append(r.modules, ev.Module.Name)
	r.indices = append(r.indices, ev.Index)
}

func newTestLoader(t *testing.T, workers int, opts ...Option) *Loader {
	t.Helper()
	reg := registry.New()
	reg.Install(&java.Module{}, &devkit.Module{}, scriptedExtension{})

	pool := workerpool.New(context.Background(), workers)
	t.Cleanup(pool.Close)

	docs, err := xmldoc.NewLoader(16)
	require.NoError(t, err)
	return New(reg, pool, docs, opts...)
}

// projectFixture writes a directory-based project into a temp dir.
type projectFixture struct {
	t    *testing.T
	root string
}

func newProjectFixture(t *testing.T) *projectFixture {
	t.Helper()
	f := &projectFixture{t: t, root: t.TempDir()}
	require.NoError(t, os.MkdirAll(filepath.Join(f.root, ".idea"), 0o755))
	return f
}

func (f *projectFixture) write(rel, content string) string {
	f.t.Helper()
	path := filepath.Join(f.root, filepath.FromSlash(rel))
	require.NoError(f.t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(f.t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// module writes <name>/<name>.iml with the given type and components.
func (f *projectFixture) module(name, typeID, components string) string {
	return f.write(name+"/"+name+".iml", fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<module type="%s" version="4">
%s
</module>`, typeID, components))
}

// scripted writes a scripted module with the given behaviour attributes.
func (f *projectFixture) scripted(name, attrs string) string {
	return f.module(name, scriptedModuleType, `<component name="Script" `+attrs+` />`)
}

// modulesXML declares the modules in the given order.
func (f *projectFixture) modulesXML(names ...string) {
	var b strings.Builder
	for _, n := range names {
		fmt.Fprintf(&b, "      <module fileurl=\"file://$PROJECT_DIR$/%[1]s/%[1]s.iml\" filepath=\"$PROJECT_DIR$/%[1]s/%[1]s.iml\" />\n", n)
	}
	f.write(".idea/modules.xml", `<?xml version="1.0" encoding="UTF-8"?>
<project version="4">
  <component name="ProjectModuleManager">
    <modules>
`+b.String()+`    </modules>
  </component>
</project>`)
}

func (f *projectFixture) misc(components string) {
	f.write(".idea/misc.xml", `<?xml version="1.0" encoding="UTF-8"?>
<project version="4">
`+components+`
</project>`)
}

func moduleNames(p *model.Project) []string {
	var out []string
	for _, m := range p.Modules() {
		out = append(out, m.Name)
	}
	return out
}
