package loader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/vk/jpsloader/internal/ctxlog"
	"github.com/vk/jpsloader/internal/macro"
	"github.com/vk/jpsloader/internal/model"
	"github.com/vk/jpsloader/internal/registry"
	"github.com/vk/jpsloader/internal/serialization"
	"github.com/vk/jpsloader/internal/workerpool"
	"github.com/vk/jpsloader/internal/xmldoc"
)

const (
	ideaDirName = ".idea"
	iprSuffix   = ".ipr"

	projectRootManagerComponent   = "ProjectRootManager"
	projectModuleManagerComponent = "ProjectModuleManager"
)

// layout says where the project components live.
type layout struct {
	baseDir string
	// iprFile is set for single-file projects, ideaDir for directory ones.
	iprFile string
	ideaDir string
}

func resolveLayout(projectPath string) (*layout, error) {
	abs, err := filepath.Abs(projectPath)
	if err != nil {
		return nil, &ConfigurationNotFoundError{Path: projectPath}
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, &ConfigurationNotFoundError{Path: projectPath}
	}

	if info.Mode().IsRegular() && strings.HasSuffix(abs, iprSuffix) {
		return &layout{baseDir: filepath.Dir(abs), iprFile: abs}, nil
	}
	if info.IsDir() && filepath.Base(abs) == ideaDirName {
		return &layout{baseDir: filepath.Dir(abs), ideaDir: abs}, nil
	}
	ideaDir := filepath.Join(abs, ideaDirName)
	if st, err := os.Stat(ideaDir); err == nil && st.IsDir() {
		return &layout{baseDir: abs, ideaDir: ideaDir}, nil
	}
	return nil, &ConfigurationNotFoundError{Path: projectPath}
}

// LoadProject loads the project at projectPath, which may be an .ipr file,
// an .idea directory or the directory holding .idea. On error no project is
// returned.
func (l *Loader) LoadProject(ctx context.Context, projectPath string, pathVariables map[string]string) (*model.Project, error) {
	loadID := uuid.NewString()
	ctx = ctxlog.With(ctx, "load_id", loadID, "project_path", projectPath)
	logger := ctxlog.FromContext(ctx)

	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	tracker := &stageTracker{listener: l.listener, loadID: loadID, projectPath: projectPath}

	lay, err := resolveLayout(projectPath)
	if err != nil {
		tracker.fail(ctx, err)
		return nil, err
	}

	logger.Info("Loading project.", "base_dir", lay.baseDir)
	p, err := l.loadProject(ctx, tracker, lay, pathVariables)
	if err != nil {
		tracker.fail(ctx, err)
		logger.Error("Project load failed.", "error", err)
		return nil, fmt.Errorf("failed to load project %s: %w", projectPath, err)
	}

	tracker.enter(ctx, Complete)
	logger.Info("Project loaded.",
		"name", p.Name,
		"modules", len(p.Modules()),
		"libraries", p.Libraries().Len(),
		"artifacts", len(p.Artifacts()),
	)
	return p, nil
}

// projectSources abstracts over where each project component is read from.
type projectSources interface {
	projectName() string
	// component returns the named component from the file it lives in for
	// this layout, or nil when the file or component is absent.
	component(name, configFile string) (*xmldoc.Element, error)
	// libraryTables and artifactManagers return the components in merge
	// order together with the file each came from.
	libraryTables(ctx context.Context) ([]*xmldoc.Element, []string, error)
	artifactManagers(ctx context.Context) ([]*xmldoc.Element, []string, error)
}

func (l *Loader) loadProject(ctx context.Context, tracker *stageTracker, lay *layout, pathVariables map[string]string) (*model.Project, error) {
	exp := macro.New(pathVariables)
	exp.AddFileHierarchyReplacements("PROJECT_DIR", lay.baseDir)

	tracker.enter(ctx, RootLoading)

	var src projectSources
	if lay.iprFile != "" {
		root, err := l.docs.LoadRootElement(lay.iprFile, exp)
		if err != nil {
			return nil, err
		}
		src = &iprSources{file: lay.iprFile, root: root}
	} else {
		src = &directorySources{l: l, dir: lay.ideaDir, baseDir: lay.baseDir, exp: exp, files: make(map[string]*xmldoc.Element)}
	}

	p := model.NewProject(src.projectName())
	p.BaseDir = filepath.ToSlash(lay.baseDir)

	rootManager, err := src.component(projectRootManagerComponent, registry.DefaultConfigFileName)
	if err != nil {
		return nil, err
	}
	projectSdkType := l.loadProjectRoot(p, rootManager)

	for _, s := range l.reg.ProjectExtensionSerializers() {
		component, err := src.component(s.ComponentName(), registry.ConfigFile(s))
		if err != nil {
			return nil, err
		}
		if component == nil {
			continue
		}
		if err := s.LoadExtension(p, component); err != nil {
			return nil, fmt.Errorf("project extension %s: %w", s.ComponentName(), err)
		}
	}

	moduleManager, err := src.component(projectModuleManagerComponent, "modules.xml")
	if err != nil {
		return nil, err
	}
	tracker.enter(ctx, ModulesLoading)
	paths := modulePaths(moduleManager, lay.baseDir)
	if err := l.loadModules(ctx, tracker, p, paths, projectSdkType, pathVariables); err != nil {
		return nil, err
	}

	tracker.enter(ctx, LibrariesLoading)
	tables, files, err := src.libraryTables(ctx)
	if err != nil {
		return nil, err
	}
	for i, table := range tables {
		for _, name := range serialization.LoadLibraries(table, p.Libraries()) {
			ctxlog.FromContext(ctx).Warn("Library defined more than once, later definition wins.", "library", name, "file", files[i])
		}
	}

	tracker.enter(ctx, ArtifactsLoading)
	managers, files, err := src.artifactManagers(ctx)
	if err != nil {
		return nil, err
	}
	for i, manager := range managers {
		if err := serialization.LoadArtifacts(p, manager); err != nil {
			return nil, fmt.Errorf("%s: %w", files[i], err)
		}
	}

	return p, nil
}

// loadProjectRoot binds the project SDK and returns its type, or "" when the
// project declares none.
func (l *Loader) loadProjectRoot(p *model.Project, rootManager *xmldoc.Element) model.SdkType {
	name, hasName := rootManager.Attr("project-jdk-name")
	typeID, hasType := rootManager.Attr("project-jdk-type")
	if !hasName || !hasType {
		return ""
	}
	sdkType, _ := l.reg.FindSdkType(typeID)
	serialization.SetSdkReference(p.SdkReferences(), name, sdkType)
	return sdkType
}

// modulePaths lists the declared module descriptors. Relative paths are
// resolved against the project base directory.
func modulePaths(moduleManager *xmldoc.Element, baseDir string) []string {
	var out []string
	for _, el := range moduleManager.Child("modules").ChildrenNamed("module") {
		path, ok := el.Attr("filepath")
		if !ok || path == "" {
			continue
		}
		path = filepath.FromSlash(path)
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		out = append(out, path)
	}
	return out
}

// loadModules submits one task per descriptor and attaches the results in
// declared order. The first failure cancels the remaining tasks.
func (l *Loader) loadModules(ctx context.Context, tracker *stageTracker, p *model.Project, paths []string, projectSdkType model.SdkType, pathVariables map[string]string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	futures := make([]*workerpool.Future[*model.Module], len(paths))
	for i, path := range paths {
		futures[i] = workerpool.Submit(l.pool, ctx, func(ctx context.Context) (*model.Module, error) {
			return l.loadModule(ctx, path, projectSdkType, pathVariables)
		})
	}

	for i, f := range futures {
		m, err := f.Wait(ctx)
		if err == nil {
			err = p.AddModule(m)
		}
		if err != nil {
			cancel()
			return &TaskFailureError{Index: i, Path: paths[i], Err: err}
		}
		l.listener.ModuleLoaded(ctx, ModuleEvent{LoadID: tracker.loadID, Index: i, Total: len(paths), Module: m})
	}
	return nil
}

// iprSources reads every component from the single .ipr document.
type iprSources struct {
	file string
	root *xmldoc.Element
}

func (s *iprSources) projectName() string {
	return strings.TrimSuffix(filepath.Base(s.file), iprSuffix)
}

func (s *iprSources) component(name, _ string) (*xmldoc.Element, error) {
	return s.root.FindComponent(name), nil
}

func (s *iprSources) libraryTables(context.Context) ([]*xmldoc.Element, []string, error) {
	return s.single(serialization.LibraryTableComponent)
}

func (s *iprSources) artifactManagers(context.Context) ([]*xmldoc.Element, []string, error) {
	return s.single(serialization.ArtifactManagerComponent)
}

func (s *iprSources) single(name string) ([]*xmldoc.Element, []string, error) {
	c := s.root.FindComponent(name)
	if c == nil {
		return nil, nil, nil
	}
	return []*xmldoc.Element{c}, []string{s.file}, nil
}

// directorySources reads components from the files under .idea. Each file is
// loaded at most once per project load.
type directorySources struct {
	l       *Loader
	dir     string
	baseDir string
	exp     *macro.Expander
	files   map[string]*xmldoc.Element
}

func (s *directorySources) projectName() string {
	data, err := os.ReadFile(filepath.Join(s.dir, ".name"))
	if err == nil {
		if name := strings.TrimSpace(string(data)); name != "" {
			return name
		}
	}
	return filepath.Base(s.baseDir)
}

func (s *directorySources) component(name, configFile string) (*xmldoc.Element, error) {
	root, ok := s.files[configFile]
	if !ok {
		var err error
		root, err = s.loadOptional(filepath.Join(s.dir, configFile))
		if err != nil {
			return nil, err
		}
		s.files[configFile] = root
	}
	return root.FindComponent(name), nil
}

// loadOptional treats a missing file as an empty document.
func (s *directorySources) loadOptional(path string) (*xmldoc.Element, error) {
	root, err := s.l.docs.LoadRootElement(path, s.exp)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	return root, err
}

func (s *directorySources) libraryTables(ctx context.Context) ([]*xmldoc.Element, []string, error) {
	return s.l.loadShards(ctx, filepath.Join(s.dir, "libraries"), serialization.LibraryTableComponent, s.exp)
}

func (s *directorySources) artifactManagers(ctx context.Context) ([]*xmldoc.Element, []string, error) {
	return s.l.loadShards(ctx, filepath.Join(s.dir, "artifacts"), serialization.ArtifactManagerComponent, s.exp)
}
