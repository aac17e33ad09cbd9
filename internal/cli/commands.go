package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vk/jpsloader/internal/model"
	"github.com/vk/jpsloader/internal/registry"
	"github.com/vk/jpsloader/plugins"
)

func newLoadCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "load <project-path>...",
		Short: "Load one or more projects and print a summary",
		Long: `Load each project concurrently on one shared worker pool and print a
summary of its modules, libraries and artifacts. A project path may be an
.ipr file, an .idea directory or the directory containing .idea.

Projects that load are printed even when others fail.`,
		Example: `  jpsloader load ./my-project
  jpsloader load -o yaml ./a ./b/.idea ./c/legacy.ipr`,
		Args: usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := o.newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			projects, loadErr := a.LoadProjects(cmd.Context(), args)

			var reports []projectReport
			for _, p := range projects {
				if p != nil {
					reports = append(reports, newProjectReport(p))
				}
			}
			out := cmd.OutOrStdout()
			err = render(out, o.output, reports, func(w io.Writer) error {
				for _, r := range reports {
					if err := writeProjectText(w, r); err != nil {
						return err
					}
				}
				return nil
			})
			return errors.Join(loadErr, err)
		},
	}
}

func newModulesCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:     "modules <project-path>",
		Short:   "List the modules of a project in declared order",
		Example: `  jpsloader modules ./my-project`,
		Args:    usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := o.newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			p, err := a.LoadProject(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			modules := newProjectReport(p).Modules
			return render(cmd.OutOrStdout(), o.output, modules, func(w io.Writer) error {
				return writeModulesText(w, modules, "")
			})
		},
	}
}

func newClasspathCommand(o *options) *cobra.Command {
	var roots, kind string
	cmd := &cobra.Command{
		Use:   "classpath <project-path> <module>",
		Short: "Print the roots a module sees through its dependencies",
		Long: `Walk the order entries of a module and print the roots of the chosen type
contributed by its own sources or compiler output, its libraries and,
transitively, the exported entries of the modules it depends on. Entries whose
scope does not belong to the chosen classpath kind are left out.

Kinds: compile, runtime, test, test-runtime.`,
		Example: `  jpsloader classpath ./my-project core
  jpsloader classpath --kind test ./my-project core
  jpsloader classpath --roots SOURCES ./my-project core`,
		Args: usageArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			rootType, err := model.ParseRootType(roots)
			if err != nil {
				return usageError(err)
			}
			classpathKind, err := model.ParseClasspathKind(kind)
			if err != nil {
				return usageError(err)
			}

			a, err := o.newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			p, err := a.LoadProject(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			m, ok := p.Module(args[1])
			if !ok {
				return fmt.Errorf("module %q not found in project %s", args[1], p.Name)
			}
			urls := model.OrderRootURLs(p, m, rootType, classpathKind)
			if urls == nil {
				urls = []string{}
			}
			return render(cmd.OutOrStdout(), o.output, urls, func(w io.Writer) error {
				for _, u := range urls {
					fmt.Fprintln(w, u)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&roots, "roots", string(model.RootClasses), "root type to collect: CLASSES, SOURCES or JAVADOC")
	cmd.Flags().StringVar(&kind, "kind", model.ProductionCompile.String(), "classpath kind: compile, runtime, test or test-runtime")
	return cmd
}

type extensionReport struct {
	Name        string   `json:"name" yaml:"name"`
	ModuleTypes []string `json:"module_types,omitempty" yaml:"module_types,omitempty"`
}

func newExtensionsCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "extensions",
		Short: "List the bundled extensions and the module types they add",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			var reports []extensionReport
			for _, name := range plugins.Names() {
				reg := registry.New()
				reg.Install(plugins.Catalog()[name])
				reports = append(reports, extensionReport{Name: name, ModuleTypes: reg.ModuleTypes()})
			}
			return render(cmd.OutOrStdout(), o.output, reports, func(w io.Writer) error {
				for _, r := range reports {
					fmt.Fprintf(w, "%s\t%s\n", r.Name, strings.Join(r.ModuleTypes, ", "))
				}
				return nil
			})
		},
	}
}
