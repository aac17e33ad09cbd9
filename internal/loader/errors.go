package loader

import "fmt"

// ConfigurationNotFoundError is returned when a path is neither an .ipr file
// nor a directory with project files.
type ConfigurationNotFoundError struct {
	Path string
}

func (e *ConfigurationNotFoundError) Error() string {
	return fmt.Sprintf("cannot find IntelliJ IDEA project files at %s", e.Path)
}

// TaskFailureError reports the module task that aborted a project load.
// Index is the position of the module in the declared module list.
type TaskFailureError struct {
	Index int
	Path  string
	Err   error
}

func (e *TaskFailureError) Error() string {
	return fmt.Sprintf("failed to load module #%d (%s): %v", e.Index, e.Path, e.Err)
}

func (e *TaskFailureError) Unwrap() error {
	return e.Err
}
