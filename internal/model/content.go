package model

// SourceRootType distinguishes plain source roots from resource roots.
type SourceRootType string

const (
	JavaSource   SourceRootType = "java-source"
	JavaResource SourceRootType = "java-resource"
)

// SourceFolder is a source root nested under a content entry.
type SourceFolder struct {
	URL           string
	IsTest        bool
	PackagePrefix string
	RootType      SourceRootType
}

// ContentEntry is a content root URL with its nested folders.
type ContentEntry struct {
	URL             string
	SourceFolders   []*SourceFolder
	ExcludeFolders  []string
	ExcludePatterns []string
}
