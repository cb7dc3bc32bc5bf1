package lsdoc

import "fmt"

// ============================================================
// Module Metadata
// ============================================================

// ModMetadata is the descriptive header of a mod package, read from the
// ModuleInfo node of its meta resource.
type ModMetadata struct {
	Name        string
	Folder      string
	UUID        string
	Author      string
	Description string
	Version64   int64
}

// ReadModMetadata extracts the module info fields from a decoded meta
// resource. The ModuleInfo node is searched across all regions; missing
// fields stay zero, a missing node is an error.
func ReadModMetadata(doc *Document) (ModMetadata, error) {
	var info *Node
	for i := range doc.Regions {
		for _, root := range doc.Regions[i].Nodes {
			if info = NodeNamed(root, "ModuleInfo"); info != nil {
				break
			}
		}
		if info != nil {
			break
		}
	}
	if info == nil {
		return ModMetadata{}, fmt.Errorf("%w: ModuleInfo node", ErrMissingField)
	}
	var m ModMetadata
	m.Name, _ = info.AttrString("Name")
	m.Folder, _ = info.AttrString("Folder")
	m.UUID, _ = info.AttrString("UUID")
	m.Author, _ = info.AttrString("Author")
	m.Description, _ = info.AttrString("Description")
	m.Version64, _ = info.AttrInt("Version64")
	return m, nil
}

// VersionString renders the packed Version64 field as the dotted quad form.
// The packing matches the engine's: major:7@55 | minor:8@47 | revision:16@31
// | build:31@0.
func (m ModMetadata) VersionString() string {
	return versionString(UnpackVersion(uint64(m.Version64)))
}
