package extractor

import "github.com/gnana997/callgraph/pkg/symbols"

// assignIDs walks a file's top-level definitions and assigns every
// definition's ID per the : "${file_path}#${name}" for top-level
// definitions, "${file_path}#${owner}.${name}" for methods/properties/
// parameters nested under a class/interface/function.
func assignIDs(filePath string, defs []*symbols.Definition) {
	for _, d := range defs {
		assignID(filePath, "", d)
	}
}

func assignID(filePath, owner string, d *symbols.Definition) {
	if owner == "" {
		d.ID = filePath + "#" + d.Name
	} else {
		d.ID = filePath + "#" + owner + "." + d.Name
	}

	childOwner := d.Name
	if owner != "" {
		childOwner = owner + "." + d.Name
	}
	for _, m := range d.Methods {
		assignID(filePath, childOwner, m)
	}
	for _, p := range d.Properties {
		assignID(filePath, childOwner, p)
	}
	for _, p := range d.Parameters {
		assignID(filePath, childOwner, p)
	}
}

// indexByID flattens a file's definition tree (top-level plus every
// nested method/property/parameter) into FileContext.ByID.
func indexByID(defs []*symbols.Definition) map[string]*symbols.Definition {
	out := map[string]*symbols.Definition{}
	var walk func(d *symbols.Definition)
	walk = func(d *symbols.Definition) {
		out[d.ID] = d
		for _, m := range d.Methods {
			walk(m)
		}
		for _, p := range d.Properties {
			walk(p)
		}
		for _, p := range d.Parameters {
			walk(p)
		}
	}
	for _, d := range defs {
		walk(d)
	}
	return out
}
