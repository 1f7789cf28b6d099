package organize

import "strings"

// Category names the subdirectory a file is sorted into.
type Category string

// Built-in categories. The labels double as directory names.
const (
	Images     Category = "Imagenes"
	Documents  Category = "Documentos"
	Videos     Category = "Videos"
	Audio      Category = "Audio"
	Archives   Category = "Comprimidos"
	Installers Category = "Instaladores"
	Code       Category = "Codigo"
	Other      Category = "Otros"
)

func (c Category) String() string { return string(c) }

// Valid reports whether c can be used as a single directory name.
func (c Category) Valid() bool {
	name := strings.TrimSpace(string(c))
	if name == "" || name != string(c) {
		return false
	}
	if name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`)
}
