package message

import "strings"

// foreignMarkers are English verbs (and inflections) that betray a message
// written in the wrong language. Type keywords (feat, fix, ...) are excluded
// on purpose: they are legitimate in any title's prefix.
var foreignMarkers = []string{
	"add", "added", "adding",
	"fixed", "fixes", "fixing",
	"update", "updated", "updating",
	"create", "created", "creating",
	"remove", "removed", "removing",
	"delete", "deleted", "deleting",
	"change", "changed", "changing",
	"implement", "implemented", "implementing",
	"improve", "improved", "improving",
	"refactored", "refactoring",
	"support", "supported",
	"handle", "handled", "handling",
	"introduce", "introduced",
}

// targetMarkers are Spanish verbs and nouns whose presence suggests the
// message is in the expected language. Advisory only: their absence never
// invalidates a message.
var targetMarkers = []string{
	"agregar", "agregado", "agregan",
	"corregir", "corregido", "corrige",
	"actualizar", "actualizado", "actualiza",
	"eliminar", "eliminado", "elimina",
	"crear", "creado",
	"mejorar", "mejorado", "mejora",
	"implementar", "implementado", "implementa",
	"refactorizar", "refactorizado",
	"cambiar", "cambio", "cambios",
	"ajustar", "ajuste", "ajustes",
	"soporte", "manejo", "validacion", "validación",
}

// Verdict is the result of a language check over a title and body.
type Verdict struct {
	// IsValid is true when no foreign-language marker appears anywhere.
	IsValid bool

	// ContainsTargetLanguage reports whether Spanish markers were found.
	// Advisory: not required for validity.
	ContainsTargetLanguage bool

	// ContainsForeignLanguage reports whether English markers were found
	// in the combined title and body.
	ContainsForeignLanguage bool

	// TitleIsForeignLanguage reports whether English markers were found
	// in the title alone.
	TitleIsForeignLanguage bool
}

// Validate checks a commit message for language purity. Matching is
// case-insensitive substring search over the combined "title body" text,
// with an independent pass over the title alone.
func Validate(title, body string) Verdict {
	combined := strings.ToLower(title + " " + body)
	titleLower := strings.ToLower(title)

	foreign := containsAny(combined, foreignMarkers)
	titleForeign := containsAny(titleLower, foreignMarkers)
	target := containsAny(combined, targetMarkers)

	return Verdict{
		IsValid:                 !foreign && !titleForeign,
		ContainsTargetLanguage:  target,
		ContainsForeignLanguage: foreign,
		TitleIsForeignLanguage:  titleForeign,
	}
}

func containsAny(text string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(text, m) {
			return true
		}
	}
	return false
}
