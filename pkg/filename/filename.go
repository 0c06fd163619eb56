// Package filename normaliza nombres de archivo subidos por el cliente.
package filename

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const maxBaseLen = 100

// Sanitize quita acentos, rutas y caracteres fuera de [A-Za-z0-9._-].
// "Menú Verano (v2).PDF" -> "Menu_Verano_v2.pdf".
func Sanitize(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" {
		name = ""
	}

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if s, _, err := transform.String(t, name); err == nil {
		name = s
	}

	ext := strings.ToLower(filepath.Ext(name))
	base := strings.TrimSuffix(name, filepath.Ext(name))

	base = clean(base)
	ext = clean(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	if len(base) > maxBaseLen {
		base = base[:maxBaseLen]
	}
	if base == "" {
		base = "file"
	}
	return base + ext
}

// Stamped antepone los milisegundos Unix: "1718000000000_menu.pdf".
func Stamped(now time.Time, name string) string {
	return fmt.Sprintf("%d_%s", now.UnixMilli(), Sanitize(name))
}

func clean(s string) string {
	var b strings.Builder
	lastSep := false
	for _, r := range s {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)), r == '.', r == '-':
			b.WriteRune(r)
			lastSep = false
		default:
			if !lastSep && b.Len() > 0 {
				b.WriteByte('_')
				lastSep = true
			}
		}
	}
	return strings.Trim(b.String(), "_.")
}
