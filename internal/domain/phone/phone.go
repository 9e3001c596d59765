// Package phone normaliza números telefónicos a E.164 estricto.
//
// La validación es por plan de numeración (libphonenumber), no por regex:
// un número puede tener el formato correcto y aun así no ser marcable en la
// región indicada. La derivación barata "+"+dígitos del extractor de WhatsApp
// es deliberadamente otra función (ver internal/application/whatsapp): el
// extractor responde "qué dijo el payload", este paquete responde "es un
// número válido".
package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// NormalizeToE164 convierte un número crudo a E.164 estricto ("+" seguido solo
// de dígitos) usando defaultRegion (ISO-2, ej. "AE") cuando el número no trae
// prefijo internacional. Devuelve ok=false si el número no es válido bajo el
// plan de numeración. Función pura: sin I/O ni estado.
func NormalizeToE164(raw, defaultRegion string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	num, err := phonenumbers.Parse(raw, defaultRegion)
	if err != nil {
		return "", false
	}
	if !phonenumbers.IsValidNumber(num) {
		return "", false
	}
	return phonenumbers.Format(num, phonenumbers.E164), true
}
