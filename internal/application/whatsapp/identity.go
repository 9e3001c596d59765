package whatsapp

import "strings"

// Nombres placeholder cuando el payload no trae nombre de perfil utilizable.
// El esquema exige firstName y lastName no vacíos incluso para leads automáticos.
const (
	placeholderFirstName = "WhatsApp"
	placeholderLastName  = "Lead"
)

// Identity es la identidad del remitente derivada de un payload de webhook.
// Campos vacíos significan "el payload no lo trae"; nunca se reporta error.
type Identity struct {
	WaID         string `json:"waId"`
	WhatsAppE164 string `json:"whatsAppE164"`
	ProfileName  string `json:"profileName"`
}

// ExtractIdentity saca la identidad del remitente de un evento completo.
// Prefiere contacts[0].wa_id y cae a messages[0].from como identificador crudo.
//
// WhatsAppE164 acá es una derivación barata ("+" + identificador crudo), NO el
// normalizador estricto de domain/phone: esta función responde "qué dijo el
// payload"; quien necesite un E.164 garantizado debe pasar el valor por
// phone.NormalizeToE164. Las dos vías se mantienen separadas a propósito.
func ExtractIdentity(ev *WebhookEvent) Identity {
	var id Identity
	if ev == nil || len(ev.Entry) == 0 || len(ev.Entry[0].Changes) == 0 {
		return id
	}
	value := ev.Entry[0].Changes[0].Value

	if len(value.Contacts) > 0 {
		id.WaID = value.Contacts[0].WaID
		id.ProfileName = value.Contacts[0].Profile.Name
	}

	raw := id.WaID
	if raw == "" && len(value.Messages) > 0 {
		raw = value.Messages[0].From
	}
	if raw != "" {
		id.WhatsAppE164 = "+" + raw
	}
	return id
}

// splitProfileName separa un nombre de perfil en (firstName, lastName) por el
// primer espacio. Sin nombre utilizable devuelve el par placeholder; sin
// apellido, lastName cae al placeholder (el esquema no admite vacíos).
func splitProfileName(fullName string) (string, string) {
	name := strings.TrimSpace(fullName)
	if name == "" {
		return placeholderFirstName, placeholderLastName
	}
	parts := strings.SplitN(name, " ", 2)
	if len(parts) == 1 || strings.TrimSpace(parts[1]) == "" {
		return parts[0], placeholderLastName
	}
	return parts[0], strings.TrimSpace(parts[1])
}

// placeholderEmail sintetiza un email único por organización para leads de
// WhatsApp: incluye el waId y un fragmento del orgId, así el mismo número en
// dos tenants no colisiona aunque quede una constraint global sobre email.
func placeholderEmail(waID, orgID string) string {
	frag := orgID
	if len(frag) > 6 {
		frag = frag[len(frag)-6:]
	}
	return strings.ToLower(waID + "." + frag + "@wa.local")
}

// placeholderPassword credencial placeholder determinística derivada de la
// identidad. Siempre se almacena hasheada, nunca en claro.
func placeholderPassword(waID string) string {
	return waID + "@1234"
}
