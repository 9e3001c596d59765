package whatsapp

// Tipos del payload de webhook de WhatsApp Cloud API (Meta).
// Solo se modelan los campos que el CRM lee; el resto del evento se ignora.

// WebhookEvent es el cuerpo completo que Meta envía por POST.
type WebhookEvent struct {
	Object string  `json:"object"`
	Entry  []Entry `json:"entry"`
}

// Entry agrupa cambios de una WhatsApp Business Account.
type Entry struct {
	ID      string   `json:"id"`
	Changes []Change `json:"changes"`
}

// Change un cambio individual; Value trae el contenido del evento.
type Change struct {
	Field string `json:"field"`
	Value Value  `json:"value"`
}

// Value es el objeto changes[0].value: metadata del número receptor,
// contactos y mensajes entrantes.
type Value struct {
	MessagingProduct string    `json:"messaging_product"`
	Metadata         Metadata  `json:"metadata"`
	Contacts         []Contact `json:"contacts"`
	Messages         []Message `json:"messages"`
}

// Metadata identifica el número de la organización que recibió el evento.
// PhoneNumberID es la clave de ruteo multi-tenant.
type Metadata struct {
	DisplayPhoneNumber string `json:"display_phone_number"`
	PhoneNumberID      string `json:"phone_number_id"`
}

// Contact remitente del mensaje según Meta.
type Contact struct {
	WaID    string  `json:"wa_id"`
	Profile Profile `json:"profile"`
}

// Profile datos de perfil del remitente.
type Profile struct {
	Name string `json:"name"`
}

// Message mensaje entrante. El resolver solo usa From.
type Message struct {
	ID        string `json:"id"`
	From      string `json:"from"`
	Timestamp string `json:"timestamp"`
	Type      string `json:"type"`
	Text      *Text  `json:"text,omitempty"`
}

// Text cuerpo de un mensaje de texto.
type Text struct {
	Body string `json:"body"`
}
